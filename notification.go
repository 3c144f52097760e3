package vpcflow

import (
	"fmt"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"
)

// EventSourceS3 is the discriminator carried by storage notifications.
const EventSourceS3 = "aws:s3"

// topicMessageField names the string payload of a topic-wrapped notification.
const topicMessageField = "Message"

// s3EventRecord is the subset of an S3 event notification record we read.
// See https://docs.aws.amazon.com/AmazonS3/latest/userguide/notification-content-structure.html
type s3EventRecord struct {
	EventSource string `json:"eventSource"`
	EventName   string `json:"eventName"`
	S3          struct {
		Bucket struct {
			Name string `json:"name"`
		} `json:"bucket"`
		Object struct {
			Key  string `json:"key"`
			Size int64  `json:"size"`
		} `json:"object"`
	} `json:"s3"`
}

// UnwrapNotification turns a queue message body into the storage events
// it announces. The body is either an S3 event collection or a topic
// envelope whose Message field holds one as a JSON string; only that one
// level of wrapping is recognized. Records from other event sources are
// dropped silently.
func UnwrapNotification(body []byte) ([]ObjectEvent, error) {
	var outer map[string]json.RawMessage
	if err := json.Unmarshal(body, &outer); err != nil {
		return nil, fmt.Errorf("%w: JSON parse failure: %s", ErrMalformedNotification, err)
	}

	var event = outer
	if raw, ok := outer[topicMessageField]; ok {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("%w: topic message is not a string: %s", ErrMalformedNotification, err)
		}
		event = nil
		if err := json.Unmarshal([]byte(inner), &event); err != nil {
			return nil, fmt.Errorf("%w: JSON parse failure in topic message: %s", ErrMalformedNotification, err)
		}
	}

	var raw, ok = event["Records"]
	if !ok {
		return nil, nil
	}
	var records []s3EventRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: invalid Records: %s", ErrMalformedNotification, err)
	}

	var events = make([]ObjectEvent, 0, len(records))
	for _, r := range records {
		if r.EventSource != EventSourceS3 {
			continue
		}
		events = append(events, ObjectEvent{
			Source: r.EventSource,
			Bucket: r.S3.Bucket.Name,
			Key:    decodeObjectKey(r.S3.Object.Key),
			Size:   r.S3.Object.Size,
		})
	}
	return events, nil
}

// decodeObjectKey undoes the form encoding S3 applies to keys in
// notifications. Invalid escapes are kept as they are.
func decodeObjectKey(key string) string {
	var decoded, err = url.QueryUnescape(key)
	if err != nil {
		return strings.ReplaceAll(key, "+", " ")
	}
	return decoded
}
