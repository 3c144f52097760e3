package vpcflow

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func s3Notification(bucket, key string) string {
	return `{"Records":[{"eventSource":"aws:s3","eventName":"ObjectCreated:Put","s3":{"bucket":{"name":"` +
		bucket + `"},"object":{"key":"` + key + `","size":42}}}]}`
}

func topicEnvelope(t *testing.T, inner string) string {
	t.Helper()
	var raw, err = json.Marshal(map[string]string{
		"Type":    "Notification",
		"Message": inner,
	})
	require.NoError(t, err)
	return string(raw)
}

func TestUnwrapNotification(t *testing.T) {
	tests := []struct {
		name string
		body func(t *testing.T) string
		want []ObjectEvent
	}{
		{
			name: "direct storage event",
			body: func(*testing.T) string { return s3Notification("flow-bucket", "logs/a.log.gz") },
			want: []ObjectEvent{{Source: EventSourceS3, Bucket: "flow-bucket", Key: "logs/a.log.gz", Size: 42}},
		},
		{
			name: "topic wrapped event",
			body: func(t *testing.T) string { return topicEnvelope(t, s3Notification("flow-bucket", "logs/a.parquet")) },
			want: []ObjectEvent{{Source: EventSourceS3, Bucket: "flow-bucket", Key: "logs/a.parquet", Size: 42}},
		},
		{
			name: "url encoded key",
			body: func(*testing.T) string { return s3Notification("b", "AWSLogs/dir+with+space/file%3D1.log.gz") },
			want: []ObjectEvent{{Source: EventSourceS3, Bucket: "b", Key: "AWSLogs/dir with space/file=1.log.gz", Size: 42}},
		},
		{
			name: "other event sources dropped",
			body: func(*testing.T) string {
				return `{"Records":[{"eventSource":"aws:sqs"},{"eventSource":"aws:s3","s3":{"bucket":{"name":"b"},"object":{"key":"k.gz"}}}]}`
			},
			want: []ObjectEvent{{Source: EventSourceS3, Bucket: "b", Key: "k.gz"}},
		},
		{
			name: "no records",
			body: func(*testing.T) string { return `{"Event":"s3:TestEvent"}` },
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var events, err = UnwrapNotification([]byte(tt.body(t)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, events)
		})
	}
}

func TestUnwrapNotificationMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{not json`},
		{name: "topic message not a string", body: `{"Message":{"Records":[]}}`},
		{name: "topic message not json", body: `{"Message":"{broken"}`},
		{name: "records not a list", body: `{"Records":"nope"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var _, err = UnwrapNotification([]byte(tt.body))
			assert.ErrorIs(t, err, ErrMalformedNotification)
		})
	}
}

func TestObjectEventURI(t *testing.T) {
	var ev = ObjectEvent{Bucket: "b", Key: "a/b.log.gz"}
	assert.Equal(t, "s3://b/a/b.log.gz", ev.URI())
}
