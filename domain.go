package vpcflow

import (
	"context"
	"io"
	"time"
)

// LogFile is a structured representation of a flow log object
// found while listing a bucket. It should contain enough data that
// a consumer could fetch the file contents.
type LogFile struct {
	// Bucket is the S3 bucket in which the logs are stored.
	Bucket string
	// Key is "key" value used by ListObject and GetObject.
	Key string
	// Account is the AWS account ID extracted from the log path, if present.
	Account string
	// Region is the AWS region extracted from the log path, if present.
	Region string
	// Timestamp is the value from the log file name, if present.
	Timestamp time.Time
	// FlowLogID is the key for the VPC log resource in AWS, if present.
	FlowLogID string
	// Hash is the checksum value extracted from the log file name, if present.
	Hash string
	// Size of the file containing the logs.
	Size int64
}

// ObjectEvent identifies one object created in the object store,
// as announced by a storage notification.
type ObjectEvent struct {
	// Source is the event-source discriminator, "aws:s3" for storage events.
	Source string
	// Bucket is the container the object was written to.
	Bucket string
	// Key is the URL-decoded object key.
	Key string
	// Size is the object size announced by the notification, zero if absent.
	Size int64
}

// URI renders the event as an s3:// location.
func (e ObjectEvent) URI() string {
	return "s3://" + e.Bucket + "/" + e.Key
}

// BucketIterator scans an S3 bucket and converts AWS API responses
// to LogFile records.
type BucketIterator interface {
	// Iterate pushes the cursor one record forward such that
	// the current value is fetched when calling Current().
	// This method should return false after all records have
	// been iterated over or an error is encountered attempting
	// to fetch records.
	Iterate() bool
	// Get the current value of the iterator.
	Current() LogFile
	// Close cleans up any resources used by the iterator and
	// returns an error, if any, that caused iterations to stop.
	Close() error
}

// RecordIterator is a finite, produce-once sequence of raw records
// decoded from a single object. It follows the same cursor contract
// as BucketIterator.
type RecordIterator interface {
	Iterate() bool
	Current() RawRecord
	// Stats reports the line/row accounting gathered so far.
	Stats() DecodeStats
	Close() error
}

// ObjectStore is the storage collaborator used to read flow log objects.
// Implementations map their failures onto ErrObjectNotFound or
// ErrStorageUnavailable.
type ObjectStore interface {
	// Get opens the object for reading and reports its size.
	// The caller must close the returned stream.
	Get(ctx context.Context, bucket string, key string) (io.ReadCloser, int64, error)
	// Head reports the object size without reading its content.
	Head(ctx context.Context, bucket string, key string) (int64, error)
	// List iterates the objects stored under prefix.
	List(ctx context.Context, bucket string, prefix string) BucketIterator
}

// Message is one notification received from the queue.
type Message struct {
	ID        string
	Body      string
	AckHandle string
}

// Queue is the notification queue collaborator. Messages that are not
// acknowledged are redelivered by the queue once their visibility
// timeout expires; no retry happens on this side.
type Queue interface {
	Receive(ctx context.Context, max int, wait time.Duration) ([]Message, error)
	Ack(ctx context.Context, handle string) error
}
