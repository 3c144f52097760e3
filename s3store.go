package vpcflow

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// S3Store implements ObjectStore on top of the S3 API.
type S3Store struct {
	Client s3iface.S3API
}

// Get streams the object body. The body is not buffered; text objects
// are decompressed while they download.
func (s *S3Store) Get(ctx context.Context, bucket string, key string) (io.ReadCloser, int64, error) {
	var out, err = s.Client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, 0, classifyS3Error(bucket, key, err)
	}
	var size int64 = -1
	if out.ContentLength != nil {
		size = *out.ContentLength
	}
	return out.Body, size, nil
}

// Head reports the object size.
func (s *S3Store) Head(ctx context.Context, bucket string, key string) (int64, error) {
	var out, err = s.Client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, classifyS3Error(bucket, key, err)
	}
	return aws.Int64Value(out.ContentLength), nil
}

// List pages through the objects under prefix.
func (s *S3Store) List(ctx context.Context, bucket string, prefix string) BucketIterator {
	return &S3ListIterator{
		Bucket:  bucket,
		Prefix:  prefix,
		Client:  s.Client,
		Context: ctx,
	}
}

func classifyS3Error(bucket, key string, err error) error {
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchKey, s3.ErrCodeNoSuchBucket, "NotFound":
			return fmt.Errorf("%w: s3://%s/%s: %s", ErrObjectNotFound, bucket, key, aerr.Message())
		}
	}
	return fmt.Errorf("%w: s3://%s/%s: %s", ErrStorageUnavailable, bucket, key, err)
}
