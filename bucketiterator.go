package vpcflow

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// S3ListIterator walks the objects under Prefix one ListObjectsV2 page
// at a time. Zero-size keys are directory placeholders and are dropped.
type S3ListIterator struct {
	Bucket string
	// Prefix restricts the listing to keys starting with it.
	Prefix string
	Client s3iface.S3API
	// Context bounds the list calls. A nil Context means context.Background().
	Context context.Context

	page    []LogFile
	pos     int
	token   *string
	listed  bool
	last    bool
	current LogFile
	err     error
}

// Iterate moves to the next listed file, fetching pages as needed. It
// returns false once the last page is consumed or a list call failed.
func (it *S3ListIterator) Iterate() bool {
	for it.pos >= len(it.page) {
		if it.err != nil || (it.listed && it.last) || !it.fetch() {
			it.current = LogFile{}
			return false
		}
	}
	it.current = it.page[it.pos]
	it.pos++
	return true
}

func (it *S3ListIterator) fetch() bool {
	var ctx = it.Context
	if ctx == nil {
		ctx = context.Background()
	}
	var input = &s3.ListObjectsV2Input{
		Bucket:            aws.String(it.Bucket),
		ContinuationToken: it.token,
	}
	if it.Prefix != "" {
		input.Prefix = aws.String(it.Prefix)
	}
	var out, err = it.Client.ListObjectsV2WithContext(ctx, input)
	it.listed = true
	if err != nil {
		it.err = classifyS3Error(it.Bucket, it.Prefix, err)
		return false
	}
	it.page = it.page[:0]
	it.pos = 0
	for _, obj := range out.Contents {
		if aws.Int64Value(obj.Size) == 0 {
			continue
		}
		it.page = append(it.page, parseLogFile(obj, it.Bucket))
	}
	it.token = out.NextContinuationToken
	it.last = !aws.BoolValue(out.IsTruncated)
	return true
}

// Current returns the file most recently reached by Iterate.
func (it *S3ListIterator) Current() LogFile {
	return it.current
}

// Close stops the listing and returns the list error, if any.
func (it *S3ListIterator) Close() error {
	it.listed, it.last = true, true
	it.page, it.pos = nil, 0
	it.current = LogFile{}
	return it.err
}

func parseLogFile(content *s3.Object, bucket string) LogFile {
	var logfile = ParseLogFileName(aws.StringValue(content.Key))
	logfile.Bucket = bucket
	logfile.Size = aws.Int64Value(content.Size)
	return logfile
}

// ParseLogFileName fills the LogFile metadata encoded in an AWS flow log
// object name. Keys that do not follow the convention only get Key set.
func ParseLogFileName(key string) LogFile {
	// <aws_account_id>_vpcflowlogs_<region>_<flow_log_id>_<timestamp>_<hash>.log.gz
	// example: AWSLogs/123456789012/vpcflowlogs/us-west-2/2018/10/17/123456789012_vpcflowlogs_us-west-2_fl-00123456789abcdef_20181017T0030Z_0a1b2c3d.log.gz
	var logfile = LogFile{Key: key}
	var keyElements = strings.Split(key, "/")
	var logFileName = keyElements[len(keyElements)-1]
	var logFileNameElements = strings.Split(logFileName, "_")
	if len(logFileNameElements) != 6 || logFileNameElements[1] != "vpcflowlogs" {
		return logfile
	}
	var timestamp, err = time.Parse("20060102T1504Z", logFileNameElements[4])
	if err != nil {
		return logfile
	}
	logfile.Account = logFileNameElements[0]
	logfile.Region = logFileNameElements[2]
	logfile.FlowLogID = logFileNameElements[3]
	logfile.Timestamp = timestamp
	logfile.Hash = strings.Split(logFileNameElements[5], ".")[0]
	return logfile
}
