package vpcflow

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
)

// SQSQueue implements Queue on top of an SQS queue.
type SQSQueue struct {
	Client   sqsiface.SQSAPI
	QueueURL string
}

// Receive long-polls for up to max messages. SQS caps both max (10) and
// wait (20s); larger values are clamped.
func (q *SQSQueue) Receive(ctx context.Context, max int, wait time.Duration) ([]Message, error) {
	if max > 10 {
		max = 10
	}
	if max < 1 {
		max = 1
	}
	var seconds = int64(wait / time.Second)
	if seconds > 20 {
		seconds = 20
	}
	var out, err = q.Client.ReceiveMessageWithContext(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:              aws.String(q.QueueURL),
		MaxNumberOfMessages:   aws.Int64(int64(max)),
		WaitTimeSeconds:       aws.Int64(seconds),
		MessageAttributeNames: aws.StringSlice([]string{sqs.QueueAttributeNameAll}),
	})
	if err != nil {
		return nil, err
	}
	var messages = make([]Message, 0, len(out.Messages))
	for _, m := range out.Messages {
		messages = append(messages, Message{
			ID:        aws.StringValue(m.MessageId),
			Body:      aws.StringValue(m.Body),
			AckHandle: aws.StringValue(m.ReceiptHandle),
		})
	}
	return messages, nil
}

// Ack deletes the message identified by handle.
func (q *SQSQueue) Ack(ctx context.Context, handle string) error {
	var _, err = q.Client.DeleteMessageWithContext(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(q.QueueURL),
		ReceiptHandle: aws.String(handle),
	})
	return err
}
