package vpcflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Defaults for the delivery loop, matching the SQS long-poll limits.
const (
	DefaultMaxMessages  = 10
	DefaultWaitTime     = 20 * time.Second
	DefaultErrorBackoff = 5 * time.Second
)

// Consumer repeatedly receives notification batches, processes them and
// acknowledges the notifications whose objects were all processed
// without error. Anything else stays on the queue and is redelivered
// after its visibility timeout.
type Consumer struct {
	Queue     Queue
	Processor *Processor
	// MaxMessages and WaitTime are passed to Queue.Receive.
	MaxMessages int
	WaitTime    time.Duration
	// ErrorBackoff is the pause after a failed receive.
	ErrorBackoff time.Duration
	// Workers is the number of independent receive loops run by Run.
	Workers int
	Metrics *Metrics
	Logger  zerolog.Logger
	// OnSummary, when set, is called with the summary of every non-empty batch.
	OnSummary func(BatchSummary)
}

// Poll receives and processes a single batch. Only a failure to receive
// the batch is returned as an error; per-message and per-object failures
// are captured in the summary.
func (c *Consumer) Poll(ctx context.Context) (BatchSummary, error) {
	var start = time.Now()
	var messages, err = c.Queue.Receive(ctx, c.maxMessages(), c.waitTime())
	if err != nil {
		c.Metrics.observeReceiveError()
		return BatchSummary{}, fmt.Errorf("receiving notifications: %w", err)
	}

	var summary = NewBatchSummary()
	var log = c.Logger.With().Str("batch_id", summary.BatchID).Logger()
	for _, m := range messages {
		var results = c.Processor.ProcessMessage(ctx, m.Body)
		summary.Add(results...)
		c.Metrics.observeResults(results)
		if failed(results) {
			log.Warn().Str("message_id", m.ID).Msg("notification left on queue for redelivery")
			c.Metrics.observeAck(false)
			continue
		}
		if err := c.Queue.Ack(ctx, m.AckHandle); err != nil {
			log.Error().Err(err).Str("message_id", m.ID).Msg("cannot acknowledge notification")
			c.Metrics.observeAck(false)
			continue
		}
		c.Metrics.observeAck(true)
	}
	c.Metrics.observeBatch(time.Since(start))
	if len(messages) > 0 {
		log.Info().
			Int("messages", len(messages)).
			Int("total", summary.TotalFiles).
			Int("successful", summary.Successful).
			Int("failed", summary.Failed).
			Int("skipped", summary.Skipped).
			Msg("batch processed")
	}
	return *summary, nil
}

func failed(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusError {
			return true
		}
	}
	return false
}

// Run polls until ctx is cancelled. Receive failures are logged and
// retried after ErrorBackoff. Each worker owns its batches; nothing is
// shared between workers besides the stateless Processor.
func (c *Consumer) Run(ctx context.Context) error {
	var workers = c.Workers
	if workers < 1 {
		workers = 1
	}
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			c.loop(ctx, c.Logger.With().Int("worker", worker).Logger())
		}(i)
	}
	wg.Wait()
	return ctx.Err()
}

func (c *Consumer) loop(ctx context.Context, log zerolog.Logger) {
	for ctx.Err() == nil {
		var summary, err = c.Poll(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Dur("backoff", c.errorBackoff()).Msg("poll failed")
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.errorBackoff()):
			}
			continue
		}
		if c.OnSummary != nil && summary.TotalFiles > 0 {
			c.OnSummary(summary)
		}
	}
}

func (c *Consumer) maxMessages() int {
	if c.MaxMessages < 1 {
		return DefaultMaxMessages
	}
	return c.MaxMessages
}

func (c *Consumer) waitTime() time.Duration {
	if c.WaitTime <= 0 {
		return DefaultWaitTime
	}
	return c.WaitTime
}

func (c *Consumer) errorBackoff() time.Duration {
	if c.ErrorBackoff <= 0 {
		return DefaultErrorBackoff
	}
	return c.ErrorBackoff
}
