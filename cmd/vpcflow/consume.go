package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/sqs"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	vpcflow "github.com/asecurityteam/go-vpcflow-ingest"
)

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Process flow log notifications from an SQS queue",
	Long: `Long-poll an SQS queue for S3 object creation notifications, decode and
summarize every announced flow log object, and delete each notification once
all of its objects were processed. Failed notifications stay on the queue and
are redelivered after the visibility timeout.`,
	Example: `  vpcflow consume --queue-url https://sqs.us-east-1.amazonaws.com/123456789012/flow-logs
  VPCFLOW_QUEUE_URL=... VPCFLOW_METRICS_ADDR=:9090 vpcflow consume --workers 4`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg, logger, err = setup()
		if err != nil {
			return err
		}
		if err := cfg.ValidateConsumer(); err != nil {
			return err
		}
		var sess, serr = newSession(cfg.AWS)
		if serr != nil {
			return serr
		}

		var registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		var consumer = &vpcflow.Consumer{
			Queue: &vpcflow.SQSQueue{Client: sqs.New(sess), QueueURL: cfg.Queue.URL},
			Processor: &vpcflow.Processor{
				Store:        &vpcflow.S3Store{Client: s3.New(sess)},
				Schema:       cfg.Schema(),
				Policy:       cfg.Policy(),
				Capabilities: vpcflow.Capabilities{Columnar: cfg.Decode.Columnar},
				Aggregation:  cfg.Aggregation(),
				Limit:        cfg.Decode.Limit,
				Logger:       logger,
			},
			MaxMessages:  cfg.Queue.MaxMessages,
			WaitTime:     cfg.Queue.WaitTime,
			ErrorBackoff: cfg.Queue.ErrorBackoff,
			Workers:      cfg.Queue.Workers,
			Metrics:      vpcflow.NewMetrics(registry),
			Logger:       logger,
		}
		if printSummaries {
			consumer.OnSummary = summaryPrinter(cmd.OutOrStdout(), logger)
		}
		return runConsumer(cmd.Context(), consumer, cfg.Metrics.Addr, registry, logger)
	},
}

var printSummaries bool

func init() {
	rootCmd.AddCommand(consumeCmd)

	var flags = consumeCmd.Flags()
	flags.BoolVar(&printSummaries, "print-summaries", false, "write every batch summary to stdout as a JSON line")
	flags.String("queue-url", "", "SQS queue URL")
	flags.Int("workers", 1, "concurrent receive loops")
	flags.String("metrics-addr", "", "listen address for /metrics, e.g. :9090")
	flags.String("schema", "extended", "field layout: base, extended")
	flags.String("policy", "permissive", "field count policy: strict, permissive")
	for key, name := range map[string]string{
		"queue.url":     "queue-url",
		"queue.workers": "workers",
		"metrics.addr":  "metrics-addr",
		"decode.schema": "schema",
		"decode.policy": "policy",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// runConsumer runs the delivery loop and, when addr is set, the metrics
// endpoint until ctx is cancelled.
func runConsumer(ctx context.Context, consumer *vpcflow.Consumer, addr string, gatherer prometheus.Gatherer, logger zerolog.Logger) error {
	var server *http.Server
	if addr != "" {
		var mux = http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
		server = &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info().Str("addr", addr).Msg("serving metrics")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("metrics server failed")
			}
		}()
	}

	logger.Info().Int("workers", consumer.Workers).Msg("consumer started")
	var err = consumer.Run(ctx)
	logger.Info().Msg("consumer stopped")

	if server != nil {
		var shutdownCtx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if serr := server.Shutdown(shutdownCtx); serr != nil {
			logger.Error().Err(serr).Msg("metrics server shutdown failed")
		}
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// summaryPrinter writes each batch summary as one JSON line. Workers share
// w, so writes are serialized.
func summaryPrinter(w io.Writer, logger zerolog.Logger) func(vpcflow.BatchSummary) {
	var mu sync.Mutex
	var enc = json.NewEncoder(w)
	return func(summary vpcflow.BatchSummary) {
		mu.Lock()
		defer mu.Unlock()
		if err := enc.Encode(summary); err != nil {
			logger.Error().Err(err).Str("batch_id", summary.BatchID).Msg("cannot write batch summary")
		}
	}
}
