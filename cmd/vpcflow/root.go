package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/asecurityteam/go-vpcflow-ingest/internal/config"
	"github.com/asecurityteam/go-vpcflow-ingest/internal/logging"
)

const serviceName = "vpcflow"

var (
	cfgFile string
	v       = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "vpcflow",
	Short: "VPC flow log parser and queue consumer",
	Long: `vpcflow decodes and summarizes AWS VPC flow logs.

Use "parse" to convert local or S3 flow log files into JSON, CSV, parquet
or DOT output with an optional statistics report, and "consume" to run the
notification driven consumer against an SQS queue.`,
	SilenceUsage: true,
}

// Execute runs the command line. Cancelling ctx stops long running
// commands.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	var flags = rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./vpcflow.yaml when present)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.Bool("pretty", false, "human readable console logs")
	flags.String("region", "us-east-1", "AWS region")
	flags.String("endpoint", "", "AWS endpoint override, e.g. a local emulator")
	for key, name := range map[string]string{
		"logging.level":  "log-level",
		"logging.pretty": "pretty",
		"aws.region":     "region",
		"aws.endpoint":   "endpoint",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// setup loads the configuration and builds the process logger.
func setup() (*config.Config, zerolog.Logger, error) {
	var cfg, err = config.Load(v, cfgFile)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	var logger = logging.New(logging.Config{
		Level:    cfg.Logging.Level,
		Pretty:   cfg.Logging.Pretty,
		SampleN:  cfg.Logging.SampleN,
		Service:  serviceName,
		Instance: logging.Instance(),
	})
	return cfg, logger, nil
}

func newSession(cfg config.AWSConfig) (*session.Session, error) {
	var awsCfg = aws.Config{Region: aws.String(cfg.Region)}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	var sess, err = session.NewSessionWithOptions(session.Options{
		Config:            awsCfg,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return sess, nil
}
