package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/service/s3"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	vpcflow "github.com/asecurityteam/go-vpcflow-ingest"
)

const (
	maxPrefixFiles    = 10
	prefetchMaxBytes  = 256 << 20
	prefetchParallel  = 4
	defaultStatsFile  = "flow_log_stats.json"
	defaultOutputBase = "flow_logs"
)

type parseOptions struct {
	localFile string
	s3File    string
	s3Prefix  string
	format    string
	output    string
	stats     bool
	statsOnly bool
	limit     int
	schema    string
	policy    string
	topN      int
	portTopN  int
	ipCap     int
	accounts  []string
	regions   []string
	since     string
	until     string
}

var parseOpts parseOptions

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Convert flow log files and summarize them",
	Long: `Decode one local file, the first 10 flow log files of a local directory,
one S3 object or the first 10 flow log objects under an S3 prefix. Local files
not ending in .gz or .parquet are read as uncompressed text. Records are written as JSON, CSV, parquet or a DOT graph,
and an aggregate statistics report can be written alongside.`,
	Example: `  vpcflow parse --local-file 123456789012_vpcflowlogs_us-east-1_fl-1_20240101T0000Z_abc.log.gz --stats
  vpcflow parse --s3-file my-bucket AWSLogs/123456789012/vpcflowlogs/us-east-1/2024/01/01/file.log.gz --format csv
  vpcflow parse --s3-prefix my-bucket AWSLogs/123456789012/vpcflowlogs/ --stats-only`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg, logger, err = setup()
		if err != nil {
			return err
		}
		var in, ierr = resolveInput(parseOpts, args)
		if ierr != nil {
			return ierr
		}
		var schema, serr = vpcflow.SchemaByName(parseOpts.schema)
		if serr != nil {
			return serr
		}
		var policy, perr = vpcflow.ParseFieldPolicy(parseOpts.policy)
		if perr != nil {
			return perr
		}

		var run = &parseRun{
			opts:   parseOpts,
			input:  in,
			stdout: cmd.OutOrStdout(),
			logger: logger,
			parser: &vpcflow.FileParser{
				Processor: &vpcflow.Processor{
					Schema:       schema,
					Policy:       policy,
					Capabilities: vpcflow.Capabilities{Columnar: cfg.Decode.Columnar},
					Logger:       logger,
				},
				Aggregation: vpcflow.AggregatorOptions{
					TopN:      parseOpts.topN,
					PortTopN:  parseOpts.portTopN,
					IPCap:     parseOpts.ipCap,
					Breakdown: true,
				},
				Limit: parseOpts.limit,
			},
		}
		if in.kind != inputLocal {
			var sess, err = newSession(cfg.AWS)
			if err != nil {
				return err
			}
			run.s3 = s3.New(sess)
		}
		return run.execute(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	var flags = parseCmd.Flags()
	flags.StringVar(&parseOpts.localFile, "local-file", "", "local flow log file or directory")
	flags.StringVar(&parseOpts.s3File, "s3-file", "", "S3 object: --s3-file BUCKET KEY")
	flags.StringVar(&parseOpts.s3Prefix, "s3-prefix", "", "S3 prefix, first 10 files: --s3-prefix BUCKET PREFIX")
	flags.StringVar(&parseOpts.format, "format", string(vpcflow.OutputJSON), "output format: json, csv, parquet, dot")
	flags.StringVarP(&parseOpts.output, "output", "o", "", "output file (default: flow_logs.<format>)")
	flags.BoolVar(&parseOpts.stats, "stats", false, "also write a statistics report")
	flags.BoolVar(&parseOpts.statsOnly, "stats-only", false, "only write the statistics report")
	flags.IntVar(&parseOpts.limit, "limit", 0, "maximum number of records to decode")
	flags.StringVar(&parseOpts.schema, "schema", vpcflow.BaseSchema.Name, "field layout: base, extended")
	flags.StringVar(&parseOpts.policy, "policy", vpcflow.PolicyStrict.String(), "field count policy: strict, permissive")
	flags.IntVar(&parseOpts.topN, "top-n", 10, "entries in the protocol and address rankings")
	flags.IntVar(&parseOpts.portTopN, "port-top-n", 10, "entries in the port rankings, 0 to omit them")
	flags.IntVar(&parseOpts.ipCap, "ip-cap", 0, "distinct addresses tracked, 0 for all")
	flags.StringSliceVar(&parseOpts.accounts, "account", nil, "when listing, only files of these account ids")
	flags.StringSliceVar(&parseOpts.regions, "log-region", nil, "when listing, only files of these regions")
	flags.StringVar(&parseOpts.since, "since", "", "when listing, only files delivered at or after this RFC3339 time")
	flags.StringVar(&parseOpts.until, "until", "", "when listing, only files delivered at or before this RFC3339 time")
	parseCmd.MarkFlagsMutuallyExclusive("local-file", "s3-file", "s3-prefix")
	parseCmd.MarkFlagsOneRequired("local-file", "s3-file", "s3-prefix")
}

type inputKind int

const (
	inputLocal inputKind = iota
	inputS3File
	inputS3Prefix
)

type parseInput struct {
	kind   inputKind
	bucket string
	key    string
}

func resolveInput(opts parseOptions, args []string) (parseInput, error) {
	switch {
	case opts.localFile != "":
		if len(args) > 0 {
			return parseInput{}, fmt.Errorf("unexpected argument %q", args[0])
		}
		return parseInput{kind: inputLocal, key: opts.localFile}, nil
	case opts.s3File != "":
		if len(args) != 1 {
			return parseInput{}, errors.New("--s3-file needs BUCKET and KEY")
		}
		return parseInput{kind: inputS3File, bucket: opts.s3File, key: args[0]}, nil
	case opts.s3Prefix != "":
		var prefix string
		if len(args) == 1 {
			prefix = args[0]
		}
		return parseInput{kind: inputS3Prefix, bucket: opts.s3Prefix, key: prefix}, nil
	}
	return parseInput{}, errors.New("one of --local-file, --s3-file or --s3-prefix is required")
}

// outputPaths returns the record and statistics file names.
func outputPaths(opts parseOptions) (string, string) {
	var output = opts.output
	if output == "" {
		output = defaultOutputBase + "." + opts.format
	}
	var stats = defaultStatsFile
	if opts.output != "" {
		stats = strings.TrimSuffix(opts.output, filepath.Ext(opts.output)) + "_stats.json"
	}
	return output, stats
}

type parseRun struct {
	opts   parseOptions
	input  parseInput
	s3     *s3.S3
	parser *vpcflow.FileParser
	stdout io.Writer
	logger zerolog.Logger
}

func (r *parseRun) execute(ctx context.Context) error {
	var outputPath, statsPath = outputPaths(r.opts)
	if !r.opts.statsOnly {
		var w, err = newLazyWriter(vpcflow.OutputFormat(r.opts.format), outputPath)
		if err != nil {
			return err
		}
		r.parser.Writer = w
	}

	var perr = r.parseInput(ctx)
	if r.parser.Writer != nil {
		if err := r.parser.Writer.Close(); err != nil && perr == nil {
			perr = err
		}
	}
	if perr != nil {
		return perr
	}
	r.logger.Info().Int64("records", r.parser.Records()).Int("files", r.parser.Files()).Msg("parsing finished")

	var report = r.parser.Report()
	if r.opts.stats || r.opts.statsOnly {
		if err := writeReport(statsPath, report); err != nil {
			return err
		}
		r.logger.Info().Str("path", statsPath).Msg("statistics written")
	}
	printSummary(r.stdout, report, r.parser.Files())
	if lw, ok := r.parser.Writer.(*lazyWriter); ok && lw.opened() {
		fmt.Fprintf(r.stdout, "Records written to %s\n", outputPath)
	}
	return nil
}

func (r *parseRun) parseInput(ctx context.Context) error {
	switch r.input.kind {
	case inputLocal:
		if info, err := os.Stat(r.input.key); err == nil && info.IsDir() {
			return r.parseDir(ctx)
		}
		var body, size, err = vpcflow.LocalStore{}.Get(ctx, "", r.input.key)
		if err != nil {
			return err
		}
		return r.parser.ParseObject(r.input.key, body, size)
	case inputS3File:
		var store = &vpcflow.S3Store{Client: r.s3}
		var body, size, err = store.Get(ctx, r.input.bucket, r.input.key)
		if err != nil {
			return err
		}
		return r.parser.ParseObject(r.input.key, body, size)
	}

	var filter, err = prefixFilter(r.opts)
	if err != nil {
		return err
	}
	var store = &vpcflow.S3Store{Client: r.s3}
	var iter = &vpcflow.BucketLimit{
		Limit: maxPrefixFiles,
		BucketIterator: &vpcflow.BucketFilter{
			Filter:         filter,
			BucketIterator: store.List(ctx, r.input.bucket, r.input.key),
		},
	}
	var fetcher = vpcflow.NewPrefetcher(vpcflow.NewS3Downloader(r.s3), iter, prefetchMaxBytes, prefetchParallel)
	fetcher.Start(ctx)
	for !r.parser.Done() {
		var obj, ok = fetcher.Next()
		if !ok {
			break
		}
		var log = r.logger.With().Str("bucket", obj.File.Bucket).Str("key", obj.File.Key).Logger()
		if obj.Err != nil {
			log.Error().Err(obj.Err).Msg("cannot download file")
			continue
		}
		if err := r.parser.ParseObject(obj.File.Key, obj.Body(), int64(len(obj.Data))); err != nil {
			log.Error().Err(err).Msg("cannot parse file")
		}
	}
	return fetcher.Close()
}

// parseDir parses the flow log files found under a local directory with
// the same selection rules as an S3 prefix.
func (r *parseRun) parseDir(ctx context.Context) error {
	var filter, err = prefixFilter(r.opts)
	if err != nil {
		return err
	}
	var store vpcflow.LocalStore
	var iter = &vpcflow.BucketLimit{
		Limit: maxPrefixFiles,
		BucketIterator: &vpcflow.BucketFilter{
			Filter:         filter,
			BucketIterator: store.List(ctx, "", r.input.key),
		},
	}
	for !r.parser.Done() && iter.Iterate() {
		var lf = iter.Current()
		var log = r.logger.With().Str("path", lf.Key).Logger()
		var body, size, gerr = store.Get(ctx, "", lf.Key)
		if gerr != nil {
			log.Error().Err(gerr).Msg("cannot open file")
			continue
		}
		if perr := r.parser.ParseObject(lf.Key, body, size); perr != nil {
			log.Error().Err(perr).Msg("cannot parse file")
		}
	}
	return iter.Close()
}

// prefixFilter selects the listed objects worth parsing: flow log formats
// only, narrowed by the account, region and time flags.
func prefixFilter(opts parseOptions) (vpcflow.LogFileFilter, error) {
	var filters = vpcflow.MultiLogFileFilter{
		vpcflow.LogFileFormatFilter{Formats: []vpcflow.Format{vpcflow.FormatText, vpcflow.FormatParquet}},
	}
	if len(opts.accounts) > 0 {
		filters = append(filters, vpcflow.LogFileAccountFilter{Account: toSet(opts.accounts)})
	}
	if len(opts.regions) > 0 {
		filters = append(filters, vpcflow.LogFileRegionFilter{Region: toSet(opts.regions)})
	}
	if opts.since != "" || opts.until != "" {
		var bound vpcflow.LogFileTimeFilter
		var err error
		if opts.since != "" {
			if bound.Start, err = time.Parse(time.RFC3339, opts.since); err != nil {
				return nil, fmt.Errorf("invalid --since: %w", err)
			}
		}
		if opts.until != "" {
			if bound.End, err = time.Parse(time.RFC3339, opts.until); err != nil {
				return nil, fmt.Errorf("invalid --until: %w", err)
			}
		}
		filters = append(filters, bound)
	}
	return filters, nil
}

func toSet(values []string) map[string]bool {
	var set = make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// lazyWriter creates the output file on the first record, so runs that
// decode nothing leave no empty output behind.
type lazyWriter struct {
	format vpcflow.OutputFormat
	path   string
	file   *os.File
	w      vpcflow.RecordWriter
}

func newLazyWriter(format vpcflow.OutputFormat, path string) (*lazyWriter, error) {
	// Validate the format before any decoding happens.
	if _, err := vpcflow.NewRecordWriter(format, io.Discard); err != nil {
		return nil, err
	}
	return &lazyWriter{format: format, path: path}, nil
}

func (l *lazyWriter) opened() bool { return l.file != nil }

func (l *lazyWriter) Write(rec vpcflow.Record) error {
	if l.w == nil {
		var f, err = os.Create(l.path)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		l.file = f
		l.w, _ = vpcflow.NewRecordWriter(l.format, f)
	}
	return l.w.Write(rec)
}

func (l *lazyWriter) Close() error {
	if l.w == nil {
		return nil
	}
	var err = l.w.Close()
	if cerr := l.file.Close(); err == nil {
		err = cerr
	}
	return err
}

func writeReport(path string, report vpcflow.Report) error {
	var data, err = json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func printSummary(w io.Writer, report vpcflow.Report, files int) {
	fmt.Fprintf(w, "\n=== Flow Log Statistics ===\n")
	fmt.Fprintf(w, "Files:         %d\n", files)
	if report.Empty() {
		fmt.Fprintf(w, "%s\n", report.Message)
		return
	}
	var s = report.Statistics
	fmt.Fprintf(w, "Total records: %d\n", s.TotalRecords)
	fmt.Fprintf(w, "Total bytes:   %d\n", s.Traffic.TotalBytes)
	fmt.Fprintf(w, "Total packets: %d\n", s.Traffic.TotalPackets)
	if s.UniqueSrcIPs > 0 || s.UniqueDstIPs > 0 {
		fmt.Fprintf(w, "Unique sources:      %d\n", s.UniqueSrcIPs)
		fmt.Fprintf(w, "Unique destinations: %d\n", s.UniqueDstIPs)
	}
	fmt.Fprintf(w, "\nActions:\n")
	if len(s.Actions) == 0 {
		fmt.Fprintf(w, "  ACCEPT: %d\n  REJECT: %d\n", s.Traffic.AcceptFlows, s.Traffic.RejectFlows)
	}
	for _, c := range s.Actions {
		fmt.Fprintf(w, "  %s: %d\n", c.Key, c.Count)
	}
	if len(s.TopProtocols) > 0 {
		fmt.Fprintf(w, "\nProtocols:\n")
		for _, c := range s.TopProtocols {
			fmt.Fprintf(w, "  %s: %d\n", protocolLabel(c.Key), c.Count)
		}
	}
	if s.TimeRange != nil {
		fmt.Fprintf(w, "\nWindow: %d - %d (%ds)\n", s.TimeRange.Start, s.TimeRange.End, s.TimeRange.DurationSeconds)
	}
}

func protocolLabel(key string) string {
	var n, err = strconv.ParseInt(key, 10, 64)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%s (%s)", vpcflow.ProtocolName(n), key)
}
