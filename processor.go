package vpcflow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Status is the outcome of processing one object event.
type Status string

// Outcomes of a Result.
const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusSkipped Status = "skipped"
)

// maxBodyExcerpt bounds how much of a malformed notification body is
// echoed back in its result.
const maxBodyExcerpt = 200

// Result is the outcome of processing one object event, or of a
// notification that could not be unwrapped at all.
type Result struct {
	Status       Status       `json:"status"`
	Format       Format       `json:"format,omitempty"`
	File         string       `json:"file,omitempty"`
	RecordsCount *int64       `json:"recordsCount,omitempty"`
	FileSize     *int64       `json:"fileSize,omitempty"`
	Statistics   *Report      `json:"statistics,omitempty"`
	Decode       *DecodeStats `json:"decode,omitempty"`
	LineErrors   []string     `json:"lineErrors,omitempty"`
	Message      string       `json:"message,omitempty"`
	Error        string       `json:"error,omitempty"`
	MessageBody  string       `json:"messageBody,omitempty"`
	// Err is the cause of an error result.
	Err error `json:"-"`
}

func errorResult(format Format, file string, err error) Result {
	return Result{Status: StatusError, Format: format, File: file, Error: err.Error(), Err: err}
}

// BatchSummary counts the outcomes of a notification batch and keeps the
// individual results in processing order.
type BatchSummary struct {
	BatchID    string   `json:"batchId,omitempty"`
	TotalFiles int      `json:"totalFiles"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Skipped    int      `json:"skipped"`
	Results    []Result `json:"results"`
}

// NewBatchSummary starts an empty summary with a fresh batch id.
func NewBatchSummary() *BatchSummary {
	return &BatchSummary{BatchID: uuid.NewString(), Results: []Result{}}
}

// Add records results in order.
func (s *BatchSummary) Add(results ...Result) {
	for _, r := range results {
		s.TotalFiles++
		switch r.Status {
		case StatusSuccess:
			s.Successful++
		case StatusError:
			s.Failed++
		case StatusSkipped:
			s.Skipped++
		}
		s.Results = append(s.Results, r)
	}
}

// Capabilities are the optional features available to a Processor,
// resolved once at startup.
type Capabilities struct {
	// Columnar enables parquet decoding. Without it parquet objects are
	// reported with their size only.
	Columnar bool
}

// Processor drives unwrap, detect, decode, type and aggregate for
// notification batches. It holds no state between calls, so one
// Processor may serve concurrent batches.
type Processor struct {
	Store        ObjectStore
	Schema       Schema
	Policy       FieldPolicy
	Capabilities Capabilities
	Aggregation  AggregatorOptions
	// Limit bounds the records decoded per object. Zero means no limit.
	Limit  int
	Logger zerolog.Logger
}

// ProcessBatch processes every notification body in order. A failure in
// one body or object never stops the others.
func (p *Processor) ProcessBatch(ctx context.Context, bodies []string) BatchSummary {
	var summary = NewBatchSummary()
	for _, body := range bodies {
		summary.Add(p.ProcessMessage(ctx, body)...)
	}
	p.Logger.Info().
		Str("batch_id", summary.BatchID).
		Int("total", summary.TotalFiles).
		Int("successful", summary.Successful).
		Int("failed", summary.Failed).
		Int("skipped", summary.Skipped).
		Msg("batch processed")
	return *summary
}

// ProcessMessage unwraps one notification body and processes each
// storage event it announces. An unparseable body yields a single error
// result.
func (p *Processor) ProcessMessage(ctx context.Context, body string) []Result {
	var events, err = UnwrapNotification([]byte(body))
	if err != nil {
		p.Logger.Error().Err(err).Msg("cannot unwrap notification")
		var r = errorResult("", "", err)
		r.MessageBody = excerpt(body)
		return []Result{r}
	}
	var results = make([]Result, 0, len(events))
	for _, ev := range events {
		results = append(results, p.ProcessEvent(ctx, ev))
	}
	return results
}

func excerpt(body string) string {
	if len(body) <= maxBodyExcerpt {
		return body
	}
	return body[:maxBodyExcerpt] + "..."
}

// ProcessEvent runs the decode and aggregate pipeline for one object and
// captures its outcome.
func (p *Processor) ProcessEvent(ctx context.Context, ev ObjectEvent) Result {
	if ev.Bucket == "" || ev.Key == "" {
		var err = errors.New("storage event is missing the bucket name or object key")
		p.Logger.Error().Err(err).Msg("cannot process event")
		return errorResult("", "", err)
	}
	var file = ev.URI()
	var log = p.Logger.With().Str("bucket", ev.Bucket).Str("key", ev.Key).Logger()

	var format = DetectFormat(ev.Key)
	switch {
	case format == FormatUnknown:
		log.Warn().Msg("skipping object with unrecognized format")
		return Result{Status: StatusSkipped, Format: format, File: file, Message: "unrecognized file format"}
	case format == FormatParquet && !p.Capabilities.Columnar:
		var size, err = p.Store.Head(ctx, ev.Bucket, ev.Key)
		if err != nil {
			log.Error().Err(err).Msg("cannot read object metadata")
			return errorResult(format, file, err)
		}
		log.Warn().Err(ErrDependencyUnavailable).Int64("size", size).Msg("reporting file metadata only")
		return Result{
			Status:   StatusSuccess,
			Format:   format,
			File:     file,
			FileSize: &size,
			Message:  ErrDependencyUnavailable.Error() + "; reporting file metadata only",
		}
	}

	var it, size, err = p.Open(ctx, ev.Bucket, ev.Key, format)
	if err != nil {
		log.Error().Err(err).Msg("cannot open object")
		return errorResult(format, file, err)
	}
	var lineErrs, _ = it.(interface{ LineErrors() []error })
	if p.Limit > 0 {
		it = &LimitIterator{Limit: p.Limit, RecordIterator: it}
	}

	var agg = NewAggregator(p.Aggregation)
	for it.Iterate() {
		agg.Add(p.Schema.Type(it.Current()))
	}
	var stats = it.Stats()
	if err := it.Close(); err != nil {
		log.Error().Err(err).Int("records", stats.Records).Msg("cannot decode object")
		return errorResult(format, file, err)
	}

	var count = agg.Total()
	var report = agg.Report()
	var result = Result{
		Status:       StatusSuccess,
		Format:       format,
		File:         file,
		RecordsCount: &count,
		FileSize:     &size,
		Statistics:   &report,
		Decode:       &stats,
	}
	if lineErrs != nil {
		for _, e := range lineErrs.LineErrors() {
			result.LineErrors = append(result.LineErrors, e.Error())
		}
	}
	log.Info().Str("format", string(format)).Int64("records", count).Int("line_errors", stats.Errors).Msg("object processed")
	return result
}

// Open reads an object from the store and returns a decoder for format
// together with the object size.
func (p *Processor) Open(ctx context.Context, bucket string, key string, format Format) (RecordIterator, int64, error) {
	if format == FormatParquet && !p.Capabilities.Columnar {
		return nil, 0, ErrDependencyUnavailable
	}
	if format != FormatText && format != FormatParquet {
		return nil, 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, key)
	}
	var body, size, err = p.Store.Get(ctx, bucket, key)
	if err != nil {
		return nil, 0, err
	}
	return p.Decode(key, body, size, format)
}

// Decode returns a decoder for an already opened object stream. The
// decoder owns body and closes it. A negative size means unknown.
func (p *Processor) Decode(key string, body io.ReadCloser, size int64, format Format) (RecordIterator, int64, error) {
	switch format {
	case FormatText:
		var it, err = NewTextIterator(body, p.Schema, p.Policy, p.Logger.With().Str("key", key).Logger())
		if err != nil {
			return nil, 0, err
		}
		return it, size, nil
	case FormatPlainText:
		return NewPlainTextIterator(body, p.Schema, p.Policy, p.Logger.With().Str("key", key).Logger()), size, nil
	case FormatParquet:
		if !p.Capabilities.Columnar {
			_ = body.Close()
			return nil, 0, ErrDependencyUnavailable
		}
		var ra, n, err = readerAt(body, size)
		if err != nil {
			_ = body.Close()
			return nil, 0, err
		}
		var it, cerr = NewColumnarIterator(ra, n)
		if cerr != nil {
			_ = body.Close()
			return nil, 0, cerr
		}
		return &closingIterator{RecordIterator: it, closer: body}, n, nil
	}
	_ = body.Close()
	return nil, 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, key)
}

// readerAt gives random access to an object stream, buffering it in
// memory when the stream cannot seek on its own.
func readerAt(body io.Reader, size int64) (io.ReaderAt, int64, error) {
	if ra, ok := body.(io.ReaderAt); ok && size >= 0 {
		return ra, size, nil
	}
	var data, err = io.ReadAll(body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s", ErrStorageUnavailable, err)
	}
	return bytes.NewReader(data), int64(len(data)), nil
}
