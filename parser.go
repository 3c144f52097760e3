package vpcflow

import (
	"io"
)

// FileParser is the standalone conversion pipeline: it decodes whole
// objects, writes every typed record to Writer and folds them into one
// report for the group. Each object is aggregated on its own and merged
// into the group report afterwards.
type FileParser struct {
	// Processor provides the schema, field policy, capabilities and logger
	// used to decode objects. Its Store is not used.
	Processor   *Processor
	Aggregation AggregatorOptions
	// Limit bounds the records decoded across all objects. Zero means no
	// limit.
	Limit int
	// Writer receives every record. A nil Writer only aggregates.
	Writer RecordWriter

	group   *Aggregator
	records int64
	files   int
}

// ParseFormat picks the decoder for a file given to the standalone tool:
// parquet and gzip text by extension, plain text otherwise.
func ParseFormat(key string) Format {
	if f := DetectFormat(key); f != FormatUnknown {
		return f
	}
	return FormatPlainText
}

// ParseObject decodes one object. The parser owns body and closes it.
// Records decoded before a failure are kept.
func (p *FileParser) ParseObject(key string, body io.ReadCloser, size int64) error {
	if p.group == nil {
		p.group = NewAggregator(p.Aggregation)
	}
	var log = p.Processor.Logger.With().Str("file", key).Logger()
	var it, _, err = p.Processor.Decode(key, body, size, ParseFormat(key))
	if err != nil {
		return err
	}
	var lineErrs, _ = it.(interface{ LineErrors() []error })

	var agg = NewAggregator(p.Aggregation)
	var werr error
	for !p.Done() && it.Iterate() {
		var rec = p.Processor.Schema.Type(it.Current())
		agg.Add(rec)
		p.records++
		if p.Writer != nil {
			if werr = p.Writer.Write(rec); werr != nil {
				break
			}
		}
	}
	var stats = it.Stats()
	var cerr = it.Close()
	p.group.Merge(agg)
	p.files++
	if lineErrs != nil {
		for _, e := range lineErrs.LineErrors() {
			log.Warn().Err(e).Msg("line rejected")
		}
	}
	log.Info().
		Int("lines", stats.Lines).
		Int("records", stats.Records).
		Int("skipped", stats.Skipped).
		Int("errors", stats.Errors).
		Msg("file parsed")
	if werr != nil {
		return werr
	}
	return cerr
}

// Done reports whether Limit has been reached.
func (p *FileParser) Done() bool {
	return p.Limit > 0 && p.records >= int64(p.Limit)
}

// Records is the number of records decoded so far.
func (p *FileParser) Records() int64 {
	return p.records
}

// Files is the number of objects parsed so far, including failed ones.
func (p *FileParser) Files() int {
	return p.files
}

// Report is the group report over every parsed object.
func (p *FileParser) Report() Report {
	if p.group == nil {
		return NewAggregator(p.Aggregation).Report()
	}
	return p.group.Report()
}
