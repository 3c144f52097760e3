package vpcflow

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
)

const (
	// maxLineBytes bounds a single text line. Flow log lines are a few
	// hundred bytes; anything larger is treated as corruption.
	maxLineBytes = 1 << 20
	// maxLineErrors bounds how many rejected lines are kept for reporting.
	maxLineErrors = 10
)

// TextIterator decodes a space delimited flow log object line by line,
// gzip compressed or plain. Decompression is streamed; the object is never
// held in memory as a whole.
type TextIterator struct {
	Schema Schema
	Policy FieldPolicy
	Logger zerolog.Logger

	source  io.ReadCloser
	gz      *gzip.Reader
	scanner *bufio.Scanner
	current RawRecord
	line    int
	stats   DecodeStats
	errs    []error
	err     error
	done    bool
}

// NewTextIterator opens a text decoder over r. The iterator owns r and
// closes it on Close. A stream that is not gzip data fails immediately
// with ErrDecodeFailure.
func NewTextIterator(r io.ReadCloser, schema Schema, policy FieldPolicy, logger zerolog.Logger) (*TextIterator, error) {
	var gz, err = gzip.NewReader(r)
	if err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("%w: %s", ErrDecodeFailure, err)
	}
	var it = newTextIterator(r, gz, schema, policy, logger)
	it.gz = gz
	return it, nil
}

// NewPlainTextIterator decodes an uncompressed flow log stream, such as a
// file exported by hand. It owns r and closes it on Close.
func NewPlainTextIterator(r io.ReadCloser, schema Schema, policy FieldPolicy, logger zerolog.Logger) *TextIterator {
	return newTextIterator(r, r, schema, policy, logger)
}

func newTextIterator(source io.ReadCloser, lines io.Reader, schema Schema, policy FieldPolicy, logger zerolog.Logger) *TextIterator {
	var scanner = bufio.NewScanner(lines)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &TextIterator{
		Schema:  schema,
		Policy:  policy,
		Logger:  logger,
		source:  source,
		scanner: scanner,
	}
}

// Iterate moves to the next accepted line.
func (it *TextIterator) Iterate() bool {
	if it.done {
		return false
	}
	var want = it.Schema.Len()
	for it.scanner.Scan() {
		it.line++
		var line = strings.TrimSpace(it.scanner.Text())
		if line == "" {
			continue
		}
		if !utf8.ValidString(line) {
			it.fail(fmt.Errorf("%w: line %d is not valid UTF-8", ErrDecodeFailure, it.line))
			return false
		}
		it.stats.Lines++
		var fields = strings.Split(line, " ")
		if it.stats.Lines == 1 && fields[0] == ColVersion {
			// AWS writes the log format as the first line of every object.
			it.stats.Skipped++
			continue
		}

		switch it.Policy {
		case PolicyStrict:
			if len(fields) != want {
				var err = &FieldCountMismatchError{Line: it.line, Want: want, Got: len(fields)}
				it.stats.Errors++
				if len(it.errs) < maxLineErrors {
					it.errs = append(it.errs, err)
				}
				it.Logger.Warn().Int("line", it.line).Int("fields", len(fields)).Int("want", want).Msg("field count mismatch")
				continue
			}
		default:
			if len(fields) < want {
				it.stats.Skipped++
				it.Logger.Warn().Int("line", it.line).Int("fields", len(fields)).Int("want", want).Msg("too few fields, skipping line")
				continue
			}
			fields = fields[:want]
		}

		it.stats.Records++
		it.current = RawRecord{Line: it.line, Fields: fields}
		return true
	}
	if err := it.scanner.Err(); err != nil {
		it.fail(fmt.Errorf("%w: %s", ErrDecodeFailure, err))
		return false
	}
	it.done = true
	it.current = RawRecord{}
	return false
}

func (it *TextIterator) fail(err error) {
	it.err = err
	it.done = true
	it.current = RawRecord{}
}

// Current returns the line most recently accepted by Iterate.
func (it *TextIterator) Current() RawRecord {
	return it.current
}

// Stats reports the accounting gathered so far.
func (it *TextIterator) Stats() DecodeStats {
	return it.stats
}

// LineErrors returns the first rejected lines under the strict policy.
func (it *TextIterator) LineErrors() []error {
	return it.errs
}

// Close releases the decompressor and the source stream and returns the
// error, if any, that stopped iteration.
func (it *TextIterator) Close() error {
	it.done = true
	if it.gz != nil {
		_ = it.gz.Close()
	}
	_ = it.source.Close()
	return it.err
}
