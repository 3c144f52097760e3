package vpcflow

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"
)

const columnarBatchSize = 128

// ColumnarIterator decodes a parquet flow log object row by row. Column
// names come from the schema embedded in the file, not from a preset.
type ColumnarIterator struct {
	file    *parquet.File
	names   []string
	groups  []parquet.RowGroup
	group   int
	rows    parquet.Rows
	buf     []parquet.Row
	pos     int
	n       int
	current RawRecord
	stats   DecodeStats
	err     error
	done    bool
}

// NewColumnarIterator opens a parquet decoder over r.
func NewColumnarIterator(r io.ReaderAt, size int64) (*ColumnarIterator, error) {
	var f, err = parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: parquet: %s", ErrDecodeFailure, err)
	}
	var paths = f.Schema().Columns()
	var names = make([]string, 0, len(paths))
	for _, path := range paths {
		names = append(names, strings.Join(path, "."))
	}
	return &ColumnarIterator{
		file:   f,
		names:  names,
		groups: f.RowGroups(),
		buf:    make([]parquet.Row, columnarBatchSize),
	}, nil
}

// Columns returns the leaf column names of the file schema.
func (it *ColumnarIterator) Columns() []string {
	return it.names
}

// Iterate moves to the next row, crossing row groups as needed.
func (it *ColumnarIterator) Iterate() bool {
	for !it.done {
		if it.pos < it.n {
			it.current = it.convert(it.buf[it.pos])
			it.pos++
			it.stats.Lines++
			it.stats.Records++
			return true
		}
		if it.rows == nil {
			if it.group >= len(it.groups) {
				it.done = true
				break
			}
			it.rows = it.groups[it.group].Rows()
			it.group++
		}
		var n, err = it.rows.ReadRows(it.buf)
		it.pos, it.n = 0, n
		if errors.Is(err, io.EOF) || (err == nil && n == 0) {
			_ = it.rows.Close()
			it.rows = nil
			continue
		}
		if err != nil {
			it.err = fmt.Errorf("%w: parquet row group %d: %s", ErrDecodeFailure, it.group-1, err)
			it.done = true
		}
	}
	it.current = RawRecord{}
	return false
}

func (it *ColumnarIterator) convert(row parquet.Row) RawRecord {
	var values = make([]Value, len(it.names))
	for _, v := range row {
		var col = v.Column()
		if col < 0 || col >= len(values) {
			continue
		}
		values[col] = columnarValue(v)
	}
	return RawRecord{
		Line:   it.stats.Lines + 1,
		Names:  it.names,
		Values: values,
	}
}

func columnarValue(v parquet.Value) Value {
	if v.IsNull() {
		return NullValue()
	}
	switch v.Kind() {
	case parquet.Boolean:
		return StringValue(strconv.FormatBool(v.Boolean()))
	case parquet.Int32:
		return IntValue(int64(v.Int32()))
	case parquet.Int64:
		return IntValue(v.Int64())
	case parquet.Float:
		return StringValue(strconv.FormatFloat(float64(v.Float()), 'f', -1, 32))
	case parquet.Double:
		return StringValue(strconv.FormatFloat(v.Double(), 'f', -1, 64))
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return StringValue(string(v.ByteArray()))
	}
	return StringValue(v.String())
}

// Current returns the row most recently read by Iterate.
func (it *ColumnarIterator) Current() RawRecord {
	return it.current
}

// Stats reports the accounting gathered so far.
func (it *ColumnarIterator) Stats() DecodeStats {
	return it.stats
}

// Close releases the current row group reader and returns the error, if
// any, that stopped iteration.
func (it *ColumnarIterator) Close() error {
	it.done = true
	if it.rows != nil {
		_ = it.rows.Close()
		it.rows = nil
	}
	return it.err
}
