package vpcflow

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []Record {
	var accepted = BaseSchema.Type(RawRecord{Fields: strings.Split(scenarioLine, " ")})
	var rejected = BaseSchema.Type(RawRecord{Fields: strings.Split(
		"2 acct eni-2 10.0.0.2 10.0.0.3 22 4000 17 1 40 1000 1060 REJECT OK vpc1 sub1 i-2 0 IPv4 - -", " ")})
	var nodata = BaseSchema.Type(RawRecord{Fields: strings.Split(
		"2 acct eni-3 - - - - - - - 1000 1060 - NODATA vpc1 sub1 - - IPv4 - -", " ")})
	return []Record{accepted, rejected, nodata}
}

func writeAll(t *testing.T, w RecordWriter, recs []Record) {
	t.Helper()
	for _, rec := range recs {
		require.NoError(t, w.Write(rec))
	}
	require.NoError(t, w.Close())
}

func TestNewRecordWriter(t *testing.T) {
	for _, f := range []OutputFormat{OutputJSON, OutputCSV, OutputParquet, OutputDOT} {
		var w, err = NewRecordWriter(f, &bytes.Buffer{})
		require.NoError(t, err)
		assert.NotNil(t, w)
	}
	var _, err = NewRecordWriter("xml", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	writeAll(t, NewJSONWriter(&buf), sampleRecords())

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, float64(500), decoded[0][ColBytes])
	assert.Equal(t, "TCP", decoded[0][ColProtocolName])
	assert.Equal(t, "1970-01-01T00:16:40Z", decoded[0][ColStartTime])
	assert.Nil(t, decoded[2][ColSrcAddr])
	assert.True(t, strings.HasPrefix(buf.String(), "[\n  {"))
}

func TestJSONWriterEmpty(t *testing.T) {
	var buf bytes.Buffer
	writeAll(t, NewJSONWriter(&buf), nil)
	assert.Equal(t, "[]\n", buf.String())
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	writeAll(t, NewCSVWriter(&buf), sampleRecords())

	var rows, err = csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, ColVersion, rows[0][0])
	assert.Equal(t, len(rows[0]), len(rows[1]))
	assert.Equal(t, "10.0.0.1", rows[1][3])
	assert.Equal(t, "", rows[3][3])
}

func TestParquetWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	writeAll(t, NewParquetWriter(&buf), sampleRecords())

	var rows, err = parquet.Read[FlowRow](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "10.0.0.1", *rows[0].SrcAddr)
	assert.Equal(t, int64(500), *rows[0].Bytes)
	assert.Equal(t, "UDP", *rows[1].ProtocolName)
	assert.Equal(t, int64(60), *rows[1].DurationSeconds)
	assert.Nil(t, rows[2].SrcAddr)
	assert.Nil(t, rows[2].Region)

	// the written file decodes back through the columnar reader
	var it, ierr = NewColumnarIterator(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, ierr)
	var count int
	for it.Iterate() {
		count++
	}
	assert.NoError(t, it.Close())
	assert.Equal(t, 3, count)
}

func TestDOTWriter(t *testing.T) {
	var buf bytes.Buffer
	writeAll(t, NewDOTWriter(&buf), sampleRecords())

	var out = buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph {"))
	assert.Contains(t, out, "n10_0_0_1 -> n10_0_0_2")
	assert.Contains(t, out, "n10_0_0_2 -> n10_0_0_3")
	assert.Contains(t, out, `vpcflow_bytes="500"`)
	assert.Contains(t, out, `vpcflow_protocol="UDP"`)
	assert.Contains(t, out, "color=red")
	assert.Contains(t, out, "color=green")
	assert.Contains(t, out, `label="10.0.0.3"`)
	assert.Equal(t, 1, strings.Count(out, `n10_0_0_2 [label="10.0.0.2"]`))
}
