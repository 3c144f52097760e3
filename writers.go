package vpcflow

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	json "github.com/goccy/go-json"
	"github.com/parquet-go/parquet-go"
)

// RecordWriter serializes typed records. Close flushes anything buffered
// but does not close the underlying io.Writer.
type RecordWriter interface {
	Write(Record) error
	Close() error
}

// OutputFormat names a RecordWriter implementation.
type OutputFormat string

// Supported output formats.
const (
	OutputJSON    OutputFormat = "json"
	OutputCSV     OutputFormat = "csv"
	OutputParquet OutputFormat = "parquet"
	OutputDOT     OutputFormat = "dot"
)

// NewRecordWriter returns the writer for format.
func NewRecordWriter(format OutputFormat, w io.Writer) (RecordWriter, error) {
	switch format {
	case OutputJSON:
		return NewJSONWriter(w), nil
	case OutputCSV:
		return NewCSVWriter(w), nil
	case OutputParquet:
		return NewParquetWriter(w), nil
	case OutputDOT:
		return NewDOTWriter(w), nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// JSONWriter writes records as one indented JSON array.
type JSONWriter struct {
	w     io.Writer
	count int
	buf   bytes.Buffer
}

// NewJSONWriter returns a JSONWriter on w.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

func (j *JSONWriter) Write(rec Record) error {
	var raw, err = rec.MarshalJSON()
	if err != nil {
		return err
	}
	j.buf.Reset()
	if j.count == 0 {
		j.buf.WriteString("[\n  ")
	} else {
		j.buf.WriteString(",\n  ")
	}
	if err := json.Indent(&j.buf, raw, "  ", "  "); err != nil {
		return err
	}
	j.count++
	_, err = j.w.Write(j.buf.Bytes())
	return err
}

func (j *JSONWriter) Close() error {
	var tail = "\n]\n"
	if j.count == 0 {
		tail = "[]\n"
	}
	_, err := io.WriteString(j.w, tail)
	return err
}

// CSVWriter writes records as CSV with a header row. The header is
// taken from the first record; later records are projected onto it.
type CSVWriter struct {
	w      *csv.Writer
	header []string
}

// NewCSVWriter returns a CSVWriter on w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

func (c *CSVWriter) Write(rec Record) error {
	if c.header == nil {
		c.header = append([]string{}, rec.Columns()...)
		if err := c.w.Write(c.header); err != nil {
			return err
		}
	}
	var row = make([]string, len(c.header))
	for i, col := range c.header {
		row[i] = rec.Get(col).String()
	}
	return c.w.Write(row)
}

func (c *CSVWriter) Close() error {
	c.w.Flush()
	return c.w.Error()
}

// FlowRow is the columnar layout written by ParquetWriter: every column
// of ExtendedSchema plus the derived columns, all optional.
type FlowRow struct {
	Version          *int64     `parquet:"version,optional"`
	AccountID        *string    `parquet:"account_id,optional"`
	InterfaceID      *string    `parquet:"interface_id,optional"`
	SrcAddr          *string    `parquet:"srcaddr,optional"`
	DstAddr          *string    `parquet:"dstaddr,optional"`
	SrcPort          *int64     `parquet:"srcport,optional"`
	DstPort          *int64     `parquet:"dstport,optional"`
	Protocol         *int64     `parquet:"protocol,optional"`
	Packets          *int64     `parquet:"packets,optional"`
	Bytes            *int64     `parquet:"bytes,optional"`
	WindowStart      *int64     `parquet:"windowstart,optional"`
	WindowEnd        *int64     `parquet:"windowend,optional"`
	Action           *string    `parquet:"action,optional"`
	LogStatus        *string    `parquet:"flowlogstatus,optional"`
	VPCID            *string    `parquet:"vpc_id,optional"`
	SubnetID         *string    `parquet:"subnet_id,optional"`
	InstanceID       *string    `parquet:"instance_id,optional"`
	TCPFlags         *int64     `parquet:"tcp_flags,optional"`
	Type             *string    `parquet:"type,optional"`
	PktSrcAddr       *string    `parquet:"pkt_srcaddr,optional"`
	PktDstAddr       *string    `parquet:"pkt_dstaddr,optional"`
	Region           *string    `parquet:"region,optional"`
	AZID             *string    `parquet:"az_id,optional"`
	SublocationType  *string    `parquet:"sublocation_type,optional"`
	SublocationID    *string    `parquet:"sublocation_id,optional"`
	PktSrcAWSService *string    `parquet:"pkt_src_aws_service,optional"`
	PktDstAWSService *string    `parquet:"pkt_dst_aws_service,optional"`
	FlowDirection    *string    `parquet:"flow_direction,optional"`
	TrafficPath      *int64     `parquet:"traffic_path,optional"`
	ProtocolName     *string    `parquet:"protocol_name,optional"`
	StartTime        *time.Time `parquet:"start_time,optional"`
	EndTime          *time.Time `parquet:"end_time,optional"`
	DurationSeconds  *int64     `parquet:"duration,optional"`
}

// NewFlowRow projects rec onto the FlowRow layout. Columns the layout
// does not know are dropped.
func NewFlowRow(rec Record) FlowRow {
	return FlowRow{
		Version:          intField(rec, ColVersion),
		AccountID:        stringField(rec, ColAccountID),
		InterfaceID:      stringField(rec, ColInterfaceID),
		SrcAddr:          stringField(rec, ColSrcAddr),
		DstAddr:          stringField(rec, ColDstAddr),
		SrcPort:          intField(rec, ColSrcPort),
		DstPort:          intField(rec, ColDstPort),
		Protocol:         intField(rec, ColProtocol),
		Packets:          intField(rec, ColPackets),
		Bytes:            intField(rec, ColBytes),
		WindowStart:      intField(rec, ColWindowStart),
		WindowEnd:        intField(rec, ColWindowEnd),
		Action:           stringField(rec, ColAction),
		LogStatus:        stringField(rec, ColLogStatus),
		VPCID:            stringField(rec, "vpc_id"),
		SubnetID:         stringField(rec, "subnet_id"),
		InstanceID:       stringField(rec, "instance_id"),
		TCPFlags:         intField(rec, ColTCPFlags),
		Type:             stringField(rec, "type"),
		PktSrcAddr:       stringField(rec, "pkt_srcaddr"),
		PktDstAddr:       stringField(rec, "pkt_dstaddr"),
		Region:           stringField(rec, "region"),
		AZID:             stringField(rec, "az_id"),
		SublocationType:  stringField(rec, "sublocation_type"),
		SublocationID:    stringField(rec, "sublocation_id"),
		PktSrcAWSService: stringField(rec, "pkt_src_aws_service"),
		PktDstAWSService: stringField(rec, "pkt_dst_aws_service"),
		FlowDirection:    stringField(rec, "flow_direction"),
		TrafficPath:      intField(rec, ColTrafficPath),
		ProtocolName:     stringField(rec, ColProtocolName),
		StartTime:        timeField(rec, ColStartTime),
		EndTime:          timeField(rec, ColEndTime),
		DurationSeconds:  intField(rec, ColDuration),
	}
}

func intField(rec Record, col string) *int64 {
	if n, ok := rec.Get(col).Int(); ok {
		return &n
	}
	return nil
}

func stringField(rec Record, col string) *string {
	var v = rec.Get(col)
	if v.IsNull() {
		return nil
	}
	var s = v.String()
	return &s
}

func timeField(rec Record, col string) *time.Time {
	if t, ok := rec.Get(col).Time(); ok {
		return &t
	}
	return nil
}

// ParquetWriter writes records as FlowRow rows.
type ParquetWriter struct {
	w *parquet.GenericWriter[FlowRow]
}

// NewParquetWriter returns a ParquetWriter on w.
func NewParquetWriter(w io.Writer) *ParquetWriter {
	return &ParquetWriter{w: parquet.NewGenericWriter[FlowRow](w)}
}

func (p *ParquetWriter) Write(rec Record) error {
	_, err := p.w.Write([]FlowRow{NewFlowRow(rec)})
	return err
}

func (p *ParquetWriter) Close() error {
	return p.w.Close()
}
