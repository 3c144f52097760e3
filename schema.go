package vpcflow

import "fmt"

// Column names shared by the schema presets and read by the aggregator.
const (
	ColVersion      = "version"
	ColAccountID    = "account_id"
	ColInterfaceID  = "interface_id"
	ColSrcAddr      = "srcaddr"
	ColDstAddr      = "dstaddr"
	ColSrcPort      = "srcport"
	ColDstPort      = "dstport"
	ColProtocol     = "protocol"
	ColPackets      = "packets"
	ColBytes        = "bytes"
	ColWindowStart  = "windowstart"
	ColWindowEnd    = "windowend"
	ColAction       = "action"
	ColLogStatus    = "flowlogstatus"
	ColTCPFlags     = "tcp_flags"
	ColTrafficPath  = "traffic_path"
	ColProtocolName = "protocol_name"
	ColStartTime    = "start_time"
	ColEndTime      = "end_time"
	ColDuration     = "duration"
)

// DefaultNullSentinel is the placeholder flow logs write for absent values.
const DefaultNullSentinel = "-"

// Schema is the layout used to interpret a flat list of raw fields:
// ordered column names, the subset holding integers, and the literal
// that stands for an absent value. An empty NullSentinel disables
// sentinel handling.
type Schema struct {
	Name         string
	Columns      []string
	Numeric      map[string]bool
	NullSentinel string
}

// Len is the number of fields a text line must provide.
func (s Schema) Len() int {
	return len(s.Columns)
}

// IsNumeric reports whether column is coerced to an integer.
func (s Schema) IsNumeric(column string) bool {
	return s.Numeric[column]
}

var baseColumns = []string{
	ColVersion, ColAccountID, ColInterfaceID, ColSrcAddr, ColDstAddr,
	ColSrcPort, ColDstPort, ColProtocol, ColPackets, ColBytes,
	ColWindowStart, ColWindowEnd, ColAction, ColLogStatus,
	"vpc_id", "subnet_id", "instance_id", ColTCPFlags,
	"type", "pkt_srcaddr", "pkt_dstaddr",
}

var extendedColumns = append(append([]string{}, baseColumns...),
	"region", "az_id", "sublocation_type", "sublocation_id",
	"pkt_src_aws_service", "pkt_dst_aws_service", "flow_direction", ColTrafficPath,
)

func numericSet(extra ...string) map[string]bool {
	var set = map[string]bool{
		ColVersion:     true,
		ColSrcPort:     true,
		ColDstPort:     true,
		ColProtocol:    true,
		ColPackets:     true,
		ColBytes:       true,
		ColWindowStart: true,
		ColWindowEnd:   true,
		ColTCPFlags:    true,
	}
	for _, col := range extra {
		set[col] = true
	}
	return set
}

var (
	// BaseSchema is the 21 column layout read by the standalone parser.
	BaseSchema = Schema{
		Name:         "base",
		Columns:      baseColumns,
		Numeric:      numericSet(),
		NullSentinel: DefaultNullSentinel,
	}
	// ExtendedSchema is the layout written by the deployed flow log
	// configuration and consumed from the notification queue.
	ExtendedSchema = Schema{
		Name:         "extended",
		Columns:      extendedColumns,
		Numeric:      numericSet(ColTrafficPath),
		NullSentinel: DefaultNullSentinel,
	}
)

// SchemaByName resolves a preset by its name.
func SchemaByName(name string) (Schema, error) {
	switch name {
	case BaseSchema.Name:
		return BaseSchema, nil
	case ExtendedSchema.Name:
		return ExtendedSchema, nil
	}
	return Schema{}, fmt.Errorf("unknown schema %q", name)
}
