package vpcflow

import (
	"strconv"
	"time"
)

var protocolNames = map[int64]string{
	1:  "ICMP",
	6:  "TCP",
	17: "UDP",
	58: "ICMPv6",
}

// ProtocolName maps an IANA protocol number to its common name.
func ProtocolName(number int64) string {
	if name, ok := protocolNames[number]; ok {
		return name
	}
	return "Unknown"
}

// Type applies the schema to a raw record. Text records are mapped
// positionally onto the schema columns; extra fields are ignored and
// missing ones are null. Columnar records keep their own column names
// and only have string values in numeric columns coerced. Typing never
// fails: a value that cannot be coerced becomes null.
//
// The derived columns protocol_name, start_time, end_time and duration
// are always appended. They are null when their inputs are null,
// except protocol_name which falls back to "Unknown".
func (s Schema) Type(raw RawRecord) Record {
	var rec Record
	if raw.Names != nil {
		for i, name := range raw.Names {
			var v Value
			if i < len(raw.Values) {
				v = raw.Values[i]
			}
			if v.Kind() == KindString {
				v = s.typeField(name, v.String())
			}
			rec.Set(name, v)
		}
	} else {
		for i, col := range s.Columns {
			if i >= len(raw.Fields) {
				rec.Set(col, NullValue())
				continue
			}
			rec.Set(col, s.typeField(col, raw.Fields[i]))
		}
	}
	derive(&rec)
	return rec
}

func (s Schema) typeField(column string, raw string) Value {
	if s.NullSentinel != "" && raw == s.NullSentinel {
		return NullValue()
	}
	if s.IsNumeric(column) {
		var n, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return NullValue()
		}
		return IntValue(n)
	}
	return StringValue(raw)
}

func derive(rec *Record) {
	var name = "Unknown"
	if proto, ok := rec.Get(ColProtocol).Int(); ok {
		name = ProtocolName(proto)
	}
	rec.Set(ColProtocolName, StringValue(name))

	var start, hasStart = rec.Get(ColWindowStart).Int()
	var end, hasEnd = rec.Get(ColWindowEnd).Int()
	rec.Set(ColStartTime, epochValue(start, hasStart))
	rec.Set(ColEndTime, epochValue(end, hasEnd))
	if hasStart && hasEnd {
		rec.Set(ColDuration, IntValue(end-start))
	} else {
		rec.Set(ColDuration, NullValue())
	}
}

func epochValue(sec int64, ok bool) Value {
	if !ok {
		return NullValue()
	}
	return TimeValue(time.Unix(sec, 0).UTC())
}
