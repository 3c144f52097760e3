package vpcflow

import (
	"bytes"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

// Kind is the dynamic type held by a Value.
type Kind uint8

// The zero Kind is null so that the zero Value is a null value.
const (
	KindNull Kind = iota
	KindString
	KindInt
	KindTime
)

// Value is a single typed field of a flow record.
type Value struct {
	kind Kind
	str  string
	num  int64
	ts   time.Time
}

// NullValue returns the absent value.
func NullValue() Value { return Value{} }

// StringValue wraps s.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// IntValue wraps n.
func IntValue(n int64) Value { return Value{kind: KindInt, num: n} }

// TimeValue wraps t.
func TimeValue(t time.Time) Value { return Value{kind: KindTime, ts: t} }

// Kind reports the dynamic type of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is absent.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int returns the integer held by v. The boolean is false for any
// non-integer value, including null.
func (v Value) Int() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.num, true
}

// Time returns the timestamp held by v.
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindTime {
		return time.Time{}, false
	}
	return v.ts, true
}

// String renders v the way it would appear in a text log. Null renders
// as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindTime:
		return v.ts.Format(time.RFC3339)
	}
	return ""
}

// MarshalJSON encodes null as null, integers as numbers and everything
// else as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindInt:
		return []byte(strconv.FormatInt(v.num, 10)), nil
	}
	return json.Marshal(v.String())
}

// RawRecord is one undecoded row. Text lines fill Fields positionally;
// columnar rows fill Names and Values from the file's embedded schema.
type RawRecord struct {
	// Line is the 1-based line or row number within the object.
	Line   int
	Fields []string
	Names  []string
	Values []Value
}

// Record is a typed flow record: named columns in a stable order.
type Record struct {
	columns []string
	values  []Value
	index   map[string]int
}

// Set stores v under column, appending the column if it is new.
func (r *Record) Set(column string, v Value) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[column]; ok {
		r.values[i] = v
		return
	}
	r.index[column] = len(r.columns)
	r.columns = append(r.columns, column)
	r.values = append(r.values, v)
}

// Get returns the value of column, or null when the column is absent.
func (r Record) Get(column string) Value {
	var i, ok = r.index[column]
	if !ok {
		return NullValue()
	}
	return r.values[i]
}

// Has reports whether column is present, null or not.
func (r Record) Has(column string) bool {
	var _, ok = r.index[column]
	return ok
}

// Columns returns the column names in insertion order.
func (r Record) Columns() []string {
	return r.columns
}

// Len is the number of columns.
func (r Record) Len() int {
	return len(r.columns)
}

// MarshalJSON encodes the record as an object keeping column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := r.values[i].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
