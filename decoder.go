package vpcflow

import (
	"fmt"
	"io"
)

// FieldPolicy decides which text lines are accepted for a schema.
type FieldPolicy int

const (
	// PolicyPermissive accepts lines with at least as many fields as the
	// schema has columns, truncating extras. Shorter lines are skipped
	// with a warning.
	PolicyPermissive FieldPolicy = iota
	// PolicyStrict accepts only lines with exactly as many fields as the
	// schema has columns. Other lines are counted as line errors.
	PolicyStrict
)

func (p FieldPolicy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "permissive"
}

// ParseFieldPolicy resolves a policy by its name.
func ParseFieldPolicy(name string) (FieldPolicy, error) {
	switch name {
	case "permissive":
		return PolicyPermissive, nil
	case "strict":
		return PolicyStrict, nil
	}
	return PolicyPermissive, fmt.Errorf("unknown field policy %q", name)
}

// DecodeStats is the line/row accounting of one decoded object.
type DecodeStats struct {
	// Lines counts non-empty lines, or rows for columnar objects.
	Lines int `json:"lines"`
	// Records counts rows handed to the caller.
	Records int `json:"records"`
	// Skipped counts header lines and short lines under the permissive policy.
	Skipped int `json:"skipped"`
	// Errors counts lines rejected under the strict policy.
	Errors int `json:"errors"`
}

// LimitIterator stops the wrapped iterator after Limit records. A
// non-positive Limit means no limit.
type LimitIterator struct {
	Limit int
	RecordIterator

	seen int
}

// Iterate advances the wrapped iterator until the limit is reached.
func (it *LimitIterator) Iterate() bool {
	if it.Limit > 0 && it.seen >= it.Limit {
		return false
	}
	if !it.RecordIterator.Iterate() {
		return false
	}
	it.seen++
	return true
}

// closingIterator releases an extra resource, such as the object stream
// behind a columnar reader, when the iterator is closed.
type closingIterator struct {
	RecordIterator
	closer io.Closer
}

func (it *closingIterator) Close() error {
	var err = it.RecordIterator.Close()
	if cerr := it.closer.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w: %s", ErrStorageUnavailable, cerr)
	}
	return err
}
