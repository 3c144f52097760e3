package vpcflow

import (
	"strings"
	"time"
)

// LogFileFilter decides whether a listed flow log file is worth
// decoding.
type LogFileFilter interface {
	FilterLogFile(LogFile) bool
}

// MultiLogFileFilter passes a file only when every filter passes it.
// Filters run in order and stop at the first rejection.
type MultiLogFileFilter []LogFileFilter

// FilterLogFile runs the filters in order.
func (f MultiLogFileFilter) FilterLogFile(lf LogFile) bool {
	for _, filter := range f {
		if !filter.FilterLogFile(lf) {
			return false
		}
	}
	return true
}

// LogFileTimeFilter keeps files delivered within [Start, End], using the
// timestamp encoded in the AWS object name. A zero bound is open. Files
// whose name carries no timestamp never pass.
type LogFileTimeFilter struct {
	Start time.Time
	End   time.Time
}

// FilterLogFile checks the delivery timestamp against the bounds.
func (f LogFileTimeFilter) FilterLogFile(lf LogFile) bool {
	if lf.Timestamp.IsZero() {
		return false
	}
	if !f.Start.IsZero() && lf.Timestamp.Before(f.Start) {
		return false
	}
	return f.End.IsZero() || !lf.Timestamp.After(f.End)
}

// LogFileRegionFilter keeps files written in one of the regions.
type LogFileRegionFilter struct {
	Region map[string]bool
}

// FilterLogFile looks the region up in the set.
func (f LogFileRegionFilter) FilterLogFile(lf LogFile) bool {
	return f.Region[lf.Region]
}

// LogFileAccountFilter keeps files written for one of the accounts.
type LogFileAccountFilter struct {
	Account map[string]bool
}

// FilterLogFile looks the account up in the set.
func (f LogFileAccountFilter) FilterLogFile(lf LogFile) bool {
	return f.Account[lf.Account]
}

// LogFileFormatFilter keeps files whose key maps to one of Formats.
type LogFileFormatFilter struct {
	Formats []Format
}

// FilterLogFile detects the format of the key.
func (f LogFileFormatFilter) FilterLogFile(lf LogFile) bool {
	var format = DetectFormat(lf.Key)
	for _, allowed := range f.Formats {
		if format == allowed {
			return true
		}
	}
	return false
}

// LogFilePrefixFilter keeps files whose key starts with Prefix.
type LogFilePrefixFilter struct {
	Prefix string
}

// FilterLogFile compares the key prefix.
func (f LogFilePrefixFilter) FilterLogFile(lf LogFile) bool {
	return strings.HasPrefix(lf.Key, f.Prefix)
}

// BucketFilter yields only the files of the wrapped listing that pass
// Filter.
type BucketFilter struct {
	Filter LogFileFilter
	BucketIterator
}

// Iterate advances the wrapped listing to the next passing file.
func (it *BucketFilter) Iterate() bool {
	for it.BucketIterator.Iterate() {
		if it.Filter.FilterLogFile(it.BucketIterator.Current()) {
			return true
		}
	}
	return false
}

// BucketLimit ends the wrapped listing after Limit files.
type BucketLimit struct {
	Limit int
	BucketIterator

	seen int
}

// Iterate advances the wrapped listing until Limit files were yielded.
func (it *BucketLimit) Iterate() bool {
	if it.seen >= it.Limit {
		return false
	}
	if !it.BucketIterator.Iterate() {
		return false
	}
	it.seen++
	return true
}
