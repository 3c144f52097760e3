package vpcflow

import (
	"bytes"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// NoRecordsMessage is the marker carried by the report of an empty stream.
const NoRecordsMessage = "no records to analyze"

const unknownKey = "unknown"

// AggregatorOptions tune the report produced by an Aggregator.
type AggregatorOptions struct {
	// TopN bounds the protocol and address rankings.
	TopN int
	// PortTopN bounds the port rankings. Zero leaves ports out of the report.
	PortTopN int
	// IPCap is the number of distinct source and destination addresses
	// given a counter. Addresses first seen after the cap is reached are
	// not tracked at all. A non-positive cap tracks every address.
	IPCap int
	// Breakdown adds the full action breakdown and the distinct address
	// counts to the report.
	Breakdown bool
}

// DefaultAggregatorOptions matches the notification consumer: top 5,
// no port rankings, first 10 distinct addresses tracked.
func DefaultAggregatorOptions() AggregatorOptions {
	return AggregatorOptions{TopN: 5, IPCap: 10}
}

// Count is one entry of a Ranking.
type Count struct {
	Key   string
	Count int64
}

// Ranking is a frequency breakdown sorted by descending count. Equal
// counts keep the order in which their keys were first seen.
type Ranking []Count

// Get returns the count recorded for key.
func (r Ranking) Get(key string) (int64, bool) {
	for _, c := range r {
		if c.Key == key {
			return c.Count, true
		}
	}
	return 0, false
}

// Keys returns the ranked keys in order.
func (r Ranking) Keys() []string {
	var keys = make([]string, 0, len(r))
	for _, c := range r {
		keys = append(keys, c.Key)
	}
	return keys
}

// MarshalJSON encodes the ranking as an object whose keys keep rank order.
func (r Ranking) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		var key, err = json.Marshal(c.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatInt(c.Count, 10))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Traffic holds the summed volume and action counters.
type Traffic struct {
	TotalBytes   int64 `json:"totalBytes"`
	TotalPackets int64 `json:"totalPackets"`
	AcceptFlows  int64 `json:"acceptFlows"`
	RejectFlows  int64 `json:"rejectFlows"`
}

// TimeRange spans the earliest window start to the latest window end,
// in epoch seconds.
type TimeRange struct {
	Start           int64 `json:"start"`
	End             int64 `json:"end"`
	DurationSeconds int64 `json:"durationSeconds"`
}

// Statistics is the body of a non-empty report.
type Statistics struct {
	TotalRecords int64      `json:"totalRecords"`
	Traffic      Traffic    `json:"traffic"`
	TimeRange    *TimeRange `json:"timeRange,omitempty"`
	TopProtocols Ranking    `json:"topProtocols"`
	TopSrcIPs    Ranking    `json:"topSrcIps"`
	TopDstIPs    Ranking    `json:"topDstIps"`
	TopSrcPorts  Ranking    `json:"topSrcPorts,omitempty"`
	TopDstPorts  Ranking    `json:"topDstPorts,omitempty"`
	// Actions counts every action value, NODATA and SKIPDATA included.
	Actions Ranking `json:"actions,omitempty"`
	// UniqueSrcIPs and UniqueDstIPs count the distinct addresses tracked,
	// so they never exceed IPCap when a cap is set.
	UniqueSrcIPs int `json:"uniqueSrcIps,omitempty"`
	UniqueDstIPs int `json:"uniqueDstIps,omitempty"`
	// CapacityBias flags that the address rankings only consider the
	// first IPCap distinct addresses seen, not the most frequent ones.
	CapacityBias bool `json:"capacityBias,omitempty"`
}

// Report is the outcome of aggregating a record stream. An empty stream
// produces a report holding only Message.
type Report struct {
	Message    string
	Statistics *Statistics
}

// Empty reports whether no record was aggregated.
func (r Report) Empty() bool {
	return r.Statistics == nil
}

// MarshalJSON encodes either the statistics or the no-records marker.
func (r Report) MarshalJSON() ([]byte, error) {
	if r.Statistics == nil {
		return json.Marshal(struct {
			Message string `json:"message"`
		}{Message: r.Message})
	}
	return json.Marshal(r.Statistics)
}

// counter is an insertion ordered frequency map with an optional cap on
// the number of distinct keys.
type counter struct {
	limit  int
	keys   []string
	counts map[string]int64
}

func newCounter(limit int) *counter {
	return &counter{limit: limit, counts: make(map[string]int64)}
}

func (c *counter) add(key string, n int64) {
	if _, ok := c.counts[key]; !ok {
		if c.limit > 0 && len(c.keys) >= c.limit {
			return
		}
		c.keys = append(c.keys, key)
	}
	c.counts[key] += n
}

func (c *counter) merge(other *counter) {
	for _, key := range other.keys {
		c.add(key, other.counts[key])
	}
}

func (c *counter) top(n int) Ranking {
	var ranking = make(Ranking, 0, len(c.keys))
	for _, key := range c.keys {
		ranking = append(ranking, Count{Key: key, Count: c.counts[key]})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})
	if n > 0 && len(ranking) > n {
		ranking = ranking[:n]
	}
	return ranking
}

// Aggregator folds typed records into a Report in a single pass. It is
// not safe for concurrent use; each object or file group owns one.
type Aggregator struct {
	opts AggregatorOptions

	total     int64
	traffic   Traffic
	protocols *counter
	actions   *counter
	srcIPs    *counter
	dstIPs    *counter
	srcPorts  *counter
	dstPorts  *counter
	start     int64
	end       int64
	hasRange  bool
}

// NewAggregator creates an empty Aggregator.
func NewAggregator(opts AggregatorOptions) *Aggregator {
	return &Aggregator{
		opts:      opts,
		protocols: newCounter(0),
		actions:   newCounter(0),
		srcIPs:    newCounter(opts.IPCap),
		dstIPs:    newCounter(opts.IPCap),
		srcPorts:  newCounter(0),
		dstPorts:  newCounter(0),
	}
}

func categoryKey(v Value) string {
	if v.IsNull() {
		return unknownKey
	}
	return v.String()
}

// Add folds one record. Null or non-numeric volumes count as zero.
func (a *Aggregator) Add(rec Record) {
	a.total++
	if n, ok := rec.Get(ColBytes).Int(); ok {
		a.traffic.TotalBytes += n
	}
	if n, ok := rec.Get(ColPackets).Int(); ok {
		a.traffic.TotalPackets += n
	}
	var action = categoryKey(rec.Get(ColAction))
	switch strings.ToUpper(action) {
	case "ACCEPT":
		a.traffic.AcceptFlows++
	case "REJECT":
		a.traffic.RejectFlows++
	}
	a.actions.add(action, 1)

	a.protocols.add(categoryKey(rec.Get(ColProtocol)), 1)
	a.srcIPs.add(categoryKey(rec.Get(ColSrcAddr)), 1)
	a.dstIPs.add(categoryKey(rec.Get(ColDstAddr)), 1)
	a.srcPorts.add(categoryKey(rec.Get(ColSrcPort)), 1)
	a.dstPorts.add(categoryKey(rec.Get(ColDstPort)), 1)

	var start, okStart = rec.Get(ColWindowStart).Int()
	var end, okEnd = rec.Get(ColWindowEnd).Int()
	if okStart && okEnd {
		a.extend(start, end)
	}
}

func (a *Aggregator) extend(start, end int64) {
	if !a.hasRange {
		a.start, a.end, a.hasRange = start, end, true
		return
	}
	if start < a.start {
		a.start = start
	}
	if end > a.end {
		a.end = end
	}
}

// Merge folds the state of other into a. Totals, action counts,
// protocol and port breakdowns and the time range combine exactly as if
// both streams had been folded by one Aggregator. Capped address
// tracking does not: other's addresses are offered in their first-seen
// order and only while a has capacity left.
func (a *Aggregator) Merge(other *Aggregator) {
	a.total += other.total
	a.traffic.TotalBytes += other.traffic.TotalBytes
	a.traffic.TotalPackets += other.traffic.TotalPackets
	a.traffic.AcceptFlows += other.traffic.AcceptFlows
	a.traffic.RejectFlows += other.traffic.RejectFlows
	a.protocols.merge(other.protocols)
	a.actions.merge(other.actions)
	a.srcIPs.merge(other.srcIPs)
	a.dstIPs.merge(other.dstIPs)
	a.srcPorts.merge(other.srcPorts)
	a.dstPorts.merge(other.dstPorts)
	if other.hasRange {
		a.extend(other.start, other.end)
	}
}

// Total is the number of records folded so far.
func (a *Aggregator) Total() int64 {
	return a.total
}

// Report finalizes the rankings. The Aggregator may keep receiving
// records afterwards.
func (a *Aggregator) Report() Report {
	if a.total == 0 {
		return Report{Message: NoRecordsMessage}
	}
	var stats = &Statistics{
		TotalRecords: a.total,
		Traffic:      a.traffic,
		TopProtocols: a.protocols.top(a.opts.TopN),
		TopSrcIPs:    a.srcIPs.top(a.opts.TopN),
		TopDstIPs:    a.dstIPs.top(a.opts.TopN),
		CapacityBias: a.opts.IPCap > 0,
	}
	if a.opts.Breakdown {
		stats.Actions = a.actions.top(0)
		stats.UniqueSrcIPs = len(a.srcIPs.keys)
		stats.UniqueDstIPs = len(a.dstIPs.keys)
	}
	if a.opts.PortTopN > 0 {
		stats.TopSrcPorts = a.srcPorts.top(a.opts.PortTopN)
		stats.TopDstPorts = a.dstPorts.top(a.opts.PortTopN)
	}
	if a.hasRange {
		stats.TimeRange = &TimeRange{
			Start:           a.start,
			End:             a.end,
			DurationSeconds: a.end - a.start,
		}
	}
	return Report{Statistics: stats}
}
