package vpcflow

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/graph/formats/dot/ast"
)

// edgeLabels are the record columns rendered on each edge, in order.
var edgeLabels = []struct {
	column string
	label  string
}{
	{ColAccountID, "accountID"},
	{ColInterfaceID, "eniID"},
	{ColSrcPort, "srcPort"},
	{ColDstPort, "dstPort"},
	{ColProtocolName, "protocol"},
	{ColPackets, "packets"},
	{ColBytes, "bytes"},
	{ColWindowStart, "start"},
	{ColWindowEnd, "end"},
}

const namespace = "vpcflow_"

// DOTWriter renders flow records as a directed graph in DOT format. Each
// record with both addresses present becomes an edge from source to
// destination, colored red when the flow was rejected. The graph is
// written on Close.
type DOTWriter struct {
	w     io.Writer
	graph *ast.Graph
	nodes []ast.Stmt
	seen  map[string]*ast.Node
}

// NewDOTWriter returns a DOTWriter on w.
func NewDOTWriter(w io.Writer) *DOTWriter {
	return &DOTWriter{
		w:     w,
		graph: &ast.Graph{Directed: true},
		seen:  make(map[string]*ast.Node),
	}
}

// Write adds rec as an edge. Records without addresses, such as NODATA
// and SKIPDATA entries, are ignored.
func (d *DOTWriter) Write(rec Record) error {
	var src, dst = rec.Get(ColSrcAddr), rec.Get(ColDstAddr)
	if src.IsNull() || dst.IsNull() {
		return nil
	}
	var from = d.node(src.String())
	var to = d.node(dst.String())

	// the combined label is for rendering, the namespaced attributes are
	// for downstream consumers
	var prefix, label string
	var attrs = make([]*ast.Attr, 0, len(edgeLabels)+2)
	for _, l := range edgeLabels {
		var v = rec.Get(l.column)
		if v.IsNull() {
			continue
		}
		label = label + prefix + l.label + "=" + v.String()
		prefix = "\\n"
		attrs = append(attrs, &ast.Attr{
			Key: namespace + l.label,
			Val: fmt.Sprintf(`"%s"`, v.String()),
		})
	}
	var color = &ast.Attr{Key: "color", Val: "green"}
	if strings.EqualFold(rec.Get(ColAction).String(), "REJECT") {
		color.Val = "red"
	}
	attrs = append(attrs, color, &ast.Attr{
		Key: "label",
		Val: fmt.Sprintf(`"%s"`, label),
	})
	d.graph.Stmts = append(d.graph.Stmts, &ast.EdgeStmt{
		From:  from,
		To:    &ast.Edge{Directed: true, Vertex: to},
		Attrs: attrs,
	})
	return nil
}

// node returns the node for addr, declaring it on first use.
func (d *DOTWriter) node(addr string) *ast.Node {
	if n, ok := d.seen[addr]; ok {
		return n
	}
	var n = &ast.Node{ID: nodeID(addr)}
	d.seen[addr] = n
	d.nodes = append(d.nodes, &ast.NodeStmt{
		Node: n,
		Attrs: []*ast.Attr{
			{
				Key: "label",
				Val: fmt.Sprintf(`"%s"`, addr),
			},
		},
	})
	return n
}

var nodeIDReplacer = strings.NewReplacer(".", "_", ":", "_")

func nodeID(addr string) string {
	return "n" + nodeIDReplacer.Replace(addr)
}

// Close writes the graph: edges first, then node declarations in first
// seen order.
func (d *DOTWriter) Close() error {
	d.graph.Stmts = append(d.graph.Stmts, d.nodes...)
	d.nodes = nil
	_, err := io.WriteString(d.w, d.graph.String())
	return err
}
