// Package dot renders the graph state at a trace step as a Graphviz diagram.
//
// Replay a trace to the step of interest, then convert:
//
//	frame := trace.Replay(data, exec.Steps[:n+1])
//	src := dot.ToDOT(frame, dot.Options{Directed: true, Caption: exec.Steps[n].Description})
//	svg, err := dot.RenderSVG(src)
//
// [SVG] does both in one call.
//
// Node fill colors follow the node state; edges that are active, in the
// tree, or flagged as errors are drawn thicker and colored.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/algotrace/pkg/graph"
)

// Options configures diagram generation.
type Options struct {
	// Directed draws arrows. Leave false for undirected algorithms.
	Directed bool

	// Caption is printed under the diagram, usually the step description.
	Caption string

	// Weights labels edges with their weights.
	Weights bool
}

// Fill colors per node state.
var stateFill = map[graph.NodeState]string{
	graph.StateDefault: "white",
	graph.StateCurrent: "gold",
	graph.StateVisited: "lightblue",
	graph.StatePath:    "palegreen",
	graph.StateError:   "salmon",
}

// pixelsPerInch scales canvas coordinates down to the
// inches neato expects.
const pixelsPerInch = 50.0

// ToDOT converts the graph state to Graphviz DOT.
func ToDOT(d graph.Data, opts Options) string {
	kind, arrow := "graph", "--"
	if opts.Directed {
		kind, arrow = "digraph", "->"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", kind)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [fontsize=12];\n")
	if opts.Caption != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=b;\n", opts.Caption)
	}
	buf.WriteString("\n")

	pinned := hasPositions(d)
	for _, n := range d.Nodes {
		attrs := nodeAttrs(n, pinned)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range d.Edges {
		attrs := edgeAttrs(e, opts.Weights)
		fmt.Fprintf(&buf, "  %q %s %q", e.Source, arrow, e.Target)
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, " [%s]", strings.Join(attrs, ", "))
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n graph.Node, pinned bool) []string {
	label := n.DisplayLabel()
	if n.Distance != nil {
		label += "\n" + n.Distance.String()
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if fill, ok := stateFill[n.State]; ok && n.State != graph.StateDefault {
		attrs = append(attrs, "fillcolor="+fill)
	}
	if n.State == graph.StateCurrent {
		attrs = append(attrs, "penwidth=3")
	}
	if pinned {
		// Screen y grows downward.
		attrs = append(attrs, fmt.Sprintf("pos=\"%g,%g!\"", *n.X/pixelsPerInch, -*n.Y/pixelsPerInch))
	}
	return attrs
}

func edgeAttrs(e graph.Edge, weights bool) []string {
	var attrs []string
	if weights {
		attrs = append(attrs, fmt.Sprintf("label=%q", strconv.FormatFloat(e.Cost(), 'g', -1, 64)))
	}
	switch {
	case e.IsError:
		attrs = append(attrs, "color=red", "style=dashed", "penwidth=3")
	case e.IsActive:
		attrs = append(attrs, "color=orange", "penwidth=3")
	case e.InTree:
		attrs = append(attrs, "color=forestgreen", "penwidth=3")
	}
	return attrs
}

func hasPositions(d graph.Data) bool {
	if len(d.Nodes) == 0 {
		return false
	}
	for _, n := range d.Nodes {
		if n.X == nil || n.Y == nil {
			return false
		}
	}
	return true
}

// RenderSVG renders DOT source to SVG using the Graphviz dot layout.
func RenderSVG(src string) ([]byte, error) {
	return renderSVG(src, false)
}

// SVG renders the graph state directly. Graphs whose nodes all carry
// coordinates are laid out with neato at those positions.
func SVG(d graph.Data, opts Options) ([]byte, error) {
	return renderSVG(ToDOT(d, opts), hasPositions(d))
}

func renderSVG(src string, pinned bool) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	if pinned {
		gv.SetLayout(graphviz.NEATO)
	}

	g, err := graphviz.ParseBytes([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element with one whose
// viewBox starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
