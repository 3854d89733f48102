// Package render converts rendered graph frames between output formats.
//
// The [dot] subpackage turns the graph state at a trace step into Graphviz
// DOT and SVG. [ToPDF] and [ToPNG] convert that SVG further using the
// external rsvg-convert tool (from librsvg):
//
//	svg, err := dot.RenderSVG(dot.ToDOT(frame, dot.Options{}))
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// [dot]: github.com/matzehuels/algotrace/pkg/render/dot
package render
