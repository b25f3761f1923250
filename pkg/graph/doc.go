// Package graph builds directed precedence graphs from problem instances
// for inspection and visualization.
//
// [FromInstance] produces one node per job and one edge per precedence,
// optionally excluding jobs (typically the dummy supersource and sink).
// [ToDOT] emits Graphviz DOT, and [RenderSVG]/[RenderPNG] rasterize it.
package graph
