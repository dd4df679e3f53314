// Package depgraph draws the dependency relations of AUR package records.
//
// [Build] turns the records returned by an info query into a small graph:
// one node per package plus one node per dependency name, with an edge per
// relation. [ToDOT] serializes it for Graphviz and [RenderSVG] renders DOT
// to SVG in-process.
//
// Only the relations present in the given records are drawn. Dependencies
// are not resolved further, and names provided by official repositories are
// shown as plain leaf nodes.
package depgraph
