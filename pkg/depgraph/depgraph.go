package depgraph

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/aurclient/pkg/integrations/aur"
)

// Kind is a dependency relation of a package record.
type Kind string

// Dependency kinds, named after the pacman relations.
const (
	Depends      Kind = "depends"
	MakeDepends  Kind = "makedepends"
	CheckDepends Kind = "checkdepends"
	OptDepends   Kind = "optdepends"
)

// Kinds lists every supported kind in display order.
var Kinds = []Kind{Depends, MakeDepends, CheckDepends, OptDepends}

// ParseKind converts a name such as "makedepends" to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Kinds, k) {
		return k, nil
	}
	return "", fmt.Errorf("unknown dependency kind %q", s)
}

// Edge is one relation from a package to a dependency name.
type Edge struct {
	From string
	To   string
	Kind Kind
}

// Graph holds the packages passed to [Build] and the names they depend on.
// It is read-only once built.
type Graph struct {
	aur   map[string]bool
	nodes map[string]struct{}
	edges []Edge
}

// Build collects the relations of pkgs for the given kinds. With no kinds,
// [Depends] and [MakeDepends] are used. Version constraints and optdepends
// descriptions are stripped from target names, and duplicate edges collapse.
func Build(pkgs []aur.Package, kinds ...Kind) *Graph {
	if len(kinds) == 0 {
		kinds = []Kind{Depends, MakeDepends}
	}

	g := &Graph{aur: map[string]bool{}, nodes: map[string]struct{}{}}
	for _, p := range pkgs {
		g.aur[p.Name] = true
		g.nodes[p.Name] = struct{}{}
	}

	seen := map[Edge]bool{}
	for _, p := range pkgs {
		for _, k := range kinds {
			for _, raw := range relations(p, k) {
				to := DepName(raw)
				if to == "" {
					continue
				}
				e := Edge{From: p.Name, To: to, Kind: k}
				if seen[e] {
					continue
				}
				seen[e] = true
				g.nodes[to] = struct{}{}
				g.edges = append(g.edges, e)
			}
		}
	}

	slices.SortFunc(g.edges, func(a, b Edge) int {
		return cmp.Or(
			cmp.Compare(a.From, b.From),
			cmp.Compare(kindIndex(a.Kind), kindIndex(b.Kind)),
			cmp.Compare(a.To, b.To),
		)
	})
	return g
}

func relations(p aur.Package, k Kind) []string {
	switch k {
	case Depends:
		return p.Depends
	case MakeDepends:
		return p.MakeDepends
	case CheckDepends:
		return p.CheckDepends
	case OptDepends:
		return p.OptDepends
	}
	return nil
}

func kindIndex(k Kind) int { return slices.Index(Kinds, k) }

// DepName reduces a dependency string to the package name it refers to:
// "python-foo>=1.2" and "foo: for bar support" become "python-foo" and "foo".
func DepName(s string) string {
	if i := strings.Index(s, ":"); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexAny(s, "<>="); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// Nodes returns every node name in sorted order.
func (g *Graph) Nodes() []string {
	names := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Edges returns the edges sorted by source, kind and target.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// IsAUR reports whether name was one of the packages the graph was built from.
func (g *Graph) IsAUR(name string) bool { return g.aur[name] }

// ToDOT converts the graph to Graphviz DOT format. The output is deterministic.
// Packages from the input are filled; other dependencies are plain boxes.
// Non-runtime relations are drawn dashed (make), dotted (check) or grey (optional).
func ToDOT(g *Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph deps {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := []string{fmt.Sprintf("label=%q", n)}
		if g.IsAUR(n) {
			attrs = append(attrs, "fillcolor=\"#cfe8fc\"", "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.edges {
		if style := edgeStyle(e.Kind); style != "" {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, style)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeStyle(k Kind) string {
	switch k {
	case MakeDepends:
		return "style=dashed"
	case CheckDepends:
		return "style=dotted"
	case OptDepends:
		return "style=dashed, color=grey"
	}
	return ""
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
