package galaxy

import "strings"

// Filter narrows the visible field. Non-matching nodes stay in place but dim
// to a residual opacity, keeping the spatial layout readable while matches
// pop. An empty filter matches everything.
type Filter struct {
	// Query is matched case-insensitively against item name, element name
	// and tier name.
	Query string

	// Elements restricts matches to the listed elements. Empty means any.
	Elements []Element

	// Kinds restricts matches to the listed kinds. Empty means any.
	Kinds []Kind

	// MinPower excludes items below the threshold when positive.
	MinPower int
}

// IsZero reports whether the filter matches everything.
func (f *Filter) IsZero() bool {
	return f.Query == "" && len(f.Elements) == 0 && len(f.Kinds) == 0 && f.MinPower <= 0
}

// filterSet is a compiled filter: one match flag per layout node, index
// aligned with Layout.Nodes. Compiled once on filter or layout change, read
// by culling every frame.
type filterSet struct {
	active bool
	match  []bool
}

// compileFilter evaluates the filter against every node. The query is
// lowercased once here rather than per node.
func compileFilter(f Filter, nodes []*WorldNode) filterSet {
	if f.IsZero() {
		return filterSet{}
	}
	fs := filterSet{
		active: true,
		match:  make([]bool, len(nodes)),
	}
	query := strings.ToLower(f.Query)
	for i, n := range nodes {
		fs.match[i] = matchNode(&f, query, n)
	}
	return fs
}

func matchNode(f *Filter, query string, n *WorldNode) bool {
	if f.MinPower > 0 && n.Power < f.MinPower {
		return false
	}
	if len(f.Kinds) > 0 && !containsKind(f.Kinds, n.Kind) {
		return false
	}
	if len(f.Elements) > 0 && !containsElement(f.Elements, n.Element) {
		return false
	}
	if query != "" {
		if !strings.Contains(strings.ToLower(n.Name), query) &&
			!strings.Contains(n.Element.String(), query) &&
			!strings.Contains(n.Tier.String(), query) {
			return false
		}
	}
	return true
}

func containsKind(ks []Kind, k Kind) bool {
	for _, v := range ks {
		if v == k {
			return true
		}
	}
	return false
}

func containsElement(es []Element, e Element) bool {
	for _, v := range es {
		if v == e {
			return true
		}
	}
	return false
}
