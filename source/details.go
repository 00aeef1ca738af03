// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: source/details.go
// Summary: Expanded-row cache and row selection collaborators.

package source

// DetailFunc produces the detail content and its height for a row. ok is
// false when the row has no detail.
type DetailFunc func(id string) (content any, height int, ok bool)

type detail struct {
	content any
	height  int
}

// Expansion tracks which rows are expanded and caches their detail panels.
// It implements virtual.DetailSource.
type Expansion struct {
	fn    DetailFunc
	order []string
	cache map[string]detail
}

// NewExpansion returns an empty expansion set producing content with fn.
func NewExpansion(fn DetailFunc) *Expansion {
	return &Expansion{fn: fn, cache: make(map[string]detail)}
}

// Toggle expands or collapses id and reports whether it is now expanded.
// Rows fn has no detail for stay collapsed.
func (x *Expansion) Toggle(id string) bool {
	if _, ok := x.cache[id]; ok {
		x.Collapse(id)
		return false
	}
	content, height, ok := x.fn(id)
	if !ok {
		return false
	}
	x.cache[id] = detail{content: content, height: max(height, 0)}
	x.order = append(x.order, id)
	return true
}

// Collapse removes id from the expanded set.
func (x *Expansion) Collapse(id string) {
	if _, ok := x.cache[id]; !ok {
		return
	}
	delete(x.cache, id)
	for i, o := range x.order {
		if o == id {
			x.order = append(x.order[:i], x.order[i+1:]...)
			break
		}
	}
}

// Clear collapses every row.
func (x *Expansion) Clear() {
	x.order = nil
	x.cache = make(map[string]detail)
}

// ExpandedRowIDs returns the expanded ids in expansion order.
func (x *Expansion) ExpandedRowIDs() []string { return x.order }

// DetailContent returns the cached content of an expanded row.
func (x *Expansion) DetailContent(id string) (any, bool) {
	d, ok := x.cache[id]
	return d.content, ok
}

// DetailHeight returns the cached height of an expanded row, 0 otherwise.
func (x *Expansion) DetailHeight(id string) int { return x.cache[id].height }

// Selection is a set of selected row ids. It implements
// virtual.SelectionSource.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle flips the selection of id and reports the new state.
func (s *Selection) Toggle(id string) bool {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// IsRowSelected reports whether id is selected.
func (s *Selection) IsRowSelected(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected rows.
func (s *Selection) Len() int { return len(s.ids) }
