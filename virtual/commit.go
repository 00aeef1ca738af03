// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: virtual/commit.go
// Summary: Commit policy deciding when a freshly computed render context
// replaces the committed one during scrolling.

package virtual

// CommitPolicy throttles render context replacement. A candidate replaces the
// committed context when the first row or first column moved by at least the
// configured threshold, or when the total column width changed since the
// last commit.
type CommitPolicy struct {
	RowThreshold    int
	ColumnThreshold int

	committed      RenderContext
	hasCommitted   bool
	prevTotalWidth int
}

// NewCommitPolicy creates a policy with the given thresholds.
func NewCommitPolicy(rowThreshold, columnThreshold int) *CommitPolicy {
	return &CommitPolicy{
		RowThreshold:    rowThreshold,
		ColumnThreshold: columnThreshold,
	}
}

// Committed returns the context currently in effect.
func (p *CommitPolicy) Committed() (RenderContext, bool) {
	return p.committed, p.hasCommitted
}

// Reset installs ctx as the committed context without evaluating thresholds.
// Used for the initial layout and for full recomputes.
func (p *CommitPolicy) Reset(ctx RenderContext) {
	p.committed = ctx
	p.hasCommitted = true
}

// Clear forgets the committed context.
func (p *CommitPolicy) Clear() {
	p.committed = RenderContext{}
	p.hasCommitted = false
}

// SetTotalWidth records the total column width observed at the last commit.
func (p *CommitPolicy) SetTotalWidth(w int) {
	p.prevTotalWidth = w
}

// Evaluate compares candidate against the committed context. It returns the
// context that is in effect afterwards and whether candidate was committed.
// Without a committed context nothing is evaluated.
func (p *CommitPolicy) Evaluate(candidate RenderContext, totalWidth int) (RenderContext, bool) {
	if !p.hasCommitted {
		return RenderContext{}, false
	}
	rowsScrolled := abs(candidate.FirstRowIndex - p.committed.FirstRowIndex)
	columnsScrolled := abs(candidate.FirstColumnIndex - p.committed.FirstColumnIndex)

	commit := rowsScrolled >= p.RowThreshold ||
		columnsScrolled >= p.ColumnThreshold ||
		p.prevTotalWidth != totalWidth
	if !commit {
		return p.committed, false
	}
	p.committed = candidate
	p.prevTotalWidth = totalWidth
	return candidate, true
}
