// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package virtual

import (
	"math"
	"reflect"
	"testing"
)

func TestSplitPinnedColumns(t *testing.T) {
	fields := []string{"a", "b", "c", "d"}
	tests := []struct {
		name      string
		pinned    PinnedColumns
		wantLeft  []string
		wantRight []string
		wantRest  []string
	}{
		{"both sides", PinnedColumns{Left: []string{"a", "b"}, Right: []string{"c"}}, []string{"a", "b"}, []string{"c"}, []string{"d"}},
		{"unknown field", PinnedColumns{Left: []string{"z"}}, []string{}, []string{}, []string{"a", "b", "c", "d"}},
		{"empty config", PinnedColumns{}, []string{}, []string{}, []string{"a", "b", "c", "d"}},
		{"left wins overlap", PinnedColumns{Left: []string{"b"}, Right: []string{"b", "d"}}, []string{"b"}, []string{"d"}, []string{"a", "c"}},
		{"configured order kept", PinnedColumns{Left: []string{"c", "a"}}, []string{"c", "a"}, []string{}, []string{"b", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right := SplitPinnedColumns(tt.pinned, fields)
			if !reflect.DeepEqual(left, tt.wantLeft) {
				t.Errorf("left = %v, want %v", left, tt.wantLeft)
			}
			if !reflect.DeepEqual(right, tt.wantRight) {
				t.Errorf("right = %v, want %v", right, tt.wantRight)
			}
			if rest := RemainingFields(fields, left, right); !reflect.DeepEqual(rest, tt.wantRest) {
				t.Errorf("remaining = %v, want %v", rest, tt.wantRest)
			}
		})
	}
}

func TestPinnedWindow(t *testing.T) {
	ctx := RenderContext{FirstRowIndex: 4, LastRowIndex: 9, FirstColumnIndex: 3, LastColumnIndex: 5}

	left, ok := PinnedWindow(ctx, PinnedLeft, 10, 2, 1)
	if !ok || left.FirstColumnIndex != 0 || left.LastColumnIndex != 2 {
		t.Errorf("left window = %v ok=%v", left, ok)
	}
	if left.FirstRowIndex != 4 || left.LastRowIndex != 9 {
		t.Errorf("left window changed rows: %v", left)
	}

	right, ok := PinnedWindow(ctx, PinnedRight, 10, 2, 1)
	if !ok || right.FirstColumnIndex != 9 || right.LastColumnIndex != 10 {
		t.Errorf("right window = %v ok=%v", right, ok)
	}

	if _, ok := PinnedWindow(ctx, PinnedRight, 10, 2, 0); ok {
		t.Error("right window reported without right pins")
	}
}

func TestOverlayAlpha(t *testing.T) {
	tests := []struct {
		elevation float64
		want      float64
	}{
		{0, 0},
		{0.5, 5.11916 * 0.25 / 100},
		{1, (4.5*math.Log(2) + 2) / 100},
		{2, (4.5*math.Log(3) + 2) / 100},
	}
	for _, tt := range tests {
		if got := OverlayAlpha(tt.elevation); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("OverlayAlpha(%v) = %v, want %v", tt.elevation, got, tt.want)
		}
	}
}

func TestParseAnchor(t *testing.T) {
	if ParseAnchor("top") != AnchorTop {
		t.Error("ParseAnchor(top) != AnchorTop")
	}
	if ParseAnchor("bottom") != AnchorBottom || ParseAnchor("") != AnchorBottom {
		t.Error("ParseAnchor should default to bottom")
	}
}
