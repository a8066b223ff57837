package stats

import (
	"reflect"
	"testing"
)

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{3, 6, 9, 12}, 2)
	want := []float64{3, 4.5, 7.5, 10.5}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MovingAverage = %v, want %v", got, want)
	}
	if got := MovingAverage([]float64{1, 2}, 1); !reflect.DeepEqual(got, []float64{1, 2}) {
		t.Fatalf("window 1 should copy, got %v", got)
	}
	if got := MovingAverage(nil, 3); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 9}); got != " @" {
		t.Fatalf("unexpected sparkline: %q", got)
	}
	if got := Sparkline([]float64{5, 5, 5}); got != "+++" {
		t.Fatalf("flat series should use the middle glyph, got %q", got)
	}
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
}

func TestShareBar(t *testing.T) {
	cases := []struct {
		part, total, width int
		want               string
	}{
		{5, 10, 10, "#####"},
		{1, 1000, 10, "#"},
		{0, 10, 10, ""},
		{10, 10, 4, "####"},
		{3, 0, 10, ""},
	}
	for _, tc := range cases {
		if got := shareBar(tc.part, tc.total, tc.width); got != tc.want {
			t.Fatalf("shareBar(%d, %d, %d) = %q, want %q", tc.part, tc.total, tc.width, got, tc.want)
		}
	}
}
