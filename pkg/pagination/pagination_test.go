package pagination

import "testing"

func TestNormalizePage(t *testing.T) {
	cases := map[int]int{-3: 1, 0: 1, 1: 1, 42: 42, 5000: 5000, 5001: 5000}
	for in, want := range cases {
		if got := NormalizePage(in); got != want {
			t.Fatalf("NormalizePage(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestNormalizeLimit(t *testing.T) {
	cases := map[int]int{-1: 1, 0: 1, 1: 1, 20: 20, 50: 50, 51: 50, 1000: 50}
	for in, want := range cases {
		if got := NormalizeLimit(in); got != want {
			t.Fatalf("NormalizeLimit(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestParamsOffset(t *testing.T) {
	if got := (Params{Page: 3, Limit: 4}).Offset(); got != 8 {
		t.Fatalf("expected offset 8, got %d", got)
	}
	if got := (Params{Page: 0, Limit: 0}).Offset(); got != 0 {
		t.Fatalf("expected offset 0 for clamped params, got %d", got)
	}
	if got := (Params{Page: 9999, Limit: 100}).Offset(); got != (MaxPage-1)*MaxLimit {
		t.Fatalf("expected clamped offset, got %d", got)
	}
}
