package security

import "testing"

func TestRandIntIsUniformOverCharset(t *testing.T) {
	max := len(tempPasswordCharset)
	const perBucket = 2000
	counts := make([]int, max)
	for i := 0; i < max*perBucket; i++ {
		n, err := randInt(max)
		if err != nil {
			t.Fatal(err)
		}
		if n < 0 || n >= max {
			t.Fatalf("index %d out of range [0,%d)", n, max)
		}
		counts[n]++
	}
	// A byte-modulo draw over 62 symbols favours the first 8 by 25%.
	low, high := perBucket*85/100, perBucket*115/100
	for idx, c := range counts {
		if c < low || c > high {
			t.Fatalf("index %d drawn %d times, want within [%d,%d]", idx, c, low, high)
		}
	}
}

func TestRandIntRejectsNonPositiveMax(t *testing.T) {
	if _, err := randInt(0); err == nil {
		t.Fatal("expected error for zero max")
	}
}
