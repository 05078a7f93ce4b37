package rngsrc_test

import (
	"testing"

	"github.com/fourwinds/battlecore/rngsrc"
)

func TestSeededSourceIsDeterministic(t *testing.T) {
	a := rngsrc.NewSeeded(42)
	b := rngsrc.NewSeeded(42)

	for i := 0; i < 20; i++ {
		av, bv := a.Float64(), b.Float64()
		if av != bv {
			t.Fatalf("roll %d diverged: %v != %v", i, av, bv)
		}
	}
}

func TestVarianceBounds(t *testing.T) {
	s := rngsrc.NewSeeded(7)
	for i := 0; i < 1000; i++ {
		v := s.Variance(0.10)
		if v < 0.90 || v > 1.10 {
			t.Fatalf("variance %v out of [0.90, 1.10]", v)
		}
	}
}

func TestFixedSourceIsConstant(t *testing.T) {
	f := rngsrc.NewFixed(0.01)
	if f.Float64() != 0.01 {
		t.Fatalf("expected fixed float 0.01, got %v", f.Float64())
	}
	if f.Variance(0.5) != 1.0 {
		t.Fatalf("expected no variance by default, got %v", f.Variance(0.5))
	}
}
