// rand/rand_test.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rand

import (
	"testing"
)

func TestSeededSequencesMatch(t *testing.T) {
	a := MakeWithSeed(12345)
	b := MakeWithSeed(12345)
	for i := 0; i < 100; i++ {
		if av, bv := a.Uint32(), b.Uint32(); av != bv {
			t.Fatalf("iteration %d: %d != %d", i, av, bv)
		}
	}

	c := MakeWithSeed(54321)
	var same int
	a.Seed(12345)
	for i := 0; i < 100; i++ {
		if a.Uint32() == c.Uint32() {
			same++
		}
	}
	if same == 100 {
		t.Error("different seeds produced identical sequences")
	}
}

func TestIntnInRange(t *testing.T) {
	r := MakeWithSeed(1)
	for i := 0; i < 1000; i++ {
		if v := r.Intn(7); v < 0 || v >= 7 {
			t.Fatalf("Intn(7) = %d", v)
		}
	}
}

func TestFloatsInRange(t *testing.T) {
	r := MakeWithSeed(1)
	for i := 0; i < 1000; i++ {
		if f := r.Float32(); f < 0 || f > 1 {
			t.Fatalf("Float32() = %v", f)
		}
		if f := r.Float64(); f < 0 || f > 1 {
			t.Fatalf("Float64() = %v", f)
		}
	}
}

func TestSampleFiltered(t *testing.T) {
	r := MakeWithSeed(1)

	if idx := SampleFiltered(r, nil, func(int) bool { return true }); idx != -1 {
		t.Errorf("empty slice: got %d, want -1", idx)
	}
	vals := []int{1, 2, 3, 4}
	if idx := SampleFiltered(r, vals, func(int) bool { return false }); idx != -1 {
		t.Errorf("nothing passes: got %d, want -1", idx)
	}
	for i := 0; i < 100; i++ {
		idx := SampleFiltered(r, vals, func(v int) bool { return v%2 == 0 })
		if idx != 1 && idx != 3 {
			t.Fatalf("sampled index %d of an odd value", idx)
		}
	}
}

func TestSampleWeighted(t *testing.T) {
	r := MakeWithSeed(1)
	vals := []int{0, 10, 0}
	for i := 0; i < 100; i++ {
		if idx := SampleWeighted(r, vals, func(v int) int { return v }); idx != 1 {
			t.Fatalf("sampled zero-weight index %d", idx)
		}
	}
	if idx := SampleWeighted(r, vals, func(int) int { return 0 }); idx != -1 {
		t.Errorf("all zero weights: got %d, want -1", idx)
	}
}

func TestShuffleSlicePreservesElements(t *testing.T) {
	r := MakeWithSeed(1)
	s := []int{1, 2, 3, 4, 5, 6, 7, 8}
	ShuffleSlice(s, r)

	var sum int
	for _, v := range s {
		sum += v
	}
	if sum != 36 {
		t.Errorf("elements changed by shuffle: %v", s)
	}
}
