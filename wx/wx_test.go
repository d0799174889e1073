// wx/wx_test.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

import (
	"errors"
	"testing"
	"time"
)

func TestDecodeWMO(t *testing.T) {
	for _, c := range []struct {
		code int
		want Condition
	}{
		{0, Sunny},
		{2, Cloudy},
		{45, Foggy},
		{48, Foggy},
		{55, Rainy},
		{63, Rainy},
		{82, Rainy},
		{71, Snowy},
		{77, Snowy},
		{86, Snowy},
		{95, Stormy},
		{99, Stormy},
		{42, Cloudy}, // unmapped code
	} {
		if got := DecodeWMO(c.code); got != c.want {
			t.Errorf("DecodeWMO(%d) = %v, want %v", c.code, got, c.want)
		}
	}
}

func TestDeicingRequired(t *testing.T) {
	for _, c := range []struct {
		cond Condition
		temp int
		want bool
	}{
		{Snowy, -5, true},
		{Snowy, 3, true},
		{Snowy, 4, false},
		{Rainy, 0, true},
		{Foggy, 2, true},
		{Sunny, -10, false},
		{Cloudy, 0, false},
		{Rainy, 15, false},
	} {
		w := Make(c.cond, c.temp)
		if got := w.DeicingRequired(); got != c.want {
			t.Errorf("%v %d°C: deicing %v, want %v", c.cond, c.temp, got, c.want)
		}
	}
}

func TestMakeSetsDelayChance(t *testing.T) {
	if w := Make(Stormy, 20); w.DelayChance != 0.8 {
		t.Errorf("stormy delay chance %v, want 0.8", w.DelayChance)
	}
	if w := Make(Sunny, 20); w.DelayChance != 0.05 {
		t.Errorf("sunny delay chance %v, want 0.05", w.DelayChance)
	}
}

// countingProvider counts how often the underlying provider is hit.
type countingProvider struct {
	calls int
	err   error
}

func (p *countingProvider) Observation(time.Time) (Weather, error) {
	p.calls++
	return Make(Rainy, 8), p.err
}

func TestCachingProvider(t *testing.T) {
	inner := &countingProvider{}
	p := MakeCachingProvider(inner)
	base := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		w, err := p.Observation(base.Add(time.Duration(i) * time.Minute))
		if err != nil {
			t.Fatal(err)
		}
		if w.Condition != Rainy {
			t.Errorf("condition %v, want Rainy", w.Condition)
		}
	}
	if inner.calls != 1 {
		t.Errorf("%d provider calls within one hour, want 1", inner.calls)
	}

	if _, err := p.Observation(base.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Errorf("%d provider calls across hours, want 2", inner.calls)
	}
}

func TestCachingProviderDoesNotCacheErrors(t *testing.T) {
	inner := &countingProvider{err: errors.New("feed down")}
	p := MakeCachingProvider(inner)
	at := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	if _, err := p.Observation(at); err == nil {
		t.Fatal("expected error")
	}
	if _, err := p.Observation(at); err == nil {
		t.Fatal("expected error on retry")
	}
	if inner.calls != 2 {
		t.Errorf("%d provider calls, want the failure retried", inner.calls)
	}
}
