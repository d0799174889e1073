// wx/provider.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Provider supplies the observation for a point in time.  The production
// provider sits outside this module (it polls an HTTP weather API hourly
// and feeds the result in as commands); in-process providers exist for
// tests and for offline runs.
type Provider interface {
	Observation(t time.Time) (Weather, error)
}

// StaticProvider always reports the same observation.
type StaticProvider struct {
	Wx Weather
}

func (p *StaticProvider) Observation(time.Time) (Weather, error) {
	return p.Wx, nil
}

// CachingProvider memoizes another Provider's observations per hour so
// that repeated lookups within the same observation interval don't hit
// the underlying provider again.
type CachingProvider struct {
	provider Provider
	cache    *lru.Cache[int64, Weather]
}

func MakeCachingProvider(p Provider) *CachingProvider {
	// 48 entries covers two days of hourly observations.
	c, _ := lru.New[int64, Weather](48)
	return &CachingProvider{provider: p, cache: c}
}

func (c *CachingProvider) Observation(t time.Time) (Weather, error) {
	hour := t.Truncate(time.Hour).Unix()
	if w, ok := c.cache.Get(hour); ok {
		return w, nil
	}
	w, err := c.provider.Observation(t)
	if err != nil {
		return Weather{}, err
	}
	c.cache.Add(hour, w)
	return w, nil
}
