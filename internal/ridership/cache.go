package ridership

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/bluele/gcache"
)

// CachedDeriver memoizes a Deriver's results in an LRU keyed on (operation, year, selector).
// Errors are never cached. Slices are copied on the way in and out so callers cannot alter
// what other callers see.
type CachedDeriver struct {
	inner *Deriver
	cache gcache.Cache
}

// NewCachedDeriver wraps d with an LRU of the given size. A zero ttl keeps entries until evicted.
func NewCachedDeriver(d *Deriver, size int, ttl time.Duration) *CachedDeriver {
	if size <= 0 {
		size = 256
	}
	b := gcache.New(size).LRU()
	if ttl > 0 {
		b = b.Expiration(ttl)
	}
	return &CachedDeriver{inner: d, cache: b.Build()}
}

func (c *CachedDeriver) Deriver() *Deriver {
	return c.inner
}

// Len reports how many results are currently memoized.
func (c *CachedDeriver) Len() int {
	return c.cache.Len(false)
}

func memoKey(args ...string) string {
	return strings.Join(args, "|")
}

func (c *CachedDeriver) lookup(key string) (interface{}, bool) {
	v, err := c.cache.Get(key)
	if err != nil {
		return nil, false
	}
	return v, true
}

func (c *CachedDeriver) store(key string, v interface{}) {
	_ = c.cache.Set(key, v)
}

func (c *CachedDeriver) Years() []int {
	return c.inner.Years()
}

func (c *CachedDeriver) ModalShare(year int) (ModalShare, error) {
	key := memoKey("share", strconv.Itoa(year))
	if v, ok := c.lookup(key); ok {
		return copyShare(v.(ModalShare)), nil
	}
	ms, err := c.inner.ModalShare(year)
	if err != nil {
		return ModalShare{}, err
	}
	c.store(key, copyShare(ms))
	return ms, nil
}

func (c *CachedDeriver) ModalShareComparison(years ...int) ([]ModalShare, error) {
	parts := make([]string, 0, len(years)+1)
	parts = append(parts, "share-cmp")
	for _, y := range years {
		parts = append(parts, strconv.Itoa(y))
	}
	key := memoKey(parts...)
	if v, ok := c.lookup(key); ok {
		return copyShares(v.([]ModalShare)), nil
	}
	out, err := c.inner.ModalShareComparison(years...)
	if err != nil {
		return nil, err
	}
	c.store(key, copyShares(out))
	return out, nil
}

func (c *CachedDeriver) OverviewKPI(year int) (KPI, error) {
	return c.kpi(memoKey("overview", strconv.Itoa(year)), func() (KPI, error) {
		return c.inner.OverviewKPI(year)
	})
}

func (c *CachedDeriver) SegmentKPI(year int, mode Mode) (KPI, error) {
	return c.kpi(memoKey("segment", strconv.Itoa(year), mode.Slug()), func() (KPI, error) {
		return c.inner.SegmentKPI(year, mode)
	})
}

func (c *CachedDeriver) OverviewRecoveryKPI(year int) (KPI, error) {
	return c.kpi(memoKey("overview-recovery", strconv.Itoa(year)), func() (KPI, error) {
		return c.inner.OverviewRecoveryKPI(year)
	})
}

func (c *CachedDeriver) SegmentRecoveryKPI(year int, mode Mode) (KPI, error) {
	return c.kpi(memoKey("segment-recovery", strconv.Itoa(year), mode.Slug()), func() (KPI, error) {
		return c.inner.SegmentRecoveryKPI(year, mode)
	})
}

func (c *CachedDeriver) kpi(key string, compute func() (KPI, error)) (KPI, error) {
	if v, ok := c.lookup(key); ok {
		return v.(KPI), nil
	}
	k, err := compute()
	if err != nil {
		return KPI{}, err
	}
	c.store(key, k)
	return k, nil
}

func (c *CachedDeriver) PeriodSummaries(mode Mode, years []int) []PeriodSummary {
	parts := []string{"summary", mode.Slug()}
	for _, y := range years {
		parts = append(parts, strconv.Itoa(y))
	}
	key := memoKey(parts...)
	if v, ok := c.lookup(key); ok {
		return slices.Clone(v.([]PeriodSummary))
	}
	rows := c.inner.PeriodSummaries(mode, years)
	c.store(key, slices.Clone(rows))
	return rows
}

func (c *CachedDeriver) Trend(sel Selector, from, to int) []TrendPoint {
	key := memoKey("trend", sel.Slug(), strconv.Itoa(from), strconv.Itoa(to))
	if v, ok := c.lookup(key); ok {
		return slices.Clone(v.([]TrendPoint))
	}
	points := c.inner.Trend(sel, from, to)
	c.store(key, slices.Clone(points))
	return points
}

func copyShare(ms ModalShare) ModalShare {
	ms.Shares = slices.Clone(ms.Shares)
	return ms
}

func copyShares(in []ModalShare) []ModalShare {
	out := make([]ModalShare, len(in))
	for i, ms := range in {
		out[i] = copyShare(ms)
	}
	return out
}
