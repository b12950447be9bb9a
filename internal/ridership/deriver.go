package ridership

import (
	"math"
	"sort"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/floats"
)

var (
	weekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	weekendNames = []string{"Saturday", "Sunday"}
)

// Metrics is the set of derivations the presentation layer consumes.
// Deriver and CachedDeriver both implement it.
type Metrics interface {
	Years() []int
	ModalShare(year int) (ModalShare, error)
	ModalShareComparison(years ...int) ([]ModalShare, error)
	OverviewKPI(year int) (KPI, error)
	SegmentKPI(year int, mode Mode) (KPI, error)
	OverviewRecoveryKPI(year int) (KPI, error)
	SegmentRecoveryKPI(year int, mode Mode) (KPI, error)
	PeriodSummaries(mode Mode, years []int) []PeriodSummary
	Trend(sel Selector, from, to int) []TrendPoint
}

// Share is one mode's slice of a year's ridership.
type Share struct {
	Mode    Mode
	Total   int64
	Percent float64
}

// ModalShare holds every mode's percentage of a year's total ridership.
type ModalShare struct {
	Year   int
	Total  int64
	Shares []Share
}

// Percent returns the share for a mode, or 0 if the mode is absent.
func (ms ModalShare) Percent(m Mode) float64 {
	for _, s := range ms.Shares {
		if s.Mode == m {
			return s.Percent
		}
	}
	return 0
}

// Sum adds up all the shares; 100 for any year with ridership.
func (ms ModalShare) Sum() float64 {
	var sum float64
	for _, s := range ms.Shares {
		sum += s.Percent
	}
	return sum
}

// KPIMetric names what a KPI measures.
type KPIMetric string

const (
	MetricRidership KPIMetric = "ridership"
	MetricRecovery  KPIMetric = "pre_pandemic_pct"
)

// KPI is a year-over-year comparison: Current for Year against Previous for BaselineYear.
type KPI struct {
	Selector     Selector
	Metric       KPIMetric
	Year         int
	BaselineYear int
	Current      float64
	Previous     float64
	Delta        float64
	PercentDelta float64
}

// PeriodSummary splits a year's ridership for one mode by day type.
type PeriodSummary struct {
	Year    int
	Weekday int64
	Weekend int64
	Sunday  int64
	Total   int64
}

// TrendPoint is one day of a ridership series.
type TrendPoint struct {
	Date  time.Time
	Value int64
}

// Option configures a Deriver.
type Option func(*Deriver)

// WithZeroPolicy sets how zero denominators are handled. The default is ZeroFill.
func WithZeroPolicy(p ZeroDenominatorPolicy) Option {
	return func(d *Deriver) {
		d.policy = p
	}
}

// WithReferenceMode sets the mode whose pre-pandemic percentage backs the overview recovery KPI.
// The default is Subways.
func WithReferenceMode(m Mode) Option {
	return func(d *Deriver) {
		d.referenceMode = m
	}
}

// Deriver computes aggregates over an immutable Dataset. Every method is a pure function of
// the dataset and its arguments.
type Deriver struct {
	data          *Dataset
	policy        ZeroDenominatorPolicy
	referenceMode Mode
}

func NewDeriver(data *Dataset, opts ...Option) *Deriver {
	d := &Deriver{
		data:          data,
		policy:        ZeroFill,
		referenceMode: Subways,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Deriver) Dataset() *Dataset {
	return d.data
}

func (d *Deriver) Policy() ZeroDenominatorPolicy {
	return d.policy
}

func (d *Deriver) ReferenceMode() Mode {
	return d.referenceMode
}

func (d *Deriver) Years() []int {
	return d.data.Years()
}

// ModalShare filters to the year, sums each mode and divides by the year's grand total.
func (d *Deriver) ModalShare(year int) (ModalShare, error) {
	if !d.data.HasYear(year) {
		return ModalShare{}, &EmptyPeriodError{Year: year}
	}

	yf := d.data.yearFrame(year)
	sums := make([]float64, ModeCount)
	for _, m := range AllModes() {
		sums[m] = columnSum(yf, m.Column())
	}
	grand := floats.Sum(sums)

	out := ModalShare{
		Year:   year,
		Total:  int64(grand),
		Shares: make([]Share, 0, ModeCount),
	}
	for _, m := range AllModes() {
		pct, err := d.policy.percent(sums[m], grand, "modal share", year)
		if err != nil {
			return ModalShare{}, err
		}
		out.Shares = append(out.Shares, Share{Mode: m, Total: int64(sums[m]), Percent: pct})
	}
	return out, nil
}

// ModalShareComparison returns one ModalShare per year. Every result lists modes in the same
// order: by the first year's share, largest first.
func (d *Deriver) ModalShareComparison(years ...int) ([]ModalShare, error) {
	out := make([]ModalShare, 0, len(years))
	for _, y := range years {
		ms, err := d.ModalShare(y)
		if err != nil {
			return nil, err
		}
		out = append(out, ms)
	}
	if len(out) == 0 {
		return out, nil
	}

	rank := make(map[Mode]int, ModeCount)
	lead := append([]Share(nil), out[0].Shares...)
	sort.SliceStable(lead, func(i, j int) bool { return lead[i].Percent > lead[j].Percent })
	for i, s := range lead {
		rank[s.Mode] = i
	}
	for i := range out {
		sort.SliceStable(out[i].Shares, func(a, b int) bool {
			return rank[out[i].Shares[a].Mode] < rank[out[i].Shares[b].Mode]
		})
	}
	return out, nil
}

// OverviewKPI compares total ridership across all modes for year against year-1.
func (d *Deriver) OverviewKPI(year int) (KPI, error) {
	return d.ridershipKPI(year, TotalRidership())
}

// SegmentKPI compares one mode's ridership for year against year-1.
func (d *Deriver) SegmentKPI(year int, mode Mode) (KPI, error) {
	return d.ridershipKPI(year, ForMode(mode))
}

// OverviewRecoveryKPI compares the reference mode's mean percent-of-pre-pandemic for year
// against year-1.
func (d *Deriver) OverviewRecoveryKPI(year int) (KPI, error) {
	return d.recoveryKPI(year, d.referenceMode)
}

// SegmentRecoveryKPI compares one mode's mean percent-of-pre-pandemic for year against year-1.
func (d *Deriver) SegmentRecoveryKPI(year int, mode Mode) (KPI, error) {
	return d.recoveryKPI(year, mode)
}

func (d *Deriver) ridershipKPI(year int, sel Selector) (KPI, error) {
	baseline := year - 1
	if !d.data.HasYear(year) {
		return KPI{}, &EmptyPeriodError{Year: year}
	}
	if !d.data.HasYear(baseline) {
		return KPI{}, &MissingBaselineYearError{Year: year, BaselineYear: baseline}
	}

	cur := columnSum(d.data.yearFrame(year), sel.Column())
	prev := columnSum(d.data.yearFrame(baseline), sel.Column())
	return d.compare(KPI{
		Selector:     sel,
		Metric:       MetricRidership,
		Year:         year,
		BaselineYear: baseline,
		Current:      cur,
		Previous:     prev,
	})
}

func (d *Deriver) recoveryKPI(year int, mode Mode) (KPI, error) {
	baseline := year - 1
	if !d.data.HasYear(year) {
		return KPI{}, &EmptyPeriodError{Year: year}
	}
	if !d.data.HasYear(baseline) {
		return KPI{}, &MissingBaselineYearError{Year: year, BaselineYear: baseline}
	}

	cur, ok := columnMean(d.data.yearFrame(year), mode.PctColumn())
	if !ok {
		return KPI{}, &EmptyPeriodError{Year: year, Metric: mode.PctColumn()}
	}
	prev, ok := columnMean(d.data.yearFrame(baseline), mode.PctColumn())
	if !ok {
		return KPI{}, &MissingBaselineYearError{Year: year, BaselineYear: baseline}
	}
	return d.compare(KPI{
		Selector:     ForMode(mode),
		Metric:       MetricRecovery,
		Year:         year,
		BaselineYear: baseline,
		Current:      cur,
		Previous:     prev,
	})
}

func (d *Deriver) compare(k KPI) (KPI, error) {
	k.Delta = k.Current - k.Previous
	pct, err := d.policy.percent(k.Delta, k.Previous, "year-over-year change", k.Year)
	if err != nil {
		return KPI{}, err
	}
	k.PercentDelta = pct
	return k, nil
}

// PeriodSummaries returns one row per requested year, ascending, splitting the mode's ridership
// into weekday (Mon-Fri), weekend (Sat+Sun) and Sunday totals. Years without records yield zeros.
func (d *Deriver) PeriodSummaries(mode Mode, years []int) []PeriodSummary {
	sorted := append([]int(nil), years...)
	sort.Ints(sorted)

	out := make([]PeriodSummary, 0, len(sorted))
	for _, y := range sorted {
		row := PeriodSummary{Year: y}
		if d.data.HasYear(y) {
			yf := d.data.yearFrame(y)
			col := mode.Column()
			row.Weekday = int64(columnSum(dayFrame(yf, weekdayNames), col))
			row.Weekend = int64(columnSum(dayFrame(yf, weekendNames), col))
			row.Sunday = int64(columnSum(dayFrame(yf, []string{time.Sunday.String()}), col))
			row.Total = int64(columnSum(yf, col))
		}
		out = append(out, row)
	}
	return out
}

// Trend returns the selector's daily values for the inclusive year window, ordered by date.
func (d *Deriver) Trend(sel Selector, from, to int) []TrendPoint {
	if from > to {
		return []TrendPoint{}
	}

	window := d.data.frame.FilterAggregation(dataframe.And,
		dataframe.F{Colname: YearColumn, Comparator: series.GreaterEq, Comparando: from},
		dataframe.F{Colname: YearColumn, Comparator: series.LessEq, Comparando: to},
	)
	if window.Err != nil || window.Nrow() == 0 {
		return []TrendPoint{}
	}

	dates := window.Col(DateColumn).Records()
	values := window.Col(sel.Column()).Float()
	out := make([]TrendPoint, 0, len(dates))
	for i, s := range dates {
		t, err := time.Parse(isoDate, s)
		if err != nil {
			continue
		}
		out = append(out, TrendPoint{Date: t, Value: int64(values[i])})
	}
	return out
}

func dayFrame(df dataframe.DataFrame, days []string) dataframe.DataFrame {
	return df.Filter(dataframe.F{Colname: DayColumn, Comparator: series.In, Comparando: days})
}

func columnSum(df dataframe.DataFrame, col string) float64 {
	if df.Err != nil || df.Nrow() == 0 {
		return 0
	}
	return floats.Sum(df.Col(col).Float())
}

// columnMean averages the non-NaN values of a column; ok is false when there are none.
func columnMean(df dataframe.DataFrame, col string) (float64, bool) {
	if df.Err != nil || df.Nrow() == 0 {
		return 0, false
	}
	var vals []float64
	for _, v := range df.Col(col).Float() {
		if !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return 0, false
	}
	return floats.Sum(vals) / float64(len(vals)), true
}
