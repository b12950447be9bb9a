package models

import (
	"github.com/transitstats/mta-ridership/internal/ridership"
)

// DateLayout is how dates are rendered in API payloads.
const DateLayout = "2006-01-02"

type ModeModel struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Column string `json:"column"`
}

func NewModeModel(m ridership.Mode) ModeModel {
	return ModeModel{ID: m.Slug(), Name: m.String(), Column: m.RawColumn()}
}

// NewModeModels lists every mode in canonical order.
func NewModeModels() []ModeModel {
	modes := ridership.AllModes()
	out := make([]ModeModel, 0, len(modes))
	for _, m := range modes {
		out = append(out, NewModeModel(m))
	}
	return out
}

type ShareModel struct {
	ModeID  string  `json:"modeId"`
	Name    string  `json:"name"`
	Total   int64   `json:"total"`
	Percent float64 `json:"percent"`
}

type ModalShareModel struct {
	Year   int          `json:"year"`
	Total  int64        `json:"total"`
	Shares []ShareModel `json:"shares"`
}

func NewModalShareModel(ms ridership.ModalShare) ModalShareModel {
	shares := make([]ShareModel, 0, len(ms.Shares))
	for _, s := range ms.Shares {
		shares = append(shares, ShareModel{
			ModeID:  s.Mode.Slug(),
			Name:    s.Mode.String(),
			Total:   s.Total,
			Percent: s.Percent,
		})
	}
	return ModalShareModel{Year: ms.Year, Total: ms.Total, Shares: shares}
}

func NewModalShareModels(in []ridership.ModalShare) []ModalShareModel {
	out := make([]ModalShareModel, 0, len(in))
	for _, ms := range in {
		out = append(out, NewModalShareModel(ms))
	}
	return out
}

type KPIModel struct {
	SelectorID   string  `json:"selectorId"`
	Name         string  `json:"name"`
	Metric       string  `json:"metric"`
	Year         int     `json:"year"`
	BaselineYear int     `json:"baselineYear"`
	Current      float64 `json:"current"`
	Previous     float64 `json:"previous"`
	Delta        float64 `json:"delta"`
	PercentDelta float64 `json:"percentDelta"`
}

func NewKPIModel(k ridership.KPI) KPIModel {
	return KPIModel{
		SelectorID:   k.Selector.Slug(),
		Name:         k.Selector.String(),
		Metric:       string(k.Metric),
		Year:         k.Year,
		BaselineYear: k.BaselineYear,
		Current:      k.Current,
		Previous:     k.Previous,
		Delta:        k.Delta,
		PercentDelta: k.PercentDelta,
	}
}

type PeriodSummaryModel struct {
	Year    int   `json:"year"`
	Weekday int64 `json:"weekday"`
	Weekend int64 `json:"weekend"`
	Sunday  int64 `json:"sunday"`
	Total   int64 `json:"total"`
}

func NewPeriodSummaryModels(rows []ridership.PeriodSummary) []PeriodSummaryModel {
	out := make([]PeriodSummaryModel, 0, len(rows))
	for _, r := range rows {
		out = append(out, PeriodSummaryModel(r))
	}
	return out
}

type TrendPointModel struct {
	Date  string `json:"date"`
	Value int64  `json:"value"`
}

func NewTrendPointModels(points []ridership.TrendPoint) []TrendPointModel {
	out := make([]TrendPointModel, 0, len(points))
	for _, p := range points {
		out = append(out, TrendPointModel{Date: p.Date.Format(DateLayout), Value: p.Value})
	}
	return out
}

// OverviewModel backs the overview page: system-wide KPIs plus the year's modal share.
// A KPI is nil when it cannot be computed for the year, e.g. the first year on record.
type OverviewModel struct {
	Year       int             `json:"year"`
	Ridership  *KPIModel       `json:"ridership"`
	Recovery   *KPIModel       `json:"recovery"`
	ModalShare ModalShareModel `json:"modalShare"`
}

// SegmentModel backs the per-mode page.
type SegmentModel struct {
	Mode      ModeModel            `json:"mode"`
	Year      int                  `json:"year"`
	Ridership *KPIModel            `json:"ridership"`
	Recovery  *KPIModel            `json:"recovery"`
	Summary   []PeriodSummaryModel `json:"summary"`
}
