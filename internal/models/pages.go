package models

import (
	"errors"

	"github.com/transitstats/mta-ridership/internal/ridership"
)

// optionalKPI converts a KPI result for composite pages. A missing baseline year, or a year
// whose pre-pandemic percentages are all blank, yields nil rather than failing the page.
func optionalKPI(k ridership.KPI, err error) (*KPIModel, error) {
	if err != nil {
		var (
			baseline *ridership.MissingBaselineYearError
			empty    *ridership.EmptyPeriodError
		)
		if errors.As(err, &baseline) || (errors.As(err, &empty) && empty.Metric != "") {
			return nil, nil
		}
		return nil, err
	}
	m := NewKPIModel(k)
	return &m, nil
}

// BuildOverview assembles the overview page for a year.
func BuildOverview(m ridership.Metrics, year int) (OverviewModel, error) {
	ms, err := m.ModalShare(year)
	if err != nil {
		return OverviewModel{}, err
	}
	ridershipKPI, err := optionalKPI(m.OverviewKPI(year))
	if err != nil {
		return OverviewModel{}, err
	}
	recoveryKPI, err := optionalKPI(m.OverviewRecoveryKPI(year))
	if err != nil {
		return OverviewModel{}, err
	}
	return OverviewModel{
		Year:       year,
		Ridership:  ridershipKPI,
		Recovery:   recoveryKPI,
		ModalShare: NewModalShareModel(ms),
	}, nil
}

// BuildSegment assembles the per-mode page for a year. The summary covers every year on record.
func BuildSegment(m ridership.Metrics, mode ridership.Mode, year int) (SegmentModel, error) {
	ridershipKPI, err := optionalKPI(m.SegmentKPI(year, mode))
	if err != nil {
		return SegmentModel{}, err
	}
	recoveryKPI, err := optionalKPI(m.SegmentRecoveryKPI(year, mode))
	if err != nil {
		return SegmentModel{}, err
	}
	return SegmentModel{
		Mode:      NewModeModel(mode),
		Year:      year,
		Ridership: ridershipKPI,
		Recovery:  recoveryKPI,
		Summary:   NewPeriodSummaryModels(m.PeriodSummaries(mode, m.Years())),
	}, nil
}
