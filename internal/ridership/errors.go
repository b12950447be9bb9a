package ridership

import "fmt"

// MalformedInputError reports a schema or parse failure while loading the dataset.
// Row is the 1-based data row (excluding the header) or 0 when the problem is not row specific.
type MalformedInputError struct {
	Row    int
	Column string
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	msg := "malformed ridership input"
	if e.Column != "" {
		msg += fmt.Sprintf(": column %q", e.Column)
	}
	if e.Row > 0 {
		msg += fmt.Sprintf(": row %d", e.Row)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// EmptyPeriodError is returned when a requested year has no matching records.
type EmptyPeriodError struct {
	Year   int
	Metric string
}

func (e *EmptyPeriodError) Error() string {
	if e.Metric != "" {
		return fmt.Sprintf("no %s data for year %d", e.Metric, e.Year)
	}
	return fmt.Sprintf("no records for year %d", e.Year)
}

// MissingBaselineYearError is returned by year-over-year KPIs when Y-1 has no records.
type MissingBaselineYearError struct {
	Year         int
	BaselineYear int
}

func (e *MissingBaselineYearError) Error() string {
	return fmt.Sprintf("no baseline data for year %d (needed to compare %d)", e.BaselineYear, e.Year)
}

// DivisionByZeroError is returned under FailOnZero when a ratio has a zero denominator.
type DivisionByZeroError struct {
	Operation string
	Year      int
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("%s for year %d: denominator is zero", e.Operation, e.Year)
}
