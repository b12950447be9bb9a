package ridership

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Accepted layouts for the Date column, tried in order.
var dateLayouts = []string{
	"01/02/2006",
	"2006-01-02",
	"2006-01-02T15:04:05",
	"1/2/2006",
}

const isoDate = "2006-01-02"

// Record is one normalized day of ridership.
type Record struct {
	Date           time.Time
	Year           int
	Month          time.Month
	Weekday        time.Weekday
	Counts         [ModeCount]int64
	PrePandemicPct [ModeCount]float64 // NaN when the source left the cell blank
	Total          int64
}

// Count returns the ridership for the selector.
func (r Record) Count(sel Selector) int64 {
	if sel.Total {
		return r.Total
	}
	return r.Counts[sel.Mode]
}

// Dataset is the immutable, normalized ridership table. It is safe for concurrent reads.
type Dataset struct {
	frame   dataframe.DataFrame
	records []Record
	years   []int
	yearSet map[int]struct{}
}

// LoadFile reads and normalizes a ridership CSV from disk.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening ridership file: %w", err)
	}
	defer f.Close() // nolint

	return Load(f)
}

// Load reads the published CSV, renames the mode columns to their short names and derives
// the Year, Month, Day and Total Ridership columns.
func Load(r io.Reader) (*Dataset, error) {
	types := map[string]series.Type{DateColumn: series.String}
	for _, m := range AllModes() {
		types[m.RawColumn()] = series.Float
		types[m.RawPctColumn()] = series.Float
	}

	df := dataframe.ReadCSV(r, dataframe.WithTypes(types))
	if df.Err != nil {
		return nil, &MalformedInputError{Reason: "unreadable csv", Err: df.Err}
	}
	if err := requireColumns(df.Names()); err != nil {
		return nil, err
	}
	if df.Nrow() == 0 {
		return nil, &MalformedInputError{Reason: "no data rows"}
	}

	for _, m := range AllModes() {
		df = df.Rename(m.Column(), m.RawColumn()).Rename(m.PctColumn(), m.RawPctColumn())
	}
	if df.Err != nil {
		return nil, &MalformedInputError{Reason: "renaming columns", Err: df.Err}
	}

	if err := validateCounts(df); err != nil {
		return nil, err
	}

	dates, err := parseDates(df.Col(DateColumn).Records())
	if err != nil {
		return nil, err
	}

	n := df.Nrow()
	iso := make([]string, n)
	years := make([]int, n)
	months := make([]int, n)
	days := make([]string, n)
	totals := make([]float64, n)
	for i, d := range dates {
		iso[i] = d.Format(isoDate)
		years[i] = d.Year()
		months[i] = int(d.Month())
		days[i] = d.Weekday().String()
	}
	for _, m := range AllModes() {
		for i, v := range df.Col(m.Column()).Float() {
			totals[i] += v
		}
	}

	df = df.Mutate(series.New(iso, series.String, DateColumn)).
		Mutate(series.New(years, series.Int, YearColumn)).
		Mutate(series.New(months, series.Int, MonthColumn)).
		Mutate(series.New(days, series.String, DayColumn)).
		Mutate(series.New(totals, series.Float, TotalColumn)).
		Arrange(dataframe.Sort(DateColumn))
	if df.Err != nil {
		return nil, &MalformedInputError{Reason: "deriving calendar columns", Err: df.Err}
	}

	return newDataset(df)
}

func requireColumns(names []string) error {
	present := make(map[string]struct{}, len(names))
	for _, name := range names {
		present[name] = struct{}{}
	}

	required := []string{DateColumn}
	for _, m := range AllModes() {
		required = append(required, m.RawColumn(), m.RawPctColumn())
	}

	var missing []string
	for _, col := range required {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &MalformedInputError{
			Column: missing[0],
			Reason: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")),
		}
	}
	return nil
}

func validateCounts(df dataframe.DataFrame) error {
	for _, m := range AllModes() {
		for i, v := range df.Col(m.Column()).Float() {
			switch {
			case math.IsNaN(v):
				return &MalformedInputError{Row: i + 1, Column: m.RawColumn(), Reason: "missing or non-numeric count"}
			case v < 0:
				return &MalformedInputError{Row: i + 1, Column: m.RawColumn(), Reason: fmt.Sprintf("negative count %v", v)}
			case v != math.Trunc(v) || math.IsInf(v, 0):
				return &MalformedInputError{Row: i + 1, Column: m.RawColumn(), Reason: fmt.Sprintf("count %v is not a whole number", v)}
			}
		}
	}
	return nil
}

func parseDates(raw []string) ([]time.Time, error) {
	out := make([]time.Time, len(raw))
	for i, s := range raw {
		d, err := parseDate(s)
		if err != nil {
			return nil, &MalformedInputError{Row: i + 1, Column: DateColumn, Reason: "unparseable date", Err: err}
		}
		out[i] = d
	}
	return out, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("date %q matches none of %v", s, dateLayouts)
}

// newDataset builds the typed record view from a normalized, date-sorted frame.
func newDataset(df dataframe.DataFrame) (*Dataset, error) {
	n := df.Nrow()
	dates := df.Col(DateColumn).Records()

	counts := make([][]float64, ModeCount)
	pcts := make([][]float64, ModeCount)
	for _, m := range AllModes() {
		counts[m] = df.Col(m.Column()).Float()
		pcts[m] = df.Col(m.PctColumn()).Float()
	}

	ds := &Dataset{
		frame:   df,
		records: make([]Record, n),
		yearSet: make(map[int]struct{}),
	}
	for i := 0; i < n; i++ {
		d, err := time.Parse(isoDate, dates[i])
		if err != nil {
			return nil, &MalformedInputError{Row: i + 1, Column: DateColumn, Reason: "unparseable date", Err: err}
		}
		if i > 0 && dates[i] == dates[i-1] {
			return nil, &MalformedInputError{Column: DateColumn, Reason: fmt.Sprintf("duplicate date %s", dates[i])}
		}

		rec := Record{
			Date:    d,
			Year:    d.Year(),
			Month:   d.Month(),
			Weekday: d.Weekday(),
		}
		for _, m := range AllModes() {
			rec.Counts[m] = int64(counts[m][i])
			rec.PrePandemicPct[m] = pcts[m][i]
			rec.Total += rec.Counts[m]
		}
		ds.records[i] = rec

		if _, ok := ds.yearSet[rec.Year]; !ok {
			ds.yearSet[rec.Year] = struct{}{}
			ds.years = append(ds.years, rec.Year)
		}
	}
	sort.Ints(ds.years)

	return ds, nil
}

// Len returns the number of daily records.
func (ds *Dataset) Len() int {
	return len(ds.records)
}

// Records returns a copy of the normalized records, ordered by date.
func (ds *Dataset) Records() []Record {
	out := make([]Record, len(ds.records))
	copy(out, ds.records)
	return out
}

// Frame returns a copy of the augmented table, including the derived columns.
func (ds *Dataset) Frame() dataframe.DataFrame {
	return ds.frame.Copy()
}

// Years returns the distinct years present, ascending.
func (ds *Dataset) Years() []int {
	out := make([]int, len(ds.years))
	copy(out, ds.years)
	return out
}

func (ds *Dataset) HasYear(year int) bool {
	_, ok := ds.yearSet[year]
	return ok
}

// FirstDate and LastDate bound the dataset. Both are zero for an empty dataset.
func (ds *Dataset) FirstDate() time.Time {
	if len(ds.records) == 0 {
		return time.Time{}
	}
	return ds.records[0].Date
}

func (ds *Dataset) LastDate() time.Time {
	if len(ds.records) == 0 {
		return time.Time{}
	}
	return ds.records[len(ds.records)-1].Date
}

// yearFrame returns the rows of a single year.
func (ds *Dataset) yearFrame(year int) dataframe.DataFrame {
	return ds.frame.Filter(dataframe.F{Colname: YearColumn, Comparator: series.Eq, Comparando: year})
}
