package ridership

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFixture(t *testing.T) {
	ds := loadFixture(t)

	assert.Equal(t, 14, ds.Len())
	assert.Equal(t, []int{2023, 2024}, ds.Years())
	assert.True(t, ds.HasYear(2023))
	assert.False(t, ds.HasYear(2022))
	assert.Equal(t, time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), ds.FirstDate())
	assert.Equal(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), ds.LastDate())
}

func TestLoadDerivesCalendarFields(t *testing.T) {
	ds := loadFixture(t)
	records := ds.Records()

	first := records[0]
	assert.Equal(t, 2023, first.Year)
	assert.Equal(t, time.January, first.Month)
	assert.Equal(t, time.Monday, first.Weekday)

	last := records[len(records)-1]
	assert.Equal(t, time.Sunday, last.Weekday)
	assert.Equal(t, int64(600), last.Counts[Subways])
	assert.Equal(t, 60.0, last.PrePandemicPct[Subways])

	for i := 1; i < len(records); i++ {
		assert.True(t, records[i-1].Date.Before(records[i].Date), "records must be sorted by date")
	}
}

func TestTotalIsSumOfModes(t *testing.T) {
	ds := loadFixture(t)

	for _, r := range ds.Records() {
		var sum int64
		for _, m := range AllModes() {
			sum += r.Counts[m]
		}
		assert.Equal(t, sum, r.Total, "total for %s", r.Date.Format("2006-01-02"))
		assert.Equal(t, r.Total, r.Count(TotalRidership()))
	}
}

func TestFrameHasNormalizedColumns(t *testing.T) {
	ds := loadFixture(t)
	frame := ds.Frame()

	names := frame.Names()
	for _, col := range []string{DateColumn, YearColumn, MonthColumn, DayColumn, TotalColumn, "Subways", "Subways %", "Bridges and Tunnels %"} {
		assert.Contains(t, names, col)
	}
	assert.NotContains(t, names, "Subways: Total Estimated Ridership")
	assert.Equal(t, "2023-01-02", frame.Col(DateColumn).Records()[0])
	assert.Equal(t, "Monday", frame.Col(DayColumn).Records()[0])
}

func TestBlankPercentIsNaN(t *testing.T) {
	ds := loadFixture(t)

	blanks := 0
	for _, r := range ds.Records() {
		if math.IsNaN(r.PrePandemicPct[Buses]) {
			blanks++
		}
	}
	assert.Equal(t, 1, blanks)
}

func TestRecordsReturnsCopy(t *testing.T) {
	ds := loadFixture(t)

	records := ds.Records()
	records[0].Total = -1
	assert.NotEqual(t, int64(-1), ds.Records()[0].Total)

	years := ds.Years()
	years[0] = 1900
	assert.Equal(t, 2023, ds.Years()[0])
}

func TestLoadMalformedInput(t *testing.T) {
	valid := testRow{date: "01/01/2021", counts: counts(10, 5)}

	tests := []struct {
		name   string
		csv    string
		column string
	}{
		{
			name:   "missing mode column",
			csv:    strings.Replace(buildCSV(valid), "LIRR: Total Estimated Ridership", "LIRR riders", 1),
			column: "LIRR: Total Estimated Ridership",
		},
		{
			name:   "missing date column",
			csv:    strings.Replace(buildCSV(valid), "Date,", "Day,", 1),
			column: DateColumn,
		},
		{
			name:   "unparseable date",
			csv:    buildCSV(testRow{date: "not-a-date", counts: counts(10, 5)}),
			column: DateColumn,
		},
		{
			name:   "negative count",
			csv:    buildCSV(testRow{date: "01/01/2021", counts: counts(-10, 5)}),
			column: "Subways: Total Estimated Ridership",
		},
		{
			name:   "duplicate date",
			csv:    buildCSV(valid, valid),
			column: DateColumn,
		},
		{
			name:   "header only",
			csv:    csvHeader() + "\n",
			column: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Load(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Nil(t, ds)

			var malformed *MalformedInputError
			require.True(t, errors.As(err, &malformed), "expected MalformedInputError, got %T: %v", err, err)
			if tt.column != "" {
				assert.Equal(t, tt.column, malformed.Column)
			}
		})
	}
}

func TestLoadAcceptsISODates(t *testing.T) {
	ds := loadRows(t,
		testRow{date: "2021-03-01", counts: counts(10, 5)},
		testRow{date: "2021-03-02", counts: counts(20, 5)},
	)

	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, time.March, ds.Records()[0].Month)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("does-not-exist.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error opening ridership file")
}
