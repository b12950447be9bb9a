package ridership

import (
	"fmt"
	"strings"
)

// Mode identifies one of the seven MTA services tracked by the dataset.
type Mode int

const (
	Subways Mode = iota
	Buses
	LIRR
	MetroNorth
	AccessARide
	BridgesAndTunnels
	StatenIslandRailway
)

// ModeCount is the number of services in every ridership record.
const ModeCount = 7

// Column names shared by the raw CSV and the normalized frame.
const (
	DateColumn  = "Date"
	YearColumn  = "Year"
	MonthColumn = "Month"
	DayColumn   = "Day"
	TotalColumn = "Total Ridership"
)

type modeInfo struct {
	name        string
	slug        string
	countColumn string
}

var modes = [ModeCount]modeInfo{
	{name: "Subways", slug: "subways", countColumn: "Subways: Total Estimated Ridership"},
	{name: "Buses", slug: "buses", countColumn: "Buses: Total Estimated Ridership"},
	{name: "LIRR", slug: "lirr", countColumn: "LIRR: Total Estimated Ridership"},
	{name: "Metro-North", slug: "metro-north", countColumn: "Metro-North: Total Estimated Ridership"},
	{name: "Access-A-Ride", slug: "access-a-ride", countColumn: "Access-A-Ride: Total Scheduled Trips"},
	{name: "Bridges and Tunnels", slug: "bridges-and-tunnels", countColumn: "Bridges and Tunnels: Total Traffic"},
	{name: "Staten Island Railway", slug: "staten-island-railway", countColumn: "Staten Island Railway: Total Estimated Ridership"},
}

// AllModes returns the modes in dataset column order.
func AllModes() []Mode {
	out := make([]Mode, ModeCount)
	for i := range out {
		out[i] = Mode(i)
	}
	return out
}

func (m Mode) Valid() bool {
	return m >= 0 && int(m) < ModeCount
}

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modes[m].name
}

// Slug is the URL-safe identifier used by the HTTP layer.
func (m Mode) Slug() string {
	if !m.Valid() {
		return ""
	}
	return modes[m].slug
}

// Column is the normalized name of the absolute ridership column.
func (m Mode) Column() string {
	return m.String()
}

// PctColumn is the normalized name of the percent-of-pre-pandemic column.
func (m Mode) PctColumn() string {
	return m.String() + " %"
}

// RawColumn is the absolute ridership column as published in the source CSV.
func (m Mode) RawColumn() string {
	return modes[m].countColumn
}

// RawPctColumn is the percent-of-pre-pandemic column as published in the source CSV.
func (m Mode) RawPctColumn() string {
	return m.String() + ": % of Comparable Pre-Pandemic Day"
}

// ParseMode accepts a display name ("Metro-North") or a slug ("metro-north"), case-insensitively.
func ParseMode(s string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, info := range modes {
		if key == strings.ToLower(info.name) || key == info.slug {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown transport mode %q", s)
}

// Selector picks either a single mode or the sum across all modes.
// The zero value selects Subways; use TotalRidership for the aggregate.
type Selector struct {
	Mode  Mode
	Total bool
}

func TotalRidership() Selector {
	return Selector{Total: true}
}

func ForMode(m Mode) Selector {
	return Selector{Mode: m}
}

func (s Selector) Column() string {
	if s.Total {
		return TotalColumn
	}
	return s.Mode.Column()
}

func (s Selector) String() string {
	return s.Column()
}

func (s Selector) Slug() string {
	if s.Total {
		return "total"
	}
	return s.Mode.Slug()
}

// ParseSelector treats an empty string or "total" as Total Ridership and anything else as a mode.
func ParseSelector(s string) (Selector, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "total", strings.ToLower(TotalColumn):
		return TotalRidership(), nil
	}
	m, err := ParseMode(s)
	if err != nil {
		return Selector{}, err
	}
	return ForMode(m), nil
}
