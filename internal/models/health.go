package models

import "time"

// HealthModel reports liveness plus the extent of the loaded dataset.
type HealthModel struct {
	Status       string `json:"status"`
	ReadableTime string `json:"readableTime"`
	Time         int64  `json:"time"`
	Rows         int    `json:"rows"`
	FirstDate    string `json:"firstDate"`
	LastDate     string `json:"lastDate"`
	Years        []int  `json:"years"`
}

// NewHealthModel stamps a HealthModel with t.
func NewHealthModel(t time.Time, rows int, first, last time.Time, years []int) HealthModel {
	h := HealthModel{
		Status:       "ok",
		ReadableTime: t.Format(time.RFC3339),
		Time:         t.UnixMilli(),
		Rows:         rows,
		Years:        years,
	}
	if rows > 0 {
		h.FirstDate = first.Format(DateLayout)
		h.LastDate = last.Format(DateLayout)
	}
	if h.Years == nil {
		h.Years = []int{}
	}
	return h
}
