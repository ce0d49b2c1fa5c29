package models

import "time"

// Stats - количество заказов с начала периода. Черновики не считаются.
type Stats struct {
	Week    int `json:"week"`
	Month   int `json:"month"`
	Quarter int `json:"quarter"`
	Year    int `json:"year"`
}

// PeriodStarts - начала отчётных периодов в часовом поясе now.
type PeriodStarts struct {
	Week    time.Time
	Month   time.Time
	Quarter time.Time
	Year    time.Time
}

// NewPeriodStarts считает начало недели (понедельник 00:00), месяца,
// календарного квартала и года для момента now.
func NewPeriodStarts(now time.Time) PeriodStarts {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	// time.Sunday == 0, неделя начинается с понедельника.
	offset := (int(today.Weekday()) + 6) % 7
	quarterMonth := time.Month((int(now.Month())-1)/3*3 + 1)

	return PeriodStarts{
		Week:    today.AddDate(0, 0, -offset),
		Month:   time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc),
		Quarter: time.Date(now.Year(), quarterMonth, 1, 0, 0, 0, 0, loc),
		Year:    time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc),
	}
}
