package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_PhotoIDs(t *testing.T) {
	o := Order{PhotoFileID: NewNullString(" AgAC1, ,AgAC2 ,")}
	assert.Equal(t, []string{"AgAC1", "AgAC2"}, o.PhotoIDs())

	assert.Nil(t, (&Order{}).PhotoIDs())
}

func TestNullString_JSON(t *testing.T) {
	o := Order{ID: 7, Comment: NewNullString("тел 89160856070")}
	b, err := json.Marshal(o)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "тел 89160856070", raw["comment"])
	assert.Nil(t, raw["internal_note"])

	var back NullString
	require.NoError(t, json.Unmarshal([]byte("null"), &back))
	assert.False(t, back.Valid)
	assert.Equal(t, "", back.OrEmpty())
}

func TestStatusChange_Changed(t *testing.T) {
	assert.True(t, StatusChange{OldStatus: "new", NewStatus: "done"}.Changed())
	assert.False(t, StatusChange{OldStatus: "done", NewStatus: "done"}.Changed())
}

func TestNewPeriodStarts(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)

	tests := []struct {
		name    string
		now     time.Time
		week    time.Time
		quarter time.Time
	}{
		{
			name:    "wednesday in second quarter",
			now:     time.Date(2024, time.May, 15, 13, 45, 0, 0, loc),
			week:    time.Date(2024, time.May, 13, 0, 0, 0, 0, loc),
			quarter: time.Date(2024, time.April, 1, 0, 0, 0, 0, loc),
		},
		{
			name:    "monday is its own week start",
			now:     time.Date(2024, time.May, 13, 0, 30, 0, 0, loc),
			week:    time.Date(2024, time.May, 13, 0, 0, 0, 0, loc),
			quarter: time.Date(2024, time.April, 1, 0, 0, 0, 0, loc),
		},
		{
			name:    "sunday belongs to the week started on monday",
			now:     time.Date(2024, time.December, 29, 23, 0, 0, 0, loc),
			week:    time.Date(2024, time.December, 23, 0, 0, 0, 0, loc),
			quarter: time.Date(2024, time.October, 1, 0, 0, 0, 0, loc),
		},
		{
			name:    "week crossing year boundary",
			now:     time.Date(2025, time.January, 2, 9, 0, 0, 0, loc),
			week:    time.Date(2024, time.December, 30, 0, 0, 0, 0, loc),
			quarter: time.Date(2025, time.January, 1, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPeriodStarts(tt.now)
			assert.True(t, tt.week.Equal(p.Week), "week: %s", p.Week)
			assert.True(t, tt.quarter.Equal(p.Quarter), "quarter: %s", p.Quarter)
			assert.Equal(t, 1, p.Month.Day())
			assert.Equal(t, tt.now.Month(), p.Month.Month())
			assert.Equal(t, time.January, p.Year.Month())
			assert.Equal(t, tt.now.Year(), p.Year.Year())
			assert.Equal(t, loc, p.Week.Location())
		})
	}
}
