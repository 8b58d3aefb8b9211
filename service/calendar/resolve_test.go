package calendar

import (
	"testing"
	"time"
)

func TestResolveInWeek(t *testing.T) {
	cases := []struct {
		name      string
		day       string
		startTime string
		week      int
		year      int
		want      time.Time
	}{
		{
			name: "MidWeek", day: "Wednesday", startTime: "10:30", week: 1, year: 2024,
			want: time.Date(2024, time.January, 3, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "WeekOneStartsPreviousYear", day: "Monday", startTime: "09:00", week: 1, year: 2025,
			want: time.Date(2024, time.December, 30, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "LastWeekOfYear", day: "Friday", startTime: "16:15", week: 52, year: 2022,
			want: time.Date(2022, time.December, 30, 16, 15, 0, 0, time.UTC),
		},
		{
			name: "Week53", day: "Thursday", startTime: "08:00", week: 53, year: 2020,
			want: time.Date(2020, time.December, 31, 8, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveInWeek(tc.day, tc.startTime, tc.week, tc.year, time.UTC)
			if err != nil {
				t.Fatalf("ResolveInWeek: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
			if wd := got.Weekday().String(); wd != tc.day {
				t.Errorf("resolved to a %s, want %s", wd, tc.day)
			}
		})
	}
}

func TestResolveInWeekRejectsBadInput(t *testing.T) {
	if _, err := ResolveInWeek("Funday", "10:00", 1, 2024, time.UTC); err == nil {
		t.Error("expected error for unknown weekday")
	}
	if _, err := ResolveInWeek("Monday", "25:99", 1, 2024, time.UTC); err == nil {
		t.Error("expected error for malformed time")
	}
}

func TestResolveNextOccurrence(t *testing.T) {
	// A Wednesday.
	now := time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		day  string
		want time.Time
	}{
		{"SameDayCountsAsToday", "Wednesday", time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)},
		{"LaterThisWeek", "Friday", time.Date(2025, time.March, 7, 10, 0, 0, 0, time.UTC)},
		{"EarlierDayWrapsToNextWeek", "Monday", time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveNextOccurrence(tc.day, "10:00", now)
			if err != nil {
				t.Fatalf("ResolveNextOccurrence: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestResolveNextOccurrenceFromSunday(t *testing.T) {
	// Sundays sit at the end of the week, so every slot day is ahead.
	sunday := time.Date(2025, time.March, 9, 20, 0, 0, 0, time.UTC)
	got, err := ResolveNextOccurrence("Monday", "08:30", sunday)
	if err != nil {
		t.Fatalf("ResolveNextOccurrence: %v", err)
	}
	want := time.Date(2025, time.March, 10, 8, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
