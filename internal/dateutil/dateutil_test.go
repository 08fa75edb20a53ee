package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name       string
		input      time.Time
		wantMonday time.Time
		wantSunday time.Time
	}{
		{
			name:       "Monday input returns same Monday",
			input:      time.Date(2025, 1, 6, 10, 30, 0, 0, time.UTC), // Monday
			wantMonday: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "Wednesday returns previous Monday",
			input:      time.Date(2025, 1, 8, 14, 0, 0, 0, time.UTC), // Wednesday
			wantMonday: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "Sunday returns previous Monday and same Sunday",
			input:      time.Date(2025, 1, 12, 23, 59, 0, 0, time.UTC), // Sunday
			wantMonday: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "Friday returns previous Monday",
			input:      time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC), // Friday
			wantMonday: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "Saturday returns previous Monday",
			input:      time.Date(2025, 1, 11, 12, 0, 0, 0, time.UTC), // Saturday
			wantMonday: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMonday, gotSunday := WeekRange(tt.input)
			if !gotMonday.Equal(tt.wantMonday) {
				t.Errorf("monday: got %v, want %v", gotMonday, tt.wantMonday)
			}
			if !gotSunday.Equal(tt.wantSunday) {
				t.Errorf("sunday: got %v, want %v", gotSunday, tt.wantSunday)
			}
		})
	}
}

func TestTruncateToDay(t *testing.T) {
	input := time.Date(2025, 1, 15, 14, 30, 45, 123456789, time.UTC)
	got := TruncateToDay(input)
	want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseViewDate(t *testing.T) {
	// Reference date: Friday, January 10, 2025
	friday := time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "empty is today", input: "", want: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
		{name: "today", input: "today", want: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
		{name: "case insensitive", input: "  TODAY ", want: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
		{name: "yesterday", input: "yesterday", want: time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC)},
		{name: "tomorrow", input: "tomorrow", want: time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)},
		{name: "weekday in same week", input: "monday", want: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)},
		{name: "sunday ends the week", input: "sunday", want: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)},
		{name: "same weekday", input: "friday", want: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
		{name: "next weekday", input: "next-monday", want: time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)},
		{name: "next same weekday", input: "next-friday", want: time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)},
		{name: "last weekday", input: "last-wednesday", want: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)},
		{name: "last same weekday", input: "last-friday", want: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)},
		{name: "absolute past", input: "2024-12-31", want: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
		{name: "absolute future", input: "2025-02-01", want: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseViewDate(tt.input, friday)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseViewDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseViewDate_Errors(t *testing.T) {
	friday := time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC)
	inputs := []string{"someday", "next-week", "next-funday", "last-", "01/10/2025", "2025-13-01"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseViewDate(input, friday)
			if !errors.Is(err, ErrInvalidDateFormat) {
				t.Errorf("ParseViewDate(%q) error = %v, want ErrInvalidDateFormat", input, err)
			}
		})
	}
}

func TestParseViewDate_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	ref := time.Date(2025, 1, 10, 8, 0, 0, 0, loc)

	got, err := ParseViewDate("2025-01-15", ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Location() != loc {
		t.Errorf("location = %v, want %v", got.Location(), loc)
	}
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday(" Tuesday ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != time.Tuesday {
		t.Errorf("got %v, want Tuesday", d)
	}
	if WeekdayName(d) != "tuesday" {
		t.Errorf("WeekdayName() = %q, want tuesday", WeekdayName(d))
	}

	if _, err := ParseWeekday("someday"); !errors.Is(err, ErrInvalidWeekday) {
		t.Errorf("got %v, want ErrInvalidWeekday", err)
	}
}
