package sleep

import (
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/daybalance/internal/timewindow"
)

// wednesday is 2025-03-12.
var wednesday = time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

func TestSleepMinutes_SameForEveryWeekday(t *testing.T) {
	schedule := timewindow.Uniform("11:00 PM", "07:00 AM")
	for i := range 7 {
		day := wednesday.AddDate(0, 0, i)
		got, err := SleepMinutes(schedule, day)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", day.Weekday(), err)
		}
		if got != 480 {
			t.Errorf("%v: SleepMinutes() = %d, want 480", day.Weekday(), got)
		}
	}
}

func TestSleepMinutes_Missing(t *testing.T) {
	schedule := timewindow.DaySchedule{time.Monday: {Start: "23:00", End: "07:00"}}
	got, err := SleepMinutes(schedule, wednesday)
	if got != 0 {
		t.Errorf("SleepMinutes() = %d, want 0", got)
	}
	if !errors.Is(err, timewindow.ErrMissingSchedule) {
		t.Errorf("expected ErrMissingSchedule, got %v", err)
	}
}

func TestComputeShading(t *testing.T) {
	tests := []struct {
		name       string
		window     timewindow.SleepWindow
		rowHeight  float64
		wantBands  [4]float64
		wantCross  bool
		wantSleep  int
		wantShaded []Band
	}{
		{
			name:      "crossing midnight",
			window:    timewindow.SleepWindow{Start: "23:00", End: "07:00"},
			rowHeight: 30,
			// one px per minute
			wantBands: [4]float64{0, 420, 960, 60},
			wantCross: true,
			wantSleep: 480,
			wantShaded: []Band{
				{StartMinute: 0, EndMinute: 420, OffsetPx: 0, HeightPx: 420},
				{StartMinute: 1380, EndMinute: 1440, OffsetPx: 1380, HeightPx: 60},
			},
		},
		{
			name:      "default row height",
			window:    timewindow.SleepWindow{Start: "11:00 PM", End: "06:30 AM"},
			wantBands: [4]float64{0, 520, 1320, 80},
			wantCross: true,
			wantSleep: 450,
			wantShaded: []Band{
				{StartMinute: 0, EndMinute: 390, OffsetPx: 0, HeightPx: 520},
				{StartMinute: 1380, EndMinute: 1440, OffsetPx: 1840, HeightPx: 80},
			},
		},
		{
			name:      "after midnight only",
			window:    timewindow.SleepWindow{Start: "01:00", End: "08:00"},
			rowHeight: 30,
			wantBands: [4]float64{60, 420, 0, 0},
			wantSleep: 420,
			wantShaded: []Band{
				{StartMinute: 60, EndMinute: 480, OffsetPx: 60, HeightPx: 420},
			},
		},
		{
			name:      "ends exactly at midnight",
			window:    timewindow.SleepWindow{Start: "22:00", End: "00:00"},
			rowHeight: 30,
			wantBands: [4]float64{0, 0, 1320, 120},
			wantCross: true,
			wantSleep: 120,
			wantShaded: []Band{
				{StartMinute: 1320, EndMinute: 1440, OffsetPx: 1320, HeightPx: 120},
			},
		},
		{
			name:      "equal times means no sleep",
			window:    timewindow.SleepWindow{Start: "23:00", End: "11:00 PM"},
			rowHeight: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := timewindow.DaySchedule{time.Wednesday: tt.window}
			got := ComputeShading(schedule, wednesday, Options{RowHeightPx: tt.rowHeight})

			if got.Err != nil {
				t.Fatalf("unexpected error: %v", got.Err)
			}
			if got.BandHeights != tt.wantBands {
				t.Errorf("BandHeights = %v, want %v", got.BandHeights, tt.wantBands)
			}
			if got.CrossesMidnight != tt.wantCross {
				t.Errorf("CrossesMidnight = %v, want %v", got.CrossesMidnight, tt.wantCross)
			}
			if got.SleepMinutes != tt.wantSleep {
				t.Errorf("SleepMinutes = %d, want %d", got.SleepMinutes, tt.wantSleep)
			}
			if len(got.Bands) != len(tt.wantShaded) {
				t.Fatalf("got %d bands, want %d", len(got.Bands), len(tt.wantShaded))
			}
			for i := range tt.wantShaded {
				if got.Bands[i] != tt.wantShaded[i] {
					t.Errorf("Bands[%d] = %+v, want %+v", i, got.Bands[i], tt.wantShaded[i])
				}
			}
		})
	}
}

func TestComputeShading_ShadedMatchesSleep(t *testing.T) {
	schedule := timewindow.Uniform("22:15", "06:45")
	got := ComputeShading(schedule, wednesday, Options{RowHeightPx: 30})
	if got.TotalShadedPx() != float64(got.SleepMinutes) {
		t.Errorf("TotalShadedPx() = %v, want %d", got.TotalShadedPx(), got.SleepMinutes)
	}
}

func TestComputeShading_MissingWeekday(t *testing.T) {
	schedule := timewindow.DaySchedule{time.Monday: {Start: "23:00", End: "07:00"}}
	got := ComputeShading(schedule, wednesday, Options{})

	var missing *timewindow.MissingScheduleError
	if !errors.As(got.Err, &missing) {
		t.Fatalf("expected MissingScheduleError, got %v", got.Err)
	}
	if got.BandHeights != [4]float64{} || len(got.Bands) != 0 {
		t.Errorf("expected no shading, got %+v", got)
	}
}

func TestComputeShading_InvalidWindow(t *testing.T) {
	schedule := timewindow.DaySchedule{time.Wednesday: {Start: "whenever", End: "07:00"}}
	got := ComputeShading(schedule, wednesday, Options{})
	if !errors.Is(got.Err, timewindow.ErrInvalidClock) {
		t.Errorf("expected ErrInvalidClock, got %v", got.Err)
	}
	if got.SleepMinutes != 0 {
		t.Errorf("SleepMinutes = %d, want 0", got.SleepMinutes)
	}
}
