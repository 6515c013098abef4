package fundingarb

import (
	"math"
	"testing"
	"time"
)

var binanceCycle = []int{0, 8, 16}

func TestHoursToNextFundingCycle(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want float64
	}{
		{
			name: "сразу после полуночи",
			now:  time.Date(2025, 6, 1, 0, 1, 0, 0, time.UTC),
			want: 7 + 59.0/60,
		},
		{
			name: "час ночи",
			now:  time.Date(2025, 6, 1, 1, 0, 0, 0, time.UTC),
			want: 7,
		},
		{
			name: "перед вечерним циклом",
			now:  time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC),
			want: 0.5,
		},
		{
			name: "ровно на границе утреннего цикла",
			now:  time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
			want: 8,
		},
		{
			name: "ровно в 16:00 переносится на полночь следующего дня",
			now:  time.Date(2025, 6, 1, 16, 0, 0, 0, time.UTC),
			want: 8,
		},
		{
			name: "поздний вечер",
			now:  time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC),
			want: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hoursToNextFundingCycle(tt.now, binanceCycle)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("ожидалось %v часов, получено %v", tt.want, got)
			}
			if got <= 0 {
				t.Fatalf("результат должен быть строго положительным, получено %v", got)
			}
		})
	}
}

func TestHoursToNextFundingCycleWrapsToNextDay(t *testing.T) {
	now := time.Date(2025, 6, 1, 16, 0, 0, 0, time.UTC)
	got := hoursToNextFundingCycle(now, binanceCycle)

	next := now.Add(time.Duration(got * float64(time.Hour)))
	if next.Day() != 2 || next.Hour() != 0 {
		t.Fatalf("ожидался перенос на полночь следующего дня, получено %v", next)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{math.Inf(1), "Infinity"},
		{0, "0m"},
		{0.5, "30m"},
		{7, "7h"},
		{26.05, "1d 2h 3m"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.hours); got != tt.want {
			t.Errorf("formatDuration(%v): ожидалось %q, получено %q", tt.hours, tt.want, got)
		}
	}
}
