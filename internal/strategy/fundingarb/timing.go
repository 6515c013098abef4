package fundingarb

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// hoursToNextFundingCycle вычисляет дробное число часов до ближайшей
// выплаты финансирования. Циклы наступают ровно в начале часов cycleHours
// (отсортированы по возрастанию, например 0, 8, 16 UTC).
// Результат всегда строго положителен: момент ровно на границе цикла
// относится к следующему циклу.
func hoursToNextFundingCycle(now time.Time, cycleHours []int) float64 {
	currentHour := now.Hour()

	nextHour := cycleHours[0]
	for _, h := range cycleHours {
		if h > currentHour {
			nextHour = h
			break
		}
	}

	nextCycle := time.Date(now.Year(), now.Month(), now.Day(), nextHour, 0, 0, 0, now.Location())
	if !nextCycle.After(now) {
		nextCycle = nextCycle.AddDate(0, 0, 1)
	}

	return nextCycle.Sub(now).Hours()
}

// formatDuration переводит дробные часы в читаемый вид ("1d 2h 3m")
func formatDuration(hours float64) string {
	if math.IsInf(hours, 1) {
		return "Infinity"
	}

	d := time.Duration(hours * float64(time.Hour))
	days := int(d.Hours()) / 24
	h := int(d.Hours()) % 24
	m := int(d.Minutes()) % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}

	if len(parts) == 0 {
		return "0m"
	}
	return strings.Join(parts, " ")
}
