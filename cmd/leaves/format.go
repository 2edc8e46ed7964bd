package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/napolitain/solver-leaves/internal/solver/leaves"
)

// formatHours renders fractional hours as HH:MM:SS, rounded to the second
func formatHours(hours float64) string {
	if math.IsInf(hours, 1) {
		return "∞"
	}
	if math.IsNaN(hours) || hours < 0 {
		return "-"
	}

	seconds := int64(math.Round(hours * 3600))
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// formatEssence groups thousands: 1234567 -> "1,234,567"
func formatEssence(n int) string {
	if n < 0 {
		return "-" + formatEssence(-n)
	}
	digits := strconv.Itoa(n)
	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i])
	}
	return string(out)
}

func stepRow(i int, step leaves.Step) []string {
	return []string{
		strconv.Itoa(i + 1),
		fmt.Sprintf("%s → %s", step.From, step.To),
		step.State.String(),
		formatEssence(step.DarkEssence),
		formatHours(step.Hours),
		formatHours(step.CumulativeHours),
	}
}
