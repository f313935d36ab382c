// Package utils содержит утилитарные функции, используемые в разных частях приложения
package utils

import (
	"fmt"
	"math"
)

// FormatTime форматирует количество секунд в формат M:SS.
// Минуты выводятся без ведущего нуля, секунды дополняются до двух цифр.
// Обе части получаются отбрасыванием дробной части, а не округлением.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	minutes := int(math.Floor(seconds / 60))
	remaining := int(math.Floor(math.Mod(seconds, 60)))
	return fmt.Sprintf("%d:%02d", minutes, remaining)
}

// TruncateString обрезает строку до указанной длины, добавляя "..." если строка длиннее
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// Clamp ограничивает значение диапазоном [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt ограничивает целое значение диапазоном [lo, hi]
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
