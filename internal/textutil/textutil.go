package textutil

import "fmt"

var binaryUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSizeBinary renders a byte count with binary units and two decimal
// places, dividing by 1024 while the value is at least 1024 and a larger
// unit remains. The output feeds prompt construction and must stay stable:
// identical inputs always produce identical strings.
func FormatSizeBinary(size int64) string {
	value := float64(size)
	unit := 0
	for value >= 1024 && unit < len(binaryUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", value, binaryUnits[unit])
}

// Truncate shortens s to at most max runes, appending "..." when it cuts.
// Truncation counts characters, not bytes, so multi-byte text is never
// split mid-rune.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
