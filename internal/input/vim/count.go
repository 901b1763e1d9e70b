package vim

import (
	"math"

	"github.com/dshills/modalkit/internal/input/key"
)

// maxCount caps accumulated and multiplied counts.
const maxCount = math.MaxInt32

// IsCountStart returns true if the event could start a count.
// '0' cannot start a count: it is the line-start motion.
func IsCountStart(ev key.Event) bool {
	return ev.IsDigit() && ev.Rune != '0'
}

// ParseCount reads a count from the front of events.
// Returns the count value (0 when absent) and the number of events consumed.
func ParseCount(events []key.Event) (count int, consumed int) {
	if len(events) == 0 || !IsCountStart(events[0]) {
		return 0, 0
	}
	for consumed < len(events) && events[consumed].IsDigit() {
		digit := int(events[consumed].Rune - '0')
		if count > (maxCount-digit)/10 {
			count = maxCount
		} else {
			count = count*10 + digit
		}
		consumed++
	}
	return count, consumed
}

// CombineCounts multiplies two counts, treating 0 (absent) as 1.
// "2d3w" deletes 6 words.
func CombineCounts(count1, count2 int) int {
	if count1 <= 0 {
		count1 = 1
	}
	if count2 <= 0 {
		count2 = 1
	}
	if count1 > maxCount/count2 {
		return maxCount
	}
	return count1 * count2
}

// mergeCounts combines a count read before a register with one read after
// it. Absent stays absent.
func mergeCounts(count1, count2 int) int {
	switch {
	case count1 == 0:
		return count2
	case count2 == 0:
		return count1
	}
	return CombineCounts(count1, count2)
}
