// Package duration converts stream durations to fractional minutes and back
package duration

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// SliderFloor is the smallest upper bound offered for a duration window
const SliderFloor = 30

// SliderCap is the value at which window labels switch to an open "N+" form
const SliderCap = 360

var isoRE = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseISO parses an ISO-8601 style duration such as PT1H30M5S into minutes
// strings without any recognised component yield 0
func ParseISO(s string) float64 {
	m := isoRE.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	h := atoi(m[1])
	mi := atoi(m[2])
	sec := atoi(m[3])
	return float64(h)*60 + float64(mi) + float64(sec)/60
}

// ParseMarker parses H:MM:SS, MM:SS or a bare minute count into minutes
// any other shape yields 0
func ParseMarker(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	parts := strings.Split(s, ":")
	nums := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		nums[i] = v
	}
	switch len(nums) {
	case 3:
		return nums[0]*60 + nums[1] + nums[2]/60
	case 2:
		return nums[0] + nums[1]/60
	case 1:
		return nums[0]
	default:
		return 0
	}
}

// split floors hours first and then rounds the remainder
// a remainder above 59.5 therefore renders as 60
func split(minutes float64) (h, m int) {
	h = int(math.Floor(minutes / 60))
	m = int(math.Round(math.Mod(minutes, 60)))
	return h, m
}

// FormatShort renders H:MM when at least an hour, else the rounded minute count
func FormatShort(minutes float64) string {
	h, m := split(minutes)
	if h > 0 {
		return fmt.Sprintf("%d:%02d", h, m)
	}
	return strconv.Itoa(m)
}

// FormatLong renders "1h 5m", "2h" or "45m"
func FormatLong(minutes float64) string {
	h, m := split(minutes)
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

// SliderMax returns the upper bound for a duration window over totals
func SliderMax(totals []float64) int {
	longest := 0.0
	for _, t := range totals {
		if t > longest {
			longest = t
		}
	}
	return max(SliderFloor, int(math.Ceil(longest)))
}

// SliderLabel renders a window bound, open ended at SliderCap
func SliderLabel(minutes float64) string {
	if minutes >= SliderCap {
		return FormatShort(SliderCap) + "+"
	}
	return FormatShort(minutes)
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
