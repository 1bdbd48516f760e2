package utils

import "math"

// ProgressPercentage is round(completed/total*100), 0 for a course without lessons.
func ProgressPercentage(completed, total int64) int {
	if total <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}
