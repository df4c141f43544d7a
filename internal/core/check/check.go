// Package check evaluates a quality value against a difficulty.
package check

import "math"

// MeetsDifficulty returns true if value >= difficulty.
// A roll on success passes when its quality reaches the difficulty.
func MeetsDifficulty(value, difficulty int) bool {
	return value >= difficulty
}

// Margin calculates how far the value lies from the difficulty.
// Positive values indicate success, negative indicate failure. The margin
// saturates at the int limits instead of wrapping around.
func Margin(value, difficulty int) int {
	margin := value - difficulty
	switch {
	case value >= 0 && difficulty < 0 && margin < 0:
		return math.MaxInt
	case value < 0 && difficulty >= 0 && margin >= 0:
		return math.MinInt
	}
	return margin
}

// Result represents the outcome of one difficulty check.
type Result struct {
	Difficulty int
	Success    bool
	Margin     int
}

// Check performs a difficulty check and returns the result.
func Check(value, difficulty int) Result {
	return Result{
		Difficulty: difficulty,
		Success:    MeetsDifficulty(value, difficulty),
		Margin:     Margin(value, difficulty),
	}
}

// Highest returns the check against the highest difficulty the value meets.
// ok is false when no difficulty is met.
func Highest(value int, difficulties ...int) (result Result, ok bool) {
	for _, difficulty := range difficulties {
		candidate := Check(value, difficulty)
		if !candidate.Success {
			continue
		}
		if !ok || candidate.Difficulty > result.Difficulty {
			result, ok = candidate, true
		}
	}
	return result, ok
}
