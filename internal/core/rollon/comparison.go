package rollon

// Compare orders two qualities by value only.
// It returns -1 if a is lesser, 1 if a is greater and 0 otherwise.
func Compare(a, b Quality) int {
	switch {
	case a.Value() < b.Value():
		return -1
	case a.Value() > b.Value():
		return 1
	default:
		return 0
	}
}

// IsLesser reports whether a has a lower value than b.
func IsLesser(a, b Quality) bool {
	return Compare(a, b) < 0
}

// IsGreater reports whether a has a higher value than b.
func IsGreater(a, b Quality) bool {
	return Compare(a, b) > 0
}

// IsEqual reports whether a and b have the same value. Unlike Quality.Equal
// it ignores the rolls behind the values.
func IsEqual(a, b Quality) bool {
	return Compare(a, b) == 0
}
