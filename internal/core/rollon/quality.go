// Package rollon models DrD+ rolls on quality and rolls on success.
//
// A Quality is the value a character reached with one roll. Simple rolls on
// success judge that quality against one difficulty each, and an extended
// roll on success combines several of them into one ranked outcome.
//
// Every value in this package is immutable once constructed and is safe for
// concurrent use.
package rollon

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/louisbranch/rollson/internal/core/dice"
)

// Quality is a roll on quality: the reached value plus the roll behind it.
type Quality struct {
	value            int
	preconditionsSum int
	roll             dice.Roll
}

// NewQuality builds a quality whose value is the preconditions sum plus the
// roll value.
func NewQuality(preconditionsSum int, roll dice.Roll) Quality {
	return NewQualityWithValue(preconditionsSum+roll.Value, preconditionsSum, roll)
}

// NewQualityWithValue builds a quality with an explicitly computed value, for
// evaluators that apply modifiers beyond the preconditions sum.
func NewQualityWithValue(value, preconditionsSum int, roll dice.Roll) Quality {
	return Quality{
		value:            value,
		preconditionsSum: preconditionsSum,
		roll:             dice.NewRoll(roll.Value, roll.RolledNumbers...),
	}
}

// Value returns the strength reached by the roll.
func (q Quality) Value() int {
	return q.value
}

// PreconditionsSum returns the sum of everything that contributed to the roll.
func (q Quality) PreconditionsSum() int {
	return q.preconditionsSum
}

// Roll returns a copy of the underlying dice roll.
func (q Quality) Roll() dice.Roll {
	return dice.NewRoll(q.roll.Value, q.roll.RolledNumbers...)
}

// Equal reports whether both qualities come from the same roll: value,
// preconditions sum, roll value and rolled numbers in order all match.
func (q Quality) Equal(other Quality) bool {
	return q.value == other.value &&
		q.preconditionsSum == other.preconditionsSum &&
		q.roll.Value == other.roll.Value &&
		slices.Equal(q.roll.RolledNumbers, other.roll.RolledNumbers)
}

// String describes every field that takes part in Equal.
func (q Quality) String() string {
	return fmt.Sprintf(
		"sum of preconditions: %d, value: %d, roll value %d, rolled numbers %s",
		q.preconditionsSum, q.value, q.roll.Value, joinInts(q.roll.RolledNumbers),
	)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = strconv.Itoa(value)
	}
	return strings.Join(parts, ",")
}
