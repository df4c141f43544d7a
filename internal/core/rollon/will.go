package rollon

import "github.com/louisbranch/rollson/internal/core/dice"

// RollOnWill is a roll on quality where the Will property is the only
// precondition, as used to resist fear, pain or magic.
type RollOnWill struct {
	Quality
	will int
}

// NewRollOnWill builds a roll on Will, usually from a 2d6+ roll.
func NewRollOnWill(will int, roll dice.Roll) RollOnWill {
	return RollOnWill{Quality: NewQuality(will, roll), will: will}
}

// Will returns the property value the roll was made with.
func (r RollOnWill) Will() int {
	return r.will
}
