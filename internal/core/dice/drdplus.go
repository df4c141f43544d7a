package dice

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
)

// ErrInvalid2d6Plus indicates a sequence of faces cannot come from a 2d6+ roll.
var ErrInvalid2d6Plus = errors.New("invalid 2d6+ sequence")

const (
	d6Sides = 6
	// bonusThreshold is the lowest extra face that adds a bonus after a double six.
	bonusThreshold = 4
	// malusThreshold is the highest extra face that subtracts a malus after a double one.
	malusThreshold = 3
)

// Roll is the value of a finished roll together with every face that was rolled.
type Roll struct {
	Value         int
	RolledNumbers []int
}

// NewRoll copies the rolled numbers so the caller cannot change the roll later.
func NewRoll(value int, rolledNumbers ...int) Roll {
	return Roll{Value: value, RolledNumbers: slices.Clone(rolledNumbers)}
}

// Equal reports whether both rolls have the same value and the same faces in
// the same order.
func (r Roll) Equal(other Roll) bool {
	return r.Value == other.Value && slices.Equal(r.RolledNumbers, other.RolledNumbers)
}

// Roll2d6Plus rolls 2d6 with the DrD+ bonus and malus chains.
//
// A double six keeps rolling extra d6 while they show 4-6, each adding one to
// the value. A double one keeps rolling extra d6 while they show 1-3, each
// subtracting one. The die that ends a chain is recorded but does not count.
func Roll2d6Plus(rng *rand.Rand) Roll {
	first := rollDie(rng, d6Sides)
	second := rollDie(rng, d6Sides)
	numbers := []int{first, second}

	switch {
	case first == d6Sides && second == d6Sides:
		for {
			extra := rollDie(rng, d6Sides)
			numbers = append(numbers, extra)
			if extra < bonusThreshold {
				break
			}
		}
	case first == 1 && second == 1:
		for {
			extra := rollDie(rng, d6Sides)
			numbers = append(numbers, extra)
			if extra > malusThreshold {
				break
			}
		}
	}

	// Generated sequences are always valid.
	roll, err := Evaluate2d6Plus(numbers)
	if err != nil {
		panic(err)
	}
	return roll
}

// Evaluate2d6Plus deterministically computes a 2d6+ roll from faces rolled
// elsewhere, for example by physical dice.
//
// The first two numbers are the base dice. Extra numbers are allowed only
// after a double six or a double one and must form a complete chain: every
// extra die except the last continues the chain and the last one ends it.
func Evaluate2d6Plus(numbers []int) (Roll, error) {
	if len(numbers) < 2 {
		return Roll{}, fmt.Errorf("%w: expected at least two dice, got %d", ErrInvalid2d6Plus, len(numbers))
	}
	for i, number := range numbers {
		if number < 1 || number > d6Sides {
			return Roll{}, fmt.Errorf("%w: die %d is %d, expected 1-6", ErrInvalid2d6Plus, i+1, number)
		}
	}

	first, second := numbers[0], numbers[1]
	value := first + second
	extras := numbers[2:]

	var continues func(int) bool
	step := 0
	switch {
	case first == d6Sides && second == d6Sides:
		continues = func(n int) bool { return n >= bonusThreshold }
		step = 1
	case first == 1 && second == 1:
		continues = func(n int) bool { return n <= malusThreshold }
		step = -1
	default:
		if len(extras) > 0 {
			return Roll{}, fmt.Errorf("%w: extra dice without a double six or double one", ErrInvalid2d6Plus)
		}
		return NewRoll(value, numbers...), nil
	}

	if len(extras) == 0 {
		return Roll{}, fmt.Errorf("%w: chain after %d,%d is missing", ErrInvalid2d6Plus, first, second)
	}
	for i, extra := range extras {
		last := i == len(extras)-1
		if continues(extra) {
			if last {
				return Roll{}, fmt.Errorf("%w: chain is not finished", ErrInvalid2d6Plus)
			}
			value += step
			continue
		}
		if !last {
			return Roll{}, fmt.Errorf("%w: dice after the end of the chain", ErrInvalid2d6Plus)
		}
	}

	return NewRoll(value, numbers...), nil
}
