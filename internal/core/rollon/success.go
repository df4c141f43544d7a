package rollon

import "github.com/louisbranch/rollson/internal/core/check"

// Default result codes of a basic roll on success.
const (
	SuccessCode = "success"
	FailureCode = "failure"
)

// RollOnSuccess is anything that resolves a quality into success or failure.
type RollOnSuccess interface {
	Quality() Quality
	IsSuccessful() bool
	IsFailed() bool
	ResultCode() string
}

// TieredRollOnSuccess is a roll on success judged against a single
// difficulty. Only tiered rolls can be combined by NewExtended.
type TieredRollOnSuccess interface {
	RollOnSuccess
	Difficulty() int
}

// MarginOf reports how far a tiered roll's quality lies above (or below) its
// difficulty. Rolls that know their own margin are asked for it.
func MarginOf(roll TieredRollOnSuccess) int {
	if margined, ok := roll.(interface{ Margin() int }); ok {
		return margined.Margin()
	}
	return check.Margin(roll.Quality().Value(), roll.Difficulty())
}

// SimpleRollOnSuccess is one quality judged against one difficulty.
type SimpleRollOnSuccess struct {
	difficulty int
	quality    Quality
	successful bool
	resultCode string
}

// NewSimpleRollOnSuccess judges quality against difficulty and picks the
// result code for the outcome.
func NewSimpleRollOnSuccess(difficulty int, quality Quality, successCode, failureCode string) SimpleRollOnSuccess {
	if check.MeetsDifficulty(quality.Value(), difficulty) {
		return NewSimpleRollOnSuccessResult(difficulty, quality, true, successCode)
	}
	return NewSimpleRollOnSuccessResult(difficulty, quality, false, failureCode)
}

// NewBasicRollOnSuccess is a simple roll on success with the default codes.
func NewBasicRollOnSuccess(difficulty int, quality Quality) SimpleRollOnSuccess {
	return NewSimpleRollOnSuccess(difficulty, quality, SuccessCode, FailureCode)
}

// NewSimpleRollOnSuccessResult wraps an already decided outcome, for example
// one evaluated by a different rule.
func NewSimpleRollOnSuccessResult(difficulty int, quality Quality, successful bool, resultCode string) SimpleRollOnSuccess {
	return SimpleRollOnSuccess{
		difficulty: difficulty,
		quality:    quality,
		successful: successful,
		resultCode: resultCode,
	}
}

func (s SimpleRollOnSuccess) Difficulty() int {
	return s.difficulty
}

func (s SimpleRollOnSuccess) Quality() Quality {
	return s.quality
}

func (s SimpleRollOnSuccess) IsSuccessful() bool {
	return s.successful
}

func (s SimpleRollOnSuccess) IsFailed() bool {
	return !s.successful
}

func (s SimpleRollOnSuccess) ResultCode() string {
	return s.resultCode
}

// Margin is how far the quality lies above (or below) the difficulty.
func (s SimpleRollOnSuccess) Margin() int {
	return check.Margin(s.quality.Value(), s.difficulty)
}

func (s SimpleRollOnSuccess) String() string {
	return s.resultCode
}
