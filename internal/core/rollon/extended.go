package rollon

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/rollson/internal/platform/errors"
)

// ExtendedRollOnSuccess combines simple rolls on success made with one
// quality against graduated difficulties.
//
// The winning result is the successful roll with the highest difficulty. When
// nothing succeeded, the roll with the lowest difficulty stands for the whole
// attempt.
type ExtendedRollOnSuccess struct {
	quality Quality
	// results are ordered by difficulty, highest first.
	results []TieredRollOnSuccess
}

// NewExtended validates and combines rolls on success.
//
// Nil rolls are skipped. The remaining rolls are checked in this order, and
// the first violation is returned:
//
//  1. at least one roll remains (ErrMissingResults)
//  2. every roll is a TieredRollOnSuccess (ErrInvalidResultType)
//  3. difficulties are unique (ErrDuplicateDifficulty)
//  4. result codes of successful rolls are unique (ErrDuplicateSuccessCode)
//  5. every roll shares an equal quality (ErrInconsistentQuality)
func NewExtended(first RollOnSuccess, others ...RollOnSuccess) (*ExtendedRollOnSuccess, error) {
	rolls := removeNils(append([]RollOnSuccess{first}, others...))
	if len(rolls) == 0 {
		return nil, ErrMissingResults
	}

	results, err := tieredOnly(rolls)
	if err != nil {
		return nil, err
	}
	if err := uniqueDifficulties(results); err != nil {
		return nil, err
	}
	if err := uniqueSuccessCodes(results); err != nil {
		return nil, err
	}
	if err := sameQuality(results); err != nil {
		return nil, err
	}

	quality := results[0].Quality()
	slices.SortStableFunc(results, func(a, b TieredRollOnSuccess) int {
		// Descending; equal difficulties were rejected above.
		return cmp.Compare(b.Difficulty(), a.Difficulty())
	})

	return &ExtendedRollOnSuccess{quality: quality, results: results}, nil
}

func removeNils(rolls []RollOnSuccess) []RollOnSuccess {
	out := make([]RollOnSuccess, 0, len(rolls))
	for _, roll := range rolls {
		if roll == nil {
			continue
		}
		if simple, ok := roll.(*SimpleRollOnSuccess); ok && simple == nil {
			continue
		}
		out = append(out, roll)
	}
	return out
}

func tieredOnly(rolls []RollOnSuccess) ([]TieredRollOnSuccess, error) {
	results := make([]TieredRollOnSuccess, 0, len(rolls))
	for _, roll := range rolls {
		tiered, ok := roll.(TieredRollOnSuccess)
		if !ok {
			return nil, apperrors.WithMetadata(
				apperrors.CodeRollInvalidResultType,
				fmt.Sprintf("expected only simple rolls on success (or nil), got %T", roll),
				map[string]string{"type": fmt.Sprintf("%T", roll)},
			)
		}
		results = append(results, tiered)
	}
	return results, nil
}

func uniqueDifficulties(results []TieredRollOnSuccess) error {
	difficulties := make([]string, 0, len(results))
	seen := make(map[int]struct{}, len(results))
	duplicate := false
	for _, result := range results {
		difficulties = append(difficulties, strconv.Itoa(result.Difficulty()))
		if _, ok := seen[result.Difficulty()]; ok {
			duplicate = true
		}
		seen[result.Difficulty()] = struct{}{}
	}
	if !duplicate {
		return nil
	}
	joined := strings.Join(difficulties, ",")
	return apperrors.WithMetadata(
		apperrors.CodeRollDuplicateDifficulty,
		"expected only unique difficulties, got "+joined,
		map[string]string{"difficulties": joined},
	)
}

func uniqueSuccessCodes(results []TieredRollOnSuccess) error {
	var codes []string
	seen := make(map[string]struct{}, len(results))
	duplicate := false
	for _, result := range results {
		if !result.IsSuccessful() {
			continue
		}
		codes = append(codes, result.ResultCode())
		if _, ok := seen[result.ResultCode()]; ok {
			duplicate = true
		}
		seen[result.ResultCode()] = struct{}{}
	}
	if !duplicate {
		return nil
	}
	joined := strings.Join(codes, ",")
	return apperrors.WithMetadata(
		apperrors.CodeRollDuplicateSuccessCode,
		"expected only unique success codes, got "+joined,
		map[string]string{"codes": joined},
	)
}

func sameQuality(results []TieredRollOnSuccess) error {
	first := results[0].Quality()
	for _, result := range results[1:] {
		other := result.Quality()
		if first.Equal(other) {
			continue
		}
		return apperrors.WithMetadata(
			apperrors.CodeRollInconsistentQuality,
			fmt.Sprintf("expected same roll on quality for every roll on success, got one with %s and another with %s", first, other),
			map[string]string{"first": first.String(), "second": other.String()},
		)
	}
	return nil
}

// Quality returns the roll on quality shared by every combined roll.
func (e *ExtendedRollOnSuccess) Quality() Quality {
	return e.quality
}

// Results returns the combined rolls ordered by difficulty, highest first.
func (e *ExtendedRollOnSuccess) Results() []TieredRollOnSuccess {
	return slices.Clone(e.results)
}

// WinningResult returns the roll that decides the outcome.
func (e *ExtendedRollOnSuccess) WinningResult() TieredRollOnSuccess {
	for _, result := range e.results {
		if result.IsSuccessful() {
			return result
		}
	}
	// the roll with the lowest, still failed, difficulty
	return e.results[len(e.results)-1]
}

func (e *ExtendedRollOnSuccess) IsSuccessful() bool {
	return e.WinningResult().IsSuccessful()
}

func (e *ExtendedRollOnSuccess) IsFailed() bool {
	return !e.IsSuccessful()
}

func (e *ExtendedRollOnSuccess) ResultCode() string {
	return e.WinningResult().ResultCode()
}

func (e *ExtendedRollOnSuccess) String() string {
	return e.ResultCode()
}
