package rollon

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/louisbranch/rollson/internal/core/dice"
	apperrors "github.com/louisbranch/rollson/internal/platform/errors"
)

func simple(difficulty int, quality Quality, successful bool, code string) SimpleRollOnSuccess {
	return NewSimpleRollOnSuccessResult(difficulty, quality, successful, code)
}

func TestNewExtended(t *testing.T) {
	single := NewQuality(0, dice.NewRoll(5, 2, 3))
	pair := NewQuality(0, dice.NewRoll(3, 1, 2))
	four := NewQuality(0, dice.NewRoll(2, 1, 1))

	tests := []struct {
		name           string
		quality        Quality
		rolls          []RollOnSuccess
		wantCode       string
		wantSuccessful bool
		wantOrder      []int
	}{
		{
			name:      "single failed roll",
			quality:   single,
			rolls:     []RollOnSuccess{simple(9, single, false, "fail")},
			wantCode:  "fail",
			wantOrder: []int{9},
		},
		{
			name:    "simple and basic roll",
			quality: pair,
			rolls: []RollOnSuccess{
				simple(2, pair, false, "foo"),
				simple(5, pair, true, "hurray"),
			},
			wantCode:       "hurray",
			wantSuccessful: true,
			wantOrder:      []int{5, 2},
		},
		{
			name:    "highest successful difficulty wins",
			quality: four,
			rolls: []RollOnSuccess{
				simple(5, four, false, "foo"),
				simple(1, four, true, "success"),
				simple(3, four, false, "foo"),
				simple(2, four, true, "better success"),
			},
			wantCode:       "better success",
			wantSuccessful: true,
			wantOrder:      []int{5, 3, 2, 1},
		},
		{
			name:    "all failed falls back to lowest difficulty",
			quality: four,
			rolls: []RollOnSuccess{
				simple(4, four, false, "bad"),
				simple(8, four, false, "terrible"),
				simple(6, four, false, "worse"),
			},
			wantCode:  "bad",
			wantOrder: []int{8, 6, 4},
		},
		{
			name:    "largest difficulty sorts first",
			quality: four,
			rolls: []RollOnSuccess{
				simple(-10, four, true, "easy"),
				simple(math.MaxInt, four, false, "impossible"),
			},
			wantCode:       "easy",
			wantSuccessful: true,
			wantOrder:      []int{math.MaxInt, -10},
		},
		{
			name:    "smallest difficulty sorts last",
			quality: four,
			rolls: []RollOnSuccess{
				simple(math.MinInt, four, true, "floor"),
				simple(1, four, true, "one"),
			},
			wantCode:       "one",
			wantSuccessful: true,
			wantOrder:      []int{1, math.MinInt},
		},
		{
			name:    "both integer limits",
			quality: four,
			rolls: []RollOnSuccess{
				simple(math.MinInt, four, true, "floor"),
				simple(math.MaxInt, four, false, "ceiling"),
				simple(0, four, true, "zero"),
			},
			wantCode:       "zero",
			wantSuccessful: true,
			wantOrder:      []int{math.MaxInt, 0, math.MinInt},
		},
		{
			name:    "nil slots are skipped",
			quality: pair,
			rolls: []RollOnSuccess{
				simple(2, pair, true, "ok"),
				nil,
				(*SimpleRollOnSuccess)(nil),
			},
			wantCode:       "ok",
			wantSuccessful: true,
			wantOrder:      []int{2},
		},
		{
			name:    "pointer rolls are accepted",
			quality: pair,
			rolls: []RollOnSuccess{
				nil,
				&SimpleRollOnSuccess{difficulty: 1, quality: pair, successful: true, resultCode: "ok"},
			},
			wantCode:       "ok",
			wantSuccessful: true,
			wantOrder:      []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extended, err := NewExtended(tt.rolls[0], tt.rolls[1:]...)
			if err != nil {
				t.Fatalf("NewExtended() error = %v", err)
			}

			if !extended.Quality().Equal(tt.quality) {
				t.Errorf("Quality() = %v, want %v", extended.Quality(), tt.quality)
			}
			if extended.ResultCode() != tt.wantCode {
				t.Errorf("ResultCode() = %q, want %q", extended.ResultCode(), tt.wantCode)
			}
			if extended.String() != extended.ResultCode() {
				t.Errorf("String() = %q, want %q", extended.String(), extended.ResultCode())
			}
			if extended.IsSuccessful() != tt.wantSuccessful {
				t.Errorf("IsSuccessful() = %v, want %v", extended.IsSuccessful(), tt.wantSuccessful)
			}
			if extended.IsFailed() == tt.wantSuccessful {
				t.Errorf("IsFailed() = %v, want %v", extended.IsFailed(), !tt.wantSuccessful)
			}

			results := extended.Results()
			if len(results) != len(tt.wantOrder) {
				t.Fatalf("Results() len = %d, want %d", len(results), len(tt.wantOrder))
			}
			for i, difficulty := range tt.wantOrder {
				if results[i].Difficulty() != difficulty {
					t.Errorf("Results()[%d].Difficulty() = %d, want %d", i, results[i].Difficulty(), difficulty)
				}
			}
		})
	}
}

func TestNewExtendedWinningResult(t *testing.T) {
	quality := NewQuality(0, dice.NewRoll(2, 1, 1))
	extended, err := NewExtended(
		simple(5, quality, false, "foo"),
		simple(1, quality, true, "success"),
		simple(3, quality, false, "foo"),
		simple(2, quality, true, "better success"),
	)
	if err != nil {
		t.Fatalf("NewExtended() error = %v", err)
	}

	winner := extended.WinningResult()
	if winner.Difficulty() != 2 || winner.ResultCode() != "better success" {
		t.Fatalf("unexpected winner %v at difficulty %d", winner, winner.Difficulty())
	}
}

func TestNewExtendedSharesEqualQualities(t *testing.T) {
	first := NewQuality(1, dice.NewRoll(7, 3, 4))
	second := NewQuality(1, dice.NewRoll(7, 3, 4))

	extended, err := NewExtended(simple(3, first, true, "a"), simple(9, second, false, "b"))
	if err != nil {
		t.Fatalf("NewExtended() error = %v", err)
	}
	if !extended.Quality().Equal(first) || !extended.Quality().Equal(second) {
		t.Fatalf("unexpected shared quality %v", extended.Quality())
	}
}

func TestNewExtendedResultsIsACopy(t *testing.T) {
	quality := NewQuality(0, dice.NewRoll(4, 2, 2))
	extended, err := NewExtended(simple(3, quality, true, "a"), simple(5, quality, false, "b"))
	if err != nil {
		t.Fatalf("NewExtended() error = %v", err)
	}
	results := extended.Results()
	results[0] = simple(1, quality, true, "changed")
	if extended.Results()[0].Difficulty() != 5 {
		t.Fatal("expected Results to return a copy")
	}
}

func TestNewExtendedSuccessCodeIsolation(t *testing.T) {
	quality := NewQuality(0, dice.NewRoll(6, 3, 3))

	tests := []struct {
		name    string
		rolls   []RollOnSuccess
		wantErr error
	}{
		{
			name:  "failed codes may repeat",
			rolls: []RollOnSuccess{simple(1, quality, false, "same"), simple(2, quality, false, "same")},
		},
		{
			name:  "failed code may repeat a success code",
			rolls: []RollOnSuccess{simple(1, quality, true, "same"), simple(2, quality, false, "same")},
		},
		{
			name:    "success codes must be unique",
			rolls:   []RollOnSuccess{simple(1, quality, true, "same"), simple(2, quality, true, "same")},
			wantErr: ErrDuplicateSuccessCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExtended(tt.rolls[0], tt.rolls[1:]...)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("NewExtended() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewExtended() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewExtendedErrors(t *testing.T) {
	quality := NewQuality(0, dice.NewRoll(6, 3, 3))
	other := NewQuality(0, dice.NewRoll(6, 2, 4))
	nested, err := NewExtended(simple(1, quality, true, "ok"))
	if err != nil {
		t.Fatalf("NewExtended() error = %v", err)
	}

	tests := []struct {
		name     string
		rolls    []RollOnSuccess
		wantErr  error
		wantCode apperrors.Code
	}{
		{
			name:     "only nils",
			rolls:    []RollOnSuccess{nil, nil, (*SimpleRollOnSuccess)(nil)},
			wantErr:  ErrMissingResults,
			wantCode: apperrors.CodeRollMissingResults,
		},
		{
			name:     "extended roll is not a simple roll",
			rolls:    []RollOnSuccess{simple(2, quality, true, "a"), nested},
			wantErr:  ErrInvalidResultType,
			wantCode: apperrors.CodeRollInvalidResultType,
		},
		{
			name:     "duplicate difficulty",
			rolls:    []RollOnSuccess{simple(2, quality, true, "a"), simple(2, quality, false, "b")},
			wantErr:  ErrDuplicateDifficulty,
			wantCode: apperrors.CodeRollDuplicateDifficulty,
		},
		{
			name:     "duplicate difficulty among three",
			rolls:    []RollOnSuccess{simple(1, quality, false, "a"), simple(3, quality, false, "b"), simple(1, quality, false, "c")},
			wantErr:  ErrDuplicateDifficulty,
			wantCode: apperrors.CodeRollDuplicateDifficulty,
		},
		{
			name:     "inconsistent quality",
			rolls:    []RollOnSuccess{simple(1, quality, true, "a"), simple(2, other, false, "b")},
			wantErr:  ErrInconsistentQuality,
			wantCode: apperrors.CodeRollInconsistentQuality,
		},
		{
			name:     "type is checked before difficulties",
			rolls:    []RollOnSuccess{simple(1, quality, true, "a"), simple(1, quality, true, "a"), nested},
			wantErr:  ErrInvalidResultType,
			wantCode: apperrors.CodeRollInvalidResultType,
		},
		{
			name:     "difficulties are checked before success codes",
			rolls:    []RollOnSuccess{simple(1, quality, true, "a"), simple(1, other, true, "a")},
			wantErr:  ErrDuplicateDifficulty,
			wantCode: apperrors.CodeRollDuplicateDifficulty,
		},
		{
			name:     "success codes are checked before quality",
			rolls:    []RollOnSuccess{simple(1, quality, true, "a"), simple(2, other, true, "a")},
			wantErr:  ErrDuplicateSuccessCode,
			wantCode: apperrors.CodeRollDuplicateSuccessCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extended, err := NewExtended(tt.rolls[0], tt.rolls[1:]...)
			if extended != nil {
				t.Fatalf("expected no roll on failure, got %v", extended)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewExtended() error = %v, want %v", err, tt.wantErr)
			}
			if got := apperrors.GetCode(err); got != tt.wantCode {
				t.Fatalf("GetCode() = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestNewExtendedInconsistentQualityDescribesBoth(t *testing.T) {
	first := NewQuality(1, dice.NewRoll(7, 3, 4))

	tests := []struct {
		name   string
		second Quality
	}{
		{"value", NewQualityWithValue(9, 1, dice.NewRoll(7, 3, 4))},
		{"preconditions sum", NewQualityWithValue(8, 2, dice.NewRoll(7, 3, 4))},
		{"roll value", NewQualityWithValue(8, 1, dice.NewRoll(6, 3, 4))},
		{"rolled numbers", NewQualityWithValue(8, 1, dice.NewRoll(7, 4, 3))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExtended(simple(1, first, true, "a"), simple(2, tt.second, false, "b"))
			if !errors.Is(err, ErrInconsistentQuality) {
				t.Fatalf("NewExtended() error = %v, want %v", err, ErrInconsistentQuality)
			}
			var domainErr *apperrors.Error
			if !errors.As(err, &domainErr) {
				t.Fatalf("expected domain error, got %T", err)
			}
			if domainErr.Metadata["first"] != first.String() || domainErr.Metadata["second"] != tt.second.String() {
				t.Fatalf("unexpected metadata %v", domainErr.Metadata)
			}
			if !strings.Contains(err.Error(), first.String()) || !strings.Contains(err.Error(), tt.second.String()) {
				t.Fatalf("expected message to describe both qualities, got %q", err.Error())
			}
		})
	}
}

func TestNewExtendedDuplicateDifficultyMetadata(t *testing.T) {
	quality := NewQuality(0, dice.NewRoll(6, 3, 3))
	_, err := NewExtended(simple(4, quality, false, "a"), simple(2, quality, false, "b"), simple(4, quality, true, "c"))

	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected domain error, got %v", err)
	}
	if domainErr.Metadata["difficulties"] != "4,2,4" {
		t.Fatalf("expected difficulties in argument order, got %q", domainErr.Metadata["difficulties"])
	}
}
