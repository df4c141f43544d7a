package domain

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/rollson/internal/core/dice"
	apperrors "github.com/louisbranch/rollson/internal/platform/errors"
	"github.com/louisbranch/rollson/internal/random"
)

const (
	rngAlgo          = "math/rand"
	seedSourceClient = "CLIENT"
	seedSourceServer = "SERVER"
)

// RngRequest represents optional RNG configuration for deterministic rolls.
type RngRequest struct {
	Seed *int64 `json:"seed,omitempty" jsonschema:"optional non-zero seed for deterministic rolls"`
}

// RngResult represents RNG details used for a roll.
type RngResult struct {
	SeedUsed   int64  `json:"seed_used" jsonschema:"seed value used by the server"`
	RngAlgo    string `json:"rng_algo" jsonschema:"rng algorithm identifier"`
	SeedSource string `json:"seed_source" jsonschema:"seed source (CLIENT or SERVER)"`
}

// newRng resolves the generator for a request.
func newRng(request *RngRequest) (*rand.Rand, RngResult, error) {
	result, err := resolveSeed(request)
	if err != nil {
		return nil, RngResult{}, err
	}
	return rand.New(rand.NewSource(result.SeedUsed)), result, nil
}

// resolveSeed picks the seed for a request. A missing or zero seed is drawn
// by the server.
func resolveSeed(request *RngRequest) (RngResult, error) {
	result := RngResult{RngAlgo: rngAlgo, SeedSource: seedSourceServer}
	if request != nil && request.Seed != nil && *request.Seed != 0 {
		result.SeedUsed = *request.Seed
		result.SeedSource = seedSourceClient
		return result, nil
	}
	seed, err := random.NewSeed()
	if err != nil {
		return RngResult{}, fmt.Errorf("seed rng: %w", err)
	}
	result.SeedUsed = seed
	return result, nil
}

// RollDiceSpec represents a die specification for the dice roll tool.
type RollDiceSpec struct {
	Sides int `json:"sides" jsonschema:"number of sides for the die"`
	Count int `json:"count" jsonschema:"number of dice to roll"`
}

// RollDiceInput represents the MCP tool input for rolling dice.
type RollDiceInput struct {
	Dice []RollDiceSpec `json:"dice" jsonschema:"dice specifications to roll"`
	Rng  *RngRequest    `json:"rng,omitempty" jsonschema:"optional rng configuration"`
}

// RollDiceRoll represents the results for a single dice spec.
type RollDiceRoll struct {
	Sides   int   `json:"sides" jsonschema:"number of sides for the die"`
	Results []int `json:"results" jsonschema:"individual roll results"`
	Total   int   `json:"total" jsonschema:"sum of the roll results"`
}

// RollDiceResult represents the MCP tool output for rolling dice.
type RollDiceResult struct {
	Rolls []RollDiceRoll `json:"rolls" jsonschema:"results for each dice spec"`
	Total int            `json:"total" jsonschema:"sum of all roll totals"`
	Rng   RngResult      `json:"rng" jsonschema:"rng details"`
}

// Roll2d6PlusInput represents the MCP tool input for a 2d6+ roll.
type Roll2d6PlusInput struct {
	Rolled []int       `json:"rolled,omitempty" jsonschema:"faces already rolled; when set no dice are thrown"`
	Rng    *RngRequest `json:"rng,omitempty" jsonschema:"optional rng configuration"`
}

// Roll2d6PlusResult represents the MCP tool output for a 2d6+ roll.
type Roll2d6PlusResult struct {
	Value         int        `json:"value" jsonschema:"value of the roll"`
	RolledNumbers []int      `json:"rolled_numbers" jsonschema:"every die face in the order rolled"`
	Rng           *RngResult `json:"rng,omitempty" jsonschema:"rng details when dice were thrown"`
}

// RollDiceTool defines the MCP tool schema for rolling dice pools.
func RollDiceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_dice",
		Description: "Rolls arbitrary dice pools",
	}
}

// Roll2d6PlusTool defines the MCP tool schema for 2d6+ rolls.
func Roll2d6PlusTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_2d6_plus",
		Description: "Rolls 2d6 with bonus dice after a double six and malus dice after a double one, or evaluates faces already rolled",
	}
}

// RollDiceHandler executes a generic dice roll.
func RollDiceHandler() mcp.ToolHandlerFor[RollDiceInput, RollDiceResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input RollDiceInput) (*mcp.CallToolResult, RollDiceResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, RollDiceResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		rngResult, err := resolveSeed(input.Rng)
		if err != nil {
			return nil, RollDiceResult{}, err
		}

		specs := make([]dice.Spec, 0, len(input.Dice))
		for _, spec := range input.Dice {
			specs = append(specs, dice.Spec{Sides: spec.Sides, Count: spec.Count})
		}
		rolled, err := dice.RollDice(dice.Request{Dice: specs, Seed: rngResult.SeedUsed})
		if err != nil {
			return nil, RollDiceResult{}, fmt.Errorf("dice roll failed: %w", err)
		}

		rolls := make([]RollDiceRoll, 0, len(rolled.Rolls))
		for _, roll := range rolled.Rolls {
			rolls = append(rolls, RollDiceRoll{
				Sides:   roll.Sides,
				Results: roll.Results,
				Total:   roll.Total,
			})
		}

		return CallToolResultWithInvocation(invocationID), RollDiceResult{
			Rolls: rolls,
			Total: rolled.Total,
			Rng:   rngResult,
		}, nil
	}
}

// Roll2d6PlusHandler executes or evaluates a 2d6+ roll.
func Roll2d6PlusHandler(locale string) mcp.ToolHandlerFor[Roll2d6PlusInput, Roll2d6PlusResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input Roll2d6PlusInput) (*mcp.CallToolResult, Roll2d6PlusResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, Roll2d6PlusResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		roll, rngResult, err := resolveRoll(input.Rolled, input.Rng)
		if err != nil {
			return nil, Roll2d6PlusResult{}, localize(err, locale)
		}

		return CallToolResultWithInvocation(invocationID), Roll2d6PlusResult{
			Value:         roll.Value,
			RolledNumbers: roll.RolledNumbers,
			Rng:           rngResult,
		}, nil
	}
}

// resolveRoll evaluates the given faces, or throws 2d6+ when there are none.
func resolveRoll(rolled []int, request *RngRequest) (dice.Roll, *RngResult, error) {
	if len(rolled) > 0 {
		roll, err := evaluateRolled(rolled)
		return roll, nil, err
	}

	rng, rngResult, err := newRng(request)
	if err != nil {
		return dice.Roll{}, nil, err
	}
	return dice.Roll2d6Plus(rng), &rngResult, nil
}

func evaluateRolled(rolled []int) (dice.Roll, error) {
	roll, err := dice.Evaluate2d6Plus(rolled)
	if err != nil {
		numbers := fmt.Sprint(rolled)
		return dice.Roll{}, apperrors.WrapWithMetadata(
			apperrors.CodeDiceInvalidSequence,
			"rolled numbers "+numbers,
			map[string]string{"numbers": numbers},
			err,
		)
	}
	return roll, nil
}
