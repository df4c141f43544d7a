package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/rollson/internal/core/rollon"
)

// TierInput describes one difficulty tier of a roll on success.
type TierInput struct {
	Difficulty  int    `json:"difficulty" jsonschema:"difficulty the quality has to reach"`
	SuccessCode string `json:"success_code,omitempty" jsonschema:"code reported when the tier is passed (default success)"`
	FailureCode string `json:"failure_code,omitempty" jsonschema:"code reported when the tier is failed (default failure)"`
}

// RollOnSuccessInput represents the MCP tool input for a roll on success.
type RollOnSuccessInput struct {
	PreconditionsSum int         `json:"preconditions_sum" jsonschema:"sum of properties added to the roll, e.g. Will"`
	Rolled           []int       `json:"rolled,omitempty" jsonschema:"faces already rolled; when set no dice are thrown"`
	Rng              *RngRequest `json:"rng,omitempty" jsonschema:"optional rng configuration"`
	Tiers            []TierInput `json:"tiers" jsonschema:"difficulty tiers, at least one"`
}

// QualityResult describes a roll on quality.
type QualityResult struct {
	Value            int   `json:"value" jsonschema:"preconditions sum plus roll value"`
	PreconditionsSum int   `json:"preconditions_sum" jsonschema:"sum of properties added to the roll"`
	RollValue        int   `json:"roll_value" jsonschema:"value of the 2d6+ roll"`
	RolledNumbers    []int `json:"rolled_numbers" jsonschema:"every die face in the order rolled"`
}

// TierResult describes the outcome of one difficulty tier.
type TierResult struct {
	Difficulty int    `json:"difficulty" jsonschema:"difficulty of the tier"`
	Successful bool   `json:"successful" jsonschema:"whether the quality reached the difficulty"`
	ResultCode string `json:"result_code" jsonschema:"success or failure code of the tier"`
	Margin     int    `json:"margin" jsonschema:"quality minus difficulty"`
}

// RollOnSuccessResult represents the MCP tool output for a roll on success.
type RollOnSuccessResult struct {
	Quality           QualityResult `json:"quality" jsonschema:"roll on quality shared by every tier"`
	Tiers             []TierResult  `json:"tiers" jsonschema:"tiers ordered from the highest difficulty"`
	WinningDifficulty int           `json:"winning_difficulty" jsonschema:"difficulty of the tier deciding the result"`
	ResultCode        string        `json:"result_code" jsonschema:"code of the deciding tier"`
	Successful        bool          `json:"successful" jsonschema:"whether any tier was passed"`
	Rng               *RngResult    `json:"rng,omitempty" jsonschema:"rng details when dice were thrown"`
}

// QualityInput describes a roll on quality from faces already rolled.
type QualityInput struct {
	PreconditionsSum int   `json:"preconditions_sum" jsonschema:"sum of properties added to the roll"`
	Rolled           []int `json:"rolled" jsonschema:"2d6+ faces in the order rolled"`
}

// CompareRollsInput represents the MCP tool input for comparing two rolls on quality.
type CompareRollsInput struct {
	First  QualityInput `json:"first" jsonschema:"first roll on quality"`
	Second QualityInput `json:"second" jsonschema:"second roll on quality"`
}

// CompareRollsResult represents the MCP tool output for comparing two rolls on quality.
type CompareRollsResult struct {
	First      QualityResult `json:"first" jsonschema:"first roll on quality"`
	Second     QualityResult `json:"second" jsonschema:"second roll on quality"`
	Comparison int           `json:"comparison" jsonschema:"negative, zero or positive as the first value is lower, equal or higher"`
	Lesser     bool          `json:"lesser" jsonschema:"whether the first value is lower"`
	Greater    bool          `json:"greater" jsonschema:"whether the first value is higher"`
	Equal      bool          `json:"equal" jsonschema:"whether both values are equal"`
}

// RollOnSuccessTool defines the MCP tool schema for rolls on success.
func RollOnSuccessTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_on_success",
		Description: "Rolls on quality and evaluates it against graduated difficulty tiers",
	}
}

// CompareRollsTool defines the MCP tool schema for comparing rolls on quality.
func CompareRollsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "compare_rolls_on_quality",
		Description: "Compares two rolls on quality by value",
	}
}

// RollOnSuccessHandler evaluates a roll on quality against difficulty tiers.
func RollOnSuccessHandler(locale string) mcp.ToolHandlerFor[RollOnSuccessInput, RollOnSuccessResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input RollOnSuccessInput) (*mcp.CallToolResult, RollOnSuccessResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, RollOnSuccessResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		roll, rngResult, err := resolveRoll(input.Rolled, input.Rng)
		if err != nil {
			return nil, RollOnSuccessResult{}, localize(err, locale)
		}
		quality := rollon.NewQuality(input.PreconditionsSum, roll)

		tiers := make([]rollon.Tier, 0, len(input.Tiers))
		for _, tier := range input.Tiers {
			tiers = append(tiers, rollon.Tier{
				Difficulty:  tier.Difficulty,
				SuccessCode: codeOrDefault(tier.SuccessCode, rollon.SuccessCode),
				FailureCode: codeOrDefault(tier.FailureCode, rollon.FailureCode),
			})
		}
		extended, err := rollon.EvaluateTiers(quality, tiers...)
		if err != nil {
			return nil, RollOnSuccessResult{}, localize(err, locale)
		}

		results := make([]TierResult, 0, len(extended.Results()))
		for _, result := range extended.Results() {
			results = append(results, TierResult{
				Difficulty: result.Difficulty(),
				Successful: result.IsSuccessful(),
				ResultCode: result.ResultCode(),
				Margin:     rollon.MarginOf(result),
			})
		}

		return CallToolResultWithInvocation(invocationID), RollOnSuccessResult{
			Quality:           qualityResult(quality),
			Tiers:             results,
			WinningDifficulty: extended.WinningResult().Difficulty(),
			ResultCode:        extended.ResultCode(),
			Successful:        extended.IsSuccessful(),
			Rng:               rngResult,
		}, nil
	}
}

// CompareRollsHandler compares two rolls on quality.
func CompareRollsHandler(locale string) mcp.ToolHandlerFor[CompareRollsInput, CompareRollsResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input CompareRollsInput) (*mcp.CallToolResult, CompareRollsResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, CompareRollsResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		first, err := qualityFrom(input.First)
		if err != nil {
			return nil, CompareRollsResult{}, localize(err, locale)
		}
		second, err := qualityFrom(input.Second)
		if err != nil {
			return nil, CompareRollsResult{}, localize(err, locale)
		}

		return CallToolResultWithInvocation(invocationID), CompareRollsResult{
			First:      qualityResult(first),
			Second:     qualityResult(second),
			Comparison: rollon.Compare(first, second),
			Lesser:     rollon.IsLesser(first, second),
			Greater:    rollon.IsGreater(first, second),
			Equal:      rollon.IsEqual(first, second),
		}, nil
	}
}

func qualityFrom(input QualityInput) (rollon.Quality, error) {
	roll, err := evaluateRolled(input.Rolled)
	if err != nil {
		return rollon.Quality{}, err
	}
	return rollon.NewQuality(input.PreconditionsSum, roll), nil
}

func qualityResult(quality rollon.Quality) QualityResult {
	roll := quality.Roll()
	return QualityResult{
		Value:            quality.Value(),
		PreconditionsSum: quality.PreconditionsSum(),
		RollValue:        roll.Value,
		RolledNumbers:    roll.RolledNumbers,
	}
}

func codeOrDefault(code, fallback string) string {
	if trimmed := strings.TrimSpace(code); trimmed != "" {
		return trimmed
	}
	return fallback
}
