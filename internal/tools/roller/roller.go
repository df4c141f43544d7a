// Package roller runs a roll on Will against graduated difficulty tiers.
package roller

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/louisbranch/rollson/internal/core/check"
	"github.com/louisbranch/rollson/internal/core/dice"
	"github.com/louisbranch/rollson/internal/core/rollon"
	platformcmd "github.com/louisbranch/rollson/internal/platform/cmd"
	"github.com/louisbranch/rollson/internal/platform/config"
	apperrors "github.com/louisbranch/rollson/internal/platform/errors"
	"github.com/louisbranch/rollson/internal/platform/otel"
	"github.com/louisbranch/rollson/internal/random"
	"github.com/louisbranch/rollson/internal/tools/roller/tiertable"
)

// Config holds configuration for one roll.
type Config struct {
	Will      int      `env:"ROLLSON_WILL"`
	Seed      int64    `env:"ROLLSON_SEED"`
	Rolled    string   `env:"ROLLSON_ROLLED"`
	TiersFile string   `env:"ROLLSON_TIERS_FILE"`
	Tiers     []string `env:"ROLLSON_TIERS" envSeparator:";"`
	Locale    string   `env:"ROLLSON_LOCALE" envDefault:"en-US"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Will, "will", cfg.Will, "Will of the character")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed for the 2d6+ roll (0 draws a random seed)")
	fs.StringVar(&cfg.Rolled, "rolled", cfg.Rolled, "comma separated faces of dice already rolled, skips rolling")
	fs.StringVar(&cfg.TiersFile, "tiers", cfg.TiersFile, "Lua script returning difficulty tiers")
	fs.Var(&tierList{values: &cfg.Tiers}, "tier", "difficulty tier as difficulty:success[:failure] (repeatable)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for error messages")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// tierList collects repeated -tier flags. Flags replace tiers set in the
// environment instead of extending them.
type tierList struct {
	values *[]string
	set    bool
}

func (l *tierList) String() string {
	if l == nil || l.values == nil {
		return ""
	}
	return strings.Join(*l.values, ";")
}

func (l *tierList) Set(value string) error {
	if _, err := parseTier(value); err != nil {
		return err
	}
	if !l.set {
		*l.values = nil
		l.set = true
	}
	*l.values = append(*l.values, value)
	return nil
}

// Run rolls on Will, evaluates the tiers and writes a report to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		return errors.New("output is required")
	}

	ctx, span := otel.Tracer().Start(ctx, "rollon.run")
	defer span.End()

	tiers, err := loadTiers(cfg)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	roll, seed, err := makeRoll(cfg)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	onWill := rollon.NewRollOnWill(cfg.Will, roll)
	result, err := evaluate(ctx, onWill.Quality, tiers)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetAttributes(
		attribute.Int("rollon.quality", onWill.Value()),
		attribute.String("rollon.result_code", result.ResultCode()),
	)

	return report(out, onWill, seed, result)
}

func evaluate(ctx context.Context, quality rollon.Quality, tiers []rollon.Tier) (*rollon.ExtendedRollOnSuccess, error) {
	_, span := otel.Tracer().Start(ctx, "rollon.evaluate")
	defer span.End()
	span.SetAttributes(attribute.Int("rollon.tiers", len(tiers)))

	result, err := rollon.EvaluateTiers(quality, tiers...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperrors.GetCode(err)))
		return nil, err
	}
	span.SetAttributes(attribute.Bool("rollon.successful", result.IsSuccessful()))
	return result, nil
}

func loadTiers(cfg Config) ([]rollon.Tier, error) {
	var tiers []rollon.Tier
	if path := strings.TrimSpace(cfg.TiersFile); path != "" {
		table, err := tiertable.LoadFile(path)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, table.Tiers...)
	}
	for _, value := range cfg.Tiers {
		tier, err := parseTier(value)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, tier)
	}
	return tiers, nil
}

// parseTier reads difficulty:success[:failure].
func parseTier(value string) (rollon.Tier, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return rollon.Tier{}, tierError(value, "expected difficulty:success[:failure]")
	}
	difficulty, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return rollon.Tier{}, tierError(value, "difficulty must be an integer")
	}
	success := strings.TrimSpace(parts[1])
	if success == "" {
		return rollon.Tier{}, tierError(value, "success code is required")
	}
	failure := rollon.FailureCode
	if len(parts) == 3 && strings.TrimSpace(parts[2]) != "" {
		failure = strings.TrimSpace(parts[2])
	}
	return rollon.Tier{Difficulty: difficulty, SuccessCode: success, FailureCode: failure}, nil
}

func tierError(value, reason string) error {
	message := fmt.Sprintf("tier %q: %s", value, reason)
	return apperrors.WithMetadata(apperrors.CodeTierTableInvalid, message, map[string]string{"reason": message})
}

// makeRoll evaluates the given faces or rolls 2d6+. The seed is zero when no
// dice were rolled.
func makeRoll(cfg Config) (dice.Roll, int64, error) {
	if rolled := strings.TrimSpace(cfg.Rolled); rolled != "" {
		numbers, err := parseNumbers(rolled)
		if err == nil {
			var roll dice.Roll
			if roll, err = dice.Evaluate2d6Plus(numbers); err == nil {
				return roll, 0, nil
			}
		}
		return dice.Roll{}, 0, apperrors.WrapWithMetadata(
			apperrors.CodeDiceInvalidSequence,
			fmt.Sprintf("rolled numbers %q", rolled),
			map[string]string{"numbers": rolled},
			err,
		)
	}

	rng, seed, err := random.NewRand(cfg.Seed)
	if err != nil {
		return dice.Roll{}, 0, err
	}
	return dice.Roll2d6Plus(rng), seed, nil
}

func parseNumbers(value string) ([]int, error) {
	fields := strings.Split(value, ",")
	numbers := make([]int, 0, len(fields))
	for _, field := range fields {
		number, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("parse rolled number %q: %w", field, err)
		}
		numbers = append(numbers, number)
	}
	return numbers, nil
}

func report(out io.Writer, onWill rollon.RollOnWill, seed int64, result *rollon.ExtendedRollOnSuccess) error {
	roll := onWill.Roll()
	var b strings.Builder
	fmt.Fprintf(&b, "roll: %s (value %d)\n", joinNumbers(roll.RolledNumbers), roll.Value)
	if seed != 0 {
		fmt.Fprintf(&b, "seed: %d\n", seed)
	}
	fmt.Fprintf(&b, "will: %d, quality: %d\n", onWill.Will(), onWill.Value())

	winner := result.WinningResult()
	difficulties := make([]int, 0, len(result.Results()))
	for _, tier := range result.Results() {
		difficulties = append(difficulties, tier.Difficulty())
		status := "failed"
		if tier.IsSuccessful() {
			status = "passed"
		}
		marker := " "
		if tier.Difficulty() == winner.Difficulty() {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s difficulty %d: %s, %s (margin %+d)\n",
			marker, tier.Difficulty(), status, tier.ResultCode(), rollon.MarginOf(tier))
	}
	if best, ok := check.Highest(onWill.Value(), difficulties...); ok {
		fmt.Fprintf(&b, "highest difficulty met: %d\n", best.Difficulty)
	} else {
		b.WriteString("highest difficulty met: none\n")
	}
	fmt.Fprintf(&b, "result: %s\n", result)

	_, err := io.WriteString(out, b.String())
	return err
}

func joinNumbers(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, number := range numbers {
		parts[i] = strconv.Itoa(number)
	}
	return strings.Join(parts, ",")
}

// Describe turns a Run error into a message for the user and an exit code.
func Describe(err error, locale string) (string, int) {
	message := apperrors.LocalizedMessage(err, locale)
	if apperrors.GetCode(err).IsValidation() {
		return message, config.ExitInvalidInput
	}
	return message, config.ExitFailure
}
