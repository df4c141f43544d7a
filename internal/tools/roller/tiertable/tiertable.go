// Package tiertable loads difficulty tiers from Lua scripts.
//
// A script returns a list of tiers, either as plain tables or built with the
// Tier helper:
//
//	return {
//	  Tier(12, "unmoved", "shaken"),
//	  { difficulty = 8, success = "resisted", failure = "shaken" },
//	  { difficulty = 4, success = "frightened" },
//	}
//
// A missing failure code defaults to rollon.FailureCode.
package tiertable

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Shopify/go-lua"

	"github.com/louisbranch/rollson/internal/core/rollon"
	apperrors "github.com/louisbranch/rollson/internal/platform/errors"
)

// Table is a named, ordered list of tiers.
type Table struct {
	Name  string
	Tiers []rollon.Tier
}

// LoadFile runs the Lua script at path and reads the tiers it returns.
func LoadFile(path string) (Table, error) {
	state := newState()
	if err := lua.LoadFile(state, path, ""); err != nil {
		return Table{}, invalid("load lua", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return run(state, name)
}

// LoadString runs a Lua chunk and reads the tiers it returns.
func LoadString(name, source string) (Table, error) {
	state := newState()
	if err := lua.LoadBuffer(state, source, name, ""); err != nil {
		return Table{}, invalid("load lua", err)
	}
	return run(state, name)
}

func newState() *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)
	state.Register("Tier", tierHelper)
	return state
}

func run(state *lua.State, name string) (Table, error) {
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return Table{}, invalid("run lua", err)
	}
	defer state.Pop(1)

	if state.TypeOf(-1) != lua.TypeTable {
		return Table{}, invalid("tier script must return a table", nil)
	}
	tiers, err := readTiers(state, state.AbsIndex(-1))
	if err != nil {
		return Table{}, err
	}
	if len(tiers) == 0 {
		return Table{}, invalid("tier script returned no tiers", nil)
	}
	return Table{Name: name, Tiers: tiers}, nil
}

// tierHelper builds a tier table: Tier(difficulty, success [, failure]).
func tierHelper(state *lua.State) int {
	difficulty := lua.CheckInteger(state, 1)
	success := lua.CheckString(state, 2)
	failure := lua.OptString(state, 3, rollon.FailureCode)

	state.NewTable()
	state.PushInteger(difficulty)
	state.SetField(-2, "difficulty")
	state.PushString(success)
	state.SetField(-2, "success")
	state.PushString(failure)
	state.SetField(-2, "failure")
	return 1
}

type indexedTier struct {
	position int
	tier     rollon.Tier
}

func readTiers(state *lua.State, index int) ([]rollon.Tier, error) {
	var entries []indexedTier

	state.PushNil()
	for state.Next(index) {
		position, ok := state.ToInteger(-2)
		if !ok || state.TypeOf(-2) != lua.TypeNumber {
			state.Pop(2)
			return nil, invalid("tiers must be a list", nil)
		}
		if state.TypeOf(-1) != lua.TypeTable {
			state.Pop(2)
			return nil, invalid(fmt.Sprintf("tier %d must be a table", position), nil)
		}
		tier, err := readTier(state, state.AbsIndex(-1), position)
		if err != nil {
			state.Pop(2)
			return nil, err
		}
		entries = append(entries, indexedTier{position: position, tier: tier})
		state.Pop(1)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].position < entries[j].position })
	tiers := make([]rollon.Tier, 0, len(entries))
	for _, entry := range entries {
		tiers = append(tiers, entry.tier)
	}
	return tiers, nil
}

func readTier(state *lua.State, index, position int) (rollon.Tier, error) {
	state.Field(index, "difficulty")
	number, ok := state.ToNumber(-1)
	isNumber := state.TypeOf(-1) == lua.TypeNumber
	state.Pop(1)
	if !ok || !isNumber || number != math.Trunc(number) {
		return rollon.Tier{}, invalid(fmt.Sprintf("tier %d needs an integer difficulty", position), nil)
	}
	// float64(math.MaxInt) rounds up to 2^63, which int cannot hold.
	if number < math.MinInt || number >= math.MaxInt {
		return rollon.Tier{}, invalid(fmt.Sprintf("tier %d difficulty is out of range", position), nil)
	}

	success, ok := stringField(state, index, "success")
	if !ok || strings.TrimSpace(success) == "" {
		return rollon.Tier{}, invalid(fmt.Sprintf("tier %d needs a success code", position), nil)
	}
	failure, ok := stringField(state, index, "failure")
	if !ok {
		failure = rollon.FailureCode
	}

	return rollon.Tier{
		Difficulty:  int(number),
		SuccessCode: success,
		FailureCode: failure,
	}, nil
}

func stringField(state *lua.State, index int, key string) (string, bool) {
	state.Field(index, key)
	defer state.Pop(1)
	if state.TypeOf(-1) != lua.TypeString {
		return "", false
	}
	return state.ToString(-1)
}

func invalid(reason string, cause error) error {
	message := reason
	if cause != nil {
		message = fmt.Sprintf("%s: %v", reason, cause)
	}
	return apperrors.WrapWithMetadata(
		apperrors.CodeTierTableInvalid,
		message,
		map[string]string{"reason": message},
		cause,
	)
}
