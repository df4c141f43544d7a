package tiertable

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/louisbranch/rollson/internal/core/rollon"
	apperrors "github.com/louisbranch/rollson/internal/platform/errors"
)

func TestLoadString(t *testing.T) {
	source := `
return {
  Tier(12, "unmoved", "shaken"),
  { difficulty = 8, success = "resisted", failure = "shaken" },
  { difficulty = 4, success = "frightened" },
}
`
	table, err := LoadString("fear", source)
	if err != nil {
		t.Fatalf("load string: %v", err)
	}
	if table.Name != "fear" {
		t.Fatalf("expected name fear, got %q", table.Name)
	}

	want := []rollon.Tier{
		{Difficulty: 12, SuccessCode: "unmoved", FailureCode: "shaken"},
		{Difficulty: 8, SuccessCode: "resisted", FailureCode: "shaken"},
		{Difficulty: 4, SuccessCode: "frightened", FailureCode: rollon.FailureCode},
	}
	if len(table.Tiers) != len(want) {
		t.Fatalf("expected %d tiers, got %d", len(want), len(table.Tiers))
	}
	for i := range want {
		if table.Tiers[i] != want[i] {
			t.Errorf("tier %d = %+v, want %+v", i, table.Tiers[i], want[i])
		}
	}
}

func TestLoadStringComputedTiers(t *testing.T) {
	source := `
local tiers = {}
for i, code in ipairs({"poor", "good", "great"}) do
  tiers[#tiers + 1] = Tier(i * 3, code)
end
return tiers
`
	table, err := LoadString("computed", source)
	if err != nil {
		t.Fatalf("load string: %v", err)
	}
	if len(table.Tiers) != 3 || table.Tiers[2].Difficulty != 9 || table.Tiers[2].SuccessCode != "great" {
		t.Fatalf("unexpected tiers %+v", table.Tiers)
	}
}

func TestLoadStringErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"syntax error", `return {`},
		{"runtime error", `error("boom")`},
		{"not a table", `return 5`},
		{"empty list", `return {}`},
		{"keyed instead of list", `return { fear = { difficulty = 1, success = "ok" } }`},
		{"tier not a table", `return { 5 }`},
		{"missing difficulty", `return { { success = "ok" } }`},
		{"fractional difficulty", `return { { difficulty = 1.5, success = "ok" } }`},
		{"huge difficulty", `return { { difficulty = 1e300, success = "ok" } }`},
		{"tiny difficulty", `return { { difficulty = -1e300, success = "ok" } }`},
		{"difficulty just past int", `return { { difficulty = 2^63, success = "ok" } }`},
		{"infinite difficulty", `return { { difficulty = math.huge, success = "ok" } }`},
		{"missing success", `return { { difficulty = 3 } }`},
		{"blank success", `return { { difficulty = 3, success = "  " } }`},
		{"helper without code", `return { Tier(3) }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadString("bad", tt.source)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apperrors.GetCode(err); got != apperrors.CodeTierTableInvalid {
				t.Fatalf("expected code %s, got %s (%v)", apperrors.CodeTierTableInvalid, got, err)
			}
		})
	}
}

func TestLoadStringLowestDifficulty(t *testing.T) {
	table, err := LoadString("floor", `return { { difficulty = -2^63, success = "ok" } }`)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(table.Tiers) != 1 || table.Tiers[0].Difficulty != math.MinInt {
		t.Fatalf("unexpected tiers %+v", table.Tiers)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "will.lua")
	if err := os.WriteFile(path, []byte(`return { Tier(6, "resisted", "afraid") }`), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}

	table, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if table.Name != "will" {
		t.Fatalf("expected name from file, got %q", table.Name)
	}
	if len(table.Tiers) != 1 || table.Tiers[0].FailureCode != "afraid" {
		t.Fatalf("unexpected tiers %+v", table.Tiers)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.lua"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) || domainErr.Cause == nil {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}
