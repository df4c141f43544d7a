// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Roll on success errors
	CodeRollMissingResults       Code = "ROLL_MISSING_RESULTS"
	CodeRollInvalidResultType    Code = "ROLL_INVALID_RESULT_TYPE"
	CodeRollDuplicateDifficulty  Code = "ROLL_DUPLICATE_DIFFICULTY"
	CodeRollDuplicateSuccessCode Code = "ROLL_DUPLICATE_SUCCESS_CODE"
	CodeRollInconsistentQuality  Code = "ROLL_INCONSISTENT_QUALITY"

	// Dice/mechanics errors
	CodeDiceInvalidSequence Code = "DICE_INVALID_SEQUENCE"

	// Tier table errors
	CodeTierTableInvalid Code = "TIER_TABLE_INVALID"
)

// IsValidation reports whether the code describes rejected caller input.
func (c Code) IsValidation() bool {
	switch c {
	case CodeRollMissingResults,
		CodeRollInvalidResultType,
		CodeRollDuplicateDifficulty,
		CodeRollDuplicateSuccessCode,
		CodeRollInconsistentQuality,
		CodeDiceInvalidSequence,
		CodeTierTableInvalid:
		return true
	default:
		return false
	}
}
