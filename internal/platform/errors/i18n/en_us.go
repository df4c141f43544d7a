package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeRollMissingResults       = "ROLL_MISSING_RESULTS"
	CodeRollInvalidResultType    = "ROLL_INVALID_RESULT_TYPE"
	CodeRollDuplicateDifficulty  = "ROLL_DUPLICATE_DIFFICULTY"
	CodeRollDuplicateSuccessCode = "ROLL_DUPLICATE_SUCCESS_CODE"
	CodeRollInconsistentQuality  = "ROLL_INCONSISTENT_QUALITY"
	CodeDiceInvalidSequence      = "DICE_INVALID_SEQUENCE"
	CodeTierTableInvalid         = "TIER_TABLE_INVALID"
)

var enUSMessages = map[Code]string{
	CodeRollMissingResults:       "At least one roll on success is required.",
	CodeRollInvalidResultType:    "Only simple rolls on success can be combined, got {{.type}}.",
	CodeRollDuplicateDifficulty:  "Every difficulty has to be unique, got {{.difficulties}}.",
	CodeRollDuplicateSuccessCode: "Every success code has to be unique, got {{.codes}}.",
	CodeRollInconsistentQuality:  "Every roll on success has to share the same roll on quality, got {{.first}} and {{.second}}.",
	CodeDiceInvalidSequence:      "The rolled numbers {{.numbers}} are not a valid 2d6+ roll.",
	CodeTierTableInvalid:         "The difficulty tier table is invalid: {{.reason}}.",
}
