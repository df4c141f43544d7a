package rollon

import apperrors "github.com/louisbranch/rollson/internal/platform/errors"

// Sentinels for errors.Is; construction errors match them by code.
var (
	ErrMissingResults       = apperrors.New(apperrors.CodeRollMissingResults, "at least one roll on success is required")
	ErrInvalidResultType    = apperrors.New(apperrors.CodeRollInvalidResultType, "expected simple rolls on success only")
	ErrDuplicateDifficulty  = apperrors.New(apperrors.CodeRollDuplicateDifficulty, "expected only unique difficulties")
	ErrDuplicateSuccessCode = apperrors.New(apperrors.CodeRollDuplicateSuccessCode, "expected only unique success codes")
	ErrInconsistentQuality  = apperrors.New(apperrors.CodeRollInconsistentQuality, "expected same roll on quality for every roll on success")
)
