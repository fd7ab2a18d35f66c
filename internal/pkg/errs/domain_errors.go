package errs

import "errors"

// Domain-specific sentinel errors shared by the usecase and infra layers
var (
	// Rule errors
	ErrRuleNotFound       = errors.New("automation rule not found")
	ErrRuleAlreadyRun     = errors.New("automation rule already executed")
	ErrUnknownRuleType    = errors.New("unknown automation rule type")
	ErrInvalidRuleConfig  = errors.New("invalid automation rule config")
	ErrHandlerPanicked    = errors.New("automation handler panicked")
	ErrDuplicateHandler   = errors.New("duplicate automation handler")
	ErrMissingHandler     = errors.New("missing automation handler")
	ErrLeaderLockNotTaken = errors.New("scheduler leader lock held elsewhere")

	// Job record errors
	ErrJobNotFound = errors.New("job record not found")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
