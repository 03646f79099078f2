package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidOrder         ErrorCode = 102
	ErrCodeInvalidSignal        ErrorCode = 103
	ErrCodeInvalidFill          ErrorCode = 104
	ErrCodeInvalidBar           ErrorCode = 105

	// Data/Feed errors (200-299)
	ErrCodeUnknownSymbol    ErrorCode = 200
	ErrCodeMissingPriceData ErrorCode = 201
	ErrCodeQueryFailed      ErrorCode = 202
	ErrCodeNoData           ErrorCode = 203
	ErrCodeDataLoadFailed   ErrorCode = 204

	// Strategy errors (300-399)
	ErrCodeUnknownStrategy ErrorCode = 300

	// Engine errors (400-499)
	ErrCodeEngineNotReady   ErrorCode = 400
	ErrCodeEngineNoFeed     ErrorCode = 401
	ErrCodeEngineNoStrategy ErrorCode = 402
	ErrCodeEngineFinished   ErrorCode = 403

	// Market data download errors (500-599)
	ErrCodeDownloadFailed   ErrorCode = 500
	ErrCodeWriteFailed      ErrorCode = 501
	ErrCodeInvalidProvider  ErrorCode = 502
	ErrCodeInvalidTimeRange ErrorCode = 503
)
