package ports

import "errors"

// Standard application-level errors.
// Adapters wrap the underlying infrastructure error with one of these so callers
// can classify failures with errors.Is.
var (
	// General Errors
	ErrUnknown            = errors.New("unknown error occurred")
	ErrInvalidRequest     = errors.New("invalid request parameters or format")
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrTimeout            = errors.New("operation timed out")
	ErrConfigurationError = errors.New("invalid or missing configuration")

	// Backend transport errors
	ErrBadStatus = errors.New("backend returned a non-success status")
	ErrDecode    = errors.New("failed to decode backend response")

	// Payload validation errors
	ErrInvalidSide = errors.New("trade event side is neither buy nor sell")

	// Candle source errors
	ErrUnknownSymbol       = errors.New("symbol is unknown to every candle source")
	ErrExchangeUnavailable = errors.New("exchange API is unavailable")
	ErrRateLimited         = errors.New("API rate limit exceeded")

	// Database Specific Errors
	ErrDBConnection = errors.New("database connection error")
	ErrQueryFailed  = errors.New("database query failed")
	ErrUpdateFailed = errors.New("database update failed")
)
