package errors

import "net/http"

var (
	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrConfiguration = New(
		"CONFIGURATION_ERROR",
		"Required credentials for an external service are not configured",
		http.StatusInternalServerError,
	)

	ErrOracleUnavailable = New(
		"ORACLE_UNAVAILABLE",
		"Recommendation service is unavailable",
		http.StatusInternalServerError,
	)

	ErrOracleBadResponse = New(
		"ORACLE_BAD_RESPONSE",
		"Recommendation service returned an unparseable response",
		http.StatusInternalServerError,
	)

	ErrOracleRateLimited = New(
		"ORACLE_RATE_LIMITED",
		"Recommendation service rate limit exceeded, try again later",
		http.StatusTooManyRequests,
	)

	ErrOracleQuotaExhausted = New(
		"ORACLE_QUOTA_EXHAUSTED",
		"Recommendation service quota exhausted",
		http.StatusPaymentRequired,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
