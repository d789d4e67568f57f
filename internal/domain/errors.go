package domain

import "errors"

// Ошибки внешних сервисов. Инфраструктурный слой оборачивает их через %w,
// usecase сопоставляет с HTTP кодами.
var (
	ErrMissingCredentials   = errors.New("missing credentials for external service")
	ErrOracleUnavailable    = errors.New("recommendation oracle unavailable")
	ErrOracleRateLimited    = errors.New("recommendation oracle rate limited")
	ErrOracleQuotaExhausted = errors.New("recommendation oracle quota exhausted")
	ErrOracleMalformed      = errors.New("recommendation oracle returned malformed content")
)
