package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"
	// GeneralNotFoundError represents a generic not found error.
	GeneralNotFoundError ErrorCode = "general_not_found_error"
	// GeneralRepositoryError represents a generic repository error.
	GeneralRepositoryError ErrorCode = "general_repository_error"

	// ErrInsufficientFunds is returned when a wager amount exceeds the owner's balance.
	ErrInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"
	// ErrInvalidAmount is returned when a wager amount is zero or negative.
	ErrInvalidAmount ErrorCode = "INVALID_AMOUNT"
	// ErrInvalidDirection is returned when a wager direction is neither UP nor DOWN.
	ErrInvalidDirection ErrorCode = "INVALID_DIRECTION"
	// ErrInstrumentNotFound is returned when a symbol resolves to no instrument.
	ErrInstrumentNotFound ErrorCode = "INSTRUMENT_NOT_FOUND"
	// ErrNoPriceAvailable is returned when an instrument has no recorded tick yet.
	ErrNoPriceAvailable ErrorCode = "NO_PRICE_AVAILABLE"
	// ErrUnsupportedResolution is returned when a candle resolution is not registered.
	ErrUnsupportedResolution ErrorCode = "UNSUPPORTED_RESOLUTION"
	// ErrOverrideOutOfWindow is returned when a manual override time is outside the accepted window.
	ErrOverrideOutOfWindow ErrorCode = "OVERRIDE_OUT_OF_WINDOW"
	// ErrDuplicateSymbol is returned when creating an instrument with a symbol already in use.
	ErrDuplicateSymbol ErrorCode = "DUPLICATE_SYMBOL"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisPublishError represents an error when publishing messages to channels in Redis.
	RedisPublishError ErrorCode = "redis_publish_error"
	// RedisSubscribeError represents an error when subscribing to channels in Redis.
	RedisSubscribeError ErrorCode = "redis_subscribe_error"
)
