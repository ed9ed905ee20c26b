package constants

// Context keys
const (
	ContextTokenData = "token_data"
)

// Database pool settings
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Pagination
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)
