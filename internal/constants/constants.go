package constants

const (
	// Identifier validation constants
	MinIdentifierLength = 1
	MaxIdentifierLength = 64

	// Traffic constants
	BytesInGB = 1024 * 1024 * 1024

	// Network constants
	RequestTimeout = 15 // seconds

	// Panel API endpoints, relative to the configured base URL
	LoginPath         = "/login"
	InboundListPath   = "/panel/api/inbounds/list"
	InboundUpdatePath = "/panel/api/inbounds/update"
	AddClientPath     = "/panel/api/inbounds/addClient"

	// Cache constants
	CacheExpiration      = 30 // minutes
	CacheCleanupInterval = 10 // minutes

	// Formatting constants
	TimestampFormat = "2006-01-02 15:04:05"
)
