package constants

// configuration keys, bound to flags and SIEVE_ prefixed environment variables
const (
	EnvPrefix   = "SIEVE"
	ConfigFile  = "CONFIG_FILE"
	LogLevel    = "LOG_LEVEL"
	LogFile     = "LOG_FILE"
	Concurrency = "CONCURRENCY"
)

const (
	DefaultLogLevel = "info"
	// rotation limits for LOG_FILE
	LogFileMaxSizeMB  = 64
	LogFileMaxBackups = 3
	LogFileMaxAgeDays = 7
	// PathSeparator splits a property path into segments.
	PathSeparator = "."
)
