package invitro

import "fmt"

// ConfigError reports an invalid simulation configuration. It is always raised
// before the integration starts; a run never returns partial results on one.
type ConfigError struct {
	reason string
}

func (e ConfigError) Error() string {
	return "config: " + e.reason
}

func configErrorf(format string, args ...interface{}) ConfigError {
	return ConfigError{fmt.Sprintf(format, args...)}
}
