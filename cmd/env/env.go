package env

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
)

// DefaultFromEnv fills an empty key from envvar, one of them must be set.
func DefaultFromEnv(key *string, flag, envvar string) error {
	if *key != "" {
		return nil
	}
	*key = os.Getenv(envvar)
	if *key == "" {
		return fmt.Errorf("flag --%s or envvar %s must be set", flag, envvar)
	}
	return nil
}

// FloatFromEnv overrides value with envvar when the flag was not given
// on the command line. An unset envvar keeps the flag default.
func FloatFromEnv(fs *pflag.FlagSet, value *float64, flag, envvar string) error {
	if fs.Changed(flag) {
		return nil
	}
	s, ok := os.LookupEnv(envvar)
	if !ok || s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid envvar %s=%q for flag --%s: %v", envvar, s, flag, err)
	}
	*value = f
	return nil
}
