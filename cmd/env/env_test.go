package env

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const envvar = "BINOMIAL_TEST_ENV"

func TestDefaultFromEnv(t *testing.T) {
	defer os.Unsetenv(envvar)

	key := "set"
	require.NoError(t, DefaultFromEnv(&key, "file", envvar))
	assert.Equal(t, "set", key)

	key = ""
	assert.EqualError(t, DefaultFromEnv(&key, "file", envvar), "flag --file or envvar "+envvar+" must be set")

	require.NoError(t, os.Setenv(envvar, "scenarios.yaml"))
	require.NoError(t, DefaultFromEnv(&key, "file", envvar))
	assert.Equal(t, "scenarios.yaml", key)
}

func TestFloatFromEnv(t *testing.T) {
	defer os.Unsetenv(envvar)
	for name, tc := range map[string]struct {
		args []string
		env  string
		exp  float64
		err  bool
	}{
		"default":       {nil, "", 0.01, false},
		"from env":      {nil, "0.03", 0.03, false},
		"flag wins":     {[]string{"--rate=0.02"}, "0.03", 0.02, false},
		"invalid env":   {nil, "five", 0.01, true},
		"negative rate": {nil, "-0.005", -0.005, false},
	} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, os.Setenv(envvar, tc.env))
			rate := 0.0
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			fs.Float64Var(&rate, "rate", 0.01, "")
			require.NoError(t, fs.Parse(tc.args))

			err := FloatFromEnv(fs, &rate, "rate", envvar)
			if tc.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.exp, rate)
		})
	}
}
