package root

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/JulienBalestra/binomial/cmd/flags"
	"github.com/JulienBalestra/binomial/pkg/lattice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scenarioArgs = []string{
	"--spot=100", "--strike=105", "--maturity=1", "--volatility=0.2", "--steps=100", "--log-level=error",
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(context.TODO())
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(ioutil.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestPriceCommand(t *testing.T) {
	defer os.Unsetenv(flags.RateEnv)
	for name, tc := range map[string]struct {
		env  string
		args []string
	}{
		"flag":          {"", append([]string{"--rate=0.05"}, scenarioArgs...)},
		"env":           {"0.05", scenarioArgs},
		"flag over env": {"0.5", append([]string{"-r", "0.05"}, scenarioArgs...)},
	} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, os.Setenv(flags.RateEnv, tc.env))
			out, err := execute(t, tc.args...)
			require.NoError(t, err)
			v, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
			require.NoError(t, err)
			assert.InDelta(t, 8.021, v, 0.01)
		})
	}
}

func TestPriceCommandErrors(t *testing.T) {
	for name, args := range map[string][]string{
		"zero volatility": {"--volatility=0", "--log-level=error"},
		"negative steps":  {"--steps=-3", "--log-level=error"},
		"arbitrage":       {"--rate=0.5", "--volatility=0.01", "--steps=10", "--log-level=error"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := execute(t, args...)
			require.Error(t, err)
		})
	}
	_, err := execute(t, "--volatility=0", "--log-level=error")
	assert.ErrorIs(t, err, lattice.ErrInvalidParameter)
}

func TestRateEnvScope(t *testing.T) {
	require.NoError(t, os.Setenv(flags.RateEnv, "five"))
	defer os.Unsetenv(flags.RateEnv)

	_, err := execute(t, "version")
	require.NoError(t, err)

	_, err = execute(t, scenarioArgs...)
	assert.Error(t, err)
	_, err = execute(t, "tree", "--steps=2", "--log-level=error")
	assert.Error(t, err)

	out, err := execute(t, "tree", "--steps=2", "--rate=0.05", "--log-level=error")
	require.NoError(t, err)
	assert.Contains(t, out, "step 2\n")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "package: github.com/JulienBalestra/binomial\n")
}

func TestTreeCommand(t *testing.T) {
	out, err := execute(t, "tree", "--steps=2", "--log-level=error")
	require.NoError(t, err)
	assert.Contains(t, out, "step 2\n")
}

func TestBatchCommand(t *testing.T) {
	dir, err := ioutil.TempDir("", "binomial")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "scenarios.yaml")

	_, err = execute(t, "batch", "generate", "-f", path, "--log-level=error")
	require.NoError(t, err)

	out, err := execute(t, "batch", "-f", path, "-o", "prometheus", "--log-level=error")
	require.NoError(t, err)
	assert.Contains(t, out, `binomial_option_price{kind="put",scenario="atm-put",steps="100"}`)

	require.NoError(t, os.Setenv(flags.ScenarioFileEnv, path))
	defer os.Unsetenv(flags.ScenarioFileEnv)
	out, err = execute(t, "batch", "--log-level=error")
	require.NoError(t, err)
	assert.Contains(t, out, "otm-call")
}

func TestBatchCommandMissingFile(t *testing.T) {
	os.Unsetenv(flags.ScenarioFileEnv)
	_, err := execute(t, "batch", "--log-level=error")
	assert.EqualError(t, err, "flag --file or envvar "+flags.ScenarioFileEnv+" must be set")
}
