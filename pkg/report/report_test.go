package report

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/JulienBalestra/binomial/pkg/batch"
	"github.com/JulienBalestra/binomial/pkg/lattice"
	"github.com/matttproud/golang_protobuf_extensions/pbutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outcomes() []batch.Outcome {
	return []batch.Outcome{
		{
			Name:   "otm",
			Params: lattice.Params{Spot: 100, Strike: 105, Rate: 0.05, Maturity: 1, Volatility: 0.2, Steps: 100},
			Result: &lattice.Result{Price: 8.5, Delta: 0.5, Gamma: 0.25, Theta: -6},
		},
		{
			Name:   "bad",
			Params: lattice.Params{Spot: 100, Strike: -1, Maturity: 1, Volatility: 0.2, Steps: 10, Kind: lattice.Put},
			Err:    lattice.ErrInvalidParameter,
		},
	}
}

func TestWritePrometheus(t *testing.T) {
	buf := &bytes.Buffer{}
	err := Write(buf, FormatPrometheus, outcomes())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "# TYPE binomial_option_price gauge\n")
	assert.Contains(t, out, `binomial_option_price{kind="call",scenario="otm",steps="100"} 8.5`+"\n")
	assert.Contains(t, out, `binomial_option_theta{kind="call",scenario="otm",steps="100"} -6`+"\n")
	assert.Contains(t, out, `binomial_option_failed{kind="put",scenario="bad",steps="10"} 1`+"\n")
	assert.NotContains(t, out, `binomial_option_price{kind="put"`)
}

func TestWriteProtobuf(t *testing.T) {
	buf := &bytes.Buffer{}
	err := Write(buf, FormatProtobuf, outcomes())
	require.NoError(t, err)

	var names []string
	for {
		mf := &dto.MetricFamily{}
		_, err = pbutil.ReadDelimited(buf, mf)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		names = append(names, mf.GetName())
	}
	assert.Equal(t, []string{
		"binomial_option_price",
		"binomial_option_delta",
		"binomial_option_gamma",
		"binomial_option_theta",
		"binomial_option_failed",
	}, names)
}

func TestWriteJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	err := Write(buf, FormatJSON, outcomes())
	require.NoError(t, err)

	var records []Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, 8.5, records[0].Price)
	assert.Equal(t, "call", records[0].Kind)
	assert.Empty(t, records[0].Error)
	assert.Equal(t, "put", records[1].Kind)
	assert.Equal(t, lattice.ErrInvalidParameter.Error(), records[1].Error)
}

func TestWriteText(t *testing.T) {
	buf := &bytes.Buffer{}
	err := Write(buf, FormatText, outcomes())
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.True(t, bytes.HasPrefix(lines[0], []byte("NAME")))
	assert.Contains(t, string(lines[1]), "8.500000")
	assert.Contains(t, string(lines[2]), lattice.ErrInvalidParameter.Error())
}

func TestWriteUnknown(t *testing.T) {
	err := Write(&bytes.Buffer{}, "csv", outcomes())
	assert.Error(t, err)
}
