package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/JulienBalestra/binomial/pkg/batch"
	"github.com/matttproud/golang_protobuf_extensions/pbutil"
	"github.com/pkg/errors"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

const (
	FormatText       = "text"
	FormatJSON       = "json"
	FormatPrometheus = "prometheus"
	FormatProtobuf   = "protobuf"

	metricPrefix = "binomial_option_"
)

func Formats() []string {
	return []string{FormatText, FormatJSON, FormatPrometheus, FormatProtobuf}
}

// Record is the flat form of an outcome.
type Record struct {
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	Spot       float64 `json:"spot"`
	Strike     float64 `json:"strike"`
	Rate       float64 `json:"rate"`
	Maturity   float64 `json:"maturity"`
	Volatility float64 `json:"volatility"`
	Steps      int     `json:"steps"`

	Price float64 `json:"price"`
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Error string  `json:"error,omitempty"`
}

func NewRecord(o batch.Outcome) Record {
	r := Record{
		Name:       o.Name,
		Kind:       o.Params.Kind.String(),
		Spot:       o.Params.Spot,
		Strike:     o.Params.Strike,
		Rate:       o.Params.Rate,
		Maturity:   o.Params.Maturity,
		Volatility: o.Params.Volatility,
		Steps:      o.Params.Steps,
	}
	if o.Err != nil {
		r.Error = o.Err.Error()
		return r
	}
	r.Price = o.Result.Price
	r.Delta = o.Result.Delta
	r.Gamma = o.Result.Gamma
	r.Theta = o.Result.Theta
	return r
}

func Write(w io.Writer, format string, outcomes []batch.Outcome) error {
	switch format {
	case FormatText:
		return writeText(w, outcomes)
	case FormatJSON:
		return writeJSON(w, outcomes)
	case FormatPrometheus:
		for _, mf := range MetricFamilies(outcomes) {
			_, err := expfmt.MetricFamilyToText(w, mf)
			if err != nil {
				return err
			}
		}
		return nil
	case FormatProtobuf:
		for _, mf := range MetricFamilies(outcomes) {
			_, err := pbutil.WriteDelimited(w, mf)
			if err != nil {
				return err
			}
		}
		return nil
	}
	return errors.Errorf("unknown output format %q, expected one of %s", format, Formats())
}

func writeText(w io.Writer, outcomes []batch.Outcome) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, err := fmt.Fprintln(tw, "NAME\tKIND\tSPOT\tSTRIKE\tRATE\tMATURITY\tVOLATILITY\tSTEPS\tPRICE\tDELTA\tERROR")
	if err != nil {
		return err
	}
	for _, o := range outcomes {
		r := NewRecord(o)
		price, delta := "-", "-"
		if r.Error == "" {
			price = strconv.FormatFloat(r.Price, 'f', 6, 64)
			delta = strconv.FormatFloat(r.Delta, 'f', 6, 64)
		}
		_, err = fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%g\t%g\t%d\t%s\t%s\t%s\n",
			r.Name, r.Kind, r.Spot, r.Strike, r.Rate, r.Maturity, r.Volatility, r.Steps, price, delta, r.Error)
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, outcomes []batch.Outcome) error {
	records := make([]Record, 0, len(outcomes))
	for _, o := range outcomes {
		records = append(records, NewRecord(o))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func gauge(name, help string) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(metricPrefix + name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
	}
}

func labels(o batch.Outcome) []*dto.LabelPair {
	return []*dto.LabelPair{
		{Name: proto.String("kind"), Value: proto.String(o.Params.Kind.String())},
		{Name: proto.String("scenario"), Value: proto.String(o.Name)},
		{Name: proto.String("steps"), Value: proto.String(strconv.Itoa(o.Params.Steps))},
	}
}

// MetricFamilies exposes the outcomes as gauges, one sample per scenario.
// Failed scenarios only appear in the failed family.
func MetricFamilies(outcomes []batch.Outcome) []*dto.MetricFamily {
	price := gauge("price", "Binomial lattice value of the option.")
	delta := gauge("delta", "Lattice delta of the option.")
	gamma := gauge("gamma", "Lattice gamma of the option.")
	theta := gauge("theta", "Lattice theta of the option, per year.")
	failed := gauge("failed", "Set to 1 when the scenario could not be priced.")

	sorted := append([]batch.Outcome(nil), outcomes...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	for _, o := range sorted {
		if o.Err != nil {
			failed.Metric = append(failed.Metric, &dto.Metric{
				Label: labels(o),
				Gauge: &dto.Gauge{Value: proto.Float64(1)},
			})
			continue
		}
		for _, elt := range []struct {
			mf    *dto.MetricFamily
			value float64
		}{
			{price, o.Result.Price},
			{delta, o.Result.Delta},
			{gamma, o.Result.Gamma},
			{theta, o.Result.Theta},
		} {
			elt.mf.Metric = append(elt.mf.Metric, &dto.Metric{
				Label: labels(o),
				Gauge: &dto.Gauge{Value: proto.Float64(elt.value)},
			})
		}
	}
	families := make([]*dto.MetricFamily, 0, 5)
	for _, mf := range []*dto.MetricFamily{price, delta, gamma, theta, failed} {
		if len(mf.Metric) == 0 {
			continue
		}
		families = append(families, mf)
	}
	return families
}
