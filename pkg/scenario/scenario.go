package scenario

import (
	"io/ioutil"

	"github.com/JulienBalestra/binomial/pkg/lattice"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Values is a partial parameter set: unset fields fall back to the
// file defaults.
type Values struct {
	Kind       string   `yaml:"kind,omitempty"`
	Spot       *float64 `yaml:"spot,omitempty"`
	Strike     *float64 `yaml:"strike,omitempty"`
	Rate       *float64 `yaml:"rate,omitempty"`
	Maturity   *float64 `yaml:"maturity,omitempty"`
	Volatility *float64 `yaml:"volatility,omitempty"`
	Steps      *int     `yaml:"steps,omitempty"`
}

type Scenario struct {
	Name   string `yaml:"name"`
	Values `yaml:",inline"`
}

type File struct {
	Defaults  Values     `yaml:"defaults,omitempty"`
	Scenarios []Scenario `yaml:"scenarios"`
}

// Named is a validated scenario.
type Named struct {
	Name   string
	Params lattice.Params
}

func Parse(b []byte) (*File, error) {
	f := &File{}
	err := yaml.UnmarshalStrict(b, f)
	if err != nil {
		return nil, errors.Wrap(err, "invalid scenario file")
	}
	return f, nil
}

func ParseFile(path string) (*File, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(b)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return f, nil
}

func (v Values) merge(defaults Values) Values {
	if v.Kind == "" {
		v.Kind = defaults.Kind
	}
	if v.Spot == nil {
		v.Spot = defaults.Spot
	}
	if v.Strike == nil {
		v.Strike = defaults.Strike
	}
	if v.Rate == nil {
		v.Rate = defaults.Rate
	}
	if v.Maturity == nil {
		v.Maturity = defaults.Maturity
	}
	if v.Volatility == nil {
		v.Volatility = defaults.Volatility
	}
	if v.Steps == nil {
		v.Steps = defaults.Steps
	}
	return v
}

func (v Values) params() (lattice.Params, error) {
	for name, ptr := range map[string]*float64{
		"spot":       v.Spot,
		"strike":     v.Strike,
		"maturity":   v.Maturity,
		"volatility": v.Volatility,
	} {
		if ptr == nil {
			return lattice.Params{}, errors.Wrapf(lattice.ErrInvalidParameter, "missing %s", name)
		}
	}
	if v.Steps == nil {
		return lattice.Params{}, errors.Wrap(lattice.ErrInvalidParameter, "missing steps")
	}
	kind, err := lattice.ParseKind(v.Kind)
	if err != nil {
		return lattice.Params{}, err
	}
	p := lattice.Params{
		Spot:       *v.Spot,
		Strike:     *v.Strike,
		Maturity:   *v.Maturity,
		Volatility: *v.Volatility,
		Steps:      *v.Steps,
		Kind:       kind,
	}
	if v.Rate != nil {
		p.Rate = *v.Rate
	}
	return p, p.Validate()
}

// Params merges the defaults into every scenario and validates them.
// Scenario names must be set and unique.
func (f *File) Params() ([]Named, error) {
	named := make([]Named, 0, len(f.Scenarios))
	seen := make(map[string]struct{}, len(f.Scenarios))
	for i, s := range f.Scenarios {
		if s.Name == "" {
			return nil, errors.Errorf("scenario %d: empty name", i)
		}
		if _, ok := seen[s.Name]; ok {
			return nil, errors.Errorf("scenario %q: duplicated name", s.Name)
		}
		seen[s.Name] = struct{}{}
		p, err := s.merge(f.Defaults).params()
		if err != nil {
			return nil, errors.Wrapf(err, "scenario %q", s.Name)
		}
		named = append(named, Named{Name: s.Name, Params: p})
	}
	return named, nil
}

func float(f float64) *float64 { return &f }

func integer(i int) *int { return &i }

// Example is the file written by GenerateFile.
func Example() *File {
	return &File{
		Defaults: Values{
			Kind:       string(lattice.Call),
			Rate:       float(0.05),
			Maturity:   float(1),
			Volatility: float(0.2),
			Steps:      integer(100),
		},
		Scenarios: []Scenario{
			{Name: "otm-call", Values: Values{Spot: float(100), Strike: float(105)}},
			{Name: "atm-call", Values: Values{Spot: float(100), Strike: float(100)}},
			{Name: "atm-put", Values: Values{Kind: string(lattice.Put), Spot: float(100), Strike: float(100)}},
			{Name: "short-dated", Values: Values{Spot: float(100), Strike: float(95), Maturity: float(0.1), Steps: integer(500)}},
		},
	}
}

func GenerateFile(path string) error {
	b, err := yaml.Marshal(Example())
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, b, 0644)
}
