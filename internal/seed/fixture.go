package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var defaultFixture []byte

type IssuerSpec struct {
	Name       string `yaml:"name"`
	MaxRateBps int    `yaml:"max_rate_bps"`
}

type ObligorSpec struct {
	Name string `yaml:"name"`
}

type RateSpec struct {
	Issuer        string `yaml:"issuer"`
	AnnualRateBps int    `yaml:"annual_rate_bps"`
}

type FinancierSpec struct {
	Name        string     `yaml:"name"`
	MinTermDays int        `yaml:"min_term_days"`
	Rates       []RateSpec `yaml:"rates"`
}

type InvoiceSpec struct {
	Issuer         string `yaml:"issuer"`
	Obligor        string `yaml:"obligor"`
	FaceValueCents int64  `yaml:"face_value_cents"`
	MaturityInDays int    `yaml:"maturity_in_days"`
}

// Fixture is master data plus demo invoices, referenced by name.
type Fixture struct {
	Issuers    []IssuerSpec    `yaml:"issuers"`
	Obligors   []ObligorSpec   `yaml:"obligors"`
	Financiers []FinancierSpec `yaml:"financiers"`
	Invoices   []InvoiceSpec   `yaml:"invoices"`
}

// Default returns the embedded demo fixture.
func Default() *Fixture {
	f, err := Load(defaultFixture)
	if err != nil {
		panic(fmt.Sprintf("seed: embedded fixture is invalid: %v", err))
	}
	return f
}

func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func Load(data []byte) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks names are unique and every reference resolves inside the fixture.
func (f *Fixture) Validate() error {
	var errs []error
	issuers := map[string]bool{}
	for _, i := range f.Issuers {
		if issuers[i.Name] {
			errs = append(errs, fmt.Errorf("duplicate issuer %q", i.Name))
		}
		issuers[i.Name] = true
	}
	obligors := map[string]bool{}
	for _, o := range f.Obligors {
		if obligors[o.Name] {
			errs = append(errs, fmt.Errorf("duplicate obligor %q", o.Name))
		}
		obligors[o.Name] = true
	}
	financiers := map[string]bool{}
	for _, fin := range f.Financiers {
		if financiers[fin.Name] {
			errs = append(errs, fmt.Errorf("duplicate financier %q", fin.Name))
		}
		financiers[fin.Name] = true
		for _, r := range fin.Rates {
			if !issuers[r.Issuer] {
				errs = append(errs, fmt.Errorf("financier %q: unknown issuer %q", fin.Name, r.Issuer))
			}
		}
	}
	for n, inv := range f.Invoices {
		if !issuers[inv.Issuer] {
			errs = append(errs, fmt.Errorf("invoice #%d: unknown issuer %q", n+1, inv.Issuer))
		}
		if !obligors[inv.Obligor] {
			errs = append(errs, fmt.Errorf("invoice #%d: unknown obligor %q", n+1, inv.Obligor))
		}
	}
	return errors.Join(errs...)
}
