package pricing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RateCard is the operator-editable price list. All amounts are integer cents
// so quotes never accumulate float error.
type RateCard struct {
	Currency string `yaml:"currency"`

	Document struct {
		WithinCityCents  int64 `yaml:"within_city_cents"`
		OutsideCityCents int64 `yaml:"outside_city_cents"`
	} `yaml:"document"`

	NonDocument struct {
		BaseWithinCityCents       int64   `yaml:"base_within_city_cents"`
		BaseOutsideCityCents      int64   `yaml:"base_outside_city_cents"`
		IncludedWeightKg          float64 `yaml:"included_weight_kg"`
		ExtraPerKgCents           int64   `yaml:"extra_per_kg_cents"`
		OutsideCitySurchargeCents int64   `yaml:"outside_city_surcharge_cents"`
	} `yaml:"non_document"`
}

// DefaultRateCard returns the launch price list.
func DefaultRateCard() RateCard {
	var rc RateCard
	rc.Currency = "usd"
	rc.Document.WithinCityCents = 6000
	rc.Document.OutsideCityCents = 8000
	rc.NonDocument.BaseWithinCityCents = 11000
	rc.NonDocument.BaseOutsideCityCents = 15000
	rc.NonDocument.IncludedWeightKg = 3
	rc.NonDocument.ExtraPerKgCents = 4000
	rc.NonDocument.OutsideCitySurchargeCents = 4000
	return rc
}

// LoadRateCard reads a rate card from a YAML file. A missing file falls back
// to the defaults so a bare checkout still prices parcels.
func LoadRateCard(path string) (RateCard, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultRateCard(), nil
		}
		return RateCard{}, fmt.Errorf("read rate card %q: %w", path, err)
	}

	rc := DefaultRateCard()
	if err := yaml.Unmarshal(raw, &rc); err != nil {
		return RateCard{}, fmt.Errorf("parse rate card %q: %w", path, err)
	}
	if err := rc.validate(); err != nil {
		return RateCard{}, fmt.Errorf("rate card %q: %w", path, err)
	}
	return rc, nil
}

func (rc RateCard) validate() error {
	if rc.Document.WithinCityCents <= 0 || rc.Document.OutsideCityCents <= 0 {
		return fmt.Errorf("document rates must be positive")
	}
	if rc.NonDocument.BaseWithinCityCents <= 0 || rc.NonDocument.BaseOutsideCityCents <= 0 {
		return fmt.Errorf("non-document base rates must be positive")
	}
	if rc.NonDocument.IncludedWeightKg <= 0 {
		return fmt.Errorf("included weight must be positive")
	}
	if rc.NonDocument.ExtraPerKgCents < 0 || rc.NonDocument.OutsideCitySurchargeCents < 0 {
		return fmt.Errorf("extra weight rates must not be negative")
	}
	return nil
}
