package earnings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"profast-parcel-service/internal/domain"
)

// Policy sets the rider's cut of a delivered parcel's cost. A delivery that
// stays inside the sender's district pays the lower rate; anything that
// leaves it pays the higher one.
type Policy struct {
	SameDistrictPct  int64 `yaml:"same_district_pct"`
	CrossDistrictPct int64 `yaml:"cross_district_pct"`
}

// DefaultPolicy returns the launch commission rates.
func DefaultPolicy() Policy {
	return Policy{SameDistrictPct: 30, CrossDistrictPct: 60}
}

// LoadPolicy reads a commission policy from a YAML file, falling back to the
// defaults when the file does not exist.
func LoadPolicy(path string) (Policy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPolicy(), nil
		}
		return Policy{}, fmt.Errorf("read earnings policy %q: %w", path, err)
	}

	p := DefaultPolicy()
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Policy{}, fmt.Errorf("parse earnings policy %q: %w", path, err)
	}
	if p.SameDistrictPct < 0 || p.SameDistrictPct > 100 ||
		p.CrossDistrictPct < 0 || p.CrossDistrictPct > 100 {
		return Policy{}, fmt.Errorf("earnings policy %q: percentages must be within 0..100", path)
	}
	return p, nil
}

// Amount returns the rider's earning for one delivered parcel in cents,
// rounded down.
func (p Policy) Amount(parcel *domain.Parcel) int64 {
	pct := p.CrossDistrictPct
	if parcel.SenderLocality.District == parcel.ReceiverLocality.District {
		pct = p.SameDistrictPct
	}
	return parcel.CostCents * pct / 100
}
