package domain

// Locality identifies a place as a (region, district) pair. Regions partition
// districts: a district belongs to exactly one region.
type Locality struct {
	Region   string
	District string
}

// Zero reports whether the locality is unset.
func (l Locality) Zero() bool { return l.Region == "" && l.District == "" }

// SameRegion reports whether two localities share a region ("within city"
// in pricing terms).
func (l Locality) SameRegion(other Locality) bool { return l.Region == other.Region }

// LocalityTable is the static coverage reference data, loaded once per
// process and treated as immutable.
type LocalityTable []Locality

// Regions returns the deduplicated list of regions in table order.
func (t LocalityTable) Regions() []string {
	seen := make(map[string]struct{}, len(t))
	out := make([]string, 0, len(t))
	for _, l := range t {
		if _, ok := seen[l.Region]; ok {
			continue
		}
		seen[l.Region] = struct{}{}
		out = append(out, l.Region)
	}
	return out
}

// DistrictsInRegion returns the deduplicated districts of one region,
// preserving table order.
func (t LocalityTable) DistrictsInRegion(region string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, l := range t {
		if l.Region != region {
			continue
		}
		if _, ok := seen[l.District]; ok {
			continue
		}
		seen[l.District] = struct{}{}
		out = append(out, l.District)
	}
	return out
}

// HasRegion reports whether the region appears in the table.
func (t LocalityTable) HasRegion(region string) bool {
	for _, l := range t {
		if l.Region == region {
			return true
		}
	}
	return false
}

// Contains reports whether the exact (region, district) pair appears in the table.
func (t LocalityTable) Contains(loc Locality) bool {
	for _, l := range t {
		if l == loc {
			return true
		}
	}
	return false
}
