package parameters

import (
	"sepsis-service/internal/pkg/dto/responses"
	"sort"
	"time"
)

// Bag is the fully-resolved set of parameters one scoring request works
// with. It is assembled once by the resolver (or the direct-mode mapper)
// and read-only afterwards.
type Bag struct {
	values       map[Name]ClinicalParameter
	Vasopressors VasopressorDoses
}

func NewBag() *Bag {
	return &Bag{values: make(map[Name]ClinicalParameter)}
}

func (b *Bag) Set(name Name, parameter ClinicalParameter) {
	b.values[name] = parameter
}

func (b *Bag) Get(name Name) (ClinicalParameter, bool) {
	parameter, ok := b.values[name]
	return parameter, ok
}

func (b *Bag) Has(name Name) bool {
	_, ok := b.values[name]
	return ok
}

// Value returns the numeric value for a name; ok is false when the
// parameter is absent or has no value.
func (b *Bag) Value(name Name) (float64, bool) {
	parameter, ok := b.values[name]
	if !ok || parameter.Value == nil {
		return 0, false
	}
	return *parameter.Value, true
}

// Bool reads a flag parameter; absent flags are false.
func (b *Bag) Bool(name Name) bool {
	value, ok := b.Value(name)
	return ok && value > 0.5
}

// EstimatedCount counts how many of the given parameters were
// substituted (last known or default).
func (b *Bag) EstimatedCount(names []Name) int {
	count := 0
	for _, name := range names {
		if parameter, ok := b.values[name]; ok && parameter.IsEstimated {
			count++
		}
	}
	return count
}

// Missing lists the given parameters for which no real data was found,
// i.e. those that fell all the way through to the clinical default.
func (b *Bag) Missing(names []Name) []string {
	missing := make([]string, 0)
	for _, name := range names {
		parameter, ok := b.values[name]
		if !ok || parameter.Provenance == ProvenanceDefault {
			missing = append(missing, string(name))
		}
	}
	return missing
}

// Names returns every held parameter name, sorted for deterministic
// iteration.
func (b *Bag) Names() []Name {
	names := make([]Name, 0, len(b.values))
	for name := range b.values {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// LastUpdate returns the newest timestamp among all held parameters.
func (b *Bag) LastUpdate() *time.Time {
	var latest *time.Time
	for _, parameter := range b.values {
		if parameter.Timestamp == nil {
			continue
		}
		if latest == nil || parameter.Timestamp.After(*latest) {
			timestamp := *parameter.Timestamp
			latest = &timestamp
		}
	}
	return latest
}

// Merge copies every parameter of other into the bag, keeping existing
// entries. Used by the reuse bridge to layer sibling bags.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	for name, parameter := range other.values {
		if _, exists := b.values[name]; !exists {
			b.values[name] = parameter
		}
	}
	if !b.Vasopressors.HasAny() && other.Vasopressors.HasAny() {
		b.Vasopressors = other.Vasopressors
	}
}

// Snapshot renders the bag for the include-raw-parameters response flag.
func (b *Bag) Snapshot() map[string]responses.RawParameterDTO {
	snapshot := make(map[string]responses.RawParameterDTO, len(b.values))
	for name, parameter := range b.values {
		snapshot[string(name)] = responses.RawParameterDTO{
			Value:       parameter.Value,
			Unit:        parameter.Unit,
			Timestamp:   parameter.Timestamp,
			Provenance:  string(parameter.Provenance),
			IsEstimated: parameter.IsEstimated,
		}
	}
	return snapshot
}
