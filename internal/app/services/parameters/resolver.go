package parameters

import (
	"context"
	"fmt"
	"sepsis-service/internal/app/config"
	"sepsis-service/internal/app/contracts"
	"sepsis-service/internal/pkg/constvars"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const lastKnownCacheKeyFormat = "last_known_parameter:%s:%s"

type lastKnownCacheEntry struct {
	Value     float64   `json:"value"`
	Unit      string    `json:"unit"`
	Timestamp time.Time `json:"timestamp"`
}

// Resolver runs the collection fan-out and the fallback chain. Whatever
// happens upstream, Resolve returns a bag holding every requested
// parameter: measured, last known, or clinical default.
type Resolver struct {
	Collector       *Collector
	RedisRepository contracts.RedisRepository
	Scoring         config.Scoring
	Log             *zap.Logger
}

func NewResolver(collector *Collector, redisRepository contracts.RedisRepository, scoring config.Scoring, log *zap.Logger) *Resolver {
	return &Resolver{
		Collector:       collector,
		RedisRepository: redisRepository,
		Scoring:         scoring,
		Log:             log,
	}
}

type groupResult struct {
	group  Group
	values map[Name]ClinicalParameter
	doses  VasopressorDoses
	failed bool
}

// Resolve collects every group concurrently, applies the fallback chain
// to the stragglers and derives calculated values. Groups whose fetch
// failed go straight to defaults.
func (r *Resolver) Resolve(ctx context.Context, patientID string, groups []Group, at time.Time) *Bag {
	results := make(chan groupResult, len(groups))

	var wg sync.WaitGroup
	for _, group := range groups {
		wg.Add(1)
		go func(group Group) {
			defer wg.Done()
			results <- r.collectGroup(ctx, patientID, group, at)
		}(group)
	}
	wg.Wait()
	close(results)

	bag := NewBag()
	failedNames := make(map[Name]bool)
	for result := range results {
		for name, parameter := range result.values {
			bag.Set(name, parameter)
		}
		if result.doses.HasAny() {
			bag.Vasopressors = result.doses
		}
		if result.failed {
			for _, name := range result.group.Parameters {
				failedNames[name] = true
			}
		}
	}

	for _, group := range groups {
		for _, name := range group.Parameters {
			if bag.Has(name) {
				continue
			}
			bag.Set(name, r.fallback(ctx, patientID, name, at, failedNames[name]))
		}
	}

	Derive(bag)
	r.cacheMeasured(ctx, patientID, bag)

	return bag
}

func (r *Resolver) collectGroup(ctx context.Context, patientID string, group Group, at time.Time) groupResult {
	result := groupResult{group: group, values: make(map[Name]ClinicalParameter)}

	for _, name := range group.Parameters {
		definition, ok := Lookup(name)
		if !ok {
			continue
		}

		var (
			parameter ClinicalParameter
			found     bool
			err       error
		)
		windowStart := at.Add(-r.windowFor(definition.Window))
		switch definition.Source {
		case SourceObservation:
			parameter, found, err = r.Collector.CollectObservation(ctx, patientID, name, windowStart, at)
		case SourceProcedure:
			parameter, found, err = r.Collector.CollectProcedureFlag(ctx, patientID, name, windowStart, at)
		case SourceAsserted:
			continue
		}
		if err != nil {
			r.Log.Warn("parameter group fetch degraded to defaults",
				zap.String(constvars.LoggingPatientIDKey, patientID),
				zap.String(constvars.LoggingGroupKey, group.Name),
				zap.String(constvars.LoggingParameterKey, string(name)),
				zap.Error(err),
			)
			result.failed = true
			return result
		}
		if found {
			result.values[name] = parameter
		}
	}

	if group.Vasopressors {
		windowStart := at.Add(-r.windowFor(WindowVital))
		doses, err := r.Collector.CollectVasopressors(ctx, patientID, windowStart, at)
		if err != nil {
			r.Log.Warn("vasopressor fetch failed, assuming none active",
				zap.String(constvars.LoggingPatientIDKey, patientID),
				zap.String(constvars.LoggingGroupKey, group.Name),
				zap.Error(err),
			)
		} else {
			result.doses = doses
		}
	}

	return result
}

// fallback applies the chain for one unresolved parameter: last-known
// cache, then a wider FHIR window, then the clinical default. Groups
// whose fetch already failed skip straight to the default.
func (r *Resolver) fallback(ctx context.Context, patientID string, name Name, at time.Time, groupFailed bool) ClinicalParameter {
	definition, ok := Lookup(name)
	if !ok {
		return NewDefault(0, "")
	}

	if !groupFailed && definition.Source == SourceObservation {
		if parameter, found := r.lastKnownFromCache(ctx, patientID, name, at); found {
			return parameter
		}
		if parameter, found := r.lastKnownFromSource(ctx, patientID, name, definition, at); found {
			return parameter
		}
	}

	parameter, _ := DefaultFor(name)
	return parameter
}

func (r *Resolver) lastKnownFromCache(ctx context.Context, patientID string, name Name, at time.Time) (ClinicalParameter, bool) {
	key := fmt.Sprintf(lastKnownCacheKeyFormat, patientID, name)
	data, err := r.RedisRepository.Get(ctx, key)
	if err != nil || data == "" {
		return ClinicalParameter{}, false
	}

	var entry lastKnownCacheEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return ClinicalParameter{}, false
	}
	if at.Sub(entry.Timestamp) > r.lastKnownWindow() {
		return ClinicalParameter{}, false
	}

	return NewLastKnown(entry.Value, entry.Unit, entry.Timestamp), true
}

func (r *Resolver) lastKnownFromSource(ctx context.Context, patientID string, name Name, definition Definition, at time.Time) (ClinicalParameter, bool) {
	// The wider lookup only helps when the primary window was narrower.
	if r.windowFor(definition.Window) >= r.lastKnownWindow() {
		return ClinicalParameter{}, false
	}

	windowStart := at.Add(-r.lastKnownWindow())
	parameter, found, err := r.Collector.CollectObservation(ctx, patientID, name, windowStart, at)
	if err != nil || !found {
		return ClinicalParameter{}, false
	}

	timestamp := at
	if parameter.Timestamp != nil {
		timestamp = *parameter.Timestamp
	}
	value := 0.0
	if parameter.Value != nil {
		value = *parameter.Value
	}
	return NewLastKnown(value, parameter.Unit, timestamp), true
}

// Derive computes MAP and the PaO2/FiO2 ratio when their inputs are
// available and the value is not already present. Also used by the
// direct-parameter mode, which bypasses the resolver.
func Derive(bag *Bag) {
	if parameter, ok := bag.Get(ParamMeanArterialPressure); !ok || parameter.Provenance == ProvenanceDefault {
		systolic, haveSystolic := bag.Value(ParamSystolicBP)
		diastolic, haveDiastolic := bag.Value(ParamDiastolicBP)
		if haveSystolic && haveDiastolic {
			bag.Set(ParamMeanArterialPressure, NewCalculated((systolic+2*diastolic)/3, "mmHg"))
		}
	}

	if parameter, ok := bag.Get(ParamPaO2FiO2Ratio); !ok || parameter.Provenance == ProvenanceDefault {
		pao2, havePaO2 := bag.Value(ParamPaO2)
		if havePaO2 {
			fio2, haveFiO2 := bag.Value(ParamFiO2)
			if !haveFiO2 || fio2 <= 0 {
				// Room air when FiO2 is unknown.
				fio2 = 0.21
			}
			bag.Set(ParamPaO2FiO2Ratio, NewCalculated(pao2/fio2, "mmHg"))
		}
	}
}

// cacheMeasured stores freshly measured values so later requests can use
// them as last-known fallbacks. Best effort.
func (r *Resolver) cacheMeasured(ctx context.Context, patientID string, bag *Bag) {
	for name, parameter := range bag.values {
		if parameter.Provenance != ProvenanceMeasured || parameter.Value == nil || parameter.Timestamp == nil {
			continue
		}
		key := fmt.Sprintf(lastKnownCacheKeyFormat, patientID, name)
		entry := lastKnownCacheEntry{
			Value:     *parameter.Value,
			Unit:      parameter.Unit,
			Timestamp: *parameter.Timestamp,
		}
		err := r.RedisRepository.Set(ctx, key, entry, time.Duration(r.Scoring.LastKnownCacheTTLHours)*time.Hour)
		if err != nil {
			r.Log.Warn("failed to cache last-known parameter",
				zap.String(constvars.LoggingPatientIDKey, patientID),
				zap.String(constvars.LoggingParameterKey, string(name)),
				zap.Error(err),
			)
		}
	}
}

func (r *Resolver) windowFor(kind WindowKind) time.Duration {
	switch kind {
	case WindowLab:
		return time.Duration(r.Scoring.LabLookbackHours) * time.Hour
	default:
		return time.Duration(r.Scoring.VitalLookbackHours) * time.Hour
	}
}

func (r *Resolver) lastKnownWindow() time.Duration {
	return time.Duration(r.Scoring.LastKnownLookbackHours) * time.Hour
}
