// Package adapt reshapes decoded fit.FitDataRecord values into plain maps
// for callers that want field-number or field-name keyed lookup instead of
// FitDataRecord's ordered field slice. These reshaping functions are
// explicitly not part of the core decoder (spec.md §9) — they mirror
// original_source/src/lib.rs's four into_*_mapping methods, kept here as
// free functions rather than methods since the core Value/FitDataRecord
// types carry no adapter-specific behavior of their own.
package adapt

import "github.com/ridgeway-telemetry/fitdecode"

// ValueWithUnits pairs a decoded value with its profile-resolved unit
// string, for the "with units" mapping variants.
type ValueWithUnits struct {
	Value fit.Value
	Units string
}

// ToNumberKeyedPlain maps each field in rec by its definition number,
// discarding units. Later fields win on a number collision.
func ToNumberKeyedPlain(rec *fit.FitDataRecord) map[uint8]fit.Value {
	out := make(map[uint8]fit.Value, len(rec.Fields))
	for _, f := range rec.Fields {
		out[f.Number] = f.Value
	}
	return out
}

// ToNumberKeyedWithUnits is ToNumberKeyedPlain, additionally carrying units.
func ToNumberKeyedWithUnits(rec *fit.FitDataRecord) map[uint8]ValueWithUnits {
	out := make(map[uint8]ValueWithUnits, len(rec.Fields))
	for _, f := range rec.Fields {
		out[f.Number] = ValueWithUnits{Value: f.Value, Units: f.Units}
	}
	return out
}

// ToNameKeyedPlain maps each field in rec by its profile-resolved name,
// discarding units.
func ToNameKeyedPlain(rec *fit.FitDataRecord) map[string]fit.Value {
	out := make(map[string]fit.Value, len(rec.Fields))
	for _, f := range rec.Fields {
		out[f.Name] = f.Value
	}
	return out
}

// ToNameKeyedWithUnits is ToNameKeyedPlain, additionally carrying units.
func ToNameKeyedWithUnits(rec *fit.FitDataRecord) map[string]ValueWithUnits {
	out := make(map[string]ValueWithUnits, len(rec.Fields))
	for _, f := range rec.Fields {
		out[f.Name] = ValueWithUnits{Value: f.Value, Units: f.Units}
	}
	return out
}
