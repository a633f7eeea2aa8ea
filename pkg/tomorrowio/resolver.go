package tomorrowio

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// AvailableFields returns every catalog field eligible at the given
// resolution, sorted by name. When categories are supplied, only fields in
// one of them are returned. A resolution outside the provider's fixed set is
// a programmer error and yields an InvalidResolutionError.
func AvailableFields(resolution time.Duration, categories []FieldCategory) ([]string, error) {
	if !isValidResolution(resolution) {
		return nil, &InvalidResolutionError{Resolution: resolution}
	}
	wanted := make(map[FieldCategory]struct{}, len(categories))
	for _, c := range categories {
		wanted[c] = struct{}{}
	}
	var names []string
	for name, def := range fieldCatalog {
		if def.MaxResolution < resolution {
			continue
		}
		if len(wanted) > 0 {
			if _, ok := wanted[def.Category]; !ok {
				continue
			}
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ConvertFieldsToMeasurements expands each field carrying two or more
// measurement suffixes into one derived name per suffix, in catalog order.
// Fields with fewer than two suffixes, and names absent from the catalog
// (including already-expanded ones), pass through unchanged, which makes the
// expansion a no-op on its own output.
func ConvertFieldsToMeasurements(fields []string) []string {
	expanded := make([]string, 0, len(fields))
	for _, name := range fields {
		def, ok := fieldCatalog[name]
		if !ok || len(def.Measurements) < 2 {
			expanded = append(expanded, name)
			continue
		}
		for _, suffix := range def.Measurements {
			expanded = append(expanded, name+suffix)
		}
	}
	return expanded
}

// filterByResolution retains the fields eligible at the given resolution.
// Unknown names and fields whose coarsest supported resolution is finer than
// the request are dropped and reported as log diagnostics, never as errors;
// only a resolution outside the fixed set fails.
func (c *Client) filterByResolution(fields []string, resolution time.Duration) ([]string, error) {
	if !isValidResolution(resolution) {
		return nil, &InvalidResolutionError{Resolution: resolution}
	}
	eligible := make([]string, 0, len(fields))
	var unknown, unsupported []string
	for _, name := range fields {
		def, ok := fieldCatalog[name]
		switch {
		case !ok:
			unknown = append(unknown, name)
		case def.MaxResolution < resolution:
			unsupported = append(unsupported, name)
		default:
			eligible = append(eligible, name)
		}
	}
	if len(unknown) > 0 {
		c.logger.Warn("Removed invalid fields",
			zap.Strings("fields", unknown))
	}
	if len(unsupported) > 0 {
		c.logger.Warn("Removed fields not available for requested resolution",
			zap.Strings("fields", unsupported),
			zap.Duration("resolution", resolution))
	}
	return eligible, nil
}
