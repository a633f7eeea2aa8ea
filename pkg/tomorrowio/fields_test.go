package tomorrowio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogCoversAllCategories(t *testing.T) {
	assert := assert.New(t)

	assert.GreaterOrEqual(len(fieldCatalog), 40)

	seen := make(map[FieldCategory]int)
	for _, def := range fieldCatalog {
		seen[def.Category]++
	}
	for _, category := range []FieldCategory{
		CategoryWeather,
		CategoryPollen,
		CategoryAirQuality,
		CategoryFire,
		CategorySolar,
		CategoryPrecipitation,
	} {
		assert.Greaterf(seen[category], 0, "no fields in category %s", category)
	}
}

func TestCatalogDefinitionsAreWellFormed(t *testing.T) {
	assert := assert.New(t)

	validSuffixes := map[string]struct{}{
		MeasurementMin: {},
		MeasurementMax: {},
		MeasurementAvg: {},
	}
	for name, def := range fieldCatalog {
		assert.Truef(isValidResolution(def.MaxResolution),
			"field %s has max resolution %s outside the fixed set", name, def.MaxResolution)

		assert.LessOrEqualf(len(def.Measurements), 3, "field %s has too many measurement suffixes", name)
		unique := make(map[string]struct{})
		for _, suffix := range def.Measurements {
			_, known := validSuffixes[suffix]
			assert.Truef(known, "field %s has unknown measurement suffix %q", name, suffix)
			unique[suffix] = struct{}{}
		}
		assert.Lenf(unique, len(def.Measurements), "field %s repeats a measurement suffix", name)
	}
}

func TestFieldLookup(t *testing.T) {
	assert := assert.New(t)

	def, ok := Field("temperature")
	assert.True(ok)
	assert.Equal(CategoryWeather, def.Category)
	assert.Equal(ResolutionDaily, def.MaxResolution)

	_, ok = Field("temperatureMax")
	assert.False(ok, "expanded names are not catalog entries")
}
