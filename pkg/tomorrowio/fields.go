package tomorrowio

import "time"

// FieldCategory classifies catalog fields for caller-facing filtering.
type FieldCategory string

const (
	CategoryWeather       FieldCategory = "weather"
	CategoryPollen        FieldCategory = "pollen"
	CategoryAirQuality    FieldCategory = "air_quality"
	CategoryFire          FieldCategory = "fire"
	CategorySolar         FieldCategory = "solar"
	CategoryPrecipitation FieldCategory = "precipitation"
)

// Measurement suffixes appended to a field name when the field reports more
// than one sub-measurement per interval.
const (
	MeasurementMin = "Min"
	MeasurementMax = "Max"
	MeasurementAvg = "Avg"
)

var (
	allMeasurements = []string{MeasurementMin, MeasurementMax, MeasurementAvg}
	minMax          = []string{MeasurementMin, MeasurementMax}
)

// FieldDefinition describes one queryable field.
//
// MaxResolution is the coarsest interval width at which the field is still
// obtainable; a field is eligible for a request when its MaxResolution is
// coarser than or equal to the requested resolution. Measurements lists the
// suffixes expanded by ConvertFieldsToMeasurements when two or more apply.
type FieldDefinition struct {
	MaxResolution time.Duration
	Measurements  []string
	Category      FieldCategory
}

// Field returns the catalog definition for a field name.
func Field(name string) (FieldDefinition, bool) {
	def, ok := fieldCatalog[name]
	return def, ok
}

var fieldCatalog = map[string]FieldDefinition{
	"temperature": {
		MaxResolution: ResolutionDaily,
		Measurements:  allMeasurements,
		Category:      CategoryWeather,
	},
	"temperatureApparent": {
		MaxResolution: ResolutionDaily,
		Measurements:  allMeasurements,
		Category:      CategoryWeather,
	},
	"dewPoint": {
		MaxResolution: ResolutionDaily,
		Measurements:  allMeasurements,
		Category:      CategoryWeather,
	},
	"humidity": {
		MaxResolution: ResolutionDaily,
		Measurements:  allMeasurements,
		Category:      CategoryWeather,
	},
	"windSpeed": {
		MaxResolution: ResolutionDaily,
		Measurements:  allMeasurements,
		Category:      CategoryWeather,
	},
	"windDirection": {
		MaxResolution: ResolutionDaily,
		Measurements:  []string{MeasurementAvg},
		Category:      CategoryWeather,
	},
	"windGust": {
		MaxResolution: ResolutionDaily,
		Measurements:  allMeasurements,
		Category:      CategoryWeather,
	},
	"pressureSurfaceLevel": {
		MaxResolution: ResolutionDaily,
		Measurements:  allMeasurements,
		Category:      CategoryWeather,
	},
	"pressureSeaLevel": {
		MaxResolution: ResolutionDaily,
		Measurements:  allMeasurements,
		Category:      CategoryWeather,
	},
	"visibility": {
		MaxResolution: ResolutionDaily,
		Measurements:  allMeasurements,
		Category:      CategoryWeather,
	},
	"cloudCover": {
		MaxResolution: ResolutionDaily,
		Measurements:  allMeasurements,
		Category:      CategoryWeather,
	},
	"cloudBase": {
		MaxResolution: ResolutionDaily,
		Measurements:  allMeasurements,
		Category:      CategoryWeather,
	},
	"cloudCeiling": {
		MaxResolution: ResolutionDaily,
		Measurements:  allMeasurements,
		Category:      CategoryWeather,
	},
	"weatherCode": {
		MaxResolution: ResolutionDaily,
		Measurements:  minMax,
		Category:      CategoryWeather,
	},
	"uvIndex": {
		MaxResolution: ResolutionHourly,
		Measurements:  allMeasurements,
		Category:      CategoryWeather,
	},
	"uvHealthConcern": {
		MaxResolution: ResolutionHourly,
		Measurements:  allMeasurements,
		Category:      CategoryWeather,
	},
	"evapotranspiration": {
		MaxResolution: ResolutionDaily,
		Measurements:  allMeasurements,
		Category:      CategoryWeather,
	},
	"moonPhase": {
		MaxResolution: ResolutionDaily,
		Measurements:  nil,
		Category:      CategoryWeather,
	},
	"sunriseTime": {
		MaxResolution: ResolutionDaily,
		Measurements:  nil,
		Category:      CategoryWeather,
	},
	"sunsetTime": {
		MaxResolution: ResolutionDaily,
		Measurements:  nil,
		Category:      CategoryWeather,
	},
	"precipitationIntensity": {
		MaxResolution: ResolutionDaily,
		Measurements:  allMeasurements,
		Category:      CategoryPrecipitation,
	},
	"precipitationProbability": {
		MaxResolution: ResolutionDaily,
		Measurements:  allMeasurements,
		Category:      CategoryPrecipitation,
	},
	"precipitationType": {
		MaxResolution: ResolutionHourly,
		Measurements:  nil,
		Category:      CategoryPrecipitation,
	},
	"snowAccumulation": {
		MaxResolution: ResolutionHourly,
		Measurements:  allMeasurements,
		Category:      CategoryPrecipitation,
	},
	"iceAccumulation": {
		MaxResolution: ResolutionHourly,
		Measurements:  allMeasurements,
		Category:      CategoryPrecipitation,
	},
	"hailBinary": {
		MaxResolution: ResolutionCurrent,
		Measurements:  nil,
		Category:      CategoryPrecipitation,
	},
	"solarGHI": {
		MaxResolution: ResolutionDaily,
		Measurements:  allMeasurements,
		Category:      CategorySolar,
	},
	"solarDNI": {
		MaxResolution: ResolutionDaily,
		Measurements:  allMeasurements,
		Category:      CategorySolar,
	},
	"solarDHI": {
		MaxResolution: ResolutionDaily,
		Measurements:  allMeasurements,
		Category:      CategorySolar,
	},
	"particulateMatter25": {
		MaxResolution: ResolutionHourly,
		Measurements:  allMeasurements,
		Category:      CategoryAirQuality,
	},
	"particulateMatter10": {
		MaxResolution: ResolutionHourly,
		Measurements:  allMeasurements,
		Category:      CategoryAirQuality,
	},
	"pollutantO3": {
		MaxResolution: ResolutionHourly,
		Measurements:  allMeasurements,
		Category:      CategoryAirQuality,
	},
	"pollutantNO2": {
		MaxResolution: ResolutionHourly,
		Measurements:  allMeasurements,
		Category:      CategoryAirQuality,
	},
	"pollutantCO": {
		MaxResolution: ResolutionHourly,
		Measurements:  allMeasurements,
		Category:      CategoryAirQuality,
	},
	"pollutantSO2": {
		MaxResolution: ResolutionHourly,
		Measurements:  allMeasurements,
		Category:      CategoryAirQuality,
	},
	"mepIndex": {
		MaxResolution: ResolutionHourly,
		Measurements:  allMeasurements,
		Category:      CategoryAirQuality,
	},
	"mepPrimaryPollutant": {
		MaxResolution: ResolutionHourly,
		Measurements:  nil,
		Category:      CategoryAirQuality,
	},
	"mepHealthConcern": {
		MaxResolution: ResolutionHourly,
		Measurements:  allMeasurements,
		Category:      CategoryAirQuality,
	},
	"epaIndex": {
		MaxResolution: ResolutionHourly,
		Measurements:  allMeasurements,
		Category:      CategoryAirQuality,
	},
	"epaPrimaryPollutant": {
		MaxResolution: ResolutionHourly,
		Measurements:  nil,
		Category:      CategoryAirQuality,
	},
	"epaHealthConcern": {
		MaxResolution: ResolutionHourly,
		Measurements:  allMeasurements,
		Category:      CategoryAirQuality,
	},
	"treeIndex": {
		MaxResolution: ResolutionHourly,
		Measurements:  allMeasurements,
		Category:      CategoryPollen,
	},
	"grassIndex": {
		MaxResolution: ResolutionHourly,
		Measurements:  allMeasurements,
		Category:      CategoryPollen,
	},
	"grassGrassIndex": {
		MaxResolution: ResolutionHourly,
		Measurements:  allMeasurements,
		Category:      CategoryPollen,
	},
	"weedIndex": {
		MaxResolution: ResolutionHourly,
		Measurements:  allMeasurements,
		Category:      CategoryPollen,
	},
	"weedRagweedIndex": {
		MaxResolution: ResolutionHourly,
		Measurements:  allMeasurements,
		Category:      CategoryPollen,
	},
	"fireIndex": {
		MaxResolution: ResolutionCurrent,
		Measurements:  allMeasurements,
		Category:      CategoryFire,
	},
}
