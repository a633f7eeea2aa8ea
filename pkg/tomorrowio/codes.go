package tomorrowio

// Enumerated values the provider returns for code-valued fields such as
// weatherCode, precipitationType, and the pollen and air-quality indexes.

// WeatherCode is the condition code carried by the weatherCode field.
type WeatherCode int

const (
	WeatherUnknown           WeatherCode = 0
	WeatherClear             WeatherCode = 1000
	WeatherCloudy            WeatherCode = 1001
	WeatherMostlyClear       WeatherCode = 1100
	WeatherPartlyCloudy      WeatherCode = 1101
	WeatherMostlyCloudy      WeatherCode = 1102
	WeatherFog               WeatherCode = 2000
	WeatherLightFog          WeatherCode = 2100
	WeatherLightWind         WeatherCode = 3000
	WeatherWind              WeatherCode = 3001
	WeatherStrongWind        WeatherCode = 3002
	WeatherDrizzle           WeatherCode = 4000
	WeatherRain              WeatherCode = 4001
	WeatherLightRain         WeatherCode = 4200
	WeatherHeavyRain         WeatherCode = 4201
	WeatherSnow              WeatherCode = 5000
	WeatherFlurries          WeatherCode = 5001
	WeatherLightSnow         WeatherCode = 5100
	WeatherHeavySnow         WeatherCode = 5101
	WeatherFreezingDrizzle   WeatherCode = 6000
	WeatherFreezingRain      WeatherCode = 6001
	WeatherLightFreezingRain WeatherCode = 6200
	WeatherHeavyFreezingRain WeatherCode = 6201
	WeatherIcePellets        WeatherCode = 7000
	WeatherHeavyIcePellets   WeatherCode = 7101
	WeatherLightIcePellets   WeatherCode = 7102
	WeatherThunderstorm      WeatherCode = 8000
)

var weatherCodeDescriptions = map[WeatherCode]string{
	WeatherClear:             "Clear",
	WeatherCloudy:            "Cloudy",
	WeatherMostlyClear:       "Mostly clear",
	WeatherPartlyCloudy:      "Partly cloudy",
	WeatherMostlyCloudy:      "Mostly cloudy",
	WeatherFog:               "Fog",
	WeatherLightFog:          "Light fog",
	WeatherLightWind:         "Light wind",
	WeatherWind:              "Wind",
	WeatherStrongWind:        "Strong wind",
	WeatherDrizzle:           "Drizzle",
	WeatherRain:              "Rain",
	WeatherLightRain:         "Light rain",
	WeatherHeavyRain:         "Heavy rain",
	WeatherSnow:              "Snow",
	WeatherFlurries:          "Flurries",
	WeatherLightSnow:         "Light snow",
	WeatherHeavySnow:         "Heavy snow",
	WeatherFreezingDrizzle:   "Freezing drizzle",
	WeatherFreezingRain:      "Freezing rain",
	WeatherLightFreezingRain: "Light freezing rain",
	WeatherHeavyFreezingRain: "Heavy freezing rain",
	WeatherIcePellets:        "Ice pellets",
	WeatherHeavyIcePellets:   "Heavy ice pellets",
	WeatherLightIcePellets:   "Light ice pellets",
	WeatherThunderstorm:      "Thunderstorm",
}

func (c WeatherCode) String() string {
	if desc, ok := weatherCodeDescriptions[c]; ok {
		return desc
	}
	return "Unknown"
}

// PrecipitationType is carried by the precipitationType field.
type PrecipitationType int

const (
	PrecipitationNone PrecipitationType = iota
	PrecipitationRain
	PrecipitationSnow
	PrecipitationFreezingRain
	PrecipitationIcePellets
)

func (p PrecipitationType) String() string {
	switch p {
	case PrecipitationNone:
		return "None"
	case PrecipitationRain:
		return "Rain"
	case PrecipitationSnow:
		return "Snow"
	case PrecipitationFreezingRain:
		return "Freezing rain"
	case PrecipitationIcePellets:
		return "Ice pellets"
	default:
		return "Unknown"
	}
}

// PollenIndex is carried by the tree/grass/weed index fields.
type PollenIndex int

const (
	PollenNone PollenIndex = iota
	PollenVeryLow
	PollenLow
	PollenMedium
	PollenHigh
	PollenVeryHigh
)

func (p PollenIndex) String() string {
	switch p {
	case PollenNone:
		return "None"
	case PollenVeryLow:
		return "Very low"
	case PollenLow:
		return "Low"
	case PollenMedium:
		return "Medium"
	case PollenHigh:
		return "High"
	case PollenVeryHigh:
		return "Very high"
	default:
		return "Unknown"
	}
}

// PrimaryPollutant is carried by the mep/epa primary pollutant fields.
type PrimaryPollutant int

const (
	PollutantPM25 PrimaryPollutant = iota
	PollutantPM10
	PollutantO3
	PollutantNO2
	PollutantCO
	PollutantSO2
)

func (p PrimaryPollutant) String() string {
	switch p {
	case PollutantPM25:
		return "PM2.5"
	case PollutantPM10:
		return "PM10"
	case PollutantO3:
		return "O3"
	case PollutantNO2:
		return "NO2"
	case PollutantCO:
		return "CO"
	case PollutantSO2:
		return "SO2"
	default:
		return "Unknown"
	}
}

// HealthConcern is carried by the mep/epa health concern fields.
type HealthConcern int

const (
	HealthGood HealthConcern = iota
	HealthModerate
	HealthUnhealthyForSensitiveGroups
	HealthUnhealthy
	HealthVeryUnhealthy
	HealthHazardous
)

func (h HealthConcern) String() string {
	switch h {
	case HealthGood:
		return "Good"
	case HealthModerate:
		return "Moderate"
	case HealthUnhealthyForSensitiveGroups:
		return "Unhealthy for sensitive groups"
	case HealthUnhealthy:
		return "Unhealthy"
	case HealthVeryUnhealthy:
		return "Very unhealthy"
	case HealthHazardous:
		return "Hazardous"
	default:
		return "Unknown"
	}
}
