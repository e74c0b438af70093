package types

import "time"

// WeatherCode represents a WMO weather code
type WeatherCode int

// Weather code constants
const (
	ClearSky                     WeatherCode = 0
	MainlyClear                  WeatherCode = 1
	PartlyCloudy                 WeatherCode = 2
	Overcast                     WeatherCode = 3
	Fog                          WeatherCode = 45
	DepositingRimeFog            WeatherCode = 48
	DrizzleLight                 WeatherCode = 51
	DrizzleModerate              WeatherCode = 53
	DrizzleDense                 WeatherCode = 55
	FreezingDrizzleLight         WeatherCode = 56
	FreezingDrizzleDense         WeatherCode = 57
	RainSlight                   WeatherCode = 61
	RainModerate                 WeatherCode = 63
	RainHeavy                    WeatherCode = 65
	FreezingRainLight            WeatherCode = 66
	FreezingRainHeavy            WeatherCode = 67
	SnowFallSlight               WeatherCode = 71
	SnowFallModerate             WeatherCode = 73
	SnowFallHeavy                WeatherCode = 75
	SnowGrains                   WeatherCode = 77
	RainShowersSlight            WeatherCode = 80
	RainShowersModerate          WeatherCode = 81
	RainShowersViolent           WeatherCode = 82
	SnowShowersSlight            WeatherCode = 85
	SnowShowersHeavy             WeatherCode = 86
	ThunderstormSlightOrModerate WeatherCode = 95
	ThunderstormWithSlightHail   WeatherCode = 96
	ThunderstormWithHeavyHail    WeatherCode = 99
)

// weatherDescriptions maps weather codes to their descriptions
var weatherDescriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Drizzle: Light intensity",
	53: "Drizzle: Moderate intensity",
	55: "Drizzle: Dense intensity",
	56: "Freezing Drizzle: Light intensity",
	57: "Freezing Drizzle: Dense intensity",
	61: "Rainfall: Slight intensity",
	63: "Rainfall: Moderate intensity",
	65: "Rainfall: Heavy intensity",
	66: "Freezing Rainfall: Light intensity",
	67: "Freezing Rainfall: Heavy intensity",
	71: "Snow fall: Slight intensity",
	73: "Snow fall: Moderate intensity",
	75: "Snow fall: Heavy intensity",
	77: "Snow grains",
	80: "Rainfall showers: Slight",
	81: "Rainfall showers: Moderate",
	82: "Rainfall showers: Violent",
	85: "Snow showers: Slight",
	86: "Snow showers: Heavy",
	95: "Thunderstorm: Slight or moderate",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// GetWeatherDescription returns the description for a given weather code
func GetWeatherDescription(code int) string {
	if desc, ok := weatherDescriptions[code]; ok {
		return desc
	}
	return "Unknown"
}

// SnapshotStatus is the closed status vocabulary of a weather snapshot.
// A POI with an unavailable snapshot stays navigable; the status is data,
// not an error.
type SnapshotStatus string

const (
	SnapshotOK          SnapshotStatus = "ok"
	SnapshotUnavailable SnapshotStatus = "unavailable"
)

// WeatherSnapshot holds the current conditions attached to a ranked POI.
type WeatherSnapshot struct {
	TemperatureF         float64        `json:"temperature_f"`
	ConditionCode        int            `json:"condition_code"`
	ConditionDescription string         `json:"condition_description"`
	PrecipitationChance  float64        `json:"precipitation_chance"`
	WindSpeedMph         float64        `json:"wind_speed_mph"`
	Timezone             string         `json:"timezone,omitempty"`
	Source               string         `json:"source,omitempty"`
	FetchedAt            time.Time      `json:"fetched_at"`
	Status               SnapshotStatus `json:"status"`
}

// NewWeatherSnapshot creates an ok snapshot with the description filled in
// from the condition code.
func NewWeatherSnapshot(temperatureF float64, conditionCode int, precipitationChance, windSpeedMph float64) WeatherSnapshot {
	return WeatherSnapshot{
		TemperatureF:         temperatureF,
		ConditionCode:        conditionCode,
		ConditionDescription: GetWeatherDescription(conditionCode),
		PrecipitationChance:  precipitationChance,
		WindSpeedMph:         windSpeedMph,
		FetchedAt:            time.Now().UTC(),
		Status:               SnapshotOK,
	}
}

// UnavailableSnapshot marks a POI whose whole provider chain failed.
func UnavailableSnapshot() WeatherSnapshot {
	return WeatherSnapshot{
		FetchedAt: time.Now().UTC(),
		Status:    SnapshotUnavailable,
	}
}
