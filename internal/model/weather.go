package model

// Weather is the subset of the weatherapi.com current-conditions payload the
// monitor reports on
type Weather struct {
	Location WeatherLocation `json:"location"`
	Current  WeatherCurrent  `json:"current"`
}

// WeatherLocation identifies the observed place
type WeatherLocation struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// WeatherCurrent holds current conditions
type WeatherCurrent struct {
	TempC       float64          `json:"temp_c"`
	FeelslikeC  float64          `json:"feelslike_c"`
	LastUpdated string           `json:"last_updated"`
	Condition   WeatherCondition `json:"condition"`
}

// WeatherCondition is the textual condition description
type WeatherCondition struct {
	Text string `json:"text"`
}
