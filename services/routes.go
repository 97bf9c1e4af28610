package services

import (
	"fmt"
	"math"
)

// TransportMode holds the per-km figures used to compare routes. Emission
// factors are fleet averages in kg CO₂ per km; speeds in km/h drive the
// duration estimate.
type TransportMode struct {
	Mode          string
	EmissionPerKm float64
	SpeedKmh      float64
}

var transportModes = []TransportMode{
	{Mode: "walk", EmissionPerKm: 0, SpeedKmh: 5},
	{Mode: "bike", EmissionPerKm: 0, SpeedKmh: 15},
	{Mode: "bus", EmissionPerKm: 0.089, SpeedKmh: 30},
	{Mode: "car", EmissionPerKm: 0.192, SpeedKmh: 60},
}

// RouteComparison is one mode's figures for a given distance. EcoScore rates
// the mode 0–100 against the car baseline for the same distance: car scores
// 0, zero-emission modes score 100.
type RouteComparison struct {
	Mode         string  `json:"mode"`
	Duration     int     `json:"duration"` // minutes
	Co2Emissions float64 `json:"co2_emissions"`
	EcoScore     int     `json:"eco_score"`
}

type RouteService struct{}

func NewRouteService() *RouteService {
	return &RouteService{}
}

// CompareModes computes emissions, travel time and eco score for every
// transport mode over the given distance in km. The distance itself comes
// from the caller; route lookups against map providers stay outside this
// service.
func (s *RouteService) CompareModes(distanceKm float64) ([]RouteComparison, error) {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm <= 0 {
		return nil, fmt.Errorf("%w: distance must be a positive number of km", ErrValidation)
	}

	var carBaseline float64
	for _, m := range transportModes {
		if m.Mode == "car" {
			carBaseline = m.EmissionPerKm * distanceKm
		}
	}

	routes := make([]RouteComparison, 0, len(transportModes))
	for _, m := range transportModes {
		emissions := m.EmissionPerKm * distanceKm
		score := 100
		if carBaseline > 0 {
			score = int(math.Round((1 - emissions/carBaseline) * 100))
			if score < 0 {
				score = 0
			}
		}
		routes = append(routes, RouteComparison{
			Mode:         m.Mode,
			Duration:     int(math.Ceil(distanceKm / m.SpeedKmh * 60)),
			Co2Emissions: math.Round(emissions*100) / 100,
			EcoScore:     score,
		})
	}
	return routes, nil
}
