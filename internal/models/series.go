package models

import "slices"

// SeriesOptions is the closed list of series a car can belong to.
var SeriesOptions = []string{
	"Cars",
	"Cars Toon",
	"Cars 2",
	"Planes",
	"Planes: Fire and Rescue",
	"Cars 3",
	"Cars on the Road",
	"Mater and the Ghostlight",
	"Mater and the Easter Buggy",
	"Silver Racer",
	"Neon Racers",
	"Ice Racers",
	"Carbon Racers",
	"Carnival Cup",
	"Mud Racing",
	"Rocket Racing",
	"Drag Racing",
	"World of Cars",
	"Mater Saves Christmas",
	"Vitaminamulch: Air Spectacular",
	"Road Trip",
	"Thomasville Racing Legends",
	"Fireball Beach Racers",
	"Fan Favorites",
	"RS 24h Endurance Race",
	"Racing Red",
	"NASCAR",
	"Disney 100",
	"Glow Racers",
	"Global Racers Cup",
	"Race & Rescue",
}

const DefaultSeries = "Cars"

func IsValidSeries(series string) bool {
	return slices.Contains(SeriesOptions, series)
}
