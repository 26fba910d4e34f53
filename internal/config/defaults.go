package config

import (
	"os"
	"path/filepath"
)

// DefaultConfig returns the built-in configuration: the music model,
// the genre thresholds and conservative runtime settings.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DataDir:      filepath.Join(home, ".cadence"),
		LogLevel:     "info",
		SampleSize:   3,
		CacheSize:    1024,
		BatchWorkers: 4,
		Model:        DefaultModel(),
		Thresholds:   DefaultThresholds(),
	}
}

// DefaultModel returns the four listener inputs and the recommendation
// output with their membership shapes.
func DefaultModel() ModelDef {
	return ModelDef{
		Inputs: []VariableDef{
			{
				Name: "age", Min: 10, Max: 60, Step: 1,
				Terms: []TermDef{
					trap("young", 10, 10, 20, 30),
					trap("adult", 20, 35, 40, 50),
					trap("senior", 40, 50, 60, 60),
				},
			},
			{
				Name: "mood", Min: 0, Max: 10, Step: 1,
				Terms: []TermDef{
					tri("sad", 0, 0, 5),
					tri("neutral", 3, 5, 7),
					tri("happy", 5, 10, 10),
				},
			},
			{
				Name: "listening_time", Min: 0, Max: 24, Step: 1,
				Terms: []TermDef{
					trap("morning", 0, 0, 9, 12),
					tri("afternoon", 11, 15, 18),
					tri("evening", 18, 19, 21),
					tri("night", 21, 24, 24),
				},
			},
			{
				Name: "tempo", Min: 0, Max: 200, Step: 1,
				Terms: []TermDef{
					trap("slow", 0, 0, 60, 90),
					tri("moderate", 80, 120, 140),
					trap("fast", 130, 160, 200, 200),
				},
			},
		},
		Output: VariableDef{
			Name: "recommendation", Min: 0, Max: 100, Step: 1,
			Terms: []TermDef{
				tri("Classical", 0, 0, 20),
				tri("Ballad", 15, 35, 50),
				tri("Hip-hop", 45, 60, 75),
				tri("EDM", 70, 85, 90),
				tri("Pop", 85, 100, 100),
			},
		},
	}
}

// DefaultThresholds maps scores to genres: <=20 Classical, <=50 Ballad,
// <=75 Hip-hop, <=90 EDM, otherwise Pop.
func DefaultThresholds() []Threshold {
	return []Threshold{
		upTo("Classical", 20),
		upTo("Ballad", 50),
		upTo("Hip-hop", 75),
		upTo("EDM", 90),
		{Genre: "Pop"},
	}
}

func tri(name string, a, b, c float64) TermDef {
	return TermDef{Name: name, Shape: ShapeTriangular, Params: []float64{a, b, c}}
}

func trap(name string, a, b, c, d float64) TermDef {
	return TermDef{Name: name, Shape: ShapeTrapezoidal, Params: []float64{a, b, c, d}}
}

func upTo(genre string, max float64) Threshold {
	return Threshold{Genre: genre, Max: &max}
}
