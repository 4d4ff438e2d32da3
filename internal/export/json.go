package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/ofey404/gas-properties/internal/sim"
)

type RunData struct {
	Scenario       string             `json:"scenario"`
	Dt             float64            `json:"dt"`
	Duration       float64            `json:"duration"`
	Steps          int                `json:"steps"`
	Times          []float64          `json:"times"`
	KineticEnergy  []float64          `json:"kinetic_energy"`
	Temperatures   []float64          `json:"temperatures"`
	Pressures      []float64          `json:"pressures"`
	WallCollisions []int              `json:"wall_collisions"`
	Metrics        map[string]float64 `json:"metrics"`
}

func runData(scenario string, dt, duration float64, result *sim.Result) RunData {
	return RunData{
		Scenario:       scenario,
		Dt:             dt,
		Duration:       duration,
		Steps:          result.StepsTaken,
		Times:          result.Times,
		KineticEnergy:  result.KineticEnergy,
		Temperatures:   result.Temperatures,
		Pressures:      result.Pressures,
		WallCollisions: result.WallCollisions,
		Metrics:        result.Metrics,
	}
}

func WriteJSON(w io.Writer, scenario string, dt, duration float64, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(runData(scenario, dt, duration, result))
}

func ExportJSON(path string, scenario string, dt, duration float64, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, scenario, dt, duration, result)
}
