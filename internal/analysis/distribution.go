package analysis

import (
	"math"

	"github.com/ofey404/gas-properties/internal/gas"
	"github.com/ofey404/gas-properties/internal/model"
)

// SpeedHistogram bins particle speeds into equal-width buckets over
// [0, maxSpeed). Speeds at or above maxSpeed land in the last bucket.
func SpeedHistogram(particles []*model.Particle, bins int, maxSpeed float64) []float64 {
	if bins <= 0 || maxSpeed <= 0 {
		return nil
	}

	hist := make([]float64, bins)
	binWidth := maxSpeed / float64(bins)
	for _, p := range particles {
		i := int(p.Speed() / binWidth)
		if i >= bins {
			i = bins - 1
		}
		hist[i]++
	}
	return hist
}

// MeanSpeed is the arithmetic mean of particle speeds.
func MeanSpeed(particles []*model.Particle) float64 {
	if len(particles) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range particles {
		sum += p.Speed()
	}
	return sum / float64(len(particles))
}

// RMSSpeed is the root mean square of particle speeds. For a thermalized
// gas it approaches sqrt(3kT/m).
func RMSSpeed(particles []*model.Particle) float64 {
	if len(particles) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range particles {
		sum += p.Velocity.MagnitudeSquared()
	}
	return math.Sqrt(sum / float64(len(particles)))
}

// KineticTemperature estimates temperature from a population,
// T = (2/3) <KE> / k.
func KineticTemperature(particles []*model.Particle) float64 {
	if len(particles) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range particles {
		sum += p.KineticEnergy()
	}
	avg := sum / float64(len(particles))
	return (2.0 / 3.0) * avg / gas.BoltzmannConstant
}
