package config

var Presets = map[string]map[string]*Config{
	"ideal": {
		"small": {
			Scenario: "ideal", Dt: 0.005, Duration: 10.0, Temperature: 300,
			Particles:  ParticlesConfig{Heavy: 50},
			Container:  ContainerConfig{Width: 10000},
			Collisions: CollisionsConfig{ParticleParticle: true},
		},
		"dense": {
			Scenario: "ideal", Dt: 0.005, Duration: 10.0, Temperature: 300,
			Particles:  ParticlesConfig{Heavy: 800, Light: 200},
			Container:  ContainerConfig{Width: 10000},
			Collisions: CollisionsConfig{ParticleParticle: true},
		},
		"hot": {
			Scenario: "ideal", Dt: 0.002, Duration: 10.0, Temperature: 900,
			Particles:  ParticlesConfig{Heavy: 200},
			Container:  ContainerConfig{Width: 10000},
			Collisions: CollisionsConfig{ParticleParticle: true},
		},
	},
	"compression": {
		"slow": {
			Scenario: "compression", Dt: 0.005, Duration: 20.0, Temperature: 300,
			Particles:  ParticlesConfig{Heavy: 300},
			Container:  ContainerConfig{Width: 15000, LeftWallVelocity: 200},
			Collisions: CollisionsConfig{ParticleParticle: true},
		},
		"fast": {
			Scenario: "compression", Dt: 0.002, Duration: 8.0, Temperature: 300,
			Particles:  ParticlesConfig{Heavy: 300},
			Container:  ContainerConfig{Width: 15000, LeftWallVelocity: 800},
			Collisions: CollisionsConfig{ParticleParticle: true},
		},
	},
	"diffusion": {
		"balanced": {
			Scenario: "diffusion", Dt: 0.005, Duration: 30.0, Temperature: 300,
			Particles:  ParticlesConfig{Heavy: 200, Light: 200},
			Container:  ContainerConfig{Width: 10000, DividerX: -5000},
			Collisions: CollisionsConfig{ParticleParticle: true},
		},
		"uneven": {
			Scenario: "diffusion", Dt: 0.005, Duration: 30.0, Temperature: 300,
			Particles:  ParticlesConfig{Heavy: 350, Light: 50},
			Container:  ContainerConfig{Width: 10000, DividerX: -3000},
			Collisions: CollisionsConfig{ParticleParticle: true},
		},
	},
	"effusion": {
		"narrow": {
			Scenario: "effusion", Dt: 0.005, Duration: 30.0, Temperature: 300,
			Particles:  ParticlesConfig{Heavy: 300, Light: 100},
			Container:  ContainerConfig{Width: 10000, LidWidth: 800},
			Collisions: CollisionsConfig{ParticleParticle: true},
		},
		"wide": {
			Scenario: "effusion", Dt: 0.005, Duration: 15.0, Temperature: 300,
			Particles:  ParticlesConfig{Heavy: 300, Light: 100},
			Container:  ContainerConfig{Width: 10000, LidWidth: 4000},
			Collisions: CollisionsConfig{ParticleParticle: true},
		},
	},
	"leakage": {
		"block": {
			Scenario: "leakage", Dt: 0.002, Duration: 20.0, Temperature: 300,
			Particles: ParticlesConfig{Heavy: 200},
			Container: ContainerConfig{
				Width: 10000,
				Obstacles: []ObstacleConfig{
					{OffsetX: 2000, OffsetY: 3000, Width: 800, Height: 2500},
				},
			},
			Collisions: CollisionsConfig{ParticleParticle: true},
		},
	},
}

func GetPreset(scenario, preset string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	return names
}
