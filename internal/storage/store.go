package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ofey404/gas-properties/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Particles   int                `json:"particles"`
	Temperature float64            `json:"temperature"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Series is the per-tick record of one run, as stored in series.csv.
type Series struct {
	Times          []float64
	KineticEnergy  []float64
	Temperatures   []float64
	Pressures      []float64
	WallCollisions []int
}

func (s *Store) Save(scenario string, dt, duration float64, seed int64, particles int, temperature float64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Scenario:    scenario,
		Timestamp:   time.Now(),
		Seed:        seed,
		Dt:          dt,
		Duration:    duration,
		Particles:   particles,
		Temperature: temperature,
		Metrics:     result.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "series.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time", "kinetic_energy", "temperature", "pressure", "wall_collisions"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.KineticEnergy[i], 'f', 6, 64),
			strconv.FormatFloat(result.Temperatures[i], 'f', 6, 64),
			strconv.FormatFloat(result.Pressures[i], 'f', 6, 64),
			strconv.Itoa(result.WallCollisions[i]),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSeries(runID string) (*Series, error) {
	csvPath := filepath.Join(s.baseDir, runID, "series.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := &Series{}
	if len(records) < 2 {
		return series, nil
	}

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 5 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		ke, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		temp, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		pressure, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			continue
		}
		collisions, err := strconv.Atoi(record[4])
		if err != nil {
			continue
		}

		series.Times = append(series.Times, t)
		series.KineticEnergy = append(series.KineticEnergy, ke)
		series.Temperatures = append(series.Temperatures, temp)
		series.Pressures = append(series.Pressures, pressure)
		series.WallCollisions = append(series.WallCollisions, collisions)
	}

	return series, nil
}
