package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/askeland/multistep/internal/ode"
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
	ID        string             `json:"id"`
	Problem   string             `json:"problem"`
	Solver    string             `json:"solver"`
	Timestamp time.Time          `json:"timestamp"`
	Nout      int                `json:"nout"`
	Tstep     float64            `json:"tstep"`
	ATol      float64            `json:"atol"`
	RTol      float64            `json:"rtol"`
	Accepted  int                `json:"accepted"`
	Rejected  int                `json:"rejected"`
	RHSEvals  int                `json:"rhs_evals"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(problem, solver string, nout int, tstep, atol, rtol float64, result *ode.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", problem, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Problem:   problem,
		Solver:    solver,
		Timestamp: time.Now(),
		Nout:      nout,
		Tstep:     tstep,
		ATol:      atol,
		RTol:      rtol,
		Accepted:  result.Stats.Accepted,
		Rejected:  result.Stats.Rejected,
		RHSEvals:  result.Stats.RHSEvals,
		Metrics:   result.Metrics,
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

	csvPath := filepath.Join(runDir, "samples.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.States) == 0 {
		return runID, nil
	}

	header := []string{"time", "dt", "order"}
	for i := range result.States[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range result.States {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'g', 17, 64),
			strconv.FormatFloat(result.Dts[i], 'g', 17, 64),
			strconv.Itoa(result.Orders[i]),
		}
		for _, val := range result.States[i] {
			row = append(row, strconv.FormatFloat(val, 'g', 17, 64))
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

// LoadSamples reads back the per-boundary samples written by Save.
func (s *Store) LoadSamples(runID string) (*ode.Result, error) {
	csvPath := filepath.Join(s.baseDir, runID, "samples.csv")
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

	result := &ode.Result{}
	if len(records) < 2 {
		return result, nil
	}

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 3 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		dt, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		order, err := strconv.Atoi(record[2])
		if err != nil {
			continue
		}

		state := make(ode.State, 0, len(record)-3)
		for j := 3; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			state = append(state, val)
		}

		result.Times = append(result.Times, t)
		result.Dts = append(result.Dts, dt)
		result.Orders = append(result.Orders, order)
		result.States = append(result.States, state)
	}

	return result, nil
}
