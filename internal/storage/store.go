// Package storage persists run summaries: metadata plus the per-frame
// time series of the order parameter, effective coupling, and cluster
// counts. The engine itself never touches disk.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/rafaelvleite/kuramoto-metronomes/internal/config"
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

// Series is the per-frame scalar trace of a run.
type Series struct {
	Times    []float64
	Order    []float64
	Coupling []float64
	Locked   []bool
	Colored  []int
	Clusters []int
}

func (s *Series) Append(t, r, k float64, locked bool, colored, clusters int) {
	s.Times = append(s.Times, t)
	s.Order = append(s.Order, r)
	s.Coupling = append(s.Coupling, k)
	s.Locked = append(s.Locked, locked)
	s.Colored = append(s.Colored, colored)
	s.Clusters = append(s.Clusters, clusters)
}

type RunMetadata struct {
	ID         string         `json:"id"`
	Timestamp  time.Time      `json:"timestamp"`
	Config     *config.Config `json:"config"`
	Frames     int            `json:"frames"`
	FinalOrder float64        `json:"final_order"`
	LockTime   float64        `json:"lock_time"` // -1 if the run never locked
}

// Save writes one run directory (metadata.json + frames.csv) and
// returns the generated run id.
func (s *Store) Save(cfg *config.Config, series *Series) (string, error) {
	runID := uuid.NewString()[:8]
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Config:    cfg,
		Frames:    len(series.Times),
		LockTime:  -1,
	}
	if n := len(series.Order); n > 0 {
		meta.FinalOrder = series.Order[n-1]
	}
	for i, locked := range series.Locked {
		if locked {
			meta.LockTime = series.Times[i]
			break
		}
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "order", "coupling", "locked", "colored", "clusters"}); err != nil {
		return "", err
	}
	for i := range series.Times {
		locked := "0"
		if series.Locked[i] {
			locked = "1"
		}
		row := []string{
			strconv.FormatFloat(series.Times[i], 'f', 6, 64),
			strconv.FormatFloat(series.Order[i], 'f', 6, 64),
			strconv.FormatFloat(series.Coupling[i], 'f', 6, 64),
			locked,
			strconv.Itoa(series.Colored[i]),
			strconv.Itoa(series.Clusters[i]),
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
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
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("empty frame data for run %s", runID)
	}

	series := &Series{}
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 6 {
			continue
		}
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			continue
		}
		order, _ := strconv.ParseFloat(rec[1], 64)
		coupling, _ := strconv.ParseFloat(rec[2], 64)
		colored, _ := strconv.Atoi(rec[4])
		clusters, _ := strconv.Atoi(rec[5])
		series.Append(t, order, coupling, rec[3] == "1", colored, clusters)
	}
	return series, nil
}
