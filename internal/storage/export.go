package storage

import (
	"encoding/json"
	"os"

	"github.com/rafaelvleite/kuramoto-metronomes/internal/config"
)

type ExportData struct {
	ID       string         `json:"id"`
	Config   *config.Config `json:"config"`
	Frames   int            `json:"frames"`
	LockTime float64        `json:"lock_time"`
	Times    []float64      `json:"times"`
	Order    []float64      `json:"order"`
	Coupling []float64      `json:"coupling"`
	Locked   []bool         `json:"locked"`
	Colored  []int          `json:"colored"`
	Clusters []int          `json:"clusters"`
}

// ExportJSONStdout dumps a full run (metadata + series) as indented
// JSON to stdout.
func ExportJSONStdout(meta *RunMetadata, series *Series) error {
	data := ExportData{
		ID:       meta.ID,
		Config:   meta.Config,
		Frames:   meta.Frames,
		LockTime: meta.LockTime,
		Times:    series.Times,
		Order:    series.Order,
		Coupling: series.Coupling,
		Locked:   series.Locked,
		Colored:  series.Colored,
		Clusters: series.Clusters,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
