package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/balls/internal/config"
	"github.com/san-kum/balls/internal/physics"
	"github.com/san-kum/balls/internal/sim"
)

// Report is the JSON summary of a headless run.
type Report struct {
	Seed    int64                `json:"seed"`
	Config  *config.Config       `json:"config"`
	Frames  int                  `json:"frames"`
	Metrics map[string]float64   `json:"metrics"`
	Series  map[string][]float64 `json:"series,omitempty"`
	Final   []BallRecord         `json:"final"`
}

type BallRecord struct {
	ID     uint64   `json:"id"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	VX     float64  `json:"vx"`
	VY     float64  `json:"vy"`
	Radius float64  `json:"radius"`
	Color  [3]uint8 `json:"color"`
}

func NewReport(cfg *config.Config, seed int64, result *sim.Result, final []physics.Ball, withSeries bool) Report {
	r := Report{
		Seed:    seed,
		Config:  cfg,
		Frames:  result.Frames,
		Metrics: result.Metrics,
		Final:   make([]BallRecord, len(final)),
	}
	if withSeries {
		r.Series = result.Series
	}
	for i, b := range final {
		r.Final[i] = BallRecord{
			ID:     b.ID,
			X:      b.Pos.X,
			Y:      b.Pos.Y,
			VX:     b.Vel.X,
			VY:     b.Vel.Y,
			Radius: b.Radius(),
			Color:  [3]uint8{b.Color.R, b.Color.G, b.Color.B},
		}
	}
	return r
}

func WriteJSON(w io.Writer, r Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

func ExportJSON(path string, r Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, r)
}
