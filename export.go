package invitro

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gonum.org/v1/gonum/mat"
)

// ExportConfig configures the persistence of a simulation result.
type ExportConfig struct {
	Filename  string // base name; empty disables all output
	OutputDir string // destination directory, "." when empty
	AsCSV     bool   // write the full trajectory and currents as CSV
	AsJSON    bool   // write the run metadata document
	Timestamp bool   // stamp file names with the wall-clock creation time
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return c.Filename == "" || (!c.AsCSV && !c.AsJSON)
}

// runMeta is the JSON metadata document written next to the CSV.
type runMeta struct {
	Kinetics     string    `json:"kinetics"`
	Solver       string    `json:"solver"`
	Samples      int       `json:"samples"`
	StateColumns []string  `json:"stateColumns"`
	TEnd         float64   `json:"tEnd"`
	Dt           float64   `json:"dt,omitempty"`
	V0           float64   `json:"v0"`
	IApp         float64   `json:"iApp"`
	IAppT        []float64 `json:"iAppT,omitempty"`
	NoiseSeed    uint64    `json:"noiseSeed,omitempty"`
	Created      string    `json:"created"`
}

func (c ExportConfig) path(ext string) string {
	dir := c.OutputDir
	if dir == "" {
		dir = "."
	}
	if c.Timestamp {
		t := time.Now()
		return fmt.Sprintf("%s/membrane-%s-%d-%02d-%02dT%02d.%02d.%02d.%s", dir, c.Filename, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), ext)
	}
	return fmt.Sprintf("%s/membrane-%s.%s", dir, c.Filename, ext)
}

// Export writes the result as a named archive: a commented-header CSV of the
// trajectory and currents, and/or a JSON metadata document. It is a post-run
// side effect only; the result itself is never mutated.
func Export(conf ExportConfig, res *Result) error {
	if conf.IsUseless() {
		return nil
	}
	cols := stateColumns(res)
	if conf.AsCSV {
		if err := exportCSV(conf, res, cols); err != nil {
			return err
		}
	}
	if conf.AsJSON {
		meta := runMeta{
			Kinetics:     res.Params.Kinetics.String(),
			Solver:       res.Params.Solver.String(),
			Samples:      len(res.Times),
			StateColumns: cols,
			TEnd:         res.Params.TEnd,
			Dt:           res.Params.Dt,
			V0:           res.Params.V0,
			IApp:         res.Params.IApp,
			IAppT:        res.Params.IAppT,
			NoiseSeed:    res.Params.Noise.Seed,
			Created:      time.Now().UTC().Format(time.RFC3339),
		}
		f, err := os.Create(conf.path("json"))
		if err != nil {
			return err
		}
		defer f.Close()
		marsh, err := json.MarshalIndent(meta, "", "  ")
		if err != nil {
			return err
		}
		if _, err = f.Write(marsh); err != nil {
			return err
		}
	}
	return nil
}

func stateColumns(res *Result) []string {
	_, dim := res.States.Dims()
	cols := []string{"V", "rf", "rs"}
	if dim == 4 {
		cols = append(cols, "q")
	}
	return cols
}

func exportCSV(conf ExportConfig, res *Result, cols []string) error {
	f, err := os.Create(conf.path("csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	// Header
	f.WriteString(fmt.Sprintf(`# Creation date (UTC): %s
# Records are time, state columns (%v), then I_H and I_NaP.
#   Kinetics: %s	Solver: %s
time`, time.Now().UTC(), cols, res.Params.Kinetics, res.Params.Solver))
	for _, col := range cols {
		f.WriteString("," + col)
	}
	f.WriteString(",IH,INaP")

	var row []float64
	for i, t := range res.Times {
		row = mat.Row(row, i, res.States)
		line := fmt.Sprintf("\n%.9g", t)
		for _, val := range row {
			line += fmt.Sprintf(",%.9g", val)
		}
		line += fmt.Sprintf(",%.9g,%.9g", res.Currents.At(i, 0), res.Currents.At(i, 1))
		if _, err := f.WriteString(line); err != nil {
			return err
		}
	}
	_, err = f.WriteString("\n")
	return err
}
