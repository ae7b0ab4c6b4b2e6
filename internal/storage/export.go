package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/askeland/multistep/internal/ode"
)

type ExportData struct {
	Problem  string             `json:"problem"`
	Solver   string             `json:"solver"`
	Nout     int                `json:"nout"`
	Tstep    float64            `json:"tstep"`
	Steps    int                `json:"steps"`
	Accepted int                `json:"accepted"`
	Rejected int                `json:"rejected"`
	RHSEvals int                `json:"rhs_evals"`
	Times    []float64          `json:"times"`
	States   [][]float64        `json:"states"`
	Dts      []float64          `json:"dts"`
	Orders   []int              `json:"orders"`
	Metrics  map[string]float64 `json:"metrics"`
}

func buildExport(problem, solver string, nout int, tstep float64, result *ode.Result) ExportData {
	data := ExportData{
		Problem:  problem,
		Solver:   solver,
		Nout:     nout,
		Tstep:    tstep,
		Steps:    len(result.Times),
		Accepted: result.Stats.Accepted,
		Rejected: result.Stats.Rejected,
		RHSEvals: result.Stats.RHSEvals,
		Times:    result.Times,
		States:   make([][]float64, len(result.States)),
		Dts:      result.Dts,
		Orders:   result.Orders,
		Metrics:  result.Metrics,
	}
	for i, s := range result.States {
		data.States[i] = s
	}
	return data
}

func ExportJSON(path string, problem, solver string, nout int, tstep float64, result *ode.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return writeExport(file, problem, solver, nout, tstep, result)
}

func ExportJSONStdout(problem, solver string, nout int, tstep float64, result *ode.Result) error {
	return writeExport(os.Stdout, problem, solver, nout, tstep, result)
}

func writeExport(w io.Writer, problem, solver string, nout int, tstep float64, result *ode.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExport(problem, solver, nout, tstep, result))
}
