// Package export writes a completed run to JSON or CSV for external
// charting and analysis tools. The engine never persists anything on its
// own; export happens only when the CLI asks for it.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/fuelsim/internal/sim"
)

type runData struct {
	Chemistry   string             `json:"chemistry"`
	Disturbance string             `json:"disturbance"`
	TimeStep    float64            `json:"time_step"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	Time        []float64          `json:"time"`
	Voltage     []float64          `json:"voltage"`
	Current     []float64          `json:"current"`
	Power       []float64          `json:"power"`
	Temperature []float64          `json:"temperature"`
	Pressure    []float64          `json:"pressure"`
	Efficiency  []float64          `json:"efficiency"`
	FuelFlow    []float64          `json:"fuel_flow"`
	Cooling     []float64          `json:"cooling"`
	Summary     summaryData        `json:"summary"`
	Metrics     map[string]float64 `json:"metrics,omitempty"`
}

type summaryData struct {
	AveragePower      float64 `json:"average_power"`
	AverageEfficiency float64 `json:"average_efficiency"`
	StabilityIndex    float64 `json:"stability_index"`
	ResponseTime      float64 `json:"response_time"`
}

// Meta describes the run alongside its data.
type Meta struct {
	Chemistry   string
	Disturbance string
	TimeStep    float64
	Duration    float64
}

func WriteJSON(w io.Writer, meta Meta, r *sim.Result) error {
	data := runData{
		Chemistry:   meta.Chemistry,
		Disturbance: meta.Disturbance,
		TimeStep:    meta.TimeStep,
		Duration:    meta.Duration,
		Steps:       len(r.Series.Time),
		Time:        r.Series.Time,
		Voltage:     r.Series.Voltage,
		Current:     r.Series.Current,
		Power:       r.Series.Power,
		Temperature: r.Series.Temperature,
		Pressure:    r.Series.Pressure,
		Efficiency:  r.Series.Efficiency,
		FuelFlow:    make([]float64, len(r.Controls)),
		Cooling:     make([]float64, len(r.Controls)),
		Summary: summaryData{
			AveragePower:      r.Summary.AveragePower,
			AverageEfficiency: r.Summary.AverageEfficiency,
			StabilityIndex:    r.Summary.StabilityIndex,
			ResponseTime:      r.Summary.ResponseTime,
		},
		Metrics: r.Metrics,
	}
	for i, u := range r.Controls {
		data.FuelFlow[i] = u.FuelFlow
		data.Cooling[i] = u.Cooling
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func WriteJSONFile(path string, meta Meta, r *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(f, meta, r)
}

func WriteCSV(w io.Writer, r *sim.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"time", "voltage", "current", "power", "temperature", "pressure", "efficiency", "fuel_flow", "cooling"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range r.Series.Time {
		row := []string{
			fmtF(r.Series.Time[i]),
			fmtF(r.Series.Voltage[i]),
			fmtF(r.Series.Current[i]),
			fmtF(r.Series.Power[i]),
			fmtF(r.Series.Temperature[i]),
			fmtF(r.Series.Pressure[i]),
			fmtF(r.Series.Efficiency[i]),
			fmtF(r.Controls[i].FuelFlow),
			fmtF(r.Controls[i].Cooling),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteCSVFile(path string, r *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCSV(f, r)
}

func fmtF(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
