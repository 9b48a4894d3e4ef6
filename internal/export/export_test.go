package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/san-kum/fuelsim/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		Series: sim.Series{
			Time:        []float64{0, 1},
			Voltage:     []float64{0.5, 0.6},
			Current:     []float64{0.1, 0.1},
			Power:       []float64{0.05, 0.06},
			Temperature: []float64{25, 26},
			Pressure:    []float64{1.5, 1.5},
			Efficiency:  []float64{30, 31},
		},
		Controls: []sim.Control{
			{FuelFlow: 5, Cooling: 0},
			{FuelFlow: 5.2, Cooling: 1},
		},
		Summary: sim.Summary{AveragePower: 0.055, AverageEfficiency: 30.5, StabilityIndex: 0.99, ResponseTime: 31},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	meta := Meta{Chemistry: "pem", Disturbance: "load_following", TimeStep: 1, Duration: 2}

	if err := WriteJSON(&buf, meta, sampleResult()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
	if decoded["chemistry"] != "pem" {
		t.Errorf("chemistry = %v", decoded["chemistry"])
	}
	if decoded["steps"].(float64) != 2 {
		t.Errorf("steps = %v", decoded["steps"])
	}
	if _, ok := decoded["summary"]; !ok {
		t.Error("summary missing from export")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleResult()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "time" || rows[0][8] != "cooling" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "0.5" {
		t.Errorf("expected voltage 0.5 in first row, got %q", rows[1][1])
	}
}
