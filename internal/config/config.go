package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTimeStep = 1.0
	DefaultDuration = 300.0
	DefaultKp       = 1.0
	DefaultKi       = 0.1
	DefaultKd       = 0.01
)

// Scenario is the serializable description of one run: stack configuration,
// control parameters and simulation parameters. The CLI wires it into the
// engine types; the engine itself never reads files.
type Scenario struct {
	Chemistry            string  `yaml:"chemistry"`
	ActiveArea           float64 `yaml:"active_area"`
	OperatingTemperature float64 `yaml:"operating_temperature"`
	OperatingPressure    float64 `yaml:"operating_pressure"`
	FuelFlowRate         float64 `yaml:"fuel_flow_rate"`
	AirFlowRate          float64 `yaml:"air_flow_rate"`

	Setpoints   Setpoints `yaml:"setpoints"`
	VoltageLoop Gains     `yaml:"voltage_loop"`
	CoolingLoop Gains     `yaml:"cooling_loop"`

	Duration    float64        `yaml:"duration"`
	TimeStep    float64        `yaml:"time_step"`
	Seed        int64          `yaml:"seed"`
	Init        InitConditions `yaml:"initial_conditions"`
	Disturbance string         `yaml:"disturbance"`
}

type Setpoints struct {
	Voltage     float64 `yaml:"voltage"`
	Temperature float64 `yaml:"temperature"`
}

type Gains struct {
	Kp float64 `yaml:"kp"`
	Ki float64 `yaml:"ki"`
	Kd float64 `yaml:"kd"`
}

type InitConditions struct {
	Voltage     float64 `yaml:"voltage"`
	Current     float64 `yaml:"current"`
	Temperature float64 `yaml:"temperature"`
	Pressure    float64 `yaml:"pressure"`
}

func DefaultScenario() *Scenario {
	return &Scenario{
		Chemistry:            "pem",
		ActiveArea:           100,
		OperatingTemperature: 70,
		OperatingPressure:    1.5,
		FuelFlowRate:         5,
		AirFlowRate:          10,
		Setpoints:            Setpoints{Voltage: 0.7, Temperature: 70},
		VoltageLoop:          Gains{Kp: DefaultKp, Ki: DefaultKi, Kd: DefaultKd},
		CoolingLoop:          Gains{Kp: DefaultKp, Ki: DefaultKi, Kd: DefaultKd},
		Duration:             DefaultDuration,
		TimeStep:             DefaultTimeStep,
		Init:                 InitConditions{Voltage: 0.3, Current: 0.1, Temperature: 25, Pressure: 1.0},
		Disturbance:          "load_following",
	}
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := DefaultScenario()
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func Save(path string, sc *Scenario) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
