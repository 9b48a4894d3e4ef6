package config

// Presets are the named scenarios callers can request instead of supplying
// full parameters. Each couples a stack configuration with a disturbance
// schedule of the same name family.
var Presets = map[string]*Scenario{
	"startup": {
		Chemistry: "pem", ActiveArea: 100,
		OperatingTemperature: 70, OperatingPressure: 1.5,
		FuelFlowRate: 5, AirFlowRate: 10,
		Setpoints:   Setpoints{Voltage: 0.7, Temperature: 70},
		VoltageLoop: Gains{Kp: 0.5, Ki: 0.05, Kd: 0.01},
		CoolingLoop: Gains{Kp: 1.0, Ki: 0.1, Kd: 0.01},
		Duration:    600, TimeStep: 1,
		Init:        InitConditions{Voltage: 0.1, Current: 0.05, Temperature: 25, Pressure: 1.0},
		Disturbance: "startup",
	},
	"load_following": {
		Chemistry: "pem", ActiveArea: 100,
		OperatingTemperature: 70, OperatingPressure: 1.5,
		FuelFlowRate: 5, AirFlowRate: 10,
		Setpoints:   Setpoints{Voltage: 0.7, Temperature: 70},
		VoltageLoop: Gains{Kp: 1.0, Ki: 0.1, Kd: 0.01},
		CoolingLoop: Gains{Kp: 1.0, Ki: 0.1, Kd: 0.01},
		Duration:    300, TimeStep: 1,
		Init:        InitConditions{Voltage: 0.3, Current: 0.1, Temperature: 25, Pressure: 1.0},
		Disturbance: "load_following",
	},
	"thermal_cycling": {
		Chemistry: "pem", ActiveArea: 100,
		OperatingTemperature: 70, OperatingPressure: 1.5,
		FuelFlowRate: 5, AirFlowRate: 10,
		Setpoints:   Setpoints{Voltage: 0.7, Temperature: 70},
		VoltageLoop: Gains{Kp: 1.0, Ki: 0.1, Kd: 0.01},
		CoolingLoop: Gains{Kp: 2.0, Ki: 0.2, Kd: 0.05},
		Duration:    600, TimeStep: 1,
		Init:        InitConditions{Voltage: 0.5, Current: 0.1, Temperature: 60, Pressure: 1.5},
		Disturbance: "thermal_cycling",
	},
	"pressure_variation": {
		Chemistry: "pem", ActiveArea: 100,
		OperatingTemperature: 70, OperatingPressure: 1.5,
		FuelFlowRate: 5, AirFlowRate: 10,
		Setpoints:   Setpoints{Voltage: 0.7, Temperature: 70},
		VoltageLoop: Gains{Kp: 1.0, Ki: 0.1, Kd: 0.01},
		CoolingLoop: Gains{Kp: 1.0, Ki: 0.1, Kd: 0.01},
		Duration:    300, TimeStep: 1,
		Init:        InitConditions{Voltage: 0.5, Current: 0.1, Temperature: 70, Pressure: 1.5},
		Disturbance: "pressure_variation",
	},
}

func GetPreset(name string) *Scenario {
	sc, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *sc
	return &out
}

func ListPresets() []string {
	return []string{"startup", "load_following", "thermal_cycling", "pressure_variation"}
}
