package fuelcell

import (
	"fmt"
	"strings"
)

// Chemistry selects the cell chemistry, which fixes the open-circuit
// baseline, the optimal operating temperature and the efficiency ceiling.
type Chemistry string

const (
	PEM        Chemistry = "pem"
	SOFC       Chemistry = "sofc"
	Alkaline   Chemistry = "afc"
	Phosphoric Chemistry = "pafc"
)

type chemistryData struct {
	baseline      float64 // open-circuit baseline, V
	optimalTemp   float64 // °C
	maxEfficiency float64 // percent
}

var chemistries = map[Chemistry]chemistryData{
	PEM:        {baseline: 1.00, optimalTemp: 80, maxEfficiency: 60},
	SOFC:       {baseline: 0.95, optimalTemp: 800, maxEfficiency: 65},
	Alkaline:   {baseline: 1.05, optimalTemp: 70, maxEfficiency: 62},
	Phosphoric: {baseline: 0.98, optimalTemp: 200, maxEfficiency: 55},
}

// ParseChemistry maps a case-insensitive name to a Chemistry.
func ParseChemistry(name string) (Chemistry, error) {
	c := Chemistry(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := chemistries[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownChemistry, name)
	}
	return c, nil
}

func (c Chemistry) valid() bool {
	_, ok := chemistries[c]
	return ok
}

func Chemistries() []Chemistry {
	return []Chemistry{PEM, SOFC, Alkaline, Phosphoric}
}
