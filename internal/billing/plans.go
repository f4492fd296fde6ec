package billing

import (
	"fmt"
	"strconv"
)

// Plan is a subscription pricing tier.
type Plan struct {
	Name          string `json:"name"`
	BaseCost      string `json:"baseCost"`    // monthly, decimal string
	PerUnitCost   string `json:"perUnitCost"` // per managed unit
	IncludedUnits int    `json:"includedUnits"`
}

// plans is the static tier table. Pricing is simulated; there is no
// real payment processing behind it.
var plans = map[string]Plan{
	"starter":   {Name: "starter", BaseCost: "29.00", PerUnitCost: "2.00", IncludedUnits: 5},
	"growth":    {Name: "growth", BaseCost: "79.00", PerUnitCost: "1.50", IncludedUnits: 25},
	"portfolio": {Name: "portfolio", BaseCost: "199.00", PerUnitCost: "1.00", IncludedUnits: 100},
}

// Plans returns the available tiers.
func Plans() []Plan {
	return []Plan{plans["starter"], plans["growth"], plans["portfolio"]}
}

// Simulation is the projected monthly cost of a plan for a unit count.
type Simulation struct {
	Plan          string `json:"plan"`
	Units         int    `json:"units"`
	IncludedUnits int    `json:"includedUnits"`
	ExtraUnits    int    `json:"extraUnits"`
	MonthlyCost   string `json:"monthlyCost"`
}

// Simulate computes the monthly cost for managing the given number of
// units on a plan. Units beyond the plan's included count are charged
// at the per-unit rate.
func Simulate(planName string, units int) (*Simulation, error) {
	plan, ok := plans[planName]
	if !ok {
		return nil, fmt.Errorf("unknown plan: %q (use starter, growth, or portfolio)", planName)
	}
	if units < 0 {
		return nil, fmt.Errorf("units must not be negative")
	}

	base, err := strconv.ParseFloat(plan.BaseCost, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing base cost: %w", err)
	}
	perUnit, err := strconv.ParseFloat(plan.PerUnitCost, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing per-unit cost: %w", err)
	}

	extra := units - plan.IncludedUnits
	if extra < 0 {
		extra = 0
	}

	cost := base + float64(extra)*perUnit

	return &Simulation{
		Plan:          plan.Name,
		Units:         units,
		IncludedUnits: plan.IncludedUnits,
		ExtraUnits:    extra,
		MonthlyCost:   strconv.FormatFloat(cost, 'f', 2, 64),
	}, nil
}
