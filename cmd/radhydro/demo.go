package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ionfront/radhydro"
	"github.com/ionfront/radhydro/science/rates"
	"github.com/ionfront/radhydro/science/spline"
	"github.com/ionfront/radhydro/science/thermo"
)

const heatCapacityRatio = 5.0 / 3.0

// identityUnits is a no-op ConvertFunc for self-contained runs that
// work directly in code units rather than converting from CGS via a
// radhydro.Converter (out of scope here: a real production run would
// build its Converter from the simulation's physical mass/length/time
// scales, which this standalone demo grid doesn't have).
func identityUnits(physical float64, m, l, t int) float64 { return physical }

// defaultInitialConditions builds the ExprProvider a self-contained run
// uses to seed each cell's primitive state: a uniform ambient medium at
// rest, with the pressure floor's scale folded into the expression
// rather than hardcoded, matching spec §9's algebraic-expression
// boundary capability.
func defaultInitialConditions(cfg *radhydro.Config) (*radhydro.ExprProvider, error) {
	pre := fmt.Sprintf("max(1, %s*10)", strconv.FormatFloat(cfg.Pfloor, 'f', -1, 64))
	return radhydro.NewExprProvider(map[string]string{
		"den":   "1",
		"pre":   pre,
		"hii":   "0",
		"velx":  "0",
		"vely":  "0",
		"velz":  "0",
		"gravx": "0",
		"gravy": "0",
		"gravz": "0",
	})
}

// buildGrid lays out cfg.Ncells cells in a line, seeding each one's
// primitive state from provider, with a simple left-to-right
// neighbour chain and causal order for the non-wind iteration (no
// star, so every cell is non-wind). Mesh construction is an external
// collaborator's responsibility per spec §1; this is that
// collaborator, scoped down to what a single standalone binary needs
// to demonstrate a run. Gravitational acceleration, also returned by
// provider.Initialise, has no home in GridCell: it is a source term
// for the out-of-scope hydro solver (spec §1), not a quantity this
// module's components read.
func buildGrid(cfg *radhydro.Config, provider radhydro.InitialConditionsProvider) (*radhydro.Grid, error) {
	n := cfg.Ncells
	if n <= 0 {
		n = 64
	}
	var starXc [radhydro.NDim]float64
	cells := make([]*radhydro.GridCell, n)
	for i := range cells {
		c := &radhydro.GridCell{HeatCapacityRatio: heatCapacityRatio}
		c.Xc[0] = float64(i)
		c.Dx[0] = 1.0
		den, pre, hii, vel, _, err := provider.Initialise(c.Xc, starXc)
		if err != nil {
			return nil, err
		}
		c.Q[radhydro.DEN] = den
		c.Q[radhydro.PRE] = pre
		c.Q[radhydro.HII] = hii
		for d := 0; d < radhydro.NDim; d++ {
			c.Q[radhydro.VEL+d] = vel[d]
		}
		for k := range c.NeighborIDs {
			c.NeighborIDs[k] = radhydro.NoNeighbor
		}
		if i > 0 {
			c.NeighborIDs[0] = i - 1
			c.NeighborWeights[0] = 1.0
		}
		cells[i] = c
	}
	g := radhydro.NewGrid(cells, [radhydro.NDim]float64{1, 1, 1})
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	g.SetCausalOrder(nil, idx)
	return g, nil
}

// runSimulation builds a self-contained grid and fluid, wires the
// configured physics components into an Orchestrator, and marches to
// cfg.Tmax, logging progress and per-checkpoint diagnostics. Hydro's
// flux solver is out of scope (spec §1), so NullHydro stands in for
// it; thermodynamics runs for real when cfg.CoolingOn is set.
func runSimulation(cfg *radhydro.Config) error {
	provider, err := defaultInitialConditions(cfg)
	if err != nil {
		return err
	}
	grid, err := buildGrid(cfg, provider)
	if err != nil {
		return err
	}

	components := map[radhydro.ComponentID]radhydro.Integrator{
		radhydro.Hydro: radhydro.NullHydro{},
	}
	active := []radhydro.ComponentID{radhydro.Hydro}

	if cfg.CoolingOn {
		ceHI, err := spline.NewCollisionalExcitationHITable(identityUnits)
		if err != nil {
			return err
		}
		consts := thermo.PhysicalConstants{
			HydrogenMass:               1.0,
			BoltzmannConst:             1.0,
			SpecificGasConstant:        1.0,
			DustExtinctionCrossSection: 0,
			Pi:                         math.Pi,
			NDim:                       radhydro.NDim,
		}
		components[radhydro.Thermo] = thermo.New(consts, rates.DefaultConstants(), ceHI, cfg.Thermo, nil)
		active = append(active, radhydro.Thermo)
	}

	fluid := radhydro.NewReferenceFluid(grid, &radhydro.Star{Core: radhydro.Absent}, heatCapacityRatio, cfg.Thermo.MassFractionH, 1.0, cfg.Dfloor, cfg.Pfloor)

	orch := radhydro.NewOrchestrator(fluid, cfg, components, active, log)
	orch.InitMinTempField()

	// Mark every cell thermodynamically active via the concurrent
	// per-cell worker pool: activation has no cross-cell ordering
	// dependency, so it's safe to run this way.
	activate := func(c *radhydro.GridCell, dt float64) { c.Q[radhydro.ADV] = 1.0 }
	if err := radhydro.Calculations(0, activate)(grid); err != nil {
		return err
	}

	if err := fluid.GlobalUfromQ(); err != nil {
		return err
	}

	logStep := radhydro.Log(log)
	simTime, iteration := 0.0, 0
	for simTime < cfg.Tmax && !orch.Quitting() {
		dtUntilNext, _ := orch.CheckpointIfDue(simTime)
		dt, err := orch.FullStep(dtUntilNext)
		if err != nil {
			return err
		}
		simTime += dt
		iteration++
		logStep(iteration, simTime, dt)
	}
	return nil
}
