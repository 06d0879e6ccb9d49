/*
Copyright © 2017 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

package radhydro

import (
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// CellManipulator is a function that mutates a single cell, given the
// active step size. Rate functions and diagnostic fills are expressed
// this way so they can be composed and, where the ordering permits,
// run concurrently.
type CellManipulator func(c *GridCell, dt float64)

// DomainManipulator is a function that mutates an entire Grid for one
// step. The orchestrator and its supporting pieces are built from
// these, the same functional-closure idiom the teacher uses for its
// chemistry/deposition pipeline.
type DomainManipulator func(g *Grid) error

// Calculations returns a DomainManipulator that concurrently runs the
// given CellManipulators over every cell in the grid. It is only safe
// to use this for manipulators whose cells have no ordering
// dependency on each other within the step — the causal ray-trace
// sweep must NOT be run this way (spec §5: "within a rank the
// execution is single-threaded" for anything with an ordering
// requirement). It is grounded on the teacher's run.go Calculations,
// generalized from air-quality chemistry/deposition to arbitrary
// per-cell manipulators.
func Calculations(dt float64, calculators ...CellManipulator) DomainManipulator {
	nprocs := runtime.GOMAXPROCS(0)
	return func(g *Grid) error {
		var wg sync.WaitGroup
		wg.Add(nprocs)
		for pp := 0; pp < nprocs; pp++ {
			go func(pp int) {
				defer wg.Done()
				for ii := pp; ii < len(g.Cells); ii += nprocs {
					c := g.Cells[ii]
					for _, f := range calculators {
						f(c, dt)
					}
				}
			}(pp)
		}
		wg.Wait()
		return nil
	}
}

// Log writes a one-line-per-call progress report, matching the
// teacher run.go's Log: iteration count, wall-clock elapsed,
// wall-clock delta since the last call, and simulated time advanced.
func Log(log *logrus.Logger) func(iteration int, simTime, dt float64) {
	startTime := time.Now()
	lastCall := time.Now()
	return func(iteration int, simTime, dt float64) {
		now := time.Now()
		log.WithFields(logrus.Fields{
			"iteration": iteration,
			"walltime":  now.Sub(startTime).Seconds(),
			"dwall":     now.Sub(lastCall).Seconds(),
			"dt":        dt,
			"simTime":   simTime,
		}).Info("step complete")
		lastCall = now
	}
}
