package radhydro

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

// InitialConditionsProvider is the boundary capability spec §9
// describes in place of an embedded scripting engine call per cell:
// given a cell center and the star's position, return the cell's
// initial primitive state and gravitational acceleration.
type InitialConditionsProvider interface {
	Initialise(xc, xs [NDim]float64) (den, pre, hii float64, vel, grav [NDim]float64, err error)
}

// AnalyticalProvider wraps a plain Go function, for initial
// conditions expressible directly in code.
type AnalyticalProvider func(xc, xs [NDim]float64) (den, pre, hii float64, vel, grav [NDim]float64, err error)

// Initialise implements InitialConditionsProvider.
func (f AnalyticalProvider) Initialise(xc, xs [NDim]float64) (float64, float64, float64, [NDim]float64, [NDim]float64, error) {
	return f(xc, xs)
}

// ExprProvider is an InitialConditionsProvider backed by per-field
// algebraic expressions, evaluated with govaluate — the same
// expression-evaluation library the teacher's io.go wires up for its
// Outputter (exp, loglogRR, coxHazard, sum), used here as the
// boundary-concern analogue of the original's embedded Lua
// "initialise" callback (spec §9) without adding a Lua dependency
// that appears nowhere in the retrieval pack.
type ExprProvider struct {
	exprs  map[string]*govaluate.EvaluableExpression
	fields []string
}

var exprProviderFunctions = map[string]govaluate.ExpressionFunction{
	"exp": func(args ...interface{}) (interface{}, error) {
		return math.Exp(args[0].(float64)), nil
	},
	"sqrt": func(args ...interface{}) (interface{}, error) {
		return math.Sqrt(args[0].(float64)), nil
	},
	"pow": func(args ...interface{}) (interface{}, error) {
		return math.Pow(args[0].(float64), args[1].(float64)), nil
	},
	"max": func(args ...interface{}) (interface{}, error) {
		return math.Max(args[0].(float64), args[1].(float64)), nil
	},
}

// fieldOrder is the canonical field list an ExprProvider expects
// expressions for.
var fieldOrder = []string{"den", "pre", "hii", "velx", "vely", "velz", "gravx", "gravy", "gravz"}

// NewExprProvider compiles one algebraic expression per field. Each
// expression may reference xc0,xc1,xc2 (cell center) and xs0,xs1,xs2
// (star position), plus exp/sqrt/pow/max.
func NewExprProvider(exprsByField map[string]string) (*ExprProvider, error) {
	p := &ExprProvider{exprs: make(map[string]*govaluate.EvaluableExpression)}
	for _, field := range fieldOrder {
		src, ok := exprsByField[field]
		if !ok {
			return nil, fmt.Errorf("radhydro: ExprProvider missing expression for field %q", field)
		}
		expr, err := govaluate.NewEvaluableExpressionWithFunctions(src, exprProviderFunctions)
		if err != nil {
			return nil, fmt.Errorf("radhydro: ExprProvider field %q: %w", field, err)
		}
		p.exprs[field] = expr
		p.fields = append(p.fields, field)
	}
	return p, nil
}

// Initialise implements InitialConditionsProvider.
func (p *ExprProvider) Initialise(xc, xs [NDim]float64) (den, pre, hii float64, vel, grav [NDim]float64, err error) {
	params := map[string]interface{}{
		"xc0": xc[0], "xc1": xc[1], "xc2": xc[2],
		"xs0": xs[0], "xs1": xs[1], "xs2": xs[2],
	}
	eval := func(field string) (float64, error) {
		v, evalErr := p.exprs[field].Evaluate(params)
		if evalErr != nil {
			return 0, fmt.Errorf("radhydro: evaluating %q: %w", field, evalErr)
		}
		f, ok := v.(float64)
		if !ok {
			return 0, fmt.Errorf("radhydro: expression for %q did not return a number", field)
		}
		return f, nil
	}
	if den, err = eval("den"); err != nil {
		return
	}
	if pre, err = eval("pre"); err != nil {
		return
	}
	if hii, err = eval("hii"); err != nil {
		return
	}
	for i, f := range []string{"velx", "vely", "velz"} {
		if vel[i], err = eval(f); err != nil {
			return
		}
	}
	for i, f := range []string{"gravx", "gravy", "gravz"} {
		if grav[i], err = eval(f); err != nil {
			return
		}
	}
	return
}
