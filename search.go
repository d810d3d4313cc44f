/*
 * search.go, part of idock.
 *
 * Copyright 2024 The idock developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package dock

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

//The pose search: randomized-restart Monte Carlo whose local
//optimization step is a BFGS quasi-Newton descent under Wolfe
//line-search conditions, over the 6+T tangent space of the
//conformation manifold.

const (
	numMCIterations = 50  //fixed-length outer loop, no convergence test
	numAlphas       = 5   //line-search step trials per descent direction
	alphaShrink     = 0.1 //step shrink factor between trials
	armijoC1        = 1e-4
	curvatureC2     = 0.9
	eUpperPerAtom   = 40.0 //conformations above 40*numHeavyAtoms are dropped
)

//evalFunc is the objective the optimizer minimizes: it evaluates the
//conformation c, filling the gradient g, and reports ok=false when the
//energy exceeded eUpper before the evaluation completed.
type evalFunc func(c *Conformation, eUpper float64, g []float64) (e, f float64, ok bool)

//TraceFunc observes every pose the Metropolis step accepts. It must be
//safe for concurrent use; tasks on different seeds call it in parallel.
type TraceFunc func(seed uint64, e float64, heavy []Vec3)

//bfgs descends from the conformation c1 (energy e1, gradient g1) to a
//local minimum, advancing c1/g1 in place and returning the final
//energies. The inverse Hessian approximation starts as the identity;
//each accepted step applies the rank-2 BFGS update. The loop ends when
//the line search cannot find a step satisfying both Wolfe conditions
//within numAlphas trials.
func bfgs(eval evalFunc, c1 *Conformation, e1, f1 float64, g1 []float64) (float64, float64) {
	n := len(g1)
	h := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		h.SetSym(i, i, 1)
	}
	c2 := NewConformation(len(c1.Torsions))
	p := make([]float64, n)
	g2 := make([]float64, n)
	y := make([]float64, n)
	mhy := make([]float64, n)

	for {
		//Descent direction p = -H*g.
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < n; j++ {
				sum += h.At(i, j) * g1[j]
			}
			p[i] = -sum
		}
		pg1 := floats.Dot(p, g1)

		//Line search: alpha starts at 1 and shrinks until a step
		//satisfies the Armijo rule (checked through the evaluator's
		//energy bound) and the curvature condition.
		alpha := 1.0
		accepted := false
		var e2, f2 float64
		for trial := 0; trial < numAlphas; trial++ {
			c2.Step(c1, alpha, p)
			var ok bool
			e2, f2, ok = eval(c2, e1+armijoC1*alpha*pg1, g2)
			if ok {
				if floats.Dot(p, g2) >= curvatureC2*pg1 {
					accepted = true
					break
				}
			}
			alpha *= alphaShrink
		}
		if !accepted {
			return e1, f1
		}

		//BFGS rank-2 update of the inverse Hessian.
		floats.SubTo(y, g2, g1)
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < n; j++ {
				sum += h.At(i, j) * y[j]
			}
			mhy[i] = -sum
		}
		yhy := -floats.Dot(y, mhy)
		yp := floats.Dot(y, p)
		ryp := 1 / yp
		pco := ryp * (ryp*yhy + alpha)
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				h.SetSym(i, j, h.At(i, j)+ryp*(mhy[i]*p[j]+mhy[j]*p[i])+pco*p[i]*p[j])
			}
		}

		c1.Set(c2)
		e1 = e2
		f1 = f2
		copy(g1, g2)
	}
}

//MonteCarloTask runs one independent, seeded pose search of lig against
//the receptor and scoring table and returns its best pose. Identical
//seeds yield identical results bit for bit, no matter how many tasks
//run concurrently. trace may be nil.
func MonteCarloTask(lig *Ligand, sf *ScoringFunction, rec *Receptor, seed uint64, trace TraceFunc) *Result {
	ev := NewEvaluator(lig, sf, rec)
	u := distuv.Uniform{Min: -1, Max: 1, Src: rand.NewSource(seed)}
	nt := lig.NumActiveTorsions
	eUpper := eUpperPerAtom * float64(len(lig.HeavyAtoms))
	b := rec.Box

	//Random initial conformation. The position draw scales the whole
	//half-span by a single deviate; changing the draw sequence changes
	//every seeded result.
	c0 := NewConformation(nt)
	c0.Position = b.Center.Add(b.Span.Scale(u.Rand()))
	c0.Orientation = Qtn4{u.Rand(), u.Rand(), u.Rand(), u.Rand()}.Normalize()
	for i := range c0.Torsions {
		c0.Torsions[i] = u.Rand()
	}
	g0 := make([]float64, ev.NumVariables())
	e0, f0, _ := ev.Evaluate(c0, math.Inf(1), g0)
	best := ev.ComposeResult(e0, f0, c0)
	if trace != nil {
		trace(seed, e0, best.HeavyAtoms)
	}

	c1 := NewConformation(nt)
	g1 := make([]float64, ev.NumVariables())
	for mc := 0; mc < numMCIterations; mc++ {
		//Mutate: perturb the position only; orientation and torsions
		//move inside the local optimization.
		c1.Set(c0)
		c1.Position = c1.Position.Add(Vec3{u.Rand(), u.Rand(), u.Rand()})
		e1, f1, ok := ev.Evaluate(c1, eUpper, g1)
		if !ok {
			continue //above the drop bound, reject outright
		}
		e1, f1 = bfgs(ev.Evaluate, c1, e1, f1, g1)

		//Metropolis step, accepting improvements only.
		if e1 < e0 {
			best = ev.ComposeResult(e1, f1, c1)
			if trace != nil {
				trace(seed, e1, best.HeavyAtoms)
			}
			c0.Set(c1)
			e0 = e1
		}
	}
	return best
}
