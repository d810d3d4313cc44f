/*
 * evaluate.go, part of idock.
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

//Conformation is one choice of the ligand degrees of freedom: where its
//root origin sits, how the root frame is oriented, and the angle of
//every active torsion. The orientation is a unit quaternion at all
//times; torsions are kept in [-pi, pi).
type Conformation struct {
	Position    Vec3
	Orientation Qtn4
	Torsions    []float64
}

//NewConformation returns the neutral conformation for a ligand with
//numActiveTorsions torsional degrees of freedom.
func NewConformation(numActiveTorsions int) *Conformation {
	return &Conformation{
		Position:    Zero3,
		Orientation: Qtn4id,
		Torsions:    make([]float64, numActiveTorsions),
	}
}

//Set copies src into c. The torsion slices must have the same length.
func (c *Conformation) Set(src *Conformation) {
	if len(c.Torsions) != len(src.Torsions) {
		panic(ErrShape)
	}
	c.Position = src.Position
	c.Orientation = src.Orientation
	copy(c.Torsions, src.Torsions)
}

//Step puts src advanced by alpha times the tangent direction p into c:
//the position moves linearly, the orientation is premultiplied by the
//rotation encoded in alpha*p[3:6] and renormalized, the torsions move
//linearly and wrap. p has 6+T components.
func (c *Conformation) Step(src *Conformation, alpha float64, p []float64) {
	if len(p) != 6+len(src.Torsions) || len(c.Torsions) != len(src.Torsions) {
		panic(ErrShape)
	}
	c.Position = src.Position.Add(Vec3{alpha * p[0], alpha * p[1], alpha * p[2]})
	rot := NewQtn4Rotation(Vec3{alpha * p[3], alpha * p[4], alpha * p[5]})
	c.Orientation = rot.Mul(src.Orientation).Normalize()
	for i := range c.Torsions {
		c.Torsions[i] = wrapAngle(src.Torsions[i] + alpha*p[6+i])
	}
}

//Evaluator computes coordinates, free energy and the energy gradient of
//one ligand against one receptor and scoring table. It owns the
//per-task scratch buffers, so each docking task gets its own Evaluator
//while the ligand, receptor and table stay shared and read-only.
type Evaluator struct {
	lig *Ligand
	sf  *ScoringFunction
	rec *Receptor

	coords  []Vec3 //heavy atom positions for the last conformation
	derivs  []Vec3 //d(energy)/d(position) per heavy atom
	origins []Vec3 //per frame
	rots    []Mat3 //per frame
	orients []Qtn4 //per frame
	axes    []Vec3 //per frame rotor axis, world space
	force   []Vec3 //per frame accumulated force
	torque  []Vec3 //per frame accumulated torque
}

//NewEvaluator binds a ligand to a scoring table and receptor and
//allocates the scratch space of one docking task.
func NewEvaluator(lig *Ligand, sf *ScoringFunction, rec *Receptor) *Evaluator {
	if lig == nil {
		panic(ErrNilLigand)
	}
	nf := len(lig.Frames)
	return &Evaluator{
		lig:     lig,
		sf:      sf,
		rec:     rec,
		coords:  make([]Vec3, len(lig.HeavyAtoms)),
		derivs:  make([]Vec3, len(lig.HeavyAtoms)),
		origins: make([]Vec3, nf),
		rots:    make([]Mat3, nf),
		orients: make([]Qtn4, nf),
		axes:    make([]Vec3, nf),
		force:   make([]Vec3, nf),
		torque:  make([]Vec3, nf),
	}
}

//NumVariables returns the dimension of the tangent space the search
//optimizes over: 3 positional, 3 orientational, one per active torsion.
func (ev *Evaluator) NumVariables() int {
	return 6 + ev.lig.NumActiveTorsions
}

//forwardKinematics turns the conformation c into cartesian heavy-atom
//coordinates and per-frame origins/orientations.
func (ev *Evaluator) forwardKinematics(c *Conformation) {
	if !c.Orientation.IsNormalized() {
		panic(ErrNotNormalized)
	}
	lig := ev.lig
	ev.origins[0] = c.Position
	ev.orients[0] = c.Orientation
	ev.rots[0] = c.Orientation.RotMatrix()
	for i := 1; i < len(lig.Frames); i++ {
		f := &lig.Frames[i]
		p := f.Parent
		ev.origins[i] = ev.origins[p].Add(ev.rots[p].MulVec(f.YY))
		axis := ev.rots[p].MulVec(f.Axis)
		ev.axes[i] = axis
		theta := 0.0
		if f.Active {
			theta = c.Torsions[f.TorsionIdx]
		}
		ev.orients[i] = NewQtn4Rotation(axis.Scale(theta)).Mul(ev.orients[p]).Normalize()
		ev.rots[i] = ev.orients[i].RotMatrix()
	}
	for k := range lig.HeavyAtoms {
		a := &lig.HeavyAtoms[k]
		ev.coords[k] = ev.origins[a.Frame].Add(ev.rots[a.Frame].MulVec(a.Rel))
	}
}

//Evaluate computes the free energy of the conformation c and its
//gradient over the 6+T tangent space into g. It returns ok=false as
//soon as the accumulating energy reaches eUpper; that is the normal
//early-out the line search relies on, not an error, and g is not valid
//in that case. e is the total energy, f its inter-molecular part.
func (ev *Evaluator) Evaluate(c *Conformation, eUpper float64, g []float64) (e, f float64, ok bool) {
	lig := ev.lig
	if len(g) != ev.NumVariables() {
		panic(ErrShape)
	}
	ev.forwardKinematics(c)

	for k := range ev.derivs {
		ev.derivs[k] = Zero3
	}

	//Inter-molecular energy: every ligand heavy atom against the
	//receptor atoms bucketed in its partition cell.
	for k := range lig.HeavyAtoms {
		a := &lig.HeavyAtoms[k]
		x := ev.coords[k]
		for _, ri := range ev.rec.PartitionFor(x) {
			ra := &ev.rec.Atoms[ri]
			r2 := DistSqr(x, ra.Coord)
			if r2 >= CutoffSqr {
				continue
			}
			es, dor := ev.sf.Evaluate(TriIndexPermissive(a.XS, ra.XS), r2)
			e += es
			ev.derivs[k] = ev.derivs[k].Add(x.Sub(ra.Coord).Scale(dor))
		}
		if e >= eUpper { //dropped: not better than the bound
			return e, e, false
		}
	}
	f = e

	//Intra-molecular energy over the precomputed interacting pairs.
	for i := range lig.Pairs {
		p := &lig.Pairs[i]
		v := ev.coords[p.J].Sub(ev.coords[p.I])
		r2 := v.NormSqr()
		if r2 >= CutoffSqr {
			continue
		}
		es, dor := ev.sf.Evaluate(p.TypePair, r2)
		e += es
		v = v.Scale(dor)
		ev.derivs[p.J] = ev.derivs[p.J].Add(v)
		ev.derivs[p.I] = ev.derivs[p.I].Sub(v)
	}
	if e >= eUpper {
		return e, f, false
	}

	//Fold the per-atom derivatives into the tangent space: net force
	//and torque per frame, children before parents, then the torsion
	//components as the projection of each frame's torque on its axis.
	for i := range ev.force {
		ev.force[i] = Zero3
		ev.torque[i] = Zero3
	}
	for k := range lig.HeavyAtoms {
		fr := lig.HeavyAtoms[k].Frame
		ev.force[fr] = ev.force[fr].Add(ev.derivs[k])
		ev.torque[fr] = ev.torque[fr].Add(ev.coords[k].Sub(ev.origins[fr]).Cross(ev.derivs[k]))
	}
	for i := len(lig.Frames) - 1; i > 0; i-- {
		fr := &lig.Frames[i]
		p := fr.Parent
		if fr.Active {
			g[6+fr.TorsionIdx] = ev.axes[i].Dot(ev.torque[i])
		}
		ev.force[p] = ev.force[p].Add(ev.force[i])
		ev.torque[p] = ev.torque[p].Add(ev.torque[i].Add(ev.origins[i].Sub(ev.origins[p]).Cross(ev.force[i])))
	}
	g[0], g[1], g[2] = ev.force[0][0], ev.force[0][1], ev.force[0][2]
	g[3], g[4], g[5] = ev.torque[0][0], ev.torque[0][1], ev.torque[0][2]
	return e, f, true
}

//ComposeResult materializes a Result from the conformation c: fresh
//heavy-atom and hydrogen coordinates in the original atom order,
//carrying the energies e (total) and f (inter-molecular part).
func (ev *Evaluator) ComposeResult(e, f float64, c *Conformation) *Result {
	ev.forwardKinematics(c)
	lig := ev.lig
	r := &Result{
		E:          e,
		F:          f,
		HeavyAtoms: make([]Vec3, len(lig.HeavyAtoms)),
		Hydrogens:  make([]Vec3, len(lig.Hydrogens)),
	}
	copy(r.HeavyAtoms, ev.coords)
	for k := range lig.Hydrogens {
		a := &lig.Hydrogens[k]
		r.Hydrogens[k] = ev.origins[a.Frame].Add(ev.rots[a.Frame].MulVec(a.Rel))
	}
	return r
}
