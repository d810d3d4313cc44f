/*
 * atom.go, part of idock.
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

//AutoDock atom types (the typing found in column 78-79 of a PDBQT
//file) and the coarser XS typing the scoring function works on.

//AutoDock type indices. ADTypeSize is the number of known types.
const (
	adTypeH = iota
	adTypeHD
	adTypeC
	adTypeA
	adTypeN
	adTypeNA
	adTypeOA
	adTypeSA
	adTypeS
	adTypeP
	adTypeF
	adTypeCl
	adTypeBr
	adTypeI
	adTypeZn
	adTypeFe
	adTypeMg
	adTypeCa
	adTypeMn
	adTypeCu
	adTypeNa
	adTypeK
	adTypeHg
	adTypeNi
	ADTypeSize
)

var adTypeStrings = [ADTypeSize]string{
	"H", "HD", "C", "A", "N", "NA", "OA", "SA", "S", "P",
	"F", "Cl", "Br", "I", "Zn", "Fe", "Mg", "Ca", "Mn", "Cu",
	"Na", "K", "Hg", "Ni",
}

//ParseADType maps an AutoDock type string to its index. ok is false
//when the string is not in the table.
func ParseADType(s string) (ad int, ok bool) {
	for i, v := range adTypeStrings {
		if s == v {
			return i, true
		}
	}
	return ADTypeSize, false
}

//ADTypeString returns the AutoDock type string for the index ad.
func ADTypeString(ad int) string {
	return adTypeStrings[ad]
}

//Covalent radii per AutoDock type, already scaled by the 1.1 tolerance
//used for bond perception, so two atoms are bonded when their distance
//is under the sum of these. Element values from Cordero et al., 2008
//(DOI:10.1039/B801115J).
var adCovalentRadius = [ADTypeSize]float64{
	1.1 * 0.31, //H
	1.1 * 0.31, //HD
	1.1 * 0.76, //C
	1.1 * 0.76, //A
	1.1 * 0.71, //N
	1.1 * 0.71, //NA
	1.1 * 0.66, //OA
	1.1 * 1.05, //SA
	1.1 * 1.05, //S
	1.1 * 1.07, //P
	1.1 * 0.57, //F
	1.1 * 1.02, //Cl
	1.1 * 1.20, //Br
	1.1 * 1.39, //I
	1.1 * 1.22, //Zn
	1.1 * 1.32, //Fe
	1.1 * 1.41, //Mg
	1.1 * 1.76, //Ca
	1.1 * 1.39, //Mn
	1.1 * 1.32, //Cu
	1.1 * 1.66, //Na
	1.1 * 2.03, //K
	1.1 * 1.32, //Hg
	1.1 * 1.24, //Ni
}

//XS type indices. The scoring function distinguishes elements plus the
//hydrophobic/donor/acceptor role, nothing finer. XSTypeSize is the
//number of XS types and the dimension of the scoring table.
const (
	xsCH = iota //hydrophobic carbon
	xsCP        //polar carbon (bonded to a hetero atom)
	xsNP        //nitrogen, plain acceptor-less
	xsND        //nitrogen donor
	xsNA        //nitrogen acceptor
	xsNDA       //nitrogen donor and acceptor
	xsOA        //oxygen acceptor
	xsODA       //oxygen donor and acceptor
	xsSP        //sulfur
	xsPP        //phosphorus
	xsFH        //fluorine, counts as hydrophobic
	xsClH       //chlorine
	xsBrH       //bromine
	xsIH        //iodine
	xsMetD      //metal, hydrogen bond donor
	XSTypeSize
)

var xsTypeStrings = [XSTypeSize]string{
	"C_H", "C_P", "N_P", "N_D", "N_A", "N_DA", "O_A", "O_DA",
	"S_P", "P_P", "F_H", "Cl_H", "Br_H", "I_H", "Met_D",
}

//XSTypeString returns the name of the XS type t, for diagnostics and
//plot labels.
func XSTypeString(t int) string {
	return xsTypeStrings[t]
}

//Van der Waals radii per XS type, in Angstroms.
var xsVdwRadii = [XSTypeSize]float64{
	1.9, //C_H
	1.9, //C_P
	1.8, //N_P
	1.8, //N_D
	1.8, //N_A
	1.8, //N_DA
	1.7, //O_A
	1.7, //O_DA
	2.0, //S_P
	2.1, //P_P
	1.5, //F_H
	1.8, //Cl_H
	2.0, //Br_H
	2.2, //I_H
	1.2, //Met_D
}

//XSVdwRadius returns the van der Waals radius of the XS type t.
func XSVdwRadius(t int) float64 {
	return xsVdwRadii[t]
}

//XSIsHydrophobic tells whether the XS type t makes hydrophobic contacts.
func XSIsHydrophobic(t int) bool {
	return t == xsCH || t == xsFH || t == xsClH || t == xsBrH || t == xsIH
}

//XSIsDonor tells whether the XS type t can donate a hydrogen bond.
func XSIsDonor(t int) bool {
	return t == xsND || t == xsNDA || t == xsODA || t == xsMetD
}

//XSIsAcceptor tells whether the XS type t can accept a hydrogen bond.
func XSIsAcceptor(t int) bool {
	return t == xsNA || t == xsNDA || t == xsOA || t == xsODA
}

//XSHBond tells whether the unordered pair (t1, t2) can form a hydrogen
//bond, i.e. one is a donor and the other an acceptor.
func XSHBond(t1, t2 int) bool {
	return (XSIsDonor(t1) && XSIsAcceptor(t2)) || (XSIsDonor(t2) && XSIsAcceptor(t1))
}

//adToXS gives the XS type an atom of a given AutoDock type starts out
//with. Donor promotion and carbon de-hydrophobicization refine it once
//the bonding context is known.
var adToXS = [ADTypeSize]int{
	adTypeH:  -1,
	adTypeHD: -1,
	adTypeC:  xsCH,
	adTypeA:  xsCH,
	adTypeN:  xsNP,
	adTypeNA: xsNA,
	adTypeOA: xsOA,
	adTypeSA: xsSP,
	adTypeS:  xsSP,
	adTypeP:  xsPP,
	adTypeF:  xsFH,
	adTypeCl: xsClH,
	adTypeBr: xsBrH,
	adTypeI:  xsIH,
	adTypeZn: xsMetD,
	adTypeFe: xsMetD,
	adTypeMg: xsMetD,
	adTypeCa: xsMetD,
	adTypeMn: xsMetD,
	adTypeCu: xsMetD,
	adTypeNa: xsMetD,
	adTypeK:  xsMetD,
	adTypeHg: xsMetD,
	adTypeNi: xsMetD,
}

//Atom is one receptor or ligand atom. Only heavy atoms reach the
//scoring code; hydrogens either promote their bonded heavy atom to a
//donor (polar ones) or are dropped before an Atom is ever built for the
//receptor. Ligand hydrogens are kept for output, not for scoring.
type Atom struct {
	Serial int
	Name   string
	Coord  Vec3
	AD     int //AutoDock type index
	XS     int //XS type index, -1 for hydrogens
}

//NewAtom builds an atom and derives its starting XS type from the
//AutoDock type.
func NewAtom(serial int, name string, coord Vec3, ad int) Atom {
	return Atom{Serial: serial, Name: name, Coord: coord, AD: ad, XS: adToXS[ad]}
}

//IsHydrogen tells whether the atom is a (polar or non-polar) hydrogen.
func (a *Atom) IsHydrogen() bool {
	return a.AD == adTypeH || a.AD == adTypeHD
}

//IsHetero tells whether the atom is neither carbon nor hydrogen.
func (a *Atom) IsHetero() bool {
	return a.AD >= adTypeN
}

//IsNeighbor tells whether a and b are close enough to be covalently
//bonded, judged from their covalent radii.
func (a *Atom) IsNeighbor(b *Atom) bool {
	r := adCovalentRadius[a.AD] + adCovalentRadius[b.AD]
	return DistSqr(a.Coord, b.Coord) < r*r
}

//Donorize promotes the atom to a hydrogen bond donor. Called when a
//polar hydrogen is found bonded to it.
func (a *Atom) Donorize() {
	switch a.XS {
	case xsNP:
		a.XS = xsND
	case xsNA:
		a.XS = xsNDA
	case xsOA:
		a.XS = xsODA
	}
	//Met_D is a donor already.
}

//Dehydrophobicize drops the hydrophobic role of a carbon that turned
//out to be bonded to a hetero atom.
func (a *Atom) Dehydrophobicize() {
	if a.XS == xsCH {
		a.XS = xsCP
	}
}
