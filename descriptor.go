/*
 * descriptor.go, part of goaenet.
 *
 * Copyright 2024 Raul Mera <rmeraa{at}academicosdotutadotcl>
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

package aenet

import (
	"fmt"
	"strings"
)

//Descriptor is one of the environment-encoding schemes that generate.x can
//evaluate. Exactly two are implemented, Behler and Chebyshev, and the set
//is closed: the fingerprint syntax of the setup files is specific to each.
type Descriptor interface {
	//Fingerprints returns the lines of the fingerprint block of a setup
	//file, for an alloy with the given element symbols.
	Fingerprints(symbols []string) []string
	isDescriptor()
}

//Behler parameterizes Behler-Parrinello symmetry functions: radial (G=2)
//functions for each element and decay rate, and angular (G=4) functions
//for each pair of elements and each sharpness/parity/decay combination.
//There is no default cutoff; a Behler descriptor with Cutoff 0 is a
//mistake.
type Behler struct {
	Cutoff    float64   //Rc, in A, shared by all functions
	G2Etas    []float64 //radial decay rates
	G4Etas    []float64 //angular decay rates
	G4Lambdas []float64 //angular parity, +1 or -1
	G4Zetas   []float64 //angular sharpness
}

func (B *Behler) isDescriptor() {}

//Fingerprints enumerates the symmetry-function records: one G=2 record per
//symbol and radial eta, then one G=4 record per unordered pair of symbols
//(repeats included) for every zeta, lambda and eta. The records, as
//key=value tokens joined by two spaces, follow the SYMMFUNC header and the
//total count.
func (B *Behler) Fingerprints(symbols []string) []string {
	rc := ftoa(B.Cutoff)
	records := make([]string, 0, len(symbols)*len(B.G2Etas))
	for _, s := range symbols {
		for _, eta := range B.G2Etas {
			records = append(records, strings.Join([]string{
				"G=2",
				"type2=" + s,
				"eta=" + ftoa(eta),
				"Rs=0",
				"Rc=" + rc,
			}, "  "))
		}
	}
	for _, zeta := range B.G4Zetas {
		for _, lambda := range B.G4Lambdas {
			for _, eta := range B.G4Etas {
				for i := range symbols {
					for j := i; j < len(symbols); j++ {
						records = append(records, strings.Join([]string{
							"G=4",
							"type2=" + symbols[i],
							"type3=" + symbols[j],
							"eta=" + ftoa(eta),
							"lambda=" + ftoa(lambda),
							"zeta=" + ftoa(zeta),
							"Rc=" + rc,
						}, "  "))
					}
				}
			}
		}
	}
	lines := make([]string, 0, len(records)+2)
	lines = append(lines, "SYMMFUNC type=Behler2011", fmt.Sprintf("%d", len(records)))
	lines = append(lines, records...)
	return lines
}

//Chebyshev parameterizes the Chebyshev polynomial basis descriptor. Fields
//left at zero take the usual values: cutoffs of 4.0 A and expansion orders
//of 6 (radial) and 2 (angular).
type Chebyshev struct {
	RadialCutoff  float64
	RadialN       int
	AngularCutoff float64
	AngularN      int
}

func (C *Chebyshev) isDescriptor() {}

//Fingerprints returns the two-line Chebyshev basis block. The element list
//does not enter the parameterization, only the setup header.
func (C *Chebyshev) Fingerprints(symbols []string) []string {
	rc := C.RadialCutoff
	if rc == 0 {
		rc = 4.0
	}
	rn := C.RadialN
	if rn == 0 {
		rn = 6
	}
	ac := C.AngularCutoff
	if ac == 0 {
		ac = 4.0
	}
	an := C.AngularN
	if an == 0 {
		an = 2
	}
	return []string{
		"BASIS type=Chebyshev",
		fmt.Sprintf("radial_Rc = %s radial_N = %d angular_Rc = %s angular_N = %d", ftoa(rc), rn, ftoa(ac), an),
	}
}
