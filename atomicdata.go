/*
 * atomicdata.go, part of goaenet.
 *
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

import "fmt"

//A map for assigning mass to elements.
//Note that only elements commonly seen in potential-fitting work are present
var symbolMass = map[string]float64{
	"H":  1.008,
	"Li": 6.94,
	"Be": 9.012,
	"B":  10.81,
	"C":  12.011,
	"N":  14.007,
	"O":  15.999,
	"F":  18.998,
	"Na": 22.99,
	"Mg": 24.305,
	"Al": 26.982,
	"Si": 28.085,
	"P":  30.974,
	"S":  32.06,
	"Cl": 35.45,
	"K":  39.098,
	"Ca": 40.078,
	"Ti": 47.867,
	"V":  50.942,
	"Cr": 51.996,
	"Mn": 54.938,
	"Fe": 55.845,
	"Co": 58.933,
	"Ni": 58.693,
	"Cu": 63.546,
	"Zn": 65.38,
	"Ga": 69.723,
	"Ge": 72.63,
	"Se": 78.971,
	"Br": 79.904,
	"Zr": 91.224,
	"Nb": 92.906,
	"Mo": 95.95,
	"Pd": 106.42,
	"Ag": 107.868,
	"Cd": 112.414,
	"In": 114.818,
	"Sn": 118.71,
	"Sb": 121.76,
	"I":  126.904,
	"Ta": 180.948,
	"W":  183.84,
	"Pt": 195.084,
	"Au": 196.967,
	"Pb": 207.2,
}

//Mass returns the atomic mass, in amu, for the element with the given
//symbol. It returns an error for symbols not in the internal table.
func Mass(symbol string) (float64, error) {
	m, ok := symbolMass[symbol]
	if !ok {
		return 0, fmt.Errorf("Mass: no mass in the table for element %s", symbol)
	}
	return m, nil
}
