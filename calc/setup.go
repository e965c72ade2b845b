/*
 * setup.go, part of goaenet.
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

package calc

import (
	"fmt"
	"strings"

	aenet "github.com/rmera/goaenet"
)

//Setups returns the text of the structural fingerprint setup file for
//each parameterized element, keyed by element symbol. generate.x reads
//one such file per element. The same environment (all the symbols in A,
//in order) is declared in every file.
func Setups(A *aenet.Algorithm) map[string]string {
	symbols := A.Symbols()
	ret := make(map[string]string, len(symbols))
	for _, el := range A.Elements {
		lines := setupLines(el.Symbol, symbols, A.RMin, A.Descriptor)
		ret[el.Symbol] = strings.Join(lines, "\n") + "\n"
	}
	return ret
}

//SetupFileName returns the name under which the setup for an element is
//written, and referenced from generate.in.
func SetupFileName(symbol string) string {
	return symbol + ".stp"
}

func setupLines(symbol string, symbols []string, rmin float64, d aenet.Descriptor) []string {
	lines := []string{
		"DESCR",
		fmt.Sprintf("Setup for %s", symbol),
		"END DESCR",
		"",
		fmt.Sprintf("ATOM %s", symbol),
		"",
		fmt.Sprintf("ENV %d", len(symbols)),
	}
	lines = append(lines, symbols...)
	lines = append(lines, "", fmt.Sprintf("RMIN %sd0", ftoa(rmin)), "")
	lines = append(lines, d.Fingerprints(symbols)...)
	return lines
}
