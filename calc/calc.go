/*
 * calc.go, part of goaenet.
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

//Package calc drives the aenet programs. Each program has its own handle
//that builds its input files from an aenet.Algorithm and the reference
//structures, runs the binary, and reads its results back. The binaries
//themselves (generate.x, train.x and predict.x) must be obtained and
//compiled separately.
package calc

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	aenet "github.com/rmera/goaenet"
)

//TrainingSet is the name of the binary training-set file that generate.x
//produces and train.x consumes.
const TrainingSet = "train.dat"

//Handle is what the three program drivers have in common. The rest of
//each driver's API depends on what its program consumes and produces, so
//it is not part of the interface.
type Handle interface {
	SetName(string)
	SetCommand(string)
	SetWorkDir(string)
	Run(wait bool) error
}

//errDecorate decorates err with the caller's name when err implements
//aenet.Error, and falls back to fmt wrapping otherwise.
func errDecorate(err error, caller string) error {
	err2, ok := err.(aenet.Error)
	if !ok {
		return fmt.Errorf("%s: %w", caller, err)
	}
	err2.Decorate(caller)
	return err2
}

//ftoa renders a float the shortest way that still reads back to the same
//value.
func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

//writeLines writes lines to a new file with the given name, one per line,
//ending the file with a newline.
func writeLines(name string, lines []string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(strings.Join(lines, "\n") + "\n")
	return err
}

//search a file backwards, i.e., starting from the end, for a string.
//Returns the line that contains the string, or an empty string.
func searchBackwards(str, filename string) string {
	var ini int64 = 0
	var end int64 = 0
	var first bool
	first = true
	buf := make([]byte, 1)
	f, err := os.Open(filename)
	if err != nil {
		return ""
	}
	defer f.Close()
	var i int64 = 1
	for ; ; i++ {
		if _, err := f.Seek(-1*i, 2); err != nil {
			return ""
		}
		if _, err := f.Read(buf); err != nil {
			return ""
		}
		if buf[0] == byte('\n') && first == false {
			first = true
		} else if buf[0] == byte('\n') && end == 0 {
			end = i
		} else if buf[0] == byte('\n') && ini == 0 {
			ini = i
			f.Seek(-1*(ini), 2)
			bufF := make([]byte, ini-end)
			f.Read(bufF)
			if strings.Contains(string(bufF), str) {
				return string(bufF)
			}
			end = 0
			ini = 0
		}

	}
}
