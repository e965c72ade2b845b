/*
 * errors.go, part of goaenet.
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

//Error is the interface fulfilled by all goaenet errors. Decorate adds
//information about the callers of the failing function to the error, and
//returns the accumulated decoration.
type Error interface {
	Error() string
	Decorate(string) []string
}

//errDecorate decorates err with the caller's name when err implements
//Error, and falls back to fmt wrapping otherwise.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return fmt.Errorf("%s: %w", caller, err)
	}
	err2.Decorate(caller)
	return err2
}

func decoString(deco []string) string {
	if len(deco) == 0 {
		return ""
	}
	return " (" + strings.Join(deco, "/") + ")"
}

//MissingForceDataError is returned when a Structure that carries no atomic
//forces is serialized to a format where forces are mandatory, such as the
//XSF files that make up an aenet training set.
type MissingForceDataError struct {
	Structure string //label of the offending structure
	deco      []string
}

func (err *MissingForceDataError) Error() string {
	return fmt.Sprintf("goaenet: structure %q has no force data, required by the training-set format%s", err.Structure, decoString(err.deco))
}

//Decorate adds new information to the error
func (err *MissingForceDataError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//UnknownElementError is returned when a structure contains an element for
//which the Algorithm carries no parameterization, so no setup or network
//can be assigned to its atoms.
type UnknownElementError struct {
	Symbol    string //the unparameterized element
	Structure string //label of the structure where it appears
	deco      []string
}

func (err *UnknownElementError) Error() string {
	return fmt.Sprintf("goaenet: element %s in structure %q is not parameterized%s", err.Symbol, err.Structure, decoString(err.deco))
}

//Decorate adds new information to the error
func (err *UnknownElementError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//EmptyReferenceSetError is returned when an input builder is given zero
//reference structures, which would produce a control file the aenet
//programs reject.
type EmptyReferenceSetError struct {
	Phase string //"generate" or "predict"
	deco  []string
}

func (err *EmptyReferenceSetError) Error() string {
	return fmt.Sprintf("goaenet: no reference structures given for the %s phase%s", err.Phase, decoString(err.deco))
}

//Decorate adds new information to the error
func (err *EmptyReferenceSetError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//MalformedOutputError is returned by the output parsers when a sentinel
//line that marks the section to be read never appears in the file.
type MalformedOutputError struct {
	File     string //the file that was being parsed
	Sentinel string //the line, or start of a line, that was expected
	deco     []string
}

func (err *MalformedOutputError) Error() string {
	return fmt.Sprintf("goaenet: file %s does not contain the expected marker %q%s", err.File, err.Sentinel, decoString(err.deco))
}

//Decorate adds new information to the error
func (err *MalformedOutputError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//ResultCountMismatchError is returned when the number of result records
//recovered from a program's output does not match the number of structures
//submitted to it.
type ResultCountMismatchError struct {
	File string //the file that was being parsed
	Want int    //structures submitted
	Got  int    //records recovered
	deco []string
}

func (err *ResultCountMismatchError) Error() string {
	return fmt.Sprintf("goaenet: file %s holds %d result records for %d structures%s", err.File, err.Got, err.Want, decoString(err.deco))
}

//Decorate adds new information to the error
func (err *ResultCountMismatchError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
