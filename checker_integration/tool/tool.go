/*
NaiveSystems Analyze - A tool for static code analysis
Copyright (C) 2023  Naive Systems Ltd.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package tool defines the contract every analysis tool adapter implements and
// the process plumbing they share.
package tool

import (
	"fmt"

	"naive.systems/toolbench/analyzer/bug"
)

type Tool interface {
	Name() string
	// RunAnalysis spawns the tool once against target. Missing binaries,
	// timeouts and launch failures come back as a RawOutput, not as an error.
	RunAnalysis(target string) (RawOutput, error)
	// ParseOutput must not perform I/O.
	ParseOutput(raw RawOutput) []bug.Record
}

// Run analyzes target and parses exactly the output that run produced.
func Run(t Tool, target string) (*bug.Outcome, error) {
	raw, err := t.RunAnalysis(target)
	if err != nil {
		return nil, fmt.Errorf("%s on %s: %v", t.Name(), target, err)
	}
	return bug.NewOutcome(target, t.Name(), t.ParseOutput(raw)), nil
}
