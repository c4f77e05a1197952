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

// Package bug holds the normalized finding shape every analysis tool reduces
// its raw output to.
package bug

import (
	"strings"
)

type Severity string

const (
	Error       Severity = "error"
	Warning     Severity = "warning"
	Critical    Severity = "critical"
	Information Severity = "information"
)

// Record is one actionable defect reported by a tool.
// Line 0 means the location is unknown.
type Record struct {
	Line     int      `json:"line"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Category string   `json:"category,omitempty"`
}

// NewRecord trims the message and refuses records without one.
func NewRecord(line int, severity Severity, message, category string) (Record, bool) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Record{}, false
	}
	if line < 0 {
		line = 0
	}
	return Record{
		Line:     line,
		Severity: severity,
		Message:  message,
		Category: category,
	}, true
}

// Outcome is the result of one tool run against one target.
type Outcome struct {
	Target string   `json:"target"`
	Tool   string   `json:"tool"`
	Bugs   []Record `json:"bugs"`
	Passed bool     `json:"passed"`
}

func NewOutcome(target, tool string, bugs []Record) *Outcome {
	copied := make([]Record, len(bugs))
	copy(copied, bugs)
	return &Outcome{
		Target: target,
		Tool:   tool,
		Bugs:   copied,
		Passed: len(copied) == 0,
	}
}

func CountBySeverity(records []Record) map[Severity]int {
	cnt := make(map[Severity]int)
	for _, r := range records {
		cnt[r.Severity]++
	}
	return cnt
}
