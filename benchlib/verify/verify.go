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

// Package verify reconciles the bugs a tool found with the bugs the ground
// truth expects. Only counts are compared; finding more than expected is
// accepted, finding fewer is not.
package verify

import (
	"strings"

	"golang.org/x/text/message"
	"naive.systems/toolbench/analyzer/bug"
	"naive.systems/toolbench/benchlib/groundtruth"
)

type Verdict int

const (
	// findings exist but nothing was expected, so they cannot be judged
	UnverifiableFindings Verdict = iota
	SuccessClean
	SuccessMatch
	Mismatch
)

func (v Verdict) String() string {
	switch v {
	case UnverifiableFindings:
		return "UNVERIFIABLE_FINDINGS"
	case SuccessClean:
		return "SUCCESS_CLEAN"
	case SuccessMatch:
		return "SUCCESS_MATCH"
	case Mismatch:
		return "MISMATCH"
	default:
		return "UNKNOWN"
	}
}

func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

type Result struct {
	Verdict  Verdict      `json:"verdict"`
	Expected int          `json:"expected"`
	Found    int          `json:"found"`
	Findings []bug.Record `json:"findings,omitempty"`
}

func Compare(expected []groundtruth.Bug, found []bug.Record) Result {
	expectedCount := len(expected)
	foundCount := len(found)
	result := Result{Expected: expectedCount, Found: foundCount}
	switch {
	case expectedCount == 0 && foundCount > 0:
		result.Verdict = UnverifiableFindings
	case expectedCount == 0 && foundCount == 0:
		result.Verdict = SuccessClean
	case foundCount >= expectedCount:
		result.Verdict = SuccessMatch
	default:
		result.Verdict = Mismatch
	}
	if result.Verdict == UnverifiableFindings || result.Verdict == Mismatch {
		result.Findings = make([]bug.Record, foundCount)
		copy(result.Findings, found)
	}
	return result
}

func (r Result) Passed() bool {
	return r.Verdict == SuccessClean || r.Verdict == SuccessMatch
}

// Lines renders the mini-report printed after each tool run.
func (r Result) Lines(toolName string, p *message.Printer) []string {
	lines := []string{p.Sprintf("[Verification - %s]", toolName)}
	switch r.Verdict {
	case SuccessClean:
		lines = append(lines, p.Sprintf(" SUCCESS: No bugs expected and none found"))
	case SuccessMatch:
		lines = append(lines, p.Sprintf(" SUCCESS: Found %d bugs (expected at least %d)", r.Found, r.Expected))
	case UnverifiableFindings:
		lines = append(lines, p.Sprintf(" UNVERIFIED: Found %d bugs, no ground truth to compare", r.Found))
	case Mismatch:
		lines = append(lines, p.Sprintf(" MISMATCH: Found %d bugs but expected to find %d.", r.Found, r.Expected))
	}
	if len(r.Findings) > 0 {
		lines = append(lines, p.Sprintf("[Actual Findings]:"))
		for _, b := range r.Findings {
			lines = append(lines, p.Sprintf("        - Line %d [%s]: %s", b.Line, strings.ToUpper(string(b.Severity)), b.Message))
		}
	}
	return lines
}
