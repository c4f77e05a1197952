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

package report

import (
	"time"

	"github.com/golang/glog"
	"naive.systems/toolbench/analyzer/bug"
	"naive.systems/toolbench/benchlib/verify"
)

const (
	PhaseStatic  = "static"
	PhaseDynamic = "dynamic"

	// verdict of a pair whose tool run returned an error or panicked
	VerdictFailed = "FAILED"
)

type SeverityCount struct {
	Critical    int `json:"critical"`
	Error       int `json:"error"`
	Warning     int `json:"warning"`
	Style       int `json:"style"`
	Performance int `json:"performance"`
	Portability int `json:"portability"`
	Other       int `json:"other"`
}

func AccumulateBySeverity(cnt *SeverityCount, records []bug.Record) {
	for _, r := range records {
		switch r.Severity {
		case bug.Critical:
			cnt.Critical++
		case bug.Error:
			cnt.Error++
		case bug.Warning:
			cnt.Warning++
		case "style":
			cnt.Style++
		case "performance":
			cnt.Performance++
		case "portability":
			cnt.Portability++
		default:
			glog.Warningf("undefined severity %q at line %d", r.Severity, r.Line)
			cnt.Other++
		}
	}
}

type Entry struct {
	Target     string        `json:"target"`
	Tool       string        `json:"tool"`
	Phase      string        `json:"phase"`
	Verdict    string        `json:"verdict"`
	Expected   int           `json:"expected"`
	Found      int           `json:"found"`
	Severities SeverityCount `json:"severities"`
	Error      string        `json:"error,omitempty"`
}

type Summary struct {
	RunID       string         `json:"run_id"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"`
	Entries     []Entry        `json:"entries"`
	LinesOfCode map[string]int `json:"lines_of_code,omitempty"`
	Passed      int            `json:"passed"`
	Mismatched  int            `json:"mismatched"`
	Unverified  int            `json:"unverified"`
	Failed      int            `json:"failed"`
}

func NewSummary(runID string) *Summary {
	return &Summary{
		RunID:     runID,
		StartedAt: time.Now(),
		Entries:   []Entry{},
	}
}

// AddResult records a completed tool run.
func (s *Summary) AddResult(phase string, outcome *bug.Outcome, result verify.Result) {
	e := Entry{
		Target:   outcome.Target,
		Tool:     outcome.Tool,
		Phase:    phase,
		Verdict:  result.Verdict.String(),
		Expected: result.Expected,
		Found:    result.Found,
	}
	AccumulateBySeverity(&e.Severities, outcome.Bugs)
	s.Entries = append(s.Entries, e)
	switch {
	case result.Passed():
		s.Passed++
	case result.Verdict == verify.Mismatch:
		s.Mismatched++
	default:
		s.Unverified++
	}
}

// AddFailure records a tool run that never produced an outcome.
func (s *Summary) AddFailure(phase, toolName, target string, err error) {
	s.Entries = append(s.Entries, Entry{
		Target:  target,
		Tool:    toolName,
		Phase:   phase,
		Verdict: VerdictFailed,
		Error:   err.Error(),
	})
	s.Failed++
}

func (s *Summary) Finish() {
	s.FinishedAt = time.Now()
}
