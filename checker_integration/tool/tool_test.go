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

package tool

import (
	"errors"
	"strings"
	"testing"

	"naive.systems/toolbench/analyzer/bug"
)

// echoTool reports one bug per non-empty line of the output it produced.
type echoTool struct {
	outputs []RawOutput
	err     error
	parsed  []RawOutput
}

func (e *echoTool) Name() string {
	return "echo"
}

func (e *echoTool) RunAnalysis(target string) (RawOutput, error) {
	if e.err != nil {
		return RawOutput{}, e.err
	}
	out := e.outputs[0]
	e.outputs = e.outputs[1:]
	return out, nil
}

func (e *echoTool) ParseOutput(raw RawOutput) []bug.Record {
	e.parsed = append(e.parsed, raw)
	if r, ok := InfrastructureRecord(e.Name(), raw); ok {
		return []bug.Record{r}
	}
	var records []bug.Record
	for _, line := range strings.Split(raw.Text, "\n") {
		if r, ok := bug.NewRecord(0, bug.Error, line, ""); ok {
			records = append(records, r)
		}
	}
	return records
}

func TestRunParsesTheOutputItProduced(t *testing.T) {
	fake := &echoTool{outputs: []RawOutput{Output("a\nb"), Output("")}}
	outcome, err := Run(fake, "first")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcome.Passed || len(outcome.Bugs) != 2 || outcome.Target != "first" || outcome.Tool != "echo" {
		t.Errorf("unexpected outcome %+v", outcome)
	}
	outcome, err = Run(fake, "second")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !outcome.Passed || len(outcome.Bugs) != 0 {
		t.Errorf("unexpected outcome %+v", outcome)
	}
	if len(fake.parsed) != 2 || fake.parsed[0].Text != "a\nb" || fake.parsed[1].Text != "" {
		t.Errorf("parse did not consume the produced outputs: %+v", fake.parsed)
	}
}

func TestRunPropagatesErrors(t *testing.T) {
	fake := &echoTool{err: errors.New("stream closed")}
	if _, err := Run(fake, "x"); err == nil {
		t.Error("expected the RunAnalysis error to propagate")
	}
	if len(fake.parsed) != 0 {
		t.Error("ParseOutput must not run after a failed RunAnalysis")
	}
}
