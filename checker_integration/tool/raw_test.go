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
	"testing"

	"naive.systems/toolbench/analyzer/bug"
)

func TestParseRawRoundTrip(t *testing.T) {
	for _, testCase := range [...]struct {
		name string
		raw  RawOutput
		text string
	}{
		{name: "missing", raw: Missing(), text: "TOOL_NOT_INSTALLED"},
		{name: "timeout", raw: TimedOut(), text: "TIMEOUT_ERROR"},
		{name: "general error", raw: Failed("permission denied"), text: "GENERAL_ERROR: permission denied"},
		{name: "plain output", raw: Output("==1== ERROR SUMMARY: 0 errors"), text: "==1== ERROR SUMMARY: 0 errors"},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			if testCase.raw.String() != testCase.text {
				t.Fatalf("unexpected text. parsed: %q, expected: %q", testCase.raw.String(), testCase.text)
			}
			if parsed := ParseRaw(testCase.text); parsed != testCase.raw {
				t.Errorf("unexpected raw output. parsed: %+v, expected: %+v", parsed, testCase.raw)
			}
		})
	}
}

func TestParseRawNeedsFullErrorPrefix(t *testing.T) {
	for _, text := range []string{"GENERAL_ERRORS: 2", "GENERAL_ERROR", "GENERAL_ERROR:x"} {
		if parsed := ParseRaw(text); parsed != Output(text) {
			t.Errorf("ParseRaw(%q) = %+v, expected plain output", text, parsed)
		}
	}
}

func TestInfrastructureRecord(t *testing.T) {
	for _, testCase := range [...]struct {
		name     string
		raw      RawOutput
		expectOK bool
		expected bug.Record
	}{
		{
			name:     "missing tool is critical",
			raw:      Missing(),
			expectOK: true,
			expected: bug.Record{Line: 0, Severity: bug.Critical, Message: "valgrind not installed", Category: InfrastructureCategory},
		},
		{
			name:     "timeout",
			raw:      TimedOut(),
			expectOK: true,
			expected: bug.Record{Line: 0, Severity: bug.Error, Message: "Execution timed out", Category: InfrastructureCategory},
		},
		{
			name:     "launch failure keeps detail",
			raw:      Failed("fork/exec: bad format"),
			expectOK: true,
			expected: bug.Record{Line: 0, Severity: bug.Error, Message: "GENERAL_ERROR: fork/exec: bad format", Category: InfrastructureCategory},
		},
		{
			name:     "real output",
			raw:      Output(""),
			expectOK: false,
		},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			r, ok := InfrastructureRecord("valgrind", testCase.raw)
			if ok != testCase.expectOK {
				t.Fatalf("unexpected ok: %v", ok)
			}
			if ok && r != testCase.expected {
				t.Errorf("unexpected record. parsed: %+v, expected: %+v", r, testCase.expected)
			}
		})
	}
}

func TestInfrastructureRecordIsStable(t *testing.T) {
	first, _ := InfrastructureRecord("valgrind", ParseRaw(TimedOut().String()))
	second, _ := InfrastructureRecord("valgrind", ParseRaw(TimedOut().String()))
	if first != second {
		t.Errorf("reparsing the timeout sentinel changed the record: %+v vs %+v", first, second)
	}
}
