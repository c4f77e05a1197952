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
	"strings"

	"naive.systems/toolbench/analyzer/bug"
)

// Kind tells apart a real tool output from the environment failures that
// stand in for one.
type Kind int

const (
	OK Kind = iota
	ToolMissing
	Timeout
	LaunchFailed
)

func (k Kind) String() string {
	switch k {
	case OK:
		return "OK"
	case ToolMissing:
		return "ToolMissing"
	case Timeout:
		return "Timeout"
	case LaunchFailed:
		return "LaunchFailed"
	default:
		return "Unknown"
	}
}

// Legacy textual forms, still used in logs and reports.
const (
	toolMissingText    = "TOOL_NOT_INSTALLED"
	timeoutText        = "TIMEOUT_ERROR"
	generalErrorPrefix = "GENERAL_ERROR: "
)

const InfrastructureCategory = "infrastructure"

// RawOutput is what RunAnalysis captured. Text is only meaningful for OK,
// Detail only for LaunchFailed.
type RawOutput struct {
	Kind   Kind
	Text   string
	Detail string
}

func Output(text string) RawOutput {
	return RawOutput{Kind: OK, Text: text}
}

func Missing() RawOutput {
	return RawOutput{Kind: ToolMissing}
}

func TimedOut() RawOutput {
	return RawOutput{Kind: Timeout}
}

func Failed(detail string) RawOutput {
	return RawOutput{Kind: LaunchFailed, Detail: detail}
}

func (r RawOutput) String() string {
	switch r.Kind {
	case ToolMissing:
		return toolMissingText
	case Timeout:
		return timeoutText
	case LaunchFailed:
		return generalErrorPrefix + r.Detail
	default:
		return r.Text
	}
}

// ParseRaw maps the textual form back, so ParseRaw(r.String()) == r for every
// failure kind.
func ParseRaw(s string) RawOutput {
	switch {
	case s == toolMissingText:
		return Missing()
	case s == timeoutText:
		return TimedOut()
	case strings.HasPrefix(s, generalErrorPrefix):
		return Failed(strings.TrimPrefix(s, generalErrorPrefix))
	default:
		return Output(s)
	}
}

// InfrastructureRecord turns an environment failure into the single finding
// that reports it. ok is false for a real output.
func InfrastructureRecord(toolName string, raw RawOutput) (r bug.Record, ok bool) {
	switch raw.Kind {
	case ToolMissing:
		return bug.Record{
			Line:     0,
			Severity: bug.Critical,
			Message:  toolName + " not installed",
			Category: InfrastructureCategory,
		}, true
	case Timeout:
		return bug.Record{
			Line:     0,
			Severity: bug.Error,
			Message:  "Execution timed out",
			Category: InfrastructureCategory,
		}, true
	case LaunchFailed:
		return bug.Record{
			Line:     0,
			Severity: bug.Error,
			Message:  raw.String(),
			Category: InfrastructureCategory,
		}, true
	}
	return bug.Record{}, false
}
