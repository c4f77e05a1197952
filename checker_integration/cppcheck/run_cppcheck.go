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

package cppcheck

import (
	"encoding/xml"
	"errors"
	"strings"

	"github.com/golang/glog"
	"golang.org/x/exp/slices"
	"naive.systems/toolbench/analyzer/bug"
	"naive.systems/toolbench/checker_integration/tool"
)

const Name = "cppcheck"

type CppCheckXMLLocation struct {
	File   string `xml:"file,attr"`
	Line   int    `xml:"line,attr"`
	Column int    `xml:"column,attr"`
}

type CppCheckXMLError struct {
	Id        string                `xml:"id,attr"`
	Severity  string                `xml:"severity,attr"`
	Msg       string                `xml:"msg,attr"`
	Verbose   string                `xml:"verbose,attr"`
	Locations []CppCheckXMLLocation `xml:"location"`
}

type CppCheckXMLReport struct {
	Errors  []CppCheckXMLError `xml:"errors>error"`
	Version struct {
		Version string `xml:"version,attr"`
	} `xml:"cppcheck"`
}

// line of the primary location, 0 when cppcheck gave none
func (e CppCheckXMLError) line() int {
	if len(e.Locations) == 0 {
		return 0
	}
	return e.Locations[0].Line
}

func (e CppCheckXMLError) message() string {
	for _, m := range []string{e.Msg, e.Verbose, e.Id} {
		if strings.TrimSpace(m) != "" {
			return m
		}
	}
	return ""
}

type Tool struct {
	Bin       string
	ExtraArgs []string
	// findings with these severities are chatter, not defects
	IgnoredSeverities []bug.Severity
}

func New(bin string, extraArgs []string) *Tool {
	return &Tool{
		Bin:               bin,
		ExtraArgs:         extraArgs,
		IgnoredSeverities: []bug.Severity{bug.Information},
	}
}

func (t *Tool) Name() string {
	return Name
}

func (t *Tool) command(target string) tool.Command {
	args := []string{"--enable=all", "--inconclusive", "--xml", "--xml-version=2"}
	args = append(args, t.ExtraArgs...)
	args = append(args, target)
	return tool.Command{
		Bin:  t.Bin,
		Args: args,
		// cppcheck writes the XML report to stderr, progress to stdout
		Stream: tool.Stderr,
	}
}

func (t *Tool) RunAnalysis(target string) (tool.RawOutput, error) {
	if target == "" {
		return tool.RawOutput{}, errors.New("no source file to analyze")
	}
	return tool.Execute(t.command(target))
}

func (t *Tool) ParseOutput(raw tool.RawOutput) []bug.Record {
	if r, ok := tool.InfrastructureRecord(t.Name(), raw); ok {
		return []bug.Record{r}
	}
	report := CppCheckXMLReport{}
	err := xml.Unmarshal([]byte(raw.Text), &report)
	if err != nil {
		// an empty or garbled stream means there was nothing to report
		glog.Warningf("unmarshal cppcheck errors xml: %v", err)
		return []bug.Record{}
	}
	records := []bug.Record{}
	for _, e := range report.Errors {
		severity := bug.Severity(e.Severity)
		if slices.Contains(t.IgnoredSeverities, severity) {
			continue
		}
		r, ok := bug.NewRecord(e.line(), severity, e.message(), e.Id)
		if !ok {
			glog.Warningf("cppcheck reported %s without a message, skipped", e.Id)
			continue
		}
		records = append(records, r)
	}
	return records
}
