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

package valgrind

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"naive.systems/toolbench/analyzer/bug"
	"naive.systems/toolbench/checker_integration/tool"
)

const (
	Name           = "valgrind"
	DefaultTimeout = 20 * time.Second
)

type signature struct {
	pattern *regexp.Regexp
	defect  string
	// leak signatures capture the byte count in group 1
	leak bool
}

// Order matters: a line is attributed to the first signature it matches.
var signatures = []signature{
	{regexp.MustCompile(`definitely lost: ([0-9,]+) bytes`), "Memory Leak (Definitely Lost)", true},
	{regexp.MustCompile(`indirectly lost: ([0-9,]+) bytes`), "Memory Leak (Indirectly Lost)", true},
	{regexp.MustCompile(`Invalid read of size`), "Invalid Memory Read", false},
	{regexp.MustCompile(`Invalid write of size`), "Invalid Memory Write", false},
	{regexp.MustCompile(`Mismatched free`), "Mismatched Free/Delete", false},
	{regexp.MustCompile(`Invalid free\(\)`), "Invalid Free", false},
	{regexp.MustCompile(`Conditional jump or move depends on uninitialised value`), "Uninitialised Value Use", false},
}

type Tool struct {
	Bin       string
	ExtraArgs []string
	Timeout   time.Duration
}

func New(bin string, extraArgs []string, timeout time.Duration) *Tool {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Tool{Bin: bin, ExtraArgs: extraArgs, Timeout: timeout}
}

func (t *Tool) Name() string {
	return Name
}

func (t *Tool) command(executable string) tool.Command {
	args := []string{"--leak-check=full", "--track-origins=yes"}
	args = append(args, t.ExtraArgs...)
	args = append(args, executable)
	return tool.Command{
		Bin:  t.Bin,
		Args: args,
		// memcheck reports on stderr, the program keeps stdout
		Stream:  tool.Stderr,
		Timeout: t.Timeout,
	}
}

func (t *Tool) RunAnalysis(executable string) (tool.RawOutput, error) {
	if executable == "" {
		return tool.RawOutput{}, errors.New("no executable to analyze")
	}
	glog.Infof("[Valgrind] Analyzing: %s", executable)
	return tool.Execute(t.command(executable))
}

func (t *Tool) ParseOutput(raw tool.RawOutput) []bug.Record {
	if r, ok := tool.InfrastructureRecord(t.Name(), raw); ok {
		return []bug.Record{r}
	}
	records := []bug.Record{}
	for _, line := range strings.Split(raw.Text, "\n") {
		if r, ok := matchLine(line); ok {
			records = append(records, r)
		}
	}
	return records
}

func matchLine(line string) (bug.Record, bool) {
	for _, s := range signatures {
		match := s.pattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		if s.leak {
			lost, err := strconv.Atoi(strings.ReplaceAll(match[1], ",", ""))
			if err != nil {
				glog.Warningf("unreadable byte count in %q: %v", line, err)
			}
			// "0 bytes lost" is valgrind saying there is no leak
			if err == nil && lost == 0 {
				return bug.Record{}, false
			}
		}
		return bug.NewRecord(0, bug.Error, s.defect+": "+strings.TrimSpace(line), s.defect)
	}
	return bug.Record{}, false
}
