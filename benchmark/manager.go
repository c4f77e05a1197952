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

// Package benchmark drives a full benchmark run: static tools on every source
// the ground truth names, then a build and the dynamic tools on every
// executable it produces.
package benchmark

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime/debug"

	"github.com/golang/glog"
	"golang.org/x/text/message"
	"naive.systems/toolbench/analyzer/bug"
	"naive.systems/toolbench/benchlib/basic"
	"naive.systems/toolbench/benchlib/groundtruth"
	"naive.systems/toolbench/benchlib/report"
	"naive.systems/toolbench/benchlib/verify"
	"naive.systems/toolbench/checker_integration/tool"
)

// Builder is what the dynamic phase needs from the build collaborator.
type Builder interface {
	Clean() error
	Build() bool
	Executables() ([]string, error)
}

type Config struct {
	SrcDir         string
	BuildDir       string
	IgnorePatterns []string
	SkipBuild      bool
}

type Manager struct {
	cfg          Config
	truth        *groundtruth.GroundTruth
	staticTools  []tool.Tool
	dynamicTools []tool.Tool
	builder      Builder
	reporter     *report.Reporter
	printer      *message.Printer
	progress     *basic.ProgressPrinter
}

// New wires a manager. builder may be nil when there are no dynamic tools;
// reporter may be nil to skip status and log files.
func New(cfg Config, truth *groundtruth.GroundTruth, staticTools, dynamicTools []tool.Tool,
	builder Builder, reporter *report.Reporter, printer *message.Printer) *Manager {
	return &Manager{
		cfg:          cfg,
		truth:        truth,
		staticTools:  staticTools,
		dynamicTools: dynamicTools,
		builder:      builder,
		reporter:     reporter,
		printer:      printer,
	}
}

func (m *Manager) println(format string, arg ...any) {
	fmt.Println(m.printer.Sprintf(format, arg...))
}

// runOne never lets a tool error or panic escape, so one broken pair does not
// stop the batch.
func (m *Manager) runOne(t tool.Tool, target string) (outcome *bug.Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			glog.Error("Recovered in ", t.Name(), ": ", r, string(debug.Stack()))
			outcome = nil
			err = fmt.Errorf("panic in %s: %v", t.Name(), r)
		}
	}()
	return tool.Run(t, target)
}

func (m *Manager) runPair(summary *report.Summary, phase string, t tool.Tool, target string, expected []groundtruth.Bug) {
	m.progress.Start(t.Name(), filepath.Base(target))
	outcome, err := m.runOne(t, target)
	if err == nil && outcome == nil {
		err = errors.New("tool returned no outcome")
	}
	if err != nil {
		glog.Errorf("%s on %s: %v", t.Name(), target, err)
		m.println("Running %s ... FAILED.", t.Name())
		m.println("Error: %v", err)
		summary.AddFailure(phase, t.Name(), target, err)
		return
	}
	m.progress.Finish(t.Name(), filepath.Base(target))

	result := verify.Compare(expected, outcome.Bugs)
	for _, line := range result.Lines(t.Name(), m.printer) {
		fmt.Println(line)
	}
	summary.AddResult(phase, outcome, result)

	if m.reporter == nil {
		return
	}
	statusPath, logPath, err := m.reporter.WriteOutcome(outcome)
	if err != nil {
		glog.Errorf("failed to write reports for %s on %s: %v", t.Name(), target, err)
		return
	}
	m.println("[+] Created status file: %s", statusPath)
	m.println("[+] Created log file: %s", logPath)
}

func (m *Manager) runStatic(summary *report.Summary, targets []groundtruth.Target) {
	for _, target := range targets {
		fmt.Println()
		m.println("[File]: %s", target.Filename)
		for _, t := range m.staticTools {
			m.runPair(summary, report.PhaseStatic, t, target.Path, target.Expected)
		}
	}
}

func (m *Manager) runDynamic(summary *report.Summary) {
	fmt.Println()
	m.println("--- Starting Build Process ---")
	if err := m.builder.Clean(); err != nil {
		glog.Errorf("failed to clean build dir: %v", err)
	}
	if !m.builder.Build() {
		m.println("Build failed, dynamic analysis skipped")
		return
	}
	executables, err := m.builder.Executables()
	if err != nil {
		glog.Errorf("failed to list executables: %v", err)
		return
	}
	if len(executables) == 0 {
		m.println("No executables found in %s", m.cfg.BuildDir)
		return
	}
	m.progress.AddTotal(len(executables) * len(m.dynamicTools))
	for _, exe := range executables {
		fmt.Println()
		m.println("[Executable]: %s", filepath.Base(exe))
		expected, ok := m.truth.ExpectedFor(filepath.Base(exe))
		if !ok {
			glog.Warningf("no ground truth entry for executable %s", exe)
		}
		for _, t := range m.dynamicTools {
			m.runPair(summary, report.PhaseDynamic, t, exe, expected)
		}
	}
}

// RunAll runs both phases and returns the summary. Writing it is left to the
// caller.
func (m *Manager) RunAll() *report.Summary {
	runID := ""
	if m.reporter != nil {
		runID = m.reporter.RunID
	}
	summary := report.NewSummary(runID)
	defer summary.Finish()

	targets := m.truth.Targets(m.cfg.SrcDir, m.cfg.IgnorePatterns)
	if len(targets) == 0 {
		m.println("No files found for testing")
		return summary
	}

	fmt.Println()
	m.println("--- Starting Benchmark on %d files ---", len(targets))
	m.progress = basic.NewProgressPrinter(len(targets)*len(m.staticTools), m.printer)
	m.runStatic(summary, targets)

	if len(m.dynamicTools) > 0 && m.builder != nil && !m.cfg.SkipBuild {
		m.runDynamic(summary)
	}

	paths := make([]string, 0, len(targets))
	for _, target := range targets {
		paths = append(paths, target.Path)
	}
	loc, err := report.CountLines(paths)
	if err != nil {
		glog.Errorf("failed to count lines: %v", err)
	} else {
		summary.LinesOfCode = loc
	}

	fmt.Println()
	m.println("--- Benchmark Completed ---")
	m.println("Summary: %d passed, %d mismatched, %d unverified, %d failed",
		summary.Passed, summary.Mismatched, summary.Unverified, summary.Failed)
	glog.Infof("benchmark finished in %s", basic.FormatTimeDuration(m.progress.Elapsed()))
	return summary
}
