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

// Package report persists per-run results: status and log files for every
// (tool, target) pair plus a JSON summary of the whole run.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"naive.systems/toolbench/analyzer/bug"
	"naive.systems/toolbench/atomic"
)

const (
	StatusPassed      = "PASSED"
	StatusBugDetected = "BUG_DETECTED"
	SummaryFileName   = "summary.json"
)

type Reporter struct {
	Dir   string
	RunID string
}

func New(dir string) (*Reporter, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create reports dir %s: %v", dir, err)
	}
	return &Reporter{Dir: dir, RunID: uuid.New().String()}, nil
}

func (r *Reporter) StatusPath(toolName, target string) string {
	return filepath.Join(r.Dir, fmt.Sprintf("status_%s_%s.txt", toolName, filepath.Base(target)))
}

func (r *Reporter) LogPath(toolName, target string) string {
	return filepath.Join(r.Dir, fmt.Sprintf("log_%s_%s.txt", toolName, filepath.Base(target)))
}

// Clean removes the status, log and summary files left by earlier runs.
func (r *Reporter) Clean() error {
	for _, pattern := range []string{"status_*.txt", "log_*.txt", SummaryFileName} {
		matches, err := filepath.Glob(filepath.Join(r.Dir, pattern))
		if err != nil {
			return fmt.Errorf("filepath.Glob(%s): %v", pattern, err)
		}
		for _, m := range matches {
			if err := os.Remove(m); err != nil {
				return fmt.Errorf("os.Remove(%s): %v", m, err)
			}
		}
	}
	return nil
}

func formatLog(outcome *bug.Outcome, runID string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Analysis Report for %s --- \n", outcome.Tool)
	fmt.Fprintf(&sb, "File: %s\n", outcome.Target)
	fmt.Fprintf(&sb, "Run: %s\n\n", runID)
	if outcome.Passed {
		sb.WriteString("No bugs found.\n")
		return sb.String()
	}
	fmt.Fprintf(&sb, "Found %d issues:\n", len(outcome.Bugs))
	for _, b := range outcome.Bugs {
		fmt.Fprintf(&sb, "[Line %d][%s]: %s\n", b.Line, strings.ToUpper(string(b.Severity)), b.Message)
	}
	return sb.String()
}

// WriteOutcome writes the status and log files of one tool run and returns
// their paths.
func (r *Reporter) WriteOutcome(outcome *bug.Outcome) (string, string, error) {
	status := StatusBugDetected
	if outcome.Passed {
		status = StatusPassed
	}
	statusPath := r.StatusPath(outcome.Tool, outcome.Target)
	if err := atomic.Write(statusPath, []byte(status)); err != nil {
		return "", "", err
	}
	logPath := r.LogPath(outcome.Tool, outcome.Target)
	if err := atomic.Write(logPath, []byte(formatLog(outcome, r.RunID))); err != nil {
		return statusPath, "", err
	}
	glog.Infof("wrote %s and %s", statusPath, logPath)
	return statusPath, logPath, nil
}

func (r *Reporter) WriteSummary(summary *Summary) (string, error) {
	path := filepath.Join(r.Dir, SummaryFileName)
	if err := atomic.WriteJSON(path, summary); err != nil {
		return "", err
	}
	return path, nil
}
