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

// Package groundtruth loads the operator's list of known defects per source
// file. Only the number of expected bugs takes part in verification.
package groundtruth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"gopkg.in/yaml.v2"
	"naive.systems/toolbench/utils"
)

const DefaultFileName = "expected_results.json"

// Bug describes one expected defect. All fields are informative.
type Bug struct {
	Message  string `json:"message,omitempty" yaml:"message,omitempty"`
	Line     int    `json:"line,omitempty" yaml:"line,omitempty"`
	Severity string `json:"severity,omitempty" yaml:"severity,omitempty"`
}

type File struct {
	Filename string `json:"filename" yaml:"filename"`
	Bugs     []Bug  `json:"bugs" yaml:"bugs"`
}

type GroundTruth struct {
	Files []File `json:"files" yaml:"files"`
}

// Target is a ground truth entry whose source file exists.
type Target struct {
	Path     string
	Filename string
	Expected []Bug
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func Load(path string) (*GroundTruth, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("missing ground truth file: %s", path)
	}
	if err != nil {
		return nil, err
	}
	gt := &GroundTruth{}
	if isYAML(path) {
		err = yaml.Unmarshal(content, gt)
	} else {
		err = json.Unmarshal(content, gt)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid format in %s: %v", path, err)
	}
	if err := gt.validate(); err != nil {
		return nil, fmt.Errorf("invalid ground truth %s: %v", path, err)
	}
	return gt, nil
}

func (gt *GroundTruth) validate() error {
	if len(gt.Files) == 0 {
		return errors.New("'files' list is empty or missing")
	}
	for i, f := range gt.Files {
		if strings.TrimSpace(f.Filename) == "" {
			return fmt.Errorf("entry %d has no filename", i)
		}
	}
	return nil
}

// Targets returns the entries whose file exists under srcDir, in ground truth
// order. Entries matching one of ignorePatterns are skipped.
func (gt *GroundTruth) Targets(srcDir string, ignorePatterns []string) []Target {
	targets := []Target{}
	for _, f := range gt.Files {
		fullPath := filepath.Join(srcDir, f.Filename)
		matched, err := utils.MatchIgnorePatterns(ignorePatterns, fullPath)
		if err != nil {
			glog.Error(err)
		}
		if matched {
			continue
		}
		if _, err := os.Stat(fullPath); err != nil {
			glog.Warningf("file defined in ground truth but not found: %s", f.Filename)
			continue
		}
		expected := f.Bugs
		if expected == nil {
			expected = []Bug{}
		}
		targets = append(targets, Target{Path: fullPath, Filename: f.Filename, Expected: expected})
	}
	return targets
}

func stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ExpectedFor finds the expectations for a source file or for the executable
// built from it: "simple_leak" resolves to the entry of "simple_leak.cpp".
// An exact filename match wins over a stem match.
func (gt *GroundTruth) ExpectedFor(name string) ([]Bug, bool) {
	for _, f := range gt.Files {
		if f.Filename == name || filepath.Base(f.Filename) == filepath.Base(name) {
			return f.Bugs, true
		}
	}
	for _, f := range gt.Files {
		if stem(f.Filename) == stem(name) {
			return f.Bugs, true
		}
	}
	return nil, false
}
