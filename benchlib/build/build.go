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

// Package build compiles the benchmark project so the dynamic checkers have
// executables to run.
package build

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/glog"
	"naive.systems/toolbench/utils"
)

type ProjectType int

const (
	Other ProjectType = 0
	CMake ProjectType = 1
	Make  ProjectType = 2
)

func (p ProjectType) String() string {
	switch p {
	case CMake:
		return "cmake"
	case Make:
		return "make"
	default:
		return "other"
	}
}

func SelectBuilder(srcdir string) ProjectType {
	cmakePath := filepath.Join(srcdir, "CMakeLists.txt")
	makePath := filepath.Join(srcdir, "Makefile")
	makePathLower := filepath.Join(srcdir, "makefile")
	if _, err := os.Stat(cmakePath); err == nil {
		return CMake
	} else if _, err := os.Stat(makePath); err == nil {
		return Make
	} else if _, err := os.Stat(makePathLower); err == nil {
		return Make
	} else {
		return Other
	}
}

type Builder struct {
	SrcDir         string
	BuildDir       string
	Type           ProjectType
	IgnorePatterns []string
}

func New(srcDir, buildDir string, ignorePatterns []string) *Builder {
	return &Builder{
		SrcDir:         srcDir,
		BuildDir:       buildDir,
		Type:           SelectBuilder(srcDir),
		IgnorePatterns: ignorePatterns,
	}
}

// Clean empties the build directory so no stale executable survives into the
// next run. Calling it twice is fine.
func (b *Builder) Clean() error {
	if err := utils.CleanCache(b.BuildDir, nil); err != nil {
		return fmt.Errorf("failed to clean build dir %s: %v", b.BuildDir, err)
	}
	return nil
}

func runStep(cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	glog.Info("executing: ", cmd.String())
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %v\n%s", cmd.String(), err, stderr.String())
	}
	return nil
}

func (b *Builder) steps() ([]*exec.Cmd, error) {
	switch b.Type {
	case CMake:
		return []*exec.Cmd{
			exec.Command("cmake", "-S", b.SrcDir, "-B", b.BuildDir),
			exec.Command("cmake", "--build", b.BuildDir),
		}, nil
	case Make:
		absBuildDir, err := filepath.Abs(b.BuildDir)
		if err != nil {
			return nil, err
		}
		return []*exec.Cmd{
			exec.Command("make", "-C", b.SrcDir, "BUILD_DIR="+absBuildDir),
		}, nil
	default:
		return nil, fmt.Errorf("no viable builder found in %s", b.SrcDir)
	}
}

// Build configures and compiles the project. Failures are logged, not
// returned, since a failed build only disables dynamic analysis.
func (b *Builder) Build() bool {
	steps, err := b.steps()
	if err != nil {
		glog.Errorf("build: %v", err)
		return false
	}
	if err := os.MkdirAll(b.BuildDir, os.ModePerm); err != nil {
		glog.Errorf("failed to create build dir %s: %v", b.BuildDir, err)
		return false
	}
	for _, step := range steps {
		if err := runStep(step); err != nil {
			glog.Errorf("build failed: %v", err)
			return false
		}
	}
	glog.Info("build completed successfully")
	return true
}

func isBuildArtifact(name string) bool {
	return strings.HasSuffix(name, ".cmake") || strings.HasSuffix(name, ".txt") || name == "Makefile"
}

// Executables lists the programs the build produced, sorted. A missing build
// directory yields an empty list.
func (b *Builder) Executables() ([]string, error) {
	executables := []string{}
	if _, err := os.Stat(b.BuildDir); errors.Is(err, fs.ErrNotExist) {
		return executables, nil
	}
	err := filepath.WalkDir(b.BuildDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// cmake's internal tree holds probe binaries
			if d.Name() == "CMakeFiles" {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || isBuildArtifact(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Mode()&0111 == 0 {
			return nil
		}
		matched, err := utils.MatchIgnorePatterns(b.IgnorePatterns, path)
		if err != nil {
			glog.Error(err)
		}
		if !matched {
			executables = append(executables, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk build dir %s: %v", b.BuildDir, err)
	}
	sort.Strings(executables)
	return executables, nil
}
