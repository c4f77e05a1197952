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

package build

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, path string, mode os.FileMode) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		t.Fatalf("os.MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), mode); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}
}

func TestSelectBuilder(t *testing.T) {
	for _, testCase := range [...]struct {
		name     string
		files    []string
		expected ProjectType
	}{
		{name: "cmake", files: []string{"CMakeLists.txt", "Makefile"}, expected: CMake},
		{name: "make", files: []string{"Makefile"}, expected: Make},
		{name: "lowercase make", files: []string{"makefile"}, expected: Make},
		{name: "nothing", files: []string{"main.cpp"}, expected: Other},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range testCase.files {
				touch(t, filepath.Join(dir, f), 0644)
			}
			if got := SelectBuilder(dir); got != testCase.expected {
				t.Errorf("unexpected project type. parsed: %v, expected: %v", got, testCase.expected)
			}
		})
	}
}

func TestExecutables(t *testing.T) {
	buildDir := t.TempDir()
	touch(t, filepath.Join(buildDir, "simple_leak"), 0755)
	touch(t, filepath.Join(buildDir, "nested", "vulnerable"), 0755)
	touch(t, filepath.Join(buildDir, "CMakeFiles", "3.28.1", "CompilerIdCXX", "a.out"), 0755)
	touch(t, filepath.Join(buildDir, "cmake_install.cmake"), 0755)
	touch(t, filepath.Join(buildDir, "CMakeCache.txt"), 0755)
	touch(t, filepath.Join(buildDir, "Makefile"), 0755)
	touch(t, filepath.Join(buildDir, "main.o"), 0644)
	touch(t, filepath.Join(buildDir, "skipme", "tool"), 0755)

	b := &Builder{SrcDir: "src", BuildDir: buildDir, IgnorePatterns: []string{"**/skipme/**"}}
	executables, err := b.Executables()
	if err != nil {
		t.Fatalf("Executables: %v", err)
	}
	expected := []string{
		filepath.Join(buildDir, "nested", "vulnerable"),
		filepath.Join(buildDir, "simple_leak"),
	}
	if !reflect.DeepEqual(executables, expected) {
		t.Errorf("unexpected executables. parsed: %v, expected: %v", executables, expected)
	}
}

func TestExecutablesWithoutBuildDir(t *testing.T) {
	b := &Builder{BuildDir: filepath.Join(t.TempDir(), "build")}
	executables, err := b.Executables()
	if err != nil {
		t.Fatalf("Executables: %v", err)
	}
	if len(executables) != 0 {
		t.Errorf("unexpected executables %v", executables)
	}
}

func TestClean(t *testing.T) {
	buildDir := filepath.Join(t.TempDir(), "build")
	touch(t, filepath.Join(buildDir, "simple_leak"), 0755)
	b := &Builder{BuildDir: buildDir}
	for i := 0; i < 2; i++ {
		if err := b.Clean(); err != nil {
			t.Fatalf("Clean #%d: %v", i, err)
		}
	}
	entries, err := os.ReadDir(buildDir)
	if err != nil {
		t.Fatalf("os.ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("build dir not empty: %v", entries)
	}
}

func TestCleanMissingDir(t *testing.T) {
	b := &Builder{BuildDir: filepath.Join(t.TempDir(), "build")}
	if err := b.Clean(); err != nil {
		t.Errorf("Clean on a missing dir: %v", err)
	}
}

func TestBuildWithoutBuilder(t *testing.T) {
	b := New(t.TempDir(), filepath.Join(t.TempDir(), "build"), nil)
	if b.Type != Other {
		t.Fatalf("unexpected project type %v", b.Type)
	}
	if b.Build() {
		t.Error("a project without a build system cannot build")
	}
}
