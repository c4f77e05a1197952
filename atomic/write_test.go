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

package atomic

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteReplacesContent(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "status_cppcheck_a.cpp.txt")
	for _, content := range []string{"BUG_DETECTED", "PASSED"} {
		if err := Write(name, []byte(content)); err != nil {
			t.Fatalf("Write: %v", err)
		}
		got, err := os.ReadFile(name)
		if err != nil {
			t.Fatalf("os.ReadFile: %v", err)
		}
		if string(got) != content {
			t.Errorf("unexpected content. parsed: %q, expected: %q", got, content)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("os.ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestWriteMissingDir(t *testing.T) {
	if err := Write(filepath.Join(t.TempDir(), "nope", "x.txt"), []byte("x")); err == nil {
		t.Error("expected an error for a missing parent directory")
	}
}

func TestWriteJSON(t *testing.T) {
	name := filepath.Join(t.TempDir(), "summary.json")
	if err := WriteJSON(name, map[string]int{"passed": 2}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	got, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("os.ReadFile: %v", err)
	}
	expected := "{\n  \"passed\": 2\n}\n"
	if string(got) != expected {
		t.Errorf("unexpected content. parsed: %q, expected: %q", got, expected)
	}
}
