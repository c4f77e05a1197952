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

package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
)

// ErrBinaryNotFound is wrapped by ResolveBinaryPath when the binary does not
// exist at all, as opposed to existing but being unusable.
var ErrBinaryNotFound = errors.New("binary not found")

// CleanCache removes every entry of dir except the names in filesToIgnore.
// A missing dir is not an error.
func CleanCache(dir string, filesToIgnore []string) error {
	glog.Info("cleaning cache in ", dir)
	filesSaveMap := make(map[string]bool)
	for _, fileName := range filesToIgnore {
		filesSaveMap[fileName] = true
	}
	dirInfo, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, d := range dirInfo {
		if filesSaveMap[d.Name()] {
			continue
		}
		glog.Infof("remove %s", filepath.Join(dir, d.Name()))
		err = os.RemoveAll(filepath.Join(dir, d.Name()))
		if err != nil {
			return err
		}
	}
	glog.Info("cleaned ", dir)
	return nil
}

func ResolveBinaryPath(binPath string) (string, error) {
	if binPath == "" {
		return binPath, fmt.Errorf("empty binary path: %w", ErrBinaryNotFound)
	}
	if filepath.IsAbs(binPath) {
		if err := checkExecutable(binPath); err != nil {
			return binPath, fmt.Errorf("when resolving %s: %w", binPath, err)
		}
		return binPath, nil
	}
	// exec.LookPath will silently allow relative path, so we manually check it.
	if strings.Contains(binPath, string(filepath.Separator)) {
		absBinPath, err := filepath.Abs(binPath)
		if err != nil {
			return binPath, fmt.Errorf("when resolving %s, failed to convert to abs path: %v", binPath, err)
		}
		if err := checkExecutable(absBinPath); err != nil {
			return absBinPath, fmt.Errorf("when resolving %s: %w", binPath, err)
		}
		return absBinPath, nil
	}
	resolved, err := exec.LookPath(binPath)
	if err != nil {
		return binPath, fmt.Errorf("when resolving %s, not found in $PATH: %v: %w", binPath, err, ErrBinaryNotFound)
	}
	return resolved, nil
}

func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("os.Stat failed: %v: %w", err, ErrBinaryNotFound)
	}
	if err != nil {
		return fmt.Errorf("os.Stat failed: %v", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if info.Mode()&0111 == 0 {
		return fmt.Errorf("%s is not executable", path)
	}
	return nil
}
