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
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/golang/glog"
)

// MatchIgnorePatterns reports whether path matches any doublestar pattern.
func MatchIgnorePatterns(patterns []string, path string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("malformed ignore pattern %s", pattern)
		}
		if matched {
			glog.Infof("%s ignored due to pattern %s", path, pattern)
			return true, nil
		}
	}
	return false, nil
}
