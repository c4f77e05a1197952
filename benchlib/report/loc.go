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

package report

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/hhatto/gocloc"
)

var countLangs = []string{"C", "C++", "C Header", "C++ Header"}

// CountLines returns the lines of code of each C/C++ source in paths. Files
// in other languages are left out of the map.
func CountLines(paths []string) (map[string]int, error) {
	loc := map[string]int{}
	if len(paths) == 0 {
		return loc, nil
	}
	clocOpts := gocloc.NewClocOptions()
	// false makes gocloc drop files whose content hashes the same
	clocOpts.SkipDuplicated = true
	languages := gocloc.NewDefinedLanguages()
	for _, lang := range countLangs {
		if _, exists := languages.Langs[lang]; exists {
			clocOpts.IncludeLangs[lang] = struct{}{}
		}
	}
	processor := gocloc.NewProcessor(languages, clocOpts)
	result, err := processor.Analyze(paths)
	if err != nil {
		glog.Errorf("gocloc fail: %v", err)
		return nil, fmt.Errorf("processor.Analyze: %v", err)
	}
	for _, file := range result.Files {
		loc[file.Name] = int(file.Code)
	}
	return loc, nil
}
