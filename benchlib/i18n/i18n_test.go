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

package i18n

import (
	"testing"
)

func TestGetPrinter(t *testing.T) {
	for _, testCase := range [...]struct {
		name     string
		lang     string
		expected string
	}{
		{name: "english", lang: "en", expected: "[File]: a.cpp"},
		{name: "chinese", lang: "zh", expected: "[文件]: a.cpp"},
		{name: "unknown falls back to english", lang: "fr", expected: "[File]: a.cpp"},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			got := GetPrinter(testCase.lang).Sprintf("[File]: %s", "a.cpp")
			if got != testCase.expected {
				t.Errorf("unexpected output. parsed: %q, expected: %q", got, testCase.expected)
			}
		})
	}
}

func TestSupported(t *testing.T) {
	if !Supported("zh") || !Supported("en") || Supported("de") {
		t.Error("unexpected supported languages")
	}
}

func TestCatalogRegistered(t *testing.T) {
	zh := GetPrinter("zh")
	en := GetPrinter("en")
	for key := range zhCatalog {
		if zh.Sprintf(key) == en.Sprintf(key) {
			t.Errorf("no zh rendering registered for %q", key)
		}
	}
}
