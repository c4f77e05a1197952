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

package basic

import (
	"testing"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestFormatTimeDuration(t *testing.T) {
	for _, testCase := range [...]struct {
		name     string
		d        time.Duration
		expected string
	}{
		{name: "whole seconds", d: 3 * time.Second, expected: "3s"},
		{name: "quarter", d: 1250 * time.Millisecond, expected: "1.25s"},
		{name: "single digit ms", d: 2*time.Second + 5*time.Millisecond, expected: "2.005s"},
		{name: "sub millisecond dropped", d: 400 * time.Microsecond, expected: "0s"},
		{name: "half", d: 500 * time.Millisecond, expected: "0.5s"},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			if got := FormatTimeDuration(testCase.d); got != testCase.expected {
				t.Errorf("unexpected duration string. parsed: %s, expected: %s", got, testCase.expected)
			}
		})
	}
}

func TestGetPercentString(t *testing.T) {
	for _, testCase := range [...]struct {
		v1, v2   int
		expected string
	}{
		{1, 4, "25%"},
		{3, 3, "100%"},
		{0, 0, "100%"},
		{1, 3, "33%"},
	} {
		if got := GetPercentString(testCase.v1, testCase.v2); got != testCase.expected {
			t.Errorf("GetPercentString(%d, %d) = %s, expected %s", testCase.v1, testCase.v2, got, testCase.expected)
		}
	}
}

func TestProgressPrinter(t *testing.T) {
	p := NewProgressPrinter(2, message.NewPrinter(language.English))
	p.Start("cppcheck", "a.cpp")
	p.Finish("cppcheck", "a.cpp")
	if got := p.Percent(); got != "50%" {
		t.Errorf("unexpected percent %s", got)
	}
	p.AddTotal(2)
	if got := p.Percent(); got != "25%" {
		t.Errorf("unexpected percent after AddTotal %s", got)
	}
}
