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

/*
This package should not import any other benchmark package to avoid
recursive import.
*/
package basic

import (
	"fmt"
	"time"

	"github.com/golang/glog"
	"golang.org/x/text/message"
)

func PrintfWithTimeStamp(format string, arg ...any) {
	prefix := fmt.Sprintf("%v ", time.Now().Format("2006-01-02 15:04:05"))
	message := fmt.Sprintf(prefix+format, arg...)
	fmt.Println(message)
	glog.Info(message)
}

func GetPercentString(v1, v2 int) string {
	if v2 == 0 {
		return "100%"
	}
	return fmt.Sprintf("%d%%", (v1*100)/v2)
}

// FormatTimeDuration renders d as seconds with at most millisecond precision,
// e.g. "3s" or "1.25s".
func FormatTimeDuration(d time.Duration) string {
	s := d / time.Second
	d -= s * time.Second
	ms := int64(d / time.Millisecond)
	if ms == 0 {
		return fmt.Sprintf("%ds", s)
	}
	frac := fmt.Sprintf("%03d", ms)
	for frac[len(frac)-1] == '0' {
		frac = frac[:len(frac)-1]
	}
	return fmt.Sprintf("%d.%ss", s, frac)
}

// ProgressPrinter prints one line when a (tool, target) task starts and one
// when it finishes. Tasks run one at a time.
type ProgressPrinter struct {
	printer   *message.Printer
	startedAt time.Time
	taskStart time.Time
	started   int
	finished  int
	total     int
}

func NewProgressPrinter(total int, printer *message.Printer) *ProgressPrinter {
	return &ProgressPrinter{
		printer:   printer,
		startedAt: time.Now(),
		total:     total,
	}
}

func (p *ProgressPrinter) Start(toolName, target string) {
	p.started++
	p.taskStart = time.Now()
	PrintfWithTimeStamp(p.printer.Sprintf("Running %s on %s (%v/%v)", toolName, target, p.started, p.total))
}

func (p *ProgressPrinter) Finish(toolName, target string) {
	p.finished++
	timeUsed := FormatTimeDuration(time.Since(p.taskStart))
	PrintfWithTimeStamp(p.printer.Sprintf("Running %s ... DONE. (%s, %v/%v) [%s]", toolName, p.Percent(), p.finished, p.total, timeUsed))
}

// AddTotal grows the task count once the dynamic targets are known.
func (p *ProgressPrinter) AddTotal(n int) {
	p.total += n
}

func (p *ProgressPrinter) Percent() string {
	return GetPercentString(p.finished, p.total)
}

func (p *ProgressPrinter) Elapsed() time.Duration {
	return time.Since(p.startedAt)
}
