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

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"golang.org/x/exp/slices"
	"golang.org/x/text/message"
	"naive.systems/toolbench/analyzer/bug"
	"naive.systems/toolbench/benchlib/build"
	"naive.systems/toolbench/benchlib/groundtruth"
	"naive.systems/toolbench/benchlib/i18n"
	"naive.systems/toolbench/benchlib/options"
	"naive.systems/toolbench/benchlib/report"
	"naive.systems/toolbench/benchlib/verify"
	"naive.systems/toolbench/benchmark"
	"naive.systems/toolbench/checker_integration/cppcheck"
	"naive.systems/toolbench/checker_integration/tool"
	"naive.systems/toolbench/checker_integration/valgrind"
	"naive.systems/toolbench/utils"
)

func newTools(opts *options.Options) (staticTools, dynamicTools []tool.Tool) {
	selected := opts.GetTools()
	if slices.Contains(selected, cppcheck.Name) {
		extra, err := opts.GetCppcheckExtraArgs()
		if err != nil {
			glog.Fatal(err)
		}
		staticTools = append(staticTools, cppcheck.New(opts.GetCppcheckBin(), extra))
	}
	if slices.Contains(selected, valgrind.Name) {
		extra, err := opts.GetValgrindExtraArgs()
		if err != nil {
			glog.Fatal(err)
		}
		dynamicTools = append(dynamicTools, valgrind.New(opts.GetValgrindBin(), extra, opts.GetValgrindTimeout()))
	}
	return staticTools, dynamicTools
}

// checkSetup reports whether every configured tool and the source directory
// are usable.
func checkSetup(opts *options.Options, printer *message.Printer) bool {
	ok := true
	bins := map[string]string{cppcheck.Name: opts.GetCppcheckBin(), valgrind.Name: opts.GetValgrindBin()}
	for _, name := range opts.GetTools() {
		bin, err := utils.ResolveBinaryPath(bins[name])
		if err == nil {
			var version string
			version, err = tool.CheckBinary(bin, "--version")
			if err == nil {
				fmt.Println(printer.Sprintf("Checking %s ... %s", name, version))
				continue
			}
		}
		fmt.Println(printer.Sprintf("Checking %s ... NOT FOUND (%v)", name, err))
		ok = false
	}
	if info, err := os.Stat(opts.GetSrcDir()); err != nil || !info.IsDir() {
		fmt.Println(printer.Sprintf("Source directory %s does not exist", opts.GetSrcDir()))
		ok = false
	}
	return ok
}

// runTarget is the manual mode: static tools on one file, no ground truth.
func runTarget(target string, staticTools []tool.Tool, reporter *report.Reporter, printer *message.Printer) *report.Summary {
	summary := report.NewSummary(reporter.RunID)
	defer summary.Finish()
	for _, t := range staticTools {
		fmt.Println(printer.Sprintf("Running %s ...", t.Name()))
		outcome, err := tool.Run(t, target)
		if err != nil {
			glog.Errorf("%s on %s: %v", t.Name(), target, err)
			fmt.Println(printer.Sprintf("Running %s ... FAILED.", t.Name()))
			summary.AddFailure(report.PhaseStatic, t.Name(), target, err)
			continue
		}
		fmt.Println(printer.Sprintf("Running %s ... DONE.", t.Name()))
		summary.AddResult(report.PhaseStatic, outcome, verify.Compare(nil, outcome.Bugs))
		statusPath, logPath, err := reporter.WriteOutcome(outcome)
		if err != nil {
			glog.Errorf("failed to write reports: %v", err)
		} else {
			fmt.Println(printer.Sprintf("[+] Created status file: %s", statusPath))
			fmt.Println(printer.Sprintf("[+] Created log file: %s", logPath))
		}
		fmt.Println(printer.Sprintf("Did code pass? %v", outcome.Passed))
		for _, b := range outcome.Bugs {
			fmt.Println(printer.Sprintf("        - Line %d [%s]: %s", b.Line, b.Severity, b.Message))
		}
		glog.Infof("%s severities on %s: %v", t.Name(), target, bug.CountBySeverity(outcome.Bugs))
	}
	return summary
}

func main() {
	opts := options.NewOptions(flag.CommandLine)
	flag.Parse()
	defer glog.Flush()

	// Do not call any logging functions of glog before this part.
	printer := i18n.GetPrinter(opts.GetLang())

	logDir := flag.Lookup("log_dir")
	if logDir.Value.String() == "" {
		err := flag.Set("log_dir", filepath.Join(opts.GetReportsDir(), "logs"))
		if err != nil {
			glog.Fatalf("failed to set default log_dir: %v", err)
		}
	}
	if err := os.MkdirAll(logDir.Value.String(), os.ModePerm); err != nil {
		glog.Fatalf("failed to create log dir: %v", err)
	}

	if !opts.GetDebugMode() {
		err := flag.Set("stderrthreshold", "FATAL")
		if err != nil {
			glog.Fatalf("failed to set default stderrthreshold: %v", err)
		}
	}

	if err := opts.Validate(); err != nil {
		glog.Fatalf("invalid options: %v", err)
	}

	if opts.GetCheckSetup() {
		if !checkSetup(opts, printer) {
			fmt.Println(printer.Sprintf("Setup check failed"))
			glog.Flush()
			os.Exit(1)
		}
		fmt.Println(printer.Sprintf("Setup check passed"))
		return
	}

	reporter, err := report.New(opts.GetReportsDir())
	if err != nil {
		glog.Fatalf("report.New: %v", err)
	}
	if opts.GetCleanReports() {
		if err := reporter.Clean(); err != nil {
			glog.Fatalf("failed to clean reports: %v", err)
		}
	}
	glog.Info("run id: ", reporter.RunID)

	staticTools, dynamicTools := newTools(opts)

	var summary *report.Summary
	if opts.GetTarget() != "" {
		summary = runTarget(opts.GetTarget(), staticTools, reporter, printer)
	} else {
		truth, err := groundtruth.Load(opts.GetGroundTruth())
		if err != nil {
			glog.Fatalf("groundtruth.Load: %v", err)
		}
		var builder benchmark.Builder
		if len(dynamicTools) > 0 {
			builder = build.New(opts.GetSrcDir(), opts.GetBuildDir(), opts.GetIgnoreDirPatterns())
		}
		cfg := benchmark.Config{
			SrcDir:         opts.GetSrcDir(),
			BuildDir:       opts.GetBuildDir(),
			IgnorePatterns: opts.GetIgnoreDirPatterns(),
			SkipBuild:      opts.GetSkipBuild(),
		}
		manager := benchmark.New(cfg, truth, staticTools, dynamicTools, builder, reporter, printer)
		summary = manager.RunAll()
	}

	path, err := reporter.WriteSummary(summary)
	if err != nil {
		glog.Fatalf("failed to write summary: %v", err)
	}
	fmt.Println(printer.Sprintf("Summary written to %s", path))
}
