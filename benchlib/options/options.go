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

package options

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/shlex"
	"golang.org/x/exp/slices"
	"naive.systems/toolbench/benchlib/groundtruth"
	"naive.systems/toolbench/benchlib/i18n"
	"naive.systems/toolbench/checker_integration/cppcheck"
	"naive.systems/toolbench/checker_integration/valgrind"
)

// KnownTools lists the tool names accepted by -tools.
var KnownTools = []string{cppcheck.Name, valgrind.Name}

type ArrayFlags []string

func (i *ArrayFlags) String() string {
	return strings.Join(*i, ",")
}

func (i *ArrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

type Options struct {
	BuildDir             *string
	CheckSetup           *bool
	CleanReports         *bool
	CppcheckBin          *string
	CppcheckExtraOptions *string
	DebugMode            *bool
	GroundTruth          *string
	IgnoreDirPatterns    ArrayFlags
	Lang                 *string
	ReportsDir           *string
	SkipBuild            *bool
	SrcDir               *string
	Target               *string
	Tools                *string
	ValgrindBin          *string
	ValgrindExtraOptions *string
	ValgrindTimeout      *time.Duration
}

type DefaultOptionValues struct {
	BuildDir             string
	CppcheckBin          string
	CppcheckExtraOptions string
	Lang                 string
	ReportsDir           string
	SrcDir               string
	Tools                string
	ValgrindBin          string
	ValgrindExtraOptions string
	ValgrindTimeout      time.Duration
}

var Defaults = DefaultOptionValues{
	BuildDir:             "build",
	CppcheckBin:          "cppcheck",
	CppcheckExtraOptions: "",
	Lang:                 "en",
	ReportsDir:           "reports",
	SrcDir:               "src",
	Tools:                strings.Join(KnownTools, ","),
	ValgrindBin:          "valgrind",
	ValgrindExtraOptions: "",
	ValgrindTimeout:      valgrind.DefaultTimeout,
}

// NewOptions registers the benchmark flags on fs. main passes
// flag.CommandLine so the flags sit next to glog's.
func NewOptions(fs *flag.FlagSet) *Options {
	option := &Options{}

	option.BuildDir = fs.String("build_dir", Defaults.BuildDir, "Directory the project is built into")
	option.CheckSetup = fs.Bool("check_setup", false, "Only verify that the configured tools are installed")
	option.CleanReports = fs.Bool("clean_reports", false, "Remove status and log files of earlier runs before starting")
	option.CppcheckBin = fs.String("cppcheck_bin", Defaults.CppcheckBin, "Cppcheck binary location")
	option.CppcheckExtraOptions = fs.String("cppcheck_extra_options", Defaults.CppcheckExtraOptions, "Extra options passed to cppcheck, shell quoted")
	option.DebugMode = fs.Bool("debug", false, "Print glog messages to stderr")
	option.GroundTruth = fs.String("ground_truth", "", "Ground truth file, defaults to <src_dir>/"+groundtruth.DefaultFileName)
	fs.Var(&option.IgnoreDirPatterns, "ignore_dir", "Glob pattern of paths to skip, can be repeated")
	option.Lang = fs.String("lang", Defaults.Lang, "Console language: en or zh")
	option.ReportsDir = fs.String("reports_dir", Defaults.ReportsDir, "Directory for status, log and summary files")
	option.SkipBuild = fs.Bool("skip_build", false, "Skip building and the dynamic analysis phase")
	option.SrcDir = fs.String("src_dir", Defaults.SrcDir, "Directory holding the benchmark sources")
	option.Target = fs.String("target", "", "Run the static tools on this single file and exit")
	option.Tools = fs.String("tools", Defaults.Tools, "Comma separated tools to run")
	option.ValgrindBin = fs.String("valgrind_bin", Defaults.ValgrindBin, "Valgrind binary location")
	option.ValgrindExtraOptions = fs.String("valgrind_extra_options", Defaults.ValgrindExtraOptions, "Extra options passed to valgrind, shell quoted")
	option.ValgrindTimeout = fs.Duration("valgrind_timeout", Defaults.ValgrindTimeout, "Wall clock limit of one valgrind run")

	return option
}

func (o Options) GetBuildDir() string {
	return *o.BuildDir
}

func (o Options) GetCheckSetup() bool {
	return *o.CheckSetup
}

func (o Options) GetCleanReports() bool {
	return *o.CleanReports
}

func (o Options) GetCppcheckBin() string {
	return *o.CppcheckBin
}

func (o Options) GetCppcheckExtraArgs() ([]string, error) {
	args, err := shlex.Split(*o.CppcheckExtraOptions)
	if err != nil {
		return nil, fmt.Errorf("invalid -cppcheck_extra_options %q: %v", *o.CppcheckExtraOptions, err)
	}
	return args, nil
}

func (o Options) GetDebugMode() bool {
	return *o.DebugMode
}

func (o Options) GetGroundTruth() string {
	if *o.GroundTruth != "" {
		return *o.GroundTruth
	}
	return filepath.Join(*o.SrcDir, groundtruth.DefaultFileName)
}

func (o Options) GetIgnoreDirPatterns() []string {
	return o.IgnoreDirPatterns
}

func (o Options) GetLang() string {
	return *o.Lang
}

func (o Options) GetReportsDir() string {
	return *o.ReportsDir
}

func (o Options) GetSkipBuild() bool {
	return *o.SkipBuild
}

func (o Options) GetSrcDir() string {
	return *o.SrcDir
}

func (o Options) GetTarget() string {
	return *o.Target
}

// GetTools returns the selected tool names in flag order without duplicates.
func (o Options) GetTools() []string {
	tools := []string{}
	for _, name := range strings.Split(*o.Tools, ",") {
		name = strings.TrimSpace(name)
		if name == "" || slices.Contains(tools, name) {
			continue
		}
		tools = append(tools, name)
	}
	return tools
}

func (o Options) GetValgrindBin() string {
	return *o.ValgrindBin
}

func (o Options) GetValgrindExtraArgs() ([]string, error) {
	args, err := shlex.Split(*o.ValgrindExtraOptions)
	if err != nil {
		return nil, fmt.Errorf("invalid -valgrind_extra_options %q: %v", *o.ValgrindExtraOptions, err)
	}
	return args, nil
}

func (o Options) GetValgrindTimeout() time.Duration {
	return *o.ValgrindTimeout
}

func (o Options) Validate() error {
	tools := o.GetTools()
	if len(tools) == 0 {
		return errors.New("-tools selects no tool")
	}
	for _, name := range tools {
		if !slices.Contains(KnownTools, name) {
			return fmt.Errorf("unknown tool %q, expected one of %v", name, KnownTools)
		}
	}
	if o.GetValgrindTimeout() <= 0 {
		return fmt.Errorf("-valgrind_timeout must be positive, got %v", o.GetValgrindTimeout())
	}
	if !i18n.Supported(o.GetLang()) {
		return fmt.Errorf("unsupported -lang %q", o.GetLang())
	}
	if _, err := o.GetCppcheckExtraArgs(); err != nil {
		return err
	}
	if _, err := o.GetValgrindExtraArgs(); err != nil {
		return err
	}
	return nil
}
