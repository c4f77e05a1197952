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
	"github.com/golang/glog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var languageMap = map[string]language.Tag{"en": language.English, "zh": language.Chinese}

// Console strings that have a Chinese rendering. Keys are the English format
// strings passed to Printer.Sprintf.
var zhCatalog = map[string]string{
	"--- Starting Benchmark on %d files ---":                      "--- 开始对 %d 个文件进行基准测试 ---",
	"--- Benchmark Completed ---":                                 "--- 基准测试完成 ---",
	"No files found for testing":                                  "没有找到可测试的文件",
	"[File]: %s":                                                  "[文件]: %s",
	"[Executable]: %s":                                            "[可执行文件]: %s",
	"Running %s ...":                                              "正在运行 %s ...",
	"Running %s ... DONE.":                                        "正在运行 %s ... 完成。",
	"Running %s ... FAILED.":                                      "正在运行 %s ... 失败。",
	"Running %s on %s (%v/%v)":                                    "正在运行 %s，目标 %s (%v/%v)",
	"Running %s ... DONE. (%s, %v/%v) [%s]":                       "正在运行 %s ... 完成。(%s, %v/%v) [%s]",
	"Checking %s ... %s":                                          "正在检查 %s ... %s",
	"Checking %s ... NOT FOUND (%v)":                              "正在检查 %s ... 未找到 (%v)",
	"Source directory %s does not exist":                          "源代码目录 %s 不存在",
	"Setup check passed":                                          "环境检查通过",
	"Setup check failed":                                          "环境检查失败",
	"Summary written to %s":                                       "汇总已写入 %s",
	"Error: %v":                                                   "错误: %v",
	"[Verification - %s]":                                         "[验证 - %s]",
	" SUCCESS: Found %d bugs (expected at least %d)":              " 成功: 发现 %d 个缺陷（预期至少 %d 个）",
	" SUCCESS: No bugs expected and none found":                   " 成功: 未预期缺陷且未发现缺陷",
	" MISMATCH: Found %d bugs but expected to find %d.":           " 不匹配: 发现 %d 个缺陷，但预期发现 %d 个。",
	" UNVERIFIED: Found %d bugs, no ground truth to compare":      " 未验证: 发现 %d 个缺陷，没有可对比的基准",
	"[Actual Findings]:":                                          "[实际发现]:",
	"        - Line %d [%s]: %s":                                  "        - 第 %d 行 [%s]: %s",
	"--- Starting Build Process ---":                              "--- 开始构建 ---",
	"Build failed, dynamic analysis skipped":                      "构建失败，跳过动态分析",
	"No executables found in %s":                                  "在 %s 中没有找到可执行文件",
	"Summary: %d passed, %d mismatched, %d unverified, %d failed": "汇总: %d 通过, %d 不匹配, %d 未验证, %d 失败",
	"Did code pass? %v":                                           "代码是否通过? %v",
	"[+] Created status file: %s":                                 "[+] 已创建状态文件: %s",
	"[+] Created log file: %s":                                    "[+] 已创建日志文件: %s",
}

func init() {
	for key, msg := range zhCatalog {
		if err := message.SetString(language.Chinese, key, msg); err != nil {
			glog.Errorf("failed to register zh message %q: %v", key, err)
		}
	}
}

// GetPrinter falls back to English for unknown languages.
func GetPrinter(lang string) *message.Printer {
	langTag, exist := languageMap[lang]
	if !exist {
		langTag = languageMap["en"]
	}
	return message.NewPrinter(langTag)
}

func Supported(lang string) bool {
	_, exist := languageMap[lang]
	return exist
}
