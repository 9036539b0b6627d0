// Package xsinkconf 提供日志管道的声明式配置。
//
// 配置用 YAML 或 JSON 描述级别、格式与输出目标，Load/LoadBytes 加载，
// Build 直接产出可用的 xwire.Pipeline:
//
//	level: debug
//	format: json
//	rolling:
//	  path_format: /var/log/app-{Date}.log
//	  size_limit_bytes: 104857600
//	  retained_files: 14
//
// WatchLevel 监视配置文件并热应用级别变更，基于 fsnotify，
// 带防抖处理；结构性变更（输出目标、格式）不热应用。
package xsinkconf
