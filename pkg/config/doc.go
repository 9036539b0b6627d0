// Package config 提供配置管理相关的子包。
//
// 子包列表：
//   - xsinkconf: 日志管道的声明式配置，YAML/JSON 加载与级别热更新
package config
