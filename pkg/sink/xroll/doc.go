// Package xroll 提供按日期命名的滚动文件 sink。
//
// # 文件命名
//
// 路径模板必须恰好包含一个 {Date} 占位符，替换为 ISO 日期（2006-01-02）：
//
//	logs/app-{Date}.log  →  logs/app-2024-01-01.log
//
// 同一天内因大小超限产生的溢出文件在日期后插入序号段：
//
//	logs/app-2024-01-01-001.log
//	logs/app-2024-01-01-002.log
//
// # 轮转
//
//   - 日期变化总是切换到新文件，优先于大小触发
//   - 写入会使当前文件超过大小上限且当前文件非空时，切换到下一个序号文件；
//     空文件的首行即使单独超限也会被写入（不拒绝、不死循环）
//
// # 保留清理
//
// 每次轮转后按 (日期, 序号) 从旧到新删除超出保留数量的文件。
// 当前活动文件永远不会被删除。单个删除失败通过 [WithOnError] 回调上报，
// 不中断清理也不影响写入——尽力而为，不是事务性的。
//
// # 并发与错误
//
// 所有写入和轮转在单个互斥锁下串行执行，Sink 可被多个 goroutine 共享。
// 配置错误（模板缺少 {Date}、非法上限）在 [New] 快速失败；
// 运行时 I/O 错误原样上抛给 Emit/Write 的调用方且不破坏 sink 状态，
// 下一次调用仍对同一活动文件重试。sink 内部从不重试，重试语义通过
// xsink.NewRetrySink 显式组合获得。
//
// # 大小计数的已知偏差
//
// 大小计数只统计经由本 sink 写入的字节。其他进程直接写同一文件时
// 计数会偏离真实长度，这是接受的限制。
package xroll
