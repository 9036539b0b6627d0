package xsink

import (
	"sync"
	"time"
)

// =============================================================================
// Mock Sink
// =============================================================================

// mockSink 用于测试的 Sink 实现
//
// failFirst 表示前 N 次 Emit 返回 emitErr，之后成功；
// failFirst 为 0 且 emitErr 非 nil 时每次都失败。
type mockSink struct {
	mu        sync.Mutex
	lines     []Line
	emitErr   error
	closeErr  error
	failFirst int
	emitCalls int
	closed    bool
}

func (m *mockSink) Emit(line Line) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.emitCalls++
	if m.emitErr != nil && (m.failFirst == 0 || m.emitCalls <= m.failFirst) {
		return m.emitErr
	}
	m.lines = append(m.lines, line)
	return nil
}

func (m *mockSink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	return m.closeErr
}

func (m *mockSink) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.emitCalls
}

func (m *mockSink) captured() []Line {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Line, len(m.lines))
	copy(out, m.lines)
	return out
}

func testLine(text string) Line {
	return Line{Time: time.Now().UTC(), Level: LevelInfo, Text: text}
}
