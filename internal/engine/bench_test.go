package engine

import (
	"strings"
	"testing"
)

func setupLargeEngine(b *testing.B, lines int) *Engine {
	b.Helper()
	line := strings.Repeat("x", 80) + "\n"
	return New(WithContent(strings.Repeat(line, lines)))
}

func BenchmarkEngineLines(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.Lines()
	}
}

func BenchmarkEngineApply(b *testing.B) {
	e := setupLargeEngine(b, 1000)
	a, c := e.Content(), "y"+e.Content()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if i%2 == 0 {
			_ = e.Apply(c, 0, 0)
		} else {
			_ = e.Apply(a, 0, 0)
		}
	}
}

func BenchmarkEngineUndoRedo(b *testing.B) {
	e := setupLargeEngine(b, 1000)
	_ = e.Apply("y"+e.Content(), 0, 0)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.Undo()
		_ = e.Redo()
	}
}
