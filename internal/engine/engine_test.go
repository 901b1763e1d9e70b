package engine

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/dshills/modalkit/internal/dispatcher/execctx"
)

var (
	_ execctx.Editor       = (*Engine)(nil)
	_ execctx.AtomicEditor = (*Engine)(nil)
	_ execctx.Grouper      = (*Engine)(nil)
	_ execctx.IndentStyler = (*Engine)(nil)
	_ execctx.History      = (*Engine)(nil)
)

// ============================================================================
// Basic Operations
// ============================================================================

func TestNew(t *testing.T) {
	e := New()
	if e.Content() != "" {
		t.Errorf("expected empty content, got %q", e.Content())
	}
	if e.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", e.LineCount())
	}
	if e.TabWidth() != DefaultTabWidth || e.ShiftWidth() != DefaultShiftWidth || !e.ExpandTab() {
		t.Error("unexpected defaults")
	}
}

func TestNewWithOptions(t *testing.T) {
	e := New(WithContent("a\nb"), WithTabWidth(4), WithShiftWidth(2), WithExpandTab(false))
	if e.LineText(1) != "b" {
		t.Errorf("expected %q, got %q", "b", e.LineText(1))
	}
	if e.TabWidth() != 4 || e.ShiftWidth() != 2 || e.ExpandTab() {
		t.Error("options not applied")
	}
}

func TestNewFromReader(t *testing.T) {
	e, err := NewFromReader(strings.NewReader("one\r\ntwo\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Content() != "one\ntwo" {
		t.Errorf("expected %q, got %q", "one\ntwo", e.Content())
	}
}

func TestWriteTo(t *testing.T) {
	e := New(WithContent("one\ntwo"))
	var buf bytes.Buffer
	if _, err := e.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "one\ntwo\n" {
		t.Errorf("expected trailing newline, got %q", buf.String())
	}
}

func TestSetCursorClamps(t *testing.T) {
	e := New(WithContent("abc\nde"))
	e.SetCursor(5, 9)
	cur := e.Cursor()
	if cur.Line != 1 || cur.Column != 2 {
		t.Errorf("expected (1,2), got (%d,%d)", cur.Line, cur.Column)
	}
}

// ============================================================================
// Apply and Undo
// ============================================================================

func TestApplyUndoRedo(t *testing.T) {
	e := New(WithContent("hello world"))
	if err := e.Apply(" world", 0, 0); err != nil {
		t.Fatal(err)
	}
	if !e.Modified() {
		t.Error("should be modified")
	}

	e.SetCursor(0, 3)
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if e.Content() != "hello world" {
		t.Errorf("expected %q, got %q", "hello world", e.Content())
	}
	if e.Cursor().Column != 0 {
		t.Errorf("undo should restore the cursor, got %d", e.Cursor().Column)
	}

	if err := e.Redo(); err != nil {
		t.Fatal(err)
	}
	if e.Content() != " world" {
		t.Errorf("expected %q, got %q", " world", e.Content())
	}
}

func TestApplySameContentOnlyMovesCursor(t *testing.T) {
	e := New(WithContent("abc"))
	rev := e.Revision()
	if err := e.Apply("abc", 0, 2); err != nil {
		t.Fatal(err)
	}
	if e.CanUndo() {
		t.Error("no history entry expected")
	}
	if e.Revision() != rev {
		t.Error("revision should not change")
	}
	if e.Cursor().Column != 2 {
		t.Error("cursor should move")
	}
}

func TestUndoEmpty(t *testing.T) {
	e := New()
	if err := e.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
	if err := e.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestGroupUndoesAsOne(t *testing.T) {
	e := New(WithContent("foo bar"))
	e.BeginGroup()
	_ = e.Apply("foo ", 0, 4)
	_ = e.Apply("foo b", 0, 5)
	_ = e.Apply("foo baz", 0, 7)
	e.EndGroup()

	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if e.Content() != "foo bar" {
		t.Errorf("expected %q, got %q", "foo bar", e.Content())
	}
	if e.CanUndo() {
		t.Error("group should be a single entry")
	}
}

func TestReadOnly(t *testing.T) {
	e := New(WithContent("abc"), WithReadOnly())
	if !e.IsReadOnly() {
		t.Fatal("should be read-only")
	}
	if err := e.Apply("x", 0, 0); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
	if err := e.ReplaceContent("x"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
	if e.Content() != "abc" {
		t.Error("content should be unchanged")
	}
}

func TestMarkSaved(t *testing.T) {
	e := New(WithContent("a"))
	_ = e.ReplaceContent("b")
	e.MarkSaved()
	if e.Modified() {
		t.Error("should not be modified after save")
	}
	_ = e.Undo()
	if !e.Modified() {
		t.Error("undo after save should modify")
	}
}

func TestOnChange(t *testing.T) {
	e := New(WithContent("a"))
	var revs []uint64
	e.OnChange(func(rev uint64) { revs = append(revs, rev) })
	_ = e.ReplaceContent("b")
	e.SetCursor(0, 0)
	if len(revs) != 2 || revs[0] != 1 || revs[1] != 1 {
		t.Errorf("unexpected notifications %v", revs)
	}
}

// ============================================================================
// Concurrency
// ============================================================================

func TestConcurrentReads(t *testing.T) {
	e := New(WithContent(strings.Repeat("line\n", 100)))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if i%2 == 0 {
					_ = e.Lines()
					_ = e.Cursor()
				} else {
					e.SetCursor(j, 0)
				}
			}
		}(i)
	}
	wg.Wait()
}
