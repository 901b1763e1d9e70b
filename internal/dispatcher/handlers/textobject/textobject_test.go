package textobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/modalkit/internal/engine/buffer"
	"github.com/dshills/modalkit/internal/input/vim"
)

// selected resolves an object and returns the text it covers.
func selected(t *testing.T, id vim.TextObjectID, content string, line, col int, mode vim.ObjectMode, count int) (string, bool) {
	t.Helper()
	fn, ok := DefaultRegistry().Lookup(id)
	require.True(t, ok)
	lines := buffer.Split(content)
	r, ok := fn(lines.Position(line, col), lines, mode, count)
	if !ok {
		return "", false
	}
	require.False(t, r.Linewise)
	start, end := r.Span(lines)
	return string([]rune(content)[start:end]), true
}

func TestEveryBuiltinObjectRegistered(t *testing.T) {
	reg := DefaultRegistry()
	for _, spec := range vim.BuiltinTextObjects() {
		_, ok := reg.Lookup(spec.ID)
		assert.True(t, ok, "text object %s has no implementation", spec.Name)
	}
}

func TestWordObject(t *testing.T) {
	tests := []struct {
		name    string
		content string
		col     int
		mode    vim.ObjectMode
		count   int
		want    string
	}{
		{"iw", "foo bar baz", 5, vim.ObjectInner, 1, "bar"},
		{"iw on blank", "foo   bar", 4, vim.ObjectInner, 1, "   "},
		{"2iw", "foo bar baz", 0, vim.ObjectInner, 2, "foo "},
		{"3iw", "foo bar baz", 0, vim.ObjectInner, 3, "foo bar"},
		{"iw punctuation", "foo.bar", 3, vim.ObjectInner, 1, "."},
		{"aw trailing", "foo bar baz", 5, vim.ObjectAround, 1, "bar "},
		{"aw leading at end", "foo bar", 5, vim.ObjectAround, 1, " bar"},
		{"aw from blank", "foo bar baz", 3, vim.ObjectAround, 1, " bar"},
		{"2aw", "one two three", 0, vim.ObjectAround, 2, "one two "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := selected(t, vim.ObjectWord, tt.content, 0, tt.col, tt.mode, tt.count)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	got, ok := selected(t, vim.ObjectBigWord, "a foo.bar b", 0, 4, vim.ObjectInner, 1)
	require.True(t, ok)
	assert.Equal(t, "foo.bar", got)

	_, ok = selected(t, vim.ObjectWord, "a\n\nb", 1, 0, vim.ObjectInner, 1)
	assert.False(t, ok, "no word on an empty line")
}

func TestQuoteObject(t *testing.T) {
	tests := []struct {
		name    string
		content string
		col     int
		mode    vim.ObjectMode
		want    string
		ok      bool
	}{
		{"inner", `say "hello" now`, 6, vim.ObjectInner, "hello", true},
		{"around", `say "hello" now`, 6, vim.ObjectAround, `"hello"`, true},
		{"on open quote", `say "hello" now`, 4, vim.ObjectInner, "hello", true},
		{"on close quote", `say "hello" now`, 10, vim.ObjectInner, "hello", true},
		{"escaped quote", `"a\"b"`, 2, vim.ObjectInner, `a\"b`, true},
		{"escaped backslash", `"a\\" "b"`, 1, vim.ObjectInner, `a\\`, true},
		{"between pairs picks the next", `"a" x "b"`, 4, vim.ObjectInner, "b", true},
		{"first pair after cursor", `x = "v"`, 0, vim.ObjectInner, "v", true},
		{"empty string", `""`, 0, vim.ObjectInner, "", true},
		{"no pair", `say "hello`, 6, vim.ObjectInner, "", false},
		{"after last pair", `"a" b`, 4, vim.ObjectInner, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := selected(t, vim.ObjectDoubleQuote, tt.content, 0, tt.col, tt.mode, 1)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	got, ok := selected(t, vim.ObjectSingleQuote, `x 'y' "z"`, 0, 3, vim.ObjectInner, 1)
	require.True(t, ok)
	assert.Equal(t, "y", got)
}

func TestBracketObject(t *testing.T) {
	tests := []struct {
		name    string
		id      vim.TextObjectID
		content string
		col     int
		mode    vim.ObjectMode
		count   int
		want    string
		ok      bool
	}{
		{"inner", vim.ObjectParen, "f(a, b)", 3, vim.ObjectInner, 1, "a, b", true},
		{"around", vim.ObjectParen, "f(a, b)", 3, vim.ObjectAround, 1, "(a, b)", true},
		{"nested innermost", vim.ObjectParen, "(a (b) c)", 4, vim.ObjectInner, 1, "b", true},
		{"skips nested pair", vim.ObjectParen, "(a (b) c)", 7, vim.ObjectInner, 1, "a (b) c", true},
		{"count selects outer", vim.ObjectParen, "(a (b) c)", 4, vim.ObjectInner, 2, "a (b) c", true},
		{"on open bracket", vim.ObjectParen, "(a (b) c)", 3, vim.ObjectAround, 1, "(b)", true},
		{"on close bracket", vim.ObjectParen, "(a (b) c)", 5, vim.ObjectAround, 1, "(b)", true},
		{"empty", vim.ObjectParen, "f()", 1, vim.ObjectInner, 1, "", true},
		{"brace", vim.ObjectBrace, "{x}", 1, vim.ObjectInner, 1, "x", true},
		{"bracket", vim.ObjectBracket, "a[1]", 2, vim.ObjectAround, 1, "[1]", true},
		{"angle", vim.ObjectAngle, "vec<int>", 5, vim.ObjectInner, 1, "int", true},
		{"unmatched", vim.ObjectParen, "f(a", 2, vim.ObjectInner, 1, "", false},
		{"outside", vim.ObjectParen, "x (a)", 0, vim.ObjectInner, 1, "", false},
		{"count too large", vim.ObjectParen, "(a)", 1, vim.ObjectInner, 2, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := selected(t, tt.id, tt.content, 0, tt.col, tt.mode, tt.count)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBracketObjectMultiline(t *testing.T) {
	content := "if x {\n  a\n  b\n}"

	got, ok := selected(t, vim.ObjectBrace, content, 1, 2, vim.ObjectInner, 1)
	require.True(t, ok)
	assert.Equal(t, "  a\n  b\n", got, "inner covers only the enclosed lines")

	got, ok = selected(t, vim.ObjectBrace, content, 2, 2, vim.ObjectAround, 1)
	require.True(t, ok)
	assert.Equal(t, "{\n  a\n  b\n}", got)
}

func TestTagObject(t *testing.T) {
	content := `<div class="x"><b>bold</b> text<br/></div>`
	tests := []struct {
		name  string
		col   int
		mode  vim.ObjectMode
		count int
		want  string
		ok    bool
	}{
		{"inner innermost", 19, vim.ObjectInner, 1, "bold", true},
		{"around innermost", 19, vim.ObjectAround, 1, "<b>bold</b>", true},
		{"count selects outer", 19, vim.ObjectInner, 2, "<b>bold</b> text<br/>", true},
		{"cursor in outer text", 28, vim.ObjectInner, 1, "<b>bold</b> text<br/>", true},
		{"cursor on open tag", 2, vim.ObjectAround, 1, content, true},
		{"no third level", 19, vim.ObjectInner, 3, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := selected(t, vim.ObjectTag, content, 0, tt.col, tt.mode, tt.count)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := selected(t, vim.ObjectTag, "plain text", 0, 2, vim.ObjectInner, 1)
	assert.False(t, ok)
}

func TestParagraphObject(t *testing.T) {
	lines := buffer.Lines{"a", "b", "", "", "c", "d"}
	fn, ok := DefaultRegistry().Lookup(vim.ObjectParagraph)
	require.True(t, ok)

	tests := []struct {
		name        string
		line        int
		mode        vim.ObjectMode
		count       int
		first, last int
	}{
		{"ip", 1, vim.ObjectInner, 1, 0, 1},
		{"ip on blank", 2, vim.ObjectInner, 1, 2, 3},
		{"2ip", 0, vim.ObjectInner, 2, 0, 3},
		{"ap", 0, vim.ObjectAround, 1, 0, 3},
		{"ap at end takes leading blanks", 5, vim.ObjectAround, 1, 2, 5},
		{"ap on blank", 3, vim.ObjectAround, 1, 2, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := fn(lines.Position(tt.line, 0), lines, tt.mode, tt.count)
			require.True(t, ok)
			assert.True(t, r.Linewise)
			first, last := r.LineSpan()
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}
