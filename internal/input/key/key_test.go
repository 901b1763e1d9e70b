package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec  string
		token string
	}{
		{"a", "a"},
		{"A", "A"},
		{"0", "0"},
		{"\"", "\""},
		{"<Esc>", "<Esc>"},
		{"<esc>", "<Esc>"},
		{"<CR>", "<CR>"},
		{"<Enter>", "<CR>"},
		{"<BS>", "<BS>"},
		{"<Tab>", "<Tab>"},
		{"<C-r>", "<C-r>"},
		{"<C-R>", "<C-r>"},
		{"Ctrl+R", "<C-r>"},
		{"<Space>", " "},
		{"<lt>", "<"},
		{"<S-Tab>", "<S-Tab>"},
		{"Escape", "<Esc>"},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			ev, err := Parse(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.token, ev.Token())
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("")
	assert.ErrorIs(t, err, ErrEmptySpec)

	_, err = Parse("<Q-x>")
	assert.ErrorIs(t, err, ErrInvalidSpec)

	_, err = Parse("bogus")
	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestEventPredicates(t *testing.T) {
	assert.True(t, NewRuneEvent('x', ModNone).IsChar())
	assert.True(t, NewRuneEvent('X', ModShift).IsChar())
	assert.False(t, NewRuneEvent('r', ModCtrl).IsChar())
	assert.True(t, NewRuneEvent('r', ModCtrl).IsModified())
	assert.True(t, NewRuneEvent('7', ModNone).IsDigit())
	assert.False(t, NewRuneEvent('a', ModNone).IsDigit())
	assert.True(t, NewSpecialEvent(KeyEscape, ModNone).IsEscape())
	assert.True(t, NewSpecialEvent(KeyEnter, ModNone).IsEnter())
	assert.True(t, NewSpecialEvent(KeyBackspace, ModNone).IsBackspace())
	assert.False(t, NewSpecialEvent(KeyEscape, ModNone).IsChar())
}

func TestEventEqualsIgnoresShiftOnRunes(t *testing.T) {
	assert.True(t, NewRuneEvent('A', ModShift).Equals(NewRuneEvent('A', ModNone)))
	assert.False(t, NewRuneEvent('a', ModNone).Equals(NewRuneEvent('a', ModCtrl)))
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "<Space>", NewRuneEvent(' ', ModNone).String())
	assert.Equal(t, "<lt>", NewRuneEvent('<', ModNone).String())
	assert.Equal(t, "d", NewRuneEvent('d', ModNone).String())
	assert.Equal(t, "<C-r>", NewRuneEvent('r', ModCtrl).String())
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		input  string
		tokens []string
	}{
		{"dd", []string{"d", "d"}},
		{"gUiw", []string{"g", "U", "i", "w"}},
		{"<C-r>", []string{"<C-r>"}},
		{"ihi there<Esc>", []string{"i", "h", "i", " ", "t", "h", "e", "r", "e", "<Esc>"}},
		{"i<div><Esc>", []string{"i", "<", "d", "i", "v", ">", "<Esc>"}},
		{"d<", []string{"d", "<"}},
		{"<<", []string{"<", "<"}},
		{"ré", []string{"r", "é"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			seq, err := ParseSequence(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.tokens, seq.Tokens())
		})
	}
}

func TestSequenceStringRoundTrips(t *testing.T) {
	for _, input := range []string{"d2w", "ci\"", "i <lt>b><Esc>", "<C-r>"} {
		seq := MustParseSequence(input)
		again, err := ParseSequence(seq.String())
		require.NoError(t, err)
		assert.Equal(t, seq.Tokens(), again.Tokens(), input)
	}
}
