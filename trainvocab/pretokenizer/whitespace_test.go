package pretokenizer

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tk "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/normalizer"
	"pgregory.net/rapid"
)

func preTokenize(t require.TestingT, text string) []tk.PreToken {
	pretokenized, err := NewWhitespaceSplit().PreTokenize(tk.NewPreTokenizedString(text))
	require.NoError(t, err)
	return pretokenized.GetSplits(normalizer.OriginalTarget, tk.Byte)
}

func splitValues(splits []tk.PreToken) []string {
	values := make([]string, 0, len(splits))
	for _, s := range splits {
		values = append(values, s.Value)
	}
	return values
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "hello world hello", []string{"hello", "world", "hello"}},
		{"mixed whitespace", " \thello\n\nworld \r\n", []string{"hello", "world"}},
		{"unicode space", "a\u00a0b\u3000c", []string{"a", "b", "c"}},
		{"punctuation kept", "hi, there!", []string{"hi,", "there!"}},
		{"special tokens", "[CLS] x [SEP]", []string{"[CLS]", "x", "[SEP]"}},
		{"only whitespace", " \t\n ", []string{}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.in)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsDelimiter(t *testing.T) {
	for _, r := range " \t\n\r\v\f\u0085\u00a0\u3000" {
		assert.True(t, IsDelimiter(r), "%U", r)
	}
	for _, r := range "a#[]-_.0" {
		assert.False(t, IsDelimiter(r), "%U", r)
	}
}

// Pieces are never empty, never contain whitespace and rejoin to the input
// with its whitespace removed.
func TestProperty_Split_NoWhitespaceNoEmpty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		words := rapid.SliceOf(rapid.StringMatching(`[a-zA-Z0-9#\[\].,é]{1,8}`)).Draw(rt, "words")
		seps := rapid.SliceOfN(rapid.StringMatching(`[ \t\n\r\x{00a0}]{1,3}`), len(words)+1, len(words)+1).Draw(rt, "seps")

		var b strings.Builder
		for i, w := range words {
			b.WriteString(seps[i])
			b.WriteString(w)
		}
		b.WriteString(seps[len(words)])
		text := b.String()

		got := Split(text)
		require.Len(rt, got, len(words))
		for i, piece := range got {
			assert.NotEmpty(rt, piece)
			assert.False(rt, strings.IndexFunc(piece, unicode.IsSpace) >= 0, "piece %q has whitespace", piece)
			assert.Equal(rt, words[i], piece)
		}
	})
}

func TestNewWhitespaceSplit(t *testing.T) {
	assert.NotNil(t, NewWhitespaceSplit())
	assert.Equal(t, "WhitespaceSplit", TypeName)
}

func TestPreTokenize(t *testing.T) {
	splits := preTokenize(t, "  hello\t\n world  ")
	require.Len(t, splits, 2)
	assert.Equal(t, "hello", splits[0].Value)
	assert.Equal(t, []int{2, 7}, splits[0].Offsets)
	assert.Equal(t, "world", splits[1].Value)
	assert.Equal(t, []int{10, 15}, splits[1].Offsets)

	assert.Empty(t, preTokenize(t, " \t\n "))
	assert.Equal(t, []string{"[CLS]", "hi,", "there!"}, splitValues(preTokenize(t, "[CLS] hi, there!")))
}

// The library-facing pre-tokenizer and the plain split agree on every input.
func TestProperty_PreTokenizeMatchesSplit(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringMatching(`[a-z#\[\]é \t\n\x{00a0}]{0,40}`).Draw(rt, "text")

		splits := preTokenize(rt, text)
		want := Split(text)
		if len(want) == 0 {
			assert.Empty(rt, splits)
			return
		}
		assert.Equal(rt, want, splitValues(splits))
	})
}
