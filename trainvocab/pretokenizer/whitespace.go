// Package pretokenizer holds the splitting rule applied to raw text before
// WordPiece segmentation.
package pretokenizer

import (
	"strings"
	"unicode"

	tk "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/normalizer"
)

// TypeName is the name the rule is persisted under in vocab.json. It matches
// the HuggingFace pre-tokenizer with identical behaviour so saved files load
// in other runtimes.
const TypeName = "WhitespaceSplit"

// IsDelimiter reports whether r separates words.
func IsDelimiter(r rune) bool {
	return unicode.IsSpace(r)
}

// Split applies the rule to a plain string. Delimiters are dropped and no
// empty pieces are produced.
func Split(text string) []string {
	return strings.FieldsFunc(text, IsDelimiter)
}

// WhitespaceSplit breaks text on any whitespace and discards the whitespace.
type WhitespaceSplit struct{}

var _ tk.PreTokenizer = (*WhitespaceSplit)(nil)

// NewWhitespaceSplit creates the pre-tokenizer.
func NewWhitespaceSplit() *WhitespaceSplit {
	return &WhitespaceSplit{}
}

// PreTokenize implements tokenizer.PreTokenizer.
func (w *WhitespaceSplit) PreTokenize(pretokenized *tk.PreTokenizedString) (*tk.PreTokenizedString, error) {
	splitFn := func(_ int, sub *normalizer.NormalizedString) []tk.SplitIdx {
		pieces := sub.Split(normalizer.NewFnPattern(IsDelimiter), normalizer.RemovedBehavior)
		splits := make([]tk.SplitIdx, 0, len(pieces))
		for i := range pieces {
			piece := pieces[i]
			if piece.GetNormalized() == "" {
				continue
			}
			splits = append(splits, tk.SplitIdx{Normalized: &piece, Tokens: nil})
		}
		return splits
	}
	return pretokenized.Split(splitFn), nil
}
