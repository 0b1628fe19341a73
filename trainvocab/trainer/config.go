// Package trainer builds the WordPiece tokenizer pipeline, trains it on a
// corpus and persists the result as vocab.json.
package trainer

import (
	"errors"
	"fmt"

	tk "github.com/sugarme/tokenizer"
)

// Fixed training parameters.
const (
	AlphabetLimit           = 1000
	ContinuingSubwordPrefix = "##"
	MaxInputCharsPerWord    = 100

	UnkToken = "[UNK]"
	ClsToken = "[CLS]"
	SepToken = "[SEP]"
)

// Fallback post-processor ids used before a vocabulary exists.
const (
	defaultSepID = 102
	defaultClsID = 101
)

// DefaultSpecialTokens are reserved in every trained vocabulary, in this order.
var DefaultSpecialTokens = []string{
	"[PAD]", UnkToken, ClsToken, SepToken, "[MASK]",
	"[AMOUNT]", "[ARAB]", "[ARMN]", "[BRAI]", "[CURR]", "[CYRL]",
	"[DATE]", "[EMAIL]", "[FOREIGN]", "[GEOR]", "[GREK]", "[HANG]",
	"[HANI]", "[HEBR]", "[HIND]", "[ISBN]", "[JAPN]", "[THAI]",
	"[TIME]", "[URL]", "[YEAR]",
}

var (
	ErrInvalidConfig       = errors.New("invalid trainer configuration")
	ErrMissingSpecialToken = errors.New("special token missing from vocabulary")
)

// Config describes one training run. It is built once and passed by value.
type Config struct {
	VocabSize               int
	LimitAlphabet           int
	ContinuingSubwordPrefix string
	SpecialTokens           []string
	ShowProgress            bool
}

// NewConfig returns the fixed training configuration for vocabSize.
func NewConfig(vocabSize int) Config {
	return Config{
		VocabSize:               vocabSize,
		LimitAlphabet:           AlphabetLimit,
		ContinuingSubwordPrefix: ContinuingSubwordPrefix,
		SpecialTokens:           append([]string(nil), DefaultSpecialTokens...),
		ShowProgress:            true,
	}
}

func (c Config) Validate() error {
	if c.VocabSize <= 0 {
		return fmt.Errorf("%w: vocab size must be positive, got %d", ErrInvalidConfig, c.VocabSize)
	}
	if c.LimitAlphabet <= 0 {
		return fmt.Errorf("%w: alphabet limit must be positive, got %d", ErrInvalidConfig, c.LimitAlphabet)
	}
	if c.ContinuingSubwordPrefix == "" {
		return fmt.Errorf("%w: continuing subword prefix is empty", ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(c.SpecialTokens))
	for _, s := range c.SpecialTokens {
		if s == "" {
			return fmt.Errorf("%w: empty special token", ErrInvalidConfig)
		}
		if _, dup := seen[s]; dup {
			return fmt.Errorf("%w: duplicate special token %q", ErrInvalidConfig, s)
		}
		seen[s] = struct{}{}
	}
	return nil
}

// AddedTokens converts the special tokens into library tokens that are
// matched as whole words and never normalized or split.
func (c Config) AddedTokens() []tk.AddedToken {
	out := make([]tk.AddedToken, 0, len(c.SpecialTokens))
	for _, s := range c.SpecialTokens {
		tok := tk.DefaultAddedToken()
		tok.Content = s
		tok.SingleWord = true
		tok.Normalized = false
		out = append(out, tok)
	}
	return out
}
