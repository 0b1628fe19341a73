package trainer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	tk "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/model/bpe"
	"github.com/sugarme/tokenizer/model/wordpiece"
)

// wordPieceTrainer runs the library's subword merge training without a
// continuation prefix and turns the learned pieces into a WordPiece
// vocabulary: special tokens first, then word-initial pieces and their
// "##" continuation forms.
//
// The merge trainer is configured directly because the library's WordPiece
// trainer builder always sets a prefix, and any non-nil prefix is rendered
// as a pointer address on word-initial characters.
type wordPieceTrainer struct {
	*bpe.BpeTrainer

	cfg   Config
	vocab map[string]int
	err   error
}

var _ tk.Trainer = (*wordPieceTrainer)(nil)

func newWordPieceTrainer(cfg Config) *wordPieceTrainer {
	builder := bpe.NewBPETrainerBuilder()
	builder.ShowProgress(cfg.ShowProgress)
	builder.VocabSize(cfg.VocabSize)
	builder.LimitAlphabet(cfg.LimitAlphabet)
	builder.SpecialTokens(cfg.AddedTokens())
	// The prefix stays on the model and decoder only
	return &wordPieceTrainer{BpeTrainer: builder.Build(), cfg: cfg}
}

// Train implements tokenizer.Trainer. Failures building the final model are
// kept in w.err since the interface has no error return.
func (w *wordPieceTrainer) Train(words map[string]int) (tk.Model, []tk.AddedToken) {
	learned, _ := w.BpeTrainer.Train(words)
	w.vocab = deriveVocab(learned.GetVocab(), words, w.cfg)

	model, err := newWordPieceModel(w.vocab)
	if err != nil {
		w.err = err
		return wordpiece.NewWordPieceBuilder().Build(), w.cfg.AddedTokens()
	}
	return model, w.cfg.AddedTokens()
}

type vocabEntry struct {
	token string
	rank  int
	cont  bool
}

// deriveVocab builds the WordPiece vocabulary from the learned pieces. Every
// learned character is kept in both forms so unseen words over the same
// alphabet still encode; every corpus word contributes the pieces of its
// greedy longest-match segmentation, continuations carrying the prefix.
func deriveVocab(learned map[string]int, words map[string]int, cfg Config) map[string]int {
	prefix := cfg.ContinuingSubwordPrefix
	special := make(map[string]struct{}, len(cfg.SpecialTokens))
	for _, s := range cfg.SpecialTokens {
		special[s] = struct{}{}
	}

	// piece -> lowest learned id, with any prefix removed
	ranks := make(map[string]int, len(learned))
	maxLen := 0
	for token, id := range learned {
		if _, ok := special[token]; ok {
			continue
		}
		piece := strings.TrimPrefix(token, prefix)
		if piece == "" {
			continue
		}
		if r, seen := ranks[piece]; !seen || id < r {
			ranks[piece] = id
		}
		maxLen = max(maxLen, utf8.RuneCountInString(piece))
	}

	entries := make(map[string]vocabEntry)
	add := func(piece string, cont bool) {
		token := piece
		if cont {
			token = prefix + piece
		}
		entries[token] = vocabEntry{token: token, rank: ranks[piece], cont: cont}
	}

	for piece := range ranks {
		if utf8.RuneCountInString(piece) == 1 {
			add(piece, false)
			add(piece, true)
		}
	}

	for word := range words {
		if _, ok := special[word]; ok {
			continue
		}
		pieces, ok := segment(word, ranks, maxLen)
		if !ok {
			continue
		}
		for i, piece := range pieces {
			add(piece, i > 0)
		}
	}

	ordered := make([]vocabEntry, 0, len(entries))
	for _, e := range entries {
		ordered = append(ordered, e)
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.rank != b.rank {
			return a.rank < b.rank
		}
		if a.cont != b.cont {
			return !a.cont
		}
		return a.token < b.token
	})

	vocab := make(map[string]int, len(cfg.SpecialTokens)+len(ordered))
	for _, s := range cfg.SpecialTokens {
		vocab[s] = len(vocab)
	}
	for _, e := range ordered {
		if _, taken := vocab[e.token]; !taken {
			vocab[e.token] = len(vocab)
		}
	}
	return vocab
}

// segment splits word greedily into the longest known pieces. It fails when
// a character is outside the learned alphabet.
func segment(word string, known map[string]int, maxLen int) ([]string, bool) {
	runes := []rune(word)
	var pieces []string
	for start := 0; start < len(runes); {
		end := min(len(runes), start+maxLen)
		for ; end > start; end-- {
			if _, ok := known[string(runes[start:end])]; ok {
				break
			}
		}
		if end == start {
			return nil, false
		}
		pieces = append(pieces, string(runes[start:end]))
		start = end
	}
	return pieces, len(pieces) > 0
}

// newWordPieceModel loads vocab into a library WordPiece model through a
// vocab.txt file, one token per line in id order.
func newWordPieceModel(vocab map[string]int) (wp wordpiece.WordPiece, err error) {
	tokens := make([]string, len(vocab))
	for token, id := range vocab {
		tokens[id] = token
	}

	dir, err := os.MkdirTemp("", "trainvocab-*")
	if err != nil {
		return wp, fmt.Errorf("failed to stage vocabulary: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "vocab.txt")
	if err := os.WriteFile(path, []byte(strings.Join(tokens, "\n")+"\n"), 0o644); err != nil {
		return wp, fmt.Errorf("failed to stage vocabulary: %w", err)
	}

	wp, err = wordpiece.NewWordPieceFromFile(path, UnkToken)
	if err != nil {
		return wp, fmt.Errorf("failed to build wordpiece model: %w", err)
	}
	return wp, nil
}
