package trainer

import (
	tk "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/decoder"
	"github.com/sugarme/tokenizer/model/wordpiece"
	"github.com/sugarme/tokenizer/normalizer"
	"github.com/sugarme/tokenizer/processor"

	"github.com/ZanzyTHEbar/trainvocab/trainvocab/pretokenizer"
)

// NewTrainer builds the WordPiece trainer for cfg.
func NewTrainer(cfg Config) tk.Trainer {
	return newWordPieceTrainer(cfg)
}

// NewTokenizer assembles the untrained pipeline: a BERT normalizer with every
// option off, whitespace splitting, a default WordPiece model, a WordPiece
// decoder and BERT post-processing.
func NewTokenizer(cfg Config) *tk.Tokenizer {
	wp := wordpiece.NewWordPieceBuilder().Build()
	t := tk.NewTokenizer(wp)

	// clean text, lowercase, chinese chars, strip accents
	t.WithNormalizer(normalizer.NewBertNormalizer(false, false, false, false))
	t.WithPreTokenizer(pretokenizer.NewWhitespaceSplit())
	t.WithDecoder(decoder.NewWordPieceDecoder(cfg.ContinuingSubwordPrefix, false))
	t.WithPostProcessor(processor.NewBertProcessing(
		processor.PostToken{Value: SepToken, Id: defaultSepID},
		processor.PostToken{Value: ClsToken, Id: defaultClsID},
	))
	return t
}
