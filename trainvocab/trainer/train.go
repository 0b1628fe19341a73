package trainer

import (
	"context"
	"fmt"

	tk "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/processor"
)

// Result is a trained tokenizer together with its vocabulary.
type Result struct {
	Config    Config
	Tokenizer *tk.Tokenizer
	Vocab     map[string]int
}

// Train runs WordPiece training over files in one pass. The pass itself is
// managed by the tokenizer library and cannot be interrupted; ctx is only
// checked before it starts.
func Train(ctx context.Context, cfg Config, files []string) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t := NewTokenizer(cfg)
	trainer := newWordPieceTrainer(cfg)
	if err := t.Train(trainer, files); err != nil {
		return nil, fmt.Errorf("failed to train wordpiece model: %w", err)
	}
	if trainer.err != nil {
		return nil, trainer.err
	}

	vocab := trainer.vocab
	if err := checkSpecialTokens(vocab, cfg.SpecialTokens); err != nil {
		return nil, err
	}

	// Point the post-processor at the ids the trainer actually assigned
	t.WithPostProcessor(processor.NewBertProcessing(
		processor.PostToken{Value: SepToken, Id: vocab[SepToken]},
		processor.PostToken{Value: ClsToken, Id: vocab[ClsToken]},
	))

	return &Result{Config: cfg, Tokenizer: t, Vocab: vocab}, nil
}

func checkSpecialTokens(vocab map[string]int, specials []string) error {
	for _, s := range specials {
		if _, ok := vocab[s]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingSpecialToken, s)
		}
	}
	return nil
}
