package trainer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	internal "github.com/ZanzyTHEbar/trainvocab/trainvocab"
	"github.com/ZanzyTHEbar/trainvocab/trainvocab/corpus"
)

// Options are the user-facing inputs of one training run.
type Options struct {
	InputDir     string
	InputExt     string
	OutputDir    string
	VocabSize    int
	ShowProgress bool
}

// Run discovers the corpus, trains a vocabulary and writes it to
// <OutputDir>/vocab.json. It returns the written path. Any failure aborts the
// run without producing output.
func Run(ctx context.Context, logger zerolog.Logger, opts Options) (string, error) {
	cfg := NewConfig(opts.VocabSize)
	cfg.ShowProgress = opts.ShowProgress
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	outPath := filepath.Join(opts.OutputDir, internal.DefaultOutputFileName)
	if err := checkOutputDir(opts.OutputDir); err != nil {
		return "", err
	}

	files, err := corpus.FindFilesWithExt(opts.InputDir, opts.InputExt)
	if err != nil {
		return "", err
	}
	logger.Debug().Strs("files", files).Msg("Discovered corpus files")

	summary, err := corpus.Inspect(ctx, files)
	if err != nil {
		return "", err
	}
	logger.Info().
		Str("dir", opts.InputDir).
		Str("ext", opts.InputExt).
		Int("files", len(summary.Files)).
		Int64("bytes", summary.TotalBytes).
		Msg("Corpus ready")

	if cfg.VocabSize < len(cfg.SpecialTokens) {
		logger.Warn().
			Int("vocab_size", cfg.VocabSize).
			Int("special_tokens", len(cfg.SpecialTokens)).
			Msg("Vocab size is smaller than the special token set; only special tokens and the alphabet will be kept")
	}

	res, err := Train(ctx, cfg, files)
	if err != nil {
		return "", err
	}

	stats, err := Summarize(res.Vocab, cfg.SpecialTokens, cfg.ContinuingSubwordPrefix)
	if err != nil {
		return "", err
	}
	logger.Info().
		Int("size", stats.Size).
		Int("special", stats.Special).
		Int("word_initial", stats.WordInitial).
		Int("continuation", stats.Continuation).
		Msg("Vocabulary trained")

	if err := Save(res, outPath, true); err != nil {
		return "", err
	}
	logger.Info().Str("path", outPath).Msg("Vocabulary saved")
	return outPath, nil
}

func checkOutputDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output directory %s is not usable: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path is not a directory: %s", dir)
	}
	return nil
}
