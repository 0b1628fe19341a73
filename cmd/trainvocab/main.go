// Command trainvocab trains a WordPiece vocabulary from a directory of raw
// text files and writes it as vocab.json.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	internal "github.com/ZanzyTHEbar/trainvocab/trainvocab"
	"github.com/ZanzyTHEbar/trainvocab/trainvocab/config"
	"github.com/ZanzyTHEbar/trainvocab/trainvocab/trainer"
)

func newRootCmd(stderr io.Writer) *cobra.Command {
	v := viper.New()
	var configPath string

	cmd := &cobra.Command{
		Use:   internal.DefaultAppName,
		Short: "Train a WordPiece vocabulary from raw text files",
		Long: `trainvocab reads every file with the given extension directly inside the
input directory, trains a WordPiece vocabulary with a fixed set of special
tokens and writes the resulting tokenizer to <output dir>/vocab.json.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(v, configPath)
			if err != nil {
				if errors.Is(err, config.ErrInvalidArgs) {
					cmd.SetOut(stderr)
					_ = cmd.Usage()
				}
				return err
			}

			logger := internal.GetLogger(stderr, cfg.Verbose).With().
				Str("run_id", uuid.NewString()).
				Logger()

			_, err = trainer.Run(cmd.Context(), logger, trainer.Options{
				InputDir:     cfg.InputFilesDirPath,
				InputExt:     cfg.InputFileExt,
				OutputDir:    cfg.OutputVocabFileDirPath,
				VocabSize:    cfg.VocabSize,
				ShowProgress: true,
			})
			if err != nil {
				logger.Error().Err(err).Msg("Training failed")
			}
			return err
		},
	}
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.SetOut(stderr)
		_ = c.Usage()
		return fmt.Errorf("%w: %v", config.ErrInvalidArgs, err)
	})
	cmd.Flags().StringVar(&configPath, "config", "", "optional YAML config file")
	if err := config.RegisterFlags(cmd.Flags(), v); err != nil {
		panic(err)
	}
	return cmd
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	cmd := newRootCmd(stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}
