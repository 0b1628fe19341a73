package config

import (
	"errors"
	"fmt"
	"strings"

	internal "github.com/ZanzyTHEbar/trainvocab/trainvocab"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys shared by the command-line flags, the environment and the config file.
const (
	KeyInputFilesDirPath      = "input-files-dir-path"
	KeyInputFileExt           = "input-file-ext"
	KeyOutputVocabFileDirPath = "output-vocab-file-dir-path"
	KeyVocabSize              = "vocab-size"
	KeyVerbose                = "verbose"
)

// ErrInvalidArgs is returned when a required setting is missing or malformed.
var ErrInvalidArgs = errors.New("invalid arguments")

// Config stores the settings of one training run.
// Values come from flags, TRAINVOCAB_* environment variables or a YAML file, in that order of precedence.
type Config struct {
	InputFilesDirPath      string `mapstructure:"input-files-dir-path"`
	InputFileExt           string `mapstructure:"input-file-ext"`
	OutputVocabFileDirPath string `mapstructure:"output-vocab-file-dir-path"`
	VocabSize              int    `mapstructure:"vocab-size"`
	Verbose                bool   `mapstructure:"verbose"`
}

// RegisterFlags declares the run flags on fs and binds them to v.
func RegisterFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	fs.String(KeyInputFilesDirPath, "", "directory holding the raw training text files")
	fs.String(KeyInputFileExt, "", "extension of the files to train on, e.g. txt")
	fs.String(KeyOutputVocabFileDirPath, "", "directory that receives "+internal.DefaultOutputFileName)
	fs.Int(KeyVocabSize, 0, "target vocabulary size")
	fs.BoolP(KeyVerbose, "v", false, "enable debug logging")
	return v.BindPFlags(fs)
}

// LoadConfig reads configuration into a Config using v. Flags must already be
// bound to v by the caller. An explicit configPath that cannot be read is an
// error; a missing default config file is not.
func LoadConfig(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(internal.DefaultConfigPath)
		v.SetConfigName(internal.DefaultConfigName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(internal.DefaultEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_")) // vocab-size -> TRAINVOCAB_VOCAB_SIZE
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	cfg.InputFileExt = strings.TrimPrefix(cfg.InputFileExt, ".")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every missing or malformed required setting at once.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.InputFilesDirPath) == "" {
		problems = append(problems, "--"+KeyInputFilesDirPath+" is required")
	}
	if strings.TrimSpace(c.InputFileExt) == "" {
		problems = append(problems, "--"+KeyInputFileExt+" is required")
	}
	if strings.TrimSpace(c.OutputVocabFileDirPath) == "" {
		problems = append(problems, "--"+KeyOutputVocabFileDirPath+" is required")
	}
	if c.VocabSize <= 0 {
		problems = append(problems, "--"+KeyVocabSize+" must be a positive integer")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidArgs, strings.Join(problems, "; "))
	}
	return nil
}
