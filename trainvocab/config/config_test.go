package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ConfigTestSuite tests the config package functionality
type ConfigTestSuite struct {
	suite.Suite
	tempDir string
	origDir string
	v       *viper.Viper
	flags   *pflag.FlagSet
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	var err error
	suite.origDir, err = os.Getwd()
	require.NoError(suite.T(), err)

	suite.tempDir = suite.T().TempDir()

	// Run from an empty directory so no stray config.yaml is picked up
	require.NoError(suite.T(), os.Chdir(suite.tempDir))

	suite.v = viper.New()
	suite.flags = pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(suite.T(), RegisterFlags(suite.flags, suite.v))
}

func (suite *ConfigTestSuite) TearDownTest() {
	if suite.origDir != "" {
		os.Chdir(suite.origDir)
	}
}

func (suite *ConfigTestSuite) TestLoadConfigFromFlags() {
	err := suite.flags.Parse([]string{
		"--input-files-dir-path", "/data/corpus",
		"--input-file-ext", "txt",
		"--output-vocab-file-dir-path", "/data/out",
		"--vocab-size", "30000",
	})
	require.NoError(suite.T(), err)

	cfg, err := LoadConfig(suite.v, "")
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), cfg)

	assert.Equal(suite.T(), "/data/corpus", cfg.InputFilesDirPath)
	assert.Equal(suite.T(), "txt", cfg.InputFileExt)
	assert.Equal(suite.T(), "/data/out", cfg.OutputVocabFileDirPath)
	assert.Equal(suite.T(), 30000, cfg.VocabSize)
	assert.False(suite.T(), cfg.Verbose)
}

func (suite *ConfigTestSuite) TestLeadingDotIsStripped() {
	err := suite.flags.Parse([]string{
		"--input-files-dir-path", "in",
		"--input-file-ext", ".md",
		"--output-vocab-file-dir-path", "out",
		"--vocab-size", "10",
	})
	require.NoError(suite.T(), err)

	cfg, err := LoadConfig(suite.v, "")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "md", cfg.InputFileExt)
}

func (suite *ConfigTestSuite) TestLoadConfigWithFile() {
	configContent := `
input-files-dir-path: "./corpus"
input-file-ext: "txt"
output-vocab-file-dir-path: "./out"
vocab-size: 500
`
	configFile := filepath.Join(suite.tempDir, "config.yaml")
	require.NoError(suite.T(), os.WriteFile(configFile, []byte(configContent), 0o644))

	// Flags win over the file
	require.NoError(suite.T(), suite.flags.Parse([]string{"--vocab-size", "700"}))

	cfg, err := LoadConfig(suite.v, configFile)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "./corpus", cfg.InputFilesDirPath)
	assert.Equal(suite.T(), "txt", cfg.InputFileExt)
	assert.Equal(suite.T(), "./out", cfg.OutputVocabFileDirPath)
	assert.Equal(suite.T(), 700, cfg.VocabSize)
}

func (suite *ConfigTestSuite) TestLoadConfigFromEnv() {
	suite.T().Setenv("TRAINVOCAB_INPUT_FILES_DIR_PATH", "/env/in")
	suite.T().Setenv("TRAINVOCAB_INPUT_FILE_EXT", "txt")
	suite.T().Setenv("TRAINVOCAB_OUTPUT_VOCAB_FILE_DIR_PATH", "/env/out")
	suite.T().Setenv("TRAINVOCAB_VOCAB_SIZE", "42")

	cfg, err := LoadConfig(suite.v, "")
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "/env/in", cfg.InputFilesDirPath)
	assert.Equal(suite.T(), "/env/out", cfg.OutputVocabFileDirPath)
	assert.Equal(suite.T(), 42, cfg.VocabSize)
}

func (suite *ConfigTestSuite) TestMissingFlags() {
	require.NoError(suite.T(), suite.flags.Parse([]string{"--input-file-ext", "txt"}))

	cfg, err := LoadConfig(suite.v, "")
	assert.ErrorIs(suite.T(), err, ErrInvalidArgs)
	assert.Nil(suite.T(), cfg)
	assert.Contains(suite.T(), err.Error(), "--input-files-dir-path")
	assert.Contains(suite.T(), err.Error(), "--output-vocab-file-dir-path")
	assert.Contains(suite.T(), err.Error(), "--vocab-size")
	assert.NotContains(suite.T(), err.Error(), "--input-file-ext")
}

func (suite *ConfigTestSuite) TestMalformedVocabSize() {
	err := suite.flags.Parse([]string{"--vocab-size", "many"})
	assert.Error(suite.T(), err)
}

func (suite *ConfigTestSuite) TestNonPositiveVocabSize() {
	err := suite.flags.Parse([]string{
		"--input-files-dir-path", "in",
		"--input-file-ext", "txt",
		"--output-vocab-file-dir-path", "out",
		"--vocab-size", "-3",
	})
	require.NoError(suite.T(), err)

	_, err = LoadConfig(suite.v, "")
	assert.ErrorIs(suite.T(), err, ErrInvalidArgs)
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidFile() {
	cfg, err := LoadConfig(suite.v, "/nonexistent/path/config.yaml")

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestLoadConfigMalformedFile() {
	malformedContent := `
input-files-dir-path: "./corpus"
invalid_yaml: [unclosed bracket
`
	configFile := filepath.Join(suite.tempDir, "malformed.yaml")
	require.NoError(suite.T(), os.WriteFile(configFile, []byte(malformedContent), 0o644))

	cfg, err := LoadConfig(suite.v, configFile)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func TestValidate(t *testing.T) {
	cfg := Config{
		InputFilesDirPath:      "in",
		InputFileExt:           "txt",
		OutputVocabFileDirPath: "out",
		VocabSize:              1,
	}
	assert.NoError(t, cfg.Validate())

	cfg.InputFilesDirPath = "   "
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidArgs)
}
