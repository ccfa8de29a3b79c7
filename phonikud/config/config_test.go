package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/phonikud-go/phonikud"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ConfigTestSuite tests the config package functionality
type ConfigTestSuite struct {
	suite.Suite
	tempDir string
	origDir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	var err error
	suite.origDir, err = os.Getwd()
	require.NoError(suite.T(), err)

	suite.tempDir = suite.T().TempDir()
	require.NoError(suite.T(), os.Chdir(suite.tempDir))
}

func (suite *ConfigTestSuite) TearDownTest() {
	if suite.origDir != "" {
		_ = os.Chdir(suite.origDir)
	}
}

func (suite *ConfigTestSuite) TestLoadConfigWithDefaults() {
	cfg, err := LoadConfig("")

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), cfg)

	assert.Equal(suite.T(), phonikud.DefaultModelPath, cfg.Model.Path)
	assert.Equal(suite.T(), phonikud.DefaultTokenizerPath, cfg.Model.TokenizerPath)
	assert.Equal(suite.T(), "sugarme", cfg.Tokenizer.Backend)
	assert.Equal(suite.T(), "cpu", cfg.Inference.ExecutionProvider)
	assert.Equal(suite.T(), 4, cfg.Inference.IntraOpThreads)
	assert.Equal(suite.T(), 0, cfg.Inference.InterOpThreads)
	assert.Equal(suite.T(), "", cfg.Diacritics.MatresMark)
	assert.Equal(suite.T(), "info", cfg.Log.Level)
	assert.Equal(suite.T(), 1, cfg.CLI.Jobs)
}

func (suite *ConfigTestSuite) TestLoadConfigWithFile() {
	configContent := `
model:
  path: "/models/phonikud-1.0.int8.onnx"
  tokenizerPath: "/models/tokenizer.json"
tokenizer:
  backend: "hf"
inference:
  executionProvider: "cuda"
  deviceID: 1
  intraOpThreads: 2
  epOptions:
    gpu_mem_limit: "1073741824"
diacritics:
  matresMark: "\u05af"
log:
  level: "debug"
cli:
  jobs: 3
`
	configFile := filepath.Join(suite.tempDir, "config.yaml")
	require.NoError(suite.T(), os.WriteFile(configFile, []byte(configContent), 0o644))

	cfg, err := LoadConfig(configFile)

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), cfg)

	assert.Equal(suite.T(), "/models/phonikud-1.0.int8.onnx", cfg.Model.Path)
	assert.Equal(suite.T(), "/models/tokenizer.json", cfg.Model.TokenizerPath)
	assert.Equal(suite.T(), "hf", cfg.Tokenizer.Backend)
	assert.Equal(suite.T(), "cuda", cfg.Inference.ExecutionProvider)
	assert.Equal(suite.T(), 1, cfg.Inference.DeviceID)
	assert.Equal(suite.T(), 2, cfg.Inference.IntraOpThreads)
	assert.Equal(suite.T(), "\u05af", cfg.Diacritics.MatresMark)
	assert.Equal(suite.T(), "debug", cfg.Log.Level)
	assert.Equal(suite.T(), 3, cfg.CLI.Jobs)

	opts := cfg.Inference.ONNXOptions()
	assert.Equal(suite.T(), "cuda", opts.ExecutionProvider)
	assert.Equal(suite.T(), 2, opts.IntraOpThreads)
	assert.Equal(suite.T(), "\u05af", cfg.Diacritics.Options().MatresMark)
}

func (suite *ConfigTestSuite) TestLoadConfigSearchesWorkingDirectory() {
	content := "model:\n  path: \"local.onnx\"\n"
	require.NoError(suite.T(), os.WriteFile(filepath.Join(suite.tempDir, "config.yaml"), []byte(content), 0o644))

	cfg, err := LoadConfig("")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "local.onnx", cfg.Model.Path)
	assert.Equal(suite.T(), phonikud.DefaultTokenizerPath, cfg.Model.TokenizerPath)
}

func (suite *ConfigTestSuite) TestLoadConfigEnvOverride() {
	suite.T().Setenv("MODEL_PATH", "/env/model.onnx")
	suite.T().Setenv("INFERENCE_INTRAOPTHREADS", "8")

	cfg, err := LoadConfig("")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "/env/model.onnx", cfg.Model.Path)
	assert.Equal(suite.T(), 8, cfg.Inference.IntraOpThreads)
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidFile() {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestLoadConfigMalformedFile() {
	malformedContent := `
model:
  path: "x.onnx"
  invalid_yaml: [unclosed bracket
`
	configFile := filepath.Join(suite.tempDir, "malformed.yaml")
	require.NoError(suite.T(), os.WriteFile(configFile, []byte(malformedContent), 0o644))

	cfg, err := LoadConfig(configFile)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestLoadsDoNotShareState() {
	dir := filepath.Join(suite.tempDir, "custom")
	require.NoError(suite.T(), os.Mkdir(dir, 0o755))
	configFile := filepath.Join(dir, "phonikud.yaml")
	require.NoError(suite.T(), os.WriteFile(configFile, []byte("model:\n  path: /models/custom.onnx\n"), 0o644))

	custom, err := LoadConfig(configFile)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "/models/custom.onnx", custom.Model.Path)

	defaults, err := LoadConfig("")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), phonikud.DefaultModelPath, defaults.Model.Path)

	custom.CLI.Jobs = 8
	again, err := LoadConfig("")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, again.CLI.Jobs)
}

// BenchmarkLoadConfig benchmarks config loading performance
func BenchmarkLoadConfig(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := LoadConfig(""); err != nil {
			b.Fatal(err)
		}
	}
}
