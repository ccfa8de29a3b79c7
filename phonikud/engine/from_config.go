package engine

import (
	"github.com/ZanzyTHEbar/phonikud-go/phonikud/config"
)

// NewFromConfig builds an engine from loaded configuration.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Engine, error) {
	base := []Option{
		WithTokenizerBackend(cfg.Tokenizer.Backend),
		WithONNXOptions(cfg.Inference.ONNXOptions()),
	}
	return New(cfg.Model.Path, cfg.Model.TokenizerPath, append(base, opts...)...)
}
