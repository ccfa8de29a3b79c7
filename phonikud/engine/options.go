package engine

import (
	"github.com/ZanzyTHEbar/phonikud-go/phonikud/inference"
	"github.com/ZanzyTHEbar/phonikud-go/phonikud/inference/tokenizer"

	"github.com/rs/zerolog"
)

type settings struct {
	tokenizerBackend string
	onnx             inference.ONNXOptions
	logger           *zerolog.Logger
}

// Option customizes engine construction.
type Option func(*settings)

// WithTokenizerBackend selects the tokenizer implementation ("sugarme" or "hf").
func WithTokenizerBackend(name string) Option {
	return func(s *settings) { s.tokenizerBackend = name }
}

// WithONNXOptions sets the ONNX Runtime session options.
func WithONNXOptions(o inference.ONNXOptions) Option {
	return func(s *settings) { s.onnx = o }
}

// WithLogger replaces the default stderr logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *settings) { s.logger = &l }
}

func newSettings(opts []Option) settings {
	s := settings{
		tokenizerBackend: tokenizer.BackendSugarme,
		onnx:             inference.DefaultONNXOptions(),
	}
	for _, o := range opts {
		o(&s)
	}
	return s
}
