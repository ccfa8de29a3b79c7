// Package engine ties cleanup, tokenization, inference and reconstruction into
// a single Diacritize call.
//
// An Engine is built once and reused. It keeps no state between calls, but the
// inference backend it wraps is serialized, so hosts that need parallel
// throughput should run one Engine per worker.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ZanzyTHEbar/phonikud-go/phonikud"
	"github.com/ZanzyTHEbar/phonikud-go/phonikud/inference"
	"github.com/ZanzyTHEbar/phonikud-go/phonikud/inference/tokenizer"
	"github.com/ZanzyTHEbar/phonikud-go/phonikud/nikud"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Engine adds nikud to Hebrew text.
type Engine struct {
	tok     tokenizer.Tokenizer
	inf     inference.Provider
	logger  zerolog.Logger
	metrics *CallMetrics
}

// New loads the ONNX model at modelPath and the tokenizer at tokenizerPath.
// Both are loaded eagerly; any failure is an ErrConstruction.
func New(modelPath, tokenizerPath string, opts ...Option) (*Engine, error) {
	s := newSettings(opts)

	tok, err := tokenizer.New(s.tokenizerBackend, tokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("%w: tokenizer %s: %w", ErrConstruction, tokenizerPath, err)
	}
	inf, err := inference.NewONNXProvider(modelPath, s.onnx)
	if err != nil {
		_ = tok.Close()
		return nil, fmt.Errorf("%w: model %s: %w", ErrConstruction, modelPath, err)
	}
	e := newEngine(tok, inf, s)
	e.logger.Info().
		Str("model", modelPath).
		Str("tokenizer", tokenizerPath).
		Str("tokenizer_backend", s.tokenizerBackend).
		Str("execution_provider", s.onnx.ExecutionProvider).
		Msg("engine loaded")
	return e, nil
}

// NewWithProviders builds an engine around already constructed collaborators.
func NewWithProviders(tok tokenizer.Tokenizer, inf inference.Provider, opts ...Option) (*Engine, error) {
	if tok == nil {
		return nil, fmt.Errorf("%w: tokenizer is nil", ErrConstruction)
	}
	if inf == nil {
		return nil, fmt.Errorf("%w: inference provider is nil", ErrConstruction)
	}
	return newEngine(tok, inf, newSettings(opts)), nil
}

func newEngine(tok tokenizer.Tokenizer, inf inference.Provider, s settings) *Engine {
	logger := phonikud.GetLogger()
	if s.logger != nil {
		logger = *s.logger
	}
	return &Engine{
		tok:     tok,
		inf:     inf,
		logger:  logger.With().Str("component", "engine").Logger(),
		metrics: &CallMetrics{},
	}
}

// DiacritizeDefault diacritizes text and drops matres lectionis.
func (e *Engine) DiacritizeDefault(ctx context.Context, text string) (string, error) {
	return e.Diacritize(ctx, text, nikud.Options{})
}

// Diacritize strips any existing marks from text, runs the model and returns
// the text with predicted marks. It either returns the whole string or fails.
func (e *Engine) Diacritize(ctx context.Context, text string, opts nikud.Options) (out string, err error) {
	start := time.Now()
	log := e.logger.With().Str("request_id", uuid.NewString()).Logger()
	tokens := 0
	defer func() {
		e.metrics.Record(start, err)
		if err != nil {
			log.Error().Err(err).Str("kind", errorKind(err)).Msg("diacritize failed")
			return
		}
		log.Debug().Int("tokens", tokens).Dur("elapsed", time.Since(start)).Msg("diacritized")
	}()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	cleaned := nikud.StripDiacritics(text)

	enc, err := e.tok.Encode(cleaned)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenization, err)
	}
	if err := enc.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenization, err)
	}
	tokens = enc.Len()
	if tokens == 0 {
		return cleaned, nil
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	outs, err := e.inf.Infer(ctx, inference.Request{
		InputIDs:      enc.IDs,
		AttentionMask: enc.AttentionMask,
		TokenTypeIDs:  enc.TypeIDs,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrInference, err)
	}
	if outs == nil || outs.Nikud == nil || outs.Shin == nil || outs.Aux == nil {
		return "", fmt.Errorf("%w: provider returned incomplete outputs", ErrInference)
	}

	preds, err := nikud.Decode(outs.Nikud, outs.Shin, outs.Aux)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInference, err)
	}
	if len(preds) != tokens {
		return "", fmt.Errorf("%w: %d predictions for %d tokens", ErrInference, len(preds), tokens)
	}

	spans := make([]nikud.TokenSpan, tokens)
	for i, off := range enc.Offsets {
		spans[i] = nikud.TokenSpan{Start: off.Start, End: off.End, Prediction: preds[i]}
	}
	out, err = nikud.Reconstruct(cleaned, spans, opts)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenization, err)
	}
	return out, nil
}

// Metrics returns call counters for this engine.
func (e *Engine) Metrics() map[string]interface{} {
	return e.metrics.GetMetrics()
}

// Close releases the tokenizer and the inference backend.
func (e *Engine) Close() error {
	return errors.Join(e.inf.Close(), e.tok.Close())
}
