//go:build !onnx
// +build !onnx

package inference

import (
	"context"
	"errors"
)

// ErrONNXUnavailable is returned by the ONNX provider in builds without the "onnx" tag.
var ErrONNXUnavailable = errors.New("onnx provider not available: build with -tags onnx")

// ONNXProvider is a stub used when built without the "onnx" build tag.
type ONNXProvider struct{}

func NewONNXProvider(modelPath string, opts ONNXOptions) (*ONNXProvider, error) {
	return nil, ErrONNXUnavailable
}

func (p *ONNXProvider) Infer(ctx context.Context, req Request) (*Outputs, error) {
	return nil, ErrONNXUnavailable
}

func (p *ONNXProvider) Close() error { return nil }
