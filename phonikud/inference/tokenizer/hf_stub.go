//go:build !hftokenizers
// +build !hftokenizers

package tokenizer

import "fmt"

// HF is a stub used when built without the "hftokenizers" build tag.
type HF struct{}

func NewHF(path string) (*HF, error) {
	return nil, fmt.Errorf("%w: hf backend requires -tags hftokenizers", ErrUnsupported)
}

func (h *HF) Encode(text string) (*Encoding, error) {
	return nil, fmt.Errorf("%w: hf backend requires -tags hftokenizers", ErrUnsupported)
}

func (h *HF) Close() error { return nil }
