//go:build hftokenizers
// +build hftokenizers

package tokenizer

import (
	"fmt"
	"os"

	"github.com/daulet/tokenizers"
)

// HF wraps the HuggingFace tokenizers library through its C bindings. Offsets
// are the byte offsets reported by the Rust implementation.
type HF struct {
	tk *tokenizers.Tokenizer
}

// NewHF loads a tokenizer.json file.
func NewHF(path string) (*HF, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("tokenizer not found at %s: %w", path, err)
	}
	t, err := tokenizers.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer: %w", err)
	}
	return &HF{tk: t}, nil
}

func (h *HF) Encode(text string) (*Encoding, error) {
	enc := h.tk.EncodeWithOptions(text, true,
		tokenizers.WithReturnTypeIDs(),
		tokenizers.WithReturnAttentionMask(),
		tokenizers.WithReturnOffsets(),
	)
	if len(enc.IDs) == 0 && len(text) > 0 {
		return nil, fmt.Errorf("tokenizer encode produced no tokens for non-empty input")
	}
	out := &Encoding{
		IDs:           make([]int64, len(enc.IDs)),
		AttentionMask: make([]int64, len(enc.AttentionMask)),
		TypeIDs:       make([]int64, len(enc.TypeIDs)),
		Offsets:       make([]Offset, len(enc.Offsets)),
	}
	for i, v := range enc.IDs {
		out.IDs[i] = int64(v)
	}
	for i, v := range enc.AttentionMask {
		out.AttentionMask[i] = int64(v)
	}
	for i, v := range enc.TypeIDs {
		out.TypeIDs[i] = int64(v)
	}
	for i, o := range enc.Offsets {
		out.Offsets[i] = Offset{Start: int(o[0]), End: int(o[1])}
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Close releases the tokenizer resources.
func (h *HF) Close() error {
	if h.tk != nil {
		h.tk.Close()
		h.tk = nil
	}
	return nil
}
