package tokenizer

import (
	"errors"
	"fmt"
	"strings"
)

// Tokenizer converts cleaned text into model inputs plus the byte offsets of
// every token.
type Tokenizer interface {
	Encode(text string) (*Encoding, error)
	Close() error
}

// Offset is the half-open byte range [Start, End) of the text a token came from.
// Special tokens have Start == End.
type Offset struct {
	Start, End int
}

// Encoding is one encoded sequence. All slices have the same length.
type Encoding struct {
	IDs           []int64
	AttentionMask []int64
	TypeIDs       []int64
	Offsets       []Offset
}

// Len returns the number of tokens.
func (e *Encoding) Len() int { return len(e.IDs) }

// Validate checks that every per-token slice has the same length.
func (e *Encoding) Validate() error {
	n := len(e.IDs)
	if len(e.AttentionMask) != n || len(e.TypeIDs) != n || len(e.Offsets) != n {
		return fmt.Errorf("%w: ids=%d mask=%d type_ids=%d offsets=%d",
			ErrMalformedEncoding, n, len(e.AttentionMask), len(e.TypeIDs), len(e.Offsets))
	}
	return nil
}

var (
	// ErrUnsupported indicates the tokenizer could not be initialized
	ErrUnsupported = errors.New("unsupported tokenizer configuration")
	// ErrMalformedEncoding is returned when a backend produces misaligned sequences.
	ErrMalformedEncoding = errors.New("malformed encoding")
)

// Backend names accepted by New.
const (
	BackendSugarme = "sugarme"
	BackendHF      = "hf"
)

// New opens the tokenizer at path with the named backend. An empty backend
// selects sugarme.
func New(backend, path string) (Tokenizer, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSugarme:
		t, err := NewSugar(path)
		if err != nil {
			return nil, err
		}
		return t, nil
	case BackendHF, "huggingface":
		t, err := NewHF(path)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%w: backend %q", ErrUnsupported, backend)
	}
}

func widen(in []int) []int64 {
	out := make([]int64, len(in))
	for i, v := range in {
		out[i] = int64(v)
	}
	return out
}
