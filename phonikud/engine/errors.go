package engine

import "errors"

// Error kinds. Every error returned by this package wraps exactly one of them,
// along with the underlying cause.
var (
	// ErrConstruction means the model or tokenizer could not be loaded. No engine is returned.
	ErrConstruction = errors.New("engine construction failed")
	// ErrTokenization means the input could not be encoded. The engine remains usable.
	ErrTokenization = errors.New("tokenization failed")
	// ErrInference means the backend failed or produced unusable predictions. The engine remains usable.
	ErrInference = errors.New("inference failed")
)

func errorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTokenization):
		return "tokenization"
	case errors.Is(err, ErrInference):
		return "inference"
	case errors.Is(err, ErrConstruction):
		return "construction"
	default:
		return "other"
	}
}
