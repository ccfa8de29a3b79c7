// Package inference runs the diacritization model. A Provider takes one
// tokenized sequence and returns the three logit heads of the model.
package inference

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrBadRequest is returned when the input sequences of a Request are unusable.
var ErrBadRequest = errors.New("invalid inference request")

// Provider runs the model on a single sequence (batch size 1).
type Provider interface {
	Infer(ctx context.Context, req Request) (*Outputs, error)
	Close() error
}

// Request holds the model inputs for one sequence. All three slices have the
// same length.
type Request struct {
	InputIDs      []int64
	AttentionMask []int64
	TokenTypeIDs  []int64
}

// SeqLen returns the number of tokens in the request.
func (r Request) SeqLen() int { return len(r.InputIDs) }

// Validate checks that the request is non-empty and its sequences line up.
func (r Request) Validate() error {
	n := len(r.InputIDs)
	if n == 0 {
		return fmt.Errorf("%w: empty sequence", ErrBadRequest)
	}
	if len(r.AttentionMask) != n || len(r.TokenTypeIDs) != n {
		return fmt.Errorf("%w: ids=%d mask=%d type_ids=%d", ErrBadRequest, n, len(r.AttentionMask), len(r.TokenTypeIDs))
	}
	return nil
}

// Outputs are the model heads with the batch dimension removed, each indexed
// [token, class].
type Outputs struct {
	Nikud *mat.Dense
	Shin  *mat.Dense
	Aux   *mat.Dense
}

// denseFromBatch copies a (1, seq, classes) float32 buffer into a seq x classes matrix.
func denseFromBatch(shape []int64, data []float32) (*mat.Dense, error) {
	if len(shape) != 3 {
		return nil, fmt.Errorf("unexpected output rank %d", len(shape))
	}
	if shape[0] != 1 {
		return nil, fmt.Errorf("unexpected batch size %d", shape[0])
	}
	rows, cols := int(shape[1]), int(shape[2])
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("unexpected output shape %v", shape)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("output has %d values, shape %v needs %d", len(data), shape, rows*cols)
	}
	vals := make([]float64, len(data))
	for i, v := range data {
		vals[i] = float64(v)
	}
	return mat.NewDense(rows, cols, vals), nil
}
