package nikud

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNaNLogits is returned when a logits row contains NaN and no class can be chosen.
	ErrNaNLogits = errors.New("logits contain NaN")
	// ErrLogitsShape is returned when the three logit matrices do not line up.
	ErrLogitsShape = errors.New("unexpected logits shape")
)

// Column of each auxiliary signal in the aux logits.
const (
	auxStress = iota
	auxVocalShva
	auxPrefix

	numAuxSignals
)

// Prediction is the decoded model output for a single token.
type Prediction struct {
	Nikud     NikudClass
	Shin      ShinClass
	Stressed  bool
	VocalShva bool
	Prefix    bool
}

// Decode turns per-token logits into predictions. Each matrix is indexed
// [token, class] with the batch dimension already removed. Class choice is the
// first maximum of its row; auxiliary signals fire when their logit is above zero.
func Decode(nikudLogits, shinLogits, auxLogits mat.Matrix) ([]Prediction, error) {
	rows, nikudCols := nikudLogits.Dims()
	shinRows, shinCols := shinLogits.Dims()
	auxRows, auxCols := auxLogits.Dims()
	if shinRows != rows || auxRows != rows {
		return nil, fmt.Errorf("%w: token counts differ (nikud=%d shin=%d aux=%d)", ErrLogitsShape, rows, shinRows, auxRows)
	}
	if nikudCols == 0 || shinCols == 0 {
		return nil, fmt.Errorf("%w: empty class dimension", ErrLogitsShape)
	}
	if auxCols < numAuxSignals {
		return nil, fmt.Errorf("%w: need %d auxiliary columns, got %d", ErrLogitsShape, numAuxSignals, auxCols)
	}

	preds := make([]Prediction, rows)
	nikudRow := make([]float64, nikudCols)
	shinRow := make([]float64, shinCols)
	auxRow := make([]float64, auxCols)
	for i := range preds {
		mat.Row(nikudRow, i, nikudLogits)
		mat.Row(shinRow, i, shinLogits)
		mat.Row(auxRow, i, auxLogits)

		n, err := argmax(nikudRow)
		if err != nil {
			return nil, fmt.Errorf("token %d nikud: %w", i, err)
		}
		nc, err := NikudClassFromIndex(n)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		s, err := argmax(shinRow)
		if err != nil {
			return nil, fmt.Errorf("token %d shin: %w", i, err)
		}
		sc, err := ShinClassFromIndex(s)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		if floats.HasNaN(auxRow[:numAuxSignals]) {
			return nil, fmt.Errorf("token %d auxiliary: %w", i, ErrNaNLogits)
		}

		preds[i] = Prediction{
			Nikud:     nc,
			Shin:      sc,
			Stressed:  auxRow[auxStress] > 0,
			VocalShva: auxRow[auxVocalShva] > 0,
			Prefix:    auxRow[auxPrefix] > 0,
		}
	}
	return preds, nil
}

// argmax returns the index of the first maximum. floats.MaxIdx skips NaN, so
// rows with NaN are rejected before it is consulted.
func argmax(row []float64) (int, error) {
	if floats.HasNaN(row) {
		return 0, ErrNaNLogits
	}
	return floats.MaxIdx(row), nil
}
