package inference

import (
	"context"

	"github.com/ZanzyTHEbar/phonikud-go/phonikud/nikud"

	"gonum.org/v1/gonum/mat"
)

// StaticProvider returns the same prediction for every token. It needs no model
// file and is used for development and tests.
type StaticProvider struct {
	Nikud nikud.NikudClass
	Shin  nikud.ShinClass
	// Aux holds the stress, vocal-shva and prefix logits.
	Aux [3]float64
	// PerToken, when set, overrides the prediction for individual positions.
	PerToken map[int]nikud.Prediction
}

// NewStaticProvider returns a provider predicting n and s on every token with
// all auxiliary signals off.
func NewStaticProvider(n nikud.NikudClass, s nikud.ShinClass) *StaticProvider {
	return &StaticProvider{Nikud: n, Shin: s, Aux: [3]float64{-1, -1, -1}}
}

func (p *StaticProvider) Infer(ctx context.Context, req Request) (*Outputs, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	seq := req.SeqLen()
	out := &Outputs{
		Nikud: mat.NewDense(seq, nikud.NumNikudClasses, nil),
		Shin:  mat.NewDense(seq, nikud.NumShinClasses, nil),
		Aux:   mat.NewDense(seq, len(p.Aux), nil),
	}
	for i := 0; i < seq; i++ {
		n, s, aux := int(p.Nikud), int(p.Shin), p.Aux
		if pt, ok := p.PerToken[i]; ok {
			n, s = int(pt.Nikud), int(pt.Shin)
			aux = [3]float64{signal(pt.Stressed), signal(pt.VocalShva), signal(pt.Prefix)}
		}
		out.Nikud.Set(i, n, 1)
		out.Shin.Set(i, s, 1)
		out.Aux.SetRow(i, aux[:])
	}
	return out, nil
}

func (p *StaticProvider) Close() error { return nil }

func signal(on bool) float64 {
	if on {
		return 1
	}
	return -1
}
