package nikud

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrSpanOutOfRange is returned when a token span does not fit the text it describes.
var ErrSpanOutOfRange = errors.New("token span out of range")

// Options controls how predictions are rendered.
type Options struct {
	// MatresMark is emitted on א, ו and י when the model predicts a mater
	// lectionis there. Empty drops matres lectionis entirely.
	MatresMark string
}

// TokenSpan is a half-open byte range [Start, End) of the cleaned text produced
// by one token, together with the prediction for that token.
type TokenSpan struct {
	Start, End int
	Prediction
}

// Reconstruct rebuilds text with the predicted marks attached. Spans are walked
// in order; text between spans is copied verbatim, as are spans longer than one
// character. Only single-letter spans in the א..ת range receive marks.
func Reconstruct(text string, spans []TokenSpan, opts Options) (string, error) {
	var b strings.Builder
	b.Grow(len(text) * 3)

	prevEnd := 0
	for i, sp := range spans {
		if sp.Start < 0 || sp.Start > len(text) || sp.End > len(text) {
			return "", fmt.Errorf("span %d [%d,%d) over %d bytes: %w", i, sp.Start, sp.End, len(text), ErrSpanOutOfRange)
		}
		if sp.Start > prevEnd {
			if !boundary(text, prevEnd) || !boundary(text, sp.Start) {
				return "", fmt.Errorf("span %d gap [%d,%d) splits a character: %w", i, prevEnd, sp.Start, ErrSpanOutOfRange)
			}
			b.WriteString(text[prevEnd:sp.Start])
		}
		if sp.End <= sp.Start {
			continue
		}
		if !boundary(text, sp.Start) || !boundary(text, sp.End) {
			return "", fmt.Errorf("span %d [%d,%d) splits a character: %w", i, sp.Start, sp.End, ErrSpanOutOfRange)
		}

		tok := text[sp.Start:sp.End]
		prevEnd = sp.End
		if utf8.RuneCountInString(tok) != 1 {
			b.WriteString(tok)
			continue
		}

		r, _ := utf8.DecodeRuneInString(tok)
		b.WriteString(tok)
		if !IsHebrewLetter(r) {
			continue
		}
		writeMarks(&b, r, sp.Prediction, opts)
	}
	if prevEnd < len(text) {
		if !boundary(text, prevEnd) {
			return "", fmt.Errorf("trailing text at %d splits a character: %w", prevEnd, ErrSpanOutOfRange)
		}
		b.WriteString(text[prevEnd:])
	}
	return b.String(), nil
}

// writeMarks appends marks in canonical order: shin/sin dot, nikud, stress,
// vocal shva, prefix.
func writeMarks(b *strings.Builder, letter rune, p Prediction, opts Options) {
	if letter == shin {
		b.WriteString(p.Shin.Mark())
	}
	if p.Nikud.IsMatresLectionis() {
		if IsMatresLetter(letter) {
			b.WriteString(opts.MatresMark)
		}
	} else {
		b.WriteString(p.Nikud.Mark())
	}
	if p.Stressed {
		b.WriteString(StressMark)
	}
	if p.VocalShva {
		b.WriteString(VocalShvaMark)
	}
	if p.Prefix {
		b.WriteString(PrefixMark)
	}
}

func boundary(s string, i int) bool {
	return i == len(s) || utf8.RuneStart(s[i])
}
