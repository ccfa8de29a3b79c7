package tokenizer

import (
	"unicode"
	"unicode/utf8"
)

// Char is a character-level tokenizer shaped like the BERT char models: [CLS],
// one token per non-space rune, [SEP]. Runes missing from Vocab map to UnkID.
// It needs no files and backs development runs and tests.
type Char struct {
	Vocab map[rune]int64
	ClsID int64
	SepID int64
	UnkID int64
}

// NewChar returns a Char tokenizer whose ids are the rune values offset past
// the special tokens.
func NewChar() *Char {
	return &Char{ClsID: 1, SepID: 2, UnkID: 3}
}

func (c *Char) id(r rune) int64 {
	if c.Vocab == nil {
		return int64(r) + 4
	}
	if id, ok := c.Vocab[r]; ok {
		return id
	}
	return c.UnkID
}

func (c *Char) Encode(text string) (*Encoding, error) {
	n := utf8.RuneCountInString(text) + 2
	enc := &Encoding{
		IDs:           make([]int64, 0, n),
		AttentionMask: make([]int64, 0, n),
		TypeIDs:       make([]int64, 0, n),
		Offsets:       make([]Offset, 0, n),
	}
	add := func(id int64, off Offset) {
		enc.IDs = append(enc.IDs, id)
		enc.AttentionMask = append(enc.AttentionMask, 1)
		enc.TypeIDs = append(enc.TypeIDs, 0)
		enc.Offsets = append(enc.Offsets, off)
	}
	add(c.ClsID, Offset{})
	for i := 0; i < len(text); {
		r, w := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(r) {
			add(c.id(r), Offset{Start: i, End: i + w})
		}
		i += w
	}
	add(c.SepID, Offset{})
	return enc, nil
}

func (c *Char) Close() error { return nil }
