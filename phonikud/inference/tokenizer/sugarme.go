package tokenizer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	tk "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/model/wordpiece"
	"github.com/sugarme/tokenizer/normalizer"
	"github.com/sugarme/tokenizer/pretokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	"github.com/sugarme/tokenizer/processor"
)

// Sugar wraps a sugarme/tokenizer pipeline.
type Sugar struct {
	t *tk.Tokenizer
}

// NewSugar loads a HuggingFace tokenizer.json, or builds a BERT WordPiece
// pipeline when path is a vocab.txt file or a directory containing one.
func NewSugar(path string) (*Sugar, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("tokenizer file: %w", err)
	}
	if fi.IsDir() {
		if _, err := os.Stat(filepath.Join(path, "tokenizer.json")); err == nil {
			path = filepath.Join(path, "tokenizer.json")
		} else {
			path = filepath.Join(path, "vocab.txt")
		}
	}
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		t, err := newBertWordPiece(path)
		if err != nil {
			return nil, err
		}
		return &Sugar{t: t}, nil
	}
	t, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer %s: %w", path, err)
	}
	return &Sugar{t: t}, nil
}

// newBertWordPiece builds a BERT-style tokenizer from a vocab file.
func newBertWordPiece(vocabPath string) (*tk.Tokenizer, error) {
	wp, err := wordpiece.NewWordPieceFromFile(vocabPath, "[UNK]")
	if err != nil {
		return nil, fmt.Errorf("load vocab %s: %w", vocabPath, err)
	}
	clsID, sepID, err := specialIDs(vocabPath)
	if err != nil {
		return nil, err
	}

	t := tk.NewTokenizer(wp)
	// Pieces must match the cleaned text byte for byte, so no lowercasing or accent stripping.
	t.WithNormalizer(normalizer.NewBertNormalizer(true, false, false, false))
	t.WithPreTokenizer(pretokenizer.NewBertPreTokenizer())
	t.WithPostProcessor(processor.NewBertProcessing(
		processor.PostToken{Value: "[SEP]", Id: sepID},
		processor.PostToken{Value: "[CLS]", Id: clsID},
	))
	return t, nil
}

// specialIDs finds [CLS] and [SEP] by line order, defaulting to the BERT ids.
func specialIDs(vocabPath string) (clsID, sepID int, err error) {
	clsID, sepID = 101, 102
	f, err := os.Open(vocabPath)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	idx := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		switch strings.TrimSpace(scanner.Text()) {
		case "":
			continue
		case "[CLS]":
			clsID = idx
		case "[SEP]":
			sepID = idx
		}
		idx++
	}
	return clsID, sepID, scanner.Err()
}

// Encode tokenizes text. Offsets are rebuilt from the token strings because
// sugarme reports WordPiece continuation pieces in rune units relative to the
// word, which is wrong for any multi-byte script.
func (s *Sugar) Encode(text string) (*Encoding, error) {
	enc, err := s.t.EncodeSingle(text, true)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	tokens := enc.GetTokens()
	special := specialMask(enc.GetSpecialTokenMask(), enc.GetOffsets(), len(tokens))
	offsets, err := alignOffsets(text, tokens, special)
	if err != nil {
		return nil, err
	}
	out := &Encoding{
		IDs:           widen(enc.GetIds()),
		AttentionMask: widen(enc.GetAttentionMask()),
		TypeIDs:       widen(enc.GetTypeIds()),
		Offsets:       offsets,
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// specialMask prefers the encoding's special token mask and falls back to
// empty offsets when the mask is missing.
func specialMask(mask []int, raw [][]int, n int) []bool {
	out := make([]bool, n)
	for i := range out {
		switch {
		case len(mask) == n:
			out[i] = mask[i] == 1
		case i < len(raw) && len(raw[i]) == 2:
			out[i] = raw[i][0] == raw[i][1]
		}
	}
	return out
}

// alignOffsets walks text and assigns each WordPiece token the byte range it
// covers. A word whose pieces cannot be matched (such as [UNK], or text the
// normalizer rewrote) gets its whole span on the first piece and empty spans
// on the rest, so the text itself is never lost.
func alignOffsets(text string, tokens []string, special []bool) ([]Offset, error) {
	offsets := make([]Offset, len(tokens))
	cursor, wordEnd := 0, 0
	for i, tok := range tokens {
		if special[i] {
			continue
		}
		piece, cont := strings.CutPrefix(tok, "##")
		if piece == "" {
			piece, cont = tok, false
		}

		if !cont {
			start := skipIgnorable(text, cursor)
			if start >= len(text) {
				return nil, fmt.Errorf("%w: token %d %q past end of text", ErrMalformedEncoding, i, tok)
			}
			wordEnd = preTokenEnd(text, start)
			cursor = start
		}
		if cursor >= wordEnd {
			offsets[i] = Offset{Start: cursor, End: cursor}
			continue
		}
		n := matchPiece(text[cursor:wordEnd], piece)
		if n == 0 {
			n = wordEnd - cursor
		}
		offsets[i] = Offset{Start: cursor, End: cursor + n}
		cursor += n
	}
	return offsets, nil
}

// matchPiece returns the byte length of piece at the start of s, or 0.
func matchPiece(s, piece string) int {
	if len(piece) > len(s) {
		return 0
	}
	if strings.HasPrefix(s, piece) || strings.EqualFold(s[:len(piece)], piece) {
		return len(piece)
	}
	return 0
}

// skipIgnorable advances past whitespace, control and format characters and
// invalid bytes, none of which produce tokens.
func skipIgnorable(text string, i int) int {
	for i < len(text) {
		r, w := utf8.DecodeRuneInString(text[i:])
		if !ignorable(r, w) {
			break
		}
		i += w
	}
	return i
}

// preTokenEnd returns the end of the BERT pre-token starting at i: a single
// punctuation character, or a run up to the next whitespace or punctuation.
func preTokenEnd(text string, i int) int {
	r, w := utf8.DecodeRuneInString(text[i:])
	if normalizer.IsBertPunctuation(r) {
		return i + w
	}
	for i < len(text) {
		r, w = utf8.DecodeRuneInString(text[i:])
		if ignorable(r, w) || normalizer.IsBertPunctuation(r) {
			break
		}
		i += w
	}
	return i
}

func ignorable(r rune, width int) bool {
	return unicode.IsSpace(r) || unicode.In(r, unicode.Cc, unicode.Cf) || (r == utf8.RuneError && width <= 1)
}

func (s *Sugar) Close() error { return nil }
