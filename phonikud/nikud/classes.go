// Package nikud holds the Hebrew diacritic class tables and the text-side half
// of diacritization: stripping existing marks, decoding model logits into
// per-token predictions and threading those predictions back onto the text.
package nikud

import (
	"errors"
	"fmt"
)

// ErrClassOutOfRange is returned when a model emits a class index that has no
// entry in the corresponding class table.
var ErrClassOutOfRange = errors.New("class index out of range")

// Combining marks appended after a letter, independent of its NikudClass.
const (
	StressMark    = "\u05ab" // ole
	VocalShvaMark = "\u05bd" // meteg
	PrefixMark    = "|"
)

// NikudClass is one vowel/dagesh outcome predicted for a letter.
type NikudClass int

const (
	NikudNone NikudClass = iota
	// NikudMatresLectionis marks a candidate mater lectionis rather than a literal diacritic.
	NikudMatresLectionis
	NikudDagesh
	NikudShva
	NikudHatafSegol
	NikudHatafPatah
	NikudHatafQamats
	NikudHiriq
	NikudTsere
	NikudSegol
	NikudPatah
	NikudQamats
	NikudHolam
	NikudHolamHaser
	NikudQubuts
	NikudDageshShva
	NikudDageshHatafSegol
	NikudDageshHatafPatah
	NikudDageshHatafQamats
	NikudDageshHiriq
	NikudDageshTsere
	NikudDageshSegol
	NikudDageshPatah
	NikudDageshQamats
	NikudDageshHolam
	NikudDageshHolamHaser
	NikudDageshQubuts
	NikudQamatsQatan
	NikudDageshQamatsQatan

	numNikudClasses
)

// Model class order. Index 1 is the matres placeholder and has no mark.
var nikudMarks = [numNikudClasses]string{
	"",
	"",
	"\u05bc", // dagesh
	"\u05b0", // shva
	"\u05b1", // hataf segol
	"\u05b2", // hataf patah
	"\u05b3", // hataf qamats
	"\u05b4", // hiriq
	"\u05b5", // tsere
	"\u05b6", // segol
	"\u05b7", // patah
	"\u05b8", // qamats
	"\u05b9", // holam
	"\u05ba", // holam haser
	"\u05bb", // qubuts
	"\u05bc\u05b0", "\u05bc\u05b1", "\u05bc\u05b2", "\u05bc\u05b3",
	"\u05bc\u05b4", "\u05bc\u05b5", "\u05bc\u05b6", "\u05bc\u05b7",
	"\u05bc\u05b8", "\u05bc\u05b9", "\u05bc\u05ba", "\u05bc\u05bb",
	"\u05c7", // qamats qatan
	"\u05bc\u05c7",
}

var nikudNames = [numNikudClasses]string{
	"none", "matres-lectionis", "dagesh", "shva", "hataf-segol", "hataf-patah",
	"hataf-qamats", "hiriq", "tsere", "segol", "patah", "qamats", "holam",
	"holam-haser", "qubuts", "dagesh+shva", "dagesh+hataf-segol",
	"dagesh+hataf-patah", "dagesh+hataf-qamats", "dagesh+hiriq", "dagesh+tsere",
	"dagesh+segol", "dagesh+patah", "dagesh+qamats", "dagesh+holam",
	"dagesh+holam-haser", "dagesh+qubuts", "qamats-qatan", "dagesh+qamats-qatan",
}

// NumNikudClasses is the number of classes in the nikud head of the model.
const NumNikudClasses = int(numNikudClasses)

// NikudClassFromIndex maps a model class index to a NikudClass.
func NikudClassFromIndex(i int) (NikudClass, error) {
	if i < 0 || i >= NumNikudClasses {
		return NikudNone, fmt.Errorf("nikud class %d: %w", i, ErrClassOutOfRange)
	}
	return NikudClass(i), nil
}

func (c NikudClass) valid() bool { return c >= 0 && c < numNikudClasses }

// Mark returns the combining marks emitted for the class. The matres
// placeholder and NikudNone both return "".
func (c NikudClass) Mark() string {
	if !c.valid() {
		return ""
	}
	return nikudMarks[c]
}

// IsMatresLectionis reports whether c is the matres lectionis placeholder.
func (c NikudClass) IsMatresLectionis() bool { return c == NikudMatresLectionis }

func (c NikudClass) String() string {
	if !c.valid() {
		return fmt.Sprintf("NikudClass(%d)", int(c))
	}
	return nikudNames[c]
}

// ShinClass distinguishes the two readings of ש.
type ShinClass int

const (
	Shin ShinClass = iota
	Sin

	numShinClasses
)

// NumShinClasses is the number of classes in the shin/sin head of the model.
const NumShinClasses = int(numShinClasses)

var shinMarks = [numShinClasses]string{"\u05c1", "\u05c2"}

// ShinClassFromIndex maps a model class index to a ShinClass.
func ShinClassFromIndex(i int) (ShinClass, error) {
	if i < 0 || i >= NumShinClasses {
		return Shin, fmt.Errorf("shin class %d: %w", i, ErrClassOutOfRange)
	}
	return ShinClass(i), nil
}

// Mark returns the shin or sin dot.
func (c ShinClass) Mark() string {
	if c < 0 || c >= numShinClasses {
		return ""
	}
	return shinMarks[c]
}

func (c ShinClass) String() string {
	switch c {
	case Shin:
		return "shin"
	case Sin:
		return "sin"
	}
	return fmt.Sprintf("ShinClass(%d)", int(c))
}

const (
	alef = 'א'
	vav  = 'ו'
	yod  = 'י'
	taf  = 'ת'
	shin = 'ש'
)

// IsHebrewLetter reports whether r is a base letter between א and ת.
func IsHebrewLetter(r rune) bool { return r >= alef && r <= taf }

// IsMatresLetter reports whether r can act as a mater lectionis.
func IsMatresLetter(r rune) bool { return r == alef || r == vav || r == yod }
