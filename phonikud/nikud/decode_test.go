package nikud

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// oneHot builds a rows x cols matrix with hot[i] set to 1 in row i and -1 elsewhere.
func oneHot(cols int, hot ...int) *mat.Dense {
	m := mat.NewDense(len(hot), cols, nil)
	for i, h := range hot {
		for j := 0; j < cols; j++ {
			m.Set(i, j, -1)
		}
		m.Set(i, h, 1)
	}
	return m
}

func aux(rows ...[3]float64) *mat.Dense {
	m := mat.NewDense(len(rows), 3, nil)
	for i, r := range rows {
		m.SetRow(i, r[:])
	}
	return m
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{"ArgmaxAndThresholds", testDecodeArgmaxAndThresholds},
		{"TiesPickLowestIndex", testDecodeTiesPickLowestIndex},
		{"ZeroIsNotPositive", testDecodeZeroIsNotPositive},
		{"NaNNikud", testDecodeNaNNikud},
		{"NaNShin", testDecodeNaNShin},
		{"NaNAux", testDecodeNaNAux},
		{"ClassOutOfRange", testDecodeClassOutOfRange},
		{"MismatchedRows", testDecodeMismatchedRows},
		{"TooFewAuxColumns", testDecodeTooFewAuxColumns},
	}
	for _, tt := range tests {
		t.Run(tt.name, tt.test)
	}
}

func testDecodeArgmaxAndThresholds(t *testing.T) {
	preds, err := Decode(
		oneHot(NumNikudClasses, int(NikudPatah), int(NikudMatresLectionis)),
		oneHot(NumShinClasses, int(Sin), int(Shin)),
		aux([3]float64{2.5, -1, 0.1}, [3]float64{-3, 4, -0.5}),
	)
	require.NoError(t, err)
	require.Len(t, preds, 2)

	assert.Equal(t, Prediction{Nikud: NikudPatah, Shin: Sin, Stressed: true, Prefix: true}, preds[0])
	assert.Equal(t, Prediction{Nikud: NikudMatresLectionis, Shin: Shin, VocalShva: true}, preds[1])
}

func testDecodeTiesPickLowestIndex(t *testing.T) {
	nikud := mat.NewDense(1, NumNikudClasses, nil)
	nikud.Set(0, 4, 7)
	nikud.Set(0, 9, 7)
	shin := mat.NewDense(1, NumShinClasses, []float64{0.3, 0.3})

	preds, err := Decode(nikud, shin, aux([3]float64{}))
	require.NoError(t, err)
	assert.Equal(t, NikudHatafSegol, preds[0].Nikud)
	assert.Equal(t, Shin, preds[0].Shin)
}

func testDecodeZeroIsNotPositive(t *testing.T) {
	preds, err := Decode(oneHot(NumNikudClasses, 0), oneHot(NumShinClasses, 0), aux([3]float64{0, 0, 0}))
	require.NoError(t, err)
	assert.False(t, preds[0].Stressed)
	assert.False(t, preds[0].VocalShva)
	assert.False(t, preds[0].Prefix)
}

func testDecodeNaNNikud(t *testing.T) {
	nikud := oneHot(NumNikudClasses, 3, 3)
	nikud.Set(1, 0, math.NaN())

	_, err := Decode(nikud, oneHot(NumShinClasses, 0, 0), aux([3]float64{}, [3]float64{}))
	assert.ErrorIs(t, err, ErrNaNLogits)
}

func testDecodeNaNShin(t *testing.T) {
	shin := oneHot(NumShinClasses, 0, 1)
	shin.Set(1, 1, math.NaN())

	_, err := Decode(oneHot(NumNikudClasses, 3, 3), shin, aux([3]float64{}, [3]float64{}))
	assert.ErrorIs(t, err, ErrNaNLogits)
}

func testDecodeNaNAux(t *testing.T) {
	_, err := Decode(oneHot(NumNikudClasses, 3), oneHot(NumShinClasses, 0), aux([3]float64{1, math.NaN(), 1}))
	assert.ErrorIs(t, err, ErrNaNLogits)
}

func testDecodeClassOutOfRange(t *testing.T) {
	wide := oneHot(NumNikudClasses+2, NumNikudClasses+1)
	_, err := Decode(wide, oneHot(NumShinClasses, 0), aux([3]float64{}))
	assert.ErrorIs(t, err, ErrClassOutOfRange)

	_, err = Decode(oneHot(NumNikudClasses, 0), oneHot(3, 2), aux([3]float64{}))
	assert.ErrorIs(t, err, ErrClassOutOfRange)
}

func testDecodeMismatchedRows(t *testing.T) {
	_, err := Decode(oneHot(NumNikudClasses, 0, 0), oneHot(NumShinClasses, 0), aux([3]float64{}, [3]float64{}))
	assert.ErrorIs(t, err, ErrLogitsShape)
}

func testDecodeTooFewAuxColumns(t *testing.T) {
	_, err := Decode(oneHot(NumNikudClasses, 0), oneHot(NumShinClasses, 0), mat.NewDense(1, 2, nil))
	assert.ErrorIs(t, err, ErrLogitsShape)
}

func TestClassTables(t *testing.T) {
	assert.Equal(t, 29, NumNikudClasses)
	assert.Equal(t, 2, NumShinClasses)

	assert.Equal(t, "", NikudNone.Mark())
	assert.Equal(t, "", NikudMatresLectionis.Mark())
	assert.Equal(t, "\u05b7", NikudPatah.Mark())
	assert.Equal(t, "\u05bc\u05b0", NikudDageshShva.Mark())
	assert.Equal(t, "\u05bc\u05bb", NikudDageshQubuts.Mark())
	assert.Equal(t, "\u05c7", NikudQamatsQatan.Mark())
	assert.Equal(t, "\u05bc\u05c7", NikudDageshQamatsQatan.Mark())
	assert.Equal(t, "\u05c1", Shin.Mark())
	assert.Equal(t, "\u05c2", Sin.Mark())

	// Dagesh combinations mirror the plain vowels 3..14 at 15..26.
	for i := int(NikudShva); i <= int(NikudQubuts); i++ {
		plain := NikudClass(i).Mark()
		combined := NikudClass(i + 12).Mark()
		assert.Equal(t, NikudDagesh.Mark()+plain, combined, "class %d", i+12)
	}

	_, err := NikudClassFromIndex(-1)
	assert.ErrorIs(t, err, ErrClassOutOfRange)
	_, err = NikudClassFromIndex(NumNikudClasses)
	assert.ErrorIs(t, err, ErrClassOutOfRange)
	c, err := NikudClassFromIndex(10)
	require.NoError(t, err)
	assert.Equal(t, "patah", c.String())
	_, err = ShinClassFromIndex(2)
	assert.ErrorIs(t, err, ErrClassOutOfRange)
}

func TestLetterPredicates(t *testing.T) {
	assert.True(t, IsHebrewLetter('א'))
	assert.True(t, IsHebrewLetter('ת'))
	assert.True(t, IsHebrewLetter('ם'))
	assert.False(t, IsHebrewLetter('\u05b7'))
	assert.False(t, IsHebrewLetter('\u05f0'))
	assert.False(t, IsHebrewLetter('a'))

	for _, r := range "אוי" {
		assert.True(t, IsMatresLetter(r), string(r))
	}
	for _, r := range "בהשת" {
		assert.False(t, IsMatresLetter(r), string(r))
	}
}
