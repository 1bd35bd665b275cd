package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultSeverityTable(t *testing.T) {
	table := DefaultSeverityTable()

	require.Equal(t, 0.6, table.Severity(LabelCrack))
	require.Equal(t, 1.0, table.Severity(LabelLeak))
	require.Equal(t, 0.9, table.Severity(LabelDamp))
	require.Equal(t, 1.0, table.Severity(LabelMold))
	require.Equal(t, 1.2, table.Severity(LabelExposedWiring))
	require.Equal(t, 0.0, table.Severity(LabelOK))

	for _, l := range Labels() {
		_, ok := table.Lookup(l)
		require.True(t, ok, l)
	}
}

func TestSeverityTable_IsCopied(t *testing.T) {
	src := map[Label]float64{LabelCrack: 0.6}
	table := NewSeverityTable(src)
	src[LabelCrack] = 5

	require.Equal(t, 0.6, table.Severity(LabelCrack))
}

func TestSeverityTable_Weight(t *testing.T) {
	table := DefaultSeverityTable()

	require.Equal(t, 1.2, table.Weight(LabelExposedWiring))
	require.Equal(t, DefaultWeight, table.Weight(Label("graffiti")))
}

func TestParseLabel(t *testing.T) {
	l, err := ParseLabel(" Leak ")
	require.NoError(t, err)
	require.Equal(t, LabelLeak, l)

	l, err = ParseLabel("wiring")
	require.NoError(t, err)
	require.Equal(t, LabelExposedWiring, l)

	_, err = ParseLabel("rust")
	require.ErrorIs(t, err, ErrUnknownLabel)
}

func TestLabel_IsMajor(t *testing.T) {
	require.True(t, LabelLeak.IsMajor())
	require.True(t, LabelMold.IsMajor())
	require.False(t, LabelCrack.IsMajor())
	require.False(t, LabelOK.IsMajor())
}

func TestLabels_ReturnsCopy(t *testing.T) {
	labels := Labels()
	labels[0] = "broken"
	require.Equal(t, LabelCrack, Labels()[0])
	require.Len(t, Labels(), 6)
}
