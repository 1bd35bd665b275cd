package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLabelFromFilename(t *testing.T) {
	tests := map[string]Label{
		"kitchen_crack_01.jpg": LabelCrack,
		"Bathroom_LEAK.png":    LabelLeak,
		"garage_wiring.jpg":    LabelExposedWiring,
		"loose_wire.jpg":       LabelExposedWiring,
		"ceiling_stain.jpg":    LabelDamp,
		"water_pipe.jpg":       LabelLeak,
		"living_room.jpg":      LabelOK,
	}
	for name, want := range tests {
		require.Equal(t, want, LabelFromFilename(name), name)
	}
}

func TestLabelFromNotes(t *testing.T) {
	require.Equal(t, LabelMold, LabelFromNotes("Black mold behind the sink"))
	require.Equal(t, LabelCrack, LabelFromNotes("crack near a leak"))
	require.Equal(t, LabelOK, LabelFromNotes("fresh paint"))
	require.Equal(t, LabelOK, LabelFromNotes(""))
}
