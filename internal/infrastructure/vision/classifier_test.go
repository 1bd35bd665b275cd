package vision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"defect-inspector/internal/domain/entity"
)

func newTestClassifier() *Classifier {
	return NewClassifier(entity.DefaultThresholds(), entity.DefaultSeverityTable())
}

func constBright(v float64) func() float64 {
	return func() float64 { return v }
}

func TestClassifier_Rules(t *testing.T) {
	tests := []struct {
		name   string
		sig    entity.Signals
		bright float64
		want   entity.Label
	}{
		{"leak by dark ratio", entity.Signals{DarkPct: 0.25, MeanBrightness: 0.6}, 0, entity.LabelLeak},
		{"leak by low brightness", entity.Signals{DarkPct: 0.1, MeanBrightness: 0.45}, 0, entity.LabelLeak},
		{"damp", entity.Signals{DarkPct: 0.12, MeanBrightness: 0.6}, 0, entity.LabelDamp},
		{"damp at leak boundaries", entity.Signals{DarkPct: 0.2, MeanBrightness: 0.5}, 0, entity.LabelDamp},
		{"dark rule needs dark above 0.08", entity.Signals{DarkPct: 0.08, MeanBrightness: 0.3, EdgeStrength: 0.05}, 0, entity.LabelOK},
		{"dark rule needs brightness below 0.7", entity.Signals{DarkPct: 0.5, MeanBrightness: 0.7, EdgeStrength: 0.01}, 0, entity.LabelMold},
		{"dark rule wins over edges", entity.Signals{DarkPct: 0.3, MeanBrightness: 0.4, EdgeStrength: 0.5}, 1, entity.LabelLeak},
		{"crack", entity.Signals{EdgeStrength: 0.1}, 0, entity.LabelCrack},
		{"crack lower bound exclusive", entity.Signals{EdgeStrength: 0.07}, 0, entity.LabelOK},
		{"wiring", entity.Signals{EdgeStrength: 0.25}, 0.01, entity.LabelExposedWiring},
		{"strong edges without bright pixels", entity.Signals{EdgeStrength: 0.4}, 0.001, entity.LabelCrack},
		{"mold", entity.Signals{DarkPct: 0.06, MeanBrightness: 0.9, EdgeStrength: 0.02}, 0, entity.LabelMold},
		{"mold needs edge below 0.03", entity.Signals{DarkPct: 0.06, MeanBrightness: 0.9, EdgeStrength: 0.03}, 0, entity.LabelOK},
		{"mold needs dark above 0.05", entity.Signals{DarkPct: 0.05, MeanBrightness: 0.9}, 0, entity.LabelOK},
		{"degenerate", entity.Signals{}, 0, entity.LabelOK},
	}

	c := newTestClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, c.Label(tt.sig, constBright(tt.bright)))
		})
	}
}

func TestClassifier_BrightIsLazy(t *testing.T) {
	c := newTestClassifier()
	calls := 0
	bright := func() float64 {
		calls++
		return 1
	}

	c.Label(entity.Signals{DarkPct: 0.3, MeanBrightness: 0.3}, bright)
	c.Label(entity.Signals{EdgeStrength: 0.1}, bright)
	c.Label(entity.Signals{DarkPct: 0.06, EdgeStrength: 0.01}, bright)
	require.Zero(t, calls)

	require.Equal(t, entity.LabelExposedWiring, c.Label(entity.Signals{EdgeStrength: 0.3}, bright))
	require.Equal(t, 1, calls)
}

func TestClassifier_NilBrightFunc(t *testing.T) {
	require.Equal(t, entity.LabelCrack, newTestClassifier().Label(entity.Signals{EdgeStrength: 0.3}, nil))
}

func TestClassifier_CustomThresholds(t *testing.T) {
	th := entity.DefaultThresholds()
	th.CrackMinEdge = 0.01
	c := NewClassifier(th, entity.DefaultSeverityTable())

	require.Equal(t, entity.LabelCrack, c.Label(entity.Signals{EdgeStrength: 0.02}, nil))
}

func TestClassifier_ResultSeverityFromTable(t *testing.T) {
	c := newTestClassifier()
	table := entity.DefaultSeverityTable()
	for _, l := range entity.Labels() {
		res := c.Result(l, entity.Signals{})
		require.Equal(t, l, res.Label)
		require.Equal(t, table.Severity(l), res.Severity)
		require.True(t, res.Decoded)
	}
}
