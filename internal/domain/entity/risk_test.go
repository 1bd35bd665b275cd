package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		score float64
		want  RiskTier
	}{
		{0, RiskLow},
		{1.49, RiskLow},
		{1.5, RiskMedium},
		{2.99, RiskMedium},
		{3.0, RiskHigh},
		{7.2, RiskHigh},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, TierFor(tt.score), tt.score)
	}
}

func TestRiskScore(t *testing.T) {
	counts := map[Label]int{
		LabelLeak:          2,
		LabelExposedWiring: 1,
		LabelOK:            4,
	}
	require.InDelta(t, 3.2, RiskScore(counts, DefaultSeverityTable()), 1e-9)
}
