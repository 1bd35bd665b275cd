package entity

// RiskTier уровень риска объекта по суммарной серьёзности
type RiskTier string

const (
	RiskHigh   RiskTier = "High"
	RiskMedium RiskTier = "Medium"
	RiskLow    RiskTier = "Low"
)

const (
	highRiskScore   = 3.0
	mediumRiskScore = 1.5
)

// TierFor переводит суммарный балл в уровень риска
func TierFor(score float64) RiskTier {
	switch {
	case score >= highRiskScore:
		return RiskHigh
	case score >= mediumRiskScore:
		return RiskMedium
	default:
		return RiskLow
	}
}

// RiskScore сумма count(label) * вес метки
func RiskScore(counts map[Label]int, table SeverityTable) float64 {
	var total float64
	for label, n := range counts {
		total += float64(n) * table.Weight(label)
	}
	return total
}
