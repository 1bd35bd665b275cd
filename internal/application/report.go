package app

import (
	"fmt"
	"sort"
	"strings"

	"defect-inspector/internal/domain/entity"
)

const topLabels = 5

// LabelCount число снимков с меткой
type LabelCount struct {
	Label entity.Label `json:"label"`
	Count int          `json:"count"`
}

// PropertyReport сводка осмотра одного объекта
type PropertyReport struct {
	PropertyID     int64           `json:"property_id"`
	PropertyName   string          `json:"property_name"`
	TotalFindings  int             `json:"total_findings"`
	AvgScore       float64         `json:"avg_score"`
	RiskScore      float64         `json:"risk_score"`
	Tier           entity.RiskTier `json:"tier"`
	Labels         []LabelCount    `json:"labels"`
	RoomCount      int             `json:"room_count"`
	RoomsWithMajor int             `json:"rooms_with_major"`
	Summary        string          `json:"summary"`
}

// CountLabels считает метки в порядке первого появления
func CountLabels(findings []entity.Finding) []LabelCount {
	var out []LabelCount
	idx := make(map[entity.Label]int)
	for _, f := range findings {
		i, ok := idx[f.Label]
		if !ok {
			i = len(out)
			idx[f.Label] = i
			out = append(out, LabelCount{Label: f.Label})
		}
		out[i].Count++
	}
	return out
}

// countLabelsByRoom считает метки, перебирая помещения в порядке первого появления,
// а внутри помещения метки в порядке появления
func countLabelsByRoom(findings []entity.Finding) []LabelCount {
	var rooms []string
	byRoom := make(map[string][]entity.Finding)
	for _, f := range findings {
		if _, ok := byRoom[f.RoomName]; !ok {
			rooms = append(rooms, f.RoomName)
		}
		byRoom[f.RoomName] = append(byRoom[f.RoomName], f)
	}

	ordered := make([]entity.Finding, 0, len(findings))
	for _, room := range rooms {
		ordered = append(ordered, byRoom[room]...)
	}
	return CountLabels(ordered)
}

// BuildReports группирует находки по объектам, объекты упорядочены по ID
func BuildReports(findings []entity.Finding, table entity.SeverityTable) []PropertyReport {
	groups := make(map[int64][]entity.Finding)
	var ids []int64
	for _, f := range findings {
		if _, ok := groups[f.PropertyID]; !ok {
			ids = append(ids, f.PropertyID)
		}
		groups[f.PropertyID] = append(groups[f.PropertyID], f)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]PropertyReport, 0, len(ids))
	for _, id := range ids {
		out = append(out, BuildReport(groups[id], table))
	}
	return out
}

// BuildReport строит сводку по находкам одного объекта
func BuildReport(findings []entity.Finding, table entity.SeverityTable) PropertyReport {
	r := PropertyReport{TotalFindings: len(findings)}
	if len(findings) > 0 {
		r.PropertyID = findings[0].PropertyID
		r.PropertyName = findings[0].PropertyName
	}

	var sum float64
	for _, f := range findings {
		sum += f.Score
	}
	if len(findings) > 0 {
		r.AvgScore = sum / float64(len(findings))
	}

	r.Labels = countLabelsByRoom(findings)
	counts := make(map[entity.Label]int, len(r.Labels))
	for _, lc := range r.Labels {
		counts[lc.Label] = lc.Count
	}
	r.RiskScore = entity.RiskScore(counts, table)
	r.Tier = entity.TierFor(r.RiskScore)

	var rooms []string
	major := make(map[string]bool)
	for _, f := range findings {
		if _, seen := major[f.RoomName]; !seen {
			rooms = append(rooms, f.RoomName)
			major[f.RoomName] = false
		}
		if f.Label.IsMajor() {
			major[f.RoomName] = true
		}
	}
	r.RoomCount = len(rooms)
	for _, room := range rooms {
		if major[room] {
			r.RoomsWithMajor++
		}
	}

	r.Summary = summarize(r)
	return r
}

func summarize(r PropertyReport) string {
	top := make([]LabelCount, len(r.Labels))
	copy(top, r.Labels)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Count > top[j].Count })
	if len(top) > topLabels {
		top = top[:topLabels]
	}

	parts := make([]string, 0, len(top))
	for _, lc := range top {
		parts = append(parts, fmt.Sprintf("%s in %d images", lc.Label, lc.Count))
	}

	return fmt.Sprintf("%s risk: %s; major issues in %d/%d rooms.",
		r.Tier, strings.Join(parts, ", "), r.RoomsWithMajor, r.RoomCount)
}
