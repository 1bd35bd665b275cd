package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"defect-inspector/internal/domain/entity"
)

var findingsHeader = []string{
	ColPropertyID, ColPropertyName, ColRoomID, ColRoomName, ColImageFilename,
	"label", "score", "source", ColNotes,
}

// WriteFindings пишет результаты классификации в CSV с заголовком
func WriteFindings(w io.Writer, findings []entity.Finding) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(findingsHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, f := range findings {
		rec := []string{
			strconv.FormatInt(f.PropertyID, 10),
			f.PropertyName,
			strconv.FormatInt(f.RoomID, 10),
			f.RoomName,
			f.ImageFilename,
			string(f.Label),
			strconv.FormatFloat(f.Score, 'f', -1, 64),
			string(f.Source),
			f.Notes,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write finding: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
