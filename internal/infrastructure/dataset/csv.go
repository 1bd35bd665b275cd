package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"defect-inspector/internal/domain/entity"
)

// Колонки набора данных осмотра
const (
	ColPropertyID    = "property_id"
	ColPropertyName  = "property_name"
	ColRoomID        = "room_id"
	ColRoomName      = "room_name"
	ColImageFilename = "image_filename"
	ColNotes         = "notes"
)

// ErrMissingColumn в заголовке нет обязательной колонки
var ErrMissingColumn = errors.New("missing column")

var requiredColumns = []string{ColPropertyID, ColPropertyName, ColRoomID, ColRoomName}

// Load читает CSV-файл набора данных
func Load(path string) ([]entity.InspectionRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read разбирает CSV с заголовком. image_filename и notes необязательны.
func Read(r io.Reader) ([]entity.InspectionRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	field := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []entity.InspectionRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		propertyID, err := strconv.ParseInt(field(rec, ColPropertyID), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: property_id: %w", line, err)
		}
		roomID, err := strconv.ParseInt(field(rec, ColRoomID), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: room_id: %w", line, err)
		}

		rows = append(rows, entity.InspectionRow{
			PropertyID:    propertyID,
			PropertyName:  field(rec, ColPropertyName),
			RoomID:        roomID,
			RoomName:      field(rec, ColRoomName),
			ImageFilename: field(rec, ColImageFilename),
			Notes:         field(rec, ColNotes),
		})
	}
	return rows, nil
}
