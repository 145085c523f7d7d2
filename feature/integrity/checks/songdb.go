package checks

import (
	"fmt"
	"reflect"
	"strings"

	"table-pack-maker/core/database"
	"table-pack-maker/feature/songdb"

	"gorm.io/gorm"
)

// SongDBReport strictly types the result of a song database schema check.
type SongDBReport struct {
	Table          string   `json:"table"`
	Matched        bool     `json:"matched"`
	Usable         bool     `json:"usable"`
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Songs          int64    `json:"songs"`
	Errors         []string `json:"errors"`
}

// CheckSongDB compares the song table against the Song model.
//
// Matched means every modelled column exists with a compatible type. Usable is the
// weaker property that the columns matching reads (md5, path) exist; a database can
// be usable without matching.
func CheckSongDB(db *gorm.DB) (*SongDBReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	model := reflect.TypeOf(songdb.Song{})
	report := &SongDBReport{
		Table:          songdb.Song{}.TableName(),
		Matched:        true,
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Errors:         []string{},
	}

	actualCols, err := database.GetTableColumns(db, report.Table)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", report.Table, err))
		report.Matched = false
		return report, nil // Partial fail
	}
	if len(actualCols) == 0 {
		report.Errors = append(report.Errors, fmt.Sprintf("table %s not found", report.Table))
		report.Matched = false
		return report, nil
	}

	actualMap := make(map[string]database.ColumnInfo)
	for _, col := range actualCols {
		actualMap[col.Field] = col
	}

	for i := 0; i < model.NumField(); i++ {
		gormTag := model.Field(i).Tag.Get("gorm")

		colName := parseGormColumn(gormTag)
		if colName == "" {
			continue
		}

		actCol, exists := actualMap[colName]
		if !exists {
			report.MissingColumns = append(report.MissingColumns, colName)
			report.Matched = false
			continue
		}

		if expType := strings.ToLower(parseGormType(gormTag)); expType != "" && !typeCompatible(expType, actCol.Type) {
			mismatch := fmt.Sprintf("%s: expected %s, got %s", colName, expType, actCol.Type)
			report.TypeMismatches = append(report.TypeMismatches, mismatch)
			report.Matched = false
		}
	}

	report.Usable = true
	for _, col := range songdb.RequiredColumns {
		if _, ok := actualMap[col]; !ok {
			report.Usable = false
		}
	}

	if report.Usable {
		if err := db.Model(&songdb.Song{}).Count(&report.Songs).Error; err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to count songs: %v", err))
		}
	}

	return report, nil
}

// typeCompatible reports whether a declared column type accepts the model type.
// sqlite reports affinity names while mysql mirrors use sized types.
func typeCompatible(expected, actual string) bool {
	actual = strings.ToLower(actual)
	if strings.Contains(actual, expected) {
		return true
	}
	switch expected {
	case "text":
		return strings.Contains(actual, "char") || strings.Contains(actual, "clob")
	case "integer":
		return strings.Contains(actual, "int")
	}
	return false
}

// Helpers to parse simple GORM tags
func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}

func parseGormType(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "type:") {
			return strings.TrimPrefix(p, "type:")
		}
	}
	return ""
}
