// Package importer reads catalog price lists from CSV and Excel files.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/FrameShop/internal/geom"
	"github.com/piwi3910/FrameShop/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Items    []model.CatalogItem
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Kind      int
	Name      int
	Price     int
	FaceWidth int
	Color     int
}

// positionalMapping is used when the first row carries no recognised header:
// kind, name, price, face width, color.
var positionalMapping = ColumnMapping{Kind: 0, Name: 1, Price: 2, FaceWidth: 3, Color: 4}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"kind":  {"kind", "type", "category", "item type"},
	"name":  {"name", "label", "description", "desc", "product", "item"},
	"price": {"price", "cost", "unit price", "price per unit", "rate"},
	"face":  {"face width", "face_width", "face", "face width cm", "width", "moulding width"},
	"color": {"color", "colour", "hex", "swatch"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// The delimiter that produces the most consistent multi-column rows wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the positional mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Kind: -1, Name: -1, Price: -1, FaceWidth: -1, Color: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		role, ok := matchAlias(normalized)
		if !ok {
			continue
		}
		isHeader = true
		switch role {
		case "kind":
			setOnce(&mapping.Kind, i)
		case "name":
			setOnce(&mapping.Name, i)
		case "price":
			setOnce(&mapping.Price, i)
		case "face":
			setOnce(&mapping.FaceWidth, i)
		case "color":
			setOnce(&mapping.Color, i)
		}
	}

	if !isHeader {
		return positionalMapping, false
	}
	return mapping, true
}

func matchAlias(cell string) (string, bool) {
	for role, aliases := range headerAliases {
		for _, alias := range aliases {
			if cell == alias {
				return role, true
			}
		}
	}
	return "", false
}

func setOnce(dst *int, i int) {
	if *dst == -1 {
		*dst = i
	}
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber accepts a decimal comma and a leading currency symbol.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "€$£ ")
	s = strings.ReplaceAll(s, ",", ".")
	return strconv.ParseFloat(s, 64)
}

// parseRow converts a single row into a catalog item. A non-empty errMsg
// means the row was rejected.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.CatalogItem, string, []string) {
	var warnings []string

	kindStr := strings.ToLower(getCell(row, mapping.Kind))
	kind, ok := model.ParseItemKind(kindStr)
	if !ok {
		return model.CatalogItem{}, fmt.Sprintf("%s: unknown item kind %q", rowLabel, getCell(row, mapping.Kind)), nil
	}

	name := getCell(row, mapping.Name)
	if name == "" {
		return model.CatalogItem{}, fmt.Sprintf("%s: missing name", rowLabel), nil
	}

	priceStr := getCell(row, mapping.Price)
	price, err := parseNumber(priceStr)
	if err != nil || !geom.Finite(price) {
		return model.CatalogItem{}, fmt.Sprintf("%s: invalid price %q", rowLabel, priceStr), nil
	}
	if price < 0 {
		return model.CatalogItem{}, fmt.Sprintf("%s: price must not be negative", rowLabel), nil
	}
	if price == 0 {
		warnings = append(warnings, fmt.Sprintf("%s: %q has a zero price", rowLabel, name))
	}

	item := model.NewCatalogItem(kind, name, price)

	if faceStr := getCell(row, mapping.FaceWidth); faceStr != "" {
		face, err := parseNumber(faceStr)
		switch {
		case err != nil || !geom.ValidLength(face):
			warnings = append(warnings, fmt.Sprintf("%s: ignoring invalid face width %q", rowLabel, faceStr))
		case kind != model.KindFrame:
			warnings = append(warnings, fmt.Sprintf("%s: face width only applies to frames, ignored", rowLabel))
		default:
			item.FaceWidthCm = face
		}
	}
	if kind == model.KindFrame && item.FaceWidthCm == 0 {
		warnings = append(warnings, fmt.Sprintf("%s: frame %q has no face width", rowLabel, name))
	}

	if colorStr := getCell(row, mapping.Color); colorStr != "" {
		if !strings.HasPrefix(colorStr, "#") {
			colorStr = "#" + colorStr
		}
		if validHex(colorStr) {
			item.Color = strings.ToUpper(colorStr)
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: ignoring invalid color %q", rowLabel, colorStr))
		}
	}

	return item, "", warnings
}

func validHex(s string) bool {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return false
	}
	_, err := strconv.ParseUint(s, 16, 32)
	return err == nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports catalog items from a CSV file, auto-detecting the delimiter.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	res := ImportCSVFromReader(bytes.NewReader(data), delimiter)
	res.Warnings = append(warnings, res.Warnings...)
	return res
}

// ImportCSVFromReader imports catalog items from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line")
}

// ImportExcel imports catalog items from the first sheet of an .xlsx file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row")
}

// Import dispatches on the file extension.
func Import(path string) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path)
	}
	return ImportCSV(path)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string) ImportResult {
	result := ImportResult{}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.Kind == -1 {
			missing = append(missing, "Kind")
		}
		if mapping.Name == -1 {
			missing = append(missing, "Name")
		}
		if mapping.Price == -1 {
			missing = append(missing, "Price")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// Unrecognised header: price column is not numeric.
		if _, err := parseNumber(rows[0][positionalMapping.Price]); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		item, errMsg, warnings := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Items = append(result.Items, item)
	}

	return result
}

// MergeInto adds the imported items to cat, replacing items of the same kind
// and name. It returns the number of items added and replaced.
func MergeInto(cat *model.Catalog, items []model.CatalogItem) (added, replaced int) {
	for _, it := range items {
		list := cat.Items(it.Kind)
		found := false
		for i := range list {
			if list[i].Name == it.Name {
				it.ID = list[i].ID
				list[i] = it
				found = true
				break
			}
		}
		if found {
			replaced++
			continue
		}
		if cat.Add(it) {
			added++
		}
	}
	return added, replaced
}
