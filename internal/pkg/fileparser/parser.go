package fileparser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned before any parsing when the upload is
// neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("fileparser: unsupported file format (csv, xlsx only)")

// minTextLen is the noise threshold: cells of 3 characters or fewer after
// trimming are discarded. Counted in runes, not bytes, so multibyte text is
// measured the same as ASCII.
const minTextLen = 4

const reviewColumn = "review"

// ExtractReviews pulls review texts from an uploaded CSV or XLSX file.
//
// If a "review" column exists it wins: one review per non-blank cell. For
// survey-style data without that column, every qualifying text cell in a row
// is joined with " / " into a single review, keeping one review per row.
func ExtractReviews(filename string, content []byte) ([]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return extractFromRows(readCSV(content))
	case ".xlsx", ".xls":
		rows, err := readXLSX(content)
		if err != nil {
			return nil, err
		}
		return extractFromRows(rows, nil)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func readCSV(content []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1 // ragged rows are fine

	var rows [][]string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, record)
	}
}

func readXLSX(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	return f.GetRows(sheets[0])
}

func extractFromRows(rows [][]string, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	reviews := []string{}
	if len(rows) == 0 {
		return reviews, nil
	}

	header := rows[0]
	if col := findReviewColumn(header); col >= 0 {
		for _, row := range rows[1:] {
			if col >= len(row) {
				continue
			}
			if text := cleanCell(row[col]); utf8.RuneCountInString(text) >= minTextLen {
				reviews = append(reviews, text)
			}
		}
		return reviews, nil
	}

	// Survey-style data: one review per row, concatenating every text cell.
	for _, row := range rows[1:] {
		var texts []string
		for _, cell := range row {
			text := cleanCell(cell)
			if utf8.RuneCountInString(text) < minTextLen || isNumeric(text) {
				continue
			}
			texts = append(texts, text)
		}
		if len(texts) > 0 {
			reviews = append(reviews, strings.Join(texts, " / "))
		}
	}
	return reviews, nil
}

func findReviewColumn(header []string) int {
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), reviewColumn) {
			return i
		}
	}
	return -1
}

// cleanCell flattens in-cell newlines so a multi-line cell stays one review.
func cleanCell(cell string) string {
	return strings.TrimSpace(strings.ReplaceAll(cell, "\n", " "))
}

func isNumeric(text string) bool {
	_, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", ""), 64)
	return err == nil
}
