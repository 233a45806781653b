package model

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// UnknownCategoryError reports a name the encoder was not trained on.
type UnknownCategoryError struct{ Name string }

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("%q is not in the trained vocabulary", e.Name)
}

// UnknownCodeError reports a code outside the encoder's vocabulary.
type UnknownCodeError struct {
	Code int
	Size int
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("code %d out of range [0,%d)", e.Code, e.Size)
}

// LabelEncoder maps a fixed vocabulary to integer codes by position.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

// NewLabelEncoder builds an encoder whose codes are the positions in classes.
// Classes are trimmed and must be non-empty and unique.
func NewLabelEncoder(classes []string) (*LabelEncoder, error) {
	if len(classes) == 0 {
		return nil, errors.New("encoder has no classes")
	}
	e := &LabelEncoder{classes: make([]string, len(classes)), index: make(map[string]int, len(classes))}
	for i, c := range classes {
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, fmt.Errorf("empty class at position %d", i)
		}
		if _, dup := e.index[c]; dup {
			return nil, fmt.Errorf("duplicate class %q", c)
		}
		e.classes[i] = c
		e.index[c] = i
	}
	return e, nil
}

// Encode returns the code of name, or an *UnknownCategoryError.
func (e *LabelEncoder) Encode(name string) (int, error) {
	code, ok := e.index[name]
	if !ok {
		return 0, &UnknownCategoryError{Name: name}
	}
	return code, nil
}

// Decode returns the class at code, or an *UnknownCodeError.
func (e *LabelEncoder) Decode(code int) (string, error) {
	if code < 0 || code >= len(e.classes) {
		return "", &UnknownCodeError{Code: code, Size: len(e.classes)}
	}
	return e.classes[code], nil
}

// Len is the vocabulary size.
func (e *LabelEncoder) Len() int { return len(e.classes) }

// Classes returns a copy of the vocabulary in code order.
func (e *LabelEncoder) Classes() []string {
	return append([]string(nil), e.classes...)
}

// LoadLabelEncoder reads a vocabulary from a .csv or .xlsx file, one class
// per row in code order. A leading header row is skipped.
func LoadLabelEncoder(path string) (*LabelEncoder, error) {
	var (
		rows []string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSXColumn(path)
	default:
		rows, err = readCSVColumn(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load encoder %s: %w", filepath.Base(path), err)
	}
	if len(rows) > 0 && isHeader(rows[0]) {
		rows = rows[1:]
	}
	enc, err := NewLabelEncoder(rows)
	if err != nil {
		return nil, fmt.Errorf("load encoder %s: %w", filepath.Base(path), err)
	}
	return enc, nil
}

func readCSVColumn(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	var out []string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		out = append(out, strings.TrimSpace(strings.TrimPrefix(rec[0], "\uFEFF")))
	}
	return out, nil
}

func readXLSXColumn(path string) ([]string, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := x.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	var out []string
	for _, r := range rows {
		if len(r) == 0 || strings.TrimSpace(r[0]) == "" {
			continue
		}
		out = append(out, strings.TrimSpace(r[0]))
	}
	return out, nil
}

func isHeader(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "class", "classes", "label", "crop", "previous_crop":
		return true
	}
	return false
}
