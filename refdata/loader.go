/*
loader.go - JSON data-file loading

PURPOSE:
  Decodes the reference JSON files the spec scraper produces into typed
  tables:

    payscale.json       {"07": {"S": 1000.00, "1": 1050.00}, ...}
    titles.json         [{"title": ..., "code": "0101", "grade": "07",
                          "qual_text": ...}, ...]
    relationships.json  [{"child": ..., "parent": ...}, ...]

  payscale.json is required; the other two are optional so a
  salary-only deployment ships a single file.

VALIDATION:
  This is the only place the shape of the data is checked: step labels
  must be "S" or a positive integer, amounts must parse and be
  non-negative. Title records referencing a grade absent from the pay
  table are kept: titles routinely outpace published pay tables, and
  the engine already treats a missing grade as "no data".
*/
package refdata

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/seagullcanfly/civilbuddy/payscale"
	"github.com/seagullcanfly/civilbuddy/titles"
)

// Data file names within a data directory.
const (
	PayScaleFile      = "payscale.json"
	TitlesFile        = "titles.json"
	RelationshipsFile = "relationships.json"
)

type titleRecordJSON struct {
	Title          string `json:"title"`
	Code           string `json:"code"`
	Grade          string `json:"grade"`
	Qualifications string `json:"qual_text"`
}

type relationshipJSON struct {
	Child  string `json:"child"`
	Parent string `json:"parent"`
}

// Load reads the reference data files from dir and returns a validated
// in-memory store.
func Load(dir string) (*Memory, error) {
	table, err := loadPayTable(filepath.Join(dir, PayScaleFile))
	if err != nil {
		return nil, err
	}

	records, err := loadTitles(filepath.Join(dir, TitlesFile))
	if err != nil {
		return nil, err
	}

	links, err := loadRelationships(filepath.Join(dir, RelationshipsFile))
	if err != nil {
		return nil, err
	}

	return NewMemory(table, records, links), nil
}

func loadPayTable(path string) (*payscale.PayTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pay table: %w", err)
	}

	var raw map[string]map[string]json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	rates := make(map[payscale.GradeID]map[payscale.StepID]decimal.Decimal, len(raw))
	for grade, steps := range raw {
		grade = strings.TrimSpace(grade)
		if grade == "" {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), payscale.ErrInvalidGrade)
		}
		parsed := make(map[payscale.StepID]decimal.Decimal, len(steps))
		for label, amount := range steps {
			step := payscale.StepID(strings.TrimSpace(label))
			if !step.Valid() {
				return nil, fmt.Errorf("grade %s: %w", grade, &payscale.InvalidStepError{Step: step})
			}
			pay, err := decimal.NewFromString(amount.String())
			if err != nil {
				return nil, fmt.Errorf("grade %s step %s: bad amount %q: %w", grade, step, amount.String(), err)
			}
			if pay.IsNegative() {
				return nil, fmt.Errorf("grade %s step %s: negative amount %s", grade, step, pay)
			}
			parsed[step] = pay
		}
		rates[payscale.GradeID(grade)] = parsed
	}

	return payscale.NewPayTable(rates), nil
}

func loadTitles(path string) ([]titles.Record, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read titles: %w", err)
	}

	var raw []titleRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	records := make([]titles.Record, 0, len(raw))
	for i, r := range raw {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			return nil, fmt.Errorf("%s: record %d has no title", filepath.Base(path), i)
		}
		code := 0
		if c := strings.TrimSpace(r.Code); c != "" {
			code, err = strconv.Atoi(c)
			if err != nil || code < 0 {
				return nil, fmt.Errorf("%s: title %q has bad spec code %q", filepath.Base(path), title, r.Code)
			}
		}
		records = append(records, titles.Record{
			Title:          title,
			Grade:          payscale.GradeID(strings.TrimSpace(r.Grade)),
			SpecCode:       code,
			Qualifications: r.Qualifications,
		})
	}
	return records, nil
}

func loadRelationships(path string) ([]titles.Relationship, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read relationships: %w", err)
	}

	var raw []relationshipJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	links := make([]titles.Relationship, 0, len(raw))
	for _, l := range raw {
		links = append(links, titles.Relationship{
			Child:  strings.TrimSpace(l.Child),
			Parent: strings.TrimSpace(l.Parent),
		})
	}
	return links, nil
}
