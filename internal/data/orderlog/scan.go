package orderlog

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// SkipReason explains why a row produced no record.
type SkipReason string

const (
	ReasonBlankLine    SkipReason = "blank line"
	ReasonTooFewFields SkipReason = "too few fields"
)

// SkippedRow is a malformed row that was dropped.
type SkippedRow struct {
	Line   int
	Raw    string
	Reason SkipReason
}

// DefaultedField is a field whose raw value could not be parsed and was
// replaced by its default (now for timestamps, zero for numbers).
type DefaultedField struct {
	Line  int
	Field string
	Raw   string
}

// RowResult is the outcome of parsing one row: either a record, or a skip.
type RowResult[T any] struct {
	Record    T
	Skipped   *SkippedRow
	Defaulted []DefaultedField
}

// Ok reports whether the row produced a record.
func (r RowResult[T]) Ok() bool {
	return r.Skipped == nil
}

// Scan is the full outcome of reading one log file.
type Scan[T any] struct {
	Records   []T
	Skipped   []SkippedRow
	Defaulted []DefaultedField
}

// ScanStats summarises a Scan.
type ScanStats struct {
	Rows      int `json:"rows"`
	Parsed    int `json:"parsed"`
	Skipped   int `json:"skipped"`
	Defaulted int `json:"defaulted"`
}

// Stats counts the rows seen, parsed, skipped and fields defaulted.
func (s Scan[T]) Stats() ScanStats {
	return ScanStats{
		Rows:      len(s.Records) + len(s.Skipped),
		Parsed:    len(s.Records),
		Skipped:   len(s.Skipped),
		Defaulted: len(s.Defaulted),
	}
}

func skip[T any](line int, raw string, reason SkipReason) RowResult[T] {
	return RowResult[T]{Skipped: &SkippedRow{Line: line, Raw: raw, Reason: reason}}
}

// scanFile reads path line by line through parse. A missing file yields an
// empty Scan.
func scanFile[T any](path string, parse func(line int, raw string) RowResult[T]) (Scan[T], error) {
	var result Scan[T]

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, nil
		}
		return result, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		row := parse(lineNo, scanner.Text())
		result.Defaulted = append(result.Defaulted, row.Defaulted...)
		if !row.Ok() {
			result.Skipped = append(result.Skipped, *row.Skipped)
			continue
		}
		result.Records = append(result.Records, row.Record)
	}

	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("read %s: %w", path, err)
	}
	return result, nil
}
