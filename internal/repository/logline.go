package repository

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/focustrack/internal/domain"
)

// SkipReason says why a log line could not be turned into a record.
type SkipReason string

const (
	SkipNone          SkipReason = ""
	SkipBlankLine     SkipReason = "blank_line"
	SkipFieldCount    SkipReason = "field_count"
	SkipEmptyCategory SkipReason = "empty_category"
	SkipBadStart      SkipReason = "bad_start"
	SkipBadEnd        SkipReason = "bad_end"
	SkipBadDuration   SkipReason = "bad_duration"
	SkipLineTooLong   SkipReason = "line_too_long"
)

const logFieldCount = 4

// maxLogLine bounds a single line. Longer lines are skipped and only their
// first skippedHead bytes are kept for reporting.
const (
	maxLogLine  = 1 << 20
	skippedHead = 64
)

// LineResult is either a parsed record (Reason == SkipNone) or a skip reason.
type LineResult struct {
	Record    domain.SessionRecord
	Reason    SkipReason
	Anomalous bool
}

// OK reports whether the line parsed into a record.
func (r LineResult) OK() bool {
	return r.Reason == SkipNone
}

// ParseLogLine decodes "category,startEpoch,endEpoch,durationMinutes".
// The category is kept verbatim; a category that itself contains a comma
// yields the wrong field count and the line is skipped.
func ParseLogLine(line string) LineResult {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" {
		return LineResult{Reason: SkipBlankLine}
	}

	fields := strings.Split(line, ",")
	if len(fields) != logFieldCount {
		return LineResult{Reason: SkipFieldCount}
	}
	category := fields[0]
	if category == "" {
		return LineResult{Reason: SkipEmptyCategory}
	}

	start, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
	if err != nil {
		return LineResult{Reason: SkipBadStart}
	}
	end, err := strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 64)
	if err != nil {
		return LineResult{Reason: SkipBadEnd}
	}
	dur, err := strconv.Atoi(strings.TrimSpace(fields[3]))
	if err != nil {
		return LineResult{Reason: SkipBadDuration}
	}

	anomalous := end < start || dur < 0
	if anomalous {
		dur = 0
	}
	return LineResult{
		Record: domain.SessionRecord{
			Category:        category,
			Start:           time.Unix(start, 0),
			End:             time.Unix(end, 0),
			DurationMinutes: dur,
		},
		Anomalous: anomalous,
	}
}

// FormatLogLine encodes rec as one log line without the trailing newline.
func FormatLogLine(rec domain.SessionRecord) string {
	return fmt.Sprintf("%s,%d,%d,%d", rec.Category, rec.Start.Unix(), rec.End.Unix(), rec.DurationMinutes)
}

// ValidateCategory rejects categories the line format cannot round-trip.
func ValidateCategory(category string) error {
	if category == "" {
		return fmt.Errorf("category is empty: %w", ErrInvalidCategory)
	}
	if strings.ContainsAny(category, ",\r\n") {
		return fmt.Errorf("category %q contains a comma or line break: %w", category, ErrInvalidCategory)
	}
	return nil
}

// ParseLog reads a whole log, keeping valid records in order and recording
// every malformed line instead of aborting.
func ParseLog(r io.Reader) (*ReadResult, error) {
	result := &ReadResult{}
	br := bufio.NewReader(r)

	lineNo := 0
	for {
		line, tooLong, err := readLogLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading session log: %w", err)
		}
		lineNo++

		text := string(line)
		if tooLong {
			result.Skipped = append(result.Skipped, SkippedLine{Line: lineNo, Reason: SkipLineTooLong, Text: text})
			continue
		}
		parsed := ParseLogLine(text)
		if !parsed.OK() {
			result.Skipped = append(result.Skipped, SkippedLine{Line: lineNo, Reason: parsed.Reason, Text: text})
			continue
		}
		if parsed.Anomalous {
			result.Anomalies++
		}
		result.Records = append(result.Records, parsed.Record)
	}
	return result, nil
}

// readLogLine returns the next line without its terminator. A line longer
// than maxLogLine is drained to its end and returned truncated to
// skippedHead bytes with tooLong set. io.EOF means no line was left.
func readLogLine(br *bufio.Reader) ([]byte, bool, error) {
	var line []byte
	tooLong, started := false, false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			// An unterminated last line can end right after a prefix chunk.
			if errors.Is(err, io.EOF) && started {
				return line, tooLong, nil
			}
			return nil, false, err
		}
		started = true
		if !tooLong {
			line = append(line, chunk...)
			if len(line) > maxLogLine {
				tooLong = true
				line = line[:skippedHead]
			}
		}
		if !isPrefix {
			return line, tooLong, nil
		}
	}
}
