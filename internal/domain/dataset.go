package domain

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadDataset reads a predicted-weather file into a Dataset. Any malformed
// line aborts the load with an error naming the line; the caller must treat
// that as fatal rather than serve a partial timeline. Blank lines are
// skipped.
func LoadDataset(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	var events Dataset
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		event, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("dataset line %d (%q): %w", lineNo, line, err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return events, nil
}

// ParseLine parses one dataset line: "<kind> <timestamp> <HH:MM> <rerolls>".
// The trailing rerolls field is required but unused.
func ParseLine(line string) (WeatherEvent, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return WeatherEvent{}, fmt.Errorf("expected 4 fields, got %d", len(fields))
	}

	kind, err := ParseKind(fields[0])
	if err != nil {
		return WeatherEvent{}, err
	}

	start, err := time.Parse(time.RFC3339, fields[1])
	if err != nil {
		return WeatherEvent{}, fmt.Errorf("parse timestamp: %w", err)
	}

	duration, err := parseHHMM(fields[2])
	if err != nil {
		return WeatherEvent{}, err
	}

	return WeatherEvent{Kind: kind, Start: start, Duration: duration}, nil
}

// parseHHMM converts an "HH:MM" duration column into a time.Duration.
func parseHHMM(s string) (time.Duration, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("parse duration %q: expected HH:MM", s)
	}
	hours, errH := strconv.Atoi(hh)
	mins, errM := strconv.Atoi(mm)
	if errH != nil || errM != nil || hours < 0 || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("parse duration %q: expected HH:MM", s)
	}
	return time.Duration(hours)*time.Hour + time.Duration(mins)*time.Minute, nil
}
