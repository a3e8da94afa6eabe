// Package feed decodes case batches delivered by the scheduling system.
package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/JustJay7/court-scheduler/internal/database"
	"gopkg.in/yaml.v3"
)

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// Entry is one case as it appears in a feed batch.
type Entry struct {
	JudgeID         int    `json:"judgeId" yaml:"judgeId"`
	AppearanceID    string `json:"appearanceId" yaml:"appearanceId"`
	AppearanceDate  string `json:"appearanceDate" yaml:"appearanceDate"`
	CourtClass      string `json:"courtClass" yaml:"courtClass"`
	CourtFileNumber string `json:"courtFileNumber" yaml:"courtFileNumber"`
	FileNumber      string `json:"fileNumber" yaml:"fileNumber"`
	StyleOfCause    string `json:"styleOfCause" yaml:"styleOfCause"`
	Reason          string `json:"reason" yaml:"reason"`
	PartID          string `json:"partId" yaml:"partId"`
	RestrictionCode string `json:"restrictionCode" yaml:"restrictionCode"`
}

type batch struct {
	Cases []Entry `json:"cases" yaml:"cases"`
}

// FormatForContentType picks the decoder for an HTTP content type.
func FormatForContentType(contentType string) Format {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "yaml") || strings.Contains(ct, "yml") {
		return FormatYAML
	}
	return FormatJSON
}

// FormatForPath picks the decoder for a file name.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode reads a batch, either {"cases": [...]} or a bare list, and
// converts it to case records.
func Decode(r io.Reader, format Format) ([]database.CaseRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}

	entries, err := decodeEntries(data, format)
	if err != nil {
		return nil, err
	}

	records := make([]database.CaseRecord, 0, len(entries))
	for i, e := range entries {
		rec, err := e.Record()
		if err != nil {
			return nil, fmt.Errorf("case %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeEntries(data []byte, format Format) ([]Entry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var b batch
	var list []Entry
	switch format {
	case FormatYAML:
		var probe yaml.Node
		if err := yaml.Unmarshal(trimmed, &probe); err != nil {
			return nil, fmt.Errorf("invalid YAML feed: %w", err)
		}
		if len(probe.Content) > 0 && probe.Content[0].Kind == yaml.SequenceNode {
			if err := probe.Decode(&list); err != nil {
				return nil, fmt.Errorf("invalid YAML feed: %w", err)
			}
			return list, nil
		}
		if err := probe.Decode(&b); err != nil {
			return nil, fmt.Errorf("invalid YAML feed: %w", err)
		}
	default:
		if trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &list); err != nil {
				return nil, fmt.Errorf("invalid JSON feed: %w", err)
			}
			return list, nil
		}
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return nil, fmt.Errorf("invalid JSON feed: %w", err)
		}
	}
	return b.Cases, nil
}

// Record validates the entry and converts it.
func (e Entry) Record() (database.CaseRecord, error) {
	if e.JudgeID <= 0 {
		return database.CaseRecord{}, fmt.Errorf("judge id must be positive")
	}
	if strings.TrimSpace(e.AppearanceID) == "" {
		return database.CaseRecord{}, fmt.Errorf("appearance id is required")
	}

	var date time.Time
	if e.AppearanceDate != "" {
		var err error
		date, err = ParseDate(e.AppearanceDate)
		if err != nil {
			return database.CaseRecord{}, err
		}
	}

	return database.CaseRecord{
		JudgeID:         e.JudgeID,
		AppearanceID:    strings.TrimSpace(e.AppearanceID),
		AppearanceDate:  date,
		CourtClass:      e.CourtClass,
		CourtFileNumber: e.CourtFileNumber,
		FileNumber:      e.FileNumber,
		StyleOfCause:    e.StyleOfCause,
		Reason:          e.Reason,
		PartID:          e.PartID,
		RestrictionCode: e.RestrictionCode,
	}, nil
}

// ParseDate accepts RFC 3339 timestamps and bare dates.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid appearance date %q", s)
	}
	return t, nil
}
