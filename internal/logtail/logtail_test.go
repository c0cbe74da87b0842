package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v, want nil, nil", got, err)
	}
}

func TestParseLine(t *testing.T) {
	line := `{"time":"2025-10-08T21:01:05.123Z","level":"WARN","msg":"operation failed","op":"like","error":"boom","status":500}`
	e := ParseLine(line)
	if e.Level != "WARN" || e.Message != "operation failed" || e.Op != "like" {
		t.Fatalf("ParseLine = %+v", e)
	}
	if e.Time.IsZero() || e.Time.Hour() != 21 {
		t.Fatalf("Time = %v, want 21:01:05", e.Time)
	}
	want := []Attr{{Key: "error", Value: "boom"}, {Key: "status", Value: "500"}}
	if !reflect.DeepEqual(e.Attrs, want) {
		t.Fatalf("Attrs = %v, want %v", e.Attrs, want)
	}

	plain := ParseLine("not json")
	if plain.Message != "not json" || plain.Level != "" {
		t.Fatalf("plain line = %+v", plain)
	}
}

func TestReadEntriesSkipsBlankLines(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "quill.log")
	body := `{"level":"INFO","msg":"a"}` + "\n\n" + `{"level":"DEBUG","msg":"b"}` + "\n"
	if err := os.WriteFile(logPath, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	entries, err := ReadEntries(logPath, 0)
	if err != nil {
		t.Fatalf("ReadEntries error = %v", err)
	}
	if len(entries) != 2 || entries[1].Message != "b" || entries[1].Level != "DEBUG" {
		t.Fatalf("entries = %+v", entries)
	}
}
