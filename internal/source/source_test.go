package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMarkdown(t *testing.T) {
	path := writeFile(t, "notes.md", "# Launch Plan\n\nShip in Q3.\n")

	src, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if src.Metadata.Title != "Launch Plan" {
		t.Errorf("Title = %q, want Launch Plan", src.Metadata.Title)
	}
	if src.Metadata.SourceFormat != "markdown" {
		t.Errorf("SourceFormat = %q, want markdown", src.Metadata.SourceFormat)
	}
	if src.Metadata.WordCount != 6 {
		t.Errorf("WordCount = %d, want 6", src.Metadata.WordCount)
	}
	if src.Metadata.FileSizeBytes == 0 {
		t.Error("FileSizeBytes not set")
	}
}

func TestLoadPlainTextTitleFromFirstLine(t *testing.T) {
	path := writeFile(t, "notes.txt", "Quarterly results\nRevenue was up.\n")

	src, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if src.Metadata.Title != "Quarterly results" {
		t.Errorf("Title = %q", src.Metadata.Title)
	}
	if src.Metadata.SourceFormat != "text" {
		t.Errorf("SourceFormat = %q, want text", src.Metadata.SourceFormat)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.txt", "   \n\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestFromTextPreviewTruncation(t *testing.T) {
	long := strings.Repeat("word ", 200)
	src := FromText(long, Metadata{})
	if !strings.HasSuffix(src.Preview, "...") {
		t.Error("long content preview should be truncated")
	}
	if src.Metadata.WordCount != 200 {
		t.Errorf("WordCount = %d, want 200", src.Metadata.WordCount)
	}
}

func TestFromTextUntitled(t *testing.T) {
	src := FromText("\n\n  \nbody text here", Metadata{})
	if src.Metadata.Title != "body text here" {
		t.Errorf("Title = %q", src.Metadata.Title)
	}
	if FromText(" x ", Metadata{}).Metadata.Title == "" {
		t.Error("title should never be empty")
	}
}
