// Package source loads the raw text a presentation is generated from.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

const previewLimit = 500

// Source is a loaded input text ready to feed the pipeline.
type Source struct {
	Content  string
	Preview  string
	Metadata Metadata
}

// Metadata describes where the text came from.
type Metadata struct {
	Title         string    `json:"title"`
	SourcePath    string    `json:"source_path"`
	SourceFormat  string    `json:"source_format"`
	FileSizeBytes int64     `json:"file_size_bytes"`
	WordCount     int       `json:"word_count"`
	LoadedAt      time.Time `json:"loaded_at"`
}

// FileSizeHuman returns human-readable file size
func (m Metadata) FileSizeHuman() string {
	bytes := m.FileSizeBytes
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	}
	return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
}

// Load reads a plain-text or markdown file from disk.
func Load(path string) (*Source, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absPath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("not a file: %s", path)
	}

	raw, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	content := string(raw)
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("file is empty: %s", path)
	}

	return FromText(content, Metadata{
		SourcePath:    absPath,
		SourceFormat:  format(absPath),
		FileSizeBytes: info.Size(),
	}), nil
}

// FromText wraps already-held text, e.g. pasted into the editor. Missing
// metadata fields are filled from the content itself.
func FromText(content string, meta Metadata) *Source {
	meta.WordCount = len(strings.Fields(content))
	meta.LoadedAt = time.Now()
	if meta.Title == "" {
		meta.Title = guessTitle(content, meta.SourcePath)
	}
	return &Source{
		Content:  content,
		Preview:  preview(content),
		Metadata: meta,
	}
}

func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return "markdown"
	default:
		return "text"
	}
}

// guessTitle takes the first markdown heading, else the first non-blank
// line, else the file name.
func guessTitle(content, path string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if heading := strings.TrimLeft(line, "# "); strings.HasPrefix(line, "#") {
			return heading
		}
		if runes := []rune(line); len(runes) > 60 {
			line = string(runes[:60])
		}
		return line
	}
	if path != "" {
		name := filepath.Base(path)
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return "Untitled"
}

func preview(content string) string {
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) <= previewLimit {
		return content
	}
	runes := []rune(content)
	return string(runes[:previewLimit]) + "..."
}
