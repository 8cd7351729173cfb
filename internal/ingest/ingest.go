// Package ingest turns uploaded files into plain text for analysis.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/russross/blackfriday/v2"
)

// DefaultPreviewRunes is how much of a file Preview shows.
const DefaultPreviewRunes = 1000

// Format is an accepted input file type.
type Format string

const (
	Plain    Format = "txt"
	CSV      Format = "csv"
	Markdown Format = "md"
)

var (
	// ErrUnsupportedFormat is returned for file types other than txt, csv and md.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrInvalidEncoding is returned when the content is not UTF-8.
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text":
		return Plain, nil
	case ".csv":
		return CSV, nil
	case ".md", ".markdown":
		return Markdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadFile reads path and converts it to plain text according to its
// extension.
func ReadFile(path string) (string, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	return Read(f, format)
}

// Read converts r to plain text.
func Read(r io.Reader, format Format) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}

	switch format {
	case Plain:
		return string(data), nil
	case CSV:
		return csvToText(data)
	case Markdown:
		return MarkdownToText(data), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// csvToText joins the cells of each record with spaces, one record per line.
func csvToText(data []byte) (string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var b strings.Builder
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse csv: %w", err)
		}
		cells := make([]string, 0, len(record))
		for _, cell := range record {
			if cell = strings.TrimSpace(cell); cell != "" {
				cells = append(cells, cell)
			}
		}
		if len(cells) == 0 {
			continue
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

var urlPattern = regexp.MustCompile(`https?://\S+|www\.\S+`)

// MarkdownToText keeps the readable text of a markdown document. Link
// targets, images and code blocks are dropped, and bare URLs are removed.
func MarkdownToText(src []byte) string {
	md := blackfriday.New(blackfriday.WithExtensions(blackfriday.CommonExtensions))
	root := md.Parse(src)

	var b strings.Builder
	root.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		switch node.Type {
		case blackfriday.Text, blackfriday.Code:
			if entering {
				b.Write(node.Literal)
			}
		case blackfriday.Image, blackfriday.CodeBlock, blackfriday.HTMLBlock:
			return blackfriday.SkipChildren
		case blackfriday.Softbreak:
			b.WriteByte(' ')
		case blackfriday.Hardbreak:
			b.WriteByte('\n')
		case blackfriday.Paragraph, blackfriday.Heading, blackfriday.Item, blackfriday.TableCell:
			if !entering {
				b.WriteByte('\n')
			}
		}
		return blackfriday.GoToNext
	})

	text := urlPattern.ReplaceAllString(b.String(), "")
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// Preview returns the first n runes of text. A non-positive n uses
// DefaultPreviewRunes.
func Preview(text string, n int) string {
	if n <= 0 {
		n = DefaultPreviewRunes
	}
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n])
}
