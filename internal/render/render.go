// Package render formats analysis reports for the terminal and as JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tsawler/textmood"
)

var (
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	neutralStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Bold(true)
	headingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#DD8E6B")).Bold(true)
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

// Options controls text output.
type Options struct {
	Color bool

	// SentenceWidth truncates sentences in the table. Zero keeps them whole.
	SentenceWidth int

	// Preview is printed before the results when not empty.
	Preview string
}

// Text writes a human readable report.
func Text(w io.Writer, report *textmood.AnalysisReport, opts Options) error {
	var b strings.Builder
	style := func(s lipgloss.Style, v string) string {
		if !opts.Color {
			return v
		}
		return s.Render(v)
	}

	if opts.Preview != "" {
		b.WriteString(style(headingStyle, "Preview") + "\n")
		b.WriteString(opts.Preview + "\n\n")
	}

	if report.Language != textmood.Unknown {
		fmt.Fprintf(&b, "Language:     %s\n", report.Language)
	}
	fmt.Fprintf(&b, "Sentiment:    %s (%.2f), gauge %s\n",
		style(polarityStyle(report.Class.Polarity), string(report.Class.Polarity)),
		report.Score.Polarity,
		formatPercent(report.Score.Gauge()))
	fmt.Fprintf(&b, "Subjectivity: %s (%.2f)\n",
		style(headingStyle, string(report.Class.Subjectivity)),
		report.Score.Subjectivity)

	b.WriteString("\n" + style(headingStyle, "Top words") + "\n")
	if len(report.Words) == 0 {
		b.WriteString("(none)\n")
	} else {
		for _, line := range wordTable(report.Words) {
			b.WriteString(line + "\n")
		}
	}

	if len(report.Sentences) > 0 {
		b.WriteString("\n" + style(headingStyle, "Sentences") + "\n")
		for _, line := range sentenceTable(report.Sentences, opts.SentenceWidth) {
			b.WriteString(line + "\n")
		}
	}

	if report.TranslatedText != "" {
		b.WriteString("\n" + style(headingStyle, "Translated text") + "\n")
		b.WriteString(report.TranslatedText + "\n")
	}

	if len(report.Warnings) > 0 {
		b.WriteString("\n" + style(warningStyle, "Warnings") + "\n")
		for _, warning := range report.Warnings {
			b.WriteString("- " + warning + "\n")
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// JSON writes the report as indented JSON.
func JSON(w io.Writer, report *textmood.AnalysisReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Words writes only a word table, used when scoring failed.
func Words(w io.Writer, words []textmood.WordFrequency) error {
	lines := wordTable(words)
	if _, err := io.WriteString(w, strings.Join(lines, "\n")+"\n"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func wordTable(words []textmood.WordFrequency) []string {
	rows := make([][]string, 0, len(words))
	for _, wf := range words {
		rows = append(rows, []string{wf.Word, strconv.Itoa(wf.Count)})
	}
	return formatTable([]string{"Word", "Count"}, rows, map[int]bool{1: true})
}

func sentenceTable(sents []textmood.SentenceResult, width int) []string {
	rows := make([][]string, 0, len(sents))
	for i, s := range sents {
		text := s.Text
		if width > 0 {
			text = truncate(text, width)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%.2f", s.Score.Polarity),
			fmt.Sprintf("%.2f", s.Score.Subjectivity),
			string(s.Class.Polarity),
			text,
		})
	}
	headers := []string{"#", "Polarity", "Subjectivity", "Class", "Sentence"}
	return formatTable(headers, rows, map[int]bool{0: true, 1: true, 2: true})
}

func polarityStyle(c textmood.PolarityClass) lipgloss.Style {
	switch c {
	case textmood.Positive:
		return positiveStyle
	case textmood.Negative:
		return negativeStyle
	default:
		return neutralStyle
	}
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}
