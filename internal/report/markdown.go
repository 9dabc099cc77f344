package report

import (
	"fmt"
	"strings"

	"goscores/domain/dataset"
	"goscores/domain/stats"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Markdown renders a snapshot as a markdown summary
func Markdown(info dataset.Info, snap stats.Snapshot) string {
	var b strings.Builder

	b.WriteString("# Dashboard Educativo\n\n")
	fmt.Fprintf(&b, "Dataset %s: %d rows, fingerprint `%s`.\n\n", escapeText(info.Source), info.Rows, shortHash(info.Fingerprint.String()))

	b.WriteString("## Selection\n\n")
	fmt.Fprintf(&b, "- Test preparation: **%s**\n", escapeText(snap.Selection.Prep))
	fmt.Fprintf(&b, "- Gender: **%s**\n", escapeText(snap.Selection.Gender))
	fmt.Fprintf(&b, "- Group: **%s**\n", escapeText(string(snap.Selection.Group)))
	fmt.Fprintf(&b, "- Matching students: %d\n\n", snap.MatchedRows)

	b.WriteString("## Mean scores\n\n")
	b.WriteString("| Subject | Mean |\n|---|---|\n")
	for _, card := range KPICards(snap.Means) {
		fmt.Fprintf(&b, "| %s | %s |\n", card.Title, card.Text)
	}
	b.WriteString("\n")

	b.WriteString("## Groups (same gender and preparation)\n\n")
	b.WriteString("| Group | n | Math | Reading | Writing |\n|---|---|---|---|---|\n")
	for _, g := range snap.GroupMeans {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s |\n", escapeText(string(g.Group)), g.Count,
			FormatScore(g.Means.Math), FormatScore(g.Means.Reading), FormatScore(g.Means.Writing))
	}
	b.WriteString("\n")

	b.WriteString("## Parental education (same preparation)\n\n")
	if len(snap.EducationTrend) == 0 {
		b.WriteString("No students match this preparation status.\n\n")
	} else {
		b.WriteString("| Level | n | Math | Reading | Writing |\n|---|---|---|---|---|\n")
		for _, e := range snap.EducationTrend {
			fmt.Fprintf(&b, "| %s | %d | %s | %s | %s |\n", escapeText(e.Level), e.Count,
				FormatScore(e.Means.Math), FormatScore(e.Means.Reading), FormatScore(e.Means.Writing))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Score correlation (all students)\n\n")
	writeCorrelation(&b, snap.Correlation)

	return b.String()
}

func writeCorrelation(b *strings.Builder, m stats.CorrelationMatrix) {
	b.WriteString("| |")
	for _, s := range m.Subjects {
		fmt.Fprintf(b, " %s |", s)
	}
	b.WriteString("\n|---|")
	for range m.Subjects {
		b.WriteString("---|")
	}
	b.WriteString("\n")
	for i, row := range m.R {
		fmt.Fprintf(b, "| %s |", m.Subjects[i])
		for _, r := range row {
			fmt.Fprintf(b, " %s |", formatCorrelation(r))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "\nn = %d\n", m.N)
}

func formatCorrelation(r stats.Score) string {
	if !r.Valid() {
		return NoDataText
	}
	return fmt.Sprintf("%.2f", r.Float())
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`,
	"<", `\<`, ">", `\>`, "|", `\|`, "\n", " ", "\r", " ",
)

// escapeText makes a user or dataset supplied value render as literal text
func escapeText(s string) string {
	return markdownEscaper.Replace(s)
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

// HTML converts markdown to an HTML fragment. Raw inline HTML is dropped.
func HTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML | html.Safelink})
	return markdown.ToHTML([]byte(md), p, renderer)
}
