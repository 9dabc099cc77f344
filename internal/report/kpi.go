package report

import (
	"fmt"

	"goscores/domain/dataset"
	"goscores/domain/stats"
)

// NoDataText is shown in place of a mean when the selection matched nothing
const NoDataText = "no data"

// KPICard is one headline mean on the dashboard
type KPICard struct {
	Subject dataset.Subject `json:"subject"`
	Title   string          `json:"title"`
	Value   stats.Score     `json:"value"`
	Text    string          `json:"text"`
	Color   string          `json:"color"`
}

var kpiStyles = map[dataset.Subject]struct{ title, color string }{
	dataset.SubjectMath:    {"Matemáticas", "#1f77b4"},
	dataset.SubjectReading: {"Lectura", "#2ca02c"},
	dataset.SubjectWriting: {"Escritura", "#d62728"},
}

// FormatScore renders a score with one decimal, or NoDataText
func FormatScore(s stats.Score) string {
	if !s.Valid() {
		return NoDataText
	}
	return fmt.Sprintf("%.1f", s.Float())
}

// KPICards builds the three subject cards in axis order
func KPICards(means stats.MeanScores) []KPICard {
	cards := make([]KPICard, 0, len(dataset.Subjects))
	for _, subject := range dataset.Subjects {
		style := kpiStyles[subject]
		value := means.Get(subject)
		cards = append(cards, KPICard{
			Subject: subject,
			Title:   style.title,
			Value:   value,
			Text:    FormatScore(value),
			Color:   style.color,
		})
	}
	return cards
}
