// Package card renders resolved tasks into Google Chat card payloads. The
// rendered document depends only on its inputs, so identical tasks always
// produce byte-identical JSON.
package card

import (
	"fmt"
	"html"
	"strings"

	"github.com/taskwire/taskwire/engine/task"
)

// Payload is the webhook document wrapping the rendered cards.
type Payload struct {
	Cards []Card `json:"cards"`
}

// Card is a single chat card with a header and ordered sections.
type Card struct {
	Header   Header    `json:"header"`
	Sections []Section `json:"sections"`
}

// Header carries the card title.
type Header struct {
	Title string `json:"title"`
}

// Section groups widgets under an optional heading.
type Section struct {
	Header  string   `json:"header,omitempty"`
	Widgets []Widget `json:"widgets"`
}

// Widget is a single card element. Exactly one field is set.
type Widget struct {
	KeyValue      *KeyValue      `json:"keyValue,omitempty"`
	TextParagraph *TextParagraph `json:"textParagraph,omitempty"`
}

// KeyValue is a labeled value row.
type KeyValue struct {
	TopLabel string `json:"topLabel"`
	Content  string `json:"content"`
}

// TextParagraph is a block of text formatted with the HTML subset the chat
// surface understands.
type TextParagraph struct {
	Text string `json:"text"`
}

// Build renders a resolved task into the card document posted to the
// webhook. An optional description switches the summary block and the
// solution section to their long-form layouts and adds the advantages
// section. All user-controlled text is HTML-escaped.
func Build(t *task.Task, desc *task.Description) *Payload {
	meta := []Widget{
		{KeyValue: &KeyValue{TopLabel: "Alan", Content: esc(t.DomainLabel)}},
		{KeyValue: &KeyValue{TopLabel: "Tahmini Süre", Content: esc(t.EstimatedDuration)}},
	}
	if t.Owner != "" {
		meta = append(meta, Widget{KeyValue: &KeyValue{TopLabel: "Atanan", Content: esc(t.Owner)}})
	}
	if len(t.Participants) > 0 {
		meta = append(meta, Widget{
			KeyValue: &KeyValue{TopLabel: "Katılımcılar", Content: esc(strings.Join(t.Participants, ", "))},
		})
	}

	summary, problem := t.Summary, t.Problem
	if desc != nil {
		summary, problem = desc.Summary, desc.Problem
	}

	sections := []Section{
		{Widgets: meta},
		{Header: "Görev Açıklaması", Widgets: paragraph(summaryBlockHTML(summary, problem))},
		{Header: "Muhtemel Çözüm", Widgets: paragraph(resolveSolution(t, desc).html())},
	}
	if desc != nil && len(desc.Advantages) > 0 {
		sections = append(sections, Section{
			Header:  "Çözümün Avantajları",
			Widgets: paragraph(advantagesHTML(desc.Advantages)),
		})
	}
	sections = append(sections, Section{
		Header:  "Kabul Kriterleri",
		Widgets: paragraph(criteriaHTML(t.AcceptanceCriteria)),
	})

	return &Payload{Cards: []Card{{Header: Header{Title: esc(t.Title)}, Sections: sections}}}
}

// solution holds exactly one of the two supported checklist layouts, chosen
// once before rendering.
type solution struct {
	flat []task.SolutionStep
	rich []task.StepSection
}

func resolveSolution(t *task.Task, desc *task.Description) solution {
	if desc != nil && len(desc.SolutionSteps) > 0 {
		return solution{rich: desc.SolutionSteps}
	}
	return solution{flat: t.AnalysisSteps}
}

func (s solution) html() string {
	if len(s.rich) > 0 {
		return richStepsHTML(s.rich)
	}
	return flatStepsHTML(s.flat)
}

func paragraph(text string) []Widget {
	return []Widget{{TextParagraph: &TextParagraph{Text: text}}}
}

func summaryBlockHTML(summary, problem string) string {
	return fmt.Sprintf("<b>Özet:</b> %s<br><br><b>Problem:</b> %s", esc(summary), esc(problem))
}

func flatStepsHTML(steps []task.SolutionStep) string {
	lines := make([]string, 0, len(steps))
	for _, step := range steps {
		lines = append(lines, fmt.Sprintf("• <b>%s:</b> %s", esc(step.Title), esc(step.Detail)))
	}
	return strings.Join(lines, "<br>")
}

func richStepsHTML(sections []task.StepSection) string {
	var lines []string
	for i, section := range sections {
		lines = append(lines, fmt.Sprintf("<b>%d. %s</b>", i+1, esc(section.Title)))
		for _, item := range section.Items {
			lines = append(lines, "&nbsp;&nbsp;• "+esc(item))
		}
	}
	return strings.Join(lines, "<br>")
}

func advantagesHTML(advantages []string) string {
	lines := make([]string, 0, len(advantages))
	for _, adv := range advantages {
		lines = append(lines, "✓ "+esc(adv))
	}
	return strings.Join(lines, "<br>")
}

func criteriaHTML(criteria []string) string {
	lines := make([]string, 0, len(criteria))
	for _, item := range criteria {
		lines = append(lines, "• "+esc(item))
	}
	return strings.Join(lines, "<br>")
}

func esc(s string) string {
	return html.EscapeString(s)
}
