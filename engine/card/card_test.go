package card

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwire/taskwire/engine/task"
)

func backendTask() *task.Task {
	return &task.Task{
		Title:              "Backend: Ödeme API İncelenecek",
		Summary:            "S",
		Problem:            "P",
		EstimatedDuration:  "2 Saat",
		Domain:             "backend",
		DomainLabel:        "Backend",
		AnalysisSteps:      []task.SolutionStep{{Title: "Sorgulama", Detail: "Kayıtlar incelenir."}},
		AcceptanceCriteria: []string{"Rapor paylaşılmıştır."},
	}
}

func TestBuild_Structure(t *testing.T) {
	t.Run("Should render the full card document for an assigned task", func(t *testing.T) {
		tk := backendTask()
		tk.Owner = "Ali"
		tk.Participants = []string{"Veli", "Can"}
		payload, err := json.Marshal(Build(tk, nil))
		require.NoError(t, err)
		expected := `{
			"cards": [{
				"header": {"title": "Backend: Ödeme API İncelenecek"},
				"sections": [
					{"widgets": [
						{"keyValue": {"topLabel": "Alan", "content": "Backend"}},
						{"keyValue": {"topLabel": "Tahmini Süre", "content": "2 Saat"}},
						{"keyValue": {"topLabel": "Atanan", "content": "Ali"}},
						{"keyValue": {"topLabel": "Katılımcılar", "content": "Veli, Can"}}
					]},
					{"header": "Görev Açıklaması", "widgets": [
						{"textParagraph": {"text": "<b>Özet:</b> S<br><br><b>Problem:</b> P"}}
					]},
					{"header": "Muhtemel Çözüm", "widgets": [
						{"textParagraph": {"text": "• <b>Sorgulama:</b> Kayıtlar incelenir."}}
					]},
					{"header": "Kabul Kriterleri", "widgets": [
						{"textParagraph": {"text": "• Rapor paylaşılmıştır."}}
					]}
				]
			}]
		}`
		assert.JSONEq(t, expected, string(payload))
	})
	t.Run("Should omit owner and participant rows when absent", func(t *testing.T) {
		payload := Build(backendTask(), nil)
		require.Len(t, payload.Cards, 1)
		meta := payload.Cards[0].Sections[0]
		assert.Empty(t, meta.Header)
		require.Len(t, meta.Widgets, 2)
		assert.Equal(t, "Alan", meta.Widgets[0].KeyValue.TopLabel)
		assert.Equal(t, "Tahmini Süre", meta.Widgets[1].KeyValue.TopLabel)
	})
	t.Run("Should join multiple flat steps with line breaks", func(t *testing.T) {
		tk := backendTask()
		tk.AnalysisSteps = append(tk.AnalysisSteps, task.SolutionStep{Title: "Raporlama", Detail: "Bulgular yazılır."})
		payload := Build(tk, nil)
		text := payload.Cards[0].Sections[2].Widgets[0].TextParagraph.Text
		assert.Equal(t, "• <b>Sorgulama:</b> Kayıtlar incelenir.<br>• <b>Raporlama:</b> Bulgular yazılır.", text)
	})
}

func TestBuild_Escaping(t *testing.T) {
	t.Run("Should escape markup in every user-controlled field", func(t *testing.T) {
		tk := backendTask()
		tk.Title = `<script>alert("x")</script>`
		tk.Owner = "Ali & Veli"
		tk.Summary = "a < b"
		tk.AnalysisSteps = []task.SolutionStep{{Title: "T<i>", Detail: `D "q"`}}
		tk.AcceptanceCriteria = []string{"c & d"}
		payload := Build(tk, nil)
		card := payload.Cards[0]
		assert.Equal(t, "&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;", card.Header.Title)
		assert.Equal(t, "Ali &amp; Veli", card.Sections[0].Widgets[2].KeyValue.Content)
		assert.Contains(t, card.Sections[1].Widgets[0].TextParagraph.Text, "a &lt; b")
		assert.Equal(
			t,
			"• <b>T&lt;i&gt;:</b> D &#34;q&#34;",
			card.Sections[2].Widgets[0].TextParagraph.Text,
		)
		assert.Equal(t, "• c &amp; d", card.Sections[3].Widgets[0].TextParagraph.Text)
	})
}

func TestBuild_RichDescription(t *testing.T) {
	desc := &task.Description{
		Summary: "Zengin özet",
		Problem: "Zengin problem",
		SolutionSteps: []task.StepSection{
			{Title: "Analiz", Items: []string{"Loglar çekilir.", "Tablolar karşılaştırılır."}},
			{Title: "Düzeltme", Items: []string{"Script hazırlanır."}},
		},
		Advantages: []string{"Kalıcı çözüm sağlar."},
	}
	t.Run("Should use the description for the summary block", func(t *testing.T) {
		payload := Build(backendTask(), desc)
		text := payload.Cards[0].Sections[1].Widgets[0].TextParagraph.Text
		assert.Equal(t, "<b>Özet:</b> Zengin özet<br><br><b>Problem:</b> Zengin problem", text)
	})
	t.Run("Should render numbered sections with nested bullets", func(t *testing.T) {
		payload := Build(backendTask(), desc)
		text := payload.Cards[0].Sections[2].Widgets[0].TextParagraph.Text
		assert.Equal(
			t,
			"<b>1. Analiz</b><br>&nbsp;&nbsp;• Loglar çekilir.<br>&nbsp;&nbsp;• Tablolar karşılaştırılır.<br>"+
				"<b>2. Düzeltme</b><br>&nbsp;&nbsp;• Script hazırlanır.",
			text,
		)
	})
	t.Run("Should add the advantages section before the criteria", func(t *testing.T) {
		payload := Build(backendTask(), desc)
		sections := payload.Cards[0].Sections
		require.Len(t, sections, 5)
		assert.Equal(t, "Çözümün Avantajları", sections[3].Header)
		assert.Equal(t, "✓ Kalıcı çözüm sağlar.", sections[3].Widgets[0].TextParagraph.Text)
		assert.Equal(t, "Kabul Kriterleri", sections[4].Header)
	})
	t.Run("Should keep the flat layout when the description has no steps", func(t *testing.T) {
		bare := &task.Description{Summary: "Özet", Problem: "Problem"}
		payload := Build(backendTask(), bare)
		text := payload.Cards[0].Sections[2].Widgets[0].TextParagraph.Text
		assert.Equal(t, "• <b>Sorgulama:</b> Kayıtlar incelenir.", text)
		assert.Len(t, payload.Cards[0].Sections, 4)
	})
}

func TestBuild_Deterministic(t *testing.T) {
	t.Run("Should produce byte-identical JSON for identical tasks", func(t *testing.T) {
		first, err := json.Marshal(Build(backendTask(), nil))
		require.NoError(t, err)
		second, err := json.Marshal(Build(backendTask(), nil))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestMarkdown(t *testing.T) {
	t.Run("Should follow the scrum template for rich descriptions", func(t *testing.T) {
		desc := &task.Description{
			Summary:       "Özet metni",
			Problem:       "Problem metni",
			SolutionSteps: []task.StepSection{{Title: "Analiz", Items: []string{"Loglar çekilir."}}},
			Advantages:    []string{"Kalıcı çözüm sağlar."},
		}
		out := Markdown(backendTask(), desc)
		expected := "# Backend: Ödeme API İncelenecek\n" +
			"\n" +
			"**Özet:** Özet metni\n" +
			"\n" +
			"**Problem:** Problem metni\n" +
			"\n" +
			"**Muhtemel Çözüm:**\n" +
			"1. **Analiz:**\n" +
			"   - Loglar çekilir.\n" +
			"\n" +
			"**Çözümün Avantajları:**\n" +
			"- Kalıcı çözüm sağlar."
		assert.Equal(t, expected, out)
	})
	t.Run("Should render flat checklists with the detail as a sub-item", func(t *testing.T) {
		out := Markdown(backendTask(), nil)
		expected := "# Backend: Ödeme API İncelenecek\n" +
			"\n" +
			"**Özet:** S\n" +
			"\n" +
			"**Problem:** P\n" +
			"\n" +
			"**Muhtemel Çözüm:**\n" +
			"1. **Sorgulama:**\n" +
			"   - Kayıtlar incelenir."
		assert.Equal(t, expected, out)
	})
}
