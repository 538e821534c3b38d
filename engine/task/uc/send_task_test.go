package uc

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwire/taskwire/engine/card"
	"github.com/taskwire/taskwire/engine/domain"
	"github.com/taskwire/taskwire/engine/task"
	"github.com/taskwire/taskwire/engine/webhook"
)

type stubDispatcher struct {
	calls   int
	domain  string
	payload *card.Payload
	result  webhook.Result
}

func (s *stubDispatcher) Dispatch(_ context.Context, domainKey string, payload *card.Payload) webhook.Result {
	s.calls++
	s.domain = domainKey
	s.payload = payload
	return s.result
}

func sendInput() *task.Input {
	return &task.Input{
		Title:             "Ödeme API İnceleme",
		Summary:           "S",
		Problem:           "P",
		EstimatedDuration: "2 Saat",
		Domain:            "backend",
	}
}

func TestSendTask_Execute(t *testing.T) {
	catalog := domain.New()
	t.Run("Should render and dispatch a valid submission", func(t *testing.T) {
		status := http.StatusOK
		dispatcher := &stubDispatcher{result: webhook.Result{
			Success:    true,
			Message:    "Message sent",
			HTTPStatus: &status,
		}}
		uc := NewSendTask(catalog, dispatcher, nil, task.Options{}, sendInput())
		result := uc.Execute(t.Context())

		assert.True(t, result.Success)
		assert.Equal(t, "Message sent", result.Message)
		assert.Equal(t, 1, dispatcher.calls)
		assert.Equal(t, "backend", dispatcher.domain)
		require.NotNil(t, dispatcher.payload)
		require.Len(t, dispatcher.payload.Cards, 1)
		assert.Equal(t, "Backend: Ödeme API İncelenecek", dispatcher.payload.Cards[0].Header.Title)
	})
	t.Run("Should return a structured failure for an invalid domain", func(t *testing.T) {
		dispatcher := &stubDispatcher{}
		in := sendInput()
		in.Domain = "videogames"
		uc := NewSendTask(catalog, dispatcher, nil, task.Options{}, in)
		result := uc.Execute(t.Context())

		assert.False(t, result.Success)
		assert.Equal(
			t,
			"Invalid input: Invalid domain 'videogames'. Must be one of: "+
				"backend, frontend, devops, mobile, data, business, general",
			result.Message,
		)
		assert.Nil(t, result.HTTPStatus)
		assert.Zero(t, dispatcher.calls)
	})
	t.Run("Should reject empty required fields before dispatch", func(t *testing.T) {
		dispatcher := &stubDispatcher{}
		in := sendInput()
		in.Title = "   "
		uc := NewSendTask(catalog, dispatcher, nil, task.Options{}, in)
		result := uc.Execute(t.Context())

		assert.False(t, result.Success)
		assert.Equal(t, "Invalid input: Field 'title' must not be empty", result.Message)
		assert.Zero(t, dispatcher.calls)
	})
	t.Run("Should render the rich layout when a description is attached", func(t *testing.T) {
		dispatcher := &stubDispatcher{result: webhook.Result{Success: true, Message: "Message sent"}}
		in := sendInput()
		in.Description = &task.Description{
			Summary:       "Zengin özet",
			Problem:       "Zengin problem",
			SolutionSteps: []task.StepSection{{Title: "Analiz", Items: []string{"Loglar çekilir."}}},
			Advantages:    []string{"Kalıcı çözüm sağlar."},
		}
		uc := NewSendTask(catalog, dispatcher, nil, task.Options{}, in)
		result := uc.Execute(t.Context())

		assert.True(t, result.Success)
		sections := dispatcher.payload.Cards[0].Sections
		require.Len(t, sections, 5)
		assert.Equal(t, "Çözümün Avantajları", sections[3].Header)
	})
	t.Run("Should fold flattened rich fields into the rendered card", func(t *testing.T) {
		dispatcher := &stubDispatcher{result: webhook.Result{Success: true, Message: "Message sent"}}
		in := sendInput()
		in.SolutionSections = []task.StepSection{{Title: "Analiz", Items: []string{"Loglar çekilir."}}}
		in.Advantages = []string{"Kalıcı çözüm sağlar."}
		uc := NewSendTask(catalog, dispatcher, nil, task.Options{}, in)
		result := uc.Execute(t.Context())

		assert.True(t, result.Success)
		sections := dispatcher.payload.Cards[0].Sections
		require.Len(t, sections, 5)
		assert.Equal(t, "<b>1. Analiz</b><br>&nbsp;&nbsp;• Loglar çekilir.",
			sections[2].Widgets[0].TextParagraph.Text)
		assert.Equal(t, "✓ Kalıcı çözüm sağlar.", sections[3].Widgets[0].TextParagraph.Text)
	})
	t.Run("Should pass normalization options through to the task", func(t *testing.T) {
		dispatcher := &stubDispatcher{result: webhook.Result{Success: true, Message: "Message sent"}}
		opts := task.Options{Project: "Destek", DefaultOwner: "gökhan"}
		uc := NewSendTask(catalog, dispatcher, nil, opts, sendInput())
		uc.Execute(t.Context())

		card := dispatcher.payload.Cards[0]
		assert.Equal(t, "Destek Backend: Ödeme API İncelenecek", card.Header.Title)
		assert.Equal(t, "Gökhan", card.Sections[0].Widgets[2].KeyValue.Content)
	})
}

func TestListDomains_Execute(t *testing.T) {
	t.Run("Should list all domains in canonical order", func(t *testing.T) {
		uc := NewListDomains(domain.New())
		summaries := uc.Execute(t.Context())
		require.Len(t, summaries, 7)
		keys := make([]string, 0, len(summaries))
		for _, s := range summaries {
			keys = append(keys, s.Key)
		}
		assert.Equal(t, []string{"backend", "frontend", "devops", "mobile", "data", "business", "general"}, keys)
		assert.Equal(t, "Backend", summaries[0].Label)
		assert.Len(t, summaries[0].StepTitles, 5)
		assert.Equal(t, 4, summaries[0].CriteriaCount)
	})
}
