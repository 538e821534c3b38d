package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
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

func sendRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = sendToolName
	req.Params.Arguments = args
	return req
}

func validArgs() map[string]any {
	return map[string]any{
		"title":              "Ödeme API İncelenecek",
		"summary":            "Ödeme servisinde gecikmeler var",
		"problem":            "Timeout oranı artıyor",
		"estimated_duration": "2 Gün",
		"domain":             "backend",
		"task_owner":         "Ali",
	}
}

func TestUnwrapArguments(t *testing.T) {
	inner := map[string]any{"title": "T"}

	t.Run("Should pass plain arguments through unchanged", func(t *testing.T) {
		args := map[string]any{"title": "T", "domain": "backend"}
		assert.Equal(t, args, unwrapArguments(args))
	})
	t.Run("Should unwrap a kwargs JSON string", func(t *testing.T) {
		args := map[string]any{"kwargs": `{"title":"T"}`}
		assert.Equal(t, inner, unwrapArguments(args))
	})
	t.Run("Should unwrap a kwargs object", func(t *testing.T) {
		args := map[string]any{"kwargs": map[string]any{"title": "T"}}
		assert.Equal(t, inner, unwrapArguments(args))
	})
	t.Run("Should keep arguments when the kwargs string is not JSON", func(t *testing.T) {
		args := map[string]any{"kwargs": "not json", "title": "T"}
		assert.Equal(t, args, unwrapArguments(args))
	})
	t.Run("Should unwrap each container key", func(t *testing.T) {
		for _, key := range []string{"data", "input", "payload"} {
			args := map[string]any{key: map[string]any{"title": "T"}}
			assert.Equal(t, inner, unwrapArguments(args), key)
		}
	})
	t.Run("Should unwrap a container nested inside kwargs", func(t *testing.T) {
		args := map[string]any{"kwargs": map[string]any{"data": map[string]any{"title": "T"}}}
		assert.Equal(t, inner, unwrapArguments(args))
	})
	t.Run("Should handle nil arguments", func(t *testing.T) {
		assert.Nil(t, unwrapArguments(nil))
	})
}

func TestTools_HandleSendTask(t *testing.T) {
	t.Run("Should dispatch a resolved card and return the structured result", func(t *testing.T) {
		status := 200
		stub := &stubDispatcher{result: webhook.Result{Success: true, Message: "Message sent", HTTPStatus: &status}}
		tools := NewTools(domain.Default(), stub, nil, task.Options{})

		res, err := tools.handleSendTask(t.Context(), sendRequest(validArgs()))
		require.NoError(t, err)
		require.Equal(t, 1, stub.calls)
		assert.Equal(t, "backend", stub.domain)
		require.NotNil(t, stub.payload)
		assert.Equal(t, "Backend: Ödeme API İncelenecek", stub.payload.Cards[0].Header.Title)

		require.IsType(t, webhook.Result{}, res.StructuredContent)
		assert.True(t, res.StructuredContent.(webhook.Result).Success)
		require.Len(t, res.Content, 1)
		text, ok := res.Content[0].(mcp.TextContent)
		require.True(t, ok)
		assert.Equal(t, "Message sent", text.Text)
	})
	t.Run("Should accept arguments wrapped in a kwargs envelope", func(t *testing.T) {
		stub := &stubDispatcher{result: webhook.Result{Success: true, Message: "Message sent"}}
		tools := NewTools(domain.Default(), stub, nil, task.Options{})
		raw, err := json.Marshal(validArgs())
		require.NoError(t, err)

		_, err = tools.handleSendTask(t.Context(), sendRequest(map[string]any{"kwargs": string(raw)}))
		require.NoError(t, err)
		require.Equal(t, 1, stub.calls)
		assert.Equal(t, "backend", stub.domain)
	})
	t.Run("Should decode a comma-separated participants string", func(t *testing.T) {
		stub := &stubDispatcher{result: webhook.Result{Success: true, Message: "Message sent"}}
		tools := NewTools(domain.Default(), stub, nil, task.Options{})
		args := validArgs()
		args["participants"] = "Veli, Can"

		_, err := tools.handleSendTask(t.Context(), sendRequest(args))
		require.NoError(t, err)
		require.NotNil(t, stub.payload)
		meta := stub.payload.Cards[0].Sections[0].Widgets
		require.Len(t, meta, 4)
		assert.Equal(t, "Katılımcılar", meta[3].KeyValue.TopLabel)
		assert.Equal(t, "Veli, Can", meta[3].KeyValue.Content)
	})
	t.Run("Should render the rich layout from the flattened fields", func(t *testing.T) {
		stub := &stubDispatcher{result: webhook.Result{Success: true, Message: "Message sent"}}
		tools := NewTools(domain.Default(), stub, nil, task.Options{})
		args := validArgs()
		args["solution_sections"] = []any{
			map[string]any{"title": "Analiz", "items": []any{"Loglar çekilir."}},
		}
		args["advantages"] = []any{"Kalıcı çözüm sağlar."}

		_, err := tools.handleSendTask(t.Context(), sendRequest(args))
		require.NoError(t, err)
		require.NotNil(t, stub.payload)
		sections := stub.payload.Cards[0].Sections
		require.Len(t, sections, 5)
		assert.Equal(t, "Çözümün Avantajları", sections[3].Header)
		assert.Equal(t, "<b>1. Analiz</b><br>&nbsp;&nbsp;• Loglar çekilir.",
			sections[2].Widgets[0].TextParagraph.Text)
	})
	t.Run("Should return a failed result without dispatching on invalid input", func(t *testing.T) {
		stub := &stubDispatcher{}
		tools := NewTools(domain.Default(), stub, nil, task.Options{})
		args := validArgs()
		args["domain"] = "videogames"

		res, err := tools.handleSendTask(t.Context(), sendRequest(args))
		require.NoError(t, err)
		assert.Zero(t, stub.calls)
		out, ok := res.StructuredContent.(webhook.Result)
		require.True(t, ok)
		assert.False(t, out.Success)
		assert.Equal(t,
			"Invalid input: Invalid domain 'videogames'. Must be one of: backend, frontend, devops, mobile, data, business, general",
			out.Message)
	})
	t.Run("Should return a failed result when arguments do not bind", func(t *testing.T) {
		stub := &stubDispatcher{}
		tools := NewTools(domain.Default(), stub, nil, task.Options{})
		args := validArgs()
		args["analysis_steps"] = "not a list"

		res, err := tools.handleSendTask(t.Context(), sendRequest(args))
		require.NoError(t, err)
		assert.Zero(t, stub.calls)
		out, ok := res.StructuredContent.(webhook.Result)
		require.True(t, ok)
		assert.False(t, out.Success)
		assert.Contains(t, out.Message, "Invalid input:")
	})
	t.Run("Should treat missing arguments as an empty submission", func(t *testing.T) {
		stub := &stubDispatcher{}
		tools := NewTools(domain.Default(), stub, nil, task.Options{})

		res, err := tools.handleSendTask(t.Context(), sendRequest(nil))
		require.NoError(t, err)
		assert.Zero(t, stub.calls)
		out, ok := res.StructuredContent.(webhook.Result)
		require.True(t, ok)
		assert.Equal(t, "Invalid input: Field 'title' must not be empty", out.Message)
	})
}

func TestTools_HandleListDomains(t *testing.T) {
	t.Run("Should return the catalog summaries in order", func(t *testing.T) {
		tools := NewTools(domain.Default(), &stubDispatcher{}, nil, task.Options{})

		res, err := tools.handleListDomains(t.Context(), mcp.CallToolRequest{})
		require.NoError(t, err)
		list, ok := res.StructuredContent.(domainList)
		require.True(t, ok)
		require.Len(t, list.Domains, 7)
		keys := make([]string, 0, len(list.Domains))
		for _, s := range list.Domains {
			keys = append(keys, s.Key)
		}
		assert.Equal(t, []string{"backend", "frontend", "devops", "mobile", "data", "business", "general"}, keys)

		require.Len(t, res.Content, 1)
		text, ok := res.Content[0].(mcp.TextContent)
		require.True(t, ok)
		var decoded domainList
		require.NoError(t, json.Unmarshal([]byte(text.Text), &decoded))
		assert.Equal(t, list, decoded)
	})
}

func TestTools_DispatchThroughWebhook(t *testing.T) {
	t.Run("Should post the rendered card to the sink", func(t *testing.T) {
		var body []byte
		sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer sink.Close()

		dispatcher := webhook.NewDispatcher(webhook.Config{URL: sink.URL}, nil)
		tools := NewTools(domain.Default(), dispatcher, nil, task.Options{})

		res, err := tools.handleSendTask(t.Context(), sendRequest(validArgs()))
		require.NoError(t, err)
		out, ok := res.StructuredContent.(webhook.Result)
		require.True(t, ok)
		require.True(t, out.Success)
		assert.Equal(t, "Message sent", out.Message)

		var payload card.Payload
		require.NoError(t, json.Unmarshal(body, &payload))
		require.Len(t, payload.Cards, 1)
		assert.Equal(t, "Backend: Ödeme API İncelenecek", payload.Cards[0].Header.Title)
	})
}
