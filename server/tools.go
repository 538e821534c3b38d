package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/taskwire/taskwire/engine/domain"
	"github.com/taskwire/taskwire/engine/task"
	"github.com/taskwire/taskwire/engine/task/uc"
	"github.com/taskwire/taskwire/engine/webhook"
	"github.com/taskwire/taskwire/pkg/logger"
)

const (
	sendToolName        = "send_google_chat_message"
	listDomainsToolName = "list_domains"
)

// Tools bundles the MCP tool handlers with their dependencies.
type Tools struct {
	catalog    *domain.Catalog
	dispatcher uc.Dispatcher
	metrics    *webhook.Metrics
	opts       task.Options
}

// NewTools creates the tool set served by the MCP server. metrics may be nil.
func NewTools(catalog *domain.Catalog, dispatcher uc.Dispatcher, metrics *webhook.Metrics, opts task.Options) *Tools {
	return &Tools{catalog: catalog, dispatcher: dispatcher, metrics: metrics, opts: opts}
}

// Register adds both tools to the MCP server.
func (t *Tools) Register(srv *server.MCPServer) {
	srv.AddTool(sendTaskTool(), t.handleSendTask)
	srv.AddTool(listDomainsTool(), t.handleListDomains)
}

func sendTaskTool() mcp.Tool {
	return mcp.NewTool(sendToolName,
		mcp.WithDescription("Send a structured investigation task message to Google Chat space via webhook. "+
			"Pick the correct domain so that investigation steps and acceptance criteria are automatically "+
			"pre-filled: 'backend', 'frontend', 'devops', 'mobile', 'data', 'business', or 'general'."),
		mcp.WithString("title", mcp.Required(),
			mcp.Description("Short task title; rewritten into the future-tense card heading.")),
		mcp.WithString("summary", mcp.Required(),
			mcp.Description("One or two sentence summary of the task.")),
		mcp.WithString("problem", mcp.Required(),
			mcp.Description("Detailed description of the problem under investigation.")),
		mcp.WithString("estimated_duration", mcp.Required(),
			mcp.Description("Estimated effort, e.g. '2 Gün' or '4 Saat'.")),
		mcp.WithString("domain",
			mcp.Description("Task domain key. Empty defaults to 'general'.")),
		mcp.WithString("task_owner",
			mcp.Description("Assignee name. Empty falls back to the configured default owner.")),
		mcp.WithArray("participants",
			mcp.Description("Participant names; a list or a single comma-separated string."),
			mcp.WithStringItems()),
		mcp.WithArray("analysis_steps",
			mcp.Description("Analysis steps overriding the domain defaults."),
			mcp.Items(stepSchema())),
		mcp.WithArray("acceptance_criteria",
			mcp.Description("Acceptance criteria overriding the domain defaults."),
			mcp.WithStringItems()),
		mcp.WithArray("solution_sections",
			mcp.Description("Rich solution layout: numbered sections with bullet items."),
			mcp.Items(sectionSchema())),
		mcp.WithArray("advantages",
			mcp.Description("Advantages of the proposed solution."),
			mcp.WithStringItems()),
	)
}

func listDomainsTool() mcp.Tool {
	return mcp.NewTool(listDomainsToolName,
		mcp.WithDescription("List all available task domains with their labels and default steps. "+
			"Useful to understand what domain to pick."),
	)
}

func stepSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":  map[string]any{"type": "string", "description": "Step heading."},
			"detail": map[string]any{"type": "string", "description": "What the step verifies."},
		},
		"required": []string{"title", "detail"},
	}
}

func sectionSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string", "description": "Section heading."},
			"items": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Bullet items under the section.",
			},
		},
		"required": []string{"title"},
	}
}

func (t *Tools) handleSendTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := logger.FromContext(ctx).With("tool", sendToolName, "request_id", uuid.NewString())
	ctx = logger.ContextWithLogger(ctx, log)

	in, err := bindInput(unwrapArguments(req.GetArguments()))
	if err != nil {
		log.Error("Rejected malformed arguments", "error", err)
		res := webhook.Result{Success: false, Message: fmt.Sprintf("Invalid input: %s", err)}
		return mcp.NewToolResultStructured(res, res.Message), nil
	}

	res := uc.NewSendTask(t.catalog, t.dispatcher, t.metrics, t.opts, in).Execute(ctx)
	log.Info("Tool call completed", "success", res.Success)
	return mcp.NewToolResultStructured(res, res.Message), nil
}

// domainList is the structured payload returned by the list tool.
type domainList struct {
	Domains []domain.Summary `json:"domains"`
}

func (t *Tools) handleListDomains(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := logger.FromContext(ctx).With("tool", listDomainsToolName, "request_id", uuid.NewString())
	ctx = logger.ContextWithLogger(ctx, log)

	list := domainList{Domains: uc.NewListDomains(t.catalog).Execute(ctx)}
	text, err := json.Marshal(list)
	if err != nil {
		log.Error("Failed to encode domain list", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode domain list: %s", err)), nil
	}
	return mcp.NewToolResultStructured(list, string(text)), nil
}

// containerKeys are the envelope fields some MCP clients wrap arguments in.
var containerKeys = []string{"data", "input", "payload"}

// unwrapArguments undoes the wrapper shapes produced by clients that pass
// tool arguments as a "kwargs" blob or inside a single container object.
func unwrapArguments(args map[string]any) map[string]any {
	if raw, ok := args["kwargs"]; ok {
		switch v := raw.(type) {
		case string:
			var decoded map[string]any
			if err := json.Unmarshal([]byte(v), &decoded); err == nil {
				args = decoded
			}
		case map[string]any:
			args = v
		}
	}
	for _, key := range containerKeys {
		if inner, ok := args[key].(map[string]any); ok {
			return inner
		}
	}
	return args
}

// bindInput decodes loosely typed tool arguments into the submission shape.
// Going through JSON applies the flexible participants decoding.
func bindInput(args map[string]any) (*task.Input, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	in := &task.Input{}
	if err := json.Unmarshal(raw, in); err != nil {
		return nil, err
	}
	return in, nil
}
