package server

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/taskwire/taskwire/pkg/version"
)

const serverName = "taskwire"

// newMCPServer assembles the MCP server with both tools registered.
func newMCPServer(tools *Tools) *server.MCPServer {
	srv := server.NewMCPServer(
		serverName,
		version.GetVersion(),
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)
	tools.Register(srv)
	return srv
}

// serverInstructions tells the calling assistant how to fill and send task
// cards.
func serverInstructions() string {
	return `You are a helpful assistant that formats support investigation tasks into
structured messages and sends them to a Google Chat space via webhook.

Pick the most suitable domain for every task so that analysis steps and
acceptance criteria are pre-filled from the domain template:

- backend: API, database, queue, microservice issues
- frontend: UI bug, rendering, performance, browser compatibility
- devops: CI/CD, infrastructure, Docker, cloud, deployment
- mobile: iOS/Android crash, build, store submission
- data: Data pipeline, ETL, analytics, reporting issues
- business: Non-technical tasks like documentation, process improvement, etc.
- general: Catch-all when the domain is unclear

The user can override any field explicitly. Always confirm the filled-in card
details before sending unless the user explicitly says "gönder" or
"send directly".`
}
