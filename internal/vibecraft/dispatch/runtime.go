// Package dispatch implements the tool dispatch runtime:
// one protocol engine that advertises the registered tool schemas and
// routes invocations to handlers, adapted onto two thin transports
// (stdio and SSE over HTTP).
package dispatch

import (
	"context"

	"github.com/kiosk404/vibecraft/internal/vibecraft/tools"
	"github.com/kiosk404/vibecraft/pkg/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "vibecraft"
	serverVersion = "0.1.0"
)

// Runtime owns tool registration and handler routing. Both transports
// adapt the same Runtime; neither carries protocol logic of its own.
type Runtime struct {
	mcpServer *server.MCPServer
	toolNames []string
}

// NewRuntime builds the protocol engine and registers the complete tool
// set once. Handlers run concurrently among themselves; the underlying
// server delivers each invocation to its handler at most once.
func NewRuntime(deps *tools.Deps) *Runtime {
	s := server.NewMCPServer(serverName, serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	all := tools.All(deps)
	names := make([]string, 0, len(all))
	for _, t := range all {
		s.AddTool(t.Def, server.ToolHandlerFunc(t.Handler))
		names = append(names, t.Def.Name)
	}
	logger.Info("dispatch: %d tools registered", len(names))

	return &Runtime{mcpServer: s, toolNames: names}
}

// ToolNames lists the registered tool names in advertisement order, for
// the /status diagnostic endpoint and the operator CLI.
func (r *Runtime) ToolNames() []string {
	out := make([]string, len(r.toolNames))
	copy(out, r.toolNames)
	return out
}

// ServeStdio blocks serving the line-oriented stdio transport until the
// stream closes or ctx is cancelled.
func (r *Runtime) ServeStdio(ctx context.Context) error {
	logger.Info("dispatch: serving MCP over stdio")
	return server.NewStdioServer(r.mcpServer).Listen(ctx, stdinReader(), stdoutWriter())
}

// MCPServer exposes the protocol engine to transport adapters.
func (r *Runtime) MCPServer() *server.MCPServer {
	return r.mcpServer
}

// HandleMessage lets in-process callers (the operator CLI's direct
// mode, tests) speak raw MCP JSON to the engine without a transport.
func (r *Runtime) HandleMessage(ctx context.Context, message []byte) mcp.JSONRPCMessage {
	return r.mcpServer.HandleMessage(ctx, message)
}
