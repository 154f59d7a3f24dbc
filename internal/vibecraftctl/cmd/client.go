package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/kiosk404/vibecraft/pkg/codec"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// connect dials the daemon over the transport the global options pick
// and completes the MCP handshake. Callers own Close.
func connect(ctx context.Context, global *GlobalOptions) (*client.Client, error) {
	var (
		cli *client.Client
		err error
	)
	if global.StdioCommand != "" {
		// NewStdioMCPClient spawns the process and starts its transport.
		parts := strings.Fields(global.StdioCommand)
		cli, err = client.NewStdioMCPClient(parts[0], nil, parts[1:]...)
		if err != nil {
			return nil, fmt.Errorf("spawn stdio daemon: %w", err)
		}
	} else {
		cli, err = client.NewSSEMCPClient(global.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("create SSE client: %w", err)
		}
		if err := cli.Start(ctx); err != nil {
			return nil, fmt.Errorf("connect to %s: %w", global.Endpoint, err)
		}
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "vibecraftctl",
		Version: "0.1.0",
	}
	if _, err := cli.Initialize(ctx, initReq); err != nil {
		cli.Close()
		return nil, fmt.Errorf("initialize MCP session: %w", err)
	}

	return cli, nil
}

// callTool invokes one tool and returns the first text block of its
// result, plus whether the daemon flagged the call as a tool error.
func callTool(ctx context.Context, cli *client.Client, name string, args map[string]interface{}) (string, bool, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := cli.CallTool(ctx, req)
	if err != nil {
		return "", false, err
	}

	for _, content := range res.Content {
		if text, ok := mcp.AsTextContent(content); ok {
			return text.Text, res.IsError, nil
		}
	}
	return "", res.IsError, nil
}

// decodeResult parses a tool's JSON text result into a generic map;
// non-JSON results come back under a "text" key so callers can still
// print something useful.
func decodeResult(text string) map[string]interface{} {
	var out map[string]interface{}
	if err := codec.Unmarshal([]byte(text), &out); err != nil {
		return map[string]interface{}{"text": text}
	}
	return out
}
