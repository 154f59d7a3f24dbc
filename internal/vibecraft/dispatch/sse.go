package dispatch

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/kiosk404/vibecraft/pkg/logger"
	"github.com/mark3labs/mcp-go/server"
)

// SSE transport paths, fixed so agent clients can be pointed at the
// daemon with nothing but host and port.
const (
	SSEBasePath     = "/mcp"
	sseEndpoint     = SSEBasePath + "/sse"
	messageEndpoint = SSEBasePath + "/message"
)

// MountSSE adapts the Runtime onto a gin engine as a server-sent-events
// MCP transport. The returned SSEServer is already wired; callers only
// keep it to Shutdown on drain.
func (r *Runtime) MountSSE(engine *gin.Engine, bindAddress string, bindPort int) *server.SSEServer {
	sse := server.NewSSEServer(r.mcpServer,
		server.WithBaseURL(fmt.Sprintf("http://%s:%d", bindAddress, bindPort)),
		server.WithStaticBasePath(SSEBasePath),
	)

	engine.GET(sseEndpoint, gin.WrapH(sse.SSEHandler()))
	engine.POST(messageEndpoint, gin.WrapH(sse.MessageHandler()))

	logger.Info("dispatch: SSE MCP transport mounted at %s", sseEndpoint)
	return sse
}
