// Package mcpserver 把工具注册表挂接到 MCP 协议层。
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/iabetor/timebuddy/internal/logger"
	"github.com/iabetor/timebuddy/internal/tools"
)

// New 根据工具注册表创建 MCP 服务器。
// 所有工具都是只读的，统一打上 read-only 注解。
func New(reg *tools.Registry, name, version string) *server.MCPServer {
	s := server.NewMCPServer(name, version, server.WithToolCapabilities(false))

	for _, t := range reg.List() {
		tool := mcp.NewToolWithRawSchema(t.Name(), t.Description(), t.Parameters())
		tool.Annotations = mcp.ToolAnnotation{
			ReadOnlyHint: mcp.ToBoolPtr(true),
		}
		s.AddTool(tool, handlerFor(reg, t.Name()))
	}

	logger.Infof("[mcpserver] 已挂接 %d 个工具", reg.Count())
	return s
}

// handlerFor 把注册表里的工具包装成 MCP 工具处理函数。
// 工具返回的错误转换为 MCP error result，不作为协议错误抛出。
func handlerFor(reg *tools.Registry, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(req.GetArguments())
		if err != nil {
			args = json.RawMessage(`{}`)
		}

		out, err := reg.Execute(ctx, name, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}

// ServeStdio 在 stdin/stdout 上运行 JSON-RPC 服务。
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// NewStreamableHTTP 创建无状态的 streamable HTTP 服务，供 web 变体使用。
func NewStreamableHTTP(s *server.MCPServer) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(s, server.WithStateLess(true))
}
