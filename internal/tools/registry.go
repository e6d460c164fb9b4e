package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iabetor/timebuddy/internal/logger"
)

// Tool 定义工具接口，每个工具必须自描述。
type Tool interface {
	Name() string
	Description() string
	Parameters() json.RawMessage
	Execute(ctx context.Context, args json.RawMessage) (string, error)
}

// Registry 管理所有已注册工具，并保持注册顺序。
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry 创建工具注册表。
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register 注册一个工具。
func (r *Registry) Register(t Tool) {
	if _, exists := r.tools[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.tools[t.Name()] = t
	logger.Infof("[tools] 已注册工具: %s", t.Name())
}

// Get 获取指定名称的工具。
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// List 按注册顺序返回所有工具。
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Execute 执行指定工具并返回结果。
func (r *Registry) Execute(ctx context.Context, name string, args json.RawMessage) (string, error) {
	t, ok := r.tools[name]
	if !ok {
		return "", fmt.Errorf("unknown tool: %s", name)
	}
	logger.Debugf("[tools] 执行工具: %s, 参数: %s", name, string(args))
	result, err := t.Execute(ctx, args)
	if err != nil {
		logger.Warnf("[tools] 工具 %s 执行失败: %v", name, err)
		return "", err
	}
	return result, nil
}

// Count 返回已注册工具数量。
func (r *Registry) Count() int {
	return len(r.tools)
}
