package tools

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestLocalTimeTool_Execute(t *testing.T) {
	tool := NewLocalTimeTool()

	result, err := tool.Execute(context.Background(), json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	var out LocalTimeResult
	if err := json.Unmarshal([]byte(result), &out); err != nil {
		t.Fatalf("解析结果失败: %v", err)
	}

	if _, err := time.Parse("2006-01-02 15:04:05", out.LocalTime); err != nil {
		t.Errorf("local_time 格式不正确: %q", out.LocalTime)
	}
	if out.Weekday == "" {
		t.Error("weekday 不应为空")
	}
	if out.Timezone == "" {
		t.Error("timezone 不应为空")
	}
}

func TestLocalTimeTool_Names(t *testing.T) {
	if got := NewLocalTimeTool().Name(); got != "get_local_time" {
		t.Errorf("stdio 变体工具名 = %s, want get_local_time", got)
	}
	if got := NewServerTimeTool().Name(); got != "get_server_time" {
		t.Errorf("web 变体工具名 = %s, want get_server_time", got)
	}
}

func TestLocalTimeTool_EmptyArgs(t *testing.T) {
	tool := NewLocalTimeTool()

	result, err := tool.Execute(context.Background(), json.RawMessage{})
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if result == "" {
		t.Error("expected non-empty result")
	}
}
