package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iabetor/timebuddy/internal/timesource"
)

// LocalTimeTool 返回本机时间和时区，不做任何网络查询。
// stdio 变体里叫 get_local_time，web 变体里叫 get_server_time。
type LocalTimeTool struct {
	name        string
	description string
}

// NewLocalTimeTool 创建 stdio 变体的本地时间工具。
func NewLocalTimeTool() *LocalTimeTool {
	return &LocalTimeTool{
		name: "get_local_time",
		description: "Returns the current local time and timezone information from your local machine. " +
			"This helps you understand what time it is for the user you're assisting.",
	}
}

// NewServerTimeTool 创建 web 变体的服务器时间工具。
func NewServerTimeTool() *LocalTimeTool {
	return &LocalTimeTool{
		name: "get_server_time",
		description: "Returns the current local time and timezone from the server hosting this tool. " +
			"Note: This is the server's time, which may be different from the user's local time.",
	}
}

func (t *LocalTimeTool) Name() string { return t.name }

func (t *LocalTimeTool) Description() string { return t.description }

func (t *LocalTimeTool) Parameters() json.RawMessage {
	return json.RawMessage(`{"type":"object","properties":{},"required":[]}`)
}

// LocalTimeResult 本地时间工具的输出。
type LocalTimeResult struct {
	LocalTime string `json:"local_time"`
	Weekday   string `json:"weekday"`
	Timezone  string `json:"timezone"`
}

func (t *LocalTimeTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	li := timesource.LocalNow()

	result := LocalTimeResult{
		LocalTime: li.Time.Format("2006-01-02 15:04:05"),
		Weekday:   li.Weekday,
		Timezone:  li.Timezone,
	}

	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("序列化结果失败: %w", err)
	}
	return string(data), nil
}
