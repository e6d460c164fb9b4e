package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iabetor/timebuddy/internal/timesource"
)

// UTCTool 通过 NTP 获取准确的 UTC 时间，失败时降级为本机时钟。
type UTCTool struct {
	resolver *timesource.Resolver
}

func NewUTCTool(resolver *timesource.Resolver) *UTCTool {
	return &UTCTool{resolver: resolver}
}

func (t *UTCTool) Name() string { return "get_utc" }

func (t *UTCTool) Description() string {
	return "Returns accurate UTC time from an NTP server. " +
		"This provides a universal time reference regardless of local timezone."
}

func (t *UTCTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"server": {
				"type": "string",
				"description": "NTP server address (default: pool.ntp.org)"
			}
		},
		"required": []
	}`)
}

// UTCResult UTC 时间工具的输出。
type UTCResult struct {
	UTCTime string `json:"utc_time"`
	Weekday string `json:"weekday"`
	Server  string `json:"server,omitempty"`
	Warning string `json:"warning,omitempty"`
}

func (t *UTCTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Server string `json:"server"`
	}
	if len(args) > 0 {
		// 参数不可解析按未提供处理
		_ = json.Unmarshal(args, &params)
	}

	res := t.resolver.ResolveWith(ctx, params.Server)

	result := UTCResult{
		UTCTime: res.Time.Format(time.RFC3339),
		Weekday: res.Time.Weekday().String(),
		Server:  res.Server,
		Warning: res.Warning,
	}

	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("序列化结果失败: %w", err)
	}
	return string(data), nil
}
