package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iabetor/timebuddy/internal/calendar"
	"github.com/iabetor/timebuddy/internal/timesource"
)

// CurrentTimeTool 获取当前准确时间，并按需转换为请求的各种历法。
type CurrentTimeTool struct {
	resolver  *timesource.Resolver
	calendars *calendar.Registry
}

func NewCurrentTimeTool(resolver *timesource.Resolver, calendars *calendar.Registry) *CurrentTimeTool {
	return &CurrentTimeTool{resolver: resolver, calendars: calendars}
}

func (t *CurrentTimeTool) Name() string { return "get_current_time" }

func (t *CurrentTimeTool) Description() string {
	return "Returns the current UTC time (from an NTP server when available), and optionally converts it " +
		"to additional calendar systems. The `calendar` parameter is a comma-separated list; valid values " +
		"(case-insensitive): unix, isodate, hijri, japanese, hebrew, persian, chinese. " +
		"Example: \"unix,hijri\". Leave empty to get only UTC time. " +
		"Invalid calendar names are reported per item and do not cause errors. " +
		"An optional `timezone` (IANA name like Europe/Warsaw, or offset like +08:00) adds a local rendering."
}

func (t *CurrentTimeTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"calendar": {
				"type": "string",
				"description": "Comma-separated calendar identifiers: unix, isodate, hijri, japanese, hebrew, persian, chinese"
			},
			"timezone": {
				"type": "string",
				"description": "Optional IANA timezone name or UTC offset (+HH:MM) for an additional local rendering"
			}
		},
		"required": []
	}`)
}

// CalendarEntry 响应里的单个历法条目，转换失败时填充 error 字段。
type CalendarEntry struct {
	CalendarID string          `json:"calendar_id"`
	Primary    string          `json:"primary_rendering,omitempty"`
	Secondary  string          `json:"secondary_rendering,omitempty"`
	Extra      calendar.Fields `json:"extra_fields,omitempty"`
	Error      string          `json:"error,omitempty"`
	ErrorKind  string          `json:"error_kind,omitempty"`
}

// CurrentTimeResult get_current_time 工具的输出。
type CurrentTimeResult struct {
	UTCTime   string          `json:"utc_time"`
	Weekday   string          `json:"weekday"`
	Warning   string          `json:"warning,omitempty"`
	Timezone  string          `json:"timezone,omitempty"`
	LocalTime string          `json:"local_time,omitempty"`
	Calendars []CalendarEntry `json:"calendars"`
}

func (t *CurrentTimeTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Calendar string `json:"calendar"`
		Timezone string `json:"timezone"`
	}
	if len(args) > 0 {
		// 参数不可解析按未请求任何历法处理，保持工具可用
		_ = json.Unmarshal(args, &params)
	}

	res := t.resolver.Resolve(ctx)

	result := CurrentTimeResult{
		UTCTime:   res.Time.Format(time.RFC3339),
		Weekday:   res.Time.Weekday().String(),
		Warning:   res.Warning,
		Calendars: []CalendarEntry{},
	}

	if params.Timezone != "" {
		loc, err := loadTimezone(params.Timezone)
		if err != nil {
			return "", err
		}
		local := res.Time.In(loc)
		result.Timezone = params.Timezone
		result.LocalTime = local.Format("2006-01-02 15:04:05")
	}

	for _, id := range parseCalendarList(params.Calendar) {
		converted, err := t.calendars.Convert(res.Time, id)
		if err != nil {
			entry := CalendarEntry{CalendarID: id, Error: err.Error()}
			var unsupported *calendar.UnsupportedError
			if errors.As(err, &unsupported) {
				entry.ErrorKind = "UNSUPPORTED_CALENDAR"
			} else {
				entry.ErrorKind = "CONVERSION_FAILED"
			}
			result.Calendars = append(result.Calendars, entry)
			continue
		}
		result.Calendars = append(result.Calendars, CalendarEntry{
			CalendarID: converted.CalendarID,
			Primary:    converted.Primary,
			Secondary:  converted.Secondary,
			Extra:      converted.Extra,
		})
	}

	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("序列化结果失败: %w", err)
	}
	return string(data), nil
}

// parseCalendarList 拆分逗号分隔的历法列表：去空白、转小写、去空项、
// 按首次出现的顺序去重。
func parseCalendarList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, token := range strings.Split(s, ",") {
		id := strings.ToLower(strings.TrimSpace(token))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// loadTimezone 解析 IANA 时区名或 ±HH:MM 形式的固定偏移。
func loadTimezone(tz string) (*time.Location, error) {
	if loc, err := time.LoadLocation(tz); err == nil {
		return loc, nil
	}

	// ±HH:MM 固定偏移
	if len(tz) == 6 && (tz[0] == '+' || tz[0] == '-') && tz[3] == ':' {
		hours, err1 := strconv.Atoi(tz[1:3])
		minutes, err2 := strconv.Atoi(tz[4:6])
		// 偏移总量不超过 14 小时（现行时区最大为 +14:00）
		if err1 == nil && err2 == nil && minutes < 60 && hours*60+minutes <= 14*60 {
			offset := hours*3600 + minutes*60
			if tz[0] == '-' {
				offset = -offset
			}
			return time.FixedZone(tz, offset), nil
		}
	}

	return nil, fmt.Errorf("unknown timezone: %q (use an IANA name like Europe/Warsaw or an offset like +08:00)", tz)
}
