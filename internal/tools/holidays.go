package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iabetor/timebuddy/internal/holidays"
)

// HolidayInfo 响应里的单条假日。
type HolidayInfo struct {
	Date      string `json:"date"`
	Name      string `json:"name"`
	LocalName string `json:"local_name,omitempty"`
	Global    bool   `json:"global"`
}

func toHolidayInfos(items []holidays.PublicHoliday) []HolidayInfo {
	out := make([]HolidayInfo, 0, len(items))
	for _, h := range items {
		out = append(out, HolidayInfo{
			Date:      h.Date,
			Name:      h.Name,
			LocalName: h.LocalName,
			Global:    h.Global,
		})
	}
	return out
}

// GetHolidaysTool 查询某国某年的全部公共假日。
type GetHolidaysTool struct {
	client *holidays.Client
}

func NewGetHolidaysTool(client *holidays.Client) *GetHolidaysTool {
	return &GetHolidaysTool{client: client}
}

func (t *GetHolidaysTool) Name() string { return "get_holidays" }

func (t *GetHolidaysTool) Description() string {
	return "Returns the public holidays of a country for a given year. " +
		"Country can be an ISO-3166 two-letter code (e.g. PL) or an English country name (e.g. Poland)."
}

func (t *GetHolidaysTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"country": {
				"type": "string",
				"description": "ISO-3166 two-letter code or English country name"
			},
			"year": {
				"type": "integer",
				"description": "Year to query, defaults to the current year"
			}
		},
		"required": ["country"]
	}`)
}

// HolidaysResult get_holidays 工具的输出。
type HolidaysResult struct {
	CountryCode string        `json:"country_code"`
	Year        int           `json:"year"`
	Count       int           `json:"count"`
	Holidays    []HolidayInfo `json:"holidays"`
}

func (t *GetHolidaysTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Country string `json:"country"`
		Year    int    `json:"year"`
	}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &params); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
	}
	if params.Country == "" {
		return "", fmt.Errorf("country is required")
	}

	code, err := t.client.ResolveCountry(ctx, params.Country)
	if err != nil {
		return "", err
	}

	year := params.Year
	if year == 0 {
		// 整年列表无需 NTP 精度，本机时钟足够
		year = time.Now().Year()
	}

	items, err := t.client.PublicHolidays(ctx, year, code)
	if err != nil {
		return "", err
	}

	result := HolidaysResult{
		CountryCode: code,
		Year:        year,
		Count:       len(items),
		Holidays:    toHolidayInfos(items),
	}

	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("序列化结果失败: %w", err)
	}
	return string(data), nil
}

// IsHolidayTool 判断某国某天是否为公共假日。
type IsHolidayTool struct {
	client *holidays.Client
}

func NewIsHolidayTool(client *holidays.Client) *IsHolidayTool {
	return &IsHolidayTool{client: client}
}

func (t *IsHolidayTool) Name() string { return "is_holiday" }

func (t *IsHolidayTool) Description() string {
	return "Checks whether a specific date is a public holiday in a country. " +
		"Date format is YYYY-MM-DD; omit it to check today."
}

func (t *IsHolidayTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"country": {
				"type": "string",
				"description": "ISO-3166 two-letter code or English country name"
			},
			"date": {
				"type": "string",
				"description": "Date to check, format YYYY-MM-DD, defaults to today"
			}
		},
		"required": ["country"]
	}`)
}

// IsHolidayResult is_holiday 工具的输出。
type IsHolidayResult struct {
	CountryCode string        `json:"country_code"`
	Date        string        `json:"date"`
	IsHoliday   bool          `json:"is_holiday"`
	Holidays    []HolidayInfo `json:"holidays,omitempty"`
}

func (t *IsHolidayTool) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Country string `json:"country"`
		Date    string `json:"date"`
	}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &params); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
	}
	if params.Country == "" {
		return "", fmt.Errorf("country is required")
	}

	code, err := t.client.ResolveCountry(ctx, params.Country)
	if err != nil {
		return "", err
	}

	date := time.Now()
	if params.Date != "" {
		parsed, err := time.Parse("2006-01-02", params.Date)
		if err != nil {
			return "", fmt.Errorf("invalid date %q, use YYYY-MM-DD: %w", params.Date, err)
		}
		date = parsed
	}

	hits, err := t.client.OnDate(ctx, code, date)
	if err != nil {
		return "", err
	}

	result := IsHolidayResult{
		CountryCode: code,
		Date:        date.Format("2006-01-02"),
		IsHoliday:   len(hits) > 0,
		Holidays:    toHolidayInfos(hits),
	}

	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("序列化结果失败: %w", err)
	}
	return string(data), nil
}
