// Package holidays 通过 Nager.Date REST API 查询各国公共假日。
package holidays

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/iabetor/timebuddy/internal/logger"
)

const (
	defaultBaseURL      = "https://date.nager.at/api/v3"
	defaultCacheTTL     = 6 * time.Hour
	defaultFetchTimeout = 10 * time.Second
)

// PublicHoliday Nager.Date 返回的单条假日记录。
type PublicHoliday struct {
	Date        string   `json:"date"` // YYYY-MM-DD
	LocalName   string   `json:"localName"`
	Name        string   `json:"name"`
	CountryCode string   `json:"countryCode"`
	Global      bool     `json:"global"`
	Counties    []string `json:"counties,omitempty"`
	Types       []string `json:"types,omitempty"`
}

// Country 可查询的国家。
type Country struct {
	CountryCode string `json:"countryCode"`
	Name        string `json:"name"`
}

// fallbackCountries 常见国家的内置码表，API 拿不到国家列表时兜底。
var fallbackCountries = map[string]string{
	"united states":  "US",
	"united kingdom": "GB",
	"germany":        "DE",
	"france":         "FR",
	"poland":         "PL",
	"china":          "CN",
	"japan":          "JP",
	"israel":         "IL",
	"canada":         "CA",
	"australia":      "AU",
	"brazil":         "BR",
	"netherlands":    "NL",
	"spain":          "ES",
	"italy":          "IT",
}

type cachedHolidays struct {
	fetchedAt time.Time
	items     []PublicHoliday
}

// Client 负责查询并缓存公共假日数据。
type Client struct {
	baseURL string
	client  *http.Client
	ttl     time.Duration

	mu        sync.RWMutex
	cache     map[string]cachedHolidays // key: "year/CODE"
	countries []Country
	countryAt time.Time
}

// NewClient 创建假日查询客户端。baseURL 为空使用官方地址。
func NewClient(baseURL string, cacheTTLMinutes int) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	ttl := defaultCacheTTL
	if cacheTTLMinutes > 0 {
		ttl = time.Duration(cacheTTLMinutes) * time.Minute
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultFetchTimeout},
		ttl:     ttl,
		cache:   make(map[string]cachedHolidays),
	}
}

// PublicHolidays 返回指定国家某年的全部公共假日（优先使用缓存）。
func (c *Client) PublicHolidays(ctx context.Context, year int, code string) ([]PublicHoliday, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 {
		return nil, fmt.Errorf("invalid country code: %q", code)
	}

	key := fmt.Sprintf("%d/%s", year, code)

	c.mu.RLock()
	cached, ok := c.cache[key]
	c.mu.RUnlock()
	if ok && time.Since(cached.fetchedAt) < c.ttl {
		return cached.items, nil
	}

	var items []PublicHoliday
	url := fmt.Sprintf("%s/PublicHolidays/%d/%s", c.baseURL, year, code)
	if err := c.getJSON(ctx, url, &items); err != nil {
		// 拉取失败但有旧缓存时继续用旧数据
		if ok {
			logger.Warnf("[holidays] 刷新 %s 失败，使用旧缓存: %v", key, err)
			return cached.items, nil
		}
		return nil, err
	}

	c.mu.Lock()
	c.cache[key] = cachedHolidays{fetchedAt: time.Now(), items: items}
	c.mu.Unlock()

	return items, nil
}

// OnDate 返回指定国家某一天的公共假日，非假日时返回空列表。
func (c *Client) OnDate(ctx context.Context, code string, date time.Time) ([]PublicHoliday, error) {
	all, err := c.PublicHolidays(ctx, date.Year(), code)
	if err != nil {
		return nil, err
	}

	day := date.Format("2006-01-02")
	var hits []PublicHoliday
	for _, h := range all {
		if h.Date == day {
			hits = append(hits, h)
		}
	}
	return hits, nil
}

// ResolveCountry 将国家名或两位代码解析为 ISO-3166 代码。
// 优先用 API 的国家列表做大小写不敏感匹配，列表拿不到时退回内置码表。
func (c *Client) ResolveCountry(ctx context.Context, nameOrCode string) (string, error) {
	q := strings.TrimSpace(nameOrCode)
	if q == "" {
		return "", fmt.Errorf("country is required")
	}
	if len(q) == 2 {
		return strings.ToUpper(q), nil
	}

	lower := strings.ToLower(q)

	countries, err := c.availableCountries(ctx)
	if err != nil {
		logger.Warnf("[holidays] 获取国家列表失败，使用内置码表: %v", err)
		if code, ok := fallbackCountries[lower]; ok {
			return code, nil
		}
		return "", fmt.Errorf("unknown country: %q", q)
	}

	for _, country := range countries {
		if strings.ToLower(country.Name) == lower {
			return country.CountryCode, nil
		}
	}
	// 前缀匹配兜底，如 "united states of america"
	for _, country := range countries {
		if strings.HasPrefix(lower, strings.ToLower(country.Name)) ||
			strings.HasPrefix(strings.ToLower(country.Name), lower) {
			return country.CountryCode, nil
		}
	}
	return "", fmt.Errorf("unknown country: %q", q)
}

// availableCountries 拉取并缓存可查询的国家列表。
func (c *Client) availableCountries(ctx context.Context) ([]Country, error) {
	c.mu.RLock()
	countries, at := c.countries, c.countryAt
	c.mu.RUnlock()
	if countries != nil && time.Since(at) < c.ttl {
		return countries, nil
	}

	var fresh []Country
	if err := c.getJSON(ctx, c.baseURL+"/AvailableCountries", &fresh); err != nil {
		if countries != nil {
			return countries, nil
		}
		return nil, err
	}

	c.mu.Lock()
	c.countries = fresh
	c.countryAt = time.Now()
	c.mu.Unlock()

	return fresh, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "TimeBuddy/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("holiday data not found (HTTP 404), country may be unsupported")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("holiday API returned HTTP %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
