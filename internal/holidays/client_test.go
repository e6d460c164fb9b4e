package holidays

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const holidaysPL2024 = `[
  {"date":"2024-01-01","localName":"Nowy Rok","name":"New Year's Day","countryCode":"PL","global":true},
  {"date":"2024-05-01","localName":"Święto Pracy","name":"Labour Day","countryCode":"PL","global":true},
  {"date":"2024-12-25","localName":"Boże Narodzenie","name":"Christmas Day","countryCode":"PL","global":true}
]`

const availableCountries = `[
  {"countryCode":"PL","name":"Poland"},
  {"countryCode":"DE","name":"Germany"},
  {"countryCode":"US","name":"United States"}
]`

func newTestServer(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			*hits++
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/PublicHolidays/2024/PL":
			w.Write([]byte(holidaysPL2024))
		case "/AvailableCountries":
			w.Write([]byte(availableCountries))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestPublicHolidays(t *testing.T) {
	srv := newTestServer(t, nil)
	defer srv.Close()

	c := NewClient(srv.URL, 60)
	items, err := c.PublicHolidays(context.Background(), 2024, "pl")
	if err != nil {
		t.Fatalf("PublicHolidays failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("应返回 3 条假日, got %d", len(items))
	}
	if items[0].Name != "New Year's Day" || items[0].LocalName != "Nowy Rok" {
		t.Errorf("首条假日解析错误: %+v", items[0])
	}
}

func TestPublicHolidays_CacheHit(t *testing.T) {
	hits := 0
	srv := newTestServer(t, &hits)
	defer srv.Close()

	c := NewClient(srv.URL, 60)
	ctx := context.Background()

	if _, err := c.PublicHolidays(ctx, 2024, "PL"); err != nil {
		t.Fatalf("第一次查询失败: %v", err)
	}
	if _, err := c.PublicHolidays(ctx, 2024, "PL"); err != nil {
		t.Fatalf("第二次查询失败: %v", err)
	}
	if hits != 1 {
		t.Errorf("TTL 内的重复查询应命中缓存, API 被调用 %d 次", hits)
	}
}

func TestPublicHolidays_UnknownCountry(t *testing.T) {
	srv := newTestServer(t, nil)
	defer srv.Close()

	c := NewClient(srv.URL, 60)
	if _, err := c.PublicHolidays(context.Background(), 2024, "XX"); err == nil {
		t.Error("不支持的国家应报错")
	}
}

func TestPublicHolidays_InvalidCode(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", 60)
	if _, err := c.PublicHolidays(context.Background(), 2024, "Poland"); err == nil {
		t.Error("非两位代码应直接报错，不发请求")
	}
}

func TestOnDate(t *testing.T) {
	srv := newTestServer(t, nil)
	defer srv.Close()

	c := NewClient(srv.URL, 60)
	ctx := context.Background()

	hits, err := c.OnDate(ctx, "PL", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("OnDate failed: %v", err)
	}
	if len(hits) != 1 || hits[0].Name != "Labour Day" {
		t.Errorf("2024-05-01 应命中 Labour Day: %+v", hits)
	}

	none, err := c.OnDate(ctx, "PL", time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("OnDate failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("非假日应返回空列表: %+v", none)
	}
}

func TestResolveCountry(t *testing.T) {
	srv := newTestServer(t, nil)
	defer srv.Close()

	c := NewClient(srv.URL, 60)
	ctx := context.Background()

	tests := []struct {
		in   string
		want string
	}{
		{"PL", "PL"},
		{"pl", "PL"},
		{"Poland", "PL"},
		{"poland", "PL"},
		{"United States", "US"},
	}
	for _, tt := range tests {
		got, err := c.ResolveCountry(ctx, tt.in)
		if err != nil {
			t.Errorf("ResolveCountry(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveCountry(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := c.ResolveCountry(ctx, "Atlantis"); err == nil {
		t.Error("未知国家名应报错")
	}
}

func TestResolveCountry_FallbackTable(t *testing.T) {
	// API 不可达时退回内置码表
	c := NewClient("http://127.0.0.1:1", 60)
	got, err := c.ResolveCountry(context.Background(), "Germany")
	if err != nil {
		t.Fatalf("内置码表应兜底: %v", err)
	}
	if got != "DE" {
		t.Errorf("ResolveCountry(Germany) = %s, want DE", got)
	}
}
