package timesource

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errUnreachable = errors.New("server unreachable")

func fixedQuery(t time.Time) QueryFunc {
	return func(ctx context.Context, server string) (time.Time, error) {
		return t, nil
	}
}

func failingQuery() QueryFunc {
	return func(ctx context.Context, server string) (time.Time, error) {
		return time.Time{}, errUnreachable
	}
}

func TestResolve_NTPSuccess(t *testing.T) {
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	r := NewResolver(Options{
		Servers: []string{"ntp.example.com"},
		Query:   fixedQuery(want),
	})

	got := r.Resolve(context.Background())
	if got.Source != SourceNTP {
		t.Errorf("Source = %s, want %s", got.Source, SourceNTP)
	}
	if !got.Time.Equal(want) {
		t.Errorf("Time = %v, want %v", got.Time, want)
	}
	if got.Server != "ntp.example.com" {
		t.Errorf("Server = %s, want ntp.example.com", got.Server)
	}
	if got.Warning != "" {
		t.Errorf("成功时不应有警告: %q", got.Warning)
	}
}

func TestResolve_AllServersFail(t *testing.T) {
	r := NewResolver(Options{
		Servers: []string{"a.example.com", "b.example.com"},
		Query:   failingQuery(),
	})

	before := time.Now().UTC()
	got := r.Resolve(context.Background())
	after := time.Now().UTC()

	if got.Source != SourceLocal {
		t.Errorf("Source = %s, want %s", got.Source, SourceLocal)
	}
	// 不变式: 降级时必须带警告
	if got.Warning == "" {
		t.Error("降级时 Warning 不应为空")
	}
	if got.Time.Before(before) || got.Time.After(after) {
		t.Errorf("降级时应返回本机当前时刻, got %v", got.Time)
	}
	if got.Time.Location() != time.UTC {
		t.Error("返回的时刻应为 UTC")
	}
}

func TestResolve_FallbackToSecondServer(t *testing.T) {
	want := time.Date(2024, 3, 1, 12, 30, 0, 500_000_000, time.UTC)
	var attempts []string
	query := func(ctx context.Context, server string) (time.Time, error) {
		attempts = append(attempts, server)
		if server == "bad.example.com" {
			return time.Time{}, errUnreachable
		}
		return want, nil
	}

	r := NewResolver(Options{
		Servers: []string{"bad.example.com", "good.example.com"},
		Query:   query,
	})

	got := r.Resolve(context.Background())
	if got.Source != SourceNTP {
		t.Fatalf("Source = %s, want %s", got.Source, SourceNTP)
	}
	if got.Server != "good.example.com" {
		t.Errorf("Server = %s, want good.example.com", got.Server)
	}
	if len(attempts) != 2 || attempts[0] != "bad.example.com" {
		t.Errorf("应按固定优先级依次尝试, got %v", attempts)
	}
}

func TestResolveWith_ServerOverride(t *testing.T) {
	var attempts []string
	query := func(ctx context.Context, server string) (time.Time, error) {
		attempts = append(attempts, server)
		return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), nil
	}

	r := NewResolver(Options{
		Servers: []string{"default.example.com"},
		Query:   query,
	})

	got := r.ResolveWith(context.Background(), "override.example.com")
	if got.Server != "override.example.com" {
		t.Errorf("Server = %s, want override.example.com", got.Server)
	}
	if len(attempts) != 1 {
		t.Errorf("首选服务器成功后不应再尝试其它服务器: %v", attempts)
	}
}

func TestResolveWith_EmptyServer(t *testing.T) {
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	r := NewResolver(Options{
		Servers: []string{"default.example.com"},
		Query:   fixedQuery(want),
	})

	got := r.ResolveWith(context.Background(), "")
	if got.Server != "default.example.com" {
		t.Errorf("空覆写应使用默认服务器, got %s", got.Server)
	}
}

func TestResolve_ContextCancelled(t *testing.T) {
	started := make(chan struct{})
	query := func(ctx context.Context, server string) (time.Time, error) {
		close(started)
		<-ctx.Done()
		return time.Time{}, ctx.Err()
	}

	r := NewResolver(Options{
		Servers: []string{"slow.example.com", "never-tried.example.com"},
		Query:   query,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	got := r.Resolve(ctx)
	// 取消后仍要给出可用的时间，只是降级
	if got.Source != SourceLocal {
		t.Errorf("Source = %s, want %s", got.Source, SourceLocal)
	}
	if got.Warning == "" {
		t.Error("降级时 Warning 不应为空")
	}
}

func TestNewResolver_Defaults(t *testing.T) {
	r := NewResolver(Options{})
	if len(r.servers) != 1 || r.servers[0] != "pool.ntp.org" {
		t.Errorf("默认服务器应为 pool.ntp.org, got %v", r.servers)
	}
	if r.timeout != 5*time.Second {
		t.Errorf("默认超时应为 5s, got %v", r.timeout)
	}
}

func TestLocalNow(t *testing.T) {
	got := LocalNow()
	if got.Time.IsZero() {
		t.Error("Time 不应为零值")
	}
	if got.Weekday == "" {
		t.Error("Weekday 不应为空")
	}
	if got.Weekday != got.Time.Weekday().String() {
		t.Errorf("Weekday = %s 与 Time 不一致", got.Weekday)
	}
}
