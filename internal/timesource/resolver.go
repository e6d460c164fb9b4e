package timesource

import (
	"context"
	"fmt"
	"time"

	"github.com/beevik/ntp"

	"github.com/iabetor/timebuddy/internal/logger"
)

// Source 标识时间的来源。
type Source string

const (
	// SourceNTP 时间来自网络时间服务器。
	SourceNTP Source = "ntp"
	// SourceLocal 网络时间不可用，回退到本机时钟。
	SourceLocal Source = "local"
)

// fallbackWarning 降级提示，随响应一并返回给调用方。
const fallbackWarning = "NTP unavailable, using local server time"

// Resolved 是一次时间解析的结果。
// Source 为 SourceLocal 时 Warning 一定非空。
type Resolved struct {
	// Time 解析得到的 UTC 时刻，保留亚秒精度。
	Time time.Time
	// Source 时间来源。
	Source Source
	// Server 成功应答的 NTP 服务器，仅 SourceNTP 时有值。
	Server string
	// Warning 降级说明，仅 SourceLocal 时有值。
	Warning string
}

// LocalInstant 本机时间信息，不经过网络。
type LocalInstant struct {
	Time     time.Time
	Timezone string
	Weekday  string
}

// QueryFunc 向单个 NTP 服务器查询当前 UTC 时刻。
// 抽象成函数类型以便测试时替换，不依赖真实网络。
type QueryFunc func(ctx context.Context, server string) (time.Time, error)

// Options 构造 Resolver 的显式配置。
type Options struct {
	// Servers 按优先级排列的服务器列表。
	Servers []string
	// Timeout 单次查询超时。
	Timeout time.Duration
	// Version NTP 协议版本，默认 3。
	Version int
	// Query 查询函数，为 nil 时使用 beevik/ntp 的真实实现。
	Query QueryFunc
}

// Resolver 负责解析当前时刻：网络时间优先，失败降级为本机时钟。
type Resolver struct {
	servers []string
	timeout time.Duration
	query   QueryFunc
}

// NewResolver 根据显式配置创建 Resolver。
func NewResolver(opts Options) *Resolver {
	servers := opts.Servers
	if len(servers) == 0 {
		servers = []string{"pool.ntp.org"}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	version := opts.Version
	if version == 0 {
		version = 3
	}

	query := opts.Query
	if query == nil {
		query = ntpQuery(timeout, version)
	}

	return &Resolver{
		servers: servers,
		timeout: timeout,
		query:   query,
	}
}

// ntpQuery 返回基于 beevik/ntp 的真实查询函数。
func ntpQuery(timeout time.Duration, version int) QueryFunc {
	return func(ctx context.Context, server string) (time.Time, error) {
		resp, err := ntp.QueryWithOptions(server, ntp.QueryOptions{
			Timeout: timeout,
			Version: version,
		})
		if err != nil {
			return time.Time{}, err
		}
		if err := resp.Validate(); err != nil {
			return time.Time{}, fmt.Errorf("NTP 应答校验失败: %w", err)
		}
		// 本机时钟加上测得的偏移即为校准后的时刻
		return time.Now().Add(resp.ClockOffset).UTC(), nil
	}
}

// Resolve 按优先级逐个尝试 NTP 服务器，全部失败时回退到本机时钟。
// 网络失败绝不向外抛错，只体现在 Warning 字段里。
func (r *Resolver) Resolve(ctx context.Context) Resolved {
	return r.resolve(ctx, r.servers)
}

// ResolveWith 将 server 插到服务器列表最前面后解析，server 为空等价于 Resolve。
func (r *Resolver) ResolveWith(ctx context.Context, server string) Resolved {
	if server == "" {
		return r.Resolve(ctx)
	}
	return r.resolve(ctx, append([]string{server}, r.servers...))
}

func (r *Resolver) resolve(ctx context.Context, servers []string) Resolved {
	for _, server := range servers {
		if server == "" {
			continue
		}

		t, err := r.queryOne(ctx, server)
		if err == nil {
			logger.Debugf("[timesource] NTP 查询成功: %s", server)
			return Resolved{Time: t, Source: SourceNTP, Server: server}
		}
		logger.Warnf("[timesource] NTP 查询 %s 失败: %v", server, err)

		if ctx.Err() != nil {
			break
		}
	}

	return Resolved{
		Time:    time.Now().UTC(),
		Source:  SourceLocal,
		Warning: fallbackWarning,
	}
}

// queryOne 在 goroutine 中执行一次查询，同时监听 ctx 取消。
func (r *Resolver) queryOne(ctx context.Context, server string) (time.Time, error) {
	type result struct {
		t   time.Time
		err error
	}

	ch := make(chan result, 1)
	go func() {
		t, err := r.query(ctx, server)
		ch <- result{t, err}
	}()

	select {
	case res := <-ch:
		return res.t, res.err
	case <-ctx.Done():
		return time.Time{}, ctx.Err()
	}
}

// LocalNow 返回本机时间、时区缩写和星期几，完全不走网络。
// 仅供本地时间工具使用。
func LocalNow() LocalInstant {
	now := time.Now()
	zone, _ := now.Zone()
	return LocalInstant{
		Time:     now,
		Timezone: zone,
		Weekday:  now.Weekday().String(),
	}
}
