package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iabetor/timebuddy/internal/calendar"
	"github.com/iabetor/timebuddy/internal/config"
	"github.com/iabetor/timebuddy/internal/holidays"
	"github.com/iabetor/timebuddy/internal/logger"
	"github.com/iabetor/timebuddy/internal/mcpserver"
	"github.com/iabetor/timebuddy/internal/timesource"
	"github.com/iabetor/timebuddy/internal/tools"
)

const version = "1.0.0"

// HTTP 变体：以无状态 Streamable HTTP 暴露同一套工具，
// 本地时间工具改名为 get_server_time（对远端客户端而言是服务器时间）。
func main() {
	configPath := flag.String("config", "", "配置文件路径（可选，缺省使用内置默认值）")
	addr := flag.String("addr", "", "监听地址（覆盖配置中的 web.addr）")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath == "" {
		cfg = config.Default()
	} else {
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
			os.Exit(1)
		}
	}
	if *addr != "" {
		cfg.Web.Addr = *addr
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	resolver := timesource.NewResolver(timesource.Options{
		Servers: cfg.NTP.Servers,
		Timeout: time.Duration(cfg.NTP.TimeoutSeconds) * time.Second,
		Version: cfg.NTP.Version,
	})
	calendars := calendar.NewRegistry(calendar.Options{
		HebrewHolidays: calendar.HebrewHolidayVariant(cfg.Calendar.HebrewHolidays),
	})
	holidayClient := holidays.NewClient(cfg.Holidays.APIURL, cfg.Holidays.CacheTTLMinutes)

	reg := tools.NewRegistry()
	reg.Register(tools.NewServerTimeTool())
	reg.Register(tools.NewUTCTool(resolver))
	reg.Register(tools.NewCurrentTimeTool(resolver, calendars))
	reg.Register(tools.NewGetHolidaysTool(holidayClient))
	reg.Register(tools.NewIsHolidayTool(holidayClient))

	srv := mcpserver.New(reg, "timebuddy", version)
	httpSrv := mcpserver.NewStreamableHTTP(srv)

	logger.Infof("[main] TimeBuddy %s 启动 (http, addr=%s)", version, cfg.Web.Addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.Start(cfg.Web.Addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Infof("[main] 收到信号 %v，开始关闭", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			logger.Errorf("[main] 关闭失败: %v", err)
		}
	case err := <-errCh:
		if err != nil {
			logger.Errorf("[main] 服务异常退出: %v", err)
			os.Exit(1)
		}
	}
	logger.Infof("[main] TimeBuddy 已停止")
}
