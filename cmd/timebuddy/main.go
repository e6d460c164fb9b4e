package main

import (
	"flag"
	"fmt"
	"os"
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

func main() {
	configPath := flag.String("config", "", "配置文件路径（可选，缺省使用内置默认值）")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
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

	logger.Infof("[main] TimeBuddy %s 启动 (stdio, ntp_servers=%v)", version, cfg.NTP.Servers)

	srv := mcpserver.New(buildRegistry(cfg, tools.NewLocalTimeTool()), "timebuddy", version)

	if err := mcpserver.ServeStdio(srv); err != nil {
		logger.Errorf("[main] 服务异常退出: %v", err)
		os.Exit(1)
	}
	logger.Infof("[main] TimeBuddy 已停止")
}

// loadConfig 读取配置文件；未指定路径时使用全默认配置，零配置即可运行。
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// buildRegistry 组装全部工具。localTool 由变体决定
// （stdio 用 get_local_time，web 用 get_server_time）。
func buildRegistry(cfg *config.Config, localTool tools.Tool) *tools.Registry {
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
	reg.Register(localTool)
	reg.Register(tools.NewUTCTool(resolver))
	reg.Register(tools.NewCurrentTimeTool(resolver, calendars))
	reg.Register(tools.NewGetHolidaysTool(holidayClient))
	reg.Register(tools.NewIsHolidayTool(holidayClient))
	return reg
}
