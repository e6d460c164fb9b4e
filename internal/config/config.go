package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config 是 TimeBuddy 的顶层配置结构。
type Config struct {
	NTP      NTPConfig      `yaml:"ntp"`
	Calendar CalendarConfig `yaml:"calendar"`
	Holidays HolidaysConfig `yaml:"holidays"`
	Web      WebConfig      `yaml:"web"`
	Log      LogConfig      `yaml:"log"`
}

// NTPConfig 网络时间查询配置。
type NTPConfig struct {
	// Servers 按优先级排列的 NTP 服务器列表，逐个尝试，先成功者胜出。
	Servers []string `yaml:"servers"`
	// TimeoutSeconds 单次查询的超时时间（秒）。
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// Version NTP 协议版本。
	Version int `yaml:"version"`
}

// CalendarConfig 历法转换配置。
type CalendarConfig struct {
	// HebrewHolidays 希伯来历节日口径: diaspora（海外）、israel（以色列）、off（关闭）。
	HebrewHolidays string `yaml:"hebrew_holidays"`
}

// HolidaysConfig 公共假日查询（Nager.Date API）配置。
type HolidaysConfig struct {
	APIURL          string `yaml:"api_url"`
	CacheTTLMinutes int    `yaml:"cache_ttl_minutes"`
}

// WebConfig Web（streamable HTTP）变体的监听配置。
type WebConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

// Load 读取 YAML 配置文件并返回 Config。
// 支持 ${VAR_NAME} 形式的环境变量展开。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}

	// 展开环境变量，如 ${TIMEBUDDY_NTP_SERVER}
	expanded := os.Expand(string(data), func(key string) string {
		return os.Getenv(key)
	})

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}

	setDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default 返回一份全默认值的配置，无配置文件时可直接运行。
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// setDefaults 为未设置的配置项填充默认值。
func setDefaults(cfg *Config) {
	if len(cfg.NTP.Servers) == 0 {
		cfg.NTP.Servers = []string{"pool.ntp.org"}
	}
	if cfg.NTP.TimeoutSeconds == 0 {
		cfg.NTP.TimeoutSeconds = 5
	}
	if cfg.NTP.Version == 0 {
		cfg.NTP.Version = 3
	}
	if cfg.Calendar.HebrewHolidays == "" {
		cfg.Calendar.HebrewHolidays = "diaspora"
	}
	if cfg.Holidays.APIURL == "" {
		cfg.Holidays.APIURL = "https://date.nager.at/api/v3"
	}
	if cfg.Holidays.CacheTTLMinutes == 0 {
		cfg.Holidays.CacheTTLMinutes = 360
	}
	if cfg.Web.Addr == "" {
		cfg.Web.Addr = "0.0.0.0:8000"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	// 去除服务器地址两端可能的空白（环境变量展开后常见）
	for i, s := range cfg.NTP.Servers {
		cfg.NTP.Servers[i] = strings.TrimSpace(s)
	}
}

// validate 检查配置取值是否合法。
func validate(cfg *Config) error {
	switch cfg.Calendar.HebrewHolidays {
	case "diaspora", "israel", "off":
	default:
		return fmt.Errorf("calendar.hebrew_holidays 取值非法: %q（应为 diaspora/israel/off）", cfg.Calendar.HebrewHolidays)
	}
	if cfg.NTP.TimeoutSeconds < 0 {
		return fmt.Errorf("ntp.timeout_seconds 不能为负数: %d", cfg.NTP.TimeoutSeconds)
	}
	if cfg.NTP.Version < 2 || cfg.NTP.Version > 4 {
		return fmt.Errorf("ntp.version 取值非法: %d（应为 2-4）", cfg.NTP.Version)
	}
	return nil
}
