package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/iabetor/timebuddy/internal/calendar"
)

// 日历换算检查工具：对给定时刻跑一遍全部日历换算器并打印结果，
// 便于人工核对各历法输出。
func main() {
	dateStr := flag.String("date", "", "UTC 时刻，RFC3339 格式（缺省为当前时间）")
	variant := flag.String("hebrew-holidays", "diaspora", "希伯来历节日口径: diaspora/israel/off")
	flag.Parse()

	t := time.Now().UTC()
	if *dateStr != "" {
		parsed, err := time.Parse(time.RFC3339, *dateStr)
		if err != nil {
			log.Fatalf("日期解析失败: %v", err)
		}
		t = parsed.UTC()
	}

	reg := calendar.NewRegistry(calendar.Options{
		HebrewHolidays: calendar.HebrewHolidayVariant(*variant),
	})

	fmt.Printf("=== 日历换算检查: %s ===\n\n", t.Format(time.RFC3339))

	for _, id := range reg.Known() {
		res, err := reg.Convert(t, id)
		if err != nil {
			fmt.Printf("[%s] 换算失败: %v\n\n", id, err)
			continue
		}
		fmt.Printf("[%s]\n", id)
		fmt.Printf("  主表示: %s\n", res.Primary)
		if res.Secondary != "" {
			fmt.Printf("  副表示: %s\n", res.Secondary)
		}
		for _, f := range res.Extra {
			fmt.Printf("  %s: %s\n", f.Name, f.Value)
		}
		fmt.Println()
	}

	fmt.Println("=== 检查完成 ===")
}
