package calendar

import (
	"strings"
	"time"

	lunarcal "github.com/6tail/lunar-go/calendar"
	"github.com/mozillazg/go-pinyin"
)

// 中国农历，换算交给 lunar-go，主渲染为农历日期的拼音转写。

var pinyinArgs = func() pinyin.Args {
	a := pinyin.NewArgs()
	// 非汉字字符原样保留
	a.Fallback = func(r rune, a pinyin.Args) []string {
		return []string{string(r)}
	}
	return a
}()

// toPinyin 将汉字串转写为空格分隔的拼音。
func toPinyin(s string) string {
	parts := pinyin.Pinyin(s, pinyinArgs)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) > 0 && strings.TrimSpace(p[0]) != "" {
			out = append(out, p[0])
		}
	}
	return strings.Join(out, " ")
}

func convertChinese(t time.Time) (Result, error) {
	solar := lunarcal.NewSolarFromDate(t)
	lunar := solar.GetLunar()

	dateStr := lunar.String()

	extra := Fields{
		{Name: "year_ganzhi", Value: lunar.GetYearInGanZhi()},
		{Name: "zodiac", Value: lunar.GetYearShengXiao()},
	}

	var festivals []string
	if fs := lunar.GetFestivals(); fs != nil {
		for e := fs.Front(); e != nil; e = e.Next() {
			if s, ok := e.Value.(string); ok {
				festivals = append(festivals, s)
			}
		}
	}
	if len(festivals) > 0 {
		extra = append(extra, Field{Name: "festivals", Value: strings.Join(festivals, ", ")})
	}

	return Result{
		CalendarID: "chinese",
		Primary:    toPinyin(dateStr),
		Secondary:  dateStr,
		Extra:      extra,
	}, nil
}
