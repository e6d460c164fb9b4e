package calendar

import (
	"fmt"
	"time"
)

// Era 一个日本年号及其起始日。
type Era struct {
	Name  string
	Kanji string
	Year  int // 起始公历年（即该年号元年）
	Month int
	Day   int
}

// japaneseEras 年号参考表，按起始日升序。
// 明治以前的年号不在维护范围内，早于表首的日期按转换错误处理。
var japaneseEras = []Era{
	{"Meiji", "明治", 1868, 10, 23},
	{"Taisho", "大正", 1912, 7, 30},
	{"Showa", "昭和", 1926, 12, 25},
	{"Heisei", "平成", 1989, 1, 8},
	{"Reiwa", "令和", 2019, 5, 1},
}

// eraFor 返回日期所属的年号，早于明治返回 nil。
func eraFor(year, month, day int) *Era {
	key := year*10000 + month*100 + day
	for i := len(japaneseEras) - 1; i >= 0; i-- {
		e := &japaneseEras[i]
		if key >= e.Year*10000+e.Month*100+e.Day {
			return e
		}
	}
	return nil
}

func convertJapanese(t time.Time) (Result, error) {
	era := eraFor(t.Year(), int(t.Month()), t.Day())
	if era == nil {
		return Result{}, fmt.Errorf("日期早于明治元年（1868-10-23），年号表不覆盖")
	}

	eraYear := t.Year() - era.Year + 1

	// 罗马字: Reiwa 7, January 15, 14:00
	primary := fmt.Sprintf("%s %d, %s %02d, %02d:%02d",
		era.Name, eraYear, t.Month().String(), t.Day(), t.Hour(), t.Minute())
	// 汉字: 令和7年01月15日 14時
	secondary := fmt.Sprintf("%s%d年%02d月%02d日 %02d時",
		era.Kanji, eraYear, int(t.Month()), t.Day(), t.Hour())

	return Result{
		CalendarID: "japanese",
		Primary:    primary,
		Secondary:  secondary,
		Extra: Fields{
			{Name: "era", Value: era.Name},
			{Name: "era_kanji", Value: era.Kanji},
		},
	}, nil
}
