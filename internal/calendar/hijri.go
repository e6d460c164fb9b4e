package calendar

import (
	"fmt"
	"time"
)

// 表算式伊斯兰历（民用纪元）。
// 纪元为公元 622-07-16（儒略历）对应的 JDN，30 年周期共 10631 天，
// 其中第 {2,5,7,10,13,16,18,21,24,26,29} 年为闰年（355 天）。
// 与观测历可能相差 ±1 天。

const hijriEpochJDN = 1948440

var hijriLeapYears = map[int]bool{
	2: true, 5: true, 7: true, 10: true, 13: true, 16: true,
	18: true, 21: true, 24: true, 26: true, 29: true,
}

var hijriMonths = []struct {
	name   string
	arabic string
}{
	{"Muharram", "محرم"},
	{"Safar", "صفر"},
	{"Rabi' al-Awwal", "ربيع الأول"},
	{"Rabi' al-Thani", "ربيع الآخر"},
	{"Jumada al-Awwal", "جمادى الأولى"},
	{"Jumada al-Thani", "جمادى الآخرة"},
	{"Rajab", "رجب"},
	{"Sha'ban", "شعبان"},
	{"Ramadan", "رمضان"},
	{"Shawwal", "شوال"},
	{"Dhu al-Qa'dah", "ذو القعدة"},
	{"Dhu al-Hijjah", "ذو الحجة"},
}

// 周日起的阿拉伯语星期名，与 time.Weekday 下标对应。
var hijriWeekdays = []struct {
	name   string
	arabic string
}{
	{"al-Ahad", "الأحد"},
	{"al-Ithnayn", "الاثنين"},
	{"al-Thulatha", "الثلاثاء"},
	{"al-Arbi'a", "الأربعاء"},
	{"al-Khamis", "الخميس"},
	{"al-Jum'ah", "الجمعة"},
	{"al-Sabt", "السبت"},
}

func hijriMonthDays(month, year int) int {
	if month%2 == 1 || (month == 12 && hijriLeapYears[year]) {
		return 30
	}
	return 29
}

// hijriFromJDN 将 JDN 换算为表算式伊斯兰历的年、月、日。
func hijriFromJDN(jdn int) (year, month, day int) {
	d := jdn - hijriEpochJDN
	cycle := d / 10631
	rem := d % 10631
	if rem < 0 {
		cycle--
		rem += 10631
	}

	year = 1
	for {
		length := 354
		if hijriLeapYears[year] {
			length = 355
		}
		if rem < length {
			break
		}
		rem -= length
		year++
	}

	month = 1
	for {
		length := hijriMonthDays(month, year)
		if rem < length {
			break
		}
		rem -= length
		month++
	}

	return cycle*30 + year, month, rem + 1
}

func convertHijri(t time.Time) (Result, error) {
	year, month, day := hijriFromJDN(jdnOf(t))
	if year < 1 {
		return Result{}, fmt.Errorf("日期早于伊斯兰历纪元，无法转换")
	}

	m := hijriMonths[month-1]
	wd := hijriWeekdays[int(t.Weekday())]

	primary := fmt.Sprintf("%d %s %d AH", day, m.name, year)
	secondary := digitsIn(fmt.Sprintf("%d %s %d هـ", day, m.arabic, year), '٠')

	return Result{
		CalendarID: "hijri",
		Primary:    primary,
		Secondary:  secondary,
		Extra: Fields{
			{Name: "month", Value: m.name},
			{Name: "weekday", Value: wd.name},
		},
	}, nil
}
