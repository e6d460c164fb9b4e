package calendar

import (
	"fmt"
	"strings"
	"time"
)

// 算术式希伯来历：由新月（molad）推算岁首，再施加推迟规则。
// 节日表为参考数据，海外/以色列口径的差异由构造 Registry 时的配置决定。

// hebrewEpochRD 希伯来历纪元对应的 R.D.（Rata Die）日数。
const hebrewEpochRD = -1373427

// hebrewIsLeap 19 年 7 闰。
func hebrewIsLeap(year int) bool {
	return (7*year+1)%19 < 7
}

// hebrewElapsedDays 从纪元到指定年 molad Tishrei 的天数（含 molad zaken 推迟）。
func hebrewElapsedDays(year int) int {
	months := (235*year - 234) / 19
	parts := 12084 + 13753*months
	day := months*29 + parts/25920
	if (3*(day+1))%7 < 3 {
		day++
	}
	return day
}

// hebrewNewYearRD 指定年 1 Tishrei 的 R.D.，含全部推迟规则。
func hebrewNewYearRD(year int) int {
	d := hebrewElapsedDays(year)
	delay := 0
	if hebrewElapsedDays(year+1)-d == 356 {
		delay = 2
	} else if d-hebrewElapsedDays(year-1) == 382 {
		delay = 1
	}
	return hebrewEpochRD + d + delay
}

type hebMonth struct {
	name   string
	hebrew string
	days   int
}

// hebrewYearMonths 按 Tishrei 起的顺序返回该年的月份表。
// Cheshvan/Kislev 的长度由年长（353/354/355/383/384/385）决定。
func hebrewYearMonths(year int) []hebMonth {
	yearLen := hebrewNewYearRD(year+1) - hebrewNewYearRD(year)

	cheshvan := 29
	if yearLen%10 == 5 {
		cheshvan = 30
	}
	kislev := 30
	if yearLen%10 == 3 {
		kislev = 29
	}

	months := []hebMonth{
		{"Tishrei", "תשרי", 30},
		{"Cheshvan", "חשוון", cheshvan},
		{"Kislev", "כסלו", kislev},
		{"Tevet", "טבת", 29},
		{"Shevat", "שבט", 30},
	}
	if hebrewIsLeap(year) {
		months = append(months,
			hebMonth{"Adar I", "אדר א׳", 30},
			hebMonth{"Adar II", "אדר ב׳", 29})
	} else {
		months = append(months, hebMonth{"Adar", "אדר", 29})
	}
	return append(months,
		hebMonth{"Nisan", "ניסן", 30},
		hebMonth{"Iyar", "אייר", 29},
		hebMonth{"Sivan", "סיוון", 30},
		hebMonth{"Tammuz", "תמוז", 29},
		hebMonth{"Av", "אב", 30},
		hebMonth{"Elul", "אלול", 29})
}

// hebrewFromRD 将 R.D. 换算为希伯来历的年和月内日。
func hebrewFromRD(rd int) (year int, month hebMonth, day int) {
	// 先粗估年份再校正，岁首比较保证收敛
	year = (rd-hebrewEpochRD)*19/6940 + 1
	for rd >= hebrewNewYearRD(year+1) {
		year++
	}
	for rd < hebrewNewYearRD(year) {
		year--
	}

	offset := rd - hebrewNewYearRD(year)
	for _, m := range hebrewYearMonths(year) {
		if offset < m.days {
			return year, m, offset + 1
		}
		offset -= m.days
	}
	// 月份表覆盖全年，不可达
	panic("hebrew: day offset beyond year length")
}

// gematriaLetters 字母数值，按降序排列。
var gematriaLetters = []struct {
	value  int
	letter string
}{
	{400, "ת"}, {300, "ש"}, {200, "ר"}, {100, "ק"},
	{90, "צ"}, {80, "פ"}, {70, "ע"}, {60, "ס"}, {50, "נ"},
	{40, "מ"}, {30, "ל"}, {20, "כ"}, {10, "י"},
	{9, "ט"}, {8, "ח"}, {7, "ז"}, {6, "ו"}, {5, "ה"},
	{4, "ד"}, {3, "ג"}, {2, "ב"}, {1, "א"},
}

// gematria 将数字写成希伯来字母记数，15/16 按惯例写作 ט״ו/ט״ז。
// 多于一个字母时在末字母前插入 gershayim（״），单字母后加 geresh（׳）。
func gematria(n int) string {
	var letters []string
	for n > 0 {
		if n == 15 {
			letters = append(letters, "ט", "ו")
			break
		}
		if n == 16 {
			letters = append(letters, "ט", "ז")
			break
		}
		for _, g := range gematriaLetters {
			if g.value <= n {
				letters = append(letters, g.letter)
				n -= g.value
				break
			}
		}
	}

	switch len(letters) {
	case 0:
		return ""
	case 1:
		return letters[0] + "׳"
	default:
		last := len(letters) - 1
		return strings.Join(letters[:last], "") + "״" + letters[last]
	}
}

// hebrewHolidays 返回落在该希伯来历日期上的节日名（可能多个，可能为空）。
func hebrewHolidays(year int, month string, day int, rd int, variant HebrewHolidayVariant) []string {
	diaspora := variant == HolidaysDiaspora
	var hs []string

	switch month {
	case "Tishrei":
		switch day {
		case 1:
			hs = append(hs, "Rosh Hashanah")
		case 2:
			hs = append(hs, "Rosh Hashanah II")
		case 10:
			hs = append(hs, "Yom Kippur")
		case 15:
			hs = append(hs, "Sukkot")
		case 16:
			if diaspora {
				hs = append(hs, "Sukkot II")
			} else {
				hs = append(hs, "Chol HaMoed Sukkot")
			}
		case 17, 18, 19, 20:
			hs = append(hs, "Chol HaMoed Sukkot")
		case 21:
			hs = append(hs, "Hoshana Rabbah")
		case 22:
			hs = append(hs, "Shemini Atzeret")
			if !diaspora {
				hs = append(hs, "Simchat Torah")
			}
		case 23:
			if diaspora {
				hs = append(hs, "Simchat Torah")
			}
		}
	case "Shevat":
		if day == 15 {
			hs = append(hs, "Tu BiShvat")
		}
	case "Adar", "Adar II":
		switch day {
		case 14:
			hs = append(hs, "Purim")
		case 15:
			hs = append(hs, "Shushan Purim")
		}
	case "Adar I":
		if day == 14 {
			hs = append(hs, "Purim Katan")
		}
	case "Nisan":
		switch day {
		case 15:
			hs = append(hs, "Pesach")
		case 16:
			if diaspora {
				hs = append(hs, "Pesach II")
			} else {
				hs = append(hs, "Chol HaMoed Pesach")
			}
		case 17, 18, 19, 20:
			hs = append(hs, "Chol HaMoed Pesach")
		case 21:
			hs = append(hs, "Pesach VII")
		case 22:
			if diaspora {
				hs = append(hs, "Pesach VIII")
			}
		}
	case "Iyar":
		if day == 18 {
			hs = append(hs, "Lag BaOmer")
		}
	case "Sivan":
		switch day {
		case 6:
			hs = append(hs, "Shavuot")
		case 7:
			if diaspora {
				hs = append(hs, "Shavuot II")
			}
		}
	case "Av":
		switch day {
		case 9:
			hs = append(hs, "Tisha B'Av")
		case 15:
			hs = append(hs, "Tu B'Av")
		}
	}

	// 光明节跨 Kislev/Tevet 月界，按距 25 Kislev 的偏移判断
	months := hebrewYearMonths(year)
	chanukahStart := hebrewNewYearRD(year) + months[0].days + months[1].days + 24
	if off := rd - chanukahStart; off >= 0 && off < 8 {
		hs = append(hs, fmt.Sprintf("Chanukah (day %d)", off+1))
	}

	return hs
}

// hebrewConverter 按节日口径生成希伯来历转换函数。
func hebrewConverter(variant HebrewHolidayVariant) convertFunc {
	return func(t time.Time) (Result, error) {
		rd := jdnOf(t) - 1721425
		year, month, day := hebrewFromRD(rd)

		primary := fmt.Sprintf("%d %s %d", day, month.name, year)
		// 年份按惯例省略千位
		secondary := fmt.Sprintf("%s %s %s", gematria(day), month.hebrew, gematria(year%1000))

		extra := Fields{
			{Name: "month", Value: month.name},
		}
		if variant != HolidaysOff {
			if hs := hebrewHolidays(year, month.name, day, rd, variant); len(hs) > 0 {
				extra = append(extra, Field{Name: "holidays", Value: strings.Join(hs, ", ")})
			}
		}

		return Result{
			CalendarID: "hebrew",
			Primary:    primary,
			Secondary:  secondary,
			Extra:      extra,
		}, nil
	}
}
