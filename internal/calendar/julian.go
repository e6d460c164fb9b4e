package calendar

import "time"

// gregorianToJDN 计算公历日期的儒略日数（JDN）。
// 各非公历历法都以 JDN 作为中间量做换算。
func gregorianToJDN(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// jdnOf 取 UTC 时刻对应日期的 JDN。
func jdnOf(t time.Time) int {
	return gregorianToJDN(t.Year(), int(t.Month()), t.Day())
}

// digitsIn 将字符串里的 ASCII 数字逐个替换为 zero 起始的本地数字。
// 阿拉伯-印度数字 zero 为 '٠'（U+0660），波斯数字为 '۰'（U+06F0）。
func digitsIn(s string, zero rune) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, zero+(r-'0'))
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}
