package calendar

import (
	"fmt"
	"time"
)

// 波斯历（Jalali）：33 年周期的算术实现，
// 采用 jalaali 系实现通用的断点表，现代年份范围内与天文历一致。

// jalaliBreaks 周期断点表，有效范围 [-61, 3178)。
var jalaliBreaks = []int{
	-61, 9, 38, 199, 426, 686, 756, 818, 1111, 1181, 1210,
	1635, 2060, 2097, 2192, 2262, 2324, 2394, 2456, 3178,
}

var persianMonths = []struct {
	name  string
	farsi string
}{
	{"Farvardin", "فروردین"},
	{"Ordibehesht", "اردیبهشت"},
	{"Khordad", "خرداد"},
	{"Tir", "تیر"},
	{"Mordad", "مرداد"},
	{"Shahrivar", "شهریور"},
	{"Mehr", "مهر"},
	{"Aban", "آبان"},
	{"Azar", "آذر"},
	{"Dey", "دی"},
	{"Bahman", "بهمن"},
	{"Esfand", "اسفند"},
}

// 周日起的波斯语星期名，与 time.Weekday 下标对应。
var persianWeekdays = []struct {
	name  string
	farsi string
}{
	{"Yekshanbeh", "یکشنبه"},
	{"Doshanbeh", "دوشنبه"},
	{"Seshanbeh", "سه‌شنبه"},
	{"Chaharshanbeh", "چهارشنبه"},
	{"Panjshanbeh", "پنجشنبه"},
	{"Jomeh", "جمعه"},
	{"Shanbeh", "شنبه"},
}

// jalCal 计算指定波斯历年的闰情况和当年元旦（1 Farvardin）的公历 3 月日期。
func jalCal(jy int) (leap, march int, err error) {
	if jy < jalaliBreaks[0] || jy >= jalaliBreaks[len(jalaliBreaks)-1] {
		return 0, 0, fmt.Errorf("波斯历年份 %d 超出断点表范围", jy)
	}

	gy := jy + 621
	leapJ := -14
	jp := jalaliBreaks[0]
	var jump int
	for i := 1; i < len(jalaliBreaks); i++ {
		jm := jalaliBreaks[i]
		jump = jm - jp
		if jy < jm {
			break
		}
		leapJ += jump/33*8 + jump%33/4
		jp = jm
	}

	n := jy - jp
	leapJ += n/33*8 + (n%33+3)/4
	if jump%33 == 4 && jump-n == 4 {
		leapJ++
	}

	leapG := gy/4 - (gy/100+1)*3/4 - 150
	march = 20 + leapJ - leapG

	if jump-n < 6 {
		n = n - jump + (jump+4)/33*33
	}
	leap = ((n+1)%33 - 1) % 4
	if leap == -1 {
		leap = 4
	}
	return leap, march, nil
}

// jalaliFromGregorian 公历日期换算为波斯历年、月、日。
func jalaliFromGregorian(gy, gm, gd int) (jy, jm, jd int, err error) {
	j := gregorianToJDN(gy, gm, gd)

	jy = gy - 621
	leap, march, err := jalCal(jy)
	if err != nil {
		return 0, 0, 0, err
	}

	k := j - gregorianToJDN(gy, 3, march)
	if k >= 0 {
		if k <= 185 {
			return jy, 1 + k/31, 1 + k%31, nil
		}
		k -= 186
	} else {
		// 元旦之前属于上一个波斯历年；闰年判断用的仍是
		// 公历同年的 jalCal 结果，不是回退后的年份
		jy--
		k += 179
		if leap == 1 {
			k++
		}
	}
	return jy, 7 + k/30, 1 + k%30, nil
}

func convertPersian(t time.Time) (Result, error) {
	jy, jm, jd, err := jalaliFromGregorian(t.Year(), int(t.Month()), t.Day())
	if err != nil {
		return Result{}, err
	}

	m := persianMonths[jm-1]
	wd := persianWeekdays[int(t.Weekday())]

	// 英文转写: Jomeh 11 Esfand 1402
	primary := fmt.Sprintf("%s %d %s %d", wd.name, jd, m.name, jy)
	// 波斯文: جمعه ۱۱ اسفند ۱۴۰۲
	secondary := digitsIn(fmt.Sprintf("%s %d %s %d", wd.farsi, jd, m.farsi, jy), '۰')

	return Result{
		CalendarID: "persian",
		Primary:    primary,
		Secondary:  secondary,
		Extra: Fields{
			{Name: "month", Value: m.name},
			{Name: "weekday", Value: wd.name},
		},
	}, nil
}
