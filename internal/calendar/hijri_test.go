package calendar

import (
	"testing"
	"time"
)

func TestHijriFromJDN(t *testing.T) {
	tests := []struct {
		gy, gm, gd       int
		year, month, day int
	}{
		// 1 Muharram AH 1（民用纪元，公历 622-07-19）
		{622, 7, 19, 1, 1, 1},
		{1970, 1, 1, 1389, 10, 22},
		{2024, 3, 1, 1445, 8, 20},
		// 表算式 1445 年斋月首日
		{2024, 3, 11, 1445, 9, 1},
	}

	for _, tt := range tests {
		y, m, d := hijriFromJDN(gregorianToJDN(tt.gy, tt.gm, tt.gd))
		if y != tt.year || m != tt.month || d != tt.day {
			t.Errorf("hijri(%04d-%02d-%02d) = %d/%d/%d, want %d/%d/%d",
				tt.gy, tt.gm, tt.gd, y, m, d, tt.year, tt.month, tt.day)
		}
	}
}

func TestConvertHijri(t *testing.T) {
	got, err := convertHijri(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("convertHijri failed: %v", err)
	}

	if got.Primary != "20 Sha'ban 1445 AH" {
		t.Errorf("Primary = %q, want \"20 Sha'ban 1445 AH\"", got.Primary)
	}
	if got.Secondary != "٢٠ شعبان ١٤٤٥ هـ" {
		t.Errorf("Secondary = %q", got.Secondary)
	}

	extras := map[string]string{}
	for _, f := range got.Extra {
		extras[f.Name] = f.Value
	}
	if extras["month"] != "Sha'ban" {
		t.Errorf("month = %q, want Sha'ban", extras["month"])
	}
	// 2024-03-01 是周五
	if extras["weekday"] != "al-Jum'ah" {
		t.Errorf("weekday = %q, want al-Jum'ah", extras["weekday"])
	}
}

func TestHijriMonthLengths(t *testing.T) {
	// 平年奇数月 30 天、偶数月 29 天，闰年 12 月为 30 天
	if hijriMonthDays(1, 1445) != 30 {
		t.Error("Muharram 应为 30 天")
	}
	if hijriMonthDays(2, 1445) != 29 {
		t.Error("Safar 应为 29 天")
	}
	// AH 1445: 1445 = 48*30 + 5，周期年 5 是闰年
	if hijriMonthDays(12, 5) != 30 {
		t.Error("闰年 Dhu al-Hijjah 应为 30 天")
	}
	if hijriMonthDays(12, 1) != 29 {
		t.Error("平年 Dhu al-Hijjah 应为 29 天")
	}
}

func TestHijri_Continuity(t *testing.T) {
	// 连续的公历日期必须映射为连续的伊斯兰历日期，月/年边界无跳变
	py, pm, pd := hijriFromJDN(gregorianToJDN(2023, 5, 31))
	start := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 400; i++ {
		d := start.AddDate(0, 0, i)
		y, m, dd := hijriFromJDN(jdnOf(d))

		sameMonth := y == py && m == pm && dd == pd+1
		nextMonth := y == py && m == pm+1 && dd == 1 && pd == hijriMonthDays(pm, ((py-1)%30)+1)
		nextYear := y == py+1 && m == 1 && dd == 1 && pm == 12
		if !sameMonth && !nextMonth && !nextYear {
			t.Fatalf("%s: %d/%d/%d 与前一天 %d/%d/%d 不连续",
				d.Format("2006-01-02"), y, m, dd, py, pm, pd)
		}
		py, pm, pd = y, m, dd
	}
}
