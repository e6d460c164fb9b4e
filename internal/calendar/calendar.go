// Package calendar 将一个 UTC 时刻转换为各种历法的表示。
// 所有转换都是输入时刻的纯函数，无任何可变状态。
package calendar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Field 一条有名字的附加信息。
type Field struct {
	Name  string
	Value string
}

// Fields 按插入顺序排列的附加信息集合，序列化为保持顺序的 JSON 对象。
type Fields []Field

// MarshalJSON 按插入顺序输出 JSON 对象。
func (fs Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fs {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON 按出现顺序读回 JSON 对象，是 MarshalJSON 的逆操作。
func (fs *Fields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("calendar: Fields expects a JSON object, got %v", tok)
	}
	out := Fields{}
	for dec.More() {
		nameTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := nameTok.(string)
		if !ok {
			return fmt.Errorf("calendar: Fields expects string keys, got %v", nameTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return err
		}
		out = append(out, Field{Name: name, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*fs = out
	return nil
}

// Result 单个历法的转换结果。
type Result struct {
	// CalendarID 历法标识符。
	CalendarID string `json:"calendar_id"`
	// Primary 主要渲染（拉丁转写或数字）。
	Primary string `json:"primary_rendering"`
	// Secondary 非拉丁文字渲染，部分历法没有。
	Secondary string `json:"secondary_rendering,omitempty"`
	// Extra 附加信息（月份名、节日等），保持插入顺序。
	Extra Fields `json:"extra_fields,omitempty"`
}

// UnsupportedError 请求了未知的历法标识符。
type UnsupportedError struct {
	ID string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported calendar: %s", e.ID)
}

// HebrewHolidayVariant 希伯来历节日口径。
type HebrewHolidayVariant string

const (
	// HolidaysDiaspora 海外口径（双日节期）。
	HolidaysDiaspora HebrewHolidayVariant = "diaspora"
	// HolidaysIsrael 以色列口径。
	HolidaysIsrael HebrewHolidayVariant = "israel"
	// HolidaysOff 不查询节日。
	HolidaysOff HebrewHolidayVariant = "off"
)

// Options 构造 Registry 的配置。
type Options struct {
	// HebrewHolidays 希伯来历节日口径，默认 diaspora。
	HebrewHolidays HebrewHolidayVariant
}

type convertFunc func(t time.Time) (Result, error)

// Registry 历法标识符到转换函数的固定查找表。
type Registry struct {
	converters map[string]convertFunc
	order      []string
}

// NewRegistry 创建包含全部受支持历法的 Registry。
func NewRegistry(opts Options) *Registry {
	variant := opts.HebrewHolidays
	if variant == "" {
		variant = HolidaysDiaspora
	}

	r := &Registry{converters: make(map[string]convertFunc)}
	r.register("unix", convertUnix)
	r.register("isodate", convertISODate)
	r.register("hijri", convertHijri)
	r.register("japanese", convertJapanese)
	r.register("hebrew", hebrewConverter(variant))
	r.register("persian", convertPersian)
	r.register("chinese", convertChinese)
	return r
}

func (r *Registry) register(id string, fn convertFunc) {
	r.converters[id] = fn
	r.order = append(r.order, id)
}

// Convert 将 UTC 时刻转换为指定历法的表示。
// 未知标识符返回 *UnsupportedError，由调用方降级为单项错误。
func (r *Registry) Convert(t time.Time, id string) (Result, error) {
	fn, ok := r.converters[id]
	if !ok {
		return Result{}, &UnsupportedError{ID: id}
	}
	// 转换前统一为 UTC
	return fn(t.UTC())
}

// Known 返回全部受支持的历法标识符，顺序固定。
func (r *Registry) Known() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// convertUnix 自 Unix 纪元（1970-01-01T00:00:00Z）起的整秒数，向零截断。
func convertUnix(t time.Time) (Result, error) {
	secs := t.Unix()
	// Unix() 向负无穷取整；纪元前的非整秒时刻需修正为向零截断
	if secs < 0 && t.Nanosecond() > 0 {
		secs++
	}
	return Result{
		CalendarID: "unix",
		Primary:    strconv.FormatInt(secs, 10),
	}, nil
}

// convertISODate ISO-8601 周日期，格式 YYYY-Www-D（周一为 1）。
func convertISODate(t time.Time) (Result, error) {
	year, week := t.ISOWeek()
	day := int(t.Weekday())
	if day == 0 {
		day = 7
	}
	return Result{
		CalendarID: "isodate",
		Primary:    fmt.Sprintf("%d-W%02d-%d", year, week, day),
	}, nil
}
