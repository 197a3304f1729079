// Package trivia renders the "today's info" blurb shown next to the
// validation results: an approximate rokuyō, the current solar term,
// and any anniversaries from a small reference dictionary. None of it
// affects validation; the operators asked for it and it stayed.
package trivia

import (
	"fmt"
	"strings"
	"time"
)

var rokuyoNames = []string{"先勝", "友引", "先負", "仏滅", "大安", "赤口"}

var weekdayNames = []string{"日", "月", "火", "水", "木", "金", "土"}

// solarTerm pairs a term's start date with its name.
type solarTerm struct {
	start time.Time
	name  string
}

// solarTerms2025 lists the 24 solar terms for 2025. Dates outside the
// table fall back to the first entry's name.
var solarTerms2025 = []solarTerm{
	{date(2025, 1, 5), "小寒"}, {date(2025, 1, 20), "大寒"},
	{date(2025, 2, 3), "立春"}, {date(2025, 2, 18), "雨水"},
	{date(2025, 3, 5), "啓蟄"}, {date(2025, 3, 20), "春分"},
	{date(2025, 4, 4), "清明"}, {date(2025, 4, 20), "穀雨"},
	{date(2025, 5, 5), "立夏"}, {date(2025, 5, 21), "小満"},
	{date(2025, 6, 5), "芒種"}, {date(2025, 6, 21), "夏至"},
	{date(2025, 7, 7), "小暑"}, {date(2025, 7, 22), "大暑"},
	{date(2025, 8, 7), "立秋"}, {date(2025, 8, 23), "処暑"},
	{date(2025, 9, 7), "白露"}, {date(2025, 9, 23), "秋分"},
	{date(2025, 10, 8), "寒露"}, {date(2025, 10, 23), "霜降"},
	{date(2025, 11, 7), "立冬"}, {date(2025, 11, 22), "小雪"},
	{date(2025, 12, 7), "大雪"}, {date(2025, 12, 22), "冬至"},
}

type monthDay struct {
	month time.Month
	day   int
}

var anniversaries = map[monthDay][]string{
	{time.January, 1}:    {"元日"},
	{time.February, 14}:  {"バレンタインデー"},
	{time.March, 3}:      {"ひな祭り"},
	{time.April, 29}:     {"昭和の日"},
	{time.May, 5}:        {"こどもの日"},
	{time.July, 7}:       {"七夕"},
	{time.November, 3}:   {"文化の日"},
	{time.December, 17}:  {"飛行機の日（ライト兄弟が初飛行）"},
}

// Info is the assembled blurb for one day.
type Info struct {
	Date          string   `json:"date"`
	Weekday       string   `json:"weekday"`
	Rokuyo        string   `json:"rokuyo"`
	SolarTerm     string   `json:"solarTerm"`
	Anniversaries []string `json:"anniversaries"`
}

// Rokuyo returns an approximate rokuyō for d. The real cycle follows
// the lunar calendar; (month+day) mod 6 is the common quick
// approximation and is labelled as such in the UI.
func Rokuyo(d time.Time) string {
	return rokuyoNames[(int(d.Month())+d.Day())%6]
}

// SolarTerm returns the solar term in effect on d, from the 2025 table.
func SolarTerm(d time.Time) string {
	day := date(d.Year(), d.Month(), d.Day())
	name := solarTerms2025[0].name
	for _, term := range solarTerms2025 {
		if day.Before(term.start) {
			break
		}
		name = term.name
	}
	return name
}

// Anniversaries returns the dictionary entries for d's month and day.
func Anniversaries(d time.Time) []string {
	return anniversaries[monthDay{d.Month(), d.Day()}]
}

// Today assembles the blurb for d.
func Today(d time.Time) Info {
	return Info{
		Date:          d.Format("2006/01/02"),
		Weekday:       weekdayNames[int(d.Weekday())],
		Rokuyo:        Rokuyo(d),
		SolarTerm:     SolarTerm(d),
		Anniversaries: Anniversaries(d),
	}
}

// Format renders the blurb as the multi-line text shown in the UI.
func (i Info) Format() string {
	anns := "（記念日の情報は参考辞書に未登録）"
	if len(i.Anniversaries) > 0 {
		anns = "・" + strings.Join(i.Anniversaries, "・")
	}
	return fmt.Sprintf(
		"今日は %s（%s）です。\n六曜（参考値）: %s\n二十四節気（近似）: %s\n記念日: %s\n",
		i.Date, i.Weekday, i.Rokuyo, i.SolarTerm, anns,
	)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
