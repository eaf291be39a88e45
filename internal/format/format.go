// Package format renders weather events and command replies as Discord
// markdown, keyed by a configured language code.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/jaidTw/ngs-discord-weather-bot/internal/domain"
)

// emphasisThreshold marks storms long enough to be worth highlighting.
const emphasisThreshold = 6 * time.Minute

var kindEmoji = map[domain.Kind]string{
	domain.Clear:  ":sunny:",
	domain.Cloudy: ":cloud:",
	domain.Rain:   ":cloud_rain:",
	domain.Storm:  ":thunder_cloud_rain:",
}

// fragments holds the fixed per-language text pieces. The notify and next
// headers are printf patterns taking the lead minutes / storm counts.
type fragments struct {
	notifyHeader  string // %d = lead minutes
	notifyList    string // %d = number of following storms
	todayHeader   string
	nextHeader    string // %d = requested count
	weatherHeader string
	region        string
	noData        string
	invalidCount  string // %s = the rejected argument
}

var languages = map[string]fragments{
	"tc": {
		notifyHeader:  "%d 分鐘後エアリオ地區即將發生雷雨！時間為：\n",
		notifyList:    "本次之後的後 %d 次雷雨時間為：\n",
		todayHeader:   "今日所有雷雨：\n",
		nextHeader:    "後 %d 次雷雨時間為\n",
		weatherHeader: "即時天氣\n",
		region:        "エアリオ　　",
		noData:        "暫無資料",
		invalidCount:  "參數 %q 無效：請輸入 1 到 10 的數字",
	},
	"en": {
		notifyHeader:  "Storm is about to happen in Aelio region after %d minutes\n",
		notifyList:    "Following %d storms would be at\n",
		todayHeader:   "All storms today\n",
		nextHeader:    "Next %d storms would be at\n",
		weatherHeader: "Current weather\n",
		region:        "Aelio\t",
		noData:        "no data",
		invalidCount:  "invalid count %q: expected a number between 1 and 10",
	},
	"jp": {
		notifyHeader:  "%d 分後、エアリオリージョンで雷雨の発生が予想されています\n",
		notifyList:    "今回以降 %d 回の雷雨予想時間は以下となります\n",
		todayHeader:   "本日の雷雨予想：\n",
		nextHeader:    "今後 %d 回の雷雨予想時間\n",
		weatherHeader: "現在の天気\n",
		region:        "エアリオ　　",
		noData:        "データなし",
		invalidCount:  "引数 %q が無効です：1〜10 の数値を入力してください",
	},
}

// Renderer is a stateless event-to-text renderer for one language and
// display timezone.
type Renderer struct {
	frags       fragments
	displayTZ   *time.Location
	leadMinutes int
	nextCount   int
}

// NewRenderer builds a Renderer for the given language code. The lead and
// count values are baked into the notification fragments.
func NewRenderer(lang string, displayTZ *time.Location, leadMinutes, nextCount int) (*Renderer, error) {
	frags, ok := languages[lang]
	if !ok {
		return nil, fmt.Errorf("unsupported language %q", lang)
	}
	return &Renderer{
		frags:       frags,
		displayTZ:   displayTZ,
		leadMinutes: leadMinutes,
		nextCount:   nextCount,
	}, nil
}

// Event renders one event as "<emoji>\tHH:MM ~ HH:MM" in the display
// timezone. Long storms get bold emphasis.
func (r *Renderer) Event(e domain.WeatherEvent) string {
	s := r.hourMinute(e.Start) + " ~ " + r.hourMinute(e.End())
	if e.IsStorm() && e.Duration > emphasisThreshold {
		s = "**" + s + "**"
	}
	return kindEmoji[e.Kind] + "\t" + s
}

// EventList renders events joined by newlines, or the no-data sentinel for
// an empty slice. The rendered reply is never an empty string.
func (r *Renderer) EventList(events []domain.WeatherEvent) string {
	if len(events) == 0 {
		return r.frags.noData
	}
	lines := make([]string, len(events))
	for i, e := range events {
		lines[i] = r.Event(e)
	}
	return strings.Join(lines, "\n")
}

// Notification renders the proactive storm announcement: the candidate on
// its own quoted line, then the following storms as a block quote.
func (r *Renderer) Notification(candidate domain.WeatherEvent, following []domain.WeatherEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, r.frags.notifyHeader, r.leadMinutes)
	b.WriteString("> " + r.Event(candidate) + "\n")
	fmt.Fprintf(&b, r.frags.notifyList, r.nextCount-1)
	b.WriteString(">>> " + r.EventList(following))
	return b.String()
}

// TodayReply renders the response to the today command.
func (r *Renderer) TodayReply(storms []domain.WeatherEvent) string {
	return r.frags.todayHeader + ">>> " + r.EventList(storms)
}

// NextReply renders the response to the next command. When fewer than n
// storms remain, the sentinel is appended after the partial list.
func (r *Renderer) NextReply(n int, storms []domain.WeatherEvent, exhausted bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, r.frags.nextHeader, n)
	b.WriteString(">>> ")
	if len(storms) == 0 {
		b.WriteString(r.frags.noData)
		return b.String()
	}
	b.WriteString(r.EventList(storms))
	if exhausted {
		b.WriteString("\n" + r.frags.noData)
	}
	return b.String()
}

// WeatherReply renders the response to the weather command: the region
// label followed by the active event and its successors.
func (r *Renderer) WeatherReply(events []domain.WeatherEvent) string {
	var b strings.Builder
	b.WriteString(r.frags.weatherHeader)
	b.WriteString(">>> " + r.frags.region + "\t")
	if len(events) == 0 {
		b.WriteString(":question:\t" + r.frags.noData)
		return b.String()
	}
	lines := make([]string, len(events))
	for i, e := range events {
		lines[i] = r.Event(e)
	}
	b.WriteString(strings.Join(lines, "\n　　　　　　\t"))
	return b.String()
}

// InvalidCountReply renders the error reply for an unusable next argument.
func (r *Renderer) InvalidCountReply(arg string) string {
	return fmt.Sprintf(r.frags.invalidCount, arg)
}

// NoData returns the language's sentinel string.
func (r *Renderer) NoData() string {
	return r.frags.noData
}

func (r *Renderer) hourMinute(t time.Time) string {
	return t.In(r.displayTZ).Format("15:04")
}
