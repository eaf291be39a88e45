package format_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaidTw/ngs-discord-weather-bot/internal/domain"
	"github.com/jaidTw/ngs-discord-weather-bot/internal/format"
)

var (
	tzTokyo  = time.FixedZone("UTC+9", 9*3600)
	tzTaipei = time.FixedZone("UTC+8", 8*3600)
)

func newRenderer(t *testing.T, lang string) *format.Renderer {
	t.Helper()
	r, err := format.NewRenderer(lang, tzTaipei, 10, 3)
	require.NoError(t, err)
	return r
}

func stormAt(start time.Time, minutes int) domain.WeatherEvent {
	return domain.WeatherEvent{Kind: domain.Storm, Start: start, Duration: time.Duration(minutes) * time.Minute}
}

func TestNewRenderer_UnknownLanguage(t *testing.T) {
	_, err := format.NewRenderer("de", tzTaipei, 10, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "de")
}

func TestEvent_DisplayTimezoneAndEmphasis(t *testing.T) {
	r := newRenderer(t, "tc")

	t.Run("storm over six minutes is emphasized", func(t *testing.T) {
		// 10:00+09:00 is 09:00 in the UTC+8 display zone.
		e := stormAt(time.Date(2024, 1, 1, 10, 0, 0, 0, tzTokyo), 8)
		assert.Equal(t, ":thunder_cloud_rain:\t**09:00 ~ 09:08**", r.Event(e))
	})

	t.Run("six-minute storm is not emphasized", func(t *testing.T) {
		e := stormAt(time.Date(2024, 1, 1, 10, 0, 0, 0, tzTokyo), 6)
		assert.Equal(t, ":thunder_cloud_rain:\t09:00 ~ 09:06", r.Event(e))
	})

	t.Run("long non-storm is not emphasized", func(t *testing.T) {
		e := domain.WeatherEvent{Kind: domain.Rain, Start: time.Date(2024, 1, 1, 10, 0, 0, 0, tzTokyo), Duration: 30 * time.Minute}
		assert.Equal(t, ":cloud_rain:\t09:00 ~ 09:30", r.Event(e))
	})

	t.Run("kind emoji", func(t *testing.T) {
		for kind, emoji := range map[domain.Kind]string{
			domain.Clear:  ":sunny:",
			domain.Cloudy: ":cloud:",
			domain.Rain:   ":cloud_rain:",
			domain.Storm:  ":thunder_cloud_rain:",
		} {
			e := domain.WeatherEvent{Kind: kind, Start: time.Date(2024, 1, 1, 10, 0, 0, 0, tzTokyo), Duration: time.Minute}
			assert.Contains(t, r.Event(e), emoji)
		}
	})
}

func TestEventList_SentinelOnEmpty(t *testing.T) {
	assert.Equal(t, "暫無資料", newRenderer(t, "tc").EventList(nil))
	assert.Equal(t, "no data", newRenderer(t, "en").EventList(nil))
	assert.Equal(t, "データなし", newRenderer(t, "jp").EventList(nil))
}

func TestNotification(t *testing.T) {
	r := newRenderer(t, "tc")
	candidate := stormAt(time.Date(2024, 1, 1, 10, 0, 0, 0, tzTokyo), 8)
	following := []domain.WeatherEvent{
		stormAt(time.Date(2024, 1, 1, 13, 0, 0, 0, tzTokyo), 5),
		stormAt(time.Date(2024, 1, 1, 16, 0, 0, 0, tzTokyo), 12),
	}

	msg := r.Notification(candidate, following)

	assert.Contains(t, msg, "10 分鐘後")
	assert.Contains(t, msg, "> :thunder_cloud_rain:\t**09:00 ~ 09:08**\n")
	assert.Contains(t, msg, "後 2 次雷雨")
	assert.Contains(t, msg, ">>> :thunder_cloud_rain:\t12:00 ~ 12:05\n:thunder_cloud_rain:\t**15:00 ~ 15:12**")
}

func TestNotification_NoFollowingStorms(t *testing.T) {
	r := newRenderer(t, "tc")
	candidate := stormAt(time.Date(2024, 1, 1, 10, 0, 0, 0, tzTokyo), 8)

	msg := r.Notification(candidate, nil)

	assert.Contains(t, msg, ">>> 暫無資料")
}

func TestNextReply(t *testing.T) {
	r := newRenderer(t, "tc")
	storms := []domain.WeatherEvent{stormAt(time.Date(2024, 1, 1, 10, 0, 0, 0, tzTokyo), 8)}

	t.Run("full result", func(t *testing.T) {
		msg := r.NextReply(1, storms, false)
		assert.Contains(t, msg, "後 1 次雷雨時間為\n>>> ")
		assert.NotContains(t, msg, "暫無資料")
	})

	t.Run("partial result keeps events and appends sentinel", func(t *testing.T) {
		msg := r.NextReply(3, storms, true)
		assert.Contains(t, msg, "**09:00 ~ 09:08**")
		assert.Contains(t, msg, "\n暫無資料")
	})

	t.Run("no storms at all", func(t *testing.T) {
		msg := r.NextReply(3, nil, true)
		assert.Equal(t, "後 3 次雷雨時間為\n>>> 暫無資料", msg)
	})
}

func TestWeatherReply(t *testing.T) {
	r := newRenderer(t, "tc")

	t.Run("active run of events", func(t *testing.T) {
		events := []domain.WeatherEvent{
			{Kind: domain.Cloudy, Start: time.Date(2024, 1, 1, 10, 0, 0, 0, tzTokyo), Duration: 20 * time.Minute},
			stormAt(time.Date(2024, 1, 1, 10, 20, 0, 0, tzTokyo), 8),
		}
		msg := r.WeatherReply(events)
		assert.Contains(t, msg, "即時天氣\n>>> エアリオ　　\t:cloud:")
		assert.Contains(t, msg, "**09:20 ~ 09:28**")
	})

	t.Run("nothing active", func(t *testing.T) {
		msg := r.WeatherReply(nil)
		assert.Contains(t, msg, ":question:")
		assert.Contains(t, msg, "暫無資料")
	})
}

func TestInvalidCountReply(t *testing.T) {
	assert.Contains(t, newRenderer(t, "en").InvalidCountReply("abc"), `"abc"`)
	assert.Contains(t, newRenderer(t, "tc").InvalidCountReply("0"), "1 到 10")
}
