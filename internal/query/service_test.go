package query_test

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaidTw/ngs-discord-weather-bot/internal/domain"
	"github.com/jaidTw/ngs-discord-weather-bot/internal/format"
	"github.com/jaidTw/ngs-discord-weather-bot/internal/query"
)

var (
	tzTokyo  = time.FixedZone("UTC+9", 9*3600)
	tzTaipei = time.FixedZone("UTC+8", 8*3600)
)

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, tzTokyo)

func storm(start time.Time, minutes int) domain.WeatherEvent {
	return domain.WeatherEvent{Kind: domain.Storm, Start: start, Duration: time.Duration(minutes) * time.Minute}
}

func newService(t *testing.T, dataset domain.Dataset) *query.Service {
	t.Helper()
	renderer, err := format.NewRenderer("tc", tzTaipei, 10, 3)
	require.NoError(t, err)
	clock := clockwork.NewFakeClockAt(testNow)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return query.New(dataset, renderer, tzTaipei, clock, logger)
}

func manyStorms(n int) domain.Dataset {
	var d domain.Dataset
	for i := 0; i < n; i++ {
		d = append(d, storm(testNow.Add(time.Duration(i+1)*time.Hour), 8))
	}
	return d
}

func TestNext_ClampsToCap(t *testing.T) {
	svc := newService(t, manyStorms(12))

	over, err := svc.Next("15")
	require.NoError(t, err)
	capped, err := svc.Next("10")
	require.NoError(t, err)

	// Requesting more than the cap behaves exactly like requesting the cap.
	assert.Equal(t, capped, over)
}

func TestNext_DefaultCount(t *testing.T) {
	svc := newService(t, manyStorms(5))

	msg, err := svc.Next("")
	require.NoError(t, err)
	assert.Contains(t, msg, "後 3 次雷雨")
	assert.Equal(t, 3, strings.Count(msg, ":thunder_cloud_rain:"))
}

func TestNext_InvalidArguments(t *testing.T) {
	svc := newService(t, manyStorms(3))

	for _, arg := range []string{"abc", "0", "-2", "1.5"} {
		t.Run(arg, func(t *testing.T) {
			_, err := svc.Next(arg)
			require.ErrorIs(t, err, query.ErrInvalidCount)
		})
	}

	assert.Contains(t, svc.InvalidCountReply("abc"), `"abc"`)
}

func TestNext_FewerThanRequestedAppendsSentinel(t *testing.T) {
	svc := newService(t, manyStorms(2))

	msg, err := svc.Next("5")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(msg, ":thunder_cloud_rain:"))
	assert.Contains(t, msg, "暫無資料")
}

func TestNext_ExcludesPastAndNonStorms(t *testing.T) {
	dataset := domain.Dataset{
		storm(testNow.Add(-time.Hour), 8),
		{Kind: domain.Rain, Start: testNow.Add(time.Hour), Duration: 10 * time.Minute},
		storm(testNow.Add(2*time.Hour), 8),
	}
	svc := newService(t, dataset)

	msg, err := svc.Next("1")
	require.NoError(t, err)
	// 14:00+09:00 renders as 13:00 display time.
	assert.Contains(t, msg, "13:00")
	assert.Equal(t, 1, strings.Count(msg, ":thunder_cloud_rain:"))
}

func TestToday_BucketsByDisplayDate(t *testing.T) {
	dataset := domain.Dataset{
		// 23:30+09:00 is 22:30 display time, still today.
		storm(time.Date(2024, 1, 1, 23, 30, 0, 0, tzTokyo), 8),
		// 00:30+09:00 Jan 2 is 23:30 display time Jan 1: today as well.
		storm(time.Date(2024, 1, 2, 0, 30, 0, 0, tzTokyo), 8),
		// 01:30+09:00 Jan 2 is 00:30 display time Jan 2: tomorrow.
		storm(time.Date(2024, 1, 2, 1, 30, 0, 0, tzTokyo), 8),
	}
	svc := newService(t, dataset)

	msg := svc.Today()
	assert.Contains(t, msg, "今日所有雷雨")
	assert.Equal(t, 2, strings.Count(msg, ":thunder_cloud_rain:"))
}

func TestToday_EmptyGetsSentinel(t *testing.T) {
	svc := newService(t, nil)
	assert.Contains(t, svc.Today(), "暫無資料")
}

func TestWeather(t *testing.T) {
	t.Run("active event with successors of any kind", func(t *testing.T) {
		dataset := domain.Dataset{
			{Kind: domain.Clear, Start: testNow.Add(-2 * time.Hour), Duration: time.Hour},
			{Kind: domain.Cloudy, Start: testNow.Add(-10 * time.Minute), Duration: 30 * time.Minute},
			{Kind: domain.Rain, Start: testNow.Add(20 * time.Minute), Duration: 20 * time.Minute},
			storm(testNow.Add(40*time.Minute), 8),
			{Kind: domain.Clear, Start: testNow.Add(time.Hour), Duration: time.Hour},
		}
		svc := newService(t, dataset)

		msg := svc.Weather()
		// Active cloudy event plus the next two, regardless of kind.
		assert.Contains(t, msg, ":cloud:")
		assert.Contains(t, msg, ":cloud_rain:")
		assert.Contains(t, msg, ":thunder_cloud_rain:")
		assert.NotContains(t, msg, ":sunny:")
	})

	t.Run("run truncated at dataset end", func(t *testing.T) {
		dataset := domain.Dataset{
			{Kind: domain.Rain, Start: testNow.Add(-5 * time.Minute), Duration: 30 * time.Minute},
		}
		svc := newService(t, dataset)

		msg := svc.Weather()
		assert.Contains(t, msg, ":cloud_rain:")
	})

	t.Run("nothing active", func(t *testing.T) {
		dataset := domain.Dataset{
			{Kind: domain.Rain, Start: testNow.Add(time.Hour), Duration: 30 * time.Minute},
		}
		svc := newService(t, dataset)

		msg := svc.Weather()
		assert.Contains(t, msg, ":question:")
		assert.Contains(t, msg, "暫無資料")
	})
}
