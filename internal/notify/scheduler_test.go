package notify

import (
	"testing"

	"sendloop-api/internal/models"
	"sendloop-api/internal/realtime"
	"sendloop-api/internal/testutil"

	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("09:00")
	require.NoError(t, err)
	require.Equal(t, 9, h)
	require.Equal(t, 0, m)

	h, m, err = ParseClock("23:59")
	require.NoError(t, err)
	require.Equal(t, 23, h)
	require.Equal(t, 59, m)
}

func TestParseClock_Invalid(t *testing.T) {
	for _, clock := range []string{"", "9", "24:00", "12:60", "ab:cd", "12:00:00"} {
		_, _, err := ParseClock(clock)
		require.Error(t, err, "clock %q", clock)
	}
}

func newScheduler(t *testing.T) *Scheduler {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	return NewScheduler(db, realtime.NewHub())
}

func TestApplyAndClear(t *testing.T) {
	s := newScheduler(t)

	setting := models.NotificationSetting{TaskID: "t-1", Enabled: true, Time: "07:30"}
	require.NoError(t, s.Apply(setting))
	require.True(t, s.Scheduled("t-1"))

	// Re-applying replaces rather than stacking entries.
	setting.Time = "08:00"
	require.NoError(t, s.Apply(setting))
	require.True(t, s.Scheduled("t-1"))

	setting.Enabled = false
	require.NoError(t, s.Apply(setting))
	require.False(t, s.Scheduled("t-1"))
}

func TestApply_EmptyTimeUsesDefault(t *testing.T) {
	s := newScheduler(t)
	require.NoError(t, s.Apply(models.NotificationSetting{TaskID: "t-1", Enabled: true}))
	require.True(t, s.Scheduled("t-1"))
}

func TestApply_BadTime(t *testing.T) {
	s := newScheduler(t)
	err := s.Apply(models.NotificationSetting{TaskID: "t-1", Enabled: true, Time: "25:00"})
	require.Error(t, err)
	require.False(t, s.Scheduled("t-1"))
}
