package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimeFormatterFormat(t *testing.T) {
	t.Parallel()

	en := NewTimeFormatter(EnglishUnits)

	cases := []struct {
		name   string
		amount int64
		unit   Unit
		want   string
	}{
		{"zero", 0, Minutes, "0h"},
		{"negative", -5, Minutes, "0h"},
		{"minutes only", 30, Minutes, "30m"},
		{"hours and minutes", 90, Minutes, "1h 30m"},
		{"whole hours", 1260, Minutes, "21h"},
		{"day suppresses minutes", 1500, Minutes, "1d 1h"},
		{"whole days", 2880, Minutes, "2d"},
		{"day and minutes only", 1441, Minutes, "1d"},
		{"seconds truncate to minutes", 5400, Seconds, "1h 30m"},
		{"under a minute of seconds", 59, Seconds, "0h"},
		{"long playtime", 20520, Minutes, "14d 6h"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, en.Format(tc.amount, tc.unit))
		})
	}
}

func TestTimeFormatterLocalized(t *testing.T) {
	t.Parallel()

	ru := NewTimeFormatter(UnitsFor("ru"))
	require.Equal(t, "1ч 30м", ru.Format(90, Minutes))
	require.Equal(t, "2д 19ч", ru.Format(4027, Minutes))
	require.Equal(t, "0ч", ru.Format(0, Minutes))

	require.Equal(t, EnglishUnits, UnitsFor("de"))
	require.Equal(t, RussianUnits, UnitsFor("RU"))
}
