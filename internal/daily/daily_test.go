package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKeyIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	// 2026-05-02 05:00 at +10 is still May 1st in UTC.
	assert.Equal(t, "2026-05-01", DateKey(time.Date(2026, 5, 2, 5, 0, 0, 0, loc)))
}

func TestIndex(t *testing.T) {
	day := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	later := day.Add(10 * time.Hour)

	i := Index(day, "salt", 15)
	assert.GreaterOrEqual(t, i, 0)
	assert.Less(t, i, 15)
	assert.Equal(t, i, Index(later, "salt", 15), "same day, same index")

	assert.Equal(t, 0, Index(day, "salt", 0))

	seen := map[int]bool{}
	for d := 0; d < 60; d++ {
		seen[Index(day.AddDate(0, 0, d), "salt", 15)] = true
	}
	assert.Greater(t, len(seen), 5, "index should vary across days")
}
