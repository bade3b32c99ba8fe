package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/meridareporta/backend/internal/models"
)

func TestCalculateBan_FirstTwoStrikes_NoBan(t *testing.T) {
	now := time.Now().UTC()

	for _, count := range []int{1, 2} {
		decision := calculateBan(count, models.SeverityMedium, now)

		assert.False(t, decision.ShouldBan, "count %d must not ban", count)
		assert.Nil(t, decision.BanUntil)
	}
}

func TestCalculateBan_EscalationTable(t *testing.T) {
	now := time.Now().UTC()

	cases := []struct {
		count    int
		duration time.Duration
	}{
		{3, 10 * time.Minute},
		{4, 30 * time.Minute},
		{5, 24 * time.Hour},
		{6, 7 * 24 * time.Hour},
	}

	for _, tc := range cases {
		decision := calculateBan(tc.count, models.SeverityMedium, now)

		assert.True(t, decision.ShouldBan, "count %d must ban", tc.count)
		assert.False(t, decision.IsPermanent)
		if assert.NotNil(t, decision.BanUntil) {
			assert.Equal(t, now.Add(tc.duration), *decision.BanUntil)
		}
	}
}

func TestCalculateBan_ThirdStrike_Reason(t *testing.T) {
	now := time.Now().UTC()

	decision := calculateBan(3, models.SeverityLow, now)

	assert.Equal(t, "Strike 3 - Ban temporal de 10 minuto(s)", decision.BanReason)
}

func TestCalculateBan_SixthStrike_ReasonInDays(t *testing.T) {
	now := time.Now().UTC()

	decision := calculateBan(6, models.SeverityLow, now)

	assert.Equal(t, "Strike 6 - Ban temporal de 7 día(s)", decision.BanReason)
	assert.Equal(t, 7, decision.DurationDays)
}

func TestCalculateBan_SeventhStrike_Permanent(t *testing.T) {
	now := time.Now().UTC()

	for _, count := range []int{7, 8, 20} {
		decision := calculateBan(count, models.SeverityMedium, now)

		assert.True(t, decision.ShouldBan)
		assert.True(t, decision.IsPermanent)
		assert.Nil(t, decision.BanUntil, "permanent ban has no expiry")
		assert.Equal(t, "Múltiples infracciones - Ban permanente", decision.BanReason)
	}
}

func TestCalculateBan_CriticalSeverity_InstantPermanent(t *testing.T) {
	now := time.Now().UTC()

	// Critical content bans permanently even on the first strike.
	decision := calculateBan(1, models.SeverityCritical, now)

	assert.True(t, decision.ShouldBan)
	assert.True(t, decision.IsPermanent)
	assert.Nil(t, decision.BanUntil)
	assert.Equal(t, "Contenido extremadamente inapropiado u ofensivo", decision.BanReason)
}

func TestDowngrades_NoExistingBan(t *testing.T) {
	user := NewTestUser(1, 3)
	until := time.Now().UTC().Add(10 * time.Minute)

	assert.False(t, downgrades(user, banDecision{ShouldBan: true, BanUntil: &until}))
}

func TestDowngrades_PermanentBanNeverReplaced(t *testing.T) {
	user := NewTestUser(1, 7)
	user.IsBanned = true
	user.BanUntil = nil

	until := time.Now().UTC().Add(24 * time.Hour)
	assert.True(t, downgrades(user, banDecision{ShouldBan: true, BanUntil: &until}))
	assert.True(t, downgrades(user, banDecision{ShouldBan: true, IsPermanent: true}))
}

func TestDowngrades_TemporaryBanNeverShortened(t *testing.T) {
	existing := time.Now().UTC().Add(24 * time.Hour)
	user := NewTestUser(1, 5)
	user.IsBanned = true
	user.BanUntil = &existing

	earlier := existing.Add(-23 * time.Hour)
	later := existing.Add(6 * 24 * time.Hour)

	assert.True(t, downgrades(user, banDecision{ShouldBan: true, BanUntil: &earlier}))
	assert.False(t, downgrades(user, banDecision{ShouldBan: true, BanUntil: &later}))
	assert.False(t, downgrades(user, banDecision{ShouldBan: true, IsPermanent: true}))
}
