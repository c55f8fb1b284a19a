package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierForThresholds(t *testing.T) {
	assert.Equal(t, TierBronze, TierFor(0))
	assert.Equal(t, TierBronze, TierFor(99))
	assert.Equal(t, TierSilver, TierFor(100))
	assert.Equal(t, TierSilver, TierFor(499))
	assert.Equal(t, TierGold, TierFor(500))
	assert.Equal(t, TierPlatinum, TierFor(1500))
	assert.Equal(t, TierDiamond, TierFor(5000))
	assert.Equal(t, TierDiamond, TierFor(14999))
	assert.Equal(t, TierMaster, TierFor(15000))
	assert.Equal(t, TierMaster, TierFor(1000000))
}

func TestTierForMonotonic(t *testing.T) {
	order := map[Tier]int{
		TierBronze:   0,
		TierSilver:   1,
		TierGold:     2,
		TierPlatinum: 3,
		TierDiamond:  4,
		TierMaster:   5,
	}

	prev := TierFor(0)
	for total := 1; total <= 20000; total++ {
		cur := TierFor(total)
		if order[cur] < order[prev] {
			t.Fatalf("tier decreased from %s to %s at %d points", prev, cur, total)
		}
		prev = cur
	}
}

func TestApplyFloorsAtZero(t *testing.T) {
	p := &UserPoints{TotalPoints: 10, WeeklyPoints: 5}

	total, weekly, tier := Apply(p, -25)
	assert.Equal(t, 0, total)
	assert.Equal(t, 0, weekly)
	assert.Equal(t, TierBronze, tier)
}

func TestApplyRecomputesTier(t *testing.T) {
	p := &UserPoints{TotalPoints: 90, WeeklyPoints: 90, LeagueTier: TierBronze}

	total, weekly, tier := Apply(p, 10)
	assert.Equal(t, 100, total)
	assert.Equal(t, 100, weekly)
	assert.Equal(t, TierSilver, tier)

	// Revoking points demotes immediately, no hysteresis.
	p.TotalPoints, p.WeeklyPoints = total, weekly
	total, _, tier = Apply(p, -10)
	assert.Equal(t, 90, total)
	assert.Equal(t, TierBronze, tier)
}
