package services_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cppla/dailysign/services"
)

func TestRollReward_BaseBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		exp, point := services.RollReward(rnd, 1, false)
		assert.GreaterOrEqual(t, exp, 5)
		assert.LessOrEqual(t, exp, 50)
		assert.GreaterOrEqual(t, point, 200)
		assert.LessOrEqual(t, point, 2000)
	}
}

func TestRollReward_StreakBonusBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for _, streak := range []int{2, 3, 10, 30} {
		d := streak
		for i := 0; i < 500; i++ {
			exp, point := services.RollReward(rnd, streak, false)
			assert.GreaterOrEqual(t, exp, 5+8*(d-1), "streak %d", streak)
			assert.LessOrEqual(t, exp, 50+11*(d-1), "streak %d", streak)
			assert.GreaterOrEqual(t, point, 200+500*(d-1), "streak %d", streak)
			assert.LessOrEqual(t, point, 2000+1000*(d-1), "streak %d", streak)
		}
	}
}

func TestRollReward_BonusCapsAtDay30(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		exp, point := services.RollReward(rnd, 365, false)
		assert.LessOrEqual(t, exp, 50+11*29)
		assert.LessOrEqual(t, point, 2000+1000*29)
	}
}

func TestRollReward_SupplementIsHalvedBase(t *testing.T) {
	// Same seed draws the same base; the supplement must be exactly the
	// halved base with no bonus, whatever streak value is passed in.
	for seed := int64(0); seed < 50; seed++ {
		base := rand.New(rand.NewSource(seed))
		supp := rand.New(rand.NewSource(seed))

		exp, point := services.RollReward(base, 1, false)
		sExp, sPoint := services.RollReward(supp, 9, true)

		assert.Equal(t, exp/2, sExp)
		assert.Equal(t, point/2, sPoint)
	}
}
