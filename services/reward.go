package services

import "math/rand"

// Reward ranges. Base rewards are independent of streak; the bonus range
// widens linearly with the streak day and stops growing at day 30.
const (
	baseExpMin   = 5
	baseExpMax   = 50
	basePointMin = 200
	basePointMax = 2000

	bonusExpMinPerDay   = 8
	bonusExpMaxPerDay   = 11
	bonusPointMinPerDay = 500
	bonusPointMaxPerDay = 1000

	streakRewardCap = 30
)

// RollReward draws the reward for a sign-in that results in the given streak
// length. Supplements get the base draw only, halved. The caller owns
// synchronization of rnd.
func RollReward(rnd *rand.Rand, streak int, supplement bool) (exp int, point int) {
	exp = randBetween(rnd, baseExpMin, baseExpMax)
	point = randBetween(rnd, basePointMin, basePointMax)

	if streak > 1 && !supplement {
		d := streak
		if d > streakRewardCap {
			d = streakRewardCap
		}
		exp += randBetween(rnd, bonusExpMinPerDay*(d-1), bonusExpMaxPerDay*(d-1))
		point += randBetween(rnd, bonusPointMinPerDay*(d-1), bonusPointMaxPerDay*(d-1))
	}

	if supplement {
		exp /= 2
		point /= 2
	}
	return exp, point
}

// randBetween returns a uniform draw from the closed interval [min, max].
func randBetween(rnd *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rnd.Intn(max-min+1)
}
