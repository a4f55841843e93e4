package app

// Prizes is the fixed payout ladder, one entry per difficulty tier 0..14.
var Prizes = [15]int{
	100, 200, 300, 500, 1_000,
	2_000, 4_000, 8_000, 16_000, 32_000,
	64_000, 125_000, 250_000, 500_000, 1_000_000,
}

// FireproofLevels are the checkpoint tiers whose payout survives a loss.
var FireproofLevels = [3]int{4, 9, 14}

// MaxLevel is the index of the final question.
const MaxLevel = 14

// TierPrize returns the ladder payout for exactly that tier, or 0 for a
// level outside the ladder (including -1 for "nothing cleared yet").
func TierPrize(level int) int {
	if level < 0 || level >= len(Prizes) {
		return 0
	}
	return Prizes[level]
}

// FireproofPrize returns the payout of the highest fireproof checkpoint at
// or below answeredLevel, or 0 when no checkpoint has been cleared.
func FireproofPrize(answeredLevel int) int {
	prize := 0
	for _, level := range FireproofLevels {
		if level <= answeredLevel {
			prize = Prizes[level]
		}
	}
	return prize
}
