package app

import "testing"

func TestFireproofPrize(t *testing.T) {
	cases := []struct {
		answeredLevel int
		want          int
	}{
		{-1, 0},
		{0, 0},
		{3, 0},
		{4, 1_000},
		{8, 1_000},
		{9, 32_000},
		{13, 32_000},
		{14, 1_000_000},
	}
	for _, tc := range cases {
		if got := FireproofPrize(tc.answeredLevel); got != tc.want {
			t.Errorf("FireproofPrize(%d) = %d, want %d", tc.answeredLevel, got, tc.want)
		}
	}
}

func TestFireproofPrizeNonDecreasing(t *testing.T) {
	previous := 0
	for level := -1; level <= MaxLevel; level++ {
		got := FireproofPrize(level)
		if got < previous {
			t.Fatalf("FireproofPrize(%d) = %d, below FireproofPrize(%d) = %d", level, got, level-1, previous)
		}
		previous = got
	}
}

func TestTierPrize(t *testing.T) {
	cases := []struct {
		level int
		want  int
	}{
		{-1, 0},
		{0, 100},
		{4, 1_000},
		{14, 1_000_000},
		{15, 0},
	}
	for _, tc := range cases {
		if got := TierPrize(tc.level); got != tc.want {
			t.Errorf("TierPrize(%d) = %d, want %d", tc.level, got, tc.want)
		}
	}
}
