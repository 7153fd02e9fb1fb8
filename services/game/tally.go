package game

import "Farsante/models"

// TallyVotes counts the round's ballots and decides who, if anyone, gets
// eliminated. Abstentions (nil target) count toward quorum but never toward
// any candidate, and a ballot for a dead or departed player is ignored.
// The return is (nil, counts) on a tie for the top spot or when no real
// target received votes; otherwise the unique leader.
func TallyVotes(votes []models.Vote, alive map[string]bool) (*string, map[string]int) {
	counts := make(map[string]int)
	for _, v := range votes {
		if v.TargetID == nil {
			continue
		}
		if !alive[*v.TargetID] {
			continue
		}
		counts[*v.TargetID]++
	}

	var leader string
	best, tied := 0, false
	for target, n := range counts {
		switch {
		case n > best:
			leader, best, tied = target, n, false
		case n == best:
			tied = true
		}
	}
	if best == 0 || tied {
		return nil, counts
	}
	return &leader, counts
}
