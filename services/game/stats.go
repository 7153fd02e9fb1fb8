package game

import (
	"fmt"

	"Farsante/models"
)

// applyGameStats folds one finished game into every member's aggregate
// counters. Crashed or departed members still took part, so the membership
// list (not the connection registry) drives the loop.
func (s *Service) applyGameStats(members []models.RoomMember, impostorsWin bool) error {
	for _, m := range members {
		stats, err := s.repo.GetStats(m.PlayerID)
		if err != nil {
			return fmt.Errorf("loading stats for %s: %w", m.PlayerID, err)
		}
		stats.GamesPlayed++
		won := (m.IsImpostor && impostorsWin) || (!m.IsImpostor && !impostorsWin)
		if won {
			stats.GamesWon++
		}
		if m.IsImpostor {
			stats.ImpostorGames++
			if impostorsWin {
				stats.ImpostorWins++
			}
		}
		if err := s.repo.SaveStats(stats); err != nil {
			return fmt.Errorf("saving stats for %s: %w", m.PlayerID, err)
		}
	}
	return nil
}
