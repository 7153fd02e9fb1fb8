package controllers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	DB *sql.DB
}

// GetPlayerStats returns the lifetime aggregates for one player.
// @Summary Get a player's lifetime stats
// @Description Games played and won, both overall and as impostor. A player
// @Description without any finished game gets an all-zero record, not a 404.
// @Tags stats
// @Produce json
// @Param playerId path string true "Player ID"
// @Success 200 {object} object{playerId=string,gamesPlayed=int,gamesWon=int,impostorGames=int,impostorWins=int}
// @Failure 500 {object} object{error=string}
// @Router /stats/{playerId} [get]
func (sc *StatsController) GetPlayerStats(c *gin.Context) {
	playerID := c.Param("playerId")

	var stats struct {
		GamesPlayed   int
		GamesWon      int
		ImpostorGames int
		ImpostorWins  int
	}
	err := sc.DB.QueryRow(`
		SELECT games_played, games_won, impostor_games, impostor_wins
		FROM game_stats
		WHERE player_id = $1
	`, playerID).Scan(
		&stats.GamesPlayed, &stats.GamesWon, &stats.ImpostorGames, &stats.ImpostorWins,
	)
	if err != nil && err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error querying database: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"playerId":      playerID,
		"gamesPlayed":   stats.GamesPlayed,
		"gamesWon":      stats.GamesWon,
		"impostorGames": stats.ImpostorGames,
		"impostorWins":  stats.ImpostorWins,
	})
}

// GetRecentGames lists a player's archived games, most recent first.
// @Summary Get a player's recent games
// @Tags stats
// @Produce json
// @Param playerId path string true "Player ID"
// @Success 200 {object} object{playerId=string,games=[]object{roomId=string,rounds=int,wasImpostor=bool,impostorsWon=bool,finishedAt=string}}
// @Failure 500 {object} object{error=string}
// @Router /stats/{playerId}/games [get]
func (sc *StatsController) GetRecentGames(c *gin.Context) {
	playerID := c.Param("playerId")

	rows, err := sc.DB.Query(`
		SELECT r.code, r.rounds, p.is_impostor, r.impostors_won, r.finished_at
		FROM game_rooms r
		JOIN game_room_players p ON p.room_code = r.code
		WHERE p.player_id = $1
		ORDER BY r.finished_at DESC
		LIMIT 20
	`, playerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error querying database: " + err.Error()})
		return
	}
	defer rows.Close()

	games := []gin.H{}
	for rows.Next() {
		var (
			code         string
			rounds       int
			wasImpostor  bool
			impostorsWon bool
			finishedAt   sql.NullTime
		)
		if err := rows.Scan(&code, &rounds, &wasImpostor, &impostorsWon, &finishedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error scanning row: " + err.Error()})
			return
		}
		game := gin.H{
			"roomId":       code,
			"rounds":       rounds,
			"wasImpostor":  wasImpostor,
			"impostorsWon": impostorsWon,
		}
		if finishedAt.Valid {
			game["finishedAt"] = finishedAt.Time
		}
		games = append(games, game)
	}

	c.JSON(http.StatusOK, gin.H{"playerId": playerID, "games": games})
}
