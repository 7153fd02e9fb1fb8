package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStatsRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sc := &StatsController{DB: db}
	router := gin.New()
	router.GET("/stats/:playerId", sc.GetPlayerStats)
	router.GET("/stats/:playerId/games", sc.GetRecentGames)
	return router, mock, func() { db.Close() }
}

func TestGetPlayerStatsReturnsAggregates(t *testing.T) {
	router, mock, cleanup := setupStatsRouter(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"games_played", "games_won", "impostor_games", "impostor_wins"}).
		AddRow(10, 6, 3, 2)
	mock.ExpectQuery("SELECT games_played, games_won, impostor_games, impostor_wins").
		WithArgs("player-1").
		WillReturnRows(rows)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/stats/player-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "player-1", body["playerId"])
	assert.EqualValues(t, 10, body["gamesPlayed"])
	assert.EqualValues(t, 6, body["gamesWon"])
	assert.EqualValues(t, 3, body["impostorGames"])
	assert.EqualValues(t, 2, body["impostorWins"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPlayerStatsUnknownPlayerIsZeroed(t *testing.T) {
	router, mock, cleanup := setupStatsRouter(t)
	defer cleanup()

	// No row for the player: the controller answers zeroes, not a 404.
	mock.ExpectQuery("SELECT games_played, games_won, impostor_games, impostor_wins").
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"games_played", "games_won", "impostor_games", "impostor_wins"}))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/stats/nobody", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 0, body["gamesPlayed"])
	assert.EqualValues(t, 0, body["gamesWon"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecentGames(t *testing.T) {
	router, mock, cleanup := setupStatsRouter(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"code", "rounds", "is_impostor", "impostors_won", "finished_at"}).
		AddRow("ABC123", 3, true, true, nil).
		AddRow("XYZ999", 2, false, false, nil)
	mock.ExpectQuery("SELECT r.code, r.rounds, p.is_impostor, r.impostors_won, r.finished_at").
		WithArgs("player-1").
		WillReturnRows(rows)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/stats/player-1/games", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		PlayerID string                   `json:"playerId"`
		Games    []map[string]interface{} `json:"games"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Games, 2)
	assert.Equal(t, "ABC123", body.Games[0]["roomId"])
	assert.Equal(t, true, body.Games[0]["wasImpostor"])
	assert.Equal(t, "XYZ999", body.Games[1]["roomId"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
