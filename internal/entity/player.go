package entity

import "github.com/rocketscienceinc/xxxo-backend/internal/xxxo"

type Player struct {
	ID     string    `json:"id"`
	Name   string    `json:"name,omitempty"`
	Mark   xxxo.Mark `json:"mark,omitempty"`
	GameID string    `json:"game_id,omitempty"`
	Bot    bool      `json:"bot,omitempty"`
}

func NewBotPlayer(id, difficulty string) *Player {
	return &Player{
		ID:   id,
		Name: "Bot (" + difficulty + ")",
		Bot:  true,
	}
}

type PlayerStats struct {
	PlayerID    string `json:"player_id"`
	GamesPlayed int    `json:"games_played"`
	GamesWon    int    `json:"games_won"`
	TotalScore  int    `json:"total_score"`
}
