package db

import (
	"database/sql"
	"time"
)

type Player struct {
	ID              string
	SteamID         string
	Username        string
	DiscordID       string
	DiscordUsername string
	DiscordAvatar   string
	AvatarUrl       string
	CurrentClanID   sql.NullString
	CreatedAt       time.Time
	LastLogin       time.Time
}

type Clan struct {
	ID           string
	Name         string
	Tag          string
	Description  string
	Theme        string
	BannerUrl    string
	LogoUrl      string
	Requirements []byte
	Level        int64
	Winrate      float64
	CreatedAt    time.Time
}

type ClanMember struct {
	ID            string
	ClanID        string
	PlayerID      string
	Role          string
	StatsSnapshot []byte
	JoinedAt      time.Time
}

type ClanApplication struct {
	ID            string
	ClanID        string
	PlayerID      string
	PlayerName    string
	PlayerSteamID string
	Message       string
	Status        string
	StatsSnapshot []byte
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ClanInvitation struct {
	ID          string
	ClanID      string
	PlayerID    string
	InvitedByID string
	Message     string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
