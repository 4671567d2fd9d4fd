package server

import (
	"maps"
	"slices"
	"time"

	"github.com/Ars145/ZarubaProfile-sub000/internal/analytics"
	"github.com/Ars145/ZarubaProfile-sub000/internal/domain"
	"github.com/Ars145/ZarubaProfile-sub000/internal/service"
	"github.com/Ars145/ZarubaProfile-sub000/internal/stats"
)

type upsertPlayerRequest struct {
	SteamID         string `json:"steamId" validate:"required"`
	Username        string `json:"username" validate:"required,max=64"`
	DiscordID       string `json:"discordId" validate:"omitempty,numeric"`
	DiscordUsername string `json:"discordUsername" validate:"max=64"`
	DiscordAvatar   string `json:"discordAvatar" validate:"max=512"`
	AvatarURL       string `json:"avatarUrl" validate:"omitempty,url"`
}

type updateProfileRequest struct {
	Username  string `json:"username" validate:"required,max=64"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url"`
}

type clanRequest struct {
	Name         string                  `json:"name" validate:"required,max=64"`
	Tag          string                  `json:"tag" validate:"required,max=10"`
	Description  string                  `json:"description" validate:"max=2000"`
	Theme        string                  `json:"theme" validate:"omitempty,oneof=orange blue yellow"`
	BannerURL    string                  `json:"bannerUrl" validate:"omitempty,url"`
	LogoURL      string                  `json:"logoUrl" validate:"omitempty,url"`
	Requirements domain.ClanRequirements `json:"requirements"`
}

func (r clanRequest) input() service.ClanInput {
	return service.ClanInput{
		Name:         r.Name,
		Tag:          r.Tag,
		Description:  r.Description,
		Theme:        domain.ClanTheme(r.Theme),
		BannerURL:    r.BannerURL,
		LogoURL:      r.LogoURL,
		Requirements: r.Requirements,
	}
}

type transferRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
}

type applyRequest struct {
	Message string `json:"message" validate:"max=500"`
}

type inviteRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
	Message  string `json:"message" validate:"max=500"`
}

type playerResponse struct {
	ID              string    `json:"id"`
	SteamID         string    `json:"steamId"`
	Username        string    `json:"username"`
	DiscordID       string    `json:"discordId,omitempty"`
	DiscordUsername string    `json:"discordUsername,omitempty"`
	DiscordAvatar   string    `json:"discordAvatar,omitempty"`
	AvatarURL       string    `json:"avatarUrl,omitempty"`
	CurrentClanID   *string   `json:"currentClanId"`
	CreatedAt       time.Time `json:"createdAt"`
	LastLogin       time.Time `json:"lastLogin"`
}

func toPlayerResponse(p *domain.Player) playerResponse {
	resp := playerResponse{
		ID:              p.ID,
		SteamID:         p.SteamID,
		Username:        p.Username,
		DiscordID:       p.DiscordID,
		DiscordUsername: p.DiscordUsername,
		DiscordAvatar:   p.DiscordAvatar,
		AvatarURL:       p.AvatarURL,
		CreatedAt:       p.CreatedAt,
		LastLogin:       p.LastLogin,
	}
	if p.InClan() {
		id := p.CurrentClanID
		resp.CurrentClanID = &id
	}
	return resp
}

func toPlayerResponses(players []domain.Player) []playerResponse {
	result := make([]playerResponse, len(players))
	for i := range players {
		result[i] = toPlayerResponse(&players[i])
	}
	return result
}

type clanResponse struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	Tag          string                  `json:"tag"`
	Description  string                  `json:"description"`
	Theme        domain.ClanTheme        `json:"theme"`
	BannerURL    string                  `json:"bannerUrl"`
	LogoURL      string                  `json:"logoUrl"`
	Requirements domain.ClanRequirements `json:"requirements"`
	Level        int                     `json:"level"`
	WinRate      float64                 `json:"winrate"`
	OwnerID      string                  `json:"ownerId"`
	MemberCount  int                     `json:"memberCount"`
	IsRecruiting bool                    `json:"isRecruiting"`
	CreatedAt    time.Time               `json:"createdAt"`
}

func toClanResponse(c *domain.Clan) clanResponse {
	return clanResponse{
		ID:           c.ID,
		Name:         c.Name,
		Tag:          c.Tag,
		Description:  c.Description,
		Theme:        c.Theme,
		BannerURL:    c.BannerURL,
		LogoURL:      c.LogoURL,
		Requirements: c.Requirements,
		Level:        c.Level,
		WinRate:      c.WinRate,
		OwnerID:      c.OwnerID,
		MemberCount:  c.MemberCount,
		IsRecruiting: c.IsRecruiting(),
		CreatedAt:    c.CreatedAt,
	}
}

type memberResponse struct {
	ID            string            `json:"id"`
	PlayerID      string            `json:"playerId"`
	Role          domain.MemberRole `json:"role"`
	StatsSnapshot *stats.Snapshot   `json:"statsSnapshot"`
	JoinedAt      time.Time         `json:"joinedAt"`
	Player        *playerResponse   `json:"player,omitempty"`
	Presence      string            `json:"presence,omitempty"`
}

type clanDetailsResponse struct {
	clanResponse
	Members []memberResponse `json:"members"`
}

func toClanDetailsResponse(d *service.ClanDetails) clanDetailsResponse {
	members := make([]memberResponse, len(d.Members))
	for i, m := range d.Members {
		members[i] = memberResponse{
			ID:            m.ID,
			PlayerID:      m.PlayerID,
			Role:          m.Role,
			StatsSnapshot: m.StatsSnapshot,
			JoinedAt:      m.JoinedAt,
			Presence:      m.Presence,
		}
		if m.Player != nil {
			p := toPlayerResponse(m.Player)
			members[i].Player = &p
		}
	}
	return clanDetailsResponse{clanResponse: toClanResponse(d.Clan), Members: members}
}

type applicationResponse struct {
	ID            string                   `json:"id"`
	ClanID        string                   `json:"clanId"`
	PlayerID      string                   `json:"playerId"`
	PlayerName    string                   `json:"playerName"`
	PlayerSteamID string                   `json:"playerSteamId"`
	Message       string                   `json:"message"`
	Status        domain.ApplicationStatus `json:"status"`
	StatsSnapshot stats.Snapshot           `json:"statsSnapshot"`
	CreatedAt     time.Time                `json:"createdAt"`
	UpdatedAt     time.Time                `json:"updatedAt"`
}

func toApplicationResponses(apps []domain.ClanApplication) []applicationResponse {
	result := make([]applicationResponse, len(apps))
	for i, a := range apps {
		result[i] = applicationResponse(a)
	}
	return result
}

type invitationResponse struct {
	ID          string                  `json:"id"`
	ClanID      string                  `json:"clanId"`
	PlayerID    string                  `json:"playerId"`
	InvitedByID string                  `json:"invitedById"`
	Message     string                  `json:"message"`
	Status      domain.InvitationStatus `json:"status"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
	Clan        *clanResponse           `json:"clan,omitempty"`
}

func toInvitationResponse(inv *domain.ClanInvitation) invitationResponse {
	resp := invitationResponse{
		ID:          inv.ID,
		ClanID:      inv.ClanID,
		PlayerID:    inv.PlayerID,
		InvitedByID: inv.InvitedByID,
		Message:     inv.Message,
		Status:      inv.Status,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
	if inv.Clan != nil {
		c := toClanResponse(inv.Clan)
		resp.Clan = &c
	}
	return resp
}

func toInvitationResponses(invs []domain.ClanInvitation) []invitationResponse {
	result := make([]invitationResponse, len(invs))
	for i := range invs {
		result[i] = toInvitationResponse(&invs[i])
	}
	return result
}

type LeaderboardEntry struct {
	Rank          int     `json:"rank"`
	ID            string  `json:"id"`
	DisplayName   string  `json:"displayName"`
	Kills         int64   `json:"kills"`
	Deaths        int64   `json:"deaths"`
	KD            float64 `json:"kd"`
	MatchesPlayed int64   `json:"matchesPlayed"`
	MatchesWon    int64   `json:"matchesWon"`
	WinRate       float64 `json:"winRate"`
}

// toSummaryResponses keeps the source order; rank is the 1-based position.
func toSummaryResponses(summaries []analytics.PlayerSummary) []LeaderboardEntry {
	result := make([]LeaderboardEntry, len(summaries))
	for i, s := range summaries {
		result[i] = LeaderboardEntry{
			Rank:          i + 1,
			ID:            s.ID,
			DisplayName:   s.DisplayName,
			Kills:         s.Kills,
			Deaths:        s.Deaths,
			KD:            stats.KillDeathRatio(s.Kills, s.Deaths),
			MatchesPlayed: s.MatchesPlayed,
			MatchesWon:    s.MatchesWon,
			WinRate:       stats.WinRate(s.MatchesWon, s.MatchesPlayed),
		}
	}
	return result
}

type rankConfigResponse struct {
	Icons  stats.TierConfig `json:"icons"`
	Groups []string         `json:"groups"`
}

func toRankConfigResponse(tiers stats.TierConfig) rankConfigResponse {
	return rankConfigResponse{Icons: tiers, Groups: rankGroups(tiers)}
}

func rankGroups(tiers stats.TierConfig) []string {
	return slices.Sorted(maps.Keys(tiers))
}
