package domain

import (
	"fmt"
	"time"

	"github.com/Ars145/ZarubaProfile-sub000/internal/stats"
)

type Player struct {
	ID              string
	SteamID         string
	Username        string
	DiscordID       string
	DiscordUsername string
	DiscordAvatar   string
	AvatarURL       string
	CurrentClanID   string
	CreatedAt       time.Time
	LastLogin       time.Time
}

func (p Player) InClan() bool {
	return p.CurrentClanID != ""
}

type ClanTheme string

const (
	ThemeOrange ClanTheme = "orange"
	ThemeBlue   ClanTheme = "blue"
	ThemeYellow ClanTheme = "yellow"
)

func (t ClanTheme) Valid() bool {
	switch t {
	case ThemeOrange, ThemeBlue, ThemeYellow:
		return true
	}
	return false
}

type ClanRequirements struct {
	Microphone        bool   `json:"microphone"`
	AgeRestriction    bool   `json:"ageRestriction"`
	CustomRequirement string `json:"customRequirement"`
	IsOpen            bool   `json:"isOpen"`
}

type Clan struct {
	ID           string
	Name         string
	Tag          string
	Description  string
	Theme        ClanTheme
	BannerURL    string
	LogoURL      string
	Requirements ClanRequirements
	Level        int
	WinRate      float64
	CreatedAt    time.Time

	// derived from membership
	OwnerID     string
	MemberCount int
}

func (c Clan) IsRecruiting() bool {
	return c.Requirements.IsOpen
}

type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleMember MemberRole = "member"
)

type ClanMember struct {
	ID            string
	ClanID        string
	PlayerID      string
	Role          MemberRole
	StatsSnapshot *stats.Snapshot
	JoinedAt      time.Time

	Player *Player
	// filled only when Steam presence lookups are enabled
	Presence string
}

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationWithdrawn ApplicationStatus = "withdrawn"
)

// ParseApplicationStatus accepts an empty string as "any status".
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch st := ApplicationStatus(s); st {
	case "", ApplicationPending, ApplicationAccepted, ApplicationRejected, ApplicationWithdrawn:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q: %w", s, ErrInvalidInput)
}

type ClanApplication struct {
	ID            string
	ClanID        string
	PlayerID      string
	PlayerName    string
	PlayerSteamID string
	Message       string
	Status        ApplicationStatus
	StatsSnapshot stats.Snapshot
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationRejected  InvitationStatus = "rejected"
	InvitationCancelled InvitationStatus = "cancelled"
)

// ParseInvitationStatus accepts an empty string as "any status".
func ParseInvitationStatus(s string) (InvitationStatus, error) {
	switch st := InvitationStatus(s); st {
	case "", InvitationPending, InvitationAccepted, InvitationRejected, InvitationCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown invitation status %q: %w", s, ErrInvalidInput)
}

type ClanInvitation struct {
	ID          string
	ClanID      string
	PlayerID    string
	InvitedByID string
	Message     string
	Status      InvitationStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Clan *Clan
}
