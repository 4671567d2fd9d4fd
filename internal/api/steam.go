package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Ars145/ZarubaProfile-sub000/internal/config"
	"github.com/Ars145/ZarubaProfile-sub000/internal/constants"
	"github.com/leighmacdonald/steamid/v4/steamid"
	"github.com/valyala/fasthttp"
)

const defaultSteamBaseURL = "https://api.steampowered.com"

var (
	ErrInvalidSteamID = errors.New("invalid steam id")
	ErrSteamDisabled  = errors.New("steam api key not configured")
)

type Presence string

const (
	PresenceOnline  Presence = "online"
	PresenceInGame  Presence = "in-game"
	PresenceOffline Presence = "offline"
)

type SteamClient struct {
	apiKey  string
	baseURL string
	client  *fasthttp.Client
}

func NewSteamClient(cfg *config.Config) *SteamClient {
	return NewSteamClientWithBaseURL(cfg.SteamAPIKey, defaultSteamBaseURL)
}

func NewSteamClientWithBaseURL(apiKey, baseURL string) *SteamClient {
	return &SteamClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *SteamClient) Enabled() bool {
	return c.apiKey != ""
}

// NormalizeSteamID validates raw as a Steam ID in any accepted notation and
// returns its 64-bit decimal form.
func NormalizeSteamID(raw string) (string, error) {
	sid := steamid.New(strings.TrimSpace(raw))
	if !sid.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSteamID, raw)
	}
	return sid.String(), nil
}

type PlayerSummary struct {
	SteamID      string `json:"steamid"`
	PersonaName  string `json:"personaname"`
	ProfileURL   string `json:"profileurl"`
	Avatar       string `json:"avatarfull"`
	PersonaState int    `json:"personastate"`
	GameID       string `json:"gameid"`
	GameExtra    string `json:"gameextrainfo"`
}

func (s PlayerSummary) Presence() Presence {
	switch {
	case s.GameID != "":
		return PresenceInGame
	case s.PersonaState == 0:
		return PresenceOffline
	default:
		return PresenceOnline
	}
}

type PlayerSummariesResponse struct {
	Response struct {
		Players []PlayerSummary `json:"players"`
	} `json:"response"`
}

// GetPlayerSummaries looks up profiles keyed by 64-bit Steam ID. IDs are sent
// in batches the Web API accepts; IDs Steam does not know are absent from the
// result.
func (c *SteamClient) GetPlayerSummaries(ctx context.Context, steamIDs []string) (map[string]PlayerSummary, error) {
	if !c.Enabled() {
		return nil, ErrSteamDisabled
	}

	result := make(map[string]PlayerSummary, len(steamIDs))
	for start := 0; start < len(steamIDs); start += constants.SteamSummariesBatchSize {
		end := start + constants.SteamSummariesBatchSize
		if end > len(steamIDs) {
			end = len(steamIDs)
		}

		params := url.Values{
			"key":      {c.apiKey},
			"steamids": {strings.Join(steamIDs[start:end], ",")},
		}
		endpoint := c.baseURL + "/ISteamUser/GetPlayerSummaries/v0002/?" + params.Encode()

		resp, err := doRequest[PlayerSummariesResponse](ctx, c, endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to get player summaries: %w", err)
		}
		for _, p := range resp.Response.Players {
			result[p.SteamID] = p
		}
	}
	return result, nil
}

func doRequest[T any](ctx context.Context, client *SteamClient, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.DoTimeout(req, resp, constants.ExternalAPITimeout); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("steam API error: %d", resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
