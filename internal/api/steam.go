package api

import (
	"context"
	"net/url"
	"strings"

	"cs2-tracker/internal/config"

	"github.com/rs/zerolog"
)

// VanityResolved is the success code of ResolveVanityURL.
const VanityResolved = 1

// SteamClient reads the ISteamUser interface of the Steam Web API. The key
// travels as a query parameter.
type SteamClient struct {
	apiKey    string
	baseURL   string
	transport *transport
}

func NewSteamClient(cfg *config.Config, logger zerolog.Logger) *SteamClient {
	return &SteamClient{
		apiKey:    cfg.SteamAPIKey,
		baseURL:   strings.TrimRight(cfg.SteamBaseURL, "/"),
		transport: newTransport("steam", cfg.UpstreamTimeout, cfg.UpstreamMaxRetries, 0, logger),
	}
}

func (c *SteamClient) ResolveVanityURL(ctx context.Context, vanity string) (*VanityResponse, error) {
	params := url.Values{
		"key":       {c.apiKey},
		"vanityurl": {vanity},
	}
	u := c.baseURL + "/ISteamUser/ResolveVanityURL/v0001/?" + params.Encode()
	return doRequest[VanityResponse](ctx, c.transport, u)
}

func (c *SteamClient) GetPlayerSummaries(ctx context.Context, steamID string) (*PlayerSummariesResponse, error) {
	params := url.Values{
		"key":      {c.apiKey},
		"steamids": {steamID},
	}
	u := c.baseURL + "/ISteamUser/GetPlayerSummaries/v0002/?" + params.Encode()
	return doRequest[PlayerSummariesResponse](ctx, c.transport, u)
}

type VanityResponse struct {
	Response struct {
		Success int    `json:"success"`
		SteamID string `json:"steamid"`
		Message string `json:"message"`
	} `json:"response"`
}

type PlayerSummariesResponse struct {
	Response struct {
		Players []SteamPlayer `json:"players"`
	} `json:"response"`
}

type SteamPlayer struct {
	SteamID     string `json:"steamid"`
	PersonaName string `json:"personaname"`
	ProfileURL  string `json:"profileurl"`
	Avatar      string `json:"avatarfull"`
}
