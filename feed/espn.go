package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"PlayoffPredictor/bracket"
)

const (
	envTeamsURL     = "ESPN_TEAMS_URL"
	envStandingsURL = "ESPN_STANDINGS_URL"

	defaultTeamsURL     = "https://site.api.espn.com/apis/site/v2/sports/football/nfl/teams"
	defaultStandingsURL = "https://site.api.espn.com/apis/v2/sports/football/nfl/standings"

	logoURLPattern = "https://a.espncdn.com/i/teamlogos/nfl/500/%s.png"
)

// Config controls how we talk to the ESPN site API.
type Config struct {
	TeamsURL     string
	StandingsURL string
	Timeout      time.Duration
}

func LoadConfig() Config {
	return Config{
		TeamsURL:     envOrDefault(envTeamsURL, defaultTeamsURL),
		StandingsURL: envOrDefault(envStandingsURL, defaultStandingsURL),
		Timeout:      10 * time.Second,
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Client fetches the playoff field from the ESPN site API.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

type teamsPayload struct {
	Sports []struct {
		Leagues []struct {
			Teams []struct {
				Team struct {
					ID               string `json:"id"`
					DisplayName      string `json:"displayName"`
					Abbreviation     string `json:"abbreviation"`
					ShortDisplayName string `json:"shortDisplayName"`
					Logos            []struct {
						Href string `json:"href"`
					} `json:"logos"`
				} `json:"team"`
			} `json:"teams"`
		} `json:"leagues"`
	} `json:"sports"`
}

type standingsPayload struct {
	Children []struct {
		Abbreviation string `json:"abbreviation"`
		Standings    struct {
			Entries []struct {
				Team struct {
					ID string `json:"id"`
				} `json:"team"`
				Stats []struct {
					Name  string  `json:"name"`
					Value float64 `json:"value"`
				} `json:"stats"`
			} `json:"entries"`
		} `json:"standings"`
	} `json:"children"`
}

// LoadField fetches team identities plus playoff seeds and assembles the
// seeded field. Callers fall back to FallbackField when this errors.
func (c *Client) LoadField(ctx context.Context) (bracket.Field, error) {
	var teams teamsPayload
	if err := c.getJSON(ctx, c.cfg.TeamsURL, &teams); err != nil {
		return nil, fmt.Errorf("fetch teams: %w", err)
	}

	identities := make(map[string]bracket.Team)
	for _, sport := range teams.Sports {
		for _, league := range sport.Leagues {
			for _, entry := range league.Teams {
				t := entry.Team
				logo := ""
				if len(t.Logos) > 0 {
					logo = t.Logos[0].Href
				}
				identities[t.ID] = bracket.Team{
					TeamID:       t.ID,
					Name:         t.DisplayName,
					Abbreviation: t.Abbreviation,
					ShortName:    t.ShortDisplayName,
					Logo:         logo,
				}
			}
		}
	}

	var standings standingsPayload
	if err := c.getJSON(ctx, c.cfg.StandingsURL, &standings); err != nil {
		return nil, fmt.Errorf("fetch standings: %w", err)
	}

	field := bracket.Field{bracket.AFC: {}, bracket.NFC: {}}
	for _, child := range standings.Children {
		conf := bracket.Conference(child.Abbreviation)
		if conf != bracket.AFC && conf != bracket.NFC {
			continue
		}
		for _, entry := range child.Standings.Entries {
			seed := 0
			for _, stat := range entry.Stats {
				if stat.Name == "playoffSeed" {
					seed = int(stat.Value)
					break
				}
			}
			if seed < 1 || seed > 7 {
				continue
			}
			team := identities[entry.Team.ID]
			team.TeamID = entry.Team.ID
			team.Seed = seed
			team.Conference = conf
			if team.Logo == "" && team.Abbreviation != "" {
				team.Logo = teamLogoURL(team.Abbreviation)
			}
			field[conf][seed] = team
		}
	}

	if !field.Complete() {
		return nil, fmt.Errorf("standings feed returned an incomplete playoff field")
	}
	return field, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
