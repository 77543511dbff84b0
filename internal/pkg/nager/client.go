// Package nager is a client for the date.nager.at public holiday API.
package nager

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/holiday"
)

const DefaultBaseURL = "https://date.nager.at/api/v3"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type publicHoliday struct {
	Date        string `json:"date"`
	LocalName   string `json:"localName"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
}

// PublicHolidays implements holiday.Provider.
func (c *Client) PublicHolidays(ctx context.Context, year int, countryCode string) ([]holiday.Holiday, error) {
	url := fmt.Sprintf("%s/PublicHolidays/%d/%s", c.baseURL, year, strings.ToUpper(countryCode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build holiday request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", holiday.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", holiday.ErrProviderUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload []publicHoliday
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode holidays: %w", err)
	}

	out := make([]holiday.Holiday, 0, len(payload))
	for _, p := range payload {
		name := p.LocalName
		if name == "" {
			name = p.Name
		}
		out = append(out, holiday.Holiday{
			Date:        p.Date,
			Name:        name,
			CountryCode: p.CountryCode,
		})
	}
	return out, nil
}

var _ holiday.Provider = (*Client)(nil)
