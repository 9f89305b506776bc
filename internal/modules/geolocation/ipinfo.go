// internal/modules/geolocation/ipinfo.go
package geolocation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kuraiyume/Akari/internal/core/logger"
)

const defaultBaseURL = "https://ipinfo.io"

// GeoInfo is the subset of the ipinfo.io response akari reports for an IP.
type GeoInfo struct {
	IP       string `json:"ip"`
	City     string `json:"city,omitempty"`
	Region   string `json:"region,omitempty"`
	Country  string `json:"country,omitempty"`
	Org      string `json:"org,omitempty"`
	Postal   string `json:"postal,omitempty"`
	Timezone string `json:"timezone,omitempty"`
	Loc      string `json:"loc,omitempty"`
}

// Client looks up geolocation metadata for IP addresses. One Client is
// created per run; BaseURL is overridable for tests.
type Client struct {
	BaseURL    string
	httpClient *http.Client
	token      string
	log        *logrus.Logger
}

func NewClient(token string) *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 6 * time.Second},
		token:      token,
		log:        logger.GetLogger(),
	}
}

// Lookup fetches geolocation data for a single IP. One attempt, no retry.
func (c *Client) Lookup(ip string) (*GeoInfo, error) {
	endpoint := fmt.Sprintf("%s/%s/json?token=%s", c.BaseURL, ip, url.QueryEscape(c.token))
	resp, err := c.httpClient.Get(endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ipinfo API error: %s", resp.Status)
	}

	var info GeoInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.IP == "" {
		info.IP = ip
	}
	return &info, nil
}

// Enrich looks up every IP once, in order. A failed lookup is logged and the
// IP omitted from the result; enrichment is never fatal to a run.
func (c *Client) Enrich(ips []string) map[string]*GeoInfo {
	found := make(map[string]*GeoInfo, len(ips))
	for _, ip := range ips {
		info, err := c.Lookup(ip)
		if err != nil {
			c.log.Debugf("geolocation lookup for %s failed: %v", ip, err)
			continue
		}
		found[ip] = info
	}
	return found
}
