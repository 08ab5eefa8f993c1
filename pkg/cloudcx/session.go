/*
 * Copyright 2026 Convoyant, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cloudcx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/convoyant/cxdash/pkg/logger"
)

// regionDomains maps a configured region to the platform's domain for that
// region. Login and API hosts hang off the domain. Unknown regions fail
// closed in Validate.
var regionDomains = map[string]string{
	"us-east-1":      "use1.cloudcx.io",
	"us-west-2":      "usw2.cloudcx.io",
	"ca-central-1":   "cac1.cloudcx.io",
	"eu-west-1":      "euw1.cloudcx.io",
	"eu-central-1":   "euc1.cloudcx.io",
	"ap-southeast-2": "apse2.cloudcx.io",
	"ap-northeast-1": "apne1.cloudcx.io",
}

// SessionConfig identifies an OAuth client on the platform.
type SessionConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Region       string `json:"region"`

	// LoginURL and APIURL override the region-derived hosts. Both must be
	// set together; used by tests and on-prem relays.
	LoginURL string `json:"login_url,omitempty"`
	APIURL   string `json:"api_url,omitempty"`
}

// Validate checks that the client credentials and region are usable. All
// failures wrap ErrConfiguration.
func (c *SessionConfig) Validate() error {
	var missing []string

	if strings.TrimSpace(c.ClientID) == "" {
		missing = append(missing, "client_id")
	}

	if strings.TrimSpace(c.ClientSecret) == "" {
		missing = append(missing, "client_secret")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrConfiguration, strings.Join(missing, ", "))
	}

	if c.LoginURL != "" && c.APIURL != "" {
		return nil
	}

	if strings.TrimSpace(c.Region) == "" {
		return fmt.Errorf("%w: missing region", ErrConfiguration)
	}

	if _, ok := regionDomains[c.Region]; !ok {
		return fmt.Errorf("%w: unrecognized region %q", ErrConfiguration, c.Region)
	}

	return nil
}

func (c *SessionConfig) loginURL() string {
	if c.LoginURL != "" {
		return c.LoginURL
	}

	return "https://login." + regionDomains[c.Region]
}

func (c *SessionConfig) apiURL() string {
	if c.APIURL != "" {
		return c.APIURL
	}

	return "https://api." + regionDomains[c.Region]
}

// Credential is an opaque bearer token plus its platform-reported expiry.
type Credential struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Valid reports whether the credential is usable at time t with the given
// safety margin before expiry.
func (c Credential) Valid(t time.Time, margin time.Duration) bool {
	return c.AccessToken != "" && t.Add(margin).Before(c.ExpiresAt)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type tokenErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

// SessionProvider performs the client-credentials exchange against the
// platform's login host. It holds no state; wrap it in a CachedSession.
type SessionProvider struct {
	config     SessionConfig
	httpClient HTTPClient
	log        logger.Logger
}

// NewSessionProvider validates the config and builds a provider. A nil
// httpClient falls back to a default client with a bounded timeout.
func NewSessionProvider(config SessionConfig, httpClient HTTPClient, log logger.Logger) (*SessionProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &SessionProvider{
		config:     config,
		httpClient: httpClient,
		log:        log.WithComponent("session"),
	}, nil
}

// Exchange trades the client credentials for a bearer token. Rejections wrap
// ErrAuthentication and carry the platform's distinguishing detail when the
// response provides one.
func (p *SessionProvider) Exchange(ctx context.Context) (Credential, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.config.loginURL()+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return Credential{}, err
	}

	req.SetBasicAuth(p.config.ClientID, p.config.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Credential{}, fmt.Errorf("token exchange: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Credential{}, fmt.Errorf("token exchange: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var detail tokenErrorResponse
		if json.Unmarshal(body, &detail) == nil && detail.Error != "" {
			return Credential{}, fmt.Errorf("%w: %s: %s",
				ErrAuthentication, detail.Error, detail.Description)
		}

		return Credential{}, fmt.Errorf("%w: status %d", ErrAuthentication, resp.StatusCode)
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return Credential{}, fmt.Errorf("token exchange: %w", err)
	}

	if token.AccessToken == "" {
		return Credential{}, fmt.Errorf("%w: empty access token", ErrAuthentication)
	}

	cred := Credential{
		AccessToken: token.AccessToken,
		ExpiresAt:   time.Now().Add(time.Duration(token.ExpiresIn) * time.Second),
	}

	p.log.Debug().
		Time("expires_at", cred.ExpiresAt).
		Msg("Exchanged client credentials for access token")

	return cred, nil
}

// expiryMargin is how long before the platform-reported expiry we stop
// trusting a cached token.
const expiryMargin = 5 * time.Minute

// CachedSession caches the credential a TokenProvider produces and
// re-exchanges when it nears expiry. Concurrent first use collapses to a
// single exchange via singleflight.
type CachedSession struct {
	provider TokenProvider
	now      func() time.Time

	mu    sync.RWMutex
	cred  Credential
	group singleflight.Group
}

// NewCachedSession wraps a TokenProvider with caching.
func NewCachedSession(provider TokenProvider) *CachedSession {
	return &CachedSession{
		provider: provider,
		now:      time.Now,
	}
}

// AccessToken returns the cached token if still valid, otherwise performs
// one exchange regardless of how many callers arrive at once.
func (c *CachedSession) AccessToken(ctx context.Context) (string, error) {
	c.mu.RLock()
	if c.cred.Valid(c.now(), expiryMargin) {
		token := c.cred.AccessToken
		c.mu.RUnlock()

		return token, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do("token", func() (interface{}, error) {
		c.mu.RLock()
		if c.cred.Valid(c.now(), expiryMargin) {
			token := c.cred.AccessToken
			c.mu.RUnlock()

			return token, nil
		}
		c.mu.RUnlock()

		cred, err := c.provider.Exchange(ctx)
		if err != nil {
			return "", err
		}

		c.mu.Lock()
		c.cred = cred
		c.mu.Unlock()

		return cred.AccessToken, nil
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil
}

// Invalidate clears the cached credential, forcing the next call to
// re-exchange.
func (c *CachedSession) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cred = Credential{}
}
