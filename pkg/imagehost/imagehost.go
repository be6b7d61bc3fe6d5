// Package imagehost is an adapter for a Cloudinary-style image hosting API.
// Pictures are sent as signed data-URI uploads; the host answers with a
// stable https URL.
package imagehost

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"brocante/internal/apperr"
)

const defaultBaseURL = "https://api.cloudinary.com/v1_1"

// Config holds the image host credentials.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	BaseURL   string // optional override, used by tests
}

// Client talks to the image host over HTTP.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a new image host client. http.DefaultClient has no
// timeout, so the transport is configured explicitly.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second, Transport: t},
	}
}

// EncodeDataURI wraps raw file bytes into a self-describing transportable
// string: data:<mime>;base64,<payload>.
func EncodeDataURI(data []byte, mimeType string) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Upload sends the encoded payload to the image host and returns the secure
// URL. Failures wrap apperr.ErrUpload; there is no retry.
func (c *Client) Upload(dataURI string) (string, error) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	form := url.Values{}
	form.Set("file", dataURI)
	form.Set("api_key", c.cfg.APIKey)
	form.Set("timestamp", timestamp)
	form.Set("signature", c.sign(map[string]string{"timestamp": timestamp}))

	endpoint := fmt.Sprintf("%s/%s/image/upload", c.cfg.BaseURL, c.cfg.CloudName)
	resp, err := c.httpClient.PostForm(endpoint, form)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrUpload, err)
	}
	defer resp.Body.Close()

	var body uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: invalid response: %v", apperr.ErrUpload, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if body.Error != nil {
			msg = body.Error.Message
		}
		return "", fmt.Errorf("%w: %s", apperr.ErrUpload, msg)
	}
	if body.SecureURL == "" {
		return "", fmt.Errorf("%w: response carries no secure_url", apperr.ErrUpload)
	}
	return body.SecureURL, nil
}

// sign computes the request signature: SHA-1 over the sorted k=v pairs joined
// with & followed by the API secret, hex encoded.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.cfg.APISecret))
	return hex.EncodeToString(sum[:])
}
