package practicum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fatcatfablab/hwbot/version"
)

var (
	ErrTransport = errors.New("homework api unreachable")
	ErrFormat    = errors.New("homework api answer is not valid json")
)

// HTTPStatusError is returned when the API answers with anything but 200.
type HTTPStatusError struct {
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("homework api returned: %s", e.Status)
}

type Client struct {
	client   *http.Client
	endpoint *url.URL
	token    string
}

func New(endpoint *url.URL, token string, timeout time.Duration) *Client {
	return &Client{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
		token:    token,
	}
}

// GetAPIAnswer fetches the homeworks changed since from and returns the
// decoded body without looking at its shape.
func (c *Client) GetAPIAnswer(ctx context.Context, from time.Time) (any, error) {
	u := *c.endpoint
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(from.Unix(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error building homework api request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var answer any
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	return answer, nil
}

