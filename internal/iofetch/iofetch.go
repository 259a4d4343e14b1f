// Package iofetch downloads remote source data: tabs of the
// field-collection Google Sheet and occurrences from the GBIF API.
package iofetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/Fr4nzz/ithomiini-maps/pkg/config"
)

type client struct {
	cfg  *config.Config
	http *http.Client
}

func newClient(cfg *config.Config) client {
	return client{
		cfg: cfg,
		http: &http.Client{
			Timeout: time.Duration(cfg.Fetch.TimeoutSec) * time.Second,
		},
	}
}

// get performs a GET request and returns the response body. A non-200
// status is reported through statusErr.
func (c client) get(
	ctx context.Context,
	url string,
	statusErr func(status int) error,
) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusErr(resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
