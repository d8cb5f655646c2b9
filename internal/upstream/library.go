package upstream

import (
	"context"
	"net/http"
	"net/url"

	"shukuma/webapp/internal/model"
)

// Tracks lists the white-noise tracks; the endpoint is public.
func (c *Client) Tracks(ctx context.Context) ([]model.Track, error) {
	var tracks []model.Track
	err := c.do(ctx, http.MethodGet, "/api/white-noise", "", nil, &tracks)
	return tracks, err
}

// Journal fetches one page of the user's journal. query is sent as is.
func (c *Client) Journal(ctx context.Context, token string, query url.Values) (*model.JournalPage, error) {
	path := "/api/journal"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var page model.JournalPage
	if err := c.do(ctx, http.MethodGet, path, token, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
