package onlinelookup

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/zfogg/sonicindex/internal/apierr"
	"github.com/zfogg/sonicindex/internal/logger"
)

// Client talks to the AcoustID lookup endpoint and, when a recording result
// carries a MusicBrainz work relationship, cross-references MusicBrainz for
// the work's original artist and title.
type Client struct {
	clientID string
	limiter  *hostLimiter
	http     *resty.Client
	mb       *resty.Client
}

type acoustidResponse struct {
	Status string `json:"status"`
	Results []struct {
		ID          string  `json:"id"`
		Score       float64 `json:"score"`
		Recordings []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
		} `json:"recordings"`
	} `json:"results"`
}

// Lookup submits fingerprint/duration to AcoustID and returns the best
// recording match, enriched with MusicBrainz original-work metadata when
// available. Any transport or parse failure is wrapped as apierr.Network;
// AcoustID's own rate-limit response is surfaced as apierr.RateLimited.
func (c *Client) Lookup(ctx context.Context, durationS float64, fingerprint string) (*MetadataDelta, error) {
	if c.clientID == "" {
		return nil, errLookupDisabled
	}

	httpClient := c.restyClient()
	c.limiter.Wait("api.acoustid.org")

	resp, err := httpClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client":      c.clientID,
			"meta":        "recordings+compress",
			"duration":    fmt.Sprintf("%.0f", durationS),
			"fingerprint": fingerprint,
		}).
		SetResult(&acoustidResponse{}).
		Post(acoustidURL)
	if err != nil {
		return nil, apierr.Wrap(apierr.Network, "", err)
	}
	if resp.StatusCode() == 429 {
		return nil, apierr.New(apierr.RateLimited, "", "acoustid rate limit exceeded")
	}
	if resp.IsError() {
		return nil, apierr.New(apierr.Network, "", fmt.Sprintf("acoustid returned %d", resp.StatusCode()))
	}

	result, ok := resp.Result().(*acoustidResponse)
	if !ok || result.Status != "ok" || len(result.Results) == 0 {
		return nil, apierr.New(apierr.Network, "", "no acoustid match")
	}

	best := result.Results[0]
	if len(best.Recordings) == 0 {
		return nil, apierr.New(apierr.Network, "", "acoustid match had no recording metadata")
	}
	rec := best.Recordings[0]

	delta := &MetadataDelta{Title: rec.Title}
	if len(rec.Artists) > 0 {
		delta.Artist = rec.Artists[0].Name
	}

	if original, err := c.originalWork(ctx, rec.ID); err == nil && original != nil {
		delta.OriginalArtist = original.Artist
		delta.OriginalTitle = original.Title
	} else if err != nil {
		logger.WarnWithFields("musicbrainz cross-reference failed", err)
	}

	return delta, nil
}

func (c *Client) restyClient() *resty.Client {
	if c.http == nil {
		c.http = resty.New().SetTimeout(requestTimeout)
	}
	return c.http
}
