package onlinelookup

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/zfogg/sonicindex/internal/apierr"
)

const musicbrainzURL = "https://musicbrainz.org/ws/2/recording/%s"

type mbRecording struct {
	Relations []struct {
		Type string `json:"type"`
		Work struct {
			Title string `json:"title"`
			Relations []struct {
				Type   string `json:"type"`
				Artist struct {
					Name string `json:"name"`
				} `json:"artist"`
			} `json:"relations"`
		} `json:"work"`
	} `json:"relations"`
}

type originalWorkInfo struct {
	Artist string
	Title  string
}

// originalWork cross-references MusicBrainz for the original composer/work
// behind a recording (e.g. the original artist of a cover). It returns
// (nil, nil) when the recording has no work relationship, which is the
// common case and not an error.
func (c *Client) originalWork(ctx context.Context, recordingID string) (*originalWorkInfo, error) {
	if recordingID == "" {
		return nil, nil
	}

	c.limiter.Wait("musicbrainz.org")

	resp, err := c.mbClient().R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"inc": "work-rels+artist-rels",
			"fmt": "json",
		}).
		SetResult(&mbRecording{}).
		Get(fmt.Sprintf(musicbrainzURL, recordingID))
	if err != nil {
		return nil, apierr.Wrap(apierr.Network, recordingID, err)
	}
	if resp.IsError() {
		return nil, apierr.New(apierr.Network, recordingID, fmt.Sprintf("musicbrainz returned %d", resp.StatusCode()))
	}

	rec, ok := resp.Result().(*mbRecording)
	if !ok {
		return nil, nil
	}

	for _, rel := range rec.Relations {
		if rel.Type != "performance" && rel.Type != "cover" {
			continue
		}
		info := &originalWorkInfo{Title: rel.Work.Title}
		for _, workRel := range rel.Work.Relations {
			if workRel.Type == "composer" || workRel.Type == "writer" {
				info.Artist = workRel.Artist.Name
				break
			}
		}
		if info.Title != "" || info.Artist != "" {
			return info, nil
		}
	}
	return nil, nil
}

func (c *Client) mbClient() *resty.Client {
	if c.mb == nil {
		c.mb = resty.New().
			SetTimeout(requestTimeout).
			SetHeader("User-Agent", "sonicindex/0.1 (+https://example.invalid)")
	}
	return c.mb
}
