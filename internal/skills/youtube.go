package skills

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"
)

var (
	ErrNoVideo = errors.New("no video found")

	videoIDRe = regexp.MustCompile(`watch\?v=([a-zA-Z0-9_-]{11})`)
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// YouTube scrapes the public results page for the first video id.
type YouTube struct {
	Client  *http.Client
	BaseURL string
	Timeout time.Duration
}

func NewYouTube(client *http.Client) *YouTube {
	if client == nil {
		client = http.DefaultClient
	}
	return &YouTube{Client: client, BaseURL: "https://www.youtube.com", Timeout: 5 * time.Second}
}

func (y *YouTube) FirstVideo(ctx context.Context, query string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, y.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.BaseURL+"/results?search_query="+quote(query), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := y.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("video search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("video search: status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("video search: %w", err)
	}

	m := videoIDRe.FindSubmatch(body)
	if m == nil {
		return "", ErrNoVideo
	}
	return y.BaseURL + "/watch?v=" + string(m[1]), nil
}
