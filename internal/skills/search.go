package skills

import (
	"context"
	"fmt"
	log "log/slog"
	"strings"

	"maze/internal/nlu"
)

const (
	youtubeHome    = "https://www.youtube.com"
	youtubeResults = "https://www.youtube.com/results?search_query="
	wikipediaBase  = "https://en.wikipedia.org/wiki/"
	googleSearch   = "https://www.google.com/search?q="
)

// Search handles video, Wikipedia and Google searches. A mentioned video
// platform takes priority; "play" alone also means the video platform.
func (k *Kit) Search(ctx context.Context, cmd string) (string, bool) {
	if strings.Contains(cmd, "youtube") {
		query := nlu.ExtractQuery(cmd, videoStopWords)
		if query == "" {
			k.openURL(ctx, youtubeHome)
			return "Opening YouTube.", true
		}
		if nlu.HasWord(cmd, "play") {
			return k.playVideo(ctx, query), true
		}
		k.openURL(ctx, youtubeResults+quote(query))
		return fmt.Sprintf("Searching %s on YouTube.", query), true
	}

	if nlu.HasWord(cmd, "play") {
		query := nlu.ExtractQuery(cmd, videoStopWords)
		if query == "" {
			k.openURL(ctx, youtubeHome)
			return "Opening YouTube. What do you want to play?", true
		}
		return k.playVideo(ctx, query), true
	}

	if nlu.ContainsAny(cmd, "wikipedia", "wiki") {
		query := nlu.ExtractQuery(cmd, wikiStopWords)
		if query == "" {
			return "What should I look up on Wikipedia?", true
		}
		k.openURL(ctx, wikipediaBase+quote(query))
		return "Opening Wikipedia for: " + query, true
	}

	if nlu.ContainsAny(cmd, "search", "google", "look up", "find") {
		query := nlu.ExtractQuery(cmd, googleStopWords)
		if query == "" {
			return "What would you like me to search for?", true
		}
		k.openURL(ctx, googleSearch+quote(query))
		return "Searching Google for: " + query, true
	}

	return "", false
}

// playVideo opens the first video for query, or the results page when the
// lookup fails.
func (k *Kit) playVideo(ctx context.Context, query string) string {
	if k.Videos != nil {
		u, err := k.Videos.FirstVideo(ctx, query)
		if err == nil {
			k.openURL(ctx, u)
			return fmt.Sprintf("Playing %s on YouTube.", query)
		}
		log.Warn("Video lookup failed", "query", query, "err", err)
	}

	k.openURL(ctx, youtubeResults+quote(query))
	return fmt.Sprintf("Searching %s on YouTube.", query)
}
