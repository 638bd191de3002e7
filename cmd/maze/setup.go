package main

import (
	"context"
	"fmt"
	log "log/slog"
	"net/http"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"maze/internal/config"
	"maze/internal/llm"
	"maze/internal/memory"
)

const tokenEncoding = "cl100k_base"

// newLLM returns nil without error when the remote path is switched off.
func newLLM(ctx context.Context, cfg *config.Config, httpClient *http.Client) (llm.Client, error) {
	if !cfg.RemoteEnabled() {
		return nil, nil
	}

	switch cfg.Provider {
	case config.ProviderGemini:
		return llm.NewGemini(ctx, cfg.APIKey, httpClient)
	case config.ProviderOpenAI:
		return llm.NewOpenAI(cfg.APIKey, httpClient), nil
	case config.ProviderCompat:
		return llm.NewCompat(cfg.BaseURL, cfg.APIKey, httpClient), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

func memoryOptions(cfg *config.Config) (memory.Options, func(), error) {
	opts := memory.Options{
		Session:   cfg.Session,
		MaxTurns:  cfg.MemoryTurns,
		MaxTokens: cfg.MemoryTokens,
	}
	if cfg.MemoryTokens > 0 {
		tok := memory.NewTokenizer(tokenEncoding)
		if tok.Fallback() {
			log.Warn("BPE encoding unavailable, estimating tokens", "encoding", tokenEncoding)
		}
		opts.Counter = tok
	}

	switch cfg.MemoryStore {
	case config.MemorySQLite:
		st, err := memory.NewSQLiteStore(filepath.Join(cfg.DataDir, "memory.db"))
		if err != nil {
			return opts, func() {}, err
		}
		opts.Store = st
	case config.MemoryRedis:
		ropts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return opts, func() {}, fmt.Errorf("redis url: %w", err)
		}
		opts.Store = memory.NewRedisStore(redis.NewClient(ropts), 0)
	default:
		return opts, func() {}, nil
	}

	st := opts.Store
	return opts, func() { st.Close() }, nil
}
