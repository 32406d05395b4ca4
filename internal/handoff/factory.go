package handoff

import (
	"fmt"
	"strings"

	"github.com/agenthands/labscan/internal/config"
)

func NewStore(cfg config.HandoffConfig) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "memory":
		return NewMemoryStore(cfg.TTL.Duration), nil
	case "redis":
		return NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.TTL.Duration, cfg.KeyPrefix)
	default:
		return nil, fmt.Errorf("unsupported handoff backend: %s", cfg.Backend)
	}
}
