package config

import (
	"strings"

	"github.com/danmuck/amqpsym/internal/amqp/encoding"
	"github.com/danmuck/amqpsym/internal/inspect"
)

func InspectOptions(cfg SymdConfig) (inspect.Options, error) {
	policy, err := encoding.ParseASCIIPolicy(cfg.ASCIIPolicy)
	if err != nil {
		return inspect.Options{}, err
	}
	origins := make([]string, 0, len(cfg.CorsOrigins))
	for _, origin := range cfg.CorsOrigins {
		origins = append(origins, strings.TrimSpace(origin))
	}
	return inspect.Options{
		Name:            cfg.Name,
		Addr:            cfg.Addr,
		CorsOrigins:     origins,
		Policy:          policy,
		MaxRequestBytes: cfg.MaxRequestBytes,
	}, nil
}
