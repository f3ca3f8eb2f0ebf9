package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/toolhub/pkg/service/fetch"
	"github.com/secmon-lab/toolhub/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Fetch holds CLI flags for outbound page fetching used by page-metadata
type Fetch struct {
	timeout      time.Duration
	maxBytes     int64
	allowHosts   []string
	allowPrivate bool
	userAgent    string
}

// Flags returns CLI flags for fetch configuration
func (x *Fetch) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "fetch-timeout",
			Usage:       "Timeout for fetching a page",
			Category:    "Fetch",
			Value:       fetch.DefaultTimeout,
			Sources:     cli.EnvVars("TOOLHUB_FETCH_TIMEOUT"),
			Destination: &x.timeout,
		},
		&cli.Int64Flag{
			Name:        "fetch-max-bytes",
			Usage:       "Maximum size of a fetched page body",
			Category:    "Fetch",
			Value:       fetch.DefaultMaxBytes,
			Sources:     cli.EnvVars("TOOLHUB_FETCH_MAX_BYTES"),
			Destination: &x.maxBytes,
		},
		&cli.StringSliceFlag{
			Name:        "fetch-allow-host",
			Usage:       "Restrict fetching to these hosts (repeatable). Empty allows any public host",
			Category:    "Fetch",
			Sources:     cli.EnvVars("TOOLHUB_FETCH_ALLOW_HOSTS"),
			Destination: &x.allowHosts,
		},
		&cli.BoolFlag{
			Name:        "fetch-allow-private",
			Usage:       "Allow fetching loopback and private addresses (development only)",
			Category:    "Fetch",
			Sources:     cli.EnvVars("TOOLHUB_FETCH_ALLOW_PRIVATE"),
			Destination: &x.allowPrivate,
		},
		&cli.StringFlag{
			Name:        "fetch-user-agent",
			Usage:       "User-Agent header sent when fetching pages",
			Category:    "Fetch",
			Value:       fetch.DefaultUserAgent,
			Sources:     cli.EnvVars("TOOLHUB_FETCH_USER_AGENT"),
			Destination: &x.userAgent,
		},
	}
}

func (x Fetch) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Duration("timeout", x.timeout),
		slog.Int64("max_bytes", x.maxBytes),
		slog.Any("allow_hosts", x.allowHosts),
		slog.Bool("allow_private", x.allowPrivate),
	)
}

// Configure builds the fetch client
func (x *Fetch) Configure() (*fetch.Client, error) {
	if x.timeout < 0 {
		return nil, goerr.New("fetch-timeout must not be negative", goerr.V("timeout", x.timeout))
	}
	if x.maxBytes < 0 {
		return nil, goerr.New("fetch-max-bytes must not be negative", goerr.V("max_bytes", x.maxBytes))
	}

	if x.allowPrivate {
		logging.Default().Warn("Fetching private addresses is allowed (development only)")
	}

	return fetch.New(fetch.Policy{
		Timeout:      x.timeout,
		MaxBytes:     x.maxBytes,
		AllowHosts:   x.allowHosts,
		AllowPrivate: x.allowPrivate,
		UserAgent:    x.userAgent,
	}), nil
}
