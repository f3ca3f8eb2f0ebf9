package fetch

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/toolhub/pkg/utils/safe"
)

var (
	ErrDeniedDestination = goerr.New("destination is not allowed")
	ErrUnsupportedScheme = goerr.New("unsupported URL scheme")
	ErrTimeout           = goerr.New("request timed out")
	ErrTooLarge          = goerr.New("response body too large")
	ErrTooManyRedirects  = goerr.New("too many redirects")
)

const (
	DefaultTimeout   = 5 * time.Second
	DefaultMaxBytes  = 5 << 20
	DefaultUserAgent = "toolhub-metadata-fetcher/1.0"

	maxRedirects = 5
)

// Policy controls which destinations may be fetched and how much is read
type Policy struct {
	Timeout  time.Duration
	MaxBytes int64
	// AllowHosts restricts fetching to these hostnames when non-empty
	AllowHosts []string
	// AllowPrivate disables the private/loopback address check. Development only.
	AllowPrivate bool
	UserAgent    string
}

func (p Policy) withDefaults() Policy {
	if p.Timeout <= 0 {
		p.Timeout = DefaultTimeout
	}
	if p.MaxBytes <= 0 {
		p.MaxBytes = DefaultMaxBytes
	}
	if p.UserAgent == "" {
		p.UserAgent = DefaultUserAgent
	}
	hosts := make([]string, 0, len(p.AllowHosts))
	for _, h := range p.AllowHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			hosts = append(hosts, h)
		}
	}
	p.AllowHosts = hosts
	return p
}

// Response is a fully read upstream response
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Client fetches remote pages under a Policy. Destination addresses are
// checked after DNS resolution, so every redirect hop is covered as well.
type Client struct {
	policy     Policy
	httpClient *http.Client
}

func New(policy Policy) *Client {
	policy = policy.withDefaults()

	c := &Client{policy: policy}

	dialer := &net.Dialer{
		Timeout: policy.Timeout,
		Control: c.controlDial,
	}
	transport := &http.Transport{
		Proxy:                 nil,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   policy.Timeout,
		ResponseHeaderTimeout: policy.Timeout,
		MaxIdleConns:          16,
		IdleConnTimeout:       30 * time.Second,
	}

	c.httpClient = &http.Client{
		Transport: transport,
		Timeout:   policy.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return goerr.Wrap(ErrTooManyRedirects, "redirect limit exceeded", goerr.V("limit", maxRedirects))
			}
			return c.checkURL(req.URL)
		},
	}
	return c
}

func (c *Client) checkURL(u *url.URL) error {
	switch u.Scheme {
	case "http", "https":
	default:
		return goerr.Wrap(ErrUnsupportedScheme, "only http and https are allowed", goerr.V("scheme", u.Scheme))
	}

	if len(c.policy.AllowHosts) > 0 && !slices.Contains(c.policy.AllowHosts, strings.ToLower(u.Hostname())) {
		return goerr.Wrap(ErrDeniedDestination, "host is not in the allow list", goerr.V("host", u.Hostname()))
	}
	return nil
}

func (c *Client) controlDial(network, address string, _ syscall.RawConn) error {
	if c.policy.AllowPrivate {
		return nil
	}

	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return goerr.Wrap(err, "invalid dial address", goerr.V("address", address))
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return goerr.Wrap(ErrDeniedDestination, "dial address is not an IP", goerr.V("address", address))
	}
	if IsDeniedIP(ip) {
		return goerr.Wrap(ErrDeniedDestination, "address is in a restricted range", goerr.V("ip", ip.String()))
	}
	return nil
}

// Get fetches u and reads at most Policy.MaxBytes of the body
func (c *Client) Get(ctx context.Context, u *url.URL) (*Response, error) {
	if err := c.checkURL(u); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build request", goerr.V("url", u.String()))
	}
	req.Header.Set("User-Agent", c.policy.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classify(err, u)
	}
	defer safe.DrainAndClose(ctx, resp.Body)

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.policy.MaxBytes+1))
	if err != nil {
		return nil, c.classify(err, u)
	}
	if int64(len(body)) > c.policy.MaxBytes {
		return nil, goerr.Wrap(ErrTooLarge, "response exceeds size limit",
			goerr.V("url", u.String()),
			goerr.V("limit", c.policy.MaxBytes))
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func (c *Client) classify(err error, u *url.URL) error {
	for _, sentinel := range []error{ErrDeniedDestination, ErrUnsupportedScheme, ErrTooManyRedirects} {
		if errors.Is(err, sentinel) {
			return goerr.Wrap(err, "fetch rejected", goerr.V("url", u.String()))
		}
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return goerr.Wrap(ErrTimeout, "fetch timed out",
			goerr.V("url", u.String()),
			goerr.V("timeout", c.policy.Timeout.String()),
			goerr.V("cause", err.Error()))
	}
	return goerr.Wrap(err, "failed to fetch", goerr.V("url", u.String()))
}
