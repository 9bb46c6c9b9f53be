// Package scraper fetches a company website and extracts the profile used to
// seed a tenant: name, description, industry, contact details, services and
// social links.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (compatible; AICallingAgentScraper/1.0)"
	defaultRegion    = "IN"
	maxPageBytes     = 5 << 20
)

var (
	ErrInvalidURL = errors.New("invalid url")
	ErrTimeout    = errors.New("fetch timed out")
	ErrUpstream   = errors.New("upstream fetch failed")
)

// ErrPrivateHost is an ErrInvalidURL for targets on loopback, private or
// link-local networks.
var ErrPrivateHost = fmt.Errorf("%w: host is not publicly routable", ErrInvalidURL)

type Contact struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Profile is the scraped company profile.
type Profile struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Industry    string            `json:"industry"`
	Contact     Contact           `json:"contact"`
	Services    []string          `json:"services"`
	About       string            `json:"about"`
	SocialMedia map[string]string `json:"socialMedia"`
}

type Config struct {
	Timeout   time.Duration
	UserAgent string
	// Region is the default phone region for numbers without a country code.
	Region string
	// AllowPrivateHosts lets the scraper fetch loopback and private network
	// addresses.
	AllowPrivateHosts bool
}

type Scraper struct {
	client    *http.Client
	policy    *bluemonday.Policy
	log       *logrus.Logger
	timeout   time.Duration
	userAgent string
	region    string

	allowPrivate bool
	lookupIP     func(ctx context.Context, host string) ([]net.IPAddr, error)
}

func New(cfg Config, client *http.Client, log *logrus.Logger) *Scraper {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}
	if client == nil {
		client = &http.Client{Transport: publicTransport(cfg.AllowPrivateHosts)}
	}
	return &Scraper{
		client:       client,
		policy:       bluemonday.StrictPolicy(),
		log:          log,
		timeout:      cfg.Timeout,
		userAgent:    cfg.UserAgent,
		region:       cfg.Region,
		allowPrivate: cfg.AllowPrivateHosts,
		lookupIP:     net.DefaultResolver.LookupIPAddr,
	}
}

// publicTransport refuses connections to non-public addresses at dial time,
// which also covers redirects and DNS answers that change after checkHost.
func publicTransport(allowPrivate bool) *http.Transport {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	dialer := &net.Dialer{Timeout: 30 * time.Second, KeepAlive: 30 * time.Second}
	if !allowPrivate {
		dialer.Control = func(_, address string, _ syscall.RawConn) error {
			host, _, err := net.SplitHostPort(address)
			if err != nil {
				return err
			}
			if ip := net.ParseIP(host); ip == nil || !publicIP(ip) {
				return ErrPrivateHost
			}
			return nil
		}
	}
	transport.DialContext = dialer.DialContext
	return transport
}

func publicIP(ip net.IP) bool {
	return !(ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsInterfaceLocalMulticast())
}

// checkHost resolves the target's host and rejects it when any address is
// not publicly routable.
func (s *Scraper) checkHost(ctx context.Context, target string) error {
	if s.allowPrivate {
		return nil
	}
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	host := u.Hostname()
	if ip := net.ParseIP(host); ip != nil {
		if !publicIP(ip) {
			return ErrPrivateHost
		}
		return nil
	}

	addrs, err := s.lookupIP(ctx, host)
	if err != nil {
		s.log.Warnf("Failed to resolve %s: %+v", host, err)
		return fmt.Errorf("%w: cannot resolve %s", ErrUpstream, host)
	}
	for _, addr := range addrs {
		if !publicIP(addr.IP) {
			return ErrPrivateHost
		}
	}
	return nil
}

// NormalizeURL adds an https scheme when missing and rejects anything that
// is not an absolute http(s) URL.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: url is required", ErrInvalidURL)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return u.String(), nil
}

// Scrape fetches rawURL within the configured timeout and extracts its
// profile.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*Profile, string, error) {
	target, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, "", err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.checkHost(ctx, target); err != nil {
		return nil, target, err
	}

	doc, err := s.fetch(ctx, target)
	if err != nil {
		return nil, target, err
	}

	profile := s.extract(doc, target)
	s.log.WithFields(logrus.Fields{
		"url":      target,
		"industry": profile.Industry,
		"services": len(profile.Services),
	}).Info("Scraped company profile")

	return profile, target, nil
}

func (s *Scraper) fetch(ctx context.Context, target string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, ErrPrivateHost) {
			return nil, ErrPrivateHost
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		s.log.Warnf("Failed to fetch %s: %+v", target, err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return doc, nil
}
