package scraper

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	RequestIDHeader     = "X-Request-ID"
	contextKeyRequestID = "request_id"
	scrapePath          = "/api/scrape"
)

type ScrapeRequest struct {
	URL string `json:"url"`
}

type ScrapeResponse struct {
	Success   bool      `json:"success"`
	Data      *Profile  `json:"data,omitempty"`
	Source    string    `json:"source,omitempty"`
	ScrapedAt *time.Time `json:"scrapedAt,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// RateLimitConfig allows Requests scrapes per Interval. A zero value
// disables limiting.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

type Handler struct {
	scraper *Scraper
	log     *logrus.Logger
	now     func() time.Time
}

func NewHandler(s *Scraper, log *logrus.Logger) *Handler {
	return &Handler{scraper: s, log: log, now: time.Now}
}

func (h *Handler) Scrape(c echo.Context) error {
	var req ScrapeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ScrapeResponse{Error: "invalid request body"})
	}

	profile, source, err := h.scraper.Scrape(c.Request().Context(), req.URL)
	if err != nil {
		h.log.WithFields(logrus.Fields{
			"request_id": RequestIDFromContext(c),
			"url":        req.URL,
		}).Warnf("Scrape failed: %v", err)
		return c.JSON(statusFor(err), ScrapeResponse{Error: err.Error(), Source: source})
	}

	scrapedAt := h.now().UTC()
	return c.JSON(http.StatusOK, ScrapeResponse{
		Success:   true,
		Data:      profile,
		Source:    source,
		ScrapedAt: &scrapedAt,
	})
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}

// NewServer wires the scrape routes and middleware onto a fresh echo
// instance.
func NewServer(h *Handler, limit RateLimitConfig, log *logrus.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(RequestID())
	e.Use(Logging(log))
	e.Use(echoMiddleware.Recover())

	e.GET("/health", h.Health)
	e.POST(scrapePath, h.Scrape, RateLimit(limit))
	return e
}

// RateLimit applies a token bucket shared by every caller.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	if cfg.Requests <= 0 || cfg.Interval <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	if perRequest <= 0 {
		perRequest = time.Millisecond
	}
	limiter := rate.NewLimiter(rate.Every(perRequest), cfg.Requests)
	var mu sync.Mutex

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			mu.Lock()
			allowed := limiter.Allow()
			mu.Unlock()

			if !allowed {
				return c.JSON(http.StatusTooManyRequests, ScrapeResponse{Error: "scrape rate limit exceeded"})
			}
			return next(c)
		}
	}
}

// RequestID reuses the caller's X-Request-ID or assigns a new one.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(RequestIDHeader)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Set(contextKeyRequestID, rid)
			c.Response().Header().Set(RequestIDHeader, rid)
			return next(c)
		}
	}
}

func RequestIDFromContext(c echo.Context) string {
	if v, ok := c.Get(contextKeyRequestID).(string); ok {
		return v
	}
	return ""
}

func Logging(log *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			log.WithFields(logrus.Fields{
				"request_id": RequestIDFromContext(c),
				"method":     c.Request().Method,
				"path":       c.Request().URL.Path,
				"status":     c.Response().Status,
				"latency":    time.Since(start).String(),
			}).Info("HTTP request")
			return err
		}
	}
}
