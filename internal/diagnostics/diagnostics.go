// Package diagnostics checks connectivity to the configured WordPress site.
package diagnostics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/genego-hq/genego-site/internal/logger"
	"github.com/genego-hq/genego-site/pkg/httpclient"
	"github.com/genego-hq/genego-site/pkg/wordpress"
)

// ErrorType classifies a failed probe.
type ErrorType string

const (
	ErrorNotConfigured ErrorType = "NOT_CONFIGURED"
	ErrorPlaceholder   ErrorType = "PLACEHOLDER"
	ErrorTimeout       ErrorType = "TIMEOUT"
	ErrorNetwork       ErrorType = "NETWORK_ERROR"
	ErrorHTTPStatus    ErrorType = "HTTP_STATUS"
	ErrorDecode        ErrorType = "DECODE"
)

const (
	defaultTimeout = 10 * time.Second
	maxDetailsLen  = 200
	probePath      = "/wp-json/wp/v2/pages"
)

var troubleshooting = []string{
	"Verify WORDPRESS_API_URL points to the site root or to /wp-json/wp/v2",
	"Check that the WordPress site is publicly accessible",
	"Ensure the WordPress REST API is enabled",
	"Check for firewall or security plugin rules blocking REST requests",
}

// SamplePage summarises the first page returned by the probe.
type SamplePage struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// Result is the outcome of a connectivity probe.
type Result struct {
	Success         bool        `json:"success"`
	Message         string      `json:"message,omitempty"`
	Error           string      `json:"error,omitempty"`
	ErrorType       ErrorType   `json:"errorType,omitempty"`
	Details         string      `json:"details,omitempty"`
	URL             string      `json:"url,omitempty"`
	StatusCode      int         `json:"statusCode,omitempty"`
	PagesFound      int         `json:"pagesFound"`
	SamplePage      *SamplePage `json:"samplePage,omitempty"`
	Troubleshooting []string    `json:"troubleshooting,omitempty"`
	Instructions    string      `json:"instructions,omitempty"`
	Elapsed         string      `json:"elapsed,omitempty"`
}

// Prober runs the connectivity check.
type Prober struct {
	client  httpclient.Client
	rawURL  string
	timeout time.Duration
	log     logger.Logger
}

// NewProber builds a prober for the configured WordPress URL. A zero timeout
// uses the 10 second default.
func NewProber(client httpclient.Client, rawURL string, timeout time.Duration, log logger.Logger) *Prober {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if client == nil {
		client = httpclient.NewRestyClient(timeout, "")
	}
	return &Prober{client: client, rawURL: rawURL, timeout: timeout, log: logger.Ensure(log)}
}

// Probe requests the standard pages endpoint once and reports what happened.
func (p *Prober) Probe(ctx context.Context) Result {
	base := wordpress.NormalizeBaseURL(p.rawURL)
	switch {
	case base == "":
		return Result{
			Error:        "WORDPRESS_API_URL environment variable is not set",
			ErrorType:    ErrorNotConfigured,
			Instructions: "Set WORDPRESS_API_URL to your WordPress site URL",
		}
	case wordpress.IsPlaceholder(p.rawURL):
		return Result{
			Error:        "WORDPRESS_API_URL is still set to placeholder value",
			ErrorType:    ErrorPlaceholder,
			Instructions: "Update WORDPRESS_API_URL to your actual WordPress site URL",
		}
	}

	url := base + probePath
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	resp, err := p.client.Get(ctx, url, map[string]string{"Accept": "application/json"})
	elapsed := time.Since(start).Round(time.Millisecond).String()
	if err != nil {
		res := p.failure(url, err, ctx.Err())
		res.Elapsed = elapsed
		p.log.WarnObj("wordpress probe failed", "diagnostic", res)
		return res
	}

	body := resp.Body()
	if !httpclient.IsSuccess(resp) {
		res := Result{
			Error:           fmt.Sprintf("WordPress API returned status %d", resp.StatusCode()),
			ErrorType:       ErrorHTTPStatus,
			StatusCode:      resp.StatusCode(),
			Details:         details(body),
			URL:             url,
			Troubleshooting: troubleshooting,
			Elapsed:         elapsed,
		}
		p.log.WarnObj("wordpress probe failed", "diagnostic", res)
		return res
	}

	var pages []struct {
		ID    int    `json:"id"`
		Slug  string `json:"slug"`
		Title struct {
			Rendered string `json:"rendered"`
		} `json:"title"`
	}
	if err := json.Unmarshal(body, &pages); err != nil {
		res := Result{
			Error:           "WordPress API returned a body that is not a page list",
			ErrorType:       ErrorDecode,
			StatusCode:      resp.StatusCode(),
			Details:         details(body),
			URL:             url,
			Troubleshooting: troubleshooting,
			Elapsed:         elapsed,
		}
		p.log.WarnObj("wordpress probe failed", "diagnostic", res)
		return res
	}

	res := Result{
		Success:    true,
		Message:    "Successfully connected to WordPress",
		StatusCode: resp.StatusCode(),
		URL:        url,
		PagesFound: len(pages),
		Elapsed:    elapsed,
	}
	if len(pages) > 0 {
		res.SamplePage = &SamplePage{
			ID:    pages[0].ID,
			Title: html.UnescapeString(pages[0].Title.Rendered),
			Slug:  pages[0].Slug,
		}
	}
	p.log.InfoObj("wordpress probe succeeded", "diagnostic", res)
	return res
}

func (p *Prober) failure(url string, err, ctxErr error) Result {
	res := Result{
		Error:           err.Error(),
		ErrorType:       ErrorNetwork,
		URL:             url,
		Troubleshooting: troubleshooting,
	}
	var netErr net.Error
	if errors.Is(ctxErr, context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		res.ErrorType = ErrorTimeout
		res.Error = fmt.Sprintf("Request timed out after %s", p.timeout)
		return res
	}
	res.Details = truncate(err.Error())
	res.Error = "Network request failed, check if the WordPress URL is accessible"
	return res
}

// details summarises a response body. HTML error pages are reduced to their
// title when they have one.
func details(body []byte) string {
	s := strings.TrimSpace(string(body))
	if strings.HasPrefix(s, "<") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
				return truncate(title)
			}
		}
	}
	return truncate(s)
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxDetailsLen {
		return s
	}
	return string(r[:maxDetailsLen])
}
