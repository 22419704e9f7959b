package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/spektr-org/dataviews/helpers"
	"github.com/spektr-org/dataviews/internal/logger"
	"github.com/spektr-org/dataviews/templates"
)

// ============================================================================
// REST SOURCE — Pages through GET {base}/wp/v2/templates
// ============================================================================

const (
	templatesPath  = "/wp/v2/templates"
	restPerPage    = 100
	totalPagesHdr  = "X-WP-TotalPages"
	defaultTimeout = 30 * time.Second
)

// RESTSource fetches every page of the templates collection.
type RESTSource struct {
	client *resty.Client
}

// RESTOption configures a RESTSource.
type RESTOption func(*resty.Client)

// WithBasicAuth authenticates with an application password.
func WithBasicAuth(user, password string) RESTOption {
	return func(c *resty.Client) { c.SetBasicAuth(user, password) }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) RESTOption {
	return func(c *resty.Client) { c.SetTimeout(d) }
}

// WithRetries sets how often failed requests are retried.
func WithRetries(n int) RESTOption {
	return func(c *resty.Client) { c.SetRetryCount(n) }
}

// NewRESTSource creates a source for the site rooted at baseURL, e.g.
// "https://example.com/wp-json".
func NewRESTSource(baseURL string, opts ...RESTOption) *RESTSource {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(defaultTimeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second)
	client.AddRetryCondition(retryCondition)

	for _, opt := range opts {
		opt(client)
	}
	return &RESTSource{client: client}
}

func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code >= 500 || code == 429 || code == 408
}

// Fetch requests page 1 and keeps going until X-WP-TotalPages is reached. A
// missing header means a single page.
func (s *RESTSource) Fetch(ctx context.Context) ([]templates.Template, error) {
	log := logger.FromContext(ctx)

	var all []templates.Template
	for page, total := 1, 1; page <= total; page++ {
		resp, err := s.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"per_page": strconv.Itoa(restPerPage),
				"page":     strconv.Itoa(page),
				"context":  "edit",
			}).
			Get(templatesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch templates page %d: %w", page, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("templates page %d: unexpected status %d: %s",
				page, resp.StatusCode(), truncate(resp.String(), 200))
		}

		records, err := helpers.ParseJSON(resp.Body())
		if err != nil {
			return nil, fmt.Errorf("failed to parse templates page %d: %w", page, err)
		}
		all = append(all, records...)

		if n, err := strconv.Atoi(resp.Header().Get(totalPagesHdr)); err == nil && n > total {
			total = n
		}
		log.Debug("Fetched templates page", "page", page, "total_pages", total, "count", len(records))
	}
	return all, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
