// Package dashboard is the data layer behind the execution dashboard: a cached API
// client, the fetched state of the current instance and the in-memory views derived
// from it as filters change.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stanstork/execdash/internal/models"
)

const (
	endpointInstances  = "/api/instances"
	endpointExecutions = "/api/executions"
	endpointStats      = "/api/executions/stats"
	endpointDaily      = "/api/executions/daily"
	endpointWorkflows  = "/api/executions/workflows"
)

// APIError is a non-2xx response from the dashboard API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *Cache
	logger     zerolog.Logger
}

// NewClient returns a client for the API at baseURL. A nil cache disables caching
// and a nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client, cache *Cache, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		cache:      cache,
		logger:     logger.With().Str("component", "dashboard_client").Logger(),
	}
}

func instanceParams(instance string) url.Values {
	params := url.Values{}
	if instance != "" {
		params.Set("instance", instance)
	}
	return params
}

func (c *Client) Instances(ctx context.Context) ([]string, error) {
	var instances []string
	err := c.get(ctx, endpointInstances, nil, &instances)
	return instances, err
}

func (c *Client) Executions(ctx context.Context, instance string, limit int) ([]models.ExecutionRecord, error) {
	params := instanceParams(instance)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var executions []models.ExecutionRecord
	err := c.get(ctx, endpointExecutions, params, &executions)
	return executions, err
}

func (c *Client) Stats(ctx context.Context, instance string) (models.AggregateStats, error) {
	var stats models.AggregateStats
	err := c.get(ctx, endpointStats, instanceParams(instance), &stats)
	return stats, err
}

func (c *Client) Daily(ctx context.Context, instance string, days int) ([]models.DailyBucket, error) {
	params := instanceParams(instance)
	if days > 0 {
		params.Set("days", strconv.Itoa(days))
	}
	var daily []models.DailyBucket
	err := c.get(ctx, endpointDaily, params, &daily)
	return daily, err
}

func (c *Client) Workflows(ctx context.Context, instance string) ([]models.WorkflowStats, error) {
	var workflows []models.WorkflowStats
	err := c.get(ctx, endpointWorkflows, instanceParams(instance), &workflows)
	return workflows, err
}

// Invalidate forgets every cached response so the next calls hit the API.
func (c *Client) Invalidate() {
	if c.cache != nil {
		c.cache.Invalidate()
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	key := CacheKey(endpoint, params)
	if c.cache != nil {
		if body, ok := c.cache.Get(key); ok {
			return errors.Wrapf(json.Unmarshal(body, out), "decode cached %s", endpoint)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+key, nil)
	if err != nil {
		return errors.Wrapf(err, "build request for %s", endpoint)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "request %s", endpoint)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "read %s response", endpoint)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
			apiErr.Message = payload.Error
		}
		c.logger.Warn().Str("endpoint", endpoint).Int("status", resp.StatusCode).Msg(apiErr.Message)
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "decode %s response", endpoint)
	}
	if c.cache != nil {
		c.cache.Set(key, body)
	}
	return nil
}
