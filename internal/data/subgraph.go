package data

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"lendsim/internal/metrics"
	"lendsim/internal/model"

	"go.uber.org/zap"
)

// DefaultEndpoint is the hosted Compound v2 subgraph.
const DefaultEndpoint = "https://api.thegraph.com/subgraphs/name/graphprotocol/compound-v2"

// MarketsQuery requests the five numeric columns the simulation consumes.
const MarketsQuery = `{
  markets {
    borrowRate
    supplyRate
    totalBorrows
    totalSupply
    exchangeRate
  }
}`

// SubgraphClient posts GraphQL queries to a The Graph endpoint.
type SubgraphClient struct {
	Endpoint string
	Query    string
	Client   *http.Client

	log *zap.Logger
}

// NewSubgraphClient creates a client for the given endpoint.
// Empty endpoint defaults to the hosted Compound v2 subgraph.
func NewSubgraphClient(endpoint string, timeout time.Duration, log *zap.Logger) *SubgraphClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SubgraphClient{
		Endpoint: endpoint,
		Query:    MarketsQuery,
		Client:   &http.Client{Timeout: timeout},
		log:      log,
	}
}

// SubgraphError represents an error from the subgraph endpoint.
type SubgraphError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // for rate limit errors
}

func (e *SubgraphError) Error() string {
	return e.Message
}

// FetchMarkets posts the markets query and returns the decoded response.
//
// Responses may be cached when ENABLE_SUBGRAPH_CACHE=true. The cache is for
// local development only and is disabled when API_ENV=production.
func (c *SubgraphClient) FetchMarkets(ctx context.Context) (*model.MarketsResponse, error) {
	cache := GetCache()
	cacheKey := GenerateCacheKey(c.Endpoint, c.Query)
	if cache != nil {
		if cached, found := cache.Get(cacheKey); found {
			c.log.Info("subgraph cache hit",
				zap.String("endpoint", c.Endpoint),
				zap.Int("markets", len(cached.Data.Markets)))
			return cached, nil
		}
	}

	body, err := json.Marshal(map[string]string{"query": c.Query})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		metrics.SubgraphRequests.WithLabelValues("network_error").Inc()
		c.log.Error("subgraph request failed",
			zap.String("endpoint", c.Endpoint),
			zap.Duration("duration", duration),
			zap.Error(err))
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	c.log.Info("subgraph response",
		zap.String("endpoint", c.Endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration))

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		metrics.SubgraphRequests.WithLabelValues("rate_limited").Inc()
		return nil, &SubgraphError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("rate limit exceeded, retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		metrics.SubgraphRequests.WithLabelValues("http_error").Inc()
		return nil, &SubgraphError{
			StatusCode: resp.StatusCode,
			Code:       "SUBGRAPH_ERROR",
			Message:    fmt.Sprintf("subgraph returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var result model.MarketsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		metrics.SubgraphRequests.WithLabelValues("decode_error").Inc()
		return nil, fmt.Errorf("decode response: %w", err)
	}

	// GraphQL errors come back with HTTP 200.
	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			msgs = append(msgs, e.Message)
		}
		metrics.SubgraphRequests.WithLabelValues("graphql_error").Inc()
		return nil, &SubgraphError{
			StatusCode: resp.StatusCode,
			Code:       "GRAPHQL_ERROR",
			Message:    "graphql errors: " + strings.Join(msgs, "; "),
		}
	}

	metrics.SubgraphRequests.WithLabelValues("ok").Inc()
	c.log.Info("subgraph fetch succeeded",
		zap.String("endpoint", c.Endpoint),
		zap.Int("markets", len(result.Data.Markets)))

	if cache != nil {
		cache.Set(cacheKey, &result)
	}

	return &result, nil
}
