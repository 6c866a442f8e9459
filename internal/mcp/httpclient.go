package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/storage"
	"github.com/google/uuid"
)

// HTTPClient implements DataSource by calling the LiftPlan REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// programs live on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: *HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, storage.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func ownerParams(ownerID string) url.Values {
	v := url.Values{}
	v.Set("owner_id", ownerID)
	return v
}

func (c *HTTPClient) GetActiveProgram(ctx context.Context, ownerID string) (*models.WorkoutProgram, error) {
	body, err := c.get(ctx, "/api/v1/programs/active", ownerParams(ownerID))
	if err != nil {
		return nil, err
	}

	var p models.WorkoutProgram
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("httpclient: decode program: %w", err)
	}
	return &p, nil
}

func (c *HTTPClient) ListPrograms(ctx context.Context, ownerID string) ([]models.ProgramSummary, error) {
	body, err := c.get(ctx, "/api/v1/programs", ownerParams(ownerID))
	if err != nil {
		return nil, err
	}

	var summaries []models.ProgramSummary
	if err := json.Unmarshal(body, &summaries); err != nil {
		return nil, fmt.Errorf("httpclient: decode program list: %w", err)
	}
	return summaries, nil
}

func (c *HTTPClient) GetDay(ctx context.Context, dayID uuid.UUID) (*models.WorkoutDay, error) {
	body, err := c.get(ctx, "/api/v1/days/"+dayID.String(), nil)
	if err != nil {
		return nil, err
	}

	var day models.WorkoutDay
	if err := json.Unmarshal(body, &day); err != nil {
		return nil, fmt.Errorf("httpclient: decode day: %w", err)
	}
	return &day, nil
}
