// Package classlens is the outbound client for the ClassLens backend REST
// API. It plays the role a repository layer would in a service that owned
// its data: every read and write the panel performs goes through here, and
// nothing is cached between calls.
package classlens

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/classlens/admin-panel/internal/config"
	"github.com/classlens/admin-panel/internal/pkg/apperrors"
)

// Resource path segments under /api/admin/.
const (
	ResourceTeachers    = "teachers"
	ResourceStudents    = "students"
	ResourceSubjects    = "subjects"
	ResourceMappings    = "subject-from-dept"
	ResourceEnrollments = "student-enrollments"
	ResourceAdminUsers  = "admin-users"
)

// Client talks to the ClassLens backend. The base URL comes from
// configuration once at startup; no call site carries its own URL.
type Client struct {
	http            *resty.Client
	logger          zerolog.Logger
	studentPageSize int
}

// NewClient creates a backend client from the application configuration.
func NewClient(cfg *config.Config, lgr zerolog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.Backend.BaseURL).
		SetTimeout(cfg.BackendTimeout()).
		SetHeader("Accept", "application/json")

	return &Client{
		http:            httpClient,
		logger:          lgr.With().Str("component", "classlens").Logger(),
		studentPageSize: cfg.Students.PageSize,
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// collectionPath returns the collection endpoint for a resource. Trailing
// slashes are significant to the backend router and applied uniformly here.
func collectionPath(resource string) string {
	return fmt.Sprintf("/api/admin/%s/", resource)
}

// itemPath returns the item endpoint for a resource.
func itemPath(resource, id string) string {
	return fmt.Sprintf("/api/admin/%s/%s/", resource, id)
}

// request starts a request with the bearer token attached when one exists.
func (c *Client) request(ctx context.Context, token string) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// check converts a resty result into the application error taxonomy: a
// transport failure becomes ErrBackendUnavailable, a non-2xx status becomes
// an APIError carrying whatever the backend said.
func (c *Client) check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrBackendUnavailable, err)
	}
	if resp.IsSuccess() {
		return nil
	}
	apiErr := apperrors.NewAPIError(resp.StatusCode(), resp.Body())
	c.logger.Warn().
		Int("status", resp.StatusCode()).
		Str("path", resp.Request.URL).
		Msg("backend request failed")
	return apiErr
}

// getJSON performs an authenticated GET and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, token, path string, query map[string]string, out interface{}) error {
	req := c.request(ctx, token)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	resp, err := req.Get(path)
	if err := c.check(resp, err); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// postJSON performs an authenticated POST with a JSON body, decoding the
// response into out when given.
func (c *Client) postJSON(ctx context.Context, token, path string, payload interface{}, out interface{}) error {
	resp, err := c.request(ctx, token).SetBody(payload).Post(path)
	if err := c.check(resp, err); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// putJSON performs an authenticated PUT with a JSON body.
func (c *Client) putJSON(ctx context.Context, token, path string, payload interface{}) error {
	resp, err := c.request(ctx, token).SetBody(payload).Put(path)
	return c.check(resp, err)
}

// deletePath performs an authenticated DELETE.
func (c *Client) deletePath(ctx context.Context, token, path string) error {
	resp, err := c.request(ctx, token).Delete(path)
	return c.check(resp, err)
}

// create posts a payload to a resource collection.
func (c *Client) create(ctx context.Context, token, resource string, payload interface{}) error {
	return c.postJSON(ctx, token, collectionPath(resource), payload, nil)
}

// update puts a payload to a resource item.
func (c *Client) update(ctx context.Context, token, resource, id string, payload interface{}) error {
	return c.putJSON(ctx, token, itemPath(resource, id), payload)
}

// Delete removes a resource item.
func (c *Client) Delete(ctx context.Context, token, resource, id string) error {
	return c.deletePath(ctx, token, itemPath(resource, id))
}
