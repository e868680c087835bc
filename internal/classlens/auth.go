package classlens

import (
	"context"
	"fmt"

	"github.com/classlens/admin-panel/internal/app/models"
	"github.com/classlens/admin-panel/internal/app/models/dto"
	"github.com/classlens/admin-panel/internal/pkg/apperrors"
)

// Login exchanges admin credentials for a token pair.
func (c *Client) Login(ctx context.Context, username, password string) (dto.LoginWire, error) {
	var result dto.LoginWire
	err := c.postJSON(ctx, "", "/api/admin/login/", dto.CredentialsPayload(username, password), &result)
	if err != nil {
		return dto.LoginWire{}, err
	}
	if result.Access == "" {
		return dto.LoginWire{}, fmt.Errorf("%w: no access token received from server", apperrors.ErrBadRequest)
	}
	if result.Username == "" {
		result.Username = username
	}
	return result, nil
}

// CreateUser registers a new admin account.
func (c *Client) CreateUser(ctx context.Context, username, password string) error {
	return c.postJSON(ctx, "", "/api/admin/create-user/", dto.CredentialsPayload(username, password), nil)
}

// Stats fetches the dashboard counters.
func (c *Client) Stats(ctx context.Context, token string) (models.Stats, error) {
	var wire dto.StatsWire
	if err := c.getJSON(ctx, token, "/api/admin/stats/", nil, &wire); err != nil {
		return models.Stats{}, err
	}
	return wire.Stats(), nil
}

// Departments fetches the read-only department reference list.
func (c *Client) Departments(ctx context.Context, token string) ([]models.Department, error) {
	var rows []dto.DepartmentWire
	if err := c.getJSON(ctx, token, "/api/getDepartments/", nil, &rows); err != nil {
		return nil, err
	}
	return dto.Departments(rows), nil
}
