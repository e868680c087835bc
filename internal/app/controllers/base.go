package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/classlens/admin-panel/internal/app/models"
	"github.com/classlens/admin-panel/internal/middleware"
	"github.com/classlens/admin-panel/internal/pkg/apperrors"
	"github.com/classlens/admin-panel/internal/pkg/session"
)

// base carries what every page controller needs: the session store (to tear
// a session down when the backend says 401) and a logger.
type base struct {
	sessions *session.Manager
	logger   zerolog.Logger
}

// expireSession clears the current session and sends the user back to the
// login page. Called whenever a backend call comes back unauthorized; the
// stored token is dead and there is nothing to retry with.
func (b *base) expireSession(c *gin.Context) {
	if sess := middleware.CurrentSession(c); sess != nil {
		b.sessions.Delete(sess.ID)
	}
	c.SetCookie(b.sessions.CookieName(), "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}

// handleUnauthorized reports whether err was an unauthorized response and,
// when it was, expires the session.
func (b *base) handleUnauthorized(c *gin.Context, err error) bool {
	if errors.Is(err, apperrors.ErrUnauthorized) {
		b.expireSession(c)
		return true
	}
	return false
}

// errorMessage renders an error for display. Network failures get the
// generic network message; backend errors surface whatever the backend said.
func errorMessage(err error) string {
	if errors.Is(err, apperrors.ErrBackendUnavailable) {
		return "Network error. Check if backend is running."
	}
	return err.Error()
}

// deleteFailureMessage formats the alert text for a failed delete.
func deleteFailureMessage(err error) string {
	var apiErr *apperrors.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("Delete failed: %d %s", apiErr.StatusCode, apiErr.RawBody)
	}
	return "Network error while deleting"
}

// pageData seeds the template data every dashboard page shares.
func pageData(c *gin.Context, active string) gin.H {
	data := gin.H{
		"Active": active,
		"Flash":  c.Query("flash"),
	}
	if sess := middleware.CurrentSession(c); sess != nil {
		data["Username"] = sess.Username
	}
	return data
}

// parseID converts a path or form id to the numeric form some entities carry.
// Non-numeric input yields zero, which renders as a blank id.
func parseID(id string) int64 {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// queryPage parses the 1-based page query parameter.
func queryPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// selectOption is one entry of a form select or checkbox group.
type selectOption struct {
	Value    string
	Label    string
	Selected bool
}

// departmentOptions builds the department select list with the current value
// marked.
func departmentOptions(departments []models.Department, selected string) []selectOption {
	options := make([]selectOption, 0, len(departments))
	for _, d := range departments {
		value := strconv.FormatInt(d.ID, 10)
		options = append(options, selectOption{
			Value:    value,
			Label:    d.Name,
			Selected: value == selected,
		})
	}
	return options
}

// subjectOptions builds the subject select or checkbox list with the current
// values marked.
func subjectOptions(subjects []models.Subject, selected map[string]bool) []selectOption {
	options := make([]selectOption, 0, len(subjects))
	for _, s := range subjects {
		value := strconv.FormatInt(s.ID, 10)
		options = append(options, selectOption{
			Value:    value,
			Label:    fmt.Sprintf("%s - %s", s.Code, s.Name),
			Selected: selected[value],
		})
	}
	return options
}

// yearOptions builds the fixed year dropdown used by the students page.
func yearOptions(selected string) []selectOption {
	options := make([]selectOption, 0, 4)
	for year := 1; year <= 4; year++ {
		value := strconv.Itoa(year)
		options = append(options, selectOption{
			Value:    value,
			Label:    "Year " + value,
			Selected: value == selected,
		})
	}
	return options
}
