package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/classlens/admin-panel/internal/classlens"
	"github.com/classlens/admin-panel/internal/pkg/apperrors"
	"github.com/classlens/admin-panel/internal/pkg/session"
)

// AuthController handles login, registration and logout.
type AuthController struct {
	api      *classlens.Client
	sessions *session.Manager
	logger   zerolog.Logger
}

// NewAuthController creates a new AuthController.
func NewAuthController(api *classlens.Client, sessions *session.Manager, lgr zerolog.Logger) *AuthController {
	return &AuthController{api: api, sessions: sessions, logger: lgr}
}

// credentialsForm is the login and registration form.
type credentialsForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// ShowLogin renders the login page, or goes straight to the dashboard when a
// live session already exists.
func (ac *AuthController) ShowLogin(c *gin.Context) {
	if id, err := c.Cookie(ac.sessions.CookieName()); err == nil && id != "" {
		if _, err := ac.sessions.Get(id); err == nil {
			c.Redirect(http.StatusFound, "/")
			return
		}
	}
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Notice":   c.Query("notice"),
		"Username": "",
	})
}

// Login exchanges the submitted credentials for a session.
func (ac *AuthController) Login(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{
			"Error":    "Username and password are required",
			"Username": c.PostForm("username"),
		})
		return
	}

	result, err := ac.api.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		ac.logger.Warn().Err(err).Str("username", form.Username).Msg("login failed")
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Error":    loginErrorMessage(err),
			"Username": form.Username,
		})
		return
	}

	sess := ac.sessions.Create(result.Username, result.Access, result.Refresh)
	c.SetCookie(ac.sessions.CookieName(), sess.ID, 0, "/", "", false, true)
	ac.logger.Info().Str("username", result.Username).Msg("admin logged in")
	c.Redirect(http.StatusFound, "/")
}

// ShowRegister renders the registration page.
func (ac *AuthController) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"Username": ""})
}

// Register creates a new admin account and sends the user back to the login
// page on success.
func (ac *AuthController) Register(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"Error":    "Username and password are required",
			"Username": c.PostForm("username"),
		})
		return
	}

	if err := ac.api.CreateUser(c.Request.Context(), form.Username, form.Password); err != nil {
		ac.logger.Warn().Err(err).Str("username", form.Username).Msg("registration failed")
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Error":    loginErrorMessage(err),
			"Username": form.Username,
		})
		return
	}

	c.Redirect(http.StatusFound, "/login?notice=Account+created.+Sign+in+to+continue.")
}

// Logout tears the session down.
func (ac *AuthController) Logout(c *gin.Context) {
	if id, err := c.Cookie(ac.sessions.CookieName()); err == nil && id != "" {
		ac.sessions.Delete(id)
	}
	c.SetCookie(ac.sessions.CookieName(), "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}

// loginErrorMessage picks the message shown under the credentials form: the
// backend's detail, else the first username/password field error, else a
// generic failure, with network failures called out separately.
func loginErrorMessage(err error) string {
	if errors.Is(err, apperrors.ErrBackendUnavailable) {
		return "Network error. Check if backend is running."
	}

	var apiErr *apperrors.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		if msg := apiErr.FieldError("username"); msg != "" {
			return msg
		}
		if msg := apiErr.FieldError("password"); msg != "" {
			return msg
		}
		return "Login failed"
	}
	return err.Error()
}
