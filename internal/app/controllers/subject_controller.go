package controllers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/classlens/admin-panel/internal/app/models"
	"github.com/classlens/admin-panel/internal/app/services"
	"github.com/classlens/admin-panel/internal/middleware"
	"github.com/classlens/admin-panel/internal/pkg/session"
)

// SubjectController renders the subjects page and form.
type SubjectController struct {
	base
	subjects *services.SubjectService
}

// NewSubjectController creates a new SubjectController.
func NewSubjectController(subjects *services.SubjectService, sessions *session.Manager, lgr zerolog.Logger) *SubjectController {
	return &SubjectController{
		base:     base{sessions: sessions, logger: lgr},
		subjects: subjects,
	}
}

// List renders the subjects table filtered by the search box.
func (sc *SubjectController) List(c *gin.Context) {
	token := middleware.Token(c)
	query := c.Query("q")

	all, filtered, err := sc.subjects.List(c.Request.Context(), token, query)
	if err != nil {
		if sc.handleUnauthorized(c, err) {
			return
		}
		sc.logger.Error().Err(err).Msg("subjects fetch failed")
	}

	data := pageData(c, "subjects")
	data["Subjects"] = filtered
	data["TotalCount"] = len(all)
	data["Query"] = query
	c.HTML(http.StatusOK, "subjects.html", data)
}

// New renders a blank subject form.
func (sc *SubjectController) New(c *gin.Context) {
	sc.renderForm(c, http.StatusOK, models.Subject{}, "")
}

// Edit renders the form pre-populated from a fresh fetch of the subject.
func (sc *SubjectController) Edit(c *gin.Context) {
	token := middleware.Token(c)
	subject, err := sc.subjects.Get(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		if sc.handleUnauthorized(c, err) {
			return
		}
		c.Redirect(http.StatusFound, "/subjects?flash="+url.QueryEscape(errorMessage(err)))
		return
	}
	sc.renderForm(c, http.StatusOK, subject, "")
}

// Save submits the form: create when no id travels with it, update otherwise.
func (sc *SubjectController) Save(c *gin.Context) {
	token := middleware.Token(c)
	id := c.PostForm("id")

	var form services.SubjectForm
	if err := c.ShouldBind(&form); err != nil {
		sc.renderForm(c, http.StatusBadRequest, subjectFromForm(id, form), "Code and name are required")
		return
	}

	if err := sc.subjects.Save(c.Request.Context(), token, id, form); err != nil {
		if sc.handleUnauthorized(c, err) {
			return
		}
		sc.renderForm(c, http.StatusOK, subjectFromForm(id, form), errorMessage(err))
		return
	}
	c.Redirect(http.StatusFound, "/subjects")
}

// Delete removes a subject and returns to the list.
func (sc *SubjectController) Delete(c *gin.Context) {
	token := middleware.Token(c)
	if err := sc.subjects.Delete(c.Request.Context(), token, c.Param("id")); err != nil {
		if sc.handleUnauthorized(c, err) {
			return
		}
		c.Redirect(http.StatusFound, "/subjects?flash="+url.QueryEscape(deleteFailureMessage(err)))
		return
	}
	c.Redirect(http.StatusFound, "/subjects")
}

func (sc *SubjectController) renderForm(c *gin.Context, status int, subject models.Subject, formError string) {
	data := pageData(c, "subjects")
	data["Subject"] = subject
	data["IsEdit"] = subject.ID != 0
	data["Error"] = formError
	c.HTML(status, "subject_form.html", data)
}

func subjectFromForm(id string, form services.SubjectForm) models.Subject {
	subject := models.Subject{
		Code:        form.Code,
		Name:        form.Name,
		Description: form.Description,
	}
	if id != "" {
		subject.ID = parseID(id)
	}
	return subject
}
