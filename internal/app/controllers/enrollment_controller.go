package controllers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/classlens/admin-panel/internal/app/models"
	"github.com/classlens/admin-panel/internal/app/services"
	"github.com/classlens/admin-panel/internal/middleware"
	"github.com/classlens/admin-panel/internal/pkg/session"
)

// EnrollmentController renders the student-enrollments page and form.
type EnrollmentController struct {
	base
	enrollments *services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController.
func NewEnrollmentController(enrollments *services.EnrollmentService, sessions *session.Manager, lgr zerolog.Logger) *EnrollmentController {
	return &EnrollmentController{
		base:        base{sessions: sessions, logger: lgr},
		enrollments: enrollments,
	}
}

// enrollmentFormView carries the form values through the template. The PRN
// field locks on edit; an enrollment can move to another subject but never
// to another student.
type enrollmentFormView struct {
	ID         string
	StudentPRN string
	Subject    string
}

// List renders the enrollments table filtered by the search box.
func (ec *EnrollmentController) List(c *gin.Context) {
	token := middleware.Token(c)
	query := c.Query("q")

	all, filtered, err := ec.enrollments.List(c.Request.Context(), token, query)
	if err != nil {
		if ec.handleUnauthorized(c, err) {
			return
		}
		ec.logger.Error().Err(err).Msg("enrollments fetch failed")
	}

	data := pageData(c, "student-enrollments")
	data["Enrollments"] = filtered
	data["TotalCount"] = len(all)
	data["Query"] = query
	c.HTML(http.StatusOK, "enrollments.html", data)
}

// New renders a blank enrollment form.
func (ec *EnrollmentController) New(c *gin.Context) {
	ec.renderForm(c, http.StatusOK, enrollmentFormView{}, "")
}

// Edit renders the form pre-populated from a fresh fetch of the enrollment.
func (ec *EnrollmentController) Edit(c *gin.Context) {
	token := middleware.Token(c)
	enrollment, err := ec.enrollments.Get(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		if ec.handleUnauthorized(c, err) {
			return
		}
		c.Redirect(http.StatusFound, "/student-enrollments?flash="+url.QueryEscape(errorMessage(err)))
		return
	}
	ec.renderForm(c, http.StatusOK, enrollmentViewFromModel(enrollment), "")
}

// Save submits the form: create when no id travels with it, update otherwise.
func (ec *EnrollmentController) Save(c *gin.Context) {
	token := middleware.Token(c)
	id := c.PostForm("id")

	var form services.EnrollmentForm
	if err := c.ShouldBind(&form); err != nil {
		view := enrollmentFormView{ID: id, StudentPRN: form.StudentPRN, Subject: form.Subject}
		ec.renderForm(c, http.StatusBadRequest, view, "Subject is required")
		return
	}

	if err := ec.enrollments.Save(c.Request.Context(), token, id, form); err != nil {
		if ec.handleUnauthorized(c, err) {
			return
		}
		view := enrollmentFormView{ID: id, StudentPRN: form.StudentPRN, Subject: form.Subject}
		ec.renderForm(c, http.StatusOK, view, errorMessage(err))
		return
	}
	c.Redirect(http.StatusFound, "/student-enrollments")
}

// Delete removes an enrollment and returns to the list.
func (ec *EnrollmentController) Delete(c *gin.Context) {
	token := middleware.Token(c)
	if err := ec.enrollments.Delete(c.Request.Context(), token, c.Param("id")); err != nil {
		if ec.handleUnauthorized(c, err) {
			return
		}
		c.Redirect(http.StatusFound, "/student-enrollments?flash="+url.QueryEscape(deleteFailureMessage(err)))
		return
	}
	c.Redirect(http.StatusFound, "/student-enrollments")
}

func (ec *EnrollmentController) renderForm(c *gin.Context, status int, view enrollmentFormView, formError string) {
	subjects, err := ec.enrollments.Subjects(c.Request.Context(), middleware.Token(c))
	if err != nil {
		if ec.handleUnauthorized(c, err) {
			return
		}
		ec.logger.Warn().Err(err).Msg("subjects fetch failed")
	}

	selected := map[string]bool{view.Subject: true}

	data := pageData(c, "student-enrollments")
	data["Form"] = view
	data["IsEdit"] = view.ID != ""
	data["Error"] = formError
	data["SubjectOptions"] = subjectOptions(subjects, selected)
	c.HTML(status, "enrollment_form.html", data)
}

func enrollmentViewFromModel(e models.Enrollment) enrollmentFormView {
	return enrollmentFormView{
		ID:         strconv.FormatInt(e.ID, 10),
		StudentPRN: e.StudentPRN,
		Subject:    strconv.FormatInt(e.Subject, 10),
	}
}
