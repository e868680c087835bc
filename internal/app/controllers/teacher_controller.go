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

// TeacherController renders the teachers page and form.
type TeacherController struct {
	base
	teachers *services.TeacherService
}

// NewTeacherController creates a new TeacherController.
func NewTeacherController(teachers *services.TeacherService, sessions *session.Manager, lgr zerolog.Logger) *TeacherController {
	return &TeacherController{
		base:     base{sessions: sessions, logger: lgr},
		teachers: teachers,
	}
}

// List renders the teachers table with search and department filters applied.
func (tc *TeacherController) List(c *gin.Context) {
	token := middleware.Token(c)
	filter := services.Filter{
		Query:      c.Query("q"),
		Department: c.Query("dept"),
	}

	all, filtered, err := tc.teachers.List(c.Request.Context(), token, filter)
	if err != nil {
		if tc.handleUnauthorized(c, err) {
			return
		}
		tc.logger.Error().Err(err).Msg("teachers fetch failed")
	}

	departments, err := tc.teachers.Departments(c.Request.Context(), token)
	if err != nil {
		if tc.handleUnauthorized(c, err) {
			return
		}
		tc.logger.Warn().Err(err).Msg("departments fetch failed")
	}

	data := pageData(c, "teachers")
	data["Teachers"] = filtered
	data["TotalCount"] = len(all)
	data["Query"] = filter.Query
	data["DepartmentOptions"] = departmentOptions(departments, filter.Department)
	c.HTML(http.StatusOK, "teachers.html", data)
}

// New renders a blank teacher form.
func (tc *TeacherController) New(c *gin.Context) {
	tc.renderForm(c, http.StatusOK, models.Teacher{}, "")
}

// Edit renders the form pre-populated from a fresh fetch of the teacher.
func (tc *TeacherController) Edit(c *gin.Context) {
	token := middleware.Token(c)
	teacher, err := tc.teachers.Get(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		if tc.handleUnauthorized(c, err) {
			return
		}
		c.Redirect(http.StatusFound, "/teachers?flash="+url.QueryEscape(errorMessage(err)))
		return
	}
	tc.renderForm(c, http.StatusOK, teacher, "")
}

// Save submits the form: create when no id travels with it, update otherwise.
func (tc *TeacherController) Save(c *gin.Context) {
	token := middleware.Token(c)
	id := c.PostForm("id")

	var form services.TeacherForm
	if err := c.ShouldBind(&form); err != nil {
		tc.renderForm(c, http.StatusBadRequest, teacherFromForm(id, form), "Name and email are required")
		return
	}

	if err := tc.teachers.Save(c.Request.Context(), token, id, form); err != nil {
		if tc.handleUnauthorized(c, err) {
			return
		}
		tc.renderForm(c, http.StatusOK, teacherFromForm(id, form), errorMessage(err))
		return
	}
	c.Redirect(http.StatusFound, "/teachers")
}

// Delete removes a teacher and returns to the list.
func (tc *TeacherController) Delete(c *gin.Context) {
	token := middleware.Token(c)
	if err := tc.teachers.Delete(c.Request.Context(), token, c.Param("id")); err != nil {
		if tc.handleUnauthorized(c, err) {
			return
		}
		c.Redirect(http.StatusFound, "/teachers?flash="+url.QueryEscape(deleteFailureMessage(err)))
		return
	}
	c.Redirect(http.StatusFound, "/teachers")
}

func (tc *TeacherController) renderForm(c *gin.Context, status int, teacher models.Teacher, formError string) {
	departments, err := tc.teachers.Departments(c.Request.Context(), middleware.Token(c))
	if err != nil {
		if tc.handleUnauthorized(c, err) {
			return
		}
		tc.logger.Warn().Err(err).Msg("departments fetch failed")
	}

	selected := services.ReconcileDepartment(teacher.Department, departments)

	data := pageData(c, "teachers")
	data["Teacher"] = teacher
	data["IsEdit"] = teacher.ID != ""
	data["Error"] = formError
	data["DepartmentOptions"] = departmentOptions(departments, selected)
	c.HTML(status, "teacher_form.html", data)
}

func teacherFromForm(id string, form services.TeacherForm) models.Teacher {
	return models.Teacher{
		ID:         id,
		Name:       form.Name,
		Email:      form.Email,
		Phone:      form.Phone,
		Department: form.Department,
	}
}
