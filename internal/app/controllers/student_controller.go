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

// StudentController renders the students page and form.
type StudentController struct {
	base
	students *services.StudentService
}

// NewStudentController creates a new StudentController.
func NewStudentController(students *services.StudentService, sessions *session.Manager, lgr zerolog.Logger) *StudentController {
	return &StudentController{
		base:     base{sessions: sessions, logger: lgr},
		students: students,
	}
}

// List renders one server-side page of students with the client-side
// search/year/department filters applied within it.
func (sc *StudentController) List(c *gin.Context) {
	token := middleware.Token(c)
	filter := services.Filter{
		Query:      c.Query("q"),
		Year:       c.Query("year"),
		Department: c.Query("dept"),
	}
	page := queryPage(c)

	loaded, filtered, err := sc.students.Page(c.Request.Context(), token, page, filter)
	if err != nil {
		if sc.handleUnauthorized(c, err) {
			return
		}
		// leave the table empty; the page itself still renders
		sc.logger.Error().Err(err).Int("page", page).Msg("students fetch failed")
		loaded = models.StudentPage{Page: page, TotalPages: 1}
		filtered = nil
	}

	departments, err := sc.students.Departments(c.Request.Context(), token)
	if err != nil {
		if sc.handleUnauthorized(c, err) {
			return
		}
		sc.logger.Warn().Err(err).Msg("departments fetch failed")
	}

	data := pageData(c, "students")
	data["Students"] = filtered
	data["TotalCount"] = loaded.Count
	data["Page"] = loaded.Page
	data["TotalPages"] = loaded.TotalPages
	data["PrevPage"] = loaded.Page - 1
	data["NextPage"] = loaded.Page + 1
	data["HasPrev"] = loaded.Page > 1
	data["HasNext"] = loaded.Page < loaded.TotalPages
	data["Query"] = filter.Query
	data["YearOptions"] = yearOptions(filter.Year)
	data["DepartmentOptions"] = departmentOptions(departments, filter.Department)
	c.HTML(http.StatusOK, "students.html", data)
}

// New renders a blank student form.
func (sc *StudentController) New(c *gin.Context) {
	sc.renderForm(c, http.StatusOK, models.Student{}, "")
}

// Edit renders the form pre-populated from a fresh fetch of the student.
func (sc *StudentController) Edit(c *gin.Context) {
	token := middleware.Token(c)
	student, err := sc.students.Get(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		if sc.handleUnauthorized(c, err) {
			return
		}
		c.Redirect(http.StatusFound, "/students?flash="+url.QueryEscape(errorMessage(err)))
		return
	}
	sc.renderForm(c, http.StatusOK, student, "")
}

// Save submits the form: create when no id travels with it, update
// otherwise.
func (sc *StudentController) Save(c *gin.Context) {
	token := middleware.Token(c)
	id := c.PostForm("id")

	var form services.StudentForm
	if err := c.ShouldBind(&form); err != nil {
		sc.renderForm(c, http.StatusBadRequest, studentFromForm(id, form), "Name and email are required")
		return
	}

	if err := sc.students.Save(c.Request.Context(), token, id, form); err != nil {
		if sc.handleUnauthorized(c, err) {
			return
		}
		sc.renderForm(c, http.StatusOK, studentFromForm(id, form), errorMessage(err))
		return
	}
	c.Redirect(http.StatusFound, "/students")
}

// Delete removes a student and returns to the list, carrying the failure
// message when the backend refused.
func (sc *StudentController) Delete(c *gin.Context) {
	token := middleware.Token(c)
	if err := sc.students.Delete(c.Request.Context(), token, c.Param("id")); err != nil {
		if sc.handleUnauthorized(c, err) {
			return
		}
		c.Redirect(http.StatusFound, "/students?flash="+url.QueryEscape(deleteFailureMessage(err)))
		return
	}
	c.Redirect(http.StatusFound, "/students")
}

// renderForm renders the student form around an entity, fetching the
// department reference list and reconciling a name-valued department to its
// id once that list is in hand.
func (sc *StudentController) renderForm(c *gin.Context, status int, student models.Student, formError string) {
	departments, err := sc.students.Departments(c.Request.Context(), middleware.Token(c))
	if err != nil {
		if sc.handleUnauthorized(c, err) {
			return
		}
		sc.logger.Warn().Err(err).Msg("departments fetch failed")
	}

	selected := services.ReconcileDepartment(student.Department, departments)

	data := pageData(c, "students")
	data["Student"] = student
	data["IsEdit"] = student.ID != ""
	data["Error"] = formError
	data["YearOptions"] = yearOptions(student.Year)
	data["DepartmentOptions"] = departmentOptions(departments, selected)
	c.HTML(status, "student_form.html", data)
}

// studentFromForm rebuilds the entity shown in a re-rendered form from the
// submitted values.
func studentFromForm(id string, form services.StudentForm) models.Student {
	return models.Student{
		ID:         id,
		Name:       form.Name,
		Email:      form.Email,
		PRN:        form.PRN,
		Year:       form.Year,
		Department: form.Department,
	}
}
