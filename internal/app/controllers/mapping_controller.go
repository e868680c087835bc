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

// MappingController renders the subject-from-department page and form.
type MappingController struct {
	base
	mappings *services.MappingService
}

// NewMappingController creates a new MappingController.
func NewMappingController(mappings *services.MappingService, sessions *session.Manager, lgr zerolog.Logger) *MappingController {
	return &MappingController{
		base:     base{sessions: sessions, logger: lgr},
		mappings: mappings,
	}
}

// mappingFormView holds the form field values as they travel through the
// template, whether they came from a fetched mapping or a failed submit.
type mappingFormView struct {
	ID         string
	Department string
	Year       string
	Semester   string
	SubjectIDs map[string]bool
}

// List renders the mappings table filtered by the search box.
func (mc *MappingController) List(c *gin.Context) {
	token := middleware.Token(c)
	query := c.Query("q")

	all, filtered, err := mc.mappings.List(c.Request.Context(), token, query)
	if err != nil {
		if mc.handleUnauthorized(c, err) {
			return
		}
		mc.logger.Error().Err(err).Msg("mappings fetch failed")
	}

	data := pageData(c, "subject-from-dept")
	data["Mappings"] = filtered
	data["TotalCount"] = len(all)
	data["Query"] = query
	c.HTML(http.StatusOK, "mappings.html", data)
}

// New renders a blank mapping form.
func (mc *MappingController) New(c *gin.Context) {
	mc.renderForm(c, http.StatusOK, mappingFormView{SubjectIDs: map[string]bool{}}, "")
}

// Edit renders the form pre-populated from a fresh fetch of the mapping.
func (mc *MappingController) Edit(c *gin.Context) {
	token := middleware.Token(c)
	mapping, err := mc.mappings.Get(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		if mc.handleUnauthorized(c, err) {
			return
		}
		c.Redirect(http.StatusFound, "/subject-from-dept?flash="+url.QueryEscape(errorMessage(err)))
		return
	}
	mc.renderForm(c, http.StatusOK, mappingViewFromModel(mapping), "")
}

// Save submits the form: create when no id travels with it, update otherwise.
func (mc *MappingController) Save(c *gin.Context) {
	token := middleware.Token(c)
	id := c.PostForm("id")

	var form services.MappingForm
	if err := c.ShouldBind(&form); err != nil {
		mc.renderForm(c, http.StatusBadRequest, mappingViewFromForm(id, form), "Department, year and semester are required")
		return
	}

	if err := mc.mappings.Save(c.Request.Context(), token, id, form); err != nil {
		if mc.handleUnauthorized(c, err) {
			return
		}
		mc.renderForm(c, http.StatusOK, mappingViewFromForm(id, form), errorMessage(err))
		return
	}
	c.Redirect(http.StatusFound, "/subject-from-dept")
}

// Delete removes a mapping and returns to the list.
func (mc *MappingController) Delete(c *gin.Context) {
	token := middleware.Token(c)
	if err := mc.mappings.Delete(c.Request.Context(), token, c.Param("id")); err != nil {
		if mc.handleUnauthorized(c, err) {
			return
		}
		c.Redirect(http.StatusFound, "/subject-from-dept?flash="+url.QueryEscape(deleteFailureMessage(err)))
		return
	}
	c.Redirect(http.StatusFound, "/subject-from-dept")
}

func (mc *MappingController) renderForm(c *gin.Context, status int, view mappingFormView, formError string) {
	departments, subjects, err := mc.mappings.FormData(c.Request.Context(), middleware.Token(c))
	if err != nil {
		if mc.handleUnauthorized(c, err) {
			return
		}
		mc.logger.Warn().Err(err).Msg("mapping form data fetch failed")
	}

	data := pageData(c, "subject-from-dept")
	data["Form"] = view
	data["IsEdit"] = view.ID != ""
	data["Error"] = formError
	data["DepartmentOptions"] = departmentOptions(departments, view.Department)
	data["SubjectOptions"] = subjectOptions(subjects, view.SubjectIDs)
	c.HTML(status, "mapping_form.html", data)
}

func mappingViewFromModel(m models.SubjectMapping) mappingFormView {
	selected := make(map[string]bool, len(m.Subjects))
	for _, s := range m.Subjects {
		selected[strconv.FormatInt(s.ID, 10)] = true
	}
	return mappingFormView{
		ID:         strconv.FormatInt(m.ID, 10),
		Department: strconv.FormatInt(m.Department, 10),
		Year:       strconv.Itoa(m.Year),
		Semester:   strconv.Itoa(m.Semester),
		SubjectIDs: selected,
	}
}

func mappingViewFromForm(id string, form services.MappingForm) mappingFormView {
	selected := make(map[string]bool, len(form.SubjectIDs))
	for _, sid := range form.SubjectIDs {
		selected[sid] = true
	}
	return mappingFormView{
		ID:         id,
		Department: form.Department,
		Year:       form.Year,
		Semester:   form.Semester,
		SubjectIDs: selected,
	}
}
