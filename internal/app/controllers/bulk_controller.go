package controllers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/classlens/admin-panel/internal/app/services"
	"github.com/classlens/admin-panel/internal/classlens"
	"github.com/classlens/admin-panel/internal/middleware"
	"github.com/classlens/admin-panel/internal/pkg/session"
)

// bulkLabels maps a bulk resource type to the heading shown on its page.
var bulkLabels = map[string]string{
	classlens.ResourceTeachers:    "Teachers",
	classlens.ResourceStudents:    "Students",
	classlens.ResourceSubjects:    "Subjects",
	classlens.ResourceMappings:    "Subject Mappings",
	classlens.ResourceEnrollments: "Student Enrollments",
}

// BulkController renders the bulk-upload panel and serves template downloads.
type BulkController struct {
	base
	bulk           *services.BulkService
	autoCloseDelay time.Duration
}

// NewBulkController creates a new BulkController. autoCloseDelay is how long
// a clean upload result stays on screen before returning to the resource
// page.
func NewBulkController(bulk *services.BulkService, sessions *session.Manager, autoCloseDelay time.Duration, lgr zerolog.Logger) *BulkController {
	return &BulkController{
		base:           base{sessions: sessions, logger: lgr},
		bulk:           bulk,
		autoCloseDelay: autoCloseDelay,
	}
}

// Show renders the upload panel for a resource type. When the Excel template
// download fell back to CSV the panel carries a notice explaining it.
func (bc *BulkController) Show(c *gin.Context) {
	resource := c.Param("type")
	data, ok := bc.panelData(c, resource)
	if !ok {
		return
	}
	if c.Query("fallback") == "1" {
		data["Notice"] = "Excel template unavailable, downloading CSV instead."
		data["FallbackDownload"] = "/bulk/" + resource + "/template.csv"
	}
	c.HTML(http.StatusOK, "bulk.html", data)
}

// CSVTemplate serves the locally generated CSV template.
func (bc *BulkController) CSVTemplate(c *gin.Context) {
	resource := c.Param("type")
	name, content, err := services.CSVTemplate(resource)
	if err != nil {
		c.Redirect(http.StatusFound, "/?flash="+url.QueryEscape(errorMessage(err)))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", content)
}

// ExcelTemplate proxies the backend's Excel template. When the backend cannot
// serve one the panel reloads with a notice and hands out the CSV template
// instead.
func (bc *BulkController) ExcelTemplate(c *gin.Context) {
	resource := c.Param("type")
	token := middleware.Token(c)

	file, fellBack, err := bc.bulk.ExcelTemplate(c.Request.Context(), token, resource)
	if err != nil {
		if bc.handleUnauthorized(c, err) {
			return
		}
		c.Redirect(http.StatusFound, "/bulk/"+resource+"?flash="+url.QueryEscape(errorMessage(err)))
		return
	}
	if fellBack {
		bc.logger.Warn().Str("resource", resource).Msg("excel template unavailable, falling back to csv")
		c.Redirect(http.StatusFound, "/bulk/"+resource+"?fallback=1")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}

// Upload receives the multipart file, forwards it, and renders the outcome.
// A clean result auto-closes back to the resource page; row errors keep the
// panel open.
func (bc *BulkController) Upload(c *gin.Context) {
	resource := c.Param("type")
	token := middleware.Token(c)

	data, ok := bc.panelData(c, resource)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		data["Result"] = classlens.BulkResult{Error: "Choose a file to upload"}
		c.HTML(http.StatusBadRequest, "bulk.html", data)
		return
	}

	file, err := header.Open()
	if err != nil {
		data["Result"] = classlens.BulkResult{Error: "Could not read the uploaded file"}
		c.HTML(http.StatusBadRequest, "bulk.html", data)
		return
	}
	defer file.Close()

	result, err := bc.bulk.Upload(c.Request.Context(), token, resource, header.Filename, file)
	if err != nil {
		if bc.handleUnauthorized(c, err) {
			return
		}
		data["Result"] = classlens.BulkResult{Error: errorMessage(err)}
		c.HTML(http.StatusOK, "bulk.html", data)
		return
	}

	data["Result"] = result
	if !result.KeepOpen() {
		data["AutoCloseMillis"] = bc.autoCloseDelay.Milliseconds()
		data["AutoCloseTarget"] = "/" + resource
	}
	c.HTML(http.StatusOK, "bulk.html", data)
}

// panelData builds the shared template data for the upload panel, rejecting
// unknown resource types with a redirect to the overview page.
func (bc *BulkController) panelData(c *gin.Context, resource string) (gin.H, bool) {
	spec, err := services.TemplateFor(resource)
	if err != nil {
		c.Redirect(http.StatusFound, "/?flash="+url.QueryEscape("Unknown bulk upload type"))
		return nil, false
	}

	data := pageData(c, resource)
	data["Resource"] = resource
	data["Label"] = bulkLabels[resource]
	data["Headers"] = spec.Headers
	data["Example"] = spec.Example
	data["BackTo"] = "/" + resource
	return data, true
}
