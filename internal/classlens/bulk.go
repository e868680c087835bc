package classlens

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/url"
	"strings"

	"github.com/classlens/admin-panel/internal/pkg/apperrors"
)

// TemplateFile is a bulk-upload template fetched from the backend.
type TemplateFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// BulkResult is the classified outcome of a bulk upload. A result with row
// errors keeps the upload panel open for inspection whether or not the
// request as a whole succeeded.
type BulkResult struct {
	OK        bool
	Message   string
	Error     string
	RowErrors []string
}

// KeepOpen reports whether the upload panel should stay open.
func (r BulkResult) KeepOpen() bool {
	return !r.OK || len(r.RowErrors) > 0
}

// DownloadTemplate fetches the server-generated Excel template for a
// resource, preserving the filename the backend advertised.
func (c *Client) DownloadTemplate(ctx context.Context, token, resource string) (*TemplateFile, error) {
	path := fmt.Sprintf("/api/admin/%s/download_template/", resource)
	resp, err := c.request(ctx, token).
		SetHeader("Accept", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet, text/csv, */*").
		Get(path)
	if err := c.check(resp, err); err != nil {
		return nil, err
	}

	fallback := fmt.Sprintf("%s_template.xlsx", resource)
	return &TemplateFile{
		Filename:    filenameFromDisposition(resp.Header().Get("Content-Disposition"), fallback),
		ContentType: resp.Header().Get("Content-Type"),
		Content:     resp.Body(),
	}, nil
}

// BulkUpload posts a template file to the resource's bulk-import endpoint as
// multipart form data. The multipart boundary is set by the transport, never
// by hand. The returned error covers transport failures only; HTTP-level
// outcomes, including row errors, are classified into the BulkResult.
func (c *Client) BulkUpload(ctx context.Context, token, resource, filename string, file io.Reader) (BulkResult, error) {
	path := fmt.Sprintf("/api/admin/%s/bulk_upload/", resource)
	resp, err := c.request(ctx, token).
		SetFileReader("file", filename, file).
		Post(path)
	if err != nil {
		return BulkResult{}, fmt.Errorf("%w: %v", apperrors.ErrBackendUnavailable, err)
	}
	return ParseBulkResponse(resp.StatusCode(), resp.Body(), filename), nil
}

// ParseBulkResponse classifies a bulk-upload response. The body is treated
// as text first and JSON-parsed only tolerantly, because the backend answers
// with structured errors, a plain detail, or a non-JSON error page depending
// on what went wrong.
func ParseBulkResponse(status int, body []byte, uploadedName string) BulkResult {
	text := strings.TrimSpace(string(body))

	var object map[string]json.RawMessage
	isObject := json.Unmarshal(body, &object) == nil

	var rowErrors []string
	if isObject {
		rowErrors = decodeRowErrors(object["errors"])
	}

	if status < 200 || status >= 300 {
		result := BulkResult{OK: false, RowErrors: rowErrors}
		switch {
		case len(rowErrors) > 0:
			result.Error = "Some rows failed, see details below"
		case isObject:
			if msg := stringValue(object["detail"]); msg != "" {
				result.Error = msg
			} else if msg := stringValue(object["error"]); msg != "" {
				result.Error = msg
			} else {
				result.Error = text
			}
		case text != "":
			// a bare JSON string or a non-JSON body
			var asString string
			if json.Unmarshal(body, &asString) == nil {
				result.Error = asString
			} else {
				result.Error = text
			}
		default:
			result.Error = fmt.Sprintf("Upload failed (%d)", status)
		}
		return result
	}

	result := BulkResult{OK: true, RowErrors: rowErrors}
	if isObject {
		for _, key := range []string{"message", "created", "created_count"} {
			if msg := stringValue(object[key]); msg != "" {
				result.Message = msg
				break
			}
		}
	}
	if result.Message == "" {
		result.Message = fmt.Sprintf("Uploaded %s", uploadedName)
	}
	return result
}

// decodeRowErrors turns the backend's errors array into display strings,
// stringifying non-string entries rather than dropping them.
func decodeRowErrors(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	errors := make([]string, 0, len(items))
	for _, item := range items {
		if s := stringValue(item); s != "" {
			errors = append(errors, s)
		} else {
			errors = append(errors, string(item))
		}
	}
	return errors
}

// stringValue renders a raw JSON scalar as display text.
func stringValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}
	var asNumber json.Number
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber.String()
	}
	return ""
}

// filenameFromDisposition extracts the filename from a Content-Disposition
// header, handling both the plain and the RFC 5987 encoded forms.
func filenameFromDisposition(disposition, fallback string) string {
	if disposition == "" {
		return fallback
	}
	if _, params, err := mime.ParseMediaType(disposition); err == nil {
		if name := params["filename"]; name != "" {
			return name
		}
	}
	// some backends emit filename*=UTF-8''... without quoting the rest well
	// enough for ParseMediaType
	if idx := strings.Index(disposition, "filename*=UTF-8''"); idx >= 0 {
		encoded := disposition[idx+len("filename*=UTF-8''"):]
		if semi := strings.IndexByte(encoded, ';'); semi >= 0 {
			encoded = encoded[:semi]
		}
		if decoded, err := url.QueryUnescape(encoded); err == nil && decoded != "" {
			return decoded
		}
		return encoded
	}
	return fallback
}
