package dto

import (
	"encoding/json"
	"strconv"
	"strings"
)

// The backend is loose about scalar types: ids arrive as numbers or strings,
// years as numbers or strings, departments as ids, numeric strings, display
// names or embedded objects. These types absorb that on the way in so the
// rest of the application only ever sees one shape.

// FlexString decodes a JSON string, number, bool or null into a string.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*f = ""
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*f = FlexString(asString)
		return nil
	}

	var asNumber json.Number
	if err := json.Unmarshal(data, &asNumber); err == nil {
		*f = FlexString(asNumber.String())
		return nil
	}

	var asBool bool
	if err := json.Unmarshal(data, &asBool); err == nil {
		*f = FlexString(strconv.FormatBool(asBool))
		return nil
	}

	// last resort: raw token
	*f = FlexString(strings.Trim(trimmed, `"`))
	return nil
}

// String returns the decoded value.
func (f FlexString) String() string {
	return string(f)
}

// FlexInt64 decodes a JSON number or numeric string into an int64, zero when
// absent or unparseable.
type FlexInt64 int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt64) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*f = 0
		return nil
	}

	var asNumber json.Number
	if err := json.Unmarshal(data, &asNumber); err == nil {
		if n, err := asNumber.Int64(); err == nil {
			*f = FlexInt64(n)
			return nil
		}
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		if n, err := strconv.ParseInt(strings.TrimSpace(asString), 10, 64); err == nil {
			*f = FlexInt64(n)
			return nil
		}
	}

	*f = 0
	return nil
}

// Int64 returns the decoded value.
func (f FlexInt64) Int64() int64 {
	return int64(f)
}

// firstString returns the first non-empty value, the "prefer the first key
// present" rule applied after decoding.
func firstString(values ...FlexString) string {
	for _, v := range values {
		if v != "" {
			return string(v)
		}
	}
	return ""
}

// embeddedDepartment is the object form of a department reference.
type embeddedDepartment struct {
	ID   FlexInt64 `json:"id"`
	Name string    `json:"name"`
}

// departmentParts resolves the department field of a record into the raw
// id-or-name value and a display name. raw is the entity's own "department"
// key, which may be a number, a numeric string, a display name string, an
// {id, name} object or absent; deptID and deptName are the sibling
// "department_id" / "department_name" keys when the backend used those
// instead.
func departmentParts(raw json.RawMessage, deptID FlexString, deptName string) (department, name string) {
	department = string(deptID)
	name = deptName

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return department, name
	}

	if strings.HasPrefix(trimmed, "{") {
		var obj embeddedDepartment
		if err := json.Unmarshal(raw, &obj); err == nil {
			if obj.ID != 0 {
				department = strconv.FormatInt(obj.ID.Int64(), 10)
			}
			if name == "" {
				name = obj.Name
			}
			return department, name
		}
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		department = asString
		// a numeric string is an id, not a display name
		if _, numErr := strconv.ParseInt(strings.TrimSpace(asString), 10, 64); numErr != nil && name == "" {
			name = asString
		}
		return department, name
	}

	var asNumber json.Number
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		department = asNumber.String()
		return department, name
	}

	return department, name
}
