package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/leaderturk/property-management/pkg/errors"
)

// ParseQueryBool reads a boolean flag. Absent or empty yields false.
func ParseQueryBool(r *http.Request, key string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a boolean").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

const maxQueryValue = 128

// QueryString returns the trimmed value of key, or "" when absent. Values
// longer than any record identifier are cut short.
func QueryString(r *http.Request, key string) string {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if len(v) > maxQueryValue {
		v = v[:maxQueryValue]
	}
	return v
}
