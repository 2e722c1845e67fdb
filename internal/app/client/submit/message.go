package submit

import "encoding/json"

// errorMessage pulls the "error" field out of a JSON error body.
func errorMessage(body string) string {
	var r reply
	if json.Unmarshal([]byte(body), &r) == nil && r.Error != "" {
		return r.Error
	}
	return ""
}
