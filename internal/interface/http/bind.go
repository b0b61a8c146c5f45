package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin/binding"
)

func jsonUnmarshal(b []byte, v any) error { return json.Unmarshal(b, v) }

// bindJSON decodes an already-read body and runs the same validator gin's
// ShouldBindJSON uses. Needed where a route sniffs the payload shape before
// picking a request struct.
func bindJSON(body []byte, obj any) error {
	if err := json.Unmarshal(body, obj); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(obj)
}
