package dto

import (
	"encoding/json"
	"fmt"
)

// RegisterUserRequest captures the POST /registerUser payload.
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,utf16max=23"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Sex      string `json:"sex" validate:"required,oneof=M F S"`
}

// UnmarshalJSON reads only the exact lowercase keys. encoding/json would
// otherwise also accept keys such as "USERNAME" or "Username".
// Missing keys and null values decode to "".
func (r *RegisterUserRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	fields := []struct {
		key string
		dst *string
	}{
		{"username", &r.Username},
		{"password", &r.Password},
		{"email", &r.Email},
		{"sex", &r.Sex},
	}
	for _, f := range fields {
		*f.dst = ""
		value, ok := raw[f.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, f.dst); err != nil {
			return fmt.Errorf("field %s: %w", f.key, err)
		}
	}
	return nil
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
