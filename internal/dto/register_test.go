package dto

import (
	"encoding/json"
	"testing"
)

func TestRegisterUserRequest_UnmarshalJSON(t *testing.T) {
	tests := map[string]struct {
		body string
		want RegisterUserRequest
	}{
		"exact keys": {
			body: `{"username":"bob","password":"p","email":"e@x","sex":"m"}`,
			want: RegisterUserRequest{Username: "bob", Password: "p", Email: "e@x", Sex: "m"},
		},
		"other casings are ignored": {
			body: `{"USERNAME":"bob","Password":"p","EMAIL":"e@x","SEX":"m"}`,
			want: RegisterUserRequest{},
		},
		"case variant does not clobber exact key": {
			body: `{"username":"bob","Username":""}`,
			want: RegisterUserRequest{Username: "bob"},
		},
		"null is missing": {
			body: `{"username":null,"sex":"F"}`,
			want: RegisterUserRequest{Sex: "F"},
		},
		"unknown keys ignored": {
			body: `{"username":"bob","role":"admin"}`,
			want: RegisterUserRequest{Username: "bob"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var got RegisterUserRequest
			if err := json.Unmarshal([]byte(tt.body), &got); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestRegisterUserRequest_UnmarshalJSONRejects(t *testing.T) {
	for name, body := range map[string]string{
		"not an object": `["username"]`,
		"wrong type":    `{"username":42}`,
		"malformed":     `{"username":`,
	} {
		t.Run(name, func(t *testing.T) {
			var got RegisterUserRequest
			if err := json.Unmarshal([]byte(body), &got); err == nil {
				t.Fatalf("expected error for %s", body)
			}
		})
	}
}
