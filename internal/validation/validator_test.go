// MediaFTP - Personal Media Folder Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediaftp

package validation

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	Name  string `json:"name" validate:"required"`
	Path  string `json:"path,omitempty" validate:"required,max=8"`
	Mode  string `json:"mode" validate:"omitempty,oneof=exact suffix"`
	Plain string `validate:"omitempty,min=2"`
}

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("GetValidator() returned different instances")
	}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     sampleRequest
		wantMsg []string
	}{
		{"valid", sampleRequest{Name: "Show", Path: "/a"}, nil},
		{"missing name", sampleRequest{Path: "/a"}, []string{"name is required"}},
		{"missing both", sampleRequest{}, []string{"name is required", "path is required"}},
		{"too long", sampleRequest{Name: "x", Path: "/a/b/c/d/e"}, []string{"path must be at most 8 characters"}},
		{"bad oneof", sampleRequest{Name: "x", Path: "/a", Mode: "glob"}, []string{"mode must be one of: exact suffix"}},
		{"untagged field uses Go name", sampleRequest{Name: "x", Path: "/a", Plain: "y"}, []string{"Plain must be at least 2 characters"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			verr := ValidateStruct(&tt.req)
			if len(tt.wantMsg) == 0 {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatalf("ValidateStruct() = nil, want %v", tt.wantMsg)
			}
			if got := len(verr.Errors()); got != len(tt.wantMsg) {
				t.Fatalf("len(Errors()) = %d, want %d (%v)", got, len(tt.wantMsg), verr)
			}
			for _, msg := range tt.wantMsg {
				if !strings.Contains(verr.Error(), msg) {
					t.Errorf("Error() = %q, want it to contain %q", verr.Error(), msg)
				}
			}
		})
	}
}

func TestRequestValidationError_Empty(t *testing.T) {
	t.Parallel()

	if got := (&RequestValidationError{}).Error(); got != "validation failed" {
		t.Errorf("Error() = %q, want %q", got, "validation failed")
	}
}
