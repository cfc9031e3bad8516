package domain

import (
	"errors"
	"testing"
)

func TestPage_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		page       Page
		wantFields []string
	}{
		{name: "default", page: Page{Limit: DefaultPageLimit}},
		{name: "max limit", page: Page{Limit: MaxPageLimit, Offset: 500}},
		{name: "zero limit", page: Page{Limit: 0}, wantFields: []string{"limit"}},
		{name: "limit too large", page: Page{Limit: MaxPageLimit + 1}, wantFields: []string{"limit"}},
		{name: "negative offset", page: Page{Limit: 10, Offset: -1}, wantFields: []string{"offset"}},
		{name: "both bad", page: Page{Limit: -5, Offset: -1}, wantFields: []string{"limit", "offset"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.page.Validate()
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if len(ve.Errors) != len(tt.wantFields) {
				t.Fatalf("got %d field errors, want %d", len(ve.Errors), len(tt.wantFields))
			}
			for i, f := range tt.wantFields {
				if ve.Errors[i].Field != f {
					t.Errorf("field[%d] = %q, want %q", i, ve.Errors[i].Field, f)
				}
			}
		})
	}
}
