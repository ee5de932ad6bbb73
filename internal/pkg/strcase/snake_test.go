package strcase

import "testing"

func TestToLowerSnake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Email", "email"},
		{"FullName", "full_name"},
		{"UserID", "user_id"},
		{"HTTPServer", "http_server"},
		{"ModelVersion", "model_version"},
		{"already_snake", "already_snake"},
		{"A", "a"},
	}

	for _, tt := range tests {
		if got := ToLowerSnake(tt.in); got != tt.want {
			t.Errorf("ToLowerSnake(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
