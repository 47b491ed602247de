package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildPostURL(t *testing.T) {
	id := uuid.MustParse("5b0c7c1e-8a3e-4d8e-9d2a-1f2e3d4c5b6a")

	tests := []struct {
		name    string
		baseURL string
		id      uuid.UUID
		want    string
	}{
		{"with base", "https://blog.example.com", id, "https://blog.example.com/post/5b0c7c1e-8a3e-4d8e-9d2a-1f2e3d4c5b6a"},
		{"trailing slash", "https://blog.example.com/", id, "https://blog.example.com/post/5b0c7c1e-8a3e-4d8e-9d2a-1f2e3d4c5b6a"},
		{"no base", "", id, "/post/5b0c7c1e-8a3e-4d8e-9d2a-1f2e3d4c5b6a"},
		{"zero id", "https://blog.example.com", uuid.Nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildPostURL(tt.baseURL, tt.id))
		})
	}
}
