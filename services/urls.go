package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// BuildPostURL constructs the detail URL of a post.
// Parameters:
//   - baseURL: The public base URL (e.g., "https://example.com"). May be empty.
//   - postID: The post ID
//
// Returns:
//   - "https://example.com/post/{postID}", the bare path "/post/{postID}" when
//     baseURL is empty, or "" for the zero ID
func BuildPostURL(baseURL string, postID uuid.UUID) string {
	if postID == uuid.Nil {
		return ""
	}
	return fmt.Sprintf("%s/post/%s", strings.TrimSuffix(strings.TrimSpace(baseURL), "/"), postID)
}
