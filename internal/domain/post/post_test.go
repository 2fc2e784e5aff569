package post

import (
	"testing"

	"github.com/inkwell/blogapi/internal/domain/user"
)

func TestApply_PartialOverwrite(t *testing.T) {
	p := New(CreatePostRequest{Title: "Old title", Content: "Old content"}, user.Author{ID: "u1", Username: "a"})

	tests := []struct {
		name        string
		req         UpdatePostRequest
		wantTitle   string
		wantContent string
	}{
		{"title_only", UpdatePostRequest{Title: "New title"}, "New title", "Old content"},
		{"content_only", UpdatePostRequest{Content: "New content"}, "Old title", "New content"},
		{"both", UpdatePostRequest{Title: "T", Content: "C"}, "T", "C"},
		{"none", UpdatePostRequest{}, "Old title", "Old content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Apply(tt.req)

			if got.Title != tt.wantTitle || got.Content != tt.wantContent {
				t.Fatalf("got (%q,%q), want (%q,%q)", got.Title, got.Content, tt.wantTitle, tt.wantContent)
			}
			if got.ID != p.ID || got.Author != p.Author || !got.CreatedAt.Equal(p.CreatedAt) {
				t.Fatalf("identity fields changed: %+v", got)
			}
		})
	}
}
