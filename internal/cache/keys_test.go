package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name       string
		service    string
		objectType string
		identifier string
		params     []string
		want       string
	}{
		{
			name:       "basic key",
			service:    "content",
			objectType: "articles",
			identifier: "low",
			want:       "tenang:content:articles:low",
		},
		{
			name:       "key with params",
			service:    "content",
			objectType: "audio",
			identifier: "high",
			params:     []string{"published", "limit10"},
			want:       "tenang:content:audio:high:published_limit10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateCacheKey(tt.service, tt.objectType, tt.identifier, tt.params...)
			if got != tt.want {
				t.Errorf("GenerateCacheKey() = %q, want %q", got, tt.want)
			}
		})
	}
}
