package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_Classify(t *testing.T) {
	classifier := NewClassifier("/resources")

	tests := []struct {
		path string
		want RequestKind
	}{
		{"/resources/projects", KindAPI},
		{"/resources/auth/login", KindAPI},
		{"/resources", KindAPI},
		{"/", KindWeb},
		{"/login", KindWeb},
		{"/index.html", KindWeb},
		{"/static/app.css", KindWeb},
		{"", KindWeb},
		{"/resourcesX", KindAPI},
		{"/Resources/projects", KindWeb},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.path))
		})
	}
}

// Every path classifies to exactly one of the two kinds.
func TestClassifier_Total(t *testing.T) {
	classifier := NewClassifier("/resources")

	for _, path := range []string{"", "/", "/a", "/resources", "/resources/", "/weird//path", "no-leading-slash"} {
		kind := classifier.Classify(path)
		assert.True(t, kind == KindAPI || kind == KindWeb, "path %q", path)
	}
}
