package auth

import "strings"

// RequestKind selects which trust model applies to a request.
type RequestKind int

const (
	// KindAPI requests authenticate with bearer tokens and receive
	// machine-readable rejections.
	KindAPI RequestKind = iota
	// KindWeb requests authenticate with a browser session and are redirected
	// to the login page when unauthenticated.
	KindWeb
)

// Classifier splits inbound traffic between the two trust models. The two
// have incompatible failure semantics (401 body vs redirect), so the split
// runs before any trust model logic.
type Classifier struct {
	apiPrefix string
}

// NewClassifier builds a classifier for the given API mount prefix.
func NewClassifier(apiPrefix string) *Classifier {
	return &Classifier{apiPrefix: apiPrefix}
}

// Classify is a total function over request paths: API iff the path sits
// under the API mount prefix, Web otherwise.
func (c *Classifier) Classify(path string) RequestKind {
	if strings.HasPrefix(path, c.apiPrefix) {
		return KindAPI
	}
	return KindWeb
}
