// Package images resolves display image URLs against a static CDN
// prefix. Profile pictures are stored by convention under
// <base>/<targetType>/<id>.jpg, so no lookup table is needed.
package images

import (
	"fmt"
	"strings"

	"github.com/triplog/triplog-backend/domain"
)

type cdnResolver struct {
	baseURL string
}

var _ domain.ImageURLResolver = (*cdnResolver)(nil)

// NewCDNResolver builds a resolver serving from the given base URL.
// An empty base URL yields a resolver that never resolves, which keeps
// response decoration optional in development setups.
func NewCDNResolver(baseURL string) *cdnResolver {
	return &cdnResolver{baseURL: strings.TrimRight(baseURL, "/")}
}

func (r *cdnResolver) Resolve(targetType string, targetID int64) (string, bool) {
	if r.baseURL == "" || targetType == "" || targetID < 1 {
		return "", false
	}
	return fmt.Sprintf("%s/%s/%d.jpg", r.baseURL, targetType, targetID), true
}
