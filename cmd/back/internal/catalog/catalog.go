// Package catalog proxies the third-party movie and book REST APIs.
// Nothing is cached: every call goes to the upstream.
package catalog

import "context"

// Getter - см. restclient.Client
type Getter interface {
	GetJSON(ctx context.Context, rawURL string, out any) error
}
