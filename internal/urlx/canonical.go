// Package urlx normalizes and filters discovered URLs before fetching.
package urlx

import (
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
)

// Canonicalize resolves rawURL against baseURL and returns the canonical
// form used for deduplication: scheme://host/path with duplicate path
// segments removed (first occurrence wins) and query and fragment dropped.
// Applying Canonicalize to its own output is a no-op.
func Canonicalize(rawURL, baseURL string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", eris.Wrapf(err, "urlx: parse base %q", baseURL)
	}
	ref, err := url.Parse(rawURL)
	if err != nil {
		return "", eris.Wrapf(err, "urlx: parse %q", rawURL)
	}
	u := base.ResolveReference(ref)

	segments := strings.Split(u.Path, "/")
	seen := make(map[string]bool, len(segments))
	unique := segments[:0]
	for _, s := range segments {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		unique = append(unique, s)
	}

	return u.Scheme + "://" + u.Host + "/" + strings.Join(unique, "/"), nil
}
