package browser

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

func IsValidURL(u string) (bool, error) {
	if u == "" {
		return false, errors.New("url cannot be empty")
	} else if _, err := url.ParseRequestURI(u); err != nil {
		return false, fmt.Errorf("error parsing url: %w", err)
	}
	return true, nil
}

// GetCanonicalURL defaults a missing scheme to http.
func GetCanonicalURL(u string) (string, error) {
	u = strings.TrimSpace(u)
	if u == "" {
		return "", errors.New("url cannot be empty")
	}
	if !strings.Contains(u, "://") {
		u = "http://" + u
	}
	return u, nil
}
