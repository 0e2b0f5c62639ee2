package utils

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

var ErrInvalidID = errors.New("invalid id")

// GetID parses the ":id" path parameter as a positive integer.
func GetID(ctx *gin.Context) (uint, error) {
	raw := ctx.Param("id")

	if raw == "" {
		return 0, ErrInvalidID
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}

	return uint(id), nil
}

// ErrNoHost is returned when a bookmark URL has no host to report.
var ErrNoHost = errors.New("url has no host")

// BookmarkDomain returns the lower-cased host of a bookmark URL, without port
// or a leading "www.". Scheme-less input such as "github.com/x" is accepted.
func BookmarkDomain(rawURL string) (string, error) {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return "", ErrNoHost
	}
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("parse bookmark url: %w", err)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host == "" {
		return "", ErrNoHost
	}

	return host, nil
}
