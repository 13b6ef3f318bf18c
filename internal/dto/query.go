package dto

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"shareit/internal/models"
)

// ParseID reads a positive numeric identifier.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", ErrInvalid, raw)
	}
	return id, nil
}

// UserID reads the acting user from the request header.
func UserID(h http.Header) (int64, error) {
	raw := h.Get(models.UserHeader)
	if raw == "" {
		return 0, fmt.Errorf("%w: missing %s header", ErrInvalid, models.UserHeader)
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s header %q", ErrInvalid, models.UserHeader, raw)
	}
	return id, nil
}

// ParsePage reads from and size. from defaults to 0 and must not be negative;
// size defaults to defaultSize and must lie in [1, maxSize].
func ParsePage(q url.Values, defaultSize, maxSize int) (models.Page, error) {
	page := models.Page{From: 0, Size: defaultSize}

	if raw := q.Get("from"); raw != "" {
		from, err := strconv.Atoi(raw)
		if err != nil || from < 0 {
			return page, fmt.Errorf("%w: from must be a non-negative integer", ErrInvalid)
		}
		page.From = from
	}
	if raw := q.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return page, fmt.Errorf("%w: size must be a positive integer", ErrInvalid)
		}
		page.Size = size
	}
	if maxSize > 0 && page.Size > maxSize {
		return page, fmt.Errorf("%w: size must not exceed %d", ErrInvalid, maxSize)
	}
	return page, nil
}

// State returns the state query parameter, ALL when absent or empty.
func State(q url.Values) string {
	if raw := q.Get("state"); raw != "" {
		return raw
	}
	return string(models.StateAll)
}
