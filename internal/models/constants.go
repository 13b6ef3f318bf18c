package models

const (
	// DefaultPageSize is used when a list call does not pass size.
	DefaultPageSize = 10

	// MaxPageSize caps size on list calls.
	MaxPageSize = 100

	// UserHeader carries the acting user id on every user-scoped call.
	UserHeader = "X-Sharer-User-Id"

	// RequestIDHeader carries the request id across gateway and server.
	RequestIDHeader = "X-Request-Id"

	// WireTimeLayout is the timestamp layout used on the HTTP surface.
	WireTimeLayout = "2006-01-02T15:04:05"
)
