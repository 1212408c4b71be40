package util

import "errors"

var (
	ErrEmptyMessage        = errors.New("message is empty")
	ErrUpstreamAuth        = errors.New("upstream authentication failed")
	ErrUpstreamRateLimited = errors.New("upstream rate limited")
	ErrUpstreamUnavailable = errors.New("upstream model unavailable")
)
