// Package fetcher resolves citation URLs to page metadata (title and a short
// excerpt) for enriching digest notifications.
package fetcher

import "errors"

var (
	// ErrInvalidURL means the citation URL failed validation.
	ErrInvalidURL = errors.New("invalid url")

	// ErrPrivateIP means the hostname resolves to a private address.
	ErrPrivateIP = errors.New("url resolves to private ip")

	// ErrTooManyRedirects means the redirect limit was exceeded.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge means the response exceeded the size limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrExtractFailed means no usable title or text could be extracted.
	ErrExtractFailed = errors.New("metadata extraction failed")
)
