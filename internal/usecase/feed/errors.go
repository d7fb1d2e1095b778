package feed

import "errors"

// ErrUnknownFeed indicates a request for a feed kind the service does not
// generate.
var ErrUnknownFeed = errors.New("unknown feed kind")
