package endpoint

import "errors"

// ErrInvalidBaseURL is returned by Build if the base URL is not a valid absolute URL.
var ErrInvalidBaseURL = errors.New("invalid base url")

// ErrInvalidEndpoint is returned by Build if the base URL and the endpoint path/queries
// compose an URL that cannot be resolved.
var ErrInvalidEndpoint = errors.New("invalid endpoint")
