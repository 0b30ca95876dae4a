package provider

import (
	"fmt"
	"net/url"
	"slices"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/net/http/httpguts"

	"github.com/keboola/go-networking/pkg/endpoint"
	"github.com/keboola/go-networking/pkg/transport"
)

// Config of the Provider, for example loaded from flags or environment.
type Config struct {
	BaseURL string            `mapstructure:"base-url"`
	Headers map[string]string `mapstructure:"headers"`
}

// Validate checks the base URL and global headers, all problems are reported together.
func (c Config) Validate() error {
	var err error

	if c.BaseURL == "" {
		err = multierror.Append(err, fmt.Errorf(`%w: value is not set`, endpoint.ErrInvalidBaseURL))
	} else if u, e := url.Parse(c.BaseURL); e != nil {
		err = multierror.Append(err, fmt.Errorf(`%w "%s": %w`, endpoint.ErrInvalidBaseURL, c.BaseURL, e))
	} else if u.Scheme == "" || u.Host == "" {
		err = multierror.Append(err, fmt.Errorf(`%w "%s": url must be absolute`, endpoint.ErrInvalidBaseURL, c.BaseURL))
	}

	keys := make([]string, 0, len(c.Headers))
	for k := range c.Headers {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		v := c.Headers[k]
		if !httpguts.ValidHeaderFieldName(k) {
			err = multierror.Append(err, fmt.Errorf(`invalid header name "%s"`, k))
		} else if !httpguts.ValidHeaderFieldValue(v) {
			err = multierror.Append(err, fmt.Errorf(`invalid value of the header "%s"`, k))
		}
	}

	return err
}

// NewFromConfig validates the config and creates the Provider.
func NewFromConfig(cfg Config, t transport.Transport) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return Provider{}, err
	}
	return New(t, cfg.BaseURL).WithHeaders(cfg.Headers), nil
}
