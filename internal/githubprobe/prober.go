package githubprobe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"go.uber.org/zap"
)

const (
	defaultHostConstant            = "github.com"
	defaultTimeoutConstant         = 10 * time.Second
	unsupportedModeMessageConstant = "unsupported probe mode"
	invalidBaseURLTemplateConstant = "invalid probe base url %q: %w"
	probeResultLogMessageConstant  = "remote existence probe finished"
	probeFailureLogMessageConstant = "remote existence probe failed"
	logFieldReferenceConstant      = "reference"
	logFieldAddressConstant        = "address"
	logFieldStatusConstant         = "status"
	logFieldModeConstant           = "mode"
	trailingSlashConstant          = "/"
)

// Supported probe modes.
const (
	ModeWeb = "web"
	ModeAPI = "api"
)

// ErrUnsupportedMode indicates an unknown probe mode was configured.
var ErrUnsupportedMode = errors.New(unsupportedModeMessageConstant)

// Prober reports whether the repository behind an SSH reference exists.
type Prober interface {
	Exists(executionContext context.Context, reference string) bool
}

// Options configures probe construction.
type Options struct {
	Mode    string
	Host    string
	Timeout time.Duration
	Token   string
	// BaseURL replaces the scheme and host of probed addresses when set.
	BaseURL string
	Logger  *zap.Logger
}

// NewProber constructs the prober selected by the mode, defaulting to the web probe.
func NewProber(options Options) (Prober, error) {
	normalizedOptions := options.withDefaults()
	switch strings.ToLower(strings.TrimSpace(normalizedOptions.Mode)) {
	case "", ModeWeb:
		return NewWebProber(normalizedOptions)
	case ModeAPI:
		return NewAPIProber(normalizedOptions)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMode, options.Mode)
	}
}

func (options Options) withDefaults() Options {
	if len(strings.TrimSpace(options.Host)) == 0 {
		options.Host = defaultHostConstant
	}
	if options.Timeout <= 0 {
		options.Timeout = defaultTimeoutConstant
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	return options
}

func newTimedHTTPClient(timeout time.Duration) *http.Client {
	httpClient := cleanhttp.DefaultClient()
	httpClient.Timeout = timeout
	return httpClient
}

func parseBaseURL(rawBaseURL string) (*url.URL, error) {
	if len(rawBaseURL) == 0 {
		return nil, nil
	}
	if !strings.HasSuffix(rawBaseURL, trailingSlashConstant) {
		rawBaseURL += trailingSlashConstant
	}
	parsedURL, parseError := url.Parse(rawBaseURL)
	if parseError != nil {
		return nil, fmt.Errorf(invalidBaseURLTemplateConstant, rawBaseURL, parseError)
	}
	return parsedURL, nil
}
