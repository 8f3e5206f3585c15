package githubprobe

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/quickrepo/internal/gitrepo"
)

// WebProber issues one unauthenticated GET against the repository page.
type WebProber struct {
	httpClient *http.Client
	host       string
	baseURL    *url.URL
	logger     *zap.Logger
}

// NewWebProber constructs a page prober using a non-shared HTTP client bounded by the timeout.
func NewWebProber(options Options) (*WebProber, error) {
	normalizedOptions := options.withDefaults()
	baseURL, baseURLError := parseBaseURL(normalizedOptions.BaseURL)
	if baseURLError != nil {
		return nil, baseURLError
	}
	return &WebProber{
		httpClient: newTimedHTTPClient(normalizedOptions.Timeout),
		host:       normalizedOptions.Host,
		baseURL:    baseURL,
		logger:     normalizedOptions.Logger,
	}, nil
}

// Exists reports true only for a 200 response.
func (prober *WebProber) Exists(executionContext context.Context, reference string) bool {
	address, convertible := gitrepo.BrowsableURL(reference, prober.host)
	if !convertible {
		return false
	}
	address = prober.rebase(address)

	request, requestError := http.NewRequestWithContext(executionContext, http.MethodGet, address, nil)
	if requestError != nil {
		prober.logFailure(reference, address, requestError)
		return false
	}

	response, responseError := prober.httpClient.Do(request)
	if responseError != nil {
		prober.logFailure(reference, address, responseError)
		return false
	}
	defer response.Body.Close()

	prober.logger.Debug(
		probeResultLogMessageConstant,
		zap.String(logFieldModeConstant, ModeWeb),
		zap.String(logFieldReferenceConstant, reference),
		zap.String(logFieldAddressConstant, address),
		zap.Int(logFieldStatusConstant, response.StatusCode),
	)
	return response.StatusCode == http.StatusOK
}

func (prober *WebProber) rebase(address string) string {
	if prober.baseURL == nil {
		return address
	}
	hostPrefix := "https://" + prober.host + trailingSlashConstant
	return prober.baseURL.String() + strings.TrimPrefix(address, hostPrefix)
}

func (prober *WebProber) logFailure(reference string, address string, failure error) {
	prober.logger.Debug(
		probeFailureLogMessageConstant,
		zap.String(logFieldModeConstant, ModeWeb),
		zap.String(logFieldReferenceConstant, reference),
		zap.String(logFieldAddressConstant, address),
		zap.Error(failure),
	)
}
