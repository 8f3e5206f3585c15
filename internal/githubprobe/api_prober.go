package githubprobe

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v62/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/temirov/quickrepo/internal/gitrepo"
)

const (
	enterpriseAPITemplateConstant    = "https://%s/api/v3/"
	enterpriseUploadTemplateConstant = "https://%s/api/uploads/"
	enterpriseClientErrorTemplate    = "unable to configure api client for %s: %w"
)

// APIProber asks the repositories API for the repository, optionally authenticated.
type APIProber struct {
	client *github.Client
	host   string
	logger *zap.Logger
}

// NewAPIProber constructs an API prober. A token authenticates requests through oauth2.
func NewAPIProber(options Options) (*APIProber, error) {
	normalizedOptions := options.withDefaults()

	httpClient := newTimedHTTPClient(normalizedOptions.Timeout)
	if len(normalizedOptions.Token) > 0 {
		tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: normalizedOptions.Token})
		authenticatedContext := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(authenticatedContext, tokenSource)
		httpClient.Timeout = normalizedOptions.Timeout
	}

	client := github.NewClient(httpClient)
	if normalizedOptions.Host != defaultHostConstant {
		enterpriseClient, enterpriseError := client.WithEnterpriseURLs(
			fmt.Sprintf(enterpriseAPITemplateConstant, normalizedOptions.Host),
			fmt.Sprintf(enterpriseUploadTemplateConstant, normalizedOptions.Host),
		)
		if enterpriseError != nil {
			return nil, fmt.Errorf(enterpriseClientErrorTemplate, normalizedOptions.Host, enterpriseError)
		}
		client = enterpriseClient
	}

	baseURL, baseURLError := parseBaseURL(normalizedOptions.BaseURL)
	if baseURLError != nil {
		return nil, baseURLError
	}
	if baseURL != nil {
		client.BaseURL = baseURL
		client.UploadURL = baseURL
	}

	return &APIProber{client: client, host: normalizedOptions.Host, logger: normalizedOptions.Logger}, nil
}

// Exists reports true only when the repository lookup answers 200.
func (prober *APIProber) Exists(executionContext context.Context, reference string) bool {
	if !strings.HasPrefix(reference, gitrepo.SSHPrefix(prober.host)) {
		return false
	}
	remote, parseError := gitrepo.ParseRemoteURL(reference)
	if parseError != nil {
		prober.logFailure(reference, parseError)
		return false
	}

	_, response, lookupError := prober.client.Repositories.Get(executionContext, remote.Owner, remote.Repository)
	if lookupError != nil {
		prober.logFailure(reference, lookupError)
		return false
	}

	prober.logger.Debug(
		probeResultLogMessageConstant,
		zap.String(logFieldModeConstant, ModeAPI),
		zap.String(logFieldReferenceConstant, reference),
		zap.Int(logFieldStatusConstant, response.StatusCode),
	)
	return response.StatusCode == http.StatusOK
}

func (prober *APIProber) logFailure(reference string, failure error) {
	prober.logger.Debug(
		probeFailureLogMessageConstant,
		zap.String(logFieldModeConstant, ModeAPI),
		zap.String(logFieldReferenceConstant, reference),
		zap.Error(failure),
	)
}
