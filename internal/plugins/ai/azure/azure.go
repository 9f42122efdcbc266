// Package azure generates answers through an Azure OpenAI deployment. The
// model name is the deployment name.
package azure

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	azureopenai "github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"

	"github.com/regexify/regexify/internal/plugins/ai"
	"github.com/regexify/regexify/internal/plugins/ai/openai"
)

const DefaultAPIVersion = "2025-04-01-preview"

var ErrMissingEndpoint = errors.New("azure: endpoint is required")

// NewClient creates a client for the resource at endpoint. With an empty
// apiKey it authenticates with Entra ID through the default Azure credential
// chain.
func NewClient(endpoint, apiKey, apiVersion string, opts ai.Options, extra ...option.RequestOption) (*openai.Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, ErrMissingEndpoint
	}
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}

	var auth option.RequestOption
	if apiKey != "" {
		auth = azureopenai.WithAPIKey(apiKey)
	} else {
		credential, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("azure: failed to create credential: %w", err)
		}
		auth = azureopenai.WithTokenCredential(credential)
	}

	reqOpts := []option.RequestOption{
		auth,
		option.WithBaseURL(BuildEndpoint(endpoint)),
		option.WithQueryAdd("api-version", apiVersion),
		option.WithMiddleware(DeploymentMiddleware),
	}
	return openai.NewClientWithOptions(opts, append(reqOpts, extra...)...), nil
}

// BuildEndpoint appends the /openai/ suffix to the resource URL.
func BuildEndpoint(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/") + "/openai/"
}

// DeploymentMiddleware rewrites /openai/chat/completions to
// /openai/deployments/{model}/chat/completions, taking the deployment from
// the request body.
func DeploymentMiddleware(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
	trimmed := strings.TrimPrefix(req.URL.Path, "/openai")
	if trimmed != "/chat/completions" {
		return next(req)
	}

	deployment, err := deploymentFromBody(req)
	if err != nil {
		return nil, fmt.Errorf("azure: failed to extract deployment: %w", err)
	}
	req.URL.Path = "/openai/deployments/" + url.PathEscape(deployment) + trimmed
	req.URL.RawPath = ""
	return next(req)
}

// deploymentFromBody reads the model field and restores the body.
func deploymentFromBody(req *http.Request) (string, error) {
	if req.Body == nil {
		return "", errors.New("request body is nil")
	}
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return "", err
	}
	req.Body = io.NopCloser(bytes.NewReader(body))

	var payload struct {
		Model string `json:"model"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}
	if payload.Model == "" {
		return "", errors.New("model field is empty")
	}
	return payload.Model, nil
}
