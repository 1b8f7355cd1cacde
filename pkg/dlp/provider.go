// Package dlp adapts Google Cloud DLP's DeidentifyContent call for the
// redact and mask directives: a process-wide singleton client handle and a
// transformation service that builds its request configuration once per
// directive invocation.
package dlp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	dlpapi "cloud.google.com/go/dlp/apiv2"
	"cloud.google.com/go/dlp/apiv2/dlppb"
	"github.com/googleapis/gax-go/v2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/codeready-toolchain/wrangle/pkg/version"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// DeidentifyClient is the slice of the Cloud DLP client the transformation
// service needs. *dlpapi.Client satisfies it; tests substitute fakes.
type DeidentifyClient interface {
	DeidentifyContent(ctx context.Context, req *dlppb.DeidentifyContentRequest,
		opts ...gax.CallOption) (*dlppb.DeidentifyContentResponse, error)
}

// Handle wraps an authenticated DLP client together with the resolved
// request parent ("projects/<id>"). One handle exists per process; it is
// never closed before process exit.
type Handle struct {
	Client DeidentifyClient
	Parent string
}

// Provider lazily constructs and caches a Handle. The zero construction
// cost path is a lock-free load; construction itself is serialized and
// happens at most once. A failed construction leaves the slot empty so a
// later call may retry.
type Provider struct {
	handle atomic.Pointer[Handle]
	mu     sync.Mutex

	dial           func(ctx context.Context, credentialsFile string) (DeidentifyClient, error)
	resolveProject func(ctx context.Context, credentialsFile string) (string, error)
}

// NewProvider returns a provider backed by the real Cloud DLP client.
func NewProvider() *Provider {
	return &Provider{
		dial:           dialClient,
		resolveProject: resolveProject,
	}
}

// NewProviderWithClient returns a provider pre-seeded with an externally
// owned client. Acquire returns that handle unconditionally. Intended for
// hosts that manage their own connection, and for tests.
func NewProviderWithClient(client DeidentifyClient, projectID string) *Provider {
	p := &Provider{}
	p.handle.Store(&Handle{Client: client, Parent: "projects/" + projectID})
	return p
}

// Acquire returns the provider's handle, constructing it on first use.
// The first caller's arguments win: projectID and credentialsFile are
// ignored once a handle exists, so every directive in a process shares one
// account and one set of credentials. Safe for concurrent first use; at
// most one handle is ever constructed.
func (p *Provider) Acquire(ctx context.Context, projectID, credentialsFile string) (*Handle, error) {
	if h := p.handle.Load(); h != nil {
		return h, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if h := p.handle.Load(); h != nil {
		return h, nil
	}

	if projectID == "" {
		resolved, err := p.resolveProject(ctx, credentialsFile)
		if err != nil {
			return nil, NewInitError("resolving project id", err)
		}
		projectID = resolved
	}

	client, err := p.dial(ctx, credentialsFile)
	if err != nil {
		return nil, NewInitError("creating client", err)
	}

	h := &Handle{Client: client, Parent: "projects/" + projectID}
	p.handle.Store(h)
	slog.Info("DLP client initialized", "project", projectID,
		"explicit_credentials", credentialsFile != "")
	return h, nil
}

var defaultProvider = NewProvider()

// DefaultProvider returns the process-wide provider shared by all
// directive instances.
func DefaultProvider() *Provider {
	return defaultProvider
}

// Acquire acquires the process-wide handle from the default provider.
func Acquire(ctx context.Context, projectID, credentialsFile string) (*Handle, error) {
	return defaultProvider.Acquire(ctx, projectID, credentialsFile)
}

// dialClient creates the real Cloud DLP client, authenticating from the
// explicit credentials file when given and ambient default credentials
// otherwise.
func dialClient(ctx context.Context, credentialsFile string) (DeidentifyClient, error) {
	opts := []option.ClientOption{option.WithUserAgent(version.Full())}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	return dlpapi.NewClient(ctx, opts...)
}

// resolveProject determines the project id when none was supplied:
// the credentials file's project_id when a file was given, otherwise the
// environment / application-default-credentials project.
func resolveProject(ctx context.Context, credentialsFile string) (string, error) {
	if credentialsFile != "" {
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrCredentials, err)
		}
		var sa struct {
			ProjectID string `json:"project_id"`
		}
		if err := json.Unmarshal(data, &sa); err != nil {
			return "", fmt.Errorf("%w: %v", ErrCredentials, err)
		}
		if sa.ProjectID == "" {
			return "", ErrNoProject
		}
		return sa.ProjectID, nil
	}

	if id := os.Getenv("GOOGLE_CLOUD_PROJECT"); id != "" {
		return id, nil
	}

	creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
	if err != nil {
		return "", err
	}
	if creds.ProjectID == "" {
		return "", ErrNoProject
	}
	return creds.ProjectID, nil
}
