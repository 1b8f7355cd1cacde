// Package directives implements the Cloud DLP row directives: redact, which
// removes detected sensitive spans from a column, and mask, which replaces
// them with a masking character. Both write their output to a derived
// column and delegate all detection and transformation to the remote
// service via pkg/dlp.
package directives

import (
	"context"
	"fmt"

	"github.com/codeready-toolchain/wrangle/pkg/directive"
	"github.com/codeready-toolchain/wrangle/pkg/dlp"
)

// RedactName is the recipe name of the redact directive.
const RedactName = "redact"

// transformer is the slice of *dlp.Service the directives call per value.
type transformer interface {
	Apply(ctx context.Context, text string) (string, error)
}

// Redact redacts sensitive data found in a column of text.
//
// Arguments: column (required), info-type (required list of DLP info type
// names, see https://cloud.google.com/dlp/docs/infotypes-reference),
// project-id (optional), service-account-file-path (optional). The two
// optional arguments only matter for the first directive to touch the
// process-wide client; later instances share that handle.
type Redact struct {
	provider *dlp.Provider

	column    string
	infoTypes []string
	svc       transformer
}

// NewRedact returns an uninitialized redact directive using the given
// provider, or the process-wide default when p is nil.
func NewRedact(p *dlp.Provider) *Redact {
	if p == nil {
		p = dlp.DefaultProvider()
	}
	return &Redact{provider: p}
}

// Initialize parses arguments and builds the fixed transform
// configuration. An empty info-type list is accepted and yields an
// identity transform.
func (d *Redact) Initialize(ctx context.Context, args directive.Arguments) error {
	if !args.Contains("column") {
		return directive.NewParseError(RedactName,
			fmt.Errorf("%w: column", directive.ErrMissingArgument))
	}
	if !args.Contains("info-type") {
		return directive.NewParseError(RedactName,
			fmt.Errorf("%w: info-type", directive.ErrMissingArgument))
	}
	d.column = args.Value("column")
	d.infoTypes = args.List("info-type")

	h, err := d.provider.Acquire(ctx,
		args.Value("project-id"), args.Value("service-account-file-path"))
	if err != nil {
		return directive.NewParseError(RedactName, err)
	}
	d.svc = dlp.NewService(h, d.infoTypes, dlp.DefaultLikelihood, dlp.Redact{})
	return nil
}

// Execute redacts the column for every row in input order, writing results
// to "<column>_redacted". A missing column or non-string value yields a
// nil derived value, not an error. A remote failure aborts the batch.
func (d *Redact) Execute(ctx context.Context, rows []*directive.Row) ([]*directive.Row, error) {
	derived := d.column + "_redacted"
	for _, row := range rows {
		idx := row.Find(d.column)
		if idx < 0 {
			row.AddOrSet(derived, nil)
			continue
		}
		value, ok := row.Value(idx).(string)
		if !ok {
			row.AddOrSet(derived, nil)
			continue
		}
		redacted, err := d.svc.Apply(ctx, value)
		if err != nil {
			return nil, directive.NewExecutionError(RedactName, d.column, err)
		}
		row.AddOrSet(derived, redacted)
	}
	return rows, nil
}

// Destroy is a no-op; the client handle is process-scoped and outlives the
// directive.
func (d *Redact) Destroy() {}
