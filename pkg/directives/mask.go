package directives

import (
	"context"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/codeready-toolchain/wrangle/pkg/directive"
	"github.com/codeready-toolchain/wrangle/pkg/dlp"
)

// MaskName is the recipe name of the mask directive.
const MaskName = "mask"

// Direction argument values for the mask directive.
const (
	DirectionFromStart = "start"
	DirectionFromEnd   = "end"
)

// Mask masks sensitive data found in a column of text with a masking
// character.
//
// Arguments: column (required), info-type (required list), mask-char
// (required, exactly one character), count (optional positive integer;
// default masks the entire detected span), direction (optional,
// "start" or "end"; default "start"), likelihood (optional detection
// threshold), project-id / service-account-file-path (optional, first
// client use only).
type Mask struct {
	provider *dlp.Provider

	column    string
	infoTypes []string
	svc       transformer
}

// NewMask returns an uninitialized mask directive using the given
// provider, or the process-wide default when p is nil.
func NewMask(p *dlp.Provider) *Mask {
	if p == nil {
		p = dlp.DefaultProvider()
	}
	return &Mask{provider: p}
}

// Initialize parses arguments and builds the fixed transform configuration.
func (d *Mask) Initialize(ctx context.Context, args directive.Arguments) error {
	if !args.Contains("column") {
		return directive.NewParseError(MaskName,
			fmt.Errorf("%w: column", directive.ErrMissingArgument))
	}
	if !args.Contains("info-type") {
		return directive.NewParseError(MaskName,
			fmt.Errorf("%w: info-type", directive.ErrMissingArgument))
	}
	d.column = args.Value("column")
	d.infoTypes = args.List("info-type")

	maskChar := args.Value("mask-char")
	if utf8.RuneCountInString(maskChar) != 1 {
		return directive.NewParseError(MaskName,
			fmt.Errorf("%w: mask-char must be a single character, got %q",
				directive.ErrInvalidArgument, maskChar))
	}

	count := 0
	if args.Contains("count") {
		n, err := strconv.Atoi(args.Value("count"))
		if err != nil || n <= 0 {
			return directive.NewParseError(MaskName,
				fmt.Errorf("%w: count must be a positive integer, got %q",
					directive.ErrInvalidArgument, args.Value("count")))
		}
		count = n
	}

	reverse := false
	if args.Contains("direction") {
		switch args.Value("direction") {
		case DirectionFromStart:
		case DirectionFromEnd:
			reverse = true
		default:
			return directive.NewParseError(MaskName,
				fmt.Errorf("%w: direction must be %q or %q, got %q",
					directive.ErrInvalidArgument, DirectionFromStart,
					DirectionFromEnd, args.Value("direction")))
		}
	}

	likelihood, err := dlp.ParseLikelihood(args.Value("likelihood"))
	if err != nil {
		return directive.NewParseError(MaskName,
			fmt.Errorf("%w: %v", directive.ErrInvalidArgument, err))
	}

	h, err := d.provider.Acquire(ctx,
		args.Value("project-id"), args.Value("service-account-file-path"))
	if err != nil {
		return directive.NewParseError(MaskName, err)
	}
	d.svc = dlp.NewService(h, d.infoTypes, likelihood, dlp.Mask{
		Character:    maskChar,
		NumberToMask: count,
		Reverse:      reverse,
	})
	return nil
}

// Execute masks the column for every row in input order, writing results
// to "<column>_masked". A missing column or non-string value yields a nil
// derived value, not an error. A remote failure aborts the batch.
func (d *Mask) Execute(ctx context.Context, rows []*directive.Row) ([]*directive.Row, error) {
	derived := d.column + "_masked"
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
		masked, err := d.svc.Apply(ctx, value)
		if err != nil {
			return nil, directive.NewExecutionError(MaskName, d.column, err)
		}
		row.AddOrSet(derived, masked)
	}
	return rows, nil
}

// Destroy is a no-op; the client handle is process-scoped and outlives the
// directive.
func (d *Mask) Destroy() {}

// Register registers both DLP directives on r, wiring them to the given
// provider (nil selects the process-wide default).
func Register(r *directive.Registry, p *dlp.Provider) {
	r.Register(RedactName, func() directive.Directive { return NewRedact(p) })
	r.Register(MaskName, func() directive.Directive { return NewMask(p) })
}
