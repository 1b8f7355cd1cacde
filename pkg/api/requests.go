package api

import "github.com/codeready-toolchain/wrangle/pkg/directive"

// DeidentifyRequest is the payload for POST /api/v1/deidentify. It names a
// directive, its arguments, and the row batch to transform.
type DeidentifyRequest struct {
	// Directive is "redact" or "mask".
	Directive string `json:"directive" binding:"required"`

	// Column is the source column to transform.
	Column string `json:"column" binding:"required"`

	// InfoTypes lists the DLP info type names to detect. May be empty,
	// which makes the transform an identity function.
	InfoTypes []string `json:"info_types"`

	// MaskChar, Count, Direction and Likelihood only apply to the mask
	// directive and mirror its recipe arguments.
	MaskChar   string `json:"mask_char,omitempty"`
	Count      int    `json:"count,omitempty"`
	Direction  string `json:"direction,omitempty"`
	Likelihood string `json:"likelihood,omitempty"`

	// ProjectID and CredentialsFile pass through to first client use.
	ProjectID       string `json:"project_id,omitempty"`
	CredentialsFile string `json:"credentials_file,omitempty"`

	// Rows is the batch to transform. May be empty.
	Rows []*directive.Row `json:"rows"`
}
