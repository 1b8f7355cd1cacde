package api

import "github.com/codeready-toolchain/wrangle/pkg/directive"

// DeidentifyResponse carries the transformed row batch. Row count and
// order match the request.
type DeidentifyResponse struct {
	Rows []*directive.Row `json:"rows"`
}

// DirectivesResponse lists the registered directive names.
type DirectivesResponse struct {
	Directives []string `json:"directives"`
}

// ErrorResponse is the JSON body of all non-2xx responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
