package dlp

import (
	"context"

	"cloud.google.com/go/dlp/apiv2/dlppb"
)

// Transform selects the deidentify transformation applied to every
// detected span of a listed info type. The set is closed: Redact and Mask
// are the only implementations.
type Transform interface {
	primitive() *dlppb.PrimitiveTransformation
}

// Redact replaces each detected span with the service's removal marker,
// retaining no residual characters.
type Redact struct{}

func (Redact) primitive() *dlppb.PrimitiveTransformation {
	return &dlppb.PrimitiveTransformation{
		Transformation: &dlppb.PrimitiveTransformation_RedactConfig{
			RedactConfig: &dlppb.RedactConfig{},
		},
	}
}

// Mask replaces characters of each detected span with Character.
type Mask struct {
	// Character is the single masking character.
	Character string
	// NumberToMask limits how many characters are masked; 0 masks the
	// entire span. Spans shorter than the limit are masked in full.
	NumberToMask int
	// Reverse counts masked characters from the end of the span instead
	// of the start.
	Reverse bool
}

func (m Mask) primitive() *dlppb.PrimitiveTransformation {
	cfg := &dlppb.CharacterMaskConfig{
		MaskingCharacter: m.Character,
		ReverseOrder:     m.Reverse,
	}
	if m.NumberToMask > 0 {
		cfg.NumberToMask = int32(m.NumberToMask)
	}
	return &dlppb.PrimitiveTransformation{
		Transformation: &dlppb.PrimitiveTransformation_CharacterMaskConfig{
			CharacterMaskConfig: cfg,
		},
	}
}

// Service applies one fixed detect-and-transform configuration to
// individual text values. The inspect and deidentify configs are built
// once at construction and shared read-only across all Apply calls.
type Service struct {
	client     DeidentifyClient
	parent     string
	inspect    *dlppb.InspectConfig
	deidentify *dlppb.DeidentifyConfig
}

// NewService builds a service for the given handle, info type names,
// minimum detection likelihood, and transformation. An empty infoTypes
// list is accepted; the remote side then detects nothing and Apply
// behaves as identity.
func NewService(h *Handle, infoTypes []string, minLikelihood dlppb.Likelihood, t Transform) *Service {
	types := make([]*dlppb.InfoType, 0, len(infoTypes))
	for _, name := range infoTypes {
		types = append(types, &dlppb.InfoType{Name: name})
	}

	return &Service{
		client: h.Client,
		parent: h.Parent,
		inspect: &dlppb.InspectConfig{
			InfoTypes:     types,
			MinLikelihood: minLikelihood,
		},
		deidentify: &dlppb.DeidentifyConfig{
			Transformation: &dlppb.DeidentifyConfig_InfoTypeTransformations{
				InfoTypeTransformations: &dlppb.InfoTypeTransformations{
					Transformations: []*dlppb.InfoTypeTransformations_InfoTypeTransformation{
						{PrimitiveTransformation: t.primitive()},
					},
				},
			},
		},
	}
}

// Apply sends text with the fixed configuration to the remote deidentify
// call and returns the transformed text. Remote failures surface as
// *TransformError; they are not retried here.
func (s *Service) Apply(ctx context.Context, text string) (string, error) {
	req := &dlppb.DeidentifyContentRequest{
		Parent:           s.parent,
		InspectConfig:    s.inspect,
		DeidentifyConfig: s.deidentify,
		Item: &dlppb.ContentItem{
			DataItem: &dlppb.ContentItem_Value{Value: text},
		},
	}

	resp, err := s.client.DeidentifyContent(ctx, req)
	if err != nil {
		return "", NewTransformError(err)
	}
	return resp.GetItem().GetValue(), nil
}
