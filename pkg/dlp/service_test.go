package dlp

import (
	"context"
	"sync"
	"testing"

	"cloud.google.com/go/dlp/apiv2/dlppb"
	"github.com/googleapis/gax-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
)

type recordingClient struct {
	mu       sync.Mutex
	requests []*dlppb.DeidentifyContentRequest
	result   string
	err      error
}

func (c *recordingClient) DeidentifyContent(_ context.Context, req *dlppb.DeidentifyContentRequest,
	_ ...gax.CallOption) (*dlppb.DeidentifyContentResponse, error) {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	return &dlppb.DeidentifyContentResponse{
		Item: &dlppb.ContentItem{DataItem: &dlppb.ContentItem_Value{Value: c.result}},
	}, nil
}

func testHandle(c DeidentifyClient) *Handle {
	return &Handle{Client: c, Parent: "projects/test"}
}

func TestNewServiceRedactConfig(t *testing.T) {
	client := &recordingClient{result: "out"}
	svc := NewService(testHandle(client),
		[]string{"EMAIL_ADDRESS", "US_SOCIAL_SECURITY_NUMBER"}, DefaultLikelihood, Redact{})

	_, err := svc.Apply(context.Background(), "in")
	require.NoError(t, err)

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Equal(t, "projects/test", req.GetParent())
	assert.Equal(t, "in", req.GetItem().GetValue())

	inspect := req.GetInspectConfig()
	require.Len(t, inspect.GetInfoTypes(), 2)
	assert.True(t, proto.Equal(&dlppb.InfoType{Name: "EMAIL_ADDRESS"}, inspect.GetInfoTypes()[0]))
	assert.Equal(t, dlppb.Likelihood_POSSIBLE, inspect.GetMinLikelihood())

	transforms := req.GetDeidentifyConfig().GetInfoTypeTransformations().GetTransformations()
	require.Len(t, transforms, 1)
	prim := transforms[0].GetPrimitiveTransformation()
	assert.NotNil(t, prim.GetRedactConfig())
	assert.Nil(t, prim.GetCharacterMaskConfig())
}

func TestNewServiceMaskConfig(t *testing.T) {
	t.Run("full span mask", func(t *testing.T) {
		client := &recordingClient{result: "out"}
		svc := NewService(testHandle(client), []string{"EMAIL_ADDRESS"}, DefaultLikelihood,
			Mask{Character: "*"})

		_, err := svc.Apply(context.Background(), "in")
		require.NoError(t, err)

		mask := client.requests[0].GetDeidentifyConfig().GetInfoTypeTransformations().
			GetTransformations()[0].GetPrimitiveTransformation().GetCharacterMaskConfig()
		require.NotNil(t, mask)
		assert.Equal(t, "*", mask.GetMaskingCharacter())
		assert.Zero(t, mask.GetNumberToMask(), "no count limit masks the entire span")
		assert.False(t, mask.GetReverseOrder())
	})

	t.Run("count and direction", func(t *testing.T) {
		client := &recordingClient{result: "out"}
		svc := NewService(testHandle(client), []string{"EMAIL_ADDRESS"}, dlppb.Likelihood_LIKELY,
			Mask{Character: "#", NumberToMask: 4, Reverse: true})

		_, err := svc.Apply(context.Background(), "in")
		require.NoError(t, err)

		req := client.requests[0]
		assert.Equal(t, dlppb.Likelihood_LIKELY, req.GetInspectConfig().GetMinLikelihood())
		mask := req.GetDeidentifyConfig().GetInfoTypeTransformations().
			GetTransformations()[0].GetPrimitiveTransformation().GetCharacterMaskConfig()
		assert.Equal(t, int32(4), mask.GetNumberToMask())
		assert.True(t, mask.GetReverseOrder())
	})
}

func TestServiceConfigBuiltOnce(t *testing.T) {
	client := &recordingClient{result: "out"}
	svc := NewService(testHandle(client), []string{"EMAIL_ADDRESS"}, DefaultLikelihood, Redact{})

	_, err := svc.Apply(context.Background(), "first")
	require.NoError(t, err)
	_, err = svc.Apply(context.Background(), "second")
	require.NoError(t, err)

	require.Len(t, client.requests, 2)
	assert.Same(t, client.requests[0].GetInspectConfig(), client.requests[1].GetInspectConfig())
	assert.Same(t, client.requests[0].GetDeidentifyConfig(), client.requests[1].GetDeidentifyConfig())
}

func TestServiceZeroInfoTypes(t *testing.T) {
	client := &recordingClient{result: "unchanged"}
	svc := NewService(testHandle(client), nil, DefaultLikelihood, Redact{})

	out, err := svc.Apply(context.Background(), "unchanged")
	require.NoError(t, err)
	assert.Equal(t, "unchanged", out)
	assert.Empty(t, client.requests[0].GetInspectConfig().GetInfoTypes())
}

func TestServiceApplyError(t *testing.T) {
	client := &recordingClient{err: status.Error(codes.ResourceExhausted, "quota exceeded")}
	svc := NewService(testHandle(client), []string{"EMAIL_ADDRESS"}, DefaultLikelihood, Redact{})

	_, err := svc.Apply(context.Background(), "in")
	require.Error(t, err)
	require.True(t, IsTransformError(err))

	var te *TransformError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, codes.ResourceExhausted, te.Code)
}

func TestParseLikelihood(t *testing.T) {
	for name, want := range map[string]dlppb.Likelihood{
		"":            dlppb.Likelihood_POSSIBLE,
		"possible":    dlppb.Likelihood_POSSIBLE,
		"VERY_LIKELY": dlppb.Likelihood_VERY_LIKELY,
		" likely ":    dlppb.Likelihood_LIKELY,
	} {
		got, err := ParseLikelihood(name)
		require.NoError(t, err, "likelihood %q", name)
		assert.Equal(t, want, got, "likelihood %q", name)
	}

	_, err := ParseLikelihood("CERTAIN")
	assert.Error(t, err)
}
