package paramstore

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	getOut *ssm.GetParameterOutput
	getErr error
	input  *ssm.GetParameterInput
}

func (f *fakeAPI) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.input = in
	return f.getOut, f.getErr
}

func TestGetParameter(t *testing.T) {
	api := &fakeAPI{getOut: &ssm.GetParameterOutput{Parameter: &types.Parameter{
		Name:  aws.String("/bodocord/token"),
		Value: aws.String("discord-token\n"),
		Type:  types.ParameterTypeSecureString,
	}}}
	client, err := New(api)
	require.NoError(t, err)

	v, err := client.GetParameter(context.Background(), " /bodocord/token ")
	require.NoError(t, err)
	assert.Equal(t, "discord-token", v)
	assert.Equal(t, "/bodocord/token", aws.ToString(api.input.Name))
	assert.True(t, aws.ToBool(api.input.WithDecryption))
}

func TestGetParameterErrors(t *testing.T) {
	tests := []struct {
		name    string
		api     *fakeAPI
		param   string
		wantErr string
	}{
		{
			name:    "missing value",
			api:     &fakeAPI{getOut: &ssm.GetParameterOutput{Parameter: &types.Parameter{Name: aws.String("p")}}},
			param:   "p",
			wantErr: "missing value",
		},
		{
			name:    "nil output",
			api:     &fakeAPI{},
			param:   "p",
			wantErr: "missing value",
		},
		{
			name:    "api error",
			api:     &fakeAPI{getErr: errors.New("boom")},
			param:   "p",
			wantErr: "boom",
		},
		{
			name:    "empty name",
			api:     &fakeAPI{},
			param:   "  ",
			wantErr: "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.api)
			require.NoError(t, err)

			_, err = client.GetParameter(context.Background(), tt.param)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestMissingValueIsSentinel(t *testing.T) {
	client, err := New(&fakeAPI{})
	require.NoError(t, err)

	_, err = client.GetParameter(context.Background(), "p")
	assert.ErrorIs(t, err, ErrMissingValue)
}

func TestClientNotInitialized(t *testing.T) {
	_, err := (&Client{}).GetParameter(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
}

func TestNewNilAPI(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be nil")
}
