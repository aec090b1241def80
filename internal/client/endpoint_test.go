package client

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

func TestNewEndpoint(t *testing.T) {
	t.Parallel()

	path := Fixed[comms.Empty]("/v1/things")
	bearer := []comms.CredentialKind{comms.BearerToken}

	tests := []struct {
		name    string
		spec    Spec[comms.Empty, comms.Empty]
		wantErr error
	}{
		{name: "valid", spec: Spec[comms.Empty, comms.Empty]{Method: comms.MethodGet, Auth: bearer, Path: path}},
		{name: "empty auth", spec: Spec[comms.Empty, comms.Empty]{Method: comms.MethodGet, Path: path}, wantErr: ErrNoAcceptableAuth},
		{
			name:    "unknown credential kind",
			spec:    Spec[comms.Empty, comms.Empty]{Method: comms.MethodGet, Auth: []comms.CredentialKind{42}, Path: path},
			wantErr: ErrUnknownCredential,
		},
		{name: "bad method", spec: Spec[comms.Empty, comms.Empty]{Method: "TRACE", Auth: bearer, Path: path}, wantErr: ErrInvalidMethod},
		{name: "no path", spec: Spec[comms.Empty, comms.Empty]{Method: comms.MethodGet, Auth: bearer}, wantErr: ErrMissingPathFunc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			endpoint, err := NewEndpoint(tt.spec)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, endpoint)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, comms.MethodGet, endpoint.Method())
			assert.Equal(t, comms.ErrorFamilyProblem, endpoint.family)
		})
	}
}

func TestMustEndpoint_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		MustEndpoint(Spec[comms.Empty, comms.Empty]{Method: comms.MethodGet, Path: Fixed[comms.Empty]("/")})
	})
}

func TestEndpoint_IsImmutable(t *testing.T) {
	t.Parallel()

	auth := []comms.CredentialKind{comms.BearerToken, comms.ApiKeySecret}

	endpoint := MustEndpoint(Spec[comms.Empty, comms.Empty]{Method: comms.MethodGet, Auth: auth, Path: Fixed[comms.Empty]("/")})

	auth[0] = comms.HmacSigned
	assert.Equal(t, []comms.CredentialKind{comms.BearerToken, comms.ApiKeySecret}, endpoint.Auth())

	returned := endpoint.Auth()
	returned[1] = comms.HmacSigned
	assert.Equal(t, []comms.CredentialKind{comms.BearerToken, comms.ApiKeySecret}, endpoint.Auth())
}

func TestPath_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      Path
		want      string
		wantField string
	}{
		{name: "no placeholders", path: Path{Template: "/v1/calls"}, want: "/v1/calls"},
		{name: "single", path: NewPath("/v1/widgets/{id}", "id", "42"), want: "/v1/widgets/42"},
		{
			name: "several",
			path: NewPath("/v1/conversations/{id}/events/{event_id}", "id", "CON-1", "event_id", "7"),
			want: "/v1/conversations/CON-1/events/7",
		},
		{name: "escaped", path: NewPath("/v1/widgets/{id}", "id", "a/b c"), want: "/v1/widgets/a%2Fb%20c"},
		{name: "missing", path: NewPath("/v1/widgets/{id}"), wantField: "id"},
		{name: "empty", path: NewPath("/v1/widgets/{id}", "id", ""), wantField: "id"},
		{name: "dot segment", path: NewPath("/v1/widgets/{id}", "id", ".."), wantField: "id"},
		{name: "unterminated", path: NewPath("/v1/widgets/{id", "id", "42"), wantField: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.path.Resolve()
			if tt.want != "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)

				return
			}

			var precondition *comms.PreconditionError
			require.ErrorAs(t, err, &precondition)
			assert.Equal(t, tt.wantField, precondition.Field)
		})
	}
}

func TestFlattenQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want url.Values
	}{
		{name: "null", data: `null`},
		{name: "empty object", data: `{}`},
		{name: "strings unquoted", data: `{"status":"started"}`, want: url.Values{"status": {"started"}}},
		{name: "numbers and bools", data: `{"page_size":10,"exclude_deleted_events":true}`, want: url.Values{"page_size": {"10"}, "exclude_deleted_events": {"true"}}},
		{name: "nulls dropped", data: `{"status":null,"order":"asc"}`, want: url.Values{"order": {"asc"}}},
		{name: "arrays repeat", data: `{"to":["a","b",null]}`, want: url.Values{"to": {"a", "b"}}},
		{name: "objects compact", data: `{"filter": {"a": 1}}`, want: url.Values{"filter": {`{"a":1}`}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := flattenQuery([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := flattenQuery([]byte(`"just a string"`))
	require.ErrorIs(t, err, comms.ErrPrecondition)
}

func TestEndpoint_Serialize(t *testing.T) {
	t.Parallel()

	type body struct {
		Name *string `json:"name,omitempty"`
		TTL  *int    `json:"ttl,omitempty"`
	}

	patch := MustEndpoint(Spec[*body, comms.Empty]{Method: comms.MethodPatch, Auth: bearerOnly, Path: Fixed[*body]("/")})
	remove := MustEndpoint(Spec[*body, comms.Empty]{Method: comms.MethodDelete, Auth: bearerOnly, Path: Fixed[*body]("/")})

	data, query, err := patch.serialize(&body{TTL: comms.Ptr(0)})
	require.NoError(t, err)
	assert.Nil(t, query)
	assert.JSONEq(t, `{"ttl":0}`, string(data))

	data, query, err = remove.serialize(&body{Name: comms.Ptr("x")})
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Equal(t, url.Values{"name": {"x"}}, query)

	data, query, err = remove.serialize(&body{})
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Nil(t, query)
}
