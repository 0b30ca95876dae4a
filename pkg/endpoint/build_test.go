package endpoint_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keboola/go-networking/pkg/codec"
	. "github.com/keboola/go-networking/pkg/endpoint"
)

type launch struct {
	ID string `json:"id"`
}

type launchesEndpoint struct {
	Base
}

func (launchesEndpoint) Path() string {
	return "/launches"
}

type filledEndpoint struct {
	Base
	method Method
}

func (e filledEndpoint) Method() Method {
	return e.method
}

func (filledEndpoint) Path() string {
	return "/path"
}

func (filledEndpoint) Queries() map[string]string {
	return map[string]string{"query": "param"}
}

func (filledEndpoint) Headers() map[string]string {
	return map[string]string{"header": "value"}
}

func (filledEndpoint) Body() any {
	return launch{ID: "id"}
}

type failingEncoder struct {
	err error
}

func (e failingEncoder) Encode(any) ([]byte, error) {
	return nil, e.err
}

func (failingEncoder) ContentType() string {
	return "application/octet-stream"
}

func TestBuild_AllMethods(t *testing.T) {
	t.Parallel()

	encoder := codec.NewJSON()
	baseURL := "https://google.com"
	globalHeaders := map[string]string{"globalHeader": "value", "header": "overrideValue"}
	expectedBody, err := encoder.Encode(launch{ID: "id"})
	require.NoError(t, err)

	for _, method := range Methods() {
		e := filledEndpoint{method: method}
		req, err := Build(e, baseURL, globalHeaders, encoder)
		require.NoError(t, err, method)
		assert.Equal(t, "https://google.com/path?query=param", req.URL().String(), method)
		assert.Equal(t, method, req.Method())
		assert.Equal(t, http.Header{"Header": {"value"}, "Globalheader": {"value"}}, req.Header(), method)
		assert.Equal(t, expectedBody, req.Body(), method)
		assert.True(t, req.HasBody())
		assert.Equal(t, "application/json", req.ContentType())
	}
}

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	req, err := Build(Base{}, "https://api.spacexdata.com/v5/launches", nil, codec.NewJSON())
	require.NoError(t, err)
	assert.Equal(t, MethodGet, req.Method())
	assert.Equal(t, "https://api.spacexdata.com/v5/launches", req.URL().String())
	assert.Empty(t, req.Header())
	assert.Nil(t, req.Body())
	assert.False(t, req.HasBody())
	assert.Empty(t, req.ContentType())
	assert.Equal(t, `GET "https://api.spacexdata.com/v5/launches"`, req.String())
}

func TestBuild_EmptyQueries(t *testing.T) {
	t.Parallel()

	cases := []struct{ baseURL, path string }{
		{"https://api.spacexdata.com/v5", "/launches"},
		{"https://api.spacexdata.com/v5/", "launches"},
		{"https://api.spacexdata.com", ""},
		{"https://api.spacexdata.com", "/a/b/c"},
		{"http://localhost:8080/api", "/users/123"},
		{"https://example.com/a%2Fb", "/c"},
	}
	for _, c := range cases {
		e := New().WithPath(c.path).WithQueries(map[string]string{})
		req, err := Build(e, c.baseURL, nil, codec.NewJSON())
		require.NoError(t, err, c.baseURL+c.path)
		assert.Equal(t, c.baseURL+c.path, req.URL().String())
	}
}

func TestBuild_Queries(t *testing.T) {
	t.Parallel()

	queries := map[string]string{"a": "1", "b": "two words", "empty": "", "c": "x&y=z"}
	req, err := Build(New().WithGet("/search").WithQueries(queries), "https://example.com/api", nil, nil)
	require.NoError(t, err)

	reqURL := req.URL()
	assert.Equal(t, "/api/search", reqURL.Path)
	values, err := url.ParseQuery(reqURL.RawQuery)
	require.NoError(t, err)
	assert.Len(t, values, len(queries))
	for k, v := range queries {
		assert.Equal(t, []string{v}, values[k], k)
	}
}

func TestBuild_QueriesMergedWithBaseURL(t *testing.T) {
	t.Parallel()

	req, err := Build(New().WithPath("/p"), "https://example.com/v1?key=abc", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/v1/p?key=abc", req.URL().String())

	req, err = Build(New().WithPath("/p").AndQuery("q", "1").AndQuery("key", "override"), "https://example.com/v1?key=abc", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, url.Values{"key": {"override"}, "q": {"1"}}, req.URL().Query())
}

func TestBuild_PathEscaping(t *testing.T) {
	t.Parallel()

	req, err := Build(New().WithPath("/a b/c?d"), "https://example.com", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a%20b/c%3Fd", req.URL().String())
	assert.Empty(t, req.URL().RawQuery)
}

func TestBuild_HeaderMerge(t *testing.T) {
	t.Parallel()

	e := New().
		AndHeader("Authorization", "endpoint").
		AndHeader("x-endpoint", "1")
	global := map[string]string{
		"authorization": "global",
		"X-Global":      "2",
		"User-Agent":    "go-networking",
	}
	req, err := Build(e, "https://example.com", global, nil)
	require.NoError(t, err)
	assert.Equal(t, http.Header{
		"Authorization": {"endpoint"},
		"X-Endpoint":    {"1"},
		"X-Global":      {"2"},
		"User-Agent":    {"go-networking"},
	}, req.Header())
}

func TestBuild_InvalidBaseURL(t *testing.T) {
	t.Parallel()

	for _, baseURL := range []string{"http://malformed:-1/", "%zz", "relative/path", "https://"} {
		req, err := Build(launchesEndpoint{}, baseURL, nil, codec.NewJSON())
		assert.Nil(t, req, baseURL)
		assert.ErrorIs(t, err, ErrInvalidBaseURL, baseURL)
		assert.NotErrorIs(t, err, ErrInvalidEndpoint, baseURL)
	}
}

func TestBuild_InvalidEndpoint(t *testing.T) {
	t.Parallel()

	for _, path := range []string{":-80", "relative", "/%zz"} {
		req, err := Build(New().WithPath(path), "https://google.com", nil, codec.NewJSON())
		assert.Nil(t, req, path)
		assert.ErrorIs(t, err, ErrInvalidEndpoint, path)
		assert.NotErrorIs(t, err, ErrInvalidBaseURL, path)
	}

	_, err := Build(nil, "https://google.com", nil, codec.NewJSON())
	assert.ErrorIs(t, err, ErrInvalidEndpoint)
}

func TestBuild_EncoderError(t *testing.T) {
	t.Parallel()

	encodeErr := errors.New("some encode error")
	req, err := Build(New().WithPost("/launches").WithBody(launch{ID: "1"}), "https://example.com", nil, failingEncoder{err: encodeErr})
	assert.Nil(t, req)
	assert.Same(t, encodeErr, err)
}

func TestBuild_MissingEncoder(t *testing.T) {
	t.Parallel()

	_, err := Build(New().WithBody("body"), "https://example.com", nil, nil)
	assert.EqualError(t, err, "cannot encode request body: encoder is not set")
}

func TestBuild_FormBody(t *testing.T) {
	t.Parallel()

	e := New().WithPost("/token").WithBody(map[string]string{"grant": "code", "id": "1"})
	req, err := Build(e, "https://example.com", nil, codec.NewForm())
	require.NoError(t, err)
	assert.Equal(t, "grant=code&id=1", string(req.Body()))
	assert.Equal(t, "application/x-www-form-urlencoded", req.ContentType())
}

func TestRequest_Immutable(t *testing.T) {
	t.Parallel()

	req, err := Build(New().WithPost("/a").AndHeader("X-A", "1").WithBody("foo"), "https://example.com", nil, codec.NewText())
	require.NoError(t, err)

	req.Header().Set("X-A", "modified")
	req.URL().Path = "/modified"
	body := req.Body()
	body[0] = 'X'

	assert.Equal(t, "1", req.Header().Get("X-A"))
	assert.Equal(t, "/a", req.URL().Path)
	assert.Equal(t, "foo", string(req.Body()))
}

func TestRequest_HTTPRequest(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	req, err := Build(New().WithPut("/launches/1").WithBody(launch{ID: "1"}), "https://example.com", map[string]string{"X-Global": "1"}, codec.NewJSON())
	require.NoError(t, err)

	httpReq, err := req.HTTPRequest(ctx)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, httpReq.Method)
	assert.Equal(t, "https://example.com/launches/1", httpReq.URL.String())
	assert.Equal(t, "application/json", httpReq.Header.Get("Content-Type"))
	assert.Equal(t, "1", httpReq.Header.Get("X-Global"))
	assert.Equal(t, int64(len(`{"id":"1"}`)), httpReq.ContentLength)
	assert.NotNil(t, httpReq.GetBody)
	body, err := io.ReadAll(httpReq.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, string(body))

	// Explicit Content-Type is kept
	req, err = Build(New().WithPost("/").AndHeader("Content-Type", "application/vnd.api+json").WithBody(launch{}), "https://example.com", nil, codec.NewJSON())
	require.NoError(t, err)
	httpReq, err = req.HTTPRequest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.api+json", httpReq.Header.Get("Content-Type"))

	// No body, no Content-Type
	req, err = Build(New(), "https://example.com", nil, codec.NewJSON())
	require.NoError(t, err)
	httpReq, err = req.HTTPRequest(ctx)
	require.NoError(t, err)
	assert.Empty(t, httpReq.Header.Get("Content-Type"))
	assert.Nil(t, httpReq.Body)
}
