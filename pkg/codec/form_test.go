package codec_test

import (
	"net/url"
	"testing"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keboola/go-networking/pkg/codec"
)

type FormBase struct {
	ID string `json:"id"`
}

type formBody struct {
	FormBase
	Name     string `json:"name"`
	Alias    string `writeas:"alias" json:"otherName"`
	Optional string `json:"optional" writeoptional:"true"`
	ReadOnly string `json:"readOnly" readonly:"true"`
	Ignored  string `json:"-"`
	Count    int    `json:"count"`
}

func TestForm_Encode_Struct(t *testing.T) {
	t.Parallel()
	out, err := codec.NewForm().Encode(&formBody{
		FormBase: FormBase{ID: "123"},
		Name:     "foo bar",
		Alias:    "baz",
		ReadOnly: "ro",
		Ignored:  "ignored",
		Count:    5,
	})
	require.NoError(t, err)
	assert.Equal(t, "alias=baz&count=5&id=123&name=foo+bar", string(out))
}

func TestForm_Encode_Map(t *testing.T) {
	t.Parallel()
	ordered := orderedmap.New()
	ordered.Set("z", 1)
	ordered.Set("a", 2)

	out, err := codec.NewForm().Encode(map[string]any{
		"list":    []string{"a", "b"},
		"map":     map[string]string{"k": "v"},
		"bool":    true,
		"ordered": ordered,
	})
	require.NoError(t, err)
	values, err := url.ParseQuery(string(out))
	require.NoError(t, err)
	assert.Equal(t, url.Values{
		"list[0]": {"a"},
		"list[1]": {"b"},
		"map[k]":  {"v"},
		"bool":    {"true"},
		"ordered": {`{"z":1,"a":2}`},
	}, values)
}

func TestForm_Encode_Unsupported(t *testing.T) {
	t.Parallel()
	_, err := codec.NewForm().Encode(123)
	assert.EqualError(t, err, "cannot encode int as a form body")
}

func TestForm_Decode(t *testing.T) {
	t.Parallel()
	var values url.Values
	require.NoError(t, codec.NewForm().Decode([]byte("a=1&b=2&b=3"), &values))
	assert.Equal(t, url.Values{"a": {"1"}, "b": {"2", "3"}}, values)

	var m map[string]string
	require.NoError(t, codec.NewForm().Decode([]byte("a=1&b=2"), &m))
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, m)

	var s string
	assert.Error(t, codec.NewForm().Decode([]byte("a=1"), &s))
}
