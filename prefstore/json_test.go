package prefstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument(t *testing.T) {
	t.Run("empty input is an empty document", func(t *testing.T) {
		for _, text := range []string{"", "   ", "\n\t"} {
			v, err := parseDocument([]byte(text))
			require.NoError(t, err)
			assert.True(t, v.IsNull())
		}
	})

	t.Run("scalar kinds", func(t *testing.T) {
		v, err := parseDocument([]byte(`{"b":true,"i":-17,"u":18446744073709551615,"d":-79.5,"s":"abc","n":null}`))
		require.NoError(t, err)

		assert.Equal(t, KindBool, v.member("b").Kind())
		assert.Equal(t, KindInt64, v.member("i").Kind())
		assert.Equal(t, KindUint64, v.member("u").Kind())
		assert.Equal(t, KindDouble, v.member("d").Kind())
		assert.Equal(t, KindString, v.member("s").Kind())
		assert.Equal(t, KindNull, v.member("n").Kind())

		assert.Equal(t, int64(-17), v.member("i").asInt64())
		assert.Equal(t, uint64(18446744073709551615), v.member("u").asUint64())
		assert.InDelta(t, -79.5, v.member("d").asFloat64(), 0)
	})

	t.Run("nested structures", func(t *testing.T) {
		v, err := parseDocument([]byte(`{"abra":{"cadabra":{"alakazam":42}},"list":[1,"two",{"three":3}]}`))
		require.NoError(t, err)

		leaf := v.lookup([]string{"abra", "cadabra", "alakazam"})
		require.NotNil(t, leaf)
		assert.Equal(t, int64(42), leaf.asInt64())

		list := v.member("list")
		require.NotNil(t, list)
		require.Len(t, list.Elems(), 3)
		assert.Equal(t, "two", list.Elems()[1].Str())
	})

	t.Run("member order is preserved", func(t *testing.T) {
		v, err := parseDocument([]byte(`{"z":1,"a":2,"m":3}`))
		require.NoError(t, err)

		keys := make([]string, 0, 3)
		for _, m := range v.Members() {
			keys = append(keys, m.Key)
		}
		assert.Equal(t, []string{"z", "a", "m"}, keys)
	})

	t.Run("duplicate keys keep the last value", func(t *testing.T) {
		v, err := parseDocument([]byte(`{"k":1,"k":2}`))
		require.NoError(t, err)
		require.Len(t, v.Members(), 1)
		assert.Equal(t, int64(2), v.member("k").asInt64())
	})

	t.Run("comments and trailing commas are tolerated", func(t *testing.T) {
		text := `{
			// viewer settings
			"viewer": {
				"font_size": 13, /* points */
			},
		}`
		v, err := parseDocument([]byte(text))
		require.NoError(t, err)
		assert.Equal(t, int64(13), v.lookup([]string{"viewer", "font_size"}).asInt64())
	})

	t.Run("broken input fails", func(t *testing.T) {
		for _, text := range []string{
			`{"abra":42`,
			`sodfbjosbfljsegfogw!@@#%$**&(`,
			`{"a":1} trailing`,
		} {
			_, err := parseDocument([]byte(text))
			assert.Error(t, err, "input %q", text)
		}
	})
}

func TestSerializeDocument(t *testing.T) {
	t.Run("compact ordered output", func(t *testing.T) {
		obj := ObjectValue()
		obj.setMember("z", IntValue(1))
		inner := ObjectValue()
		inner.setMember("s", StringValue(`quo"te`))
		inner.setMember("b", BoolValue(false))
		obj.setMember("a", inner)
		obj.setMember("list", ArrayValue(Null(), DoubleValue(0.5)))

		got := string(serializeDocument(obj))
		assert.Equal(t, `{"z":1,"a":{"s":"quo\"te","b":false},"list":[null,0.5]}`, got)
	})

	t.Run("round trip", func(t *testing.T) {
		text := []byte(`{"abra":{"cadabra":{"alakazam":42}},"x":[true,"s",-1.25],"big":18446744073709551615}`)
		v, err := parseDocument(text)
		require.NoError(t, err)

		again, err := parseDocument(serializeDocument(v))
		require.NoError(t, err)
		assert.True(t, v.Equal(again))
	})

	t.Run("serialization is deterministic", func(t *testing.T) {
		v, err := parseDocument([]byte(`{"b":1,"a":{"y":2,"x":3}}`))
		require.NoError(t, err)
		first := string(serializeDocument(v))
		second := string(serializeDocument(v))
		assert.Equal(t, first, second)
		assert.Equal(t, `{"b":1,"a":{"y":2,"x":3}}`, first)
	})
}
