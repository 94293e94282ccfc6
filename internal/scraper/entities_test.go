package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEntities(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"&frac14; cup", "¼ cup"},
		{"&frac12; teaspoon", "½ teaspoon"},
		{"we&#8217;ll", "we’ll"},
		{"we&#x2019;ll", "we’ll"},
		{"&#8532; cup", "⅔ cup"},
		{"al dente &mdash; firm", "al dente — firm"},
		{"&quot;quoted&quot;", `"quoted"`},
		{"salt &amp; pepper", "salt & pepper"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, DecodeEntities(tc.in))
	}
}

func TestDecodeEntitiesIsIdempotent(t *testing.T) {
	plain := "2 cups flour (sifted), 1 tsp. salt!"
	assert.Equal(t, plain, DecodeEntities(plain))

	decoded := DecodeEntities("&frac14; cup")
	assert.Equal(t, decoded, DecodeEntities(decoded))
}
