package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	cases := map[string]string{
		"Ana@POS.test": "a…@p….test",
		"a@b.io":       "a@b.io",
		"":             "",
		"abc":          "***",
		"nodomain":     "n…n",
	}
	for in, want := range cases {
		assert.Equal(t, want, MaskEmail(in), in)
	}
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "postgres://pos:***@db:5432/pos?sslmode=disable",
		MaskDSN("postgres://pos:s3cr3t@db:5432/pos?sslmode=disable"))
	assert.Equal(t, "postgres://pos@db/pos", MaskDSN("postgres://pos@db/pos"))
	assert.Equal(t, "host=db user=pos", MaskDSN("host=db user=pos"))
}
