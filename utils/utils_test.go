package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLifeDatesString(t *testing.T) {
	tests := []struct {
		name          string
		dateOfBirth   string
		dateOfPassing string
		want          string
	}{
		{"full dates", "1950-02-01", "2020-03-04", "1 Feb 1950 - 4 Mar 2020"},
		{"missing birth", "", "2020-03-04", ""},
		{"missing passing", "1950-02-01", "", ""},
		{"garbage", "yesterday", "today", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetLifeDatesString(tt.dateOfBirth, tt.dateOfPassing))
		})
	}
}

func TestRand16BytesToBase62(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		token := Rand16BytesToBase62()
		assert.NotEmpty(t, token)
		assert.False(t, seen[token], "token repeated: %s", token)
		seen[token] = true
		for _, r := range token {
			ok := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
			assert.True(t, ok, "unexpected character %q in token", r)
		}
	}
}

func TestSha512String(t *testing.T) {
	a := Sha512String("password" + "salt1")
	b := Sha512String("password" + "salt2")
	assert.Len(t, a, 128) // hex-encoded sha512
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, Sha512String("password"+"salt1"))
}
