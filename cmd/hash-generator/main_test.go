package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cheap = []string{"-memory", "64", "-iterations", "1", "-parallelism", "1"}

func TestGenerateAndVerify(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(append(cheap, "correct horse"), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	hash := strings.TrimSpace(stdout.String())
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=64,t=1,p=1$"))

	stdout.Reset()
	assert.Equal(t, 0, run([]string{"-verify", hash, "correct horse"}, &stdout, &stderr))
	assert.Equal(t, "match\n", stdout.String())

	stdout.Reset()
	assert.Equal(t, 1, run([]string{"-verify", hash, "wrong horse"}, &stdout, &stderr))
	assert.Equal(t, "mismatch\n", stdout.String())
}

func TestGenerateRejectsShortPassword(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(append(cheap, "short", "long enough"), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "password: too short")
	assert.Len(t, strings.Split(strings.TrimSpace(stdout.String()), "\n"), 1)
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no passwords", nil, 2},
		{"verify with two passwords", []string{"-verify", "$argon2id$x", "a", "b"}, 2},
		{"malformed hash", []string{"-verify", "not-a-hash", "password1"}, 1},
		{"parallelism overflow", []string{"-parallelism", "300", "password1"}, 2},
		{"unknown flag", []string{"-cost", "10", "password1"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.want, run(tt.args, &stdout, &stderr))
		})
	}
}
