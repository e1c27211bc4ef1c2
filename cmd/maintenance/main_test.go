package main

import (
	"io"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptions(t *testing.T) {
	opts, err := parseOptions([]string{"--sweep"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, opts.sweep)

	opts, err = parseOptions([]string{"--generate", "GTA-5-Mobile", "--reviews", "3", "--name", "GTA V"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, options{generate: "GTA-5-Mobile", name: "GTA V", reviews: 3, comments: 6}, opts)
}

func TestParseOptions_Errors(t *testing.T) {
	_, err := parseOptions(nil, io.Discard)
	assert.ErrorIs(t, err, errNoAction)

	_, err = parseOptions([]string{"--sweep", "--generate", "x"}, io.Discard)
	assert.ErrorContains(t, err, "mutually exclusive")

	_, err = parseOptions([]string{"--reviews", "many"}, io.Discard)
	assert.Error(t, err)

	_, err = parseOptions([]string{"--help"}, io.Discard)
	assert.ErrorIs(t, err, pflag.ErrHelp)
}
