package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConvertsArguments(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-R", "-h", "kitte"}, strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Equal(t, "きって\n", out.String())
}

func TestRunSuppressesNewline(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-R", "-h", "-n", "kitte"}, strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Equal(t, "きって", out.String())
}

func TestRunReadsStdinWhenNoArgsGiven(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-R", "-h"}, strings.NewReader("kitte"), &out)
	require.NoError(t, err)
	assert.Equal(t, "きって\n", out.String())
}

func TestRunRejectsMultipleTargets(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-R", "-h", "-k", "kitte"}, strings.NewReader(""), &out)
	assert.Error(t, err)
}

func TestRunRejectsInteractiveFlag(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-i", "-R", "-h"}, strings.NewReader(""), &out)
	assert.Error(t, err)
}

func TestRunAppliesConversionFlags(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-H", "-r", "-f", "h", "-n", "ちぢむ"}, strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Equal(t, "chijimu", out.String())
}
