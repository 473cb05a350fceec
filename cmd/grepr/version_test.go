package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionString(t *testing.T) {
	output := versionString()
	assert.Contains(t, output, "grepr v"+version)
	assert.Contains(t, output, "Commit: "+commit)
	assert.Contains(t, output, "Go version:")
	assert.Contains(t, output, "OS/Arch:")
}
