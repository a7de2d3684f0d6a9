package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageURLCommand(t *testing.T) {
	t.Setenv("BETTY_IMAGE_URL", "http://betty.test/images/")

	run := func(args ...string) string {
		out := &bytes.Buffer{}
		root := newRootCommand()
		root.SetOut(out)
		root.SetArgs(args)
		require.NoError(t, root.Execute())
		return strings.TrimSpace(out.String())
	}

	assert.Equal(t, "http://betty.test/images/1234/5/original/600.jpg", run("image", "url", "12345"))
	assert.Equal(t, "http://betty.test/images/1234/5/16x9/300.png",
		run("image", "url", "12345", "--ratio", "16x9", "--width", "300", "--format", "png"))
	assert.Equal(t, "http://betty.test/images/1/animated/original.gif", run("image", "url", " 1 ", "--animated"))
}

func TestImageURLCommandRejectsBadID(t *testing.T) {
	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"image", "url", "abcdef"})
	assert.Error(t, root.Execute())
}
