package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cristianoliveira/courtside/internal/version"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestPrintHelpTextListsCommandsInOrder(t *testing.T) {
	root := &cobra.Command{Use: "courtside"}
	for _, name := range []string{"version", "serve", "feed", "history", "slots", "hidden"} {
		root.AddCommand(&cobra.Command{Use: name, Short: name + " short", Run: func(*cobra.Command, []string) {}})
	}

	var buf bytes.Buffer
	printHelpText(&buf, root)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "courtside v"+version.String()))
	assert.NotContains(t, out, "hidden")

	last := -1
	for _, name := range commandOrder {
		idx := strings.Index(out, "    "+name)
		if assert.GreaterOrEqual(t, idx, 0, "missing %s", name) {
			assert.Greater(t, idx, last, "%s out of order", name)
			last = idx
		}
	}
	assert.Contains(t, out, "feed short")
}

func TestRootCmdMetadata(t *testing.T) {
	assert.Equal(t, "courtside", RootCmd.Use)
	assert.Equal(t, version.String(), RootCmd.Version)
	assert.True(t, RootCmd.SilenceUsage)
	assert.True(t, RootCmd.SilenceErrors)
}
