package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommand_RejectsBadTransport(t *testing.T) {
	t.Setenv("SHOPIFY_ACCESS_TOKEN", "shpat_test")
	t.Setenv("SHOPIFY_API_BASE", "https://shop.example")

	cmd := newRootCommand()
	cmd.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "none.env"), "--transport", "carrier-pigeon"})
	err := cmd.Execute()
	require.ErrorContains(t, err, "MCP_TRANSPORT")
}

func TestRootCommand_RequiresCredentials(t *testing.T) {
	t.Setenv("SHOPIFY_ACCESS_TOKEN", "")
	t.Setenv("SHOPIFY_API_BASE", "https://shop.example")

	cmd := newRootCommand()
	cmd.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")})
	require.Error(t, cmd.Execute())
}

func TestRootCommand_RejectsPositionalArgs(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"extra"})
	require.Error(t, cmd.Execute())
}
