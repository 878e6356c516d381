package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.True(t, names["createadmin"])

	assert.NotNil(t, rootCmd.Flags().Lookup("migrate"))
	assert.NotNil(t, serveCmd.Flags().Lookup("migrate"))
}

func TestCreateAdminRequiresFlags(t *testing.T) {
	for _, name := range []string{"username", "email", "password"} {
		flag := createAdminCmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, []string{"true"}, flag.Annotations["cobra_annotation_bash_completion_one_required_flag"], name)
	}
}
