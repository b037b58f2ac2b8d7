package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinInts(t *testing.T) {
	assert.Equal(t, "-", joinInts(nil))
	assert.Equal(t, "61", joinInts([]int{61}))
	assert.Equal(t, "1, 2, 12", joinInts([]int{1, 2, 12}))
}

func TestAssignSeatsCmd_Flags(t *testing.T) {
	cmd := AssignSeatsCmd(&AppContext{})

	require.NoError(t, cmd.ParseFlags([]string{"-o", "out.csv", "--workers", "4", "--dry-run"}))

	output, err := cmd.Flags().GetString("output")
	require.NoError(t, err)
	assert.Equal(t, "out.csv", output)

	workers, err := cmd.Flags().GetInt("workers")
	require.NoError(t, err)
	assert.Equal(t, 4, workers)

	dryRun, err := cmd.Flags().GetBool("dry-run")
	require.NoError(t, err)
	assert.True(t, dryRun)

	assert.Error(t, cmd.Args(cmd, nil))
}
