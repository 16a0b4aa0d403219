package shell_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depsize/internal/adapters/shell"
	"go.trai.ch/depsize/internal/core/ports"
	"go.trai.ch/depsize/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestRunner_Run_CapturesStdout(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	out, err := shell.NewRunner(mockLogger).Run(context.Background(), ports.Command{
		Name: "sh",
		Args: []string{"-c", `printf '{"packages":[]}'`},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"packages":[]}`, string(out))
}

func TestRunner_Run_ForwardsStderrLines(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	gomock.InOrder(
		mockLogger.EXPECT().Info("line1"),
		mockLogger.EXPECT().Info("part1part2"),
	)

	_, err := shell.NewRunner(mockLogger).Run(context.Background(), ports.Command{
		Name: "sh",
		Args: []string{"-c", "echo line1 >&2; printf part1 >&2; sleep 0.1; echo part2 >&2"},
	})
	require.NoError(t, err)
}

func TestRunner_Run_WorkingDirAndEnv(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	dir := t.TempDir()
	out, err := shell.NewRunner(mockLogger).Run(context.Background(), ports.Command{
		Name: "sh",
		Args: []string{"-c", `printf "%s|%s" "$(pwd -P)" "$DEPSIZE_TEST"`},
		Dir:  dir,
		Env:  []string{"DEPSIZE_TEST=value-123"},
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "|value-123")
}

func TestRunner_Run_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("error: could not find Cargo.toml").Times(1)

	_, err := shell.NewRunner(mockLogger).Run(context.Background(), ports.Command{
		Name: "sh",
		Args: []string{"-c", "echo 'error: could not find Cargo.toml' >&2; exit 101"},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "command failed")
}

func TestRunner_Run_MissingExecutable(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	_, err := shell.NewRunner(mockLogger).Run(context.Background(), ports.Command{
		Name: "depsize-no-such-binary",
	})
	require.Error(t, err)
}
