package ports

import "context"

// Command describes an external program invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env is appended to the process environment.
	Env []string
}

// CommandRunner runs external programs on behalf of resolvers.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run executes cmd and returns its standard output.
	Run(ctx context.Context, cmd Command) ([]byte, error)
}
