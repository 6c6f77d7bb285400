package main

import (
	"fmt"
	"io"
	"os"

	"task-tracker/internal/cli"
	"task-tracker/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one tk invocation and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := cli.NewRootCommand(config.NewLoader(), openBusinessAPI, cli.Streams{
		In:  stdin,
		Out: stdout,
		Err: stderr,
	})
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Oops! %v\n", err)
		return 1
	}
	return 0
}
