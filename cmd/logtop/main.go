package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		var usage usageError
		switch {
		case errors.As(err, &usage):
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprint(os.Stderr, usage.cmd.UsageString())
		case !errors.Is(err, context.Canceled):
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
