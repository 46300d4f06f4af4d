package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/IsaccBarker/Greatness/internal/cli"
	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/IsaccBarker/Greatness/pkg/style"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		details := errors.GetErrorDetails(err)
		keys := make([]string, 0, len(details))
		for key := range details {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", key, details[key])
		}
		os.Exit(1)
	}
}
