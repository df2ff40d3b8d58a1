// Command server runs the HTTP API serving the daily market summary.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"niftycli/internal/app"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("PANIC RECOVERED: %v\n", r)
			fmt.Printf("Stack trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	application, err := app.NewApplication()
	if err != nil {
		fmt.Printf("Error: failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
