package main

import (
	"fmt"
	"os"

	"github.com/javiermolinar/daybalance/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Configuration is loaded by the root command once --config is parsed.
	app := ui.NewApp(nil)
	return app.Execute()
}
