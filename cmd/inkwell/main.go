// Command inkwell runs the content-management backend: SQLite-backed
// articles, pages, counters, sessions, and assets behind an Echo server.
// All configuration comes from environment variables (or a .env file).
package main

import (
	"log"

	"github.com/inkwell-cms/inkwell"
)

func main() {
	cfg, err := inkwell.ConfigFromEnv()
	if err != nil {
		log.Fatalf("inkwell: config: %v", err)
	}

	app := inkwell.New(cfg)
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatalf("inkwell: %v", err)
	}
}
