// Package main provides the entrypoint for snipcart-webhook-app.
package main

import (
	"os"

	"github.com/bitego/snipcart-webhook-app/cmd"
)

func main() {
	if err := cmd.New().Execute(); err != nil {
		os.Exit(1)
	}
}
