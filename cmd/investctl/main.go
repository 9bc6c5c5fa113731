// Package main - investctl CLI
//
// Usage:
//
//	go run ./cmd/investctl fetch stocks
//	go run ./cmd/investctl fetch news
//	go run ./cmd/investctl fetch history --pages 2
//	go run ./cmd/investctl pipeline
package main

import (
	"os"

	"github.com/PAlucas/investsite/cmd/investctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
