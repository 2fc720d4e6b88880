//go:build tools

// Package tools lists the development tools used on this module.
// They are installed with `go install` and kept out of go.mod.
package tools

// mockgen - regenerates internal/mocks (see internal/mocks/generate.go)
//   Install: go install go.uber.org/mock/mockgen@v0.6.0
//
// Air - live reload for the console during template work
//   Install: go install github.com/air-verse/air@v1.63.0
//   Run:     air --build.cmd "go build -o ./tmp/console ./cmd/frontdesk-console" --build.bin ./tmp/console
