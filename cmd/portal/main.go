// cmd/portal/main.go
//
// Entry point for the PKS Lestari public portal. All lifecycle wiring
// lives in internal/app/bootstrap; WAFFLE drives the hooks from config
// loading through graceful shutdown.
package main

import (
	"context"

	"github.com/pkslestari/portal/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	app.Run(context.Background(), bootstrap.Hooks)
}
