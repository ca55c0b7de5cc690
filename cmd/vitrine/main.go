package main

import (
	"github.com/smallbiznis/vitrine/internal/catalog"
	"github.com/smallbiznis/vitrine/internal/config"
	"github.com/smallbiznis/vitrine/internal/observability"
	"github.com/smallbiznis/vitrine/internal/server"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		catalog.Module,
		server.Module,
	)
	app.Run()
}
