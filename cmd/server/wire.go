//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/janhq/playground-api/internal/config"
	"github.com/janhq/playground-api/internal/domain/playground"
	"github.com/janhq/playground-api/internal/domain/template"
	templaterepo "github.com/janhq/playground-api/internal/infrastructure/repository/template"
	"github.com/janhq/playground-api/internal/interfaces/httpserver"
)

var playgroundSet = wire.NewSet(
	templaterepo.NewInMemoryRepository,
	wire.Bind(new(template.Repository), new(*templaterepo.InMemoryRepository)),
	newSeedData,
	newCatalog,
	newSeeds,
	newLatency,
	playground.NewService,
)

// BuildApplication assembles the playground service with Wire.
func BuildApplication() (*Application, error) {
	wire.Build(
		config.Load,
		newLogger,
		playgroundSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}
