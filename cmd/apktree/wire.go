//go:build wireinject

package main

import (
	"github.com/google/wire"
)

func InitApp(opts AppOptions) (*App, error) {
	wire.Build(
		ProvideConfig,
		ProvideLogger,
		ProvideIgnore,
		ProvideAnalyzer,
		wire.Struct(new(App), "Config", "Logger", "Analyzer"),
	)
	return nil, nil
}
