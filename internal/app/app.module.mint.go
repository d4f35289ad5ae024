package app

import (
	"github.com/joshuarp/timeshard-api/internal/handlers"
	"github.com/joshuarp/timeshard-api/internal/services"
	"github.com/joshuarp/timeshard-api/internal/shared/config"
	"github.com/joshuarp/timeshard-api/internal/timeshard"
	"go.uber.org/fx"
)

func MintModule() fx.Option {
	return fx.Module("mint",
		fx.Provide(
			fx.Annotate(
				provideMintRateLimiter,
				fx.ResultTags(`name:"mint_rate_limiter"`),
			),
			fx.Annotate(
				provideMintIDService,
				fx.As(new(handlers.IDMintService)),
			),
			fx.Annotate(
				provideParseIDService,
				fx.As(new(handlers.IDParseService)),
			),
			fx.Annotate(
				provideDescribeLayoutService,
				fx.As(new(handlers.LayoutDescribeService)),
			),
			handlers.NewMintIDHandler,
			handlers.NewParseIDHandler,
			handlers.NewDescribeLayoutHandler,
		),
		fx.Invoke(registerMintRoutes),
	)
}

func provideMintIDService(cfg config.ConfigProvider, generator *timeshard.Generator) *services.MintIDService {
	return services.NewMintIDService(generator, cfg.GetInt("mint.max_batch"))
}

func provideParseIDService(generator *timeshard.Generator) *services.ParseIDService {
	return services.NewParseIDService(generator)
}

func provideDescribeLayoutService(generator *timeshard.Generator) *services.DescribeLayoutService {
	return services.NewDescribeLayoutService(generator)
}
