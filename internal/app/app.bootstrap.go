package app

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/joshuarp/timeshard-api/internal/shared/config"
	sharedlog "github.com/joshuarp/timeshard-api/internal/shared/log"
	"go.uber.org/fx"
)

type configPathIn struct {
	fx.In
	ConfigPath string `name:"config_path"`
}

func New(configPath string, modules ...fx.Option) *fx.App {
	opts := []fx.Option{
		fx.Supply(
			fx.Annotate(
				strings.TrimSpace(configPath),
				fx.ResultTags(`name:"config_path"`),
			),
		),
		CoreModule(),
	}
	opts = append(opts, modules...)
	opts = append(opts, fx.Invoke(registerLifecycle))
	return fx.New(opts...)
}

func CoreModule() fx.Option {
	return fx.Module("core",
		fx.Provide(
			provideConfig,
			sharedlog.NewJSONLogger,
			provideRedisClient,
			provideTimeshardGenerator,
			provideUIDGenerator,
			provideFiberApp,
			provideRouterGroups,
		),
	)
}

func provideConfig(in configPathIn) (config.ConfigProvider, error) {
	loadOrder := make([]config.Options, 0, 3)
	if in.ConfigPath != "" {
		loadOrder = append(loadOrder, config.Options{YAMLPath: in.ConfigPath})
	}

	loadOrder = append(loadOrder,
		config.Options{
			YAMLPath: "config.yaml",
			EnvPath:  ".env",
		},
		config.Options{
			YAMLPath: "config.yaml.example",
			EnvPath:  ".env.example",
		},
	)

	var lastErr error
	for _, opts := range loadOrder {
		provider, err := config.Init(opts)
		if err == nil {
			return provider, nil
		}
		lastErr = err
	}

	return nil, lastErr
}

func provideFiberApp(cfg config.ConfigProvider) *fiber.App {
	readTimeout := cfg.GetDuration("server.read_timeout")
	if readTimeout <= 0 {
		readTimeout = 30 * time.Second
	}

	writeTimeout := cfg.GetDuration("server.write_timeout")
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}

	return fiber.New(fiber.Config{
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	})
}
