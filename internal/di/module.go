package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/smartxerox/internal/app"
	"github.com/polkiloo/smartxerox/internal/config"
	"github.com/polkiloo/smartxerox/internal/logger"
	"github.com/polkiloo/smartxerox/internal/pkg/auth"
	"github.com/polkiloo/smartxerox/internal/server/http/handlers"
	"github.com/polkiloo/smartxerox/internal/server/http/router"
	"github.com/polkiloo/smartxerox/internal/storage/blob"
	"github.com/polkiloo/smartxerox/internal/storage/postgres"
	"github.com/polkiloo/smartxerox/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		blob.Module,
		usecase.Module,
		fx.Provide(func(f *app.PrintShopFacade) handlers.PrintShopFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
