package catalog

import (
	"github.com/smallbiznis/vitrine/internal/catalog/cache"
	"github.com/smallbiznis/vitrine/internal/catalog/dispatch"
	"github.com/smallbiznis/vitrine/internal/catalog/intake"
	"github.com/smallbiznis/vitrine/internal/catalog/render"
	"github.com/smallbiznis/vitrine/internal/catalog/service"
	"github.com/smallbiznis/vitrine/internal/catalog/store"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog",
	fx.Provide(store.New),
	fx.Provide(cache.New),
	fx.Provide(service.New),
	fx.Provide(dispatch.New),
	fx.Provide(intake.NewIDGenerator),
	fx.Provide(intake.NewBuilder),
	fx.Provide(render.New),
)
