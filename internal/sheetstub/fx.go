package sheetstub

import (
	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/vitrine/internal/sheetstub/migration"
	"github.com/smallbiznis/vitrine/internal/sheetstub/repository"
	"github.com/smallbiznis/vitrine/internal/sheetstub/service"
	"go.uber.org/fx"
)

var Module = fx.Module("sheetstub",
	migration.Module,
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(NewHandler),
	fx.Invoke(func(h *Handler, r *gin.Engine) {
		h.Register(r)
	}),
)
