package main

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/smallbiznis/vitrine/internal/config"
	"github.com/smallbiznis/vitrine/internal/observability"
	obsmetrics "github.com/smallbiznis/vitrine/internal/observability/metrics"
	"github.com/smallbiznis/vitrine/internal/server"
	"github.com/smallbiznis/vitrine/internal/sheetstub"
	"github.com/smallbiznis/vitrine/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// sheetstub serves the spreadsheet REST contract from a local database so
// the panel can run without the hosted sheet.
func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,

		fx.Provide(NewEngine),
		sheetstub.Module,

		fx.Invoke(func(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
			server.Serve(lc, cfg.SheetstubAddr, r, log)
		}),
	)
	app.Run()
}

// NewEngine also exposes the gorm pool collectors, which the metrics plugin
// registers on the default registry.
func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics, reg *prometheus.Registry) *gin.Engine {
	return server.NewEngine(obsCfg, httpMetrics, prometheus.Gatherers{reg, gormGatherer()})
}

func gormGatherer() prometheus.Gatherer {
	return prometheus.GathererFunc(func() ([]*dto.MetricFamily, error) {
		families, err := prometheus.DefaultGatherer.Gather()
		if err != nil {
			return nil, err
		}
		kept := families[:0]
		for _, family := range families {
			if strings.HasPrefix(family.GetName(), "gorm_") {
				kept = append(kept, family)
			}
		}
		return kept, nil
	})
}
