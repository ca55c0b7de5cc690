package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// PanelConfig holds display settings an operator may edit while the panel runs.
type PanelConfig struct {
	Title          string `mapstructure:"title"`
	CurrencyPrefix string `mapstructure:"currencyPrefix"`
}

func DefaultPanelConfig() PanelConfig {
	return PanelConfig{
		Title:          "Painel de Produtos",
		CurrencyPrefix: "R$",
	}
}

type PanelConfigHolder struct {
	current atomic.Value // holds PanelConfig
}

// NewStaticPanelConfigHolder returns a holder that never reloads.
func NewStaticPanelConfigHolder(cfg PanelConfig) *PanelConfigHolder {
	holder := &PanelConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewPanelConfigHolder(log *zap.Logger) (*PanelConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("panel")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/vitrine")
	v.AddConfigPath(".")

	v.SetEnvPrefix("VITRINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultPanelConfig()
	v.SetDefault("panel.title", defaults.Title)
	v.SetDefault("panel.currencyPrefix", defaults.CurrencyPrefix)

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileFound = false
	}

	var cfg PanelConfig
	if err := v.UnmarshalKey("panel", &cfg); err != nil {
		return nil, err
	}
	if err := validatePanelConfig(cfg); err != nil {
		return nil, err
	}

	holder := NewStaticPanelConfigHolder(cfg)
	if !fileFound {
		return holder, nil
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PanelConfig
		if err := v.UnmarshalKey("panel", &updated); err != nil {
			log.Warn("panel config reload failed", zap.Error(err))
			return
		}
		if err := validatePanelConfig(updated); err != nil {
			log.Warn("invalid panel config ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("panel config reloaded", zap.String("file", e.Name))
	})
	v.WatchConfig()

	return holder, nil
}

func (h *PanelConfigHolder) Get() PanelConfig {
	if h == nil {
		return DefaultPanelConfig()
	}
	cfg, ok := h.current.Load().(PanelConfig)
	if !ok {
		return DefaultPanelConfig()
	}
	return cfg
}

func validatePanelConfig(cfg PanelConfig) error {
	if strings.TrimSpace(cfg.Title) == "" {
		return errors.New("panel.title cannot be empty")
	}
	return nil
}
