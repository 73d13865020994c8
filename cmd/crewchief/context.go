package main

import (
	"errors"
	"log/slog"
	"strings"
	"sync"

	"crewchief/internal/advisor"
	"crewchief/internal/config"
	"crewchief/internal/garage"
	"crewchief/internal/logging"
	"crewchief/internal/services/llm"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.Discard()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.Discard()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// withStore opens the garage database for the duration of one command.
func (c *commandContext) withStore(fn func(*garage.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := garage.Open(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return fn(store)
}

func (c *commandContext) newAdvisor() (*advisor.Advisor, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	llmCfg := cfg.GetLLM()
	if !llmCfg.Enabled {
		return nil, errors.New("AI features are disabled; set llm.enabled = true in the config file")
	}
	client := llm.NewClient(llmCfg)
	return advisor.New(client, c.ensureLogger()), nil
}

func (c *commandContext) dueThresholds() garage.DueThresholds {
	cfg, err := c.ensureConfig()
	if err != nil || cfg == nil {
		return garage.DueThresholds{Miles: 500, Months: 1}
	}
	return garage.DueThresholds{
		Miles:  cfg.Garage.DueSoonMiles,
		Months: cfg.Garage.DueSoonMonths,
	}
}
