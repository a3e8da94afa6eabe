package main

import (
	"fmt"

	"github.com/JustJay7/court-scheduler/internal/cache"
	"github.com/JustJay7/court-scheduler/internal/cases"
	"github.com/JustJay7/court-scheduler/internal/config"
	"github.com/JustJay7/court-scheduler/internal/database"
	"github.com/JustJay7/court-scheduler/internal/server"
	"github.com/JustJay7/court-scheduler/pkg/logger"
	"gorm.io/gorm"
)

// commandContext lazily loads the shared dependencies of every command.
type commandContext struct {
	dbPath string

	cfg *config.Config
	log *logger.Logger
	db  *gorm.DB
}

func (c *commandContext) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if c.dbPath != "" {
		cfg.DatabasePath = c.dbPath
	}
	c.cfg = cfg
	return cfg, nil
}

func (c *commandContext) logger() (*logger.Logger, error) {
	if c.log != nil {
		return c.log, nil
	}
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.log = log
	return log, nil
}

func (c *commandContext) database() (*gorm.DB, error) {
	if c.db != nil {
		return c.db, nil
	}
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	c.db = db
	return db, nil
}

// caseCache returns nil when CASE_CACHE_TTL is unset.
func (c *commandContext) caseCache() (cache.Cache, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	if !cfg.CacheEnabled() {
		return nil, nil
	}
	return cache.NewCache(cfg.CacheSize, cfg.CaseCacheTTL), nil
}

func (c *commandContext) service() (*cases.Service, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	log, err := c.logger()
	if err != nil {
		return nil, err
	}
	db, err := c.database()
	if err != nil {
		return nil, err
	}
	return server.NewCaseService(cfg, db, nil, log), nil
}

func (c *commandContext) close() {
	if c.db != nil {
		if sqlDB, err := c.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if c.log != nil {
		_ = c.log.Sync()
	}
}
