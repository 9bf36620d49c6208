package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/form-service/internal/models"
)

const formKeyPrefix = "form:"

// FormCache stores loaded forms by id. Cache failures are logged and treated
// as misses so the store stays the source of truth.
type FormCache struct {
	cache  CacheService
	ttl    time.Duration
	logger *slog.Logger
}

func NewFormCache(cache CacheService, ttl time.Duration, logger *slog.Logger) *FormCache {
	return &FormCache{cache: cache, ttl: ttl, logger: logger}
}

func FormKey(id string) string {
	return formKeyPrefix + id
}

// Get returns the cached form, or false on a miss.
func (c *FormCache) Get(ctx context.Context, id string) (*models.Form, bool) {
	var form models.Form
	err := c.cache.Get(ctx, FormKey(id), &form)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			c.logger.Warn("Form cache read failed", "form_id", id, "error", err)
		}
		return nil, false
	}
	return &form, true
}

func (c *FormCache) Set(ctx context.Context, form *models.Form) {
	if err := c.cache.Set(ctx, FormKey(form.ID), form, c.ttl); err != nil {
		c.logger.Warn("Form cache write failed", "form_id", form.ID, "error", err)
	}
}

// Flush drops every cached form.
func (c *FormCache) Flush(ctx context.Context) error {
	return c.cache.DeletePattern(ctx, formKeyPrefix+"*")
}
