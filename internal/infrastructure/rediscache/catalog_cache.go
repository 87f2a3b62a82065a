package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/kangmasbudiman/klinikcare-inventory/internal/application/catalog"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/application/dto"
	"github.com/kangmasbudiman/klinikcare-inventory/pkg/config"
	"github.com/kangmasbudiman/klinikcare-inventory/pkg/logger"
)

var _ catalog.Cache = (*CatalogCache)(nil)

const activeListKey = "catalog:medicines:active"

// CatalogCache cachea en Redis el listado de medicamentos activos sin filtro.
// Un fallo de Redis degrada a miss: la lectura sigue hacia PostgreSQL.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// New conecta a Redis y construye el caché de catálogo.
func New(cfg config.RedisConfig, log *logger.Logger) (*CatalogCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &CatalogCache{
		client: client,
		ttl:    time.Duration(cfg.TTLSecs) * time.Second,
		log:    log,
	}, nil
}

// GetActiveList devuelve el listado cacheado, si existe y deserializa bien.
func (c *CatalogCache) GetActiveList(ctx context.Context) ([]dto.MedicineDTO, bool) {
	raw, err := c.client.Get(ctx, activeListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("lectura de caché de catálogo falló")
		}
		return nil, false
	}
	var list []dto.MedicineDTO
	if err := json.Unmarshal(raw, &list); err != nil {
		c.log.Warn().Err(err).Msg("caché de catálogo corrupto, se descarta")
		_ = c.client.Del(ctx, activeListKey).Err()
		return nil, false
	}
	return list, true
}

// SetActiveList guarda el listado con TTL.
func (c *CatalogCache) SetActiveList(ctx context.Context, list []dto.MedicineDTO) {
	raw, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, activeListKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("escritura de caché de catálogo falló")
	}
}

// Invalidate descarta el listado cacheado (tras cada ajuste comprometido).
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, activeListKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("invalidación de caché de catálogo falló")
	}
}

// Close cierra la conexión a Redis.
func (c *CatalogCache) Close() error {
	return c.client.Close()
}
