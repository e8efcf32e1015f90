package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Pesokrava/autospares/internal/domain"
)

const (
	productListKeysSet = "products:list:cache_keys"
	dashboardKey       = "admin:dashboard"
)

// ProductPage is one cached page of a product listing
type ProductPage struct {
	Products []*domain.Product `json:"products"`
	Total    int               `json:"total"`
}

// RedisCache caches products, product listing pages and the admin dashboard
type RedisCache struct {
	client         *redis.Client
	productTTL     time.Duration
	productListTTL time.Duration
	dashboardTTL   time.Duration
}

// NewRedisCache creates a new Redis cache instance
func NewRedisCache(client *redis.Client, productTTL, productListTTL, dashboardTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:         client,
		productTTL:     productTTL,
		productListTTL: productListTTL,
		dashboardTTL:   dashboardTTL,
	}
}

func (c *RedisCache) getJSON(ctx context.Context, key string, dst interface{}) error {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ErrNotFound
		}
		return err
	}
	return json.Unmarshal(val, dst)
}

// Single products

func (c *RedisCache) productKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id.String())
}

// GetProduct returns a cached product or domain.ErrNotFound on a miss
func (c *RedisCache) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var product domain.Product
	if err := c.getJSON(ctx, c.productKey(id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// SetProduct caches a product
func (c *RedisCache) SetProduct(ctx context.Context, product *domain.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.productKey(product.ID), data, c.productTTL).Err()
}

// Listing pages

func (c *RedisCache) productListKey(filter domain.ProductFilter, limit, offset int) string {
	inStock := "any"
	if filter.InStock != nil {
		inStock = fmt.Sprintf("%t", *filter.InStock)
	}
	return fmt.Sprintf("products:list:cat:%s:brand:%s:stock:%s:active:%t:limit:%d:offset:%d",
		filter.Category, filter.Brand, inStock, filter.ActiveOnly, limit, offset)
}

// GetProductList returns a cached listing page or domain.ErrNotFound on a miss
func (c *RedisCache) GetProductList(ctx context.Context, filter domain.ProductFilter, limit, offset int) (*ProductPage, error) {
	var page ProductPage
	if err := c.getJSON(ctx, c.productListKey(filter, limit, offset), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SetProductList caches a listing page and tracks its key in a SET
func (c *RedisCache) SetProductList(ctx context.Context, filter domain.ProductFilter, limit, offset int, page *ProductPage) error {
	key := c.productListKey(filter, limit, offset)

	data, err := json.Marshal(page)
	if err != nil {
		return err
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, key, data, c.productListTTL)
	pipe.SAdd(ctx, productListKeysSet, key)
	pipe.Expire(ctx, productListKeysSet, c.productListTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// InvalidateProductLists removes every cached listing page using SET-based tracking
func (c *RedisCache) InvalidateProductLists(ctx context.Context) error {
	keys, err := c.client.SMembers(ctx, productListKeysSet).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	if len(keys) > 0 {
		keys = append(keys, productListKeysSet)
		return c.client.Unlink(ctx, keys...).Err()
	}

	return nil
}

// InvalidateProducts drops the given products and every listing page, since
// stock changes move products between in-stock filters.
func (c *RedisCache) InvalidateProducts(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) > 0 {
		keys := make([]string, len(ids))
		for i, id := range ids {
			keys[i] = c.productKey(id)
		}
		if err := c.client.Unlink(ctx, keys...).Err(); err != nil {
			return err
		}
	}
	return c.InvalidateProductLists(ctx)
}

// Dashboard

// GetDashboard returns the cached dashboard or domain.ErrNotFound on a miss
func (c *RedisCache) GetDashboard(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := c.getJSON(ctx, dashboardKey, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SetDashboard caches the dashboard
func (c *RedisCache) SetDashboard(ctx context.Context, stats *domain.DashboardStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, dashboardKey, data, c.dashboardTTL).Err()
}

// InvalidateDashboard drops the cached dashboard
func (c *RedisCache) InvalidateDashboard(ctx context.Context) error {
	return c.client.Del(ctx, dashboardKey).Err()
}
