package cache_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/shopcraft/storefront/internal/cache"
	"github.com/shopcraft/storefront/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedProduct struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

func setup(t *testing.T) (cache.Cache, redismock.ClientMock, *config.CacheConfig) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	cfg := &config.CacheConfig{
		DefaultTTL: 10 * time.Minute,
	}
	redisCache := cache.NewRedisCache(client, cfg)

	return redisCache, mock, cfg
}

func TestGet(t *testing.T) {
	ctx := t.Context()
	testKey := cache.Key(cache.ProductKeyPrefix, "abc")
	testValue := cachedProduct{Name: "Widget", Stock: 7}
	jsonData, err := json.Marshal(testValue)
	require.NoError(t, err)

	t.Run("Success - Key Found", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)

		var result cachedProduct

		mock.ExpectGet(testKey).SetVal(string(jsonData))

		// Act
		found, err := redisCache.Get(ctx, testKey, &result)

		// Assert
		require.NoError(t, err)
		assert.True(t, found, "Get should return found=true when key exists")
		assert.Equal(t, testValue, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Cache Miss", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)

		var result cachedProduct

		mock.ExpectGet(testKey).SetErr(redis.Nil)

		// Act
		found, err := redisCache.Get(ctx, testKey, &result)

		// Assert
		require.NoError(t, err, "a cache miss is not an error")
		assert.False(t, found)
		assert.Empty(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)

		var result cachedProduct

		expectedErr := errors.New("redis connection error")

		mock.ExpectGet(testKey).SetErr(expectedErr)

		// Act
		found, err := redisCache.Get(ctx, testKey, &result)

		// Assert
		require.Error(t, err)
		assert.False(t, found)
		assert.ErrorIs(t, err, expectedErr)
		assert.Contains(t, err.Error(), fmt.Sprintf("failed to get key %s from redis", testKey))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Unmarshal Error", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)

		var result cachedProduct

		mock.ExpectGet(testKey).SetVal(`{"name": "Widget", "stock": "plenty"}`)

		// Act
		found, err := redisCache.Get(ctx, testKey, &result)

		// Assert
		require.Error(t, err)
		assert.False(t, found)

		var jsonErr *json.UnmarshalTypeError

		assert.ErrorAs(t, err, &jsonErr)
		assert.Contains(t, err.Error(), "failed to unmarshal cache data for key "+testKey)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSet(t *testing.T) {
	ctx := t.Context()
	testKey := cache.Key(cache.ProductKeyPrefix, "abc")
	testValue := cachedProduct{Name: "Widget", Stock: 7}
	jsonData, err := json.Marshal(testValue)
	require.NoError(t, err)

	t.Run("Success - With Specific TTL", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		specificTTL := 5 * time.Minute

		mock.ExpectSet(testKey, jsonData, specificTTL).SetVal("OK")

		// Act
		err := redisCache.Set(ctx, testKey, testValue, specificTTL)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Zero TTL Falls Back To Default", func(t *testing.T) {
		// Arrange
		redisCache, mock, cfg := setup(t)

		mock.ExpectSet(testKey, jsonData, cfg.DefaultTTL).SetVal("OK")

		// Act
		err := redisCache.Set(ctx, testKey, testValue, 0)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Marshal Error", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		unmarshallableValue := make(chan int)

		// Act
		err := redisCache.Set(ctx, testKey, unmarshallableValue, 5*time.Minute)

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to marshal value for key "+testKey)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		expectedErr := errors.New("redis SET failed")

		mock.ExpectSet(testKey, jsonData, 5*time.Minute).SetErr(expectedErr)

		// Act
		err := redisCache.Set(ctx, testKey, testValue, 5*time.Minute)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
		assert.Contains(t, err.Error(), fmt.Sprintf("failed to set key %s in redis", testKey))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDelete(t *testing.T) {
	ctx := t.Context()
	testKey := cache.Key(cache.ProductKeyPrefix, "abc")

	t.Run("Success", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)

		mock.ExpectDel(testKey).SetVal(1)

		// Act
		err := redisCache.Delete(ctx, testKey)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		expectedErr := errors.New("redis DEL failed")

		mock.ExpectDel(testKey).SetErr(expectedErr)

		// Act
		err := redisCache.Delete(ctx, testKey)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
		assert.Contains(t, err.Error(), fmt.Sprintf("failed to delete key %s from redis", testKey))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestKey(t *testing.T) {
	assert.Equal(t, "product:abc", cache.Key(cache.ProductKeyPrefix, "abc"))
	assert.Equal(t, "prefix:", cache.Key("prefix", ""))
}
