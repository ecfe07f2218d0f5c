//go:build integration

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type LanguageCacheTestSuite struct {
	suite.Suite
	container testcontainers.Container
	rdb       *redis.Client
	cache     *LanguageCache
}

func (s *LanguageCacheTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(s.T(), err)
	s.container = container

	host, err := container.Host(ctx)
	require.NoError(s.T(), err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(s.T(), err)

	s.rdb = redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	require.NoError(s.T(), s.rdb.Ping(ctx).Err())
	s.cache = NewLanguageCache(s.rdb, time.Minute)
}

func (s *LanguageCacheTestSuite) SetupTest() {
	require.NoError(s.T(), s.rdb.FlushDB(context.Background()).Err())
}

func (s *LanguageCacheTestSuite) TearDownSuite() {
	if s.rdb != nil {
		_ = s.rdb.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *LanguageCacheTestSuite) TestGetMiss() {
	lang, ok, err := s.cache.Get(context.Background(), 1)

	require.NoError(s.T(), err)
	require.False(s.T(), ok)
	require.Empty(s.T(), lang)
}

func (s *LanguageCacheTestSuite) TestSetThenGet() {
	ctx := context.Background()
	require.NoError(s.T(), s.cache.Set(ctx, 42, "uk"))

	lang, ok, err := s.cache.Get(ctx, 42)
	require.NoError(s.T(), err)
	require.True(s.T(), ok)
	require.Equal(s.T(), "uk", lang)

	ttl, err := s.rdb.TTL(ctx, "lang:42").Result()
	require.NoError(s.T(), err)
	require.Greater(s.T(), ttl, time.Duration(0))
}

func (s *LanguageCacheTestSuite) TestInvalidate() {
	ctx := context.Background()
	require.NoError(s.T(), s.cache.Set(ctx, 1, "en"))
	require.NoError(s.T(), s.cache.Set(ctx, 2, "en"))

	require.NoError(s.T(), s.cache.Invalidate(ctx, 1))

	_, ok, err := s.cache.Get(ctx, 1)
	require.NoError(s.T(), err)
	require.False(s.T(), ok)

	_, ok, err = s.cache.Get(ctx, 2)
	require.NoError(s.T(), err)
	require.True(s.T(), ok)

	require.NoError(s.T(), s.cache.Invalidate(ctx))
}

func (s *LanguageCacheTestSuite) TestResetOnlyTouchesPrefix() {
	ctx := context.Background()
	for i := int64(1); i <= 250; i++ {
		require.NoError(s.T(), s.cache.Set(ctx, i, "en"))
	}
	require.NoError(s.T(), s.rdb.Set(ctx, "other:1", "keep", 0).Err())

	require.NoError(s.T(), s.cache.Reset(ctx))

	keys, err := s.rdb.Keys(ctx, "lang:*").Result()
	require.NoError(s.T(), err)
	require.Empty(s.T(), keys)

	val, err := s.rdb.Get(ctx, "other:1").Result()
	require.NoError(s.T(), err)
	require.Equal(s.T(), "keep", val)
}

func TestLanguageCacheTestSuite(t *testing.T) {
	suite.Run(t, new(LanguageCacheTestSuite))
}
