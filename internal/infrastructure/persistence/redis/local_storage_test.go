package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
)

type LocalStorageTestSuite struct {
	suite.Suite
	ctx     context.Context
	mr      *miniredis.Miniredis
	client  *redis.Client
	storage *LocalStorage
}

func (s *LocalStorageTestSuite) SetupSuite() {
	s.ctx = context.Background()
}

func (s *LocalStorageTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	require.NoError(s.T(), err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.storage = NewLocalStorage(NewConnectionFromClient(s.client), "storefront")
}

func (s *LocalStorageTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestLocalStorageSuite(t *testing.T) {
	suite.Run(t, new(LocalStorageTestSuite))
}

func (s *LocalStorageTestSuite) TestRoundTrip() {
	_, found, err := s.storage.GetItem(s.ctx, "cart")
	s.Require().NoError(err)
	s.False(found)

	s.Require().NoError(s.storage.SetItem(s.ctx, "cart", "[]"))
	stored, err := s.mr.Get("storefront:cart")
	s.Require().NoError(err)
	s.Equal("[]", stored)

	value, found, err := s.storage.GetItem(s.ctx, "cart")
	s.Require().NoError(err)
	s.True(found)
	s.Equal("[]", value)

	s.Require().NoError(s.storage.RemoveItem(s.ctx, "cart"))
	s.False(s.mr.Exists("storefront:cart"))
}

func (s *LocalStorageTestSuite) TestReadsValuesWrittenElsewhere() {
	s.Require().NoError(s.mr.Set("storefront:token", "jwt"))

	token, found, err := s.storage.GetItem(s.ctx, "token")

	s.Require().NoError(err)
	s.True(found)
	s.Equal("jwt", token)
}

func (s *LocalStorageTestSuite) TestValuesHaveNoExpiry() {
	s.Require().NoError(s.storage.SetItem(s.ctx, "cart", "[]"))

	s.Zero(s.mr.TTL("storefront:cart"))
}

func (s *LocalStorageTestSuite) TestEmptyKeyRejected() {
	_, _, err := s.storage.GetItem(s.ctx, "")
	s.ErrorIs(err, domainErrors.ErrStorageKeyEmpty)

	s.ErrorIs(s.storage.SetItem(s.ctx, "", "x"), domainErrors.ErrStorageKeyEmpty)
}

func (s *LocalStorageTestSuite) TestPing() {
	s.NoError(s.storage.Ping(s.ctx))

	s.mr.Close()
	s.Error(s.storage.Ping(s.ctx))
}
