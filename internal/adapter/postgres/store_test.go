package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto-ads/internal/core/domain"
	"resto-ads/internal/core/port"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		mock.Close()
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled mock expectations: %v", err)
		}
	})
	return mock
}

func TestMapErr(t *testing.T) {
	assert.NoError(t, mapErr(nil))
	assert.ErrorIs(t, mapErr(pgx.ErrNoRows), port.ErrNotFound)
	assert.ErrorIs(t, mapErr(&pgconn.PgError{Code: "22P02"}), port.ErrNotFound)

	err := mapErr(&pgconn.PgError{Code: "23505", ConstraintName: "posts_meta_post_id_key"})
	assert.ErrorIs(t, err, port.ErrConflict)
	assert.Contains(t, err.Error(), "posts_meta_post_id_key")

	other := errors.New("conn closed")
	assert.Same(t, other, mapErr(other))
}

func TestCreateOpportunityAllocatesPKInTransaction(t *testing.T) {
	mock := newMockPool(t)
	s := NewStore(mock)
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE restaurants SET opportunity_seq`).
		WithArgs("rest-1").
		WillReturnRows(pgxmock.NewRows([]string{"opportunity_seq", "rid"}).AddRow(int64(4), int64(12)))
	mock.ExpectQuery(`INSERT INTO opportunities`).
		WithArgs("rest-1", int64(12), int64(4), "Bistro lunch", "lunch", domain.OfferLunch, "traffic",
			domain.OpportunityActive, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("opp-1", created))
	mock.ExpectCommit()

	o := &domain.Opportunity{
		RestaurantID: "rest-1",
		Name:         "Bistro lunch",
		Slug:         "lunch",
		OfferType:    domain.OfferLunch,
		Goal:         "traffic",
		Status:       domain.OpportunityActive,
	}
	require.NoError(t, s.CreateOpportunity(context.Background(), o))
	assert.Equal(t, "opp-1", o.ID)
	assert.EqualValues(t, 4, o.PK)
	assert.EqualValues(t, 12, o.RID)
	assert.Equal(t, created, o.CreatedAt)
}

func TestCreateOpportunityUnknownRestaurant(t *testing.T) {
	mock := newMockPool(t)
	s := NewStore(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE restaurants SET opportunity_seq`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err := s.CreateOpportunity(context.Background(), &domain.Opportunity{RestaurantID: "missing"})
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestCreateAdSetConflict(t *testing.T) {
	mock := newMockPool(t)
	s := NewStore(mock)

	mock.ExpectQuery(`INSERT INTO ad_sets`).
		WithArgs("r1", "c1", pgxmock.AnyArg(), pgxmock.AnyArg(), "as-1", "pk1_BRAND_v1", 1, 0,
			domain.AdSetActive, pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "ad_sets_partition_version_idx"})

	pk := int64(1)
	err := s.CreateAdSet(context.Background(), &domain.AdSet{
		RestaurantID:  "r1",
		CategoryID:    "c1",
		OpportunityPK: &pk,
		MetaAdSetID:   "as-1",
		Name:          "pk1_BRAND_v1",
		Version:       1,
		Status:        domain.AdSetActive,
	})
	assert.ErrorIs(t, err, port.ErrConflict)
}

func TestMaxAdSetVersionOfEmptyPartition(t *testing.T) {
	mock := newMockPool(t)
	s := NewStore(mock)

	mock.ExpectQuery(`SELECT COALESCE\(MAX\(a.version\), 0\) FROM ad_sets a`).
		WithArgs("r1", "c1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"max"}).AddRow(0))

	v, err := s.MaxAdSetVersion(context.Background(), domain.Partition{RestaurantID: "r1", CategoryID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestIncrementAdsCount(t *testing.T) {
	mock := newMockPool(t)
	s := NewStore(mock)

	mock.ExpectQuery(`UPDATE ad_sets SET ads_count = ads_count \+ 1`).
		WithArgs("as-row").
		WillReturnRows(pgxmock.NewRows([]string{"ads_count"}).AddRow(7))

	n, err := s.IncrementAdsCount(context.Background(), "as-row")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestGetPostWithMalformedID(t *testing.T) {
	mock := newMockPool(t)
	s := NewStore(mock)

	mock.ExpectQuery(`FROM posts WHERE id = \$1`).
		WithArgs("1029384756_1111").
		WillReturnError(&pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"})

	_, err := s.GetPost(context.Background(), "1029384756_1111")
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestUpdatePostStatusMissingRow(t *testing.T) {
	mock := newMockPool(t)
	s := NewStore(mock)

	mock.ExpectExec(`UPDATE posts SET status`).
		WithArgs("p1", domain.PostExpired).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.UpdatePostStatus(context.Background(), "p1", domain.PostExpired)
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestDeletePostsByAdSet(t *testing.T) {
	mock := newMockPool(t)
	s := NewStore(mock)

	mock.ExpectExec(`DELETE FROM posts WHERE ad_set_id`).
		WithArgs("as-row").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := s.DeletePostsByAdSet(context.Background(), "as-row")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
