package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"resto-ads/internal/core/domain"
	"resto-ads/internal/core/port"
	"resto-ads/internal/core/tracking"
)

func TestPromoteCreatesActivePost(t *testing.T) {
	f := newFixture(t, 50, fixedCategory(domain.CategoryLunchOnSite))
	var creative port.CreateCreativeRequest
	f.platform.EXPECT().CreateCreative(mock.Anything, mock.Anything).
		Run(func(_ context.Context, req port.CreateCreativeRequest) { creative = req }).
		Return("cr-1", nil).Once()
	f.platform.EXPECT().Rename(mock.Anything, "ad-1", "pk1_ad-1").Return(nil).Once()
	f.allowPlatform()

	post := f.promote(t, "1029384756_1111")

	assert.Equal(t, domain.PostActive, post.Status)
	assert.Equal(t, domain.CategoryLunchOnSite, post.CategoryCode)
	require.NotNil(t, post.ExternalAdID)
	assert.Equal(t, "ad-1", *post.ExternalAdID)
	require.NotNil(t, post.OpportunityPK)
	assert.EqualValues(t, 1, *post.OpportunityPK)

	require.NotNil(t, post.AdSetID)
	adSet, err := f.store.GetAdSet(context.Background(), *post.AdSetID)
	require.NoError(t, err)
	assert.Equal(t, 1, adSet.Version)
	assert.Equal(t, 1, adSet.AdsCount)
	assert.Equal(t, "pk1_LU_ONS_v1", adSet.Name)

	assert.Equal(t, f.rest.Website, creative.DestinationURL)
	assert.Contains(t, creative.URLTags, "ps"+tracking.MetaAdMacro)

	links, err := f.store.ListTrackingLinks(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "ad-1", links[0].PlacementID)
	assert.Equal(t, tracking.PlatformMeta, links[0].PlatformID)
	assert.NotContains(t, links[0].FinalURL, tracking.MetaAdMacro)
	assert.Contains(t, links[0].FinalURL, "psad-1")
	require.NotNil(t, links[0].PostID)
	assert.Equal(t, post.ID, *links[0].PostID)
}

func TestPromoteByPageID(t *testing.T) {
	f := newFixture(t, 50, fixedCategory(domain.CategoryBrand))
	f.allowPlatform()

	post, err := f.promotions.Promote(context.Background(), port.PromoteInput{
		PageID:         f.rest.FacebookPageID,
		ExternalPostID: "1029384756_2222",
		Content:        "Nowe wnętrze",
	})
	require.NoError(t, err)
	assert.Equal(t, f.rest.ID, post.RestaurantID)

	_, err = f.promotions.Promote(context.Background(), port.PromoteInput{
		PageID:         "unknown-page",
		ExternalPostID: "1029384756_3333",
		Content:        "Nowe wnętrze",
	})
	assert.ErrorIs(t, err, port.ErrValidation)
}

func TestPromotePreconditions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *domain.Restaurant)
		in     port.PromoteInput
	}{
		{name: "short post id", in: port.PromoteInput{ExternalPostID: "123", Content: "x"}},
		{name: "empty content", in: port.PromoteInput{ExternalPostID: "1029384756_1", Content: "  "}},
		{
			name:   "no page",
			mutate: func(r *domain.Restaurant) { r.FacebookPageID = "" },
			in:     port.PromoteInput{ExternalPostID: "1029384756_1", Content: "x"},
		},
		{
			name:   "no campaign",
			mutate: func(r *domain.Restaurant) { r.MetaCampaignID = nil },
			in:     port.PromoteInput{ExternalPostID: "1029384756_1", Content: "x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 50, fixedCategory(domain.CategoryInfo))
			if tt.mutate != nil {
				tt.mutate(f.rest)
				require.NoError(t, f.store.UpdateRestaurant(context.Background(), f.rest))
			}
			tt.in.RestaurantID = f.rest.ID

			_, err := f.promotions.Promote(context.Background(), tt.in)
			assert.ErrorIs(t, err, port.ErrValidation)
		})
	}
}

func TestPromoteRejectsActiveDuplicate(t *testing.T) {
	f := newFixture(t, 50, fixedCategory(domain.CategoryInfo))
	f.allowPlatform()
	f.promote(t, "1029384756_1111")

	_, err := f.promotions.Promote(context.Background(), port.PromoteInput{
		RestaurantID:   f.rest.ID,
		ExternalPostID: "1029384756_1111",
		Content:        "again",
	})
	assert.ErrorIs(t, err, port.ErrAlreadyPromoted)
	assert.ErrorIs(t, err, port.ErrValidation)

	posts, err := f.store.ListPosts(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestPromoteAgainAfterDelete(t *testing.T) {
	f := newFixture(t, 50, fixedCategory(domain.CategoryInfo))
	f.platform.EXPECT().Delete(mock.Anything, "ad-1").Return(nil).Once()
	f.allowPlatform()

	f.promote(t, "1029384756_1111")
	require.NoError(t, f.promotions.Delete(context.Background(), "1029384756_1111"))

	post := f.promote(t, "1029384756_1111")
	assert.Equal(t, "ad-2", *post.ExternalAdID)
}

func TestPromoteWhileInProgress(t *testing.T) {
	f := newFixture(t, 50, fixedCategory(domain.CategoryInfo))
	unlock, err := f.locker.TryLock(context.Background(), "post:1029384756_1111")
	require.NoError(t, err)
	defer unlock()

	_, err = f.promotions.Promote(context.Background(), port.PromoteInput{
		RestaurantID:   f.rest.ID,
		ExternalPostID: "1029384756_1111",
		Content:        "x",
	})
	assert.ErrorIs(t, err, port.ErrPromotionInProgress)
}

func TestPromoteDiscardsStalePost(t *testing.T) {
	f := newFixture(t, 50, fixedCategory(domain.CategoryInfo))
	f.platform.EXPECT().Delete(mock.Anything, "old-ad").Return(nil).Once()
	f.allowPlatform()

	stale := &domain.Post{
		RestaurantID:   f.rest.ID,
		ExternalPostID: "1029384756_1111",
		ExternalAdID:   ptr("old-ad"),
		Content:        "x",
		CategoryCode:   domain.CategoryInfo,
		Status:         domain.PostPending,
	}
	require.NoError(t, f.store.CreatePost(context.Background(), stale))

	post := f.promote(t, "1029384756_1111")
	assert.NotEqual(t, stale.ID, post.ID)
	_, err := f.store.GetPost(context.Background(), stale.ID)
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestPromoteReusesAdSetUntilCapacity(t *testing.T) {
	f := newFixture(t, 2, fixedCategory(domain.CategoryLunchOnSite))
	f.allowPlatform()

	p1 := f.promote(t, "1029384756_1")
	p2 := f.promote(t, "1029384756_2")
	p3 := f.promote(t, "1029384756_3")

	assert.Equal(t, *p1.AdSetID, *p2.AdSetID)
	assert.NotEqual(t, *p1.AdSetID, *p3.AdSetID)

	full, err := f.store.GetAdSet(context.Background(), *p1.AdSetID)
	require.NoError(t, err)
	assert.Equal(t, 2, full.AdsCount)
	next, err := f.store.GetAdSet(context.Background(), *p3.AdSetID)
	require.NoError(t, err)
	assert.Equal(t, 2, next.Version)
	assert.Equal(t, 1, next.AdsCount)
	assert.Equal(t, "pk1_LU_ONS_v2", next.Name)
	assert.EqualValues(t, 2, f.adSetSeq.Load())
}

func TestPromoteConcurrentKeepsVersionsContiguous(t *testing.T) {
	const (
		capacity = 3
		posts    = 10
	)
	f := newFixture(t, capacity, fixedCategory(domain.CategoryLunchOnSite))
	f.allowPlatform()

	var wg sync.WaitGroup
	errs := make(chan error, posts)
	for i := 0; i < posts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.promotions.Promote(context.Background(), port.PromoteInput{
				RestaurantID:   f.rest.ID,
				ExternalPostID: fmt.Sprintf("1029384756_%d", 100+i),
				Content:        "lunch",
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	adSets, err := f.store.ListAdSets(context.Background(), &f.rest.ID)
	require.NoError(t, err)
	sort.Slice(adSets, func(i, j int) bool { return adSets[i].Version < adSets[j].Version })

	require.Len(t, adSets, 4)
	total := 0
	for i, a := range adSets {
		assert.Equal(t, i+1, a.Version)
		assert.LessOrEqual(t, a.AdsCount, capacity)
		total += a.AdsCount
	}
	assert.Equal(t, posts, total)
	assert.EqualValues(t, 4, f.adSetSeq.Load())
}

func TestPromoteConcurrentAllocatesUniqueOpportunityPKs(t *testing.T) {
	codes := []string{
		domain.CategoryEventAll,
		domain.CategoryLunchOnSite,
		domain.CategoryPromoOnSiteOn,
		domain.CategoryProductOnSite,
		domain.CategoryBrand,
		domain.CategoryInfo,
	}
	classifier := classifyFunc(func(_ context.Context, content string) domain.Classification {
		return domain.Classification{Category: content, PromotionEndDate: domain.Day(time.Now()).AddDate(0, 0, 7)}
	})
	f := newFixture(t, 50, classifier)
	f.allowPlatform()

	var wg sync.WaitGroup
	for i := 0; i < 2*len(codes); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.promotions.Promote(context.Background(), port.PromoteInput{
				RestaurantID:   f.rest.ID,
				ExternalPostID: fmt.Sprintf("1029384756_%d", 200+i),
				Content:        codes[i%len(codes)],
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	opps, err := f.store.ListOpportunities(context.Background(), &f.rest.RID)
	require.NoError(t, err)
	require.Len(t, opps, len(codes))
	seen := make(map[int64]bool)
	offers := make(map[domain.OfferType]bool)
	for _, o := range opps {
		assert.False(t, seen[o.PK], "pk %d allocated twice", o.PK)
		seen[o.PK] = true
		offers[o.OfferType] = true
		assert.GreaterOrEqual(t, o.PK, int64(1))
		assert.LessOrEqual(t, o.PK, int64(len(codes)))
	}
	assert.Len(t, offers, len(codes))
}

func TestPromoteAdFailureLeavesNoPost(t *testing.T) {
	f := newFixture(t, 50, fixedCategory(domain.CategoryInfo))
	f.platform.EXPECT().CreateAd(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", &port.PlatformError{Code: 2, Message: "service temporarily unavailable"}).Once()
	f.allowPlatform()

	_, err := f.promotions.Promote(context.Background(), port.PromoteInput{
		RestaurantID:   f.rest.ID,
		ExternalPostID: "1029384756_1111",
		Content:        "x",
	})
	var stepErr *port.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, port.StepAd, stepErr.Step)
	assert.Equal(t, "cr-1", stepErr.Leftovers["creative"])
	assert.Equal(t, "as-1", stepErr.Leftovers["ad_set"])
	assert.Contains(t, err.Error(), "ad_set=as-1 creative=cr-1")

	posts, err := f.store.ListPosts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, posts)

	adSets, err := f.store.ListAdSets(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, adSets, 1)
	assert.Equal(t, 0, adSets[0].AdsCount)
}

func TestPromoteListsAdSetOnlyWhenCreatedByRequest(t *testing.T) {
	f := newFixture(t, 50, fixedCategory(domain.CategoryInfo))
	unavailable := &port.PlatformError{Code: 2, Message: "service temporarily unavailable"}
	f.platform.EXPECT().CreateAd(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", unavailable).Twice()
	f.allowPlatform()
	ctx := context.Background()

	_, err := f.promotions.Promote(ctx, port.PromoteInput{RestaurantID: f.rest.ID, ExternalPostID: "1029384756_2001", Content: "x"})
	var first *port.StepError
	require.ErrorAs(t, err, &first)
	assert.Equal(t, "as-1", first.Leftovers["ad_set"])

	_, err = f.promotions.Promote(ctx, port.PromoteInput{RestaurantID: f.rest.ID, ExternalPostID: "1029384756_2002", Content: "x"})
	var second *port.StepError
	require.ErrorAs(t, err, &second)
	assert.Equal(t, port.StepAd, second.Step)
	assert.NotContains(t, second.Leftovers, "ad_set", "existing ad set is not a leftover")
	assert.NotContains(t, err.Error(), "ad_set=")
	assert.Equal(t, "cr-2", second.Leftovers["creative"])
	assert.EqualValues(t, 1, f.adSetSeq.Load())
}

func TestPromoteExplainsUnboostablePost(t *testing.T) {
	f := newFixture(t, 50, fixedCategory(domain.CategoryInfo))
	f.platform.EXPECT().CreateCreative(mock.Anything, mock.Anything).
		Return("", &port.PlatformError{Code: 100, Message: "Invalid parameter", UserMessage: "object_story_id does not exist"}).Once()
	f.allowPlatform()

	_, err := f.promotions.Promote(context.Background(), port.PromoteInput{
		RestaurantID:   f.rest.ID,
		ExternalPostID: "1029384756_1111",
		Content:        "x",
	})
	assert.ErrorIs(t, err, port.ErrPlatformRejected)
	assert.Contains(t, err.Error(), "cannot be promoted")
	assert.Contains(t, err.Error(), "copyrighted content")
}

func TestPromoteKeepsOtherCreativeErrors(t *testing.T) {
	f := newFixture(t, 50, fixedCategory(domain.CategoryInfo))
	f.platform.EXPECT().CreateCreative(mock.Anything, mock.Anything).
		Return("", &port.PlatformError{Code: 17, Message: "User request limit reached"}).Once()
	f.allowPlatform()

	_, err := f.promotions.Promote(context.Background(), port.PromoteInput{
		RestaurantID:   f.rest.ID,
		ExternalPostID: "1029384756_1111",
		Content:        "x",
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, port.ErrPlatformRejected))
}

func TestPromoteRenameFailureIsNotFatal(t *testing.T) {
	f := newFixture(t, 50, fixedCategory(domain.CategoryInfo))
	f.platform.EXPECT().Rename(mock.Anything, mock.Anything, mock.Anything).Return(errors.New("timeout")).Once()
	f.allowPlatform()

	post := f.promote(t, "1029384756_1111")
	assert.Equal(t, domain.PostActive, post.Status)
}

func TestPromoteWithoutWebsiteSkipsTracking(t *testing.T) {
	f := newFixture(t, 50, fixedCategory(domain.CategoryInfo))
	f.rest.Website = ""
	require.NoError(t, f.store.UpdateRestaurant(context.Background(), f.rest))
	f.platform.EXPECT().CreateCreative(mock.Anything, port.CreateCreativeRequest{
		PageID:         f.rest.FacebookPageID,
		ExternalPostID: "1029384756_1111",
	}).Return("cr-1", nil).Once()
	f.allowPlatform()

	f.promote(t, "1029384756_1111")
	links, err := f.store.ListTrackingLinks(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestPromoteGroupsEventsByIdentifier(t *testing.T) {
	eventDate := domain.Day(time.Now()).AddDate(0, 0, 10)
	classifier := classifyFunc(func(_ context.Context, content string) domain.Classification {
		id := content
		return domain.Classification{
			Category:         domain.CategoryEventFamily,
			EventIdentifier:  &id,
			EventDate:        &eventDate,
			PromotionEndDate: eventDate,
		}
	})
	f := newFixture(t, 50, classifier)
	f.allowPlatform()

	promote := func(postID, identifier string) *domain.Post {
		p, err := f.promotions.Promote(context.Background(), port.PromoteInput{
			RestaurantID:   f.rest.ID,
			ExternalPostID: postID,
			Content:        identifier,
		})
		require.NoError(t, err)
		return p
	}
	a := promote("1029384756_1", "dzien-dziecka-2026")
	b := promote("1029384756_2", "dzien-dziecka-2026")
	c := promote("1029384756_3", "walentynki-2026")

	assert.Equal(t, *a.AdSetID, *b.AdSetID)
	assert.NotEqual(t, *a.AdSetID, *c.AdSetID)

	other, err := f.store.GetAdSet(context.Background(), *c.AdSetID)
	require.NoError(t, err)
	assert.Equal(t, 1, other.Version)
	require.NotNil(t, other.EventIdentifier)
	assert.Equal(t, "walentynki-2026", *other.EventIdentifier)

	events, err := f.store.ListEvents(context.Background(), &f.rest.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, eventDate, e.EventDate)
		if e.Identifier == "dzien-dziecka-2026" {
			assert.Equal(t, *a.AdSetID, e.AdSetID)
		}
	}
}

func TestPromoteUnknownCategoryIsConfigurationError(t *testing.T) {
	f := newFixture(t, 50, fixedCategory("XX_NEW"))
	f.allowPlatform()

	_, err := f.promotions.Promote(context.Background(), port.PromoteInput{
		RestaurantID:   f.rest.ID,
		ExternalPostID: "1029384756_1111",
		Content:        "x",
	})
	var stepErr *port.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, port.StepAdSet, stepErr.Step)
	assert.ErrorIs(t, err, port.ErrConfiguration)
}

func TestPauseAndActivate(t *testing.T) {
	f := newFixture(t, 50, fixedCategory(domain.CategoryInfo))
	f.platform.EXPECT().SetStatus(mock.Anything, "ad-1", port.StatusPaused).Return(nil).Once()
	f.platform.EXPECT().SetStatus(mock.Anything, "ad-1", port.StatusActive).Return(nil).Once()
	f.allowPlatform()
	post := f.promote(t, "1029384756_1111")

	paused, err := f.promotions.Pause(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PostPaused, paused.Status)

	active, err := f.promotions.Activate(context.Background(), "1029384756_1111")
	require.NoError(t, err)
	assert.Equal(t, domain.PostActive, active.Status)

	stored, err := f.store.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PostActive, stored.Status)
}

func TestPauseKeepsStatusWhenPlatformFails(t *testing.T) {
	f := newFixture(t, 50, fixedCategory(domain.CategoryInfo))
	f.platform.EXPECT().SetStatus(mock.Anything, "ad-1", port.StatusPaused).Return(errors.New("boom")).Once()
	f.allowPlatform()
	post := f.promote(t, "1029384756_1111")

	_, err := f.promotions.Pause(context.Background(), post.ID)
	require.Error(t, err)

	stored, err := f.store.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PostActive, stored.Status)
}

func TestRetryReplacesAd(t *testing.T) {
	f := newFixture(t, 50, fixedCategory(domain.CategoryInfo))
	f.platform.EXPECT().Delete(mock.Anything, "ad-1").Return(nil).Once()
	f.allowPlatform()
	post := f.promote(t, "1029384756_1111")

	retried, err := f.promotions.Retry(context.Background(), post.ID)
	require.NoError(t, err)
	assert.NotEqual(t, post.ID, retried.ID)
	assert.Equal(t, "ad-2", *retried.ExternalAdID)
	assert.Equal(t, post.Content, retried.Content)

	adSet, err := f.store.GetAdSet(context.Background(), *retried.AdSetID)
	require.NoError(t, err)
	assert.Equal(t, 2, adSet.AdsCount)
}

func TestDeleteUnknownPost(t *testing.T) {
	f := newFixture(t, 50, fixedCategory(domain.CategoryInfo))
	err := f.promotions.Delete(context.Background(), "1029384756_404")
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestExplainCreativeErrorHints(t *testing.T) {
	rejected := []*port.PlatformError{
		{Code: 1, Message: "Post cannot be boosted"},
		{Code: 100, Message: "Unsupported post request"},
		{Code: 100, Subcode: 33, Message: "Object with ID '1_2' does not exist"},
		{Code: 100, Message: "Invalid parameter", UserMessage: "object_story_id is invalid"},
	}
	for _, pe := range rejected {
		err := explainCreativeError("1_2", pe)
		assert.ErrorIs(t, err, port.ErrPlatformRejected, pe.Error())
		assert.True(t, strings.Contains(err.Error(), "1_2"))
	}

	passthrough := []*port.PlatformError{
		{Code: 100, Message: "Invalid parameter", UserMessage: "The url_tags value is malformed"},
		{Code: 100, Message: "Invalid parameter", UserMessage: "Call to action link must be a valid URL for this post"},
		{Code: 2, Message: "Service temporarily unavailable"},
	}
	for _, pe := range passthrough {
		err := explainCreativeError("1_2", pe)
		assert.NotErrorIs(t, err, port.ErrPlatformRejected, pe.Error())
		assert.Same(t, pe, err)
		assert.NotContains(t, err.Error(), "cannot be promoted")
	}

	plain := errors.New("network down")
	assert.Same(t, plain, explainCreativeError("1_2", plain))
}
