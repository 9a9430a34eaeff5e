package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajivgeraev/ads-service/internal/models"
	"github.com/rajivgeraev/ads-service/internal/repositories"
)

func TestDeleteAdCascades(t *testing.T) {
	ctx := context.Background()
	store := New()
	owner, fan := uuid.New(), uuid.New()

	ad := &models.Ad{Title: "Bike", Text: "Red bike", OwnerID: owner}
	require.NoError(t, store.Ads().Create(ctx, ad))
	require.NoError(t, store.Comments().Create(ctx, &models.Comment{Text: "nice", AdID: ad.ID, OwnerID: fan}))
	_, err := store.Favorites().Add(ctx, ad.ID, fan)
	require.NoError(t, err)

	assert.ErrorIs(t, store.Ads().DeleteOwned(ctx, ad.ID, fan), repositories.ErrNotFound)
	require.NoError(t, store.Ads().DeleteOwned(ctx, ad.ID, owner))

	comments, err := store.Comments().ListByAd(ctx, ad.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	ids, err := store.Favorites().FavoriteAdIDs(ctx, fan)
	require.NoError(t, err)
	assert.Empty(t, ids)

	ads, err := store.Ads().List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, ads)
}

func TestListKeepsInsertionOrderAndSearches(t *testing.T) {
	ctx := context.Background()
	store := New()
	owner := uuid.New()

	for _, ad := range []*models.Ad{
		{Title: "Bike", Text: "Red bike", OwnerID: owner},
		{Title: "Sofa", Text: "Green, barely used", OwnerID: owner},
		{Title: "Helmet", Text: "For a BIKE rider", OwnerID: owner},
	} {
		require.NoError(t, store.Ads().Create(ctx, ad))
	}

	all, err := store.Ads().List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Bike", "Sofa", "Helmet"}, []string{all[0].Title, all[1].Title, all[2].Title})

	found, err := store.Ads().List(ctx, "bIkE")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Bike", found[0].Title)
	assert.Equal(t, "Helmet", found[1].Title)
}

func TestTimestampsStrictlyIncrease(t *testing.T) {
	store := New()
	frozen := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.clock = func() time.Time { return frozen }

	ctx := context.Background()
	ad := &models.Ad{Title: "Bike", Text: "Red bike", OwnerID: uuid.New()}
	require.NoError(t, store.Ads().Create(ctx, ad))

	first := &models.Comment{Text: "first", AdID: ad.ID, OwnerID: uuid.New()}
	second := &models.Comment{Text: "second", AdID: ad.ID, OwnerID: uuid.New()}
	require.NoError(t, store.Comments().Create(ctx, first))
	require.NoError(t, store.Comments().Create(ctx, second))

	comments, err := store.Comments().ListByAd(ctx, ad.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)
	assert.Equal(t, "first", comments[1].Text)
}

func TestUpdateKeepsPictureUnlessReplaced(t *testing.T) {
	ctx := context.Background()
	store := New()
	owner := uuid.New()

	ad := &models.Ad{Title: "Bike", Text: "Red bike", OwnerID: owner, Picture: []byte("png"), ContentType: "image/png"}
	require.NoError(t, store.Ads().Create(ctx, ad))

	edit := &models.Ad{ID: ad.ID, Title: "Bike 2", Text: "Still red", OwnerID: owner}
	require.NoError(t, store.Ads().Update(ctx, edit, false))
	assert.True(t, edit.HasPicture)

	picture, contentType, err := store.Ads().GetPicture(ctx, ad.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), picture)
	assert.Equal(t, "image/png", contentType)

	foreign := &models.Ad{ID: ad.ID, Title: "Mine", Text: "now", OwnerID: uuid.New()}
	assert.ErrorIs(t, store.Ads().Update(ctx, foreign, false), repositories.ErrNotFound)
}

func TestConcurrentFavoriteAddKeepsSingleRecord(t *testing.T) {
	ctx := context.Background()
	store := New()
	user := uuid.New()

	ad := &models.Ad{Title: "Bike", Text: "Red bike", OwnerID: uuid.New()}
	require.NoError(t, store.Ads().Create(ctx, ad))

	var wg sync.WaitGroup
	created := make(chan bool, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.Favorites().Add(ctx, ad.ID, user)
			assert.NoError(t, err)
			created <- ok
		}()
	}
	wg.Wait()
	close(created)

	inserted := 0
	for ok := range created {
		if ok {
			inserted++
		}
	}
	assert.Equal(t, 1, inserted)

	ids, err := store.Favorites().FavoriteAdIDs(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{ad.ID}, ids)
}
