package impl

import (
	"context"
	"sync"
	"testing"

	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/reputation"
	"market/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminService_BanUser_Success(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	admin := f.createAdmin(t, "admin")
	user := f.createBuyer(t, "user")

	banned, err := f.admin.BanUser(ctx, admin.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusBanned, banned.Status)

	// Banning twice keeps the account banned without error.
	again, err := f.admin.BanUser(ctx, admin.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusBanned, again.Status)
}

func TestAdminService_BanUser_RequiresAdminRole(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	notAdmin := f.createBuyer(t, "not-admin")
	user := f.createBuyer(t, "user")

	_, err := f.admin.BanUser(ctx, notAdmin.ID, user.ID)
	require.ErrorIs(t, err, domainerrors.ErrMissingRole)
}

func TestAdminService_UnbanUser_Success(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	admin := f.createAdmin(t, "admin")
	user := f.createBuyer(t, "user")
	_, err := f.admin.BanUser(ctx, admin.ID, user.ID)
	require.NoError(t, err)

	restored, err := f.admin.UnbanUser(ctx, admin.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusActive, restored.Status)
}

func TestAdminService_SubmitAppeal_Success(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	admin := f.createAdmin(t, "admin")
	user := f.createBuyer(t, "user")
	_, err := f.admin.BanUser(ctx, admin.ID, user.ID)
	require.NoError(t, err)

	appeal, err := f.admin.SubmitAppeal(ctx, user.ID, &usecase.SubmitAppealInput{
		Content: "我被誤判了，請重新審查我的帳號",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AppealStatusPending, appeal.Status)
	assert.Equal(t, user.ID, appeal.UserID)
}

func TestAdminService_SubmitAppeal_ActiveAccount(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	user := f.createBuyer(t, "user")

	_, err := f.admin.SubmitAppeal(ctx, user.ID, &usecase.SubmitAppealInput{
		Content: "nothing to appeal really",
	})
	require.Error(t, err)
	assert.True(t, domainerrors.IsKind(err, domainerrors.KindInvalidState))
}

func TestAdminService_ResolveAppeal_AcceptLiftsBan(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	admin := f.createAdmin(t, "admin")
	user := f.createBuyer(t, "user")
	_, err := f.admin.BanUser(ctx, admin.ID, user.ID)
	require.NoError(t, err)

	appeal, err := f.admin.SubmitAppeal(ctx, user.ID, &usecase.SubmitAppealInput{
		Content: "我被誤判了，請重新審查我的帳號",
	})
	require.NoError(t, err)

	resolved, err := f.admin.ResolveAppeal(ctx, admin.ID, appeal.ID, &usecase.ResolveAppealInput{
		Accepted: true,
		Note:     "查無違規紀錄",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AppealStatusAccepted, resolved.Status)
	require.NotNil(t, resolved.ResolvedBy)
	assert.Equal(t, admin.ID, *resolved.ResolvedBy)

	restored, err := f.users.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusActive, restored.Status)
}

func TestAdminService_ResolveAppeal_RejectKeepsBan(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	admin := f.createAdmin(t, "admin")
	user := f.createBuyer(t, "user")
	_, err := f.admin.BanUser(ctx, admin.ID, user.ID)
	require.NoError(t, err)

	appeal, err := f.admin.SubmitAppeal(ctx, user.ID, &usecase.SubmitAppealInput{
		Content: "我被誤判了，請重新審查我的帳號",
	})
	require.NoError(t, err)

	resolved, err := f.admin.ResolveAppeal(ctx, admin.ID, appeal.ID, &usecase.ResolveAppealInput{
		Accepted: false,
		Note:     "違規事證明確",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AppealStatusRejected, resolved.Status)

	stillBanned, err := f.users.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusBanned, stillBanned.Status)
}

func TestAdminService_ResolveAppeal_Twice(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	admin := f.createAdmin(t, "admin")
	user := f.createBuyer(t, "user")
	_, err := f.admin.BanUser(ctx, admin.ID, user.ID)
	require.NoError(t, err)

	appeal, err := f.admin.SubmitAppeal(ctx, user.ID, &usecase.SubmitAppealInput{
		Content: "我被誤判了，請重新審查我的帳號",
	})
	require.NoError(t, err)

	_, err = f.admin.ResolveAppeal(ctx, admin.ID, appeal.ID, &usecase.ResolveAppealInput{Accepted: false})
	require.NoError(t, err)

	_, err = f.admin.ResolveAppeal(ctx, admin.ID, appeal.ID, &usecase.ResolveAppealInput{Accepted: true})
	require.ErrorIs(t, err, domainerrors.ErrAppealResolved)
}

func TestAdminService_ListPendingAppeals(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	admin := f.createAdmin(t, "admin")
	first := f.createBuyer(t, "first")
	second := f.createBuyer(t, "second")
	for _, u := range []*entity.User{first, second} {
		_, err := f.admin.BanUser(ctx, admin.ID, u.ID)
		require.NoError(t, err)
		_, err = f.admin.SubmitAppeal(ctx, u.ID, &usecase.SubmitAppealInput{
			Content: "我被誤判了，請重新審查我的帳號",
		})
		require.NoError(t, err)
	}

	pending, err := f.admin.ListPendingAppeals(ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	_, err = f.admin.ResolveAppeal(ctx, admin.ID, pending[0].ID, &usecase.ResolveAppealInput{Accepted: true})
	require.NoError(t, err)

	remaining, err := f.admin.ListPendingAppeals(ctx, admin.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestAdminService_BanUser_ConcurrentWithReputationDeltas(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	admin := f.createAdmin(t, "mod")
	target := f.createBuyer(t, "target")

	const deltas = 40
	var wg sync.WaitGroup
	adjustErrs := make([]error, deltas)
	var banErr error
	wg.Add(deltas + 1)
	for i := range deltas {
		go func(idx int) {
			defer wg.Done()
			_, adjustErrs[idx] = f.userRepo.AdjustReputation(ctx, target.ID, 1)
		}(i)
	}
	go func() {
		defer wg.Done()
		_, banErr = f.admin.BanUser(ctx, admin.ID, target.ID)
	}()
	wg.Wait()

	require.NoError(t, banErr)
	for _, err := range adjustErrs {
		require.NoError(t, err)
	}

	user, err := f.users.GetProfile(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusBanned, user.Status)
	assert.Equal(t, reputation.Initial+deltas, user.Reputation)
}
