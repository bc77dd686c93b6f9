package view_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junseo/marketctl/internal/view"
	domain "github.com/junseo/marketctl/pkg/types"
)

type fakeAdminAPI struct {
	user    *domain.User
	userErr error

	items    []domain.AdminProduct
	blindErr error

	blinds   map[int64]string
	unblinds []int64
}

func (f *fakeAdminAPI) Me(context.Context) (*domain.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return f.user, nil
}

func (f *fakeAdminAPI) AdminProducts(context.Context) ([]domain.AdminProduct, error) {
	return append([]domain.AdminProduct(nil), f.items...), nil
}

func (f *fakeAdminAPI) BlindProduct(_ context.Context, id int64, reason string) error {
	if f.blindErr != nil {
		return f.blindErr
	}
	if f.blinds == nil {
		f.blinds = make(map[int64]string)
	}
	f.blinds[id] = reason
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].IsBlinded = true
			f.items[i].BlindReason = reason
		}
	}
	return nil
}

func (f *fakeAdminAPI) UnblindProduct(_ context.Context, id int64) error {
	f.unblinds = append(f.unblinds, id)
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].IsBlinded = false
			f.items[i].BlindReason = ""
		}
	}
	return nil
}

func moderationItems() []domain.AdminProduct {
	return []domain.AdminProduct{
		{ID: 1, Title: "Keyboard", SellerNickname: "kim"},
		{ID: 2, Title: "Fake AirPods", IsBlinded: true, BlindReason: "Counterfeit goods", SellerNickname: "lee"},
	}
}

func TestAdmin_EnsureAdmin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		api     *fakeAdminAPI
		wantErr error
	}{
		{
			name: "admin passes",
			api:  &fakeAdminAPI{user: &domain.User{ID: 1, Role: domain.RoleAdmin}},
		},
		{
			name:    "regular user rejected",
			api:     &fakeAdminAPI{user: &domain.User{ID: 2, Role: domain.RoleUser}},
			wantErr: view.ErrNotAdmin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := view.NewAdmin(tt.api)
			err := a.EnsureAdmin(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAdmin_EnsureAdminPropagatesAuthError(t *testing.T) {
	t.Parallel()

	authErr := errors.New("not authenticated")
	a := view.NewAdmin(&fakeAdminAPI{userErr: authErr})

	err := a.EnsureAdmin(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, view.ErrNotAdmin)
}

func TestAdmin_LoadSeedsReasons(t *testing.T) {
	t.Parallel()

	a := view.NewAdmin(&fakeAdminAPI{items: moderationItems()})
	require.NoError(t, a.Load(context.Background()))

	assert.Len(t, a.Visible(), 1)
	assert.Len(t, a.Blinded(), 1)
	assert.Equal(t, "Counterfeit goods", a.Reason(2), "recorded reason seeds the working reason")
	assert.Empty(t, a.Reason(1))
}

func TestAdmin_BlindUsesWorkingReason(t *testing.T) {
	t.Parallel()

	api := &fakeAdminAPI{items: moderationItems()}
	a := view.NewAdmin(api)
	require.NoError(t, a.Load(context.Background()))

	a.SetReason(1, "Prohibited item")
	require.NoError(t, a.Blind(context.Background(), 1))

	assert.Equal(t, "Prohibited item", api.blinds[1])
	assert.Len(t, a.Blinded(), 2, "blind reloads the list")
}

func TestAdmin_BlindDefaultsReason(t *testing.T) {
	t.Parallel()

	api := &fakeAdminAPI{items: moderationItems()}
	a := view.NewAdmin(api)
	require.NoError(t, a.Load(context.Background()))

	require.NoError(t, a.Blind(context.Background(), 1))
	assert.Equal(t, view.DefaultBlindReason, api.blinds[1])
}

func TestAdmin_Unblind(t *testing.T) {
	t.Parallel()

	api := &fakeAdminAPI{items: moderationItems()}
	a := view.NewAdmin(api)
	require.NoError(t, a.Load(context.Background()))

	require.NoError(t, a.Unblind(context.Background(), 2))
	assert.Equal(t, []int64{2}, api.unblinds)
	assert.Empty(t, a.Blinded())
	assert.Len(t, a.Visible(), 2)
}

func TestAdmin_BlindFailureFillsErrorSlot(t *testing.T) {
	t.Parallel()

	api := &fakeAdminAPI{items: moderationItems(), blindErr: errors.New("boom")}
	a := view.NewAdmin(api)
	require.NoError(t, a.Load(context.Background()))

	require.Error(t, a.Blind(context.Background(), 1))
	assert.Equal(t, "boom", a.Err())
	assert.Len(t, a.Visible(), 1, "list is unchanged on failure")
}
