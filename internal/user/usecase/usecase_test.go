package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/heralddev/herald/internal/pkg/goerror"
	"github.com/heralddev/herald/internal/pkg/instrument"
	"github.com/heralddev/herald/internal/pkg/validator"
	"github.com/heralddev/herald/internal/user/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = "8a9bcb9e-53c1-4a6f-9d52-6f0a6f1c2d3e"

type fakeRepoDB struct {
	createFn      func(ctx context.Context, user entity.CreateUser, prefs entity.Preferences) error
	getUserFn     func(ctx context.Context, id string) (*entity.User, error)
	getPrefsFn    func(ctx context.Context, userID string) (*entity.Preferences, error)
	updatePrefsFn func(ctx context.Context, p entity.Preferences) error
}

func (f *fakeRepoDB) CreateUserWithPreferences(ctx context.Context, u entity.CreateUser, p entity.Preferences) error {
	return f.createFn(ctx, u, p)
}

func (f *fakeRepoDB) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	return f.getUserFn(ctx, id)
}

func (f *fakeRepoDB) GetPreferences(ctx context.Context, userID string) (*entity.Preferences, error) {
	return f.getPrefsFn(ctx, userID)
}

func (f *fakeRepoDB) UpdatePreferences(ctx context.Context, p entity.Preferences) error {
	return f.updatePrefsFn(ctx, p)
}

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

type fixedStringID struct{ id string }

func (f fixedStringID) Generate() string { return f.id }

func newTestUsecase(t *testing.T, repo *fakeRepoDB, now time.Time) *Usecase {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	return NewUser(Dependency{
		RepoDB:     repo,
		UUID:       fixedStringID{id: testUserID},
		Clock:      fixedClock{t: now},
		Validator:  v,
		Instrument: instrument.NewNoop(),
	})
}

func TestCreate_RegistersUserWithAllChannelsEnabled(t *testing.T) {
	var gotUser entity.CreateUser
	var gotPrefs entity.Preferences
	repo := &fakeRepoDB{
		createFn: func(_ context.Context, u entity.CreateUser, p entity.Preferences) error {
			gotUser, gotPrefs = u, p
			return nil
		},
	}
	uc := newTestUsecase(t, repo, time.Now())

	out, err := uc.Create(context.Background(), CreateInput{
		Email:       "jo@example.com",
		FullName:    "Jo Doe",
		PhoneNumber: "+15550001111",
	})
	require.NoError(t, err)
	assert.Equal(t, testUserID, out.ID)
	assert.Equal(t, "jo@example.com", out.Email)

	assert.Equal(t, testUserID, gotUser.ID)
	assert.Equal(t, testUserID, gotPrefs.UserID)
	assert.True(t, gotPrefs.AllowEmail)
	assert.True(t, gotPrefs.AllowSMS)
	assert.True(t, gotPrefs.AllowPush)
}

func TestCreate_DuplicateEmailReturnsConflict(t *testing.T) {
	repo := &fakeRepoDB{
		createFn: func(context.Context, entity.CreateUser, entity.Preferences) error {
			return goerror.ErrConflict
		},
	}
	uc := newTestUsecase(t, repo, time.Now())

	_, err := uc.Create(context.Background(), CreateInput{Email: "jo@example.com", FullName: "Jo Doe"})
	require.Error(t, err)

	var gerr *goerror.Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, goerror.CodeConflict, gerr.Code())
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	uc := newTestUsecase(t, &fakeRepoDB{}, time.Now())

	tests := map[string]CreateInput{
		"missing email": {FullName: "Jo Doe"},
		"bad email":     {Email: "not-an-email", FullName: "Jo Doe"},
		"short name":    {Email: "jo@example.com", FullName: "J"},
		"bad phone":     {Email: "jo@example.com", FullName: "Jo Doe", PhoneNumber: "555-call-me"},
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), in)
			require.Error(t, err)

			var gerr *goerror.Error
			require.True(t, errors.As(err, &gerr))
			assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())
		})
	}
}

func TestUpdatePreferences_StampsUpdateTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	var got entity.Preferences
	repo := &fakeRepoDB{
		updatePrefsFn: func(_ context.Context, p entity.Preferences) error {
			got = p
			return nil
		},
	}
	uc := newTestUsecase(t, repo, now)

	out, err := uc.UpdatePreferences(context.Background(), UpdatePreferencesInput{
		UserID:     testUserID,
		AllowEmail: true,
		AllowSMS:   false,
		AllowPush:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, now, got.UpdatedAt)
	assert.False(t, got.AllowSMS)
	assert.Equal(t, got, *out)
}

func TestUpdatePreferences_UnknownUserReturnsNotFound(t *testing.T) {
	repo := &fakeRepoDB{
		updatePrefsFn: func(context.Context, entity.Preferences) error {
			return goerror.ErrNotFound
		},
	}
	uc := newTestUsecase(t, repo, time.Now())

	_, err := uc.UpdatePreferences(context.Background(), UpdatePreferencesInput{UserID: testUserID})
	require.Error(t, err)

	var gerr *goerror.Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, goerror.CodeNotFound, gerr.Code())
}

func TestGetPreferences_UnknownUserReturnsNotFound(t *testing.T) {
	repo := &fakeRepoDB{
		getPrefsFn: func(context.Context, string) (*entity.Preferences, error) {
			return nil, goerror.ErrNotFound
		},
	}
	uc := newTestUsecase(t, repo, time.Now())

	_, err := uc.GetPreferences(context.Background(), GetPreferencesInput{UserID: testUserID})
	require.Error(t, err)

	var gerr *goerror.Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, goerror.CodeNotFound, gerr.Code())
}
