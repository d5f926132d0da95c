package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/piresc/accounts/internal/pkg/apperror"
	"github.com/piresc/accounts/internal/pkg/jwt"
	"github.com/piresc/accounts/internal/pkg/models"
	"github.com/piresc/accounts/internal/pkg/otp"
	"github.com/piresc/accounts/internal/pkg/password"
	"github.com/piresc/accounts/services/accounts/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type fixture struct {
	repo      *mocks.MockAccountRepo
	gw        *mocks.MockAccountGW
	otpStore  *otp.MemoryStore
	passwords *password.Hasher
	tokens    *jwt.Manager
	uc        *AccountUC
}

func newFixture(t *testing.T, opts ...otp.Option) *fixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &fixture{
		repo:      mocks.NewMockAccountRepo(ctrl),
		gw:        mocks.NewMockAccountGW(ctrl),
		otpStore:  otp.NewMemoryStore(opts...),
		passwords: password.NewHasher(bcrypt.MinCost),
		tokens:    jwt.NewManager(models.JWTConfig{Secret: testSecret, Expiration: 60}),
	}
	f.uc = NewAccountUC(f.repo, f.gw, f.otpStore, f.passwords, f.tokens, &models.Config{})
	return f
}

func (f *fixture) hash(t *testing.T, pw string) string {
	h, err := f.passwords.Hash(pw)
	require.NoError(t, err)
	return h
}

func strPtr(s string) *string { return &s }

func TestAccountUC_Register_Success(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		CreateAccount(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *models.Account) error {
			a.ID = 1
			a.CreatedAt = time.Now()
			return nil
		})

	account, err := f.uc.Register(context.Background(), &models.RegisterRequest{
		Name:     "Alice",
		Email:    "a@x.io",
		Password: "pw1",
		Phone:    "0811",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), account.ID)
	assert.Equal(t, "Alice", account.Name)
	require.NotNil(t, account.Phone)
	assert.Equal(t, "0811", *account.Phone)
	assert.NotEqual(t, "pw1", account.PasswordHash)
	assert.True(t, f.passwords.Verify("pw1", account.PasswordHash))
}

func TestAccountUC_Register_NoPhoneStoresNull(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		CreateAccount(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *models.Account) error {
			assert.Nil(t, a.Phone)
			a.ID = 2
			return nil
		})

	_, err := f.uc.Register(context.Background(), &models.RegisterRequest{Name: "Bob", Email: "b@x.io", Password: "pw"})
	assert.NoError(t, err)
}

func TestAccountUC_Register_DuplicateEmail(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		CreateAccount(gomock.Any(), gomock.Any()).
		Return(apperror.ErrDuplicateEmail)

	_, err := f.uc.Register(context.Background(), &models.RegisterRequest{Name: "Alice", Email: "a@x.io", Password: "pw1"})
	assert.ErrorIs(t, err, apperror.ErrDuplicateEmail)
	assert.False(t, apperror.IsInternal(err))
}

func TestAccountUC_Register_StorageFailureIsInternal(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		CreateAccount(gomock.Any(), gomock.Any()).
		Return(errors.New("connection reset"))

	_, err := f.uc.Register(context.Background(), &models.RegisterRequest{Name: "Alice", Email: "a@x.io", Password: "pw1"})
	assert.ErrorIs(t, err, apperror.ErrInternal)
}

func TestAccountUC_Login(t *testing.T) {
	f := newFixture(t)
	stored := &models.Account{ID: 1, Email: "a@x.io", PasswordHash: f.hash(t, "pw1")}

	t.Run("success", func(t *testing.T) {
		f.repo.EXPECT().GetAccountByEmail(gomock.Any(), "a@x.io").Return(stored, nil)

		resp, err := f.uc.Login(context.Background(), &models.LoginRequest{Email: "a@x.io", Password: "pw1"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.AccountID)
		assert.NotEmpty(t, resp.Token)
		assert.Greater(t, resp.ExpiresAt, time.Now().Unix())

		id, err := f.tokens.Verify(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
	})

	t.Run("wrong password", func(t *testing.T) {
		f.repo.EXPECT().GetAccountByEmail(gomock.Any(), "a@x.io").Return(stored, nil)

		_, err := f.uc.Login(context.Background(), &models.LoginRequest{Email: "a@x.io", Password: "nope"})
		assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		f.repo.EXPECT().GetAccountByEmail(gomock.Any(), "z@x.io").Return(nil, apperror.ErrNotFound)

		_, err := f.uc.Login(context.Background(), &models.LoginRequest{Email: "z@x.io", Password: "pw1"})
		assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
		assert.NotErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestAccountUC_GetAccount_NotFound(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().GetAccountByID(gomock.Any(), int64(99)).Return(nil, apperror.ErrNotFound)

	_, err := f.uc.GetAccount(context.Background(), 99)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestAccountUC_ListAccounts(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().ListAccounts(gomock.Any()).Return([]*models.Account{{ID: 1}, {ID: 2}}, nil)

	list, err := f.uc.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAccountUC_UpdateAccount_RehashesPassword(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		UpdateAccount(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *models.Account) (*models.Account, error) {
			assert.Equal(t, int64(3), a.ID)
			assert.True(t, f.passwords.Verify("pw2", a.PasswordHash))
			assert.Equal(t, "Lisbon", *a.City)
			return a, nil
		})

	updated, err := f.uc.UpdateAccount(context.Background(), 3, &models.UpdateAccountRequest{
		Name:     "Alice",
		Email:    "a@x.io",
		Password: "pw2",
		City:     strPtr("Lisbon"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
}

func TestAccountUC_UpdateAccount_NotFound(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().UpdateAccount(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrNotFound)

	_, err := f.uc.UpdateAccount(context.Background(), 9, &models.UpdateAccountRequest{Name: "x", Email: "x@x.io", Password: "p"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestAccountUC_DeleteAccount(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().DeleteAccount(gomock.Any(), int64(1)).Return(&models.Account{ID: 1, Name: "Alice"}, nil)

	deleted, err := f.uc.DeleteAccount(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice", deleted.Name)
}

func TestAccountUC_ChangePassword(t *testing.T) {
	f := newFixture(t)
	stored := &models.Account{ID: 1, Email: "a@x.io", PasswordHash: f.hash(t, "pw1")}

	t.Run("success", func(t *testing.T) {
		f.repo.EXPECT().GetAccountByID(gomock.Any(), int64(1)).Return(stored, nil)
		f.repo.EXPECT().
			UpdatePasswordByID(gomock.Any(), int64(1), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, hash string) error {
				assert.True(t, f.passwords.Verify("pw2", hash))
				return nil
			})

		err := f.uc.ChangePassword(context.Background(), 1, &models.ChangePasswordRequest{OldPassword: "pw1", NewPassword: "pw2"})
		assert.NoError(t, err)
	})

	t.Run("wrong old password leaves hash alone", func(t *testing.T) {
		f.repo.EXPECT().GetAccountByID(gomock.Any(), int64(1)).Return(stored, nil)

		err := f.uc.ChangePassword(context.Background(), 1, &models.ChangePasswordRequest{OldPassword: "bad", NewPassword: "pw2"})
		assert.ErrorIs(t, err, apperror.ErrIncorrectOldPassword)
	})

	t.Run("account gone", func(t *testing.T) {
		f.repo.EXPECT().GetAccountByID(gomock.Any(), int64(1)).Return(nil, apperror.ErrNotFound)

		err := f.uc.ChangePassword(context.Background(), 1, &models.ChangePasswordRequest{OldPassword: "pw1", NewPassword: "pw2"})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}
