package user

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/domain/model"
	"github.com/Joker-Pro-Max/Basalt/internal/iam/domain/system"
	"github.com/Joker-Pro-Max/Basalt/internal/pkg/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSystems struct {
	systems    map[string]model.System
	remembered []string
}

func (f *fakeSystems) GetByCode(_ context.Context, code string) (model.System, error) {
	s, ok := f.systems[code]
	if !ok {
		return model.System{}, system.ErrNotFound
	}
	return s, nil
}

func (f *fakeSystems) Remember(_ context.Context, s model.System) {
	f.remembered = append(f.remembered, s.Code)
}

func (f *fakeSystems) List(context.Context, int, int) ([]model.System, int64, error) {
	return nil, 0, nil
}

// fakeRepository guarda usuários em ordem de inserção; o índice é o id.
type fakeRepository struct {
	users   []User
	systems map[string]model.System
}

func (r *fakeRepository) Create(_ context.Context, u User, systemCode, defaultName string) (User, error) {
	for _, existing := range r.users {
		if u.Email != nil && existing.Email != nil && strings.EqualFold(*u.Email, *existing.Email) {
			return User{}, ErrDuplicated
		}
		if u.Phone != nil && existing.Phone != nil && *u.Phone == *existing.Phone {
			return User{}, ErrDuplicated
		}
	}
	sys, ok := r.systems[systemCode]
	if !ok {
		sys = model.System{ID: uint(len(r.systems) + 1), Code: systemCode, Name: defaultName}
		r.systems[systemCode] = sys
	}
	u.ID = uint(len(r.users) + 1)
	u.SystemID = &sys.ID
	u.System = &sys
	r.users = append(r.users, u)
	return u, nil
}

func (r *fakeRepository) ExistsByEmailOrPhone(_ context.Context, email, phone string) (bool, error) {
	for _, u := range r.users {
		if email != "" && strings.EqualFold(u.EmailValue(), email) {
			return true, nil
		}
		if phone != "" && u.PhoneValue() == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepository) FindByAccount(_ context.Context, systemID uint, kind AccountKind, account string) ([]User, error) {
	var out []User
	for _, u := range r.users {
		if u.SystemID == nil || *u.SystemID != systemID || u.IsDeleted {
			continue
		}
		var match bool
		switch kind {
		case KindEmail:
			match = strings.EqualFold(u.EmailValue(), account)
		case KindPhone:
			match = u.PhoneValue() == account
		default:
			match = u.Username == account
		}
		if match {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeRepository) GetByUUID(_ context.Context, id uuid.UUID) (User, error) {
	for _, u := range r.users {
		if u.UUID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *fakeRepository) List(_ context.Context, f ListFilter, _, _ int) ([]User, int64, error) {
	var out []User
	for _, u := range r.users {
		if f.IsSuperuser != nil && u.IsSuperuser != *f.IsSuperuser {
			continue
		}
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

type plainPassword struct{}

func (plainPassword) Hash(pwd string) (string, error) { return "plain:" + pwd, nil }
func (plainPassword) Compare(hash, pwd string) error {
	if hash != "plain:"+pwd {
		return util.ErrPasswordMismatch
	}
	return nil
}

func newTestService(t *testing.T) (Service, *fakeRepository, *fakeSystems) {
	t.Helper()
	repo := &fakeRepository{systems: map[string]model.System{}}
	systems := &fakeSystems{systems: repo.systems}
	return NewService(repo, systems, plainPassword{}, nil), repo, systems
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc, _, systems := newTestService(t)

	created, err := svc.Create(ctx, NewUser{Username: "alice", Email: "a@x.com", Password: "pw1", SystemCode: "default"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.UUID)
	assert.True(t, created.IsActive)
	assert.Equal(t, "plain:pw1", created.Password)
	assert.Equal(t, "default", created.SystemCode())
	assert.Nil(t, created.Phone)
	assert.Equal(t, []string{"default"}, systems.remembered)

	_, err = svc.Create(ctx, NewUser{Username: "x", Password: "pw", SystemCode: "default"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, NewUser{Username: "y", Email: "A@X.com", Password: "pw", SystemCode: "other"})
	assert.ErrorIs(t, err, ErrDuplicated)
}

func TestService_Resolve(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)

	_, err := svc.Create(ctx, NewUser{Username: "bob", Phone: "13800000000", Password: "pw2", SystemCode: "oa"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, NewUser{Username: "alice", Email: "a@x.com", Password: "pw1", SystemCode: "default"})
	require.NoError(t, err)

	t.Run("by phone", func(t *testing.T) {
		u, err := svc.Resolve(ctx, "13800000000", "oa")
		require.NoError(t, err)
		assert.Equal(t, "bob", u.Username)
	})

	t.Run("by email is case-insensitive", func(t *testing.T) {
		u, err := svc.Resolve(ctx, "A@X.COM", "default")
		require.NoError(t, err)
		assert.Equal(t, "alice", u.Username)
	})

	t.Run("by username", func(t *testing.T) {
		u, err := svc.Resolve(ctx, "alice", "default")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", u.EmailValue())
	})

	t.Run("wrong system", func(t *testing.T) {
		_, err := svc.Resolve(ctx, "13800000000", "default")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing system is distinct", func(t *testing.T) {
		_, err := svc.Resolve(ctx, "alice", "ghost")
		assert.ErrorIs(t, err, system.ErrNotFound)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("soft-deleted never resolves", func(t *testing.T) {
		repo.users[0].IsDeleted = true
		t.Cleanup(func() { repo.users[0].IsDeleted = false })
		_, err := svc.Resolve(ctx, "13800000000", "oa")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_Resolve_MultipleMatchesTakesOldest(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)

	sys := model.System{ID: 1, Code: "default"}
	repo.systems["default"] = sys
	now := time.Now()
	repo.users = []User{
		{ID: 1, UUID: uuid.New(), SystemID: &sys.ID, Username: "dup", IsActive: true, CreatedAt: now},
		{ID: 2, UUID: uuid.New(), SystemID: &sys.ID, Username: "dup", IsActive: true, CreatedAt: now},
	}

	u, err := svc.Resolve(ctx, "dup", "default")
	require.NoError(t, err)
	assert.Equal(t, uint(1), u.ID)
	require.NotNil(t, u.System)
	assert.Equal(t, "default", u.System.Code)
}

func TestCreateSuperuser(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	admin, err := CreateSuperuser(ctx, svc, NewUser{Email: "root@x.com", Password: "secret"})
	require.NoError(t, err)
	assert.True(t, admin.IsSuperuser)
	assert.True(t, admin.IsStaff)
	assert.Equal(t, DefaultSuperuserName, admin.Username)
	assert.Equal(t, DefaultSuperuserSystem, admin.SystemCode())

	_, err = CreateSuperuser(ctx, svc, NewUser{Email: "other@x.com", Password: "secret"})
	assert.ErrorIs(t, err, ErrSuperuserExists)
}
