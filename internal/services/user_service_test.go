package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dvcruz/progtrack/internal/audit"
	"github.com/dvcruz/progtrack/internal/models"
)

func TestUserServiceCreate(t *testing.T) {
	db, hook, store := newTestHarness(t)
	svc, err := NewUserService(db, hook)
	require.NoError(t, err)

	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	ctx := actorCtx(admin)

	user, err := svc.Create(ctx, CreateUserInput{
		FirstName: "Maria",
		LastName:  "Santos",
		Email:     "Maria.Santos@Example.com",
		Password:  "password123",
		Role:      models.RoleUser,
	})
	require.NoError(t, err)
	require.Equal(t, "maria.santos@example.com", user.Email)
	require.True(t, user.IsActive)
	require.NotEqual(t, "password123", user.Password)

	// Audit entry exists but never carries the password hash.
	trail := entityTrail(t, store, models.KindUser, user.ID)
	require.Len(t, trail, 1)
	require.Equal(t, audit.ActionCreated, trail[0].Action)
	require.NotContains(t, string(trail[0].After), user.Password)
	require.Contains(t, string(trail[0].After), "maria.santos@example.com")
}

func TestUserServiceCreateDuplicateEmail(t *testing.T) {
	db, hook, _ := newTestHarness(t)
	svc, err := NewUserService(db, hook)
	require.NoError(t, err)

	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	ctx := actorCtx(admin)

	_, err = svc.Create(ctx, CreateUserInput{Email: "dup@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateUserInput{Email: "dup@example.com", Password: "password123"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserServiceCreateRejectsUnknownRole(t *testing.T) {
	db, hook, _ := newTestHarness(t)
	svc, err := NewUserService(db, hook)
	require.NoError(t, err)

	_, err = svc.Create(actorCtx(createTestUser(t, db, "admin@example.com", models.RoleAdmin)), CreateUserInput{
		Email:    "x@example.com",
		Password: "password123",
		Role:     "superuser",
	})
	require.Error(t, err)
}

func TestUserServiceUpdateAuditsDiff(t *testing.T) {
	db, hook, store := newTestHarness(t)
	svc, err := NewUserService(db, hook)
	require.NoError(t, err)

	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	target := createTestUser(t, db, "target@example.com", models.RoleUser)

	newName := "Renamed"
	_, err = svc.Update(actorCtx(admin), target.ID, UpdateUserInput{FirstName: &newName})
	require.NoError(t, err)

	trail := entityTrail(t, store, models.KindUser, target.ID)
	require.Len(t, trail, 1)
	require.Contains(t, string(trail[0].After), "Renamed")
	require.NotContains(t, string(trail[0].After), "email")
}

func TestUserServiceSelfProtections(t *testing.T) {
	db, hook, _ := newTestHarness(t)
	svc, err := NewUserService(db, hook)
	require.NoError(t, err)

	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	ctx := actorCtx(admin)

	inactive := false
	_, err = svc.Update(ctx, admin.ID, UpdateUserInput{IsActive: &inactive})
	require.ErrorIs(t, err, ErrSelfDeactivation)

	role := models.RoleUser
	_, err = svc.Update(ctx, admin.ID, UpdateUserInput{Role: &role})
	require.Error(t, err)

	require.ErrorIs(t, svc.Delete(ctx, admin.ID), ErrSelfDeactivation)
}

func TestUserServiceListFilters(t *testing.T) {
	db, hook, _ := newTestHarness(t)
	svc, err := NewUserService(db, hook)
	require.NoError(t, err)

	createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	createTestUser(t, db, "alpha@example.com", models.RoleUser)
	createTestUser(t, db, "beta@example.com", models.RoleUser)

	users, total, err := svc.List(nil, ListUsersOptions{Filters: UserFilters{Role: models.RoleUser}})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, users, 2)

	users, total, err = svc.List(nil, ListUsersOptions{Filters: UserFilters{Query: "alpha"}})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "alpha@example.com", users[0].Email)
}

func TestUserServiceDelete(t *testing.T) {
	db, hook, store := newTestHarness(t)
	svc, err := NewUserService(db, hook)
	require.NoError(t, err)

	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	target := createTestUser(t, db, "target@example.com", models.RoleUser)

	require.NoError(t, svc.Delete(actorCtx(admin), target.ID))

	_, err = svc.Get(nil, target.ID)
	require.ErrorIs(t, err, ErrUserNotFound)

	// Trail survives the deletion.
	trail := entityTrail(t, store, models.KindUser, target.ID)
	require.Len(t, trail, 1)
	require.Equal(t, audit.ActionDeleted, trail[0].Action)
}
