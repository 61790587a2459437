package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotel-guest-service/models"
	"hotel-guest-service/testutil"
)

func newRepo(t *testing.T) (GuestRepository, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewGormGuestRepo(db), db
}

func guest(first, last, email, phone string) models.Guest {
	return models.Guest{FirstName: first, LastName: last, Email: email, Phone: phone}
}

func ids(guests []models.Guest) []uint {
	out := make([]uint, 0, len(guests))
	for _, g := range guests {
		out = append(out, g.ID)
	}
	return out
}

func TestGormGuestRepo_CreateAndFindByID(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	g := guest("John", "Doe", "john@x.com", "+1555")
	require.NoError(t, repo.Create(ctx, &g))
	assert.NotZero(t, g.ID)
	assert.False(t, g.CreatedAt.IsZero())
	assert.False(t, g.UpdatedAt.IsZero())

	found, err := repo.FindByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "John", found.FirstName)
	assert.Equal(t, 0, found.LoyaltyPoints)
	assert.False(t, found.IsDeleted)
	require.NotNil(t, found.ActiveEmail)
	assert.Equal(t, "john@x.com", *found.ActiveEmail)
}

func TestGormGuestRepo_FindByID_NotFound(t *testing.T) {
	repo, _ := newRepo(t)

	found, err := repo.FindByID(context.Background(), 42)

	assert.Nil(t, found)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestGormGuestRepo_FindByID_ReturnsDeleted(t *testing.T) {
	repo, db := newRepo(t)
	deleted := testutil.InsertGuest(t, db, models.Guest{FirstName: "Del", LastName: "Eted", Email: "del@x.com", Phone: "1", IsDeleted: true})

	found, err := repo.FindByID(context.Background(), deleted.ID)

	require.NoError(t, err)
	assert.True(t, found.IsDeleted)
	assert.Nil(t, found.ActiveEmail)
}

func TestGormGuestRepo_Save_SoftDeleteReleasesEmail(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	first := guest("John", "Doe", "john@x.com", "+1555")
	require.NoError(t, repo.Create(ctx, &first))

	first.IsDeleted = true
	require.NoError(t, repo.Save(ctx, &first))

	exists, err := repo.ExistsActiveByEmail(ctx, "john@x.com")
	require.NoError(t, err)
	assert.False(t, exists)

	second := guest("Johnny", "Doe", "john@x.com", "+1666")
	require.NoError(t, repo.Create(ctx, &second))
	assert.NotEqual(t, first.ID, second.ID)
}

func TestGormGuestRepo_Create_DuplicateActiveEmailRejected(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	first := guest("John", "Doe", "john@x.com", "+1555")
	require.NoError(t, repo.Create(ctx, &first))

	second := guest("Jane", "Doe", "john@x.com", "+1666")
	assert.ErrorIs(t, repo.Create(ctx, &second), ErrDuplicateKey)
}

func TestGormGuestRepo_Save_OntoActiveEmailRejected(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	john := guest("John", "Doe", "john@x.com", "+1555")
	require.NoError(t, repo.Create(ctx, &john))
	jane := guest("Jane", "Doe", "jane@x.com", "+1666")
	require.NoError(t, repo.Create(ctx, &jane))

	jane.Email = "john@x.com"
	assert.ErrorIs(t, repo.Save(ctx, &jane), ErrDuplicateKey)

	stored, err := repo.FindByID(ctx, jane.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", stored.Email)
}

func TestGormGuestRepo_Save_BumpsUpdatedAtAndKeepsCounters(t *testing.T) {
	repo, db := newRepo(t)
	ctx := context.Background()

	seeded := guest("John", "Doe", "john@x.com", "+1555")
	seeded.LoyaltyPoints = 250
	seeded.StayHistory = "2023-01-15: Room 101"
	seeded = testutil.InsertGuest(t, db, seeded)

	loaded, err := repo.FindByID(ctx, seeded.ID)
	require.NoError(t, err)
	before := loaded.UpdatedAt

	time.Sleep(20 * time.Millisecond)
	models.GuestRequest{FirstName: "Johnny", LastName: "Doe", Email: "john@x.com", Phone: "+1666"}.ApplyTo(loaded)
	require.NoError(t, repo.Save(ctx, loaded))

	stored, err := repo.FindByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.True(t, stored.UpdatedAt.After(before), "updated_at %v not after %v", stored.UpdatedAt, before)
	assert.Equal(t, "Johnny", stored.FirstName)
	assert.Equal(t, "+1666", stored.Phone)
	assert.Equal(t, 250, stored.LoyaltyPoints)
	assert.Equal(t, "2023-01-15: Room 101", stored.StayHistory)
}

func TestGormGuestRepo_ExistsActiveByEmail(t *testing.T) {
	repo, db := newRepo(t)
	ctx := context.Background()
	testutil.InsertGuest(t, db, guest("John", "Doe", "john@x.com", "+1555"))
	testutil.InsertGuest(t, db, models.Guest{FirstName: "Old", LastName: "Guest", Email: "old@x.com", Phone: "1", IsDeleted: true})

	exists, err := repo.ExistsActiveByEmail(ctx, "john@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsActiveByEmail(ctx, "old@x.com")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsActiveByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormGuestRepo_FindActive_Paginates(t *testing.T) {
	repo, db := newRepo(t)
	ctx := context.Background()

	var active []uint
	var third models.Guest
	for i, email := range []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com", "e@x.com"} {
		g := testutil.InsertGuest(t, db, guest("G", "Guest", email, "100"))
		if i == 2 {
			third = g
			continue
		}
		active = append(active, g.ID)
	}
	third.IsDeleted = true
	require.NoError(t, repo.Save(ctx, &third))

	first, total, err := repo.FindActive(ctx, models.NewPageRequest(0, 3))
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Equal(t, active[:3], ids(first))

	second, total, err := repo.FindActive(ctx, models.NewPageRequest(1, 3))
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Equal(t, active[3:], ids(second))

	beyond, total, err := repo.FindActive(ctx, models.NewPageRequest(5, 3))
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Empty(t, beyond)
}

func TestGormGuestRepo_SearchActive(t *testing.T) {
	repo, db := newRepo(t)
	ctx := context.Background()

	doe := testutil.InsertGuest(t, db, guest("John", "Doe", "john@x.com", "+1555"))
	doerr := testutil.InsertGuest(t, db, guest("Jane", "Smith", "jane.DOE@y.com", "+1666"))
	testutil.InsertGuest(t, db, guest("Bob", "Brown", "bob@z.com", "+1777"))
	testutil.InsertGuest(t, db, models.Guest{FirstName: "Dead", LastName: "Doe", Email: "dead@x.com", Phone: "9", IsDeleted: true})

	found, total, err := repo.SearchActive(ctx, "doe", models.NewPageRequest(0, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []uint{doe.ID, doerr.ID}, ids(found))

	found, _, err = repo.SearchActive(ctx, "1777", models.NewPageRequest(0, 10))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Bob", found[0].FirstName)

	found, total, err = repo.SearchActive(ctx, "", models.NewPageRequest(0, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, found, 3)
}

func TestGormGuestRepo_SearchActive_EscapesWildcards(t *testing.T) {
	repo, db := newRepo(t)
	ctx := context.Background()

	testutil.InsertGuest(t, db, guest("John", "Doe", "john@x.com", "+1555"))
	underscore := testutil.InsertGuest(t, db, guest("Ann", "Under_Score", "ann@x.com", "+1666"))

	found, _, err := repo.SearchActive(ctx, "%", models.NewPageRequest(0, 10))
	require.NoError(t, err)
	assert.Empty(t, found)

	found, _, err = repo.SearchActive(ctx, "r_s", models.NewPageRequest(0, 10))
	require.NoError(t, err)
	assert.Equal(t, []uint{underscore.ID}, ids(found))
}

func TestGormGuestRepo_FindActiveByEmailContaining(t *testing.T) {
	repo, db := newRepo(t)
	ctx := context.Background()

	john := testutil.InsertGuest(t, db, guest("John", "Doe", "John@Example.com", "+1555"))
	testutil.InsertGuest(t, db, guest("Jane", "Doe", "jane@other.org", "+1666"))
	testutil.InsertGuest(t, db, models.Guest{FirstName: "X", LastName: "Y", Email: "gone@example.com", Phone: "1", IsDeleted: true})

	found, total, err := repo.FindActiveByEmailContaining(ctx, "EXAMPLE", models.NewPageRequest(0, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []uint{john.ID}, ids(found))
}

func TestGormGuestRepo_FindActiveByPhoneContaining(t *testing.T) {
	repo, db := newRepo(t)
	ctx := context.Background()

	a := testutil.InsertGuest(t, db, guest("A", "A", "a@x.com", "+1555-EXT"))
	b := testutil.InsertGuest(t, db, guest("B", "B", "b@x.com", "+1555"))
	testutil.InsertGuest(t, db, guest("C", "C", "c@x.com", "+44777"))
	testutil.InsertGuest(t, db, models.Guest{FirstName: "D", LastName: "D", Email: "d@x.com", Phone: "+1555", IsDeleted: true})

	found, total, err := repo.FindActiveByPhoneContaining(ctx, "555", models.NewPageRequest(0, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []uint{a.ID, b.ID}, ids(found))

	found, _, err = repo.FindActiveByPhoneContaining(ctx, "ext", models.NewPageRequest(0, 10))
	require.NoError(t, err)
	assert.Empty(t, found)

	found, _, err = repo.FindActiveByPhoneContaining(ctx, "EXT", models.NewPageRequest(0, 10))
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID}, ids(found))
}

func TestGormGuestRepo_FindActiveByMinLoyaltyPoints(t *testing.T) {
	repo, db := newRepo(t)
	ctx := context.Background()

	testutil.InsertGuest(t, db, models.Guest{FirstName: "Low", LastName: "L", Email: "low@x.com", Phone: "1", LoyaltyPoints: 99})
	exact := testutil.InsertGuest(t, db, models.Guest{FirstName: "Exact", LastName: "E", Email: "exact@x.com", Phone: "2", LoyaltyPoints: 100})
	high := testutil.InsertGuest(t, db, models.Guest{FirstName: "High", LastName: "H", Email: "high@x.com", Phone: "3", LoyaltyPoints: 500})
	testutil.InsertGuest(t, db, models.Guest{FirstName: "Gone", LastName: "G", Email: "gone@x.com", Phone: "4", LoyaltyPoints: 900, IsDeleted: true})

	found, total, err := repo.FindActiveByMinLoyaltyPoints(ctx, 100, models.NewPageRequest(0, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []uint{exact.ID, high.ID}, ids(found))
}

func TestTranslateError(t *testing.T) {
	assert.ErrorIs(t, translateError(gorm.ErrDuplicatedKey), ErrDuplicateKey)
	assert.ErrorIs(t, translateError(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry"}), ErrDuplicateKey)

	other := errors.New("connection refused")
	assert.Same(t, other, translateError(other))
	assert.NotErrorIs(t, translateError(&gomysql.MySQLError{Number: 1045}), ErrDuplicateKey)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%doe%", containsPattern("doe"))
	assert.Equal(t, "%50!%%", containsPattern("50%"))
	assert.Equal(t, "%a!_b%", containsPattern("a_b"))
	assert.Equal(t, "%hi!!%", containsPattern("hi!"))
	assert.Equal(t, "%%", containsPattern(""))
}
