package helper

import (
	"testing"

	"event_ticketing/database"
	"event_ticketing/model"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db
	return db
}

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestTokenRoundtrip(t *testing.T) {
	JwtSecret = []byte("test-secret")

	claim := model.TokenClaim{UserId: 42, Email: "a@b.c", Role: "customer"}
	raw, err := GenerateAccessToken(claim)
	require.NoError(t, err)

	token, err := ParseToken(raw)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["userId"])
	assert.Equal(t, "a@b.c", claims["email"])
	assert.Equal(t, "customer", claims["role"])
}

func TestGenerateUniqueEventSlug(t *testing.T) {
	db := setupDB(t)

	first := GenerateUniqueEventSlug(db, "Summer Fest")
	assert.Equal(t, "summer-fest", first)

	require.NoError(t, db.Create(&model.Event{
		Slug: first, VenueId: 1, OrganizerId: 1, Name: "Summer Fest",
	}).Error)

	second := GenerateUniqueEventSlug(db, "Summer Fest")
	assert.Equal(t, "summer-fest-1", second)
}

func TestConfirmedSeatCount(t *testing.T) {
	db := setupDB(t)

	user := model.User{Name: "c", Email: "c@example.com", Password: "x", Role: "customer"}
	require.NoError(t, db.Create(&user).Error)

	confirmed := model.Order{PublicCode: "ORD-AAAA0001", UserId: user.ID, EventId: 1, Status: model.OrderConfirmed}
	pending := model.Order{PublicCode: "ORD-AAAA0002", UserId: user.ID, EventId: 1, Status: model.OrderPending}
	require.NoError(t, db.Create(&confirmed).Error)
	require.NoError(t, db.Create(&pending).Error)

	require.NoError(t, db.Create(&model.Ticket{OrderId: confirmed.ID, SeatId: 1, TicketCode: "TICK-00000001", Status: model.TicketActive}).Error)
	require.NoError(t, db.Create(&model.Ticket{OrderId: confirmed.ID, SeatId: 2, TicketCode: "TICK-00000002", Status: model.TicketActive}).Error)

	count, err := ConfirmedSeatCount(db, user.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// other event and other user see nothing
	count, err = ConfirmedSeatCount(db, user.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
