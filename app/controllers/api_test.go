package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"realty-hub/app/controllers"
	"realty-hub/app/dto"
	jwtutil "realty-hub/app/jwt"
	"realty-hub/app/middleware"
	"realty-hub/app/models"
	"realty-hub/app/repo"
	"realty-hub/app/services"
	"realty-hub/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type api struct {
	handler http.Handler
	db      *gorm.DB
	signer  *jwtutil.Signer
	auth    *services.AuthService
}

func newAPI(t *testing.T) *api {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.Home{}, &models.Image{}, &models.Message{}))

	userRepo := repo.NewUserRepository(gdb)
	signer := &jwtutil.Signer{Secret: []byte("test-secret"), Issuer: "realty-hub", ExpDays: 5}
	authSvc := services.NewAuthService(userRepo, signer, "test-product-secret")
	homeSvc := services.NewHomeService(repo.NewHomeRepository(gdb), repo.NewMessageRepository(gdb), nil)

	h := router.NewRouter(
		controllers.NewAuthController(authSvc),
		controllers.NewHomeController(homeSvc),
		&middleware.Auth{Signer: signer, Users: userRepo},
	)
	return &api{handler: h, db: gdb, signer: signer, auth: authSvc}
}

func (a *api) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

// signup registers a user, fetching a product key first for non-buyers, and
// returns the session token.
func (a *api) signup(t *testing.T, email, role string) string {
	t.Helper()
	req := dto.SignupRequest{Email: email, Password: "pw123456", Name: "Test " + role, Phone: "555-0100"}
	if role != models.RoleBuyer {
		key, err := a.auth.GenerateProductKey(email, role)
		require.NoError(t, err)
		req.ProductKey = key
	}
	rec := a.do(t, http.MethodPost, "/auth/signup/"+role, "", req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[dto.TokenResponse](t, rec).AccessToken
}

func (a *api) createHome(t *testing.T, token string, price float64, images ...string) uint {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/home", token, dto.CreateHomeRequest{
		Address: "12 Elm St", City: "Toronto", Price: price, LandSize: 300,
		Bedrooms: 3, Bathrooms: 2, PropertyType: models.PropertyResidential,
		Images: images,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[dto.HomeSummary](t, rec).ID
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	a := newAPI(t)
	body := dto.SignupRequest{Email: "dup@example.com", Password: "pw123456", Name: "Dup", Phone: "555-0100"}

	rec := a.do(t, http.MethodPost, "/auth/signup/BUYER", "", body)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = a.do(t, http.MethodPost, "/auth/signup/BUYER", "", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRealtorSignupGatedByProductKey(t *testing.T) {
	a := newAPI(t)
	body := dto.SignupRequest{Email: "agent@example.com", Password: "pw123456", Name: "Agent", Phone: "555-0101"}

	// no key
	rec := a.do(t, http.MethodPost, "/auth/signup/REALTOR", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// key derived for a different email
	wrong, err := a.auth.GenerateProductKey("other@example.com", models.RoleRealtor)
	require.NoError(t, err)
	body.ProductKey = wrong
	rec = a.do(t, http.MethodPost, "/auth/signup/REALTOR", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// key from the /auth/key endpoint
	rec = a.do(t, http.MethodPost, "/auth/key", "", dto.ProductKeyRequest{Email: "agent@example.com", UserType: models.RoleRealtor})
	require.Equal(t, http.StatusOK, rec.Code)
	body.ProductKey = decode[dto.ProductKeyResponse](t, rec).ProductKey
	rec = a.do(t, http.MethodPost, "/auth/signup/REALTOR", "", body)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestSigninReturnsTokenForKnownUser(t *testing.T) {
	a := newAPI(t)
	a.signup(t, "b@example.com", models.RoleBuyer)

	rec := a.do(t, http.MethodPost, "/auth/signin", "", dto.SigninRequest{Email: "b@example.com", Password: "pw123456"})
	require.Equal(t, http.StatusOK, rec.Code)
	token := decode[dto.TokenResponse](t, rec).AccessToken

	claims, err := a.signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", claims.Email)

	rec = a.do(t, http.MethodPost, "/auth/signin", "", dto.SigninRequest{Email: "nobody@example.com", Password: "pw123456"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(t, http.MethodPost, "/auth/signin", "", dto.SigninRequest{Email: "b@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMeEchoesTokenIdentity(t *testing.T) {
	a := newAPI(t)
	token := a.signup(t, "me@example.com", models.RoleBuyer)

	rec := a.do(t, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(t, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[dto.MeResponse](t, rec)
	assert.Equal(t, "me@example.com", me.Email)
	assert.NotZero(t, me.ID)
	assert.Greater(t, me.ExpiresAt, me.IssuedAt)
}

func TestCreateHomeRequiresRealtorRole(t *testing.T) {
	a := newAPI(t)
	buyer := a.signup(t, "buyer@example.com", models.RoleBuyer)

	body := dto.CreateHomeRequest{Address: "1 Main", City: "Toronto", Price: 1, PropertyType: models.PropertyResidential}

	rec := a.do(t, http.MethodPost, "/home", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(t, http.MethodPost, "/home", buyer, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateHomePersistsImages(t *testing.T) {
	a := newAPI(t)
	realtor := a.signup(t, "agent@example.com", models.RoleRealtor)

	id := a.createHome(t, realtor, 100000, "a.jpg", "b.jpg", "c.jpg")

	var count int64
	require.NoError(t, a.db.Model(&models.Image{}).Where("home_id = ?", id).Count(&count).Error)
	assert.EqualValues(t, 3, count)

	rec := a.do(t, http.MethodGet, fmt.Sprintf("/home/%d", id), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[dto.HomeDetail](t, rec)
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, detail.Images)
	assert.Equal(t, "Test REALTOR", detail.Realtor.Name)
}

func TestSearchPriceRangeAndEmptyResult(t *testing.T) {
	a := newAPI(t)
	realtor := a.signup(t, "agent@example.com", models.RoleRealtor)
	a.createHome(t, realtor, 90000, "a.jpg")
	a.createHome(t, realtor, 150000, "b.jpg")
	a.createHome(t, realtor, 250000, "c.jpg")

	rec := a.do(t, http.MethodGet, "/home?minPrice=100000&maxPrice=200000", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	homes := decode[[]dto.HomeSummary](t, rec)
	require.Len(t, homes, 1)
	assert.Equal(t, 150000.0, homes[0].Price)
	assert.Equal(t, "b.jpg", homes[0].Image)

	rec = a.do(t, http.MethodGet, "/home?city=Winnipeg", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(t, http.MethodGet, "/home?minPrice=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(t, http.MethodGet, "/home?propertyType=CASTLE", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateAndDeleteEnforceOwnership(t *testing.T) {
	a := newAPI(t)
	owner := a.signup(t, "owner@example.com", models.RoleRealtor)
	other := a.signup(t, "other@example.com", models.RoleRealtor)
	id := a.createHome(t, owner, 100000)

	price := 110000.0
	path := fmt.Sprintf("/home/%d", id)

	rec := a.do(t, http.MethodPut, path, other, dto.UpdateHomeRequest{Price: &price})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(t, http.MethodPut, path, owner, dto.UpdateHomeRequest{Price: &price})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 110000.0, decode[dto.HomeSummary](t, rec).Price)

	rec = a.do(t, http.MethodDelete, path, other, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(t, http.MethodDelete, path, owner, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInquiryFlow(t *testing.T) {
	a := newAPI(t)
	owner := a.signup(t, "owner@example.com", models.RoleRealtor)
	other := a.signup(t, "other@example.com", models.RoleRealtor)
	buyer := a.signup(t, "buyer@example.com", models.RoleBuyer)
	id := a.createHome(t, owner, 100000)

	inquirePath := fmt.Sprintf("/home/%d/inquire", id)
	messagesPath := fmt.Sprintf("/home/%d/messages", id)

	// realtors cannot inquire
	rec := a.do(t, http.MethodPost, inquirePath, owner, dto.InquireRequest{Message: "hi"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(t, http.MethodPost, inquirePath, buyer, dto.InquireRequest{Message: "still available?"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "still available?", decode[dto.InquireResponse](t, rec).Message)

	// buyers cannot read the realtor's inbox
	rec = a.do(t, http.MethodGet, messagesPath, buyer, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// neither can a realtor who does not own the listing
	rec = a.do(t, http.MethodGet, messagesPath, other, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(t, http.MethodGet, messagesPath, owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	msgs := decode[[]dto.MessageResponse](t, rec)
	require.Len(t, msgs, 1)
	assert.Equal(t, "still available?", msgs[0].Message)
	assert.Equal(t, "buyer@example.com", msgs[0].Buyer.Email)
}

func TestSignupRejectsUnknownUserType(t *testing.T) {
	a := newAPI(t)
	rec := a.do(t, http.MethodPost, "/auth/signup/LANDLORD", "", dto.SignupRequest{Email: "x@example.com", Password: "pw", Name: "X", Phone: "555"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	a := newAPI(t)
	a.signup(t, "old@example.com", models.RoleBuyer)

	expired := &jwtutil.Signer{Secret: []byte("test-secret"), Issuer: "realty-hub", ExpDays: -1}
	token, err := expired.Sign(1, "old@example.com")
	require.NoError(t, err)

	rec := a.do(t, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
