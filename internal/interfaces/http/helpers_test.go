package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/autoventas-api/internal/application/auth"
	"github.com/jhoicas/autoventas-api/internal/application/sales"
	"github.com/jhoicas/autoventas-api/internal/application/usecase"
	"github.com/jhoicas/autoventas-api/internal/domain/entity"
	"github.com/jhoicas/autoventas-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/autoventas-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/autoventas-api/internal/interfaces/http"
	"github.com/jhoicas/autoventas-api/pkg/logger"
	"github.com/jhoicas/autoventas-api/pkg/password"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "autoventas-test"
	testPassword  = "secret123"
	testPhone     = "5551234567"
)

type recordedMail struct {
	userID, token string
}

type capturingMailer struct{ sent []recordedMail }

func (m *capturingMailer) SendPasswordReset(_ context.Context, user *entity.User, token string) error {
	m.sent = append(m.sent, recordedMail{userID: user.ID, token: token})
	return nil
}

type testEnv struct {
	app    *fiber.App
	store  *memory.Store
	hasher *password.Hasher
	mailer *capturingMailer
	authUC *auth.AuthUseCase
}

// newTestEnv arma la API completa sobre el almacén en memoria.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	hasher := password.NewHasher(bcrypt.MinCost)
	mailer := &capturingMailer{}
	log := logger.Nop()

	authUC := auth.NewAuthUseCase(store.Users(), hasher, mailer, auth.TokenConfig{
		Secret:    testJWTSecret,
		Issuer:    testIssuer,
		AccessTTL: time.Hour,
		ResetTTL:  time.Hour,
	}, "US")
	userUC := usecase.NewUserUseCase(store.Users(), store.Sales(), hasher, "US")
	saleUC := sales.NewSaleUseCase(store.Sales(), store.Users(), infrapdf.NewReceiptGenerator("Autoventas"))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{AuthUC: authUC, UserUC: userUC, SaleUC: saleUC, Log: log})
	return &testEnv{app: app, store: store, hasher: hasher, mailer: mailer, authUC: authUC}
}

// seedUser inserta un usuario directamente en el almacén.
func (e *testEnv) seedUser(t *testing.T, name string, role entity.Role, status entity.UserStatus, createdBy *string) *entity.User {
	t.Helper()
	hash, err := e.hasher.Hash(testPassword)
	require.NoError(t, err)
	now := time.Now().UTC()
	u := &entity.User{
		ID: uuid.NewString(), Name: name, Email: name + "@example.com", PasswordHash: hash,
		Role: role, Phone: testPhone, Status: status, CreatedBy: createdBy,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, e.store.Users().Create(context.Background(), u))
	return u
}

// login devuelve el token de acceso del usuario (falla el test si no es 200).
func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": testPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Token string `json:"token"`
	}
	decode(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

// do lanza una petición con cuerpo JSON opcional y token opcional.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(apphttp.TokenHeader, token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func msgOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Msg string `json:"msg"`
	}
	decode(t, resp, &body)
	return body.Msg
}
