package http_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autoventas-api/internal/domain/entity"
)

// ── Escenario alice: registro → aprobación → login → suspensión ─────────────

func TestRouter_EscenarioAlice(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "admin", entity.RoleAdmin, entity.UserStatusActive, nil)
	adminToken := env.login(t, "admin@example.com")

	resp := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Alice", "email": "alice@example.com", "password": testPassword, "phone": testPhone,
		"role": "admin",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "User registered successfully. Awaiting admin approval.", msgOf(t, resp))

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "alice@example.com", "password": testPassword})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Your account is awaiting admin approval.", msgOf(t, resp))

	alice, err := env.store.Users().GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, alice)
	assert.Equal(t, entity.RoleCustomer, alice.Role, "el role del cuerpo se ignora")

	resp = env.do(t, http.MethodPut, "/api/users/approve/"+alice.ID, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "User approved successfully", msgOf(t, resp))

	aliceToken := env.login(t, "alice@example.com")
	resp = env.do(t, http.MethodGet, "/api/vehiclesales/customer", aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPut, "/api/users/suspend/"+alice.ID, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "User suspended successfully", msgOf(t, resp))

	// El token sigue vigente pero el gate relee el estado.
	resp = env.do(t, http.MethodGet, "/api/vehiclesales/customer", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Your account is suspended. Contact admin.", msgOf(t, resp))

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "alice@example.com", "password": testPassword})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Your account has been suspended.", msgOf(t, resp))
}

// ── Auth público ────────────────────────────────────────────────────────────

func TestRouter_RegistroInvalido_DevuelveErrores(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "", "email": "no-es-email", "password": "123", "phone": testPhone,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Errors []struct {
			Param string `json:"param"`
			Msg   string `json:"msg"`
		} `json:"errors"`
	}
	decode(t, resp, &body)
	params := make([]string, 0, len(body.Errors))
	for _, e := range body.Errors {
		params = append(params, e.Param)
	}
	assert.ElementsMatch(t, []string{"name", "email", "password"}, params)
}

func TestRouter_RegistroDuplicado_Retorna400(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "bob", entity.RoleCustomer, entity.UserStatusActive, nil)

	resp := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Bob", "email": "BOB@example.com", "password": testPassword, "phone": testPhone,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User already exists", msgOf(t, resp))
}

func TestRouter_Login_Errores(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "bob", entity.RoleCustomer, entity.UserStatusActive, nil)

	resp := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "nadie@example.com", "password": testPassword})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", msgOf(t, resp))

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "bob@example.com", "password": "incorrecta"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", msgOf(t, resp))
}

func TestRouter_RestablecerContrasena(t *testing.T) {
	env := newTestEnv(t)
	bob := env.seedUser(t, "bob", entity.RoleCustomer, entity.UserStatusActive, nil)

	resp := env.do(t, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{"email": "bob@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Password reset link has been sent to your email", msgOf(t, resp))
	require.Len(t, env.mailer.sent, 1)
	assert.Equal(t, bob.ID, env.mailer.sent[0].userID)
	token := env.mailer.sent[0].token

	resp = env.do(t, http.MethodPost, "/api/auth/reset-password/"+token, "", map[string]string{"password": "nueva-clave"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Password has been reset successfully", msgOf(t, resp))

	// El token se consume: un segundo uso falla.
	resp = env.do(t, http.MethodPost, "/api/auth/reset-password/"+token, "", map[string]string{"password": "otra-clave"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Token is invalid or has expired", msgOf(t, resp))

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "bob@example.com", "password": "nueva-clave"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ── Directorio de usuarios ──────────────────────────────────────────────────

func TestRouter_EmployeeCreaCliente_NoOtroRol(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "emp", entity.RoleEmployee, entity.UserStatusActive, nil)
	token := env.login(t, "emp@example.com")

	resp := env.do(t, http.MethodPost, "/api/users/create", token, map[string]string{
		"name": "Carl", "email": "carl@example.com", "password": testPassword, "role": "admin", "phone": testPhone,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid role specified", msgOf(t, resp))

	resp = env.do(t, http.MethodPost, "/api/users/create", token, map[string]string{
		"name": "Carl", "email": "carl@example.com", "password": testPassword, "role": "customer", "phone": testPhone,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created struct {
		Msg  string `json:"msg"`
		User struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"user"`
	}
	decode(t, resp, &created)
	assert.Equal(t, "User created successfully. Please securely share the login credentials.", created.Msg)
	assert.Equal(t, "active", created.User.Status)

	// Solo admin borra usuarios.
	resp = env.do(t, http.MethodDelete, "/api/users/"+created.User.ID, token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Access denied", msgOf(t, resp))
}

func TestRouter_ClienteNoListaUsuarios(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "cust", entity.RoleCustomer, entity.UserStatusActive, nil)
	token := env.login(t, "cust@example.com")

	resp := env.do(t, http.MethodGet, "/api/users", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_AdminBorraUsuario(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "admin", entity.RoleAdmin, entity.UserStatusActive, nil)
	victim := env.seedUser(t, "victim", entity.RoleCustomer, entity.UserStatusActive, nil)
	token := env.login(t, "admin@example.com")

	resp := env.do(t, http.MethodDelete, "/api/users/"+victim.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "User deleted", msgOf(t, resp))

	resp = env.do(t, http.MethodDelete, "/api/users/"+victim.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", msgOf(t, resp))
}

func TestRouter_EmployeeEditandoCuentaAjenaRecibe404(t *testing.T) {
	env := newTestEnv(t)
	empE := env.seedUser(t, "empe", entity.RoleEmployee, entity.UserStatusActive, nil)
	empF := env.seedUser(t, "empf", entity.RoleEmployee, entity.UserStatusActive, nil)
	env.seedUser(t, "custe", entity.RoleCustomer, entity.UserStatusActive, &empE.ID)
	custF := env.seedUser(t, "custf", entity.RoleCustomer, entity.UserStatusActive, &empF.ID)
	token := env.login(t, "empe@example.com")

	resp := env.do(t, http.MethodPut, "/api/users/"+custF.ID, token, map[string]string{"email": "custe@example.com"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", msgOf(t, resp))

	resp = env.do(t, http.MethodPut, "/api/users/"+custF.ID, token, map[string]string{"role": "admin"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_DegradarEmployeeConClientesFalla(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "admin", entity.RoleAdmin, entity.UserStatusActive, nil)
	emp := env.seedUser(t, "emp", entity.RoleEmployee, entity.UserStatusActive, nil)
	env.seedUser(t, "cust", entity.RoleCustomer, entity.UserStatusActive, &emp.ID)
	token := env.login(t, "admin@example.com")

	resp := env.do(t, http.MethodPut, "/api/users/"+emp.ID, token, map[string]string{"role": "customer"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body struct {
		Errors []struct {
			Param string `json:"param"`
			Msg   string `json:"msg"`
		} `json:"errors"`
	}
	decode(t, resp, &body)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "role", body.Errors[0].Param)

	// el employee sigue operando como personal
	resp = env.do(t, http.MethodGet, "/api/users", env.login(t, "emp@example.com"), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ── Libro de ventas ─────────────────────────────────────────────────────────

func saleBody(customerID string) map[string]interface{} {
	return map[string]interface{}{
		"vehicleDetails": map[string]interface{}{
			"make": "Toyota", "model": "Corolla", "year": 2022, "vin": "1HGCM82633A004352", "price": 25000,
		},
		"customer": customerID,
		"paymentDetails": map[string]interface{}{
			"amountPaid": 1000, "currency": "USD",
		},
	}
}

func TestRouter_VentaCompleta(t *testing.T) {
	env := newTestEnv(t)
	emp := env.seedUser(t, "emp", entity.RoleEmployee, entity.UserStatusActive, nil)
	cust := env.seedUser(t, "cust", entity.RoleCustomer, entity.UserStatusActive, &emp.ID)
	empToken := env.login(t, "emp@example.com")
	custToken := env.login(t, "cust@example.com")

	resp := env.do(t, http.MethodPost, "/api/vehiclesales/create", empToken, saleBody(cust.ID))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sale struct {
		ID             string `json:"id"`
		Status         string `json:"status"`
		PaymentDetails struct {
			PaymentStatus string `json:"paymentStatus"`
			Currency      string `json:"currency"`
		} `json:"paymentDetails"`
		Customer struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"customer"`
		Seller struct {
			ID string `json:"id"`
		} `json:"seller"`
	}
	decode(t, resp, &sale)
	assert.Equal(t, "pending", sale.Status)
	assert.Equal(t, "Pending", sale.PaymentDetails.PaymentStatus)
	assert.Equal(t, "USD", sale.PaymentDetails.Currency)
	assert.Equal(t, cust.ID, sale.Customer.ID)
	assert.Equal(t, "cust", sale.Customer.Name)
	assert.Equal(t, emp.ID, sale.Seller.ID)

	// /customer no se confunde con /:userId.
	resp = env.do(t, http.MethodGet, "/api/vehiclesales/customer", custToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mine []struct {
		ID string `json:"id"`
	}
	decode(t, resp, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, sale.ID, mine[0].ID)

	resp = env.do(t, http.MethodGet, "/api/vehiclesales/"+cust.ID, custToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.do(t, http.MethodGet, "/api/vehiclesales/"+emp.ID, custToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodPut, "/api/vehiclesales/"+sale.ID, empToken, map[string]interface{}{
		"status": "shipped",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/vehiclesales/"+sale.ID+"/receipt", custToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	pdf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))

	// Solo admin borra ventas.
	resp = env.do(t, http.MethodDelete, "/api/vehiclesales/"+sale.ID, empToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_VentaClienteDesconocido_Retorna404(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "admin", entity.RoleAdmin, entity.UserStatusActive, nil)
	token := env.login(t, "admin@example.com")

	resp := env.do(t, http.MethodPost, "/api/vehiclesales/create", token, saleBody("no-existe"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Customer not found", msgOf(t, resp))

	resp = env.do(t, http.MethodGet, "/api/vehiclesales", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []interface{}
	decode(t, resp, &list)
	assert.Empty(t, list)
}

func TestRouter_VentaClienteAjeno_Retorna403(t *testing.T) {
	env := newTestEnv(t)
	empE := env.seedUser(t, "empe", entity.RoleEmployee, entity.UserStatusActive, nil)
	env.seedUser(t, "empf", entity.RoleEmployee, entity.UserStatusActive, nil)
	cust := env.seedUser(t, "cust", entity.RoleCustomer, entity.UserStatusActive, &empE.ID)
	tokenF := env.login(t, "empf@example.com")

	resp := env.do(t, http.MethodPost, "/api/vehiclesales/create", tokenF, saleBody(cust.ID))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Access denied: Unauthorized customer", msgOf(t, resp))
}

func TestRouter_VentaInexistente_Retorna404(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "admin", entity.RoleAdmin, entity.UserStatusActive, nil)
	token := env.login(t, "admin@example.com")

	resp := env.do(t, http.MethodPut, "/api/vehiclesales/no-existe", token, map[string]interface{}{"status": "shipped"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Sale not found", msgOf(t, resp))

	resp = env.do(t, http.MethodDelete, "/api/vehiclesales/no-existe", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Sale not found", msgOf(t, resp))
}
