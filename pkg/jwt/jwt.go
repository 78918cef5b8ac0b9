package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Propósitos de token. Un token de restablecimiento nunca sirve como token de acceso y viceversa.
const (
	PurposeAccess        = "access"
	PurposePasswordReset = "password_reset"
)

// ErrWrongPurpose se devuelve cuando el token es válido pero fue emitido para otro uso.
var ErrWrongPurpose = errors.New("jwt: propósito de token incorrecto")

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
type Claims struct {
	jwt.RegisteredClaims
	UserID  string `json:"user_id"`
	Role    string `json:"role,omitempty"` // "admin" | "employee" | "customer"
	Purpose string `json:"purpose"`
}

// Generate genera un token de acceso firmado que incluye userID y role.
func Generate(secret, userID, role, issuer string, ttl time.Duration) (string, error) {
	return sign(secret, issuer, ttl, Claims{UserID: userID, Role: role, Purpose: PurposeAccess})
}

// GenerateReset genera un token de restablecimiento de contraseña ligado al usuario.
func GenerateReset(secret, userID, issuer string, ttl time.Duration) (string, error) {
	return sign(secret, issuer, ttl, Claims{UserID: userID, Purpose: PurposePasswordReset})
}

func sign(secret, issuer string, ttl time.Duration, claims Claims) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida un token de acceso y devuelve userID y role.
// Retorna error si el token es inválido, expirado, tiene firma incorrecta o es de otro propósito.
func Parse(secret, tokenString string) (userID, role string, err error) {
	claims, err := parse(secret, tokenString, PurposeAccess)
	if err != nil {
		return "", "", err
	}
	return claims.UserID, claims.Role, nil
}

// ParseReset valida un token de restablecimiento y devuelve el userID.
func ParseReset(secret, tokenString string) (string, error) {
	claims, err := parse(secret, tokenString, PurposePasswordReset)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

func parse(secret, tokenString, purpose string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Purpose != purpose {
		return nil, ErrWrongPurpose
	}
	return claims, nil
}
