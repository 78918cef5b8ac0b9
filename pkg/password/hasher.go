package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher hashea y verifica contraseñas con bcrypt (hash salado de una vía).
type Hasher struct {
	cost int
}

// NewHasher construye el hasher. Un cost fuera del rango de bcrypt usa bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash devuelve el hash bcrypt de la contraseña.
func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Check indica si la contraseña corresponde al hash.
func (h *Hasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
