// Package memory implementa los puertos de persistencia en memoria de proceso.
// Se usa con STORAGE_DRIVER=memory y como fixture en los tests.
package memory

import (
	"sync"

	"github.com/jhoicas/autoventas-api/internal/domain/entity"
)

// Store guarda usuarios y ventas bajo un único mutex; cada operación es atómica.
type Store struct {
	mu        sync.RWMutex
	users     map[string]*entity.User
	userOrder []string
	sales     map[string]*entity.VehicleSale
	saleOrder []string
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		users: make(map[string]*entity.User),
		sales: make(map[string]*entity.VehicleSale),
	}
}

// Users devuelve el repositorio de usuarios sobre este almacén.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Sales devuelve el repositorio de ventas sobre este almacén.
func (s *Store) Sales() *VehicleSaleRepository { return &VehicleSaleRepository{s: s} }

// userRef resuelve la referencia resumida; exige el lock tomado.
func (s *Store) userRef(id string) *entity.UserRef {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return &entity.UserRef{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
