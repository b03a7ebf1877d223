package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/aurexia-api/internal/domain/entity"
	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo lectura de clientes (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// GetByID obtiene un cliente por ID; nil si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := `
		SELECT id, code, name, address, contact_person, phone, email, delivery_frequency, is_active, created_at
		FROM customers WHERE id = $1`
	var c entity.Customer
	var address, contact, phone, email, freq *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Code, &c.Name, &address, &contact, &phone, &email, &freq, &c.IsActive, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	c.Address = derefString(address)
	c.ContactPerson = derefString(contact)
	c.Phone = derefString(phone)
	c.Email = derefString(email)
	c.DeliveryFrequency = derefString(freq)
	return &c, nil
}
