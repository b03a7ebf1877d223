package repository

import (
	"context"

	"github.com/jhoicas/aurexia-api/internal/domain/entity"
)

// CustomerRepository lectura de clientes (el alta es externa).
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
}

// PartNumberRepository lectura de números de parte y su ruta.
type PartNumberRepository interface {
	GetByID(ctx context.Context, id string) (*entity.PartNumber, error)
	// ListRouting pasos de la ruta ordenados por secuencia, con el centro de trabajo del proceso.
	ListRouting(ctx context.Context, partNumberID string) ([]entity.PartRouting, error)
}
