package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/aurexia-api/internal/domain"
)

func TestErrorf_MensajeLimpioYClase(t *testing.T) {
	err := domain.Errorf(domain.ErrNotFound, "Travel sheet not found")
	assert.Equal(t, "Travel sheet not found", err.Error())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.False(t, errors.Is(err, domain.ErrInvalidInput))

	wrapped := fmt.Errorf("create inspection: %w", err)
	assert.True(t, errors.Is(wrapped, domain.ErrNotFound))

	var de *domain.Error
	assert.True(t, errors.As(wrapped, &de))
	assert.Equal(t, "Travel sheet not found", de.Message)
}
