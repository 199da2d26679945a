package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Status(Validationf("bad quantity")))
	assert.Equal(t, http.StatusNotFound, Status(NotFoundf("product %d", 9)))
	assert.Equal(t, http.StatusConflict, Status(Conflictf("still referenced")))
	assert.Equal(t, http.StatusUnauthorized, Status(ErrUnauthorized))
	assert.Equal(t, http.StatusForbidden, Status(ErrForbidden))
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("disk on fire")))
}

func TestWrappedErrorsKeepTheirKind(t *testing.T) {
	err := fmt.Errorf("creating sale: %w", NotFoundf("product %d", 9))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, http.StatusNotFound, Status(err))
}
