package pgerr_test

import (
	"errors"
	"fmt"
	"testing"

	"fulfillment/internal/adapters/out/postgres/pgerr"
	"fulfillment/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerr.UniqueViolation})
	other := &pgconn.PgError{Code: pgerr.ForeignKeyViolation}
	plain := errors.New("connection reset")

	assert.NoError(t, pgerr.Translate(nil, "box", "taken"))
	assert.Equal(t, errs.KindConflict, errs.KindOf(pgerr.Translate(unique, "box", "number 7 is taken")))
	assert.Equal(t, errs.KindConflict, errs.KindOf(pgerr.Translate(gorm.ErrDuplicatedKey, "box", "taken")))
	assert.Same(t, other, pgerr.Translate(other, "box", "taken"))
	assert.Equal(t, plain, pgerr.Translate(plain, "box", "taken"))
}

func TestNotFound(t *testing.T) {
	err := pgerr.NotFound(gorm.ErrRecordNotFound, "cart", "42")

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, errs.KindInternal, errs.KindOf(pgerr.NotFound(errors.New("timeout"), "cart", "42")))
}
