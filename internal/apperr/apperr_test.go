package apperr_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"airport-booking/internal/apperr"
)

func TestFromDB_Nil(t *testing.T) {
	assert.NoError(t, apperr.FromDB(nil, "ticket"))
}

func TestFromDB_NoRows(t *testing.T) {
	err := apperr.FromDB(sql.ErrNoRows, "order")
	assert.True(t, apperr.IsNotFound(err))
}

func TestFromDB_PostgresCodes(t *testing.T) {
	unique := &pq.Error{Code: "23505", Detail: "Key (flight_id, row, seat) already exists."}
	assert.True(t, apperr.IsConflict(apperr.FromDB(unique, "ticket")))

	fk := &pq.Error{Code: "23503"}
	assert.True(t, apperr.IsNotFound(apperr.FromDB(fk, "flight")))

	check := &pq.Error{Code: "23514"}
	assert.True(t, apperr.IsValidation(apperr.FromDB(check, "airplane")))

	other := &pq.Error{Code: "57014"}
	assert.False(t, apperr.IsConflict(apperr.FromDB(other, "ticket")))
}

func TestFromDB_SQLiteMessages(t *testing.T) {
	unique := errors.New("constraint failed: UNIQUE constraint failed: tickets.flight_id, tickets.row, tickets.seat")
	assert.True(t, apperr.IsConflict(apperr.FromDB(unique, "ticket")))

	fk := errors.New("constraint failed: FOREIGN KEY constraint failed")
	assert.True(t, apperr.IsNotFound(apperr.FromDB(fk, "flight")))
}

func TestFromDB_Passthrough(t *testing.T) {
	underlying := errors.New("connection refused")
	err := apperr.FromDB(fmt.Errorf("insert: %w", underlying), "ticket")
	assert.ErrorIs(t, err, underlying)
}

func TestValidationError_CollectsFields(t *testing.T) {
	err := &apperr.ValidationError{Fields: map[string]string{
		"row": "row number must be in available range: (1, rows): (1, 10)",
	}}
	assert.Contains(t, err.Error(), "row")
	assert.True(t, apperr.IsValidation(err))
}
