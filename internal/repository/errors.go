package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrDuplicado is returned when an insert or update violates a unique index.
	ErrDuplicado = errors.New("registro duplicado")
	// ErrReferenciaInvalida is returned when a foreign key points nowhere.
	ErrReferenciaInvalida = errors.New("referencia inválida")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// traducirError maps Postgres constraint errors onto repository sentinels.
func traducirError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicado
		case pgForeignKeyViolation:
			return ErrReferenciaInvalida
		}
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicado
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrReferenciaInvalida
	}
	return err
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
