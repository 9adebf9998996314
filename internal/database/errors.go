package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sijms/go-ora/v2/network"
)

const (
	oraUniqueViolation = 1
	oraNameInUse       = 955
	pgUniqueViolation  = "23505"
)

// IsUniqueViolation reports whether err is a unique-constraint violation
// from either supported engine.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return isOracleError(err, oraUniqueViolation)
}

func isOracleError(err error, code int) bool {
	var oraErr *network.OracleError
	if errors.As(err, &oraErr) {
		return oraErr.ErrCode == code
	}
	return strings.Contains(err.Error(), fmt.Sprintf("ORA-%05d", code))
}
