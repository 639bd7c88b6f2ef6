// controllers/user_controller_test.go
package controllers

import (
	"errors"
	"fmt"
	"testing"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateKeyError(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.c' for key 'users.email'"}
	assert.True(t, isDuplicateKeyError(dup))
	assert.True(t, isDuplicateKeyError(fmt.Errorf("create user: %w", dup)))

	// sqlite phrases the same violation differently
	assert.True(t, isDuplicateKeyError(errors.New("UNIQUE constraint failed: users.email")))

	assert.False(t, isDuplicateKeyError(&mysql.MySQLError{Number: 1452, Message: "foreign key constraint fails"}))
	assert.False(t, isDuplicateKeyError(errors.New("connection refused")))
	assert.False(t, isDuplicateKeyError(nil))
}
