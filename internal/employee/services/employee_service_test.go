package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mvcastillo/healthoffice-backend/internal/common/apperr"
)

func newMock(t *testing.T) (*EmployeeService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewEmployeeService(db), mock
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	svc, mock := newMock(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, surname").
		WithArgs("lsantos").
		WillReturnRows(sqlmock.NewRows([]string{"id", "surname", "given_name", "role", "username", "password"}).
			AddRow(7, "Santos", "Liza", "doctor", "lsantos", string(hashed)))

	token, emp, err := svc.Login("lsantos", "s3cretpass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(7), emp.ID)
	assert.Equal(t, "Santos, Liza", emp.DisplayName())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	svc, mock := newMock(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, surname").
		WillReturnRows(sqlmock.NewRows([]string{"id", "surname", "given_name", "role", "username", "password"}).
			AddRow(7, "Santos", "Liza", "doctor", "lsantos", string(hashed)))

	_, _, err = svc.Login("lsantos", "wrong")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestLoginUnknownUsername(t *testing.T) {
	svc, mock := newMock(t)

	mock.ExpectQuery("SELECT id, surname").
		WillReturnRows(sqlmock.NewRows([]string{"id", "surname", "given_name", "role", "username", "password"}))

	_, _, err := svc.Login("ghost", "whatever")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestResetPassword(t *testing.T) {
	svc, mock := newMock(t)

	mock.ExpectExec("UPDATE employees SET password").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.ResetPassword(7, "longenough"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetPasswordTooShort(t *testing.T) {
	svc, _ := newMock(t)

	err := svc.ResetPassword(7, "short")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestResetPasswordUnknownEmployee(t *testing.T) {
	svc, mock := newMock(t)

	mock.ExpectExec("UPDATE employees SET password").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.ResetPassword(404, "longenough")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
