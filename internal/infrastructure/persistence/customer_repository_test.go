package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/shared"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockCustomerRepository creates a GormCustomerRepository with a mocked SQL connection
func newMockCustomerRepository(t *testing.T) (*GormCustomerRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormCustomerRepository(gormDB), mock, mockDB
}

func customerRows(id int64, name, email string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "created_at", "created_by", "name", "email", "address_id"}).
		AddRow(id, time.Now().UTC(), shared.SystemActor, name, email, int64(0))
}

func TestGormCustomerRepository_FindByID(t *testing.T) {
	t.Run("finds existing customer", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1 AND "customers"\."deleted_at" IS NULL ORDER BY .* LIMIT .*`).
			WithArgs(int64(7), 1).
			WillReturnRows(customerRows(7, "Acme", "ops@acme.test"))

		customer, err := repo.FindByID(context.Background(), 7)

		assert.NoError(t, err)
		assert.NotNil(t, customer)
		assert.Equal(t, int64(7), customer.ID)
		assert.Equal(t, "Acme", customer.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing customer", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1`).
			WithArgs(int64(99), 1).
			WillReturnError(gorm.ErrRecordNotFound)

		customer, err := repo.FindByID(context.Background(), 99)

		assert.Nil(t, customer)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("preloads address when requested", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1`).
			WithArgs(int64(7), 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "address_id"}).
				AddRow(int64(7), "Acme", "ops@acme.test", int64(3)))
		mock.ExpectQuery(`SELECT \* FROM "addresses" WHERE "addresses"\."id" = \$1`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "street", "city", "state", "zip_code", "country"}).
				AddRow(int64(3), "1 Dock Rd", "Leeds", "WY", "LS1", "GB"))

		customer, err := repo.FindByID(context.Background(), 7, shared.LoadAddress)

		assert.NoError(t, err)
		require.NotNil(t, customer)
		require.NotNil(t, customer.Address)
		assert.Equal(t, "Leeds", customer.Address.City)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_FindByEmailFold(t *testing.T) {
	t.Run("trims and folds both sides of the match", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE lower\(btrim\(email\)\) = \$1`).
			WithArgs("ops@acme.test", 1).
			WillReturnRows(customerRows(7, "Acme", "Ops@Acme.Test"))

		customer, err := repo.FindByEmailFold(context.Background(), "  Ops@Acme.Test ")

		assert.NoError(t, err)
		assert.NotNil(t, customer)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown email", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE lower\(btrim\(email\)\) = \$1`).
			WithArgs("nobody@acme.test", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		customer, err := repo.FindByEmailFold(context.Background(), "nobody@acme.test")

		assert.Nil(t, customer)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_FindByEmailFoldExcluding(t *testing.T) {
	t.Run("excludes the given id", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE \(lower\(btrim\(email\)\) = \$1 AND id <> \$2\)`).
			WithArgs("ops@acme.test", int64(7), 1).
			WillReturnError(gorm.ErrRecordNotFound)

		customer, err := repo.FindByEmailFoldExcluding(context.Background(), "ops@acme.test", 7)

		assert.Nil(t, customer)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_FindAll(t *testing.T) {
	t.Run("returns all customers ordered by id", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE "customers"\."deleted_at" IS NULL ORDER BY id ASC`).
			WillReturnRows(customerRows(1, "Acme", "ops@acme.test").
				AddRow(int64(2), time.Now().UTC(), shared.SystemActor, "Globex", "hq@globex.test", int64(0)))

		customers, err := repo.FindAll(context.Background())

		assert.NoError(t, err)
		assert.Len(t, customers, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_Delete(t *testing.T) {
	t.Run("soft-deletes existing customer", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "customers" SET "deleted_at"=\$1 WHERE id = \$2`).
			WithArgs(sqlmock.AnyArg(), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), 7)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when nothing deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "customers" SET "deleted_at"=\$1 WHERE id = \$2`).
			WithArgs(sqlmock.AnyArg(), int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), 99)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements CustomerRepository interface", func(t *testing.T) {
		repo, _, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		var _ partner.CustomerRepository = repo
	})
}
