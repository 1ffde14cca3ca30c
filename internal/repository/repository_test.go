package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/Behyna/collect-gateway/internal/model"
	"github.com/Behyna/collect-gateway/internal/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repository.AutoMigrate(db))

	return db
}

var baseTime = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newTransaction(id, orderID string, createdAt time.Time) *model.Transaction {
	return &model.Transaction{
		TransactionID:   id,
		OrderID:         orderID,
		Amount:          "10.00",
		Currency:        "GHS",
		PayerNumber:     "233241234567",
		AccountNumber:   model.AccountNumberUnavailable,
		Narration:       "fees",
		FinalStatus:     model.FinalStatusSuccess,
		ResponseCode:    model.ResponseCodeAccepted,
		ResponseMessage: model.FinalStatusSuccessMessage,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
}

func TestTransactionRepository_Lookup(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTransactionRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, newTransaction("CCT1", "ref-1", baseTime)))
	require.NoError(t, repo.Create(ctx, newTransaction("CCT2", "ref-1", baseTime.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, newTransaction("CCT3", "ref-2", baseTime.Add(2*time.Hour))))

	t.Run("exists by order id", func(t *testing.T) {
		exists, err := repo.ExistsByOrderID(ctx, "ref-1")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByOrderID(ctx, "ref-9")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("latest record wins for a reused order id", func(t *testing.T) {
		tx, err := repo.GetLatestByOrderID(ctx, "ref-1")

		require.NoError(t, err)
		assert.Equal(t, "CCT2", tx.TransactionID)
	})

	t.Run("unknown order id", func(t *testing.T) {
		_, err := repo.GetLatestByOrderID(ctx, "ref-9")

		assert.ErrorIs(t, err, repository.ErrTransactionNotFound)
	})

	t.Run("by id", func(t *testing.T) {
		tx, err := repo.GetByID(ctx, "CCT3")
		require.NoError(t, err)
		assert.Equal(t, "ref-2", tx.OrderID)
		assert.False(t, tx.CallbackSent)
		assert.False(t, tx.Published)

		_, err = repo.GetByID(ctx, "CCT9")
		assert.ErrorIs(t, err, repository.ErrTransactionNotFound)
	})
}

func TestTransactionRepository_MarkCallbackSent(t *testing.T) {
	ctx := context.Background()

	t.Run("idempotent", func(t *testing.T) {
		repo := repository.NewTransactionRepository(newTestDB(t))
		require.NoError(t, repo.Create(ctx, newTransaction("CCT1", "ref-1", baseTime)))

		require.NoError(t, repo.MarkCallbackSent(ctx, "CCT1"))
		require.NoError(t, repo.MarkCallbackSent(ctx, "CCT1"))

		tx, err := repo.GetByID(ctx, "CCT1")
		require.NoError(t, err)
		assert.True(t, tx.CallbackSent)
	})

	t.Run("matched but unchanged row counts as success", func(t *testing.T) {
		db := newTestDB(t)
		repo := repository.NewTransactionRepository(db)
		require.NoError(t, repo.Create(ctx, newTransaction("CCT1", "ref-1", baseTime)))

		// Skip rows whose flag does not change, the way MySQL leaves them out of
		// the affected count.
		require.NoError(t, db.Exec(`CREATE TRIGGER skip_unchanged BEFORE UPDATE ON transactions
			WHEN OLD.callback_sent = NEW.callback_sent
			BEGIN SELECT RAISE(IGNORE); END`).Error)

		require.NoError(t, repo.MarkCallbackSent(ctx, "CCT1"))
		assert.NoError(t, repo.MarkCallbackSent(ctx, "CCT1"))
	})

	t.Run("unknown transaction", func(t *testing.T) {
		repo := repository.NewTransactionRepository(newTestDB(t))

		err := repo.MarkCallbackSent(ctx, "CCT9")

		assert.ErrorIs(t, err, repository.ErrTransactionNotFound)
	})
}

func TestTransactionRepository_Outbox(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTransactionRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, newTransaction("CCT3", "ref-3", baseTime.Add(2*time.Hour))))
	require.NoError(t, repo.Create(ctx, newTransaction("CCT1", "ref-1", baseTime)))
	require.NoError(t, repo.Create(ctx, newTransaction("CCT2", "ref-2", baseTime.Add(time.Hour))))

	pending, err := repo.FindUnpublished(ctx, 2)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "CCT1", pending[0].TransactionID)
	assert.Equal(t, "CCT2", pending[1].TransactionID)

	require.NoError(t, repo.MarkPublished(ctx, "CCT1", baseTime.Add(3*time.Hour)))

	pending, err = repo.FindUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "CCT2", pending[0].TransactionID)
	assert.Equal(t, "CCT3", pending[1].TransactionID)

	published, err := repo.GetByID(ctx, "CCT1")
	require.NoError(t, err)
	assert.True(t, published.Published)
	require.NotNil(t, published.PublishedAt)
	assert.True(t, published.PublishedAt.Equal(baseTime.Add(3*time.Hour)))
}

func TestCallbackRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repository.NewCallbackRepository(db)

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, repository.ErrCallbackNotFound)

	require.NoError(t, repo.Save(ctx, &model.CallbackRegistration{CallbackURL: "https://first/cb", UpdatedAt: baseTime}))
	require.NoError(t, repo.Save(ctx, &model.CallbackRegistration{CallbackURL: "https://second/cb", UpdatedAt: baseTime.Add(time.Minute)}))

	registration, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.CallbackRegistrationID, registration.ID)
	assert.Equal(t, "https://second/cb", registration.CallbackURL)

	var count int64
	require.NoError(t, db.Model(&model.CallbackRegistration{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTransactionUpdateRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repository.NewTransactionUpdateRepository(db)

	first := `{"order_id":"ref-1","status":"PENDING"}`
	second := `{"order_id":"ref-1","status":"PAID","transaction_id":12345678901234567891}`

	require.NoError(t, repo.Upsert(ctx, &model.TransactionUpdate{OrderID: "ref-1", Payload: datatypes.JSON(first), UpdatedAt: baseTime}))
	require.NoError(t, repo.Upsert(ctx, &model.TransactionUpdate{OrderID: "ref-1", Payload: datatypes.JSON(second), UpdatedAt: baseTime.Add(time.Minute)}))

	var stored []model.TransactionUpdate
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, second, string(stored[0].Payload))
}
