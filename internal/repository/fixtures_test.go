package repository

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bigkaa/swift-monitor/internal/database"
	"github.com/bigkaa/swift-monitor/internal/domain/model"
)

var testDBSeq atomic.Int64

// newTestStore открывает отдельную in-memory базу SQLite со схемой и справочниками.
func newTestStore(t *testing.T) (*gorm.DB, Gateway) {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	store, err := database.OpenSQLite(dsn, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("OpenSQLite() вернул ошибку: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.AutoMigrate(); err != nil {
		t.Fatalf("AutoMigrate() вернул ошибку: %v", err)
	}
	return store.DB(), NewGormGateway(store.DB())
}

func intPtr(v int) *int { return &v }

// newTx создаёт исходящую транзакцию pacs.008 в состоянии state.
func newTx(id int64, at time.Time, state int) database.Transaction {
	return database.Transaction{
		ID:        id,
		MsgID:     strPtr(fmt.Sprintf("MSG-%05d", id)),
		Type:      strPtr("pacs.008.001.08"),
		Direction: intPtr(1),
		State:     intPtr(state),
		InitTime:  at.UTC(),
		FileName:  strPtr(fmt.Sprintf("out_%d.xml", id)),
		Reference: strPtr(fmt.Sprintf("REF%d", id)),
	}
}

// newMessage создаёт сообщение, связанное с транзакцией queryID.
func newMessage(id, queryID int64, status, payer, receiver string) database.Message {
	return database.Message{
		ID:       id,
		QueryID:  queryID,
		Status:   strPtr(status),
		Amount:   decimal.NewNullDecimal(decimal.RequireFromString("1500.25")),
		Currency: strPtr("EUR"),
		Payer:    strPtr(payer),
		Receiver: strPtr(receiver),
	}
}

// insertTxs сохраняет транзакции пачками.
func insertTxs(t *testing.T, db *gorm.DB, txs []database.Transaction) {
	t.Helper()
	if err := db.CreateInBatches(&txs, 500).Error; err != nil {
		t.Fatalf("ошибка вставки транзакций: %v", err)
	}
}

func insertMessages(t *testing.T, db *gorm.DB, msgs ...database.Message) {
	t.Helper()
	if err := db.Create(&msgs).Error; err != nil {
		t.Fatalf("ошибка вставки сообщений: %v", err)
	}
}

// recordIDs возвращает id записей в порядке выдачи.
func recordIDs(t *testing.T, records []model.Record) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(records))
	for _, r := range records {
		id, err := asInt64(r["id"])
		if err != nil {
			t.Fatalf("ошибка чтения id: %v", err)
		}
		ids = append(ids, id)
	}
	return ids
}
