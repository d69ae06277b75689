package Models

import (
	"gorm.io/gorm"
)

// MaxBatchOps is the most operations committed in one transaction. Multi-row
// rewrites (voucher edits, trip-derived transactions, attendance imports)
// accumulate operations and flush every time the counter reaches this limit.
const MaxBatchOps = 499

// BatchOp is a single queued write executed inside the flush transaction.
type BatchOp func(tx *gorm.DB) error

// BatchWriter is a bounded transactional write buffer: queue operations,
// flush automatically at MaxBatchOps, call Flush once at the end for the
// remainder. Each flush is one transaction.
type BatchWriter struct {
	db      *gorm.DB
	limit   int
	ops     []BatchOp
	flushes int

	// overridable for tests
	commit func(ops []BatchOp) error
}

func NewBatchWriter(db *gorm.DB) *BatchWriter {
	w := &BatchWriter{db: db, limit: MaxBatchOps}
	w.commit = w.commitTx
	return w
}

func (w *BatchWriter) commitTx(ops []BatchOp) error {
	tx := w.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	for _, op := range ops {
		if err := op(tx); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}

// Queue adds one operation, flushing first if the buffer is full.
func (w *BatchWriter) Queue(op BatchOp) error {
	w.ops = append(w.ops, op)
	if len(w.ops) >= w.limit {
		return w.Flush()
	}
	return nil
}

// Create queues an insert of value.
func (w *BatchWriter) Create(value interface{}) error {
	return w.Queue(func(tx *gorm.DB) error {
		return tx.Create(value).Error
	})
}

// Delete queues a delete of value.
func (w *BatchWriter) Delete(value interface{}) error {
	return w.Queue(func(tx *gorm.DB) error {
		return tx.Delete(value).Error
	})
}

// Flush commits everything queued so far. Safe to call with an empty buffer.
func (w *BatchWriter) Flush() error {
	if len(w.ops) == 0 {
		return nil
	}
	ops := w.ops
	w.ops = nil
	if err := w.commit(ops); err != nil {
		return err
	}
	w.flushes++
	return nil
}

// Pending reports how many operations are queued but not yet committed.
func (w *BatchWriter) Pending() int {
	return len(w.ops)
}
