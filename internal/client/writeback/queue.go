package writeback

import (
	"fmt"

	"github.com/iudanet/goawx/internal/models"
)

// Queue - упорядоченный набор записей, ожидающих commit.
// Запись может состоять не более чем в одной очереди.
// Queue is not safe for concurrent use.
type Queue struct {
	records []*models.Record
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) check(rec *models.Record) error {
	if rec == nil || rec.Schema() == nil {
		return ErrInvalidModel
	}
	if err := rec.Attach(q); err != nil {
		return fmt.Errorf("enqueue %s: %w", describe(rec), err)
	}
	return nil
}

// Enqueue appends rec. A record already in this queue keeps its position.
func (q *Queue) Enqueue(rec *models.Record) error {
	if rec != nil && rec.Attached(q) {
		return nil
	}
	if err := q.check(rec); err != nil {
		return err
	}
	q.records = append(q.records, rec)
	return nil
}

// EnqueueAll appends every record or none of them.
func (q *Queue) EnqueueAll(recs []*models.Record) error {
	added := make([]*models.Record, 0, len(recs))
	for _, rec := range recs {
		if rec != nil && rec.Attached(q) {
			continue
		}
		if err := q.check(rec); err != nil {
			for _, a := range added {
				a.Detach(q)
			}
			return err
		}
		added = append(added, rec)
	}
	q.records = append(q.records, added...)
	return nil
}

// MarkAndEnqueue marks rec deleted and enqueues it.
// Nothing is marked when the record cannot be enqueued.
func (q *Queue) MarkAndEnqueue(rec *models.Record) error {
	if rec == nil || rec.Schema() == nil {
		return ErrInvalidModel
	}
	if !rec.Attached(q) {
		if err := q.check(rec); err != nil {
			return err
		}
		q.records = append(q.records, rec)
	}
	rec.MarkDeleted()
	return nil
}

// Len returns the number of queued records.
func (q *Queue) Len() int {
	return len(q.records)
}

// Records returns the queued records in commit order.
func (q *Queue) Records() []*models.Record {
	return append([]*models.Record(nil), q.records...)
}

// Clear empties the queue and releases its records.
func (q *Queue) Clear() {
	q.drop(len(q.records))
}

// drop убирает первые n записей
func (q *Queue) drop(n int) {
	for _, rec := range q.records[:n] {
		rec.Detach(q)
	}
	q.records = append([]*models.Record(nil), q.records[n:]...)
}
