package service

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"schoolhub_backend/internals/features/finance/feeledger/model"
)

/* =========================================================
   MemoryStore — in-memory LedgerStore
========================================================= */

// MemoryStore keeps fee rows and payments in process memory. Used by tests
// and local development; mutual exclusion is a single mutex, which satisfies
// the per-student serialization contract trivially.
type MemoryStore struct {
	mu       sync.Mutex
	fees     map[uuid.UUID]model.StudentFee
	payments map[uuid.UUID][]model.FeePayment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		fees:     make(map[uuid.UUID]model.StudentFee),
		payments: make(map[uuid.UUID][]model.FeePayment),
	}
}

// Seed registers a fee row for a student (test/dev setup).
func (s *MemoryStore) Seed(fee model.StudentFee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fee.StudentFeeID == uuid.Nil {
		fee.StudentFeeID = uuid.New()
	}
	fee.Recompute()
	s.fees[fee.StudentFeeStudentID] = fee
}

func (s *MemoryStore) FeeFor(ctx context.Context, studentID uuid.UUID) (*model.StudentFee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fee, ok := s.fees[studentID]
	if !ok {
		return nil, ErrStudentNotFound
	}
	return &fee, nil
}

func (s *MemoryStore) PaymentsFor(ctx context.Context, studentID uuid.UUID) ([]model.FeePayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := append([]model.FeePayment(nil), s.payments[studentID]...)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].FeePaymentDate.After(list[j].FeePaymentDate)
	})
	return list, nil
}

func (s *MemoryStore) PaymentByID(ctx context.Context, studentID, paymentID uuid.UUID) (*model.FeePayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments[studentID] {
		if p.FeePaymentID == paymentID {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrStudentNotFound
}

func (s *MemoryStore) ApplyPayment(ctx context.Context, studentID uuid.UUID, mutate func(fee *model.StudentFee) (*model.FeePayment, error)) (*model.StudentFee, *model.FeePayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fee, ok := s.fees[studentID]
	if !ok {
		return nil, nil, ErrStudentNotFound
	}

	// mutate works on a copy; commit only on success (all-or-nothing)
	p, err := mutate(&fee)
	if err != nil {
		return nil, nil, err
	}
	if p.FeePaymentID == uuid.Nil {
		p.FeePaymentID = uuid.New()
	}
	s.fees[studentID] = fee
	s.payments[studentID] = append(s.payments[studentID], *p)
	return &fee, p, nil
}

func (s *MemoryStore) ApplyPromotion(ctx context.Context, studentID uuid.UUID, mutate func(fee *model.StudentFee) error) (*model.StudentFee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fee, ok := s.fees[studentID]
	if !ok {
		return nil, ErrStudentNotFound
	}
	if err := mutate(&fee); err != nil {
		return nil, err
	}
	s.fees[studentID] = fee
	return &fee, nil
}
