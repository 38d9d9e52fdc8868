package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"gardenshop/internal/domain"
)

type stubRepo struct {
	lines      []domain.CartLine
	loadErr    error
	saveErr    error
	clearErr   error
	saveCalls  int
	clearCalls int
}

func (s *stubRepo) Load(_ context.Context, _ string) ([]domain.CartLine, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out, nil
}

func (s *stubRepo) Save(_ context.Context, _ string, lines []domain.CartLine) error {
	s.saveCalls++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.lines = lines
	return nil
}

func (s *stubRepo) Clear(_ context.Context, _ string) error {
	s.clearCalls++
	if s.clearErr != nil {
		return s.clearErr
	}
	s.lines = nil
	return nil
}

type stubNotifier struct {
	shown []domain.CartLine
}

func (s *stubNotifier) Show(_ string, line domain.CartLine) {
	s.shown = append(s.shown, line)
}

func TestAddValidation(t *testing.T) {
	svc := New(&stubRepo{}, nil)

	_, err := svc.Add(context.Background(), "u1", AddInput{ProductID: "  "})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "productId" {
		t.Fatalf("expected productId validation error, got %v", err)
	}
}

func TestAddNewLineDefaultsQuantity(t *testing.T) {
	repo := &stubRepo{}
	notify := &stubNotifier{}
	svc := New(repo, notify)

	lines, err := svc.Add(context.Background(), "u1", AddInput{
		ProductID: "p1", Name: "Rose Seeds", Price: 49,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 1 || lines[0].Price != 49 {
		t.Fatalf("unexpected lines %+v", lines)
	}
	if len(notify.shown) != 1 || notify.shown[0].ProductID != "p1" {
		t.Fatalf("expected popup for p1, got %+v", notify.shown)
	}
}

func TestAddMergesExistingLine(t *testing.T) {
	// Scenario: productA qty 2 at 49, add productA qty 1 again.
	repo := &stubRepo{lines: []domain.CartLine{
		{ProductID: "productA", Name: "Rose Seeds", Price: 49, Quantity: 2},
	}}
	svc := New(repo, nil)

	lines, err := svc.Add(context.Background(), "u1", AddInput{
		ProductID: "productA", Name: "Rose Seeds", Price: 49, Quantity: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected single merged line, got %+v", lines)
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", lines[0].Quantity)
	}
	if total := domain.CartTotal(lines); total != 147 {
		t.Fatalf("expected total 147, got %d", total)
	}
}

func TestAddComboIsDistinctLine(t *testing.T) {
	repo := &stubRepo{lines: []domain.CartLine{
		{ProductID: "p1", Name: "Rose Seeds", Price: 49, Quantity: 1},
	}}
	svc := New(repo, nil)

	lines, err := svc.Add(context.Background(), "u1", AddInput{
		ProductID: "p1", IsCombo: true, Name: "Rose Combo", Price: 149,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected combo as separate line, got %+v", lines)
	}
}

func TestAddSnapshotsPriceAtAddTime(t *testing.T) {
	repo := &stubRepo{lines: []domain.CartLine{
		{ProductID: "p1", Name: "Rose Seeds", Price: 49, Quantity: 1},
	}}
	svc := New(repo, nil)

	// The catalog price changed; the in-cart line keeps its snapshot.
	lines, err := svc.Add(context.Background(), "u1", AddInput{
		ProductID: "p1", Name: "Rose Seeds", Price: 59, Quantity: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines[0].Price != 49 {
		t.Fatalf("expected snapshot price 49, got %d", lines[0].Price)
	}
}

func TestRemoveMissingLineIsNoop(t *testing.T) {
	repo := &stubRepo{lines: []domain.CartLine{
		{ProductID: "p1", Price: 49, Quantity: 1},
	}}
	svc := New(repo, nil)

	lines, err := svc.Remove(context.Background(), "u1", "absent", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 || repo.saveCalls != 0 {
		t.Fatalf("expected untouched cart, lines=%+v saves=%d", lines, repo.saveCalls)
	}
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	repo := &stubRepo{lines: []domain.CartLine{
		{ProductID: "p1", Price: 49, Quantity: 2},
		{ProductID: "p2", Price: 199, Quantity: 1},
	}}
	svc := New(repo, nil)

	lines, err := svc.UpdateQuantity(context.Background(), "u1", "p1", false, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 || lines[0].ProductID != "p2" {
		t.Fatalf("expected p1 removed, got %+v", lines)
	}
	for _, l := range lines {
		if l.Quantity < 1 {
			t.Fatalf("line with quantity < 1 survived: %+v", l)
		}
	}
}

func TestUpdateQuantityReplaces(t *testing.T) {
	repo := &stubRepo{lines: []domain.CartLine{
		{ProductID: "p1", Price: 49, Quantity: 2},
	}}
	svc := New(repo, nil)

	lines, err := svc.UpdateQuantity(context.Background(), "u1", "p1", false, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", lines[0].Quantity)
	}
	if total := domain.CartTotal(lines); total != 245 {
		t.Fatalf("expected total 245, got %d", total)
	}
}

func TestTotalAndCount(t *testing.T) {
	repo := &stubRepo{lines: []domain.CartLine{
		{ProductID: "p1", Price: 49, Quantity: 3},
		{ProductID: "p2", Price: 199, Quantity: 2},
	}}
	svc := New(repo, nil)

	total, err := svc.Total(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Total: %v", err)
	}
	if total != 49*3+199*2 {
		t.Fatalf("unexpected total %d", total)
	}

	count, err := svc.Count(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 5 {
		t.Fatalf("unexpected count %d", count)
	}
}

func TestClear(t *testing.T) {
	repo := &stubRepo{lines: []domain.CartLine{{ProductID: "p1", Price: 49, Quantity: 1}}}
	svc := New(repo, nil)

	if err := svc.Clear(context.Background(), "u1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if repo.clearCalls != 1 || len(repo.lines) != 0 {
		t.Fatalf("expected cleared cart, calls=%d lines=%+v", repo.clearCalls, repo.lines)
	}
}

func TestLockUser_MapShrinksWhenIdle(t *testing.T) {
	svc := New(&stubRepo{}, nil)

	for _, user := range []string{"u1", "u2", "u3"} {
		if _, err := svc.Add(context.Background(), user, AddInput{ProductID: "p1", Price: 49}); err != nil {
			t.Fatalf("Add for %s: %v", user, err)
		}
	}
	if err := svc.Clear(context.Background(), "u1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	svc.mu.Lock()
	n := len(svc.locks)
	svc.mu.Unlock()
	if n != 0 {
		t.Fatalf("expected no retained locks after mutations finished, got %d", n)
	}
}

func TestLockUser_SerializesWaiters(t *testing.T) {
	svc := New(&stubRepo{}, nil)

	unlock := svc.lockUser("u1")
	second := make(chan struct{})
	go func() {
		u := svc.lockUser("u1")
		u()
		close(second)
	}()

	select {
	case <-second:
		t.Fatal("second locker ran while first held the lock")
	case <-time.After(20 * time.Millisecond):
	}

	unlock()
	select {
	case <-second:
	case <-time.After(2 * time.Second):
		t.Fatal("second locker never ran after release")
	}

	svc.mu.Lock()
	n := len(svc.locks)
	svc.mu.Unlock()
	if n != 0 {
		t.Fatalf("expected lock map reaped, got %d entries", n)
	}
}

func TestSaveErrorLeavesNoNotification(t *testing.T) {
	repo := &stubRepo{saveErr: errors.New("boom")}
	notify := &stubNotifier{}
	svc := New(repo, notify)

	_, err := svc.Add(context.Background(), "u1", AddInput{ProductID: "p1", Price: 49})
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected save error, got %v", err)
	}
	if len(notify.shown) != 0 {
		t.Fatalf("popup must not fire on failed save, got %+v", notify.shown)
	}
}
