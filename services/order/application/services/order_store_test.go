package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/logger"
	orderdomain "github.com/ghuser/stockroom/services/order/domain"
	"github.com/ghuser/stockroom/services/order/domain/models"
	"github.com/ghuser/stockroom/services/order/infrastructure/persistence/memory"
)

type recordedRevision struct {
	description string
	dataset     []models.Order
}

type fakeRevisions struct {
	mu      sync.Mutex
	entries []recordedRevision
}

func (f *fakeRevisions) Append(_ context.Context, description string, dataset []models.Order) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, recordedRevision{description: description, dataset: models.CloneAll(dataset)})
	return uuid.New()
}

func (f *fakeRevisions) descriptions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.entries))
	for i, e := range f.entries {
		out[i] = e.description
	}
	return out
}

type fakeAudit struct {
	mu      sync.Mutex
	actions []string
}

func (f *fakeAudit) Record(_ context.Context, action string, _ *uuid.UUID, _ map[string]any) {
	f.mu.Lock()
	f.actions = append(f.actions, action)
	f.mu.Unlock()
}

type storeFixture struct {
	store *OrderStore
	repo  *memory.OrderRepository
	revs  *fakeRevisions
	audit *fakeAudit
}

func newStoreFixture(t *testing.T) *storeFixture {
	t.Helper()
	f := &storeFixture{repo: memory.NewOrderRepository(), revs: &fakeRevisions{}, audit: &fakeAudit{}}
	f.store = NewOrderStore(f.repo, f.revs, f.audit, logger.Discard(), nil)
	tick := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	f.store.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick = tick.Add(time.Second)
		return tick
	}
	return f
}

func (f *storeFixture) createOrder(t *testing.T, title string) models.Order {
	t.Helper()
	o, err := f.store.CreateOrder(context.Background(), models.OrderInput{Title: title, Supplier: "Bata"})
	if err != nil {
		t.Fatalf("CreateOrder(%q): %v", title, err)
	}
	return o
}

func TestOrderStore_CreateOrder(t *testing.T) {
	f := newStoreFixture(t)
	o := f.createOrder(t, "Spring")

	if o.Status() != models.StatusPending || len(o.Items) != 0 {
		t.Fatalf("new order = %+v", o)
	}
	if got, ok := f.store.GetOrder(o.ID); !ok || got.Title != "Spring" {
		t.Fatalf("GetOrder = %+v, %v", got, ok)
	}
	if want := []string{`Created order "Spring"`}; !reflect.DeepEqual(f.revs.descriptions(), want) {
		t.Fatalf("revisions = %v, want %v", f.revs.descriptions(), want)
	}
	if len(f.audit.actions) != 1 || f.audit.actions[0] != "CREATE_ORDER" {
		t.Fatalf("audit = %v", f.audit.actions)
	}
}

func TestOrderStore_CreateOrderValidation(t *testing.T) {
	f := newStoreFixture(t)
	for _, in := range []models.OrderInput{{Title: "T"}, {Supplier: "S"}, {Title: " ", Supplier: "S"}} {
		_, err := f.store.CreateOrder(context.Background(), in)
		if !errors.Is(err, orderdomain.ErrValidation) {
			t.Fatalf("CreateOrder(%+v) = %v, want ErrValidation", in, err)
		}
	}
	if len(f.store.Orders()) != 0 || len(f.revs.entries) != 0 {
		t.Fatal("rejected create must not change state or log")
	}
}

func TestOrderStore_NewestFirst(t *testing.T) {
	f := newStoreFixture(t)
	f.createOrder(t, "first")
	f.createOrder(t, "second")

	orders := f.store.Orders()
	if len(orders) != 2 || orders[0].Title != "second" || orders[1].Title != "first" {
		t.Fatalf("orders = %+v", orders)
	}
}

func TestOrderStore_AddItemsAndStatus(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	o := f.createOrder(t, "Spring")

	first, err := f.store.AddItem(ctx, o.ID, models.ItemInput{Article: "AIR MAX", Quantity: "12"})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	batch, err := f.store.AddItems(ctx, o.ID, []models.ItemInput{
		{Article: "RUNNER", Quantity: "4"},
		{Article: "HAWAI", Quantity: "6"},
	})
	if err != nil {
		t.Fatalf("AddItems: %v", err)
	}
	if len(batch) != 2 || batch[0].ID == batch[1].ID {
		t.Fatalf("batch = %+v", batch)
	}

	for _, id := range []uuid.UUID{first.ID, batch[1].ID} {
		if _, err := f.store.ToggleReceived(ctx, o.ID, id); err != nil {
			t.Fatalf("ToggleReceived: %v", err)
		}
	}
	got, _ := f.store.GetOrder(o.ID)
	if got.Status() != models.StatusInProgress {
		t.Fatalf("status = %q, want in progress", got.Status())
	}

	if _, err := f.store.ToggleReceived(ctx, o.ID, batch[0].ID); err != nil {
		t.Fatalf("ToggleReceived: %v", err)
	}
	got, _ = f.store.GetOrder(o.ID)
	if got.Status() != models.StatusCompleted {
		t.Fatalf("status = %q, want completed", got.Status())
	}

	want := []string{
		`Created order "Spring"`,
		`Added item "AIR MAX" to order`,
		`Added 2 items to order`,
		`Marked "AIR MAX" as Received`,
		`Marked "HAWAI" as Received`,
		`Marked "RUNNER" as Received`,
	}
	if !reflect.DeepEqual(f.revs.descriptions(), want) {
		t.Fatalf("revisions = %q\nwant %q", f.revs.descriptions(), want)
	}
}

func TestOrderStore_RevisionCarriesResultingDataset(t *testing.T) {
	f := newStoreFixture(t)
	o := f.createOrder(t, "Spring")
	if _, err := f.store.AddItem(context.Background(), o.ID, models.ItemInput{Article: "A", Quantity: "1"}); err != nil {
		t.Fatal(err)
	}
	last := f.revs.entries[len(f.revs.entries)-1]
	if !reflect.DeepEqual(last.dataset, f.store.Orders()) {
		t.Fatal("revision dataset differs from live state after mutation")
	}
}

func TestOrderStore_ToggleTwiceIsNoNetChange(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	o := f.createOrder(t, "Spring")
	it, err := f.store.AddItem(ctx, o.ID, models.ItemInput{Article: "A", Quantity: "1"})
	if err != nil {
		t.Fatal(err)
	}

	on, _ := f.store.ToggleReceived(ctx, o.ID, it.ID)
	if !on.Received || on.ReceivedDate == nil {
		t.Fatalf("after first toggle: %+v", on)
	}
	off, _ := f.store.ToggleReceived(ctx, o.ID, it.ID)
	if off.Received != it.Received || off.ReceivedDate != nil {
		t.Fatalf("after second toggle: %+v", off)
	}
	if off.DateModified == nil || !off.DateModified.After(*on.DateModified) {
		t.Fatal("dateModified should advance on every toggle")
	}
	if got := f.revs.descriptions()[3]; got != `Marked "A" as Pending` {
		t.Fatalf("description = %q", got)
	}
}

func TestOrderStore_NotFound(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	o := f.createOrder(t, "Spring")
	missing := uuid.New()

	if _, err := f.store.AddItem(ctx, missing, models.ItemInput{Article: "A", Quantity: "1"}); !errors.Is(err, orderdomain.ErrOrderNotFound) {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := f.store.ToggleReceived(ctx, missing, uuid.New()); !errors.Is(err, orderdomain.ErrOrderNotFound) {
		t.Fatalf("ToggleReceived order: %v", err)
	}
	if _, err := f.store.ToggleReceived(ctx, o.ID, uuid.New()); !errors.Is(err, orderdomain.ErrItemNotFound) {
		t.Fatalf("ToggleReceived item: %v", err)
	}
	if err := f.store.DeleteOrder(ctx, missing); !errors.Is(err, orderdomain.ErrOrderNotFound) {
		t.Fatalf("DeleteOrder: %v", err)
	}
	if len(f.revs.entries) != 1 {
		t.Fatalf("rejected mutations appended revisions: %v", f.revs.descriptions())
	}
}

func TestOrderStore_AddItemValidation(t *testing.T) {
	f := newStoreFixture(t)
	o := f.createOrder(t, "Spring")
	for _, in := range []models.ItemInput{{Quantity: "1"}, {Article: "A", Quantity: "-2"}, {Article: "A", Quantity: "x"}} {
		if _, err := f.store.AddItem(context.Background(), o.ID, in); !errors.Is(err, orderdomain.ErrValidation) {
			t.Fatalf("AddItem(%+v) = %v, want ErrValidation", in, err)
		}
	}
	if _, err := f.store.AddItems(context.Background(), o.ID, nil); !errors.Is(err, orderdomain.ErrValidation) {
		t.Fatalf("AddItems(nil) = %v", err)
	}
}

func TestOrderStore_PersistenceFailureLeavesStateUnchanged(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	o := f.createOrder(t, "Spring")
	before := f.store.Orders()

	f.repo.SetFailure(errors.New("connection refused"))
	if _, err := f.store.CreateOrder(ctx, models.OrderInput{Title: "T", Supplier: "S"}); !errors.Is(err, orderdomain.ErrPersistence) {
		t.Fatalf("CreateOrder = %v", err)
	}
	if _, err := f.store.AddItem(ctx, o.ID, models.ItemInput{Article: "A", Quantity: "1"}); !errors.Is(err, orderdomain.ErrPersistence) {
		t.Fatalf("AddItem = %v", err)
	}
	if err := f.store.DeleteOrder(ctx, o.ID); !errors.Is(err, orderdomain.ErrPersistence) {
		t.Fatalf("DeleteOrder = %v", err)
	}

	if !reflect.DeepEqual(before, f.store.Orders()) {
		t.Fatal("live state changed after failed writes")
	}
	if len(f.revs.entries) != 1 {
		t.Fatalf("failed writes appended revisions: %v", f.revs.descriptions())
	}
}

func TestOrderStore_DeleteOrder(t *testing.T) {
	f := newStoreFixture(t)
	o := f.createOrder(t, "Old")
	if err := f.store.DeleteOrder(context.Background(), o.ID); err != nil {
		t.Fatal(err)
	}
	if _, ok := f.store.GetOrder(o.ID); ok {
		t.Fatal("order still present")
	}
	if got := f.revs.descriptions()[1]; got != `Deleted order "Old"` {
		t.Fatalf("description = %q", got)
	}
}

func TestOrderStore_ReplaceAll(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	f.createOrder(t, "A")
	target := f.store.Orders()
	f.createOrder(t, "B")
	revisionsBefore := len(f.revs.entries)

	called := false
	if err := f.store.ReplaceAll(ctx, datasetOf(target), func() { called = true }); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	if !called {
		t.Fatal("then was not called")
	}
	if !reflect.DeepEqual(f.store.Orders(), target) {
		t.Fatal("live state does not match target")
	}
	if len(f.revs.entries) != revisionsBefore {
		t.Fatal("ReplaceAll appended a revision")
	}
	persisted, _ := f.repo.List(ctx)
	if len(persisted) != 1 || persisted[0].ID != target[0].ID {
		t.Fatalf("repository = %+v", persisted)
	}

	// the stored copy must not alias the caller's slice
	target[0].Title = "mutated"
	if got := f.store.Orders()[0].Title; got != "A" {
		t.Fatalf("live title = %q after caller mutation", got)
	}
}

func TestOrderStore_ReplaceAllFailureSkipsThen(t *testing.T) {
	f := newStoreFixture(t)
	f.createOrder(t, "A")
	before := f.store.Orders()
	f.repo.SetFailure(errors.New("tx aborted"))

	called := false
	err := f.store.ReplaceAll(context.Background(), datasetOf(nil), func() { called = true })
	if !errors.Is(err, orderdomain.ErrPersistence) {
		t.Fatalf("ReplaceAll = %v", err)
	}
	if called {
		t.Fatal("then ran after failed restore")
	}
	if !reflect.DeepEqual(before, f.store.Orders()) {
		t.Fatal("live state changed after failed restore")
	}
}

func TestOrderStore_LoadNewestFirst(t *testing.T) {
	older := models.NewOrder(models.OrderInput{Title: "older", Supplier: "S"}, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	newer := models.NewOrder(models.OrderInput{Title: "newer", Supplier: "S"}, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	store := NewOrderStore(memory.NewOrderRepository(older, newer), nil, nil, logger.Discard(), nil)

	if err := store.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	orders := store.Orders()
	if len(orders) != 2 || orders[0].Title != "newer" {
		t.Fatalf("orders = %+v", orders)
	}
}

func TestOrderStore_ConcurrentMutationsLogInOrder(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	o := f.createOrder(t, "Bulk")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := f.store.AddItem(ctx, o.ID, models.ItemInput{Article: fmt.Sprintf("A%d", i), Quantity: "1"}); err != nil {
				t.Errorf("AddItem: %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, _ := f.store.GetOrder(o.ID)
	if len(got.Items) != 20 {
		t.Fatalf("items = %d, want 20", len(got.Items))
	}
	// each revision holds exactly one more item than the previous one
	for i, e := range f.revs.entries[1:] {
		if n := len(e.dataset[0].Items); n != i+1 {
			t.Fatalf("revision %d has %d items, want %d", i+1, n, i+1)
		}
	}
}

func TestOrderStore_ReplaceAllResolveErrorChangesNothing(t *testing.T) {
	f := newStoreFixture(t)
	f.createOrder(t, "A")
	before := f.store.Orders()
	errGone := errors.New("target gone")

	called := false
	err := f.store.ReplaceAll(context.Background(), func() ([]models.Order, error) {
		return nil, errGone
	}, func() { called = true })
	if !errors.Is(err, errGone) {
		t.Fatalf("ReplaceAll = %v", err)
	}
	if called {
		t.Fatal("then ran after resolve failed")
	}
	if !reflect.DeepEqual(before, f.store.Orders()) {
		t.Fatal("live state changed after resolve failed")
	}
	if persisted, _ := f.repo.List(context.Background()); len(persisted) != 1 {
		t.Fatalf("repository = %+v", persisted)
	}
}

func datasetOf(orders []models.Order) func() ([]models.Order, error) {
	return func() ([]models.Order, error) { return orders, nil }
}
