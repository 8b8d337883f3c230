package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/polkiloo/smartxerox/internal/config"
	domainErrors "github.com/polkiloo/smartxerox/internal/domain/errors"
	"github.com/polkiloo/smartxerox/internal/domain/model"
	testhelpers "github.com/polkiloo/smartxerox/internal/test"
	"github.com/polkiloo/smartxerox/internal/usecase"
)

var pdf = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF")

type facadeFixture struct {
	facade   *PrintShopFacade
	orders   *testhelpers.OrderRepositoryStub
	students *testhelpers.StudentRepositoryStub
	blobs    *testhelpers.BlobStoreStub
	health   *testhelpers.HealthCheckerStub
	clock    time.Time
}

func newFacade() *facadeFixture {
	f := &facadeFixture{
		orders:   testhelpers.NewOrderRepositoryStub(),
		students: testhelpers.NewStudentRepositoryStub(),
		blobs:    testhelpers.NewBlobStoreStub(),
		health:   &testhelpers.HealthCheckerStub{},
		clock:    time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC),
	}
	f.orders.Now = func() time.Time { return f.clock }

	cfg := &config.Config{MaxUploadSize: 1 << 20, AdminEmail: "admin@shop.test", AdminPassword: "admin-pass"}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	authUC := usecase.NewAuthUseCase(f.students, testhelpers.HasherStub{}, testhelpers.StrategyStub{}, cfg)
	orderUC := usecase.NewOrderUseCase(f.orders, f.blobs, cfg, logger)
	expiryUC := usecase.NewExpiryUseCase(f.orders, f.blobs, logger)
	f.facade = NewPrintShopFacade(authUC, orderUC, expiryUC, f.health)
	return f
}

func submission() usecase.OrderSubmission {
	return usecase.OrderSubmission{StudentName: "Asha", PhoneNumber: "9876543210", Copies: "1", ColorType: "Color"}
}

func TestPrintShopFacadeOrderLifecycle(t *testing.T) {
	f := newFacade()
	ctx := context.Background()

	order, err := f.facade.CreateOrder(ctx, submission(), &usecase.FileUpload{Name: "a.pdf", ContentType: "application/pdf", Content: pdf})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	listed, err := f.facade.OrdersByPhone(ctx, "9876543210")
	if err != nil || len(listed) != 1 || listed[0].ID != order.ID {
		t.Fatalf("unexpected listing %+v %v", listed, err)
	}

	for _, status := range []model.OrderStatus{model.OrderStatusPrinting, model.OrderStatusReady} {
		if _, err := f.facade.SetOrderStatus(ctx, order.ID, status); err != nil {
			t.Fatalf("set status %s failed: %v", status, err)
		}
	}

	all, err := f.facade.Orders(ctx, "Ready")
	if err != nil || len(all) != 1 {
		t.Fatalf("unexpected admin listing %+v %v", all, err)
	}

	stats, err := f.facade.Stats(ctx)
	if err != nil || stats.ByStatus[model.OrderStatusReady] != 1 || stats.ByColorType[model.ColorTypeColor] != 1 {
		t.Fatalf("unexpected stats %+v %v", stats, err)
	}

	// a ready order is still purged once its retention window has passed
	report, err := f.facade.SweepExpired(ctx, f.clock.Add(model.RetentionWindow+time.Second))
	if err != nil || report.RowsDeleted != 1 {
		t.Fatalf("unexpected sweep %+v %v", report, err)
	}
	if f.blobs.Len() != 0 {
		t.Fatal("file must be purged with its order")
	}
	if err := f.facade.DeleteOrder(ctx, order.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found after sweep, got %v", err)
	}
}

func TestPrintShopFacadeBatchAndGroups(t *testing.T) {
	f := newFacade()
	ctx := context.Background()

	files := []usecase.FileUpload{
		{Name: "a.pdf", ContentType: "application/pdf", Content: pdf},
		{Name: "b.pdf", ContentType: "application/pdf", Content: pdf},
	}
	result, err := f.facade.SubmitBatch(ctx, submission(), files[:1])
	if err != nil || result.Succeeded() != 1 {
		t.Fatalf("unexpected batch %+v %v", result, err)
	}
	f.clock = f.clock.Add(2 * time.Minute)
	if _, err := f.facade.SubmitBatch(ctx, submission(), files[1:]); err != nil {
		t.Fatalf("second batch failed: %v", err)
	}

	groups, err := f.facade.OrderGroups(ctx, "")
	if err != nil || len(groups) != 1 || len(groups[0].Orders) != 2 {
		t.Fatalf("expected one group of two, got %+v %v", groups, err)
	}

	update, err := f.facade.SetOrdersStatus(ctx, groups[0].IDs(), model.OrderStatusDelivered)
	if err != nil || len(update.Updated) != 2 || len(update.Failed) != 0 {
		t.Fatalf("unexpected group update %+v %v", update, err)
	}
}

func TestPrintShopFacadeAuth(t *testing.T) {
	f := newFacade()
	ctx := context.Background()

	if _, err := f.facade.RegisterStudent(ctx, usecase.Registration{Name: "Asha", Email: "a@b.co", Phone: "9876543210", Password: "secret1"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, token, err := f.facade.LoginStudent(ctx, "a@b.co", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims, err := f.facade.ParseToken(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	student, err := f.facade.Profile(ctx, claims)
	if err != nil || student.Email != "a@b.co" {
		t.Fatalf("unexpected profile %+v %v", student, err)
	}

	if _, err := f.facade.AdminLogin(ctx, "admin@shop.test", "admin-pass"); err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
	if _, err := f.facade.AdminLogin(ctx, "admin@shop.test", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestPrintShopFacadeHealth(t *testing.T) {
	f := newFacade()
	if err := f.facade.Health(context.Background()); err != nil {
		t.Fatalf("unexpected health error: %v", err)
	}
	f.health.Err = errors.New("connection refused")
	if err := f.facade.Health(context.Background()); err == nil {
		t.Fatal("expected health error")
	}
	if f.health.Calls() != 2 {
		t.Fatalf("expected two checks, got %d", f.health.Calls())
	}
}
