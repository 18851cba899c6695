package service_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/zorofrizzy/breatheBack/internal/domain"
	"github.com/zorofrizzy/breatheBack/internal/service"
	filestorage "github.com/zorofrizzy/breatheBack/internal/storage/file"
	"github.com/zorofrizzy/breatheBack/internal/zonestore"
	"github.com/zorofrizzy/breatheBack/pkg/e"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

type fixture struct {
	store *zonestore.Store
	st    *filestorage.Storage
	svc   *service.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := testLogger()
	st, err := filestorage.New(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	store := zonestore.New()
	ctx := context.Background()

	ledger, err := service.NewLedger(ctx, st, logger)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	events, err := service.NewEventLog(ctx, st, logger)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	svc := service.NewService(
		service.NewReportService(store, st, nil, logger),
		service.NewActionService(store, ledger, st, nil, logger),
		service.NewZoneService(store, nil, logger),
		ledger,
		events,
		service.NewAdminService(store, ledger, events, st, nil, logger),
	)
	return &fixture{store: store, st: st, svc: svc}
}

func submitReport(t *testing.T, f *fixture, typ domain.ImpactType, lat, lng float64) domain.SubmitReportResponse {
	t.Helper()

	resp, err := f.svc.Reports.Submit(context.Background(), domain.SubmitReportRequest{
		Type:     typ,
		Location: domain.Coordinates{Latitude: lat, Longitude: lng},
		Context:  "outdoor",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	return resp
}

func TestSubmitReport_CreatesZoneAndAddsDebt(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	resp := submitReport(t, f, domain.ImpactVape, 37.7749, -122.4194)
	if resp.ZoneID != "zone_3777_-12242" {
		t.Fatalf("zone_id=%q", resp.ZoneID)
	}
	if resp.Message != "Report submitted successfully" {
		t.Fatalf("message=%q", resp.Message)
	}
	if len(resp.Suggestions) < 3 || len(resp.Suggestions) > 5 {
		t.Fatalf("got %d suggestions, want 3-5", len(resp.Suggestions))
	}

	z, ok := f.store.Find(resp.ZoneID)
	if !ok {
		t.Fatal("zone missing after report")
	}
	if z.VapeDebt != service.DebtIncrement {
		t.Fatalf("vape_debt=%v want %v", z.VapeDebt, service.DebtIncrement)
	}
	if z.SmokeDebt != 0 {
		t.Fatalf("vape report touched smoke_debt: %v", z.SmokeDebt)
	}
}

func TestSubmitReport_SameCellAccumulates(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	first := submitReport(t, f, domain.ImpactSmoke, 37.7749, -122.4194)
	second := submitReport(t, f, domain.ImpactSmoke, 37.7742, -122.4191)
	if first.ZoneID != second.ZoneID {
		t.Fatalf("nearby reports split zones: %q vs %q", first.ZoneID, second.ZoneID)
	}

	z, _ := f.store.Find(first.ZoneID)
	if z.SmokeDebt != 2*service.DebtIncrement {
		t.Fatalf("smoke_debt=%v want %v", z.SmokeDebt, 2*service.DebtIncrement)
	}
}

func TestSubmitReport_Invalid(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Reports.Submit(ctx, domain.SubmitReportRequest{
		Type:     "fog",
		Location: domain.Coordinates{Latitude: 37.7749, Longitude: -122.4194},
	}); !errors.Is(err, e.ErrInvalidType) {
		t.Fatalf("want ErrInvalidType, got %v", err)
	}

	if _, err := f.svc.Reports.Submit(ctx, domain.SubmitReportRequest{
		Type:     domain.ImpactVape,
		Location: domain.Coordinates{Latitude: 91, Longitude: 0},
	}); !errors.Is(err, e.ErrInvalidCoordinates) {
		t.Fatalf("want ErrInvalidCoordinates, got %v", err)
	}

	if f.store.Len() != 0 {
		t.Fatalf("rejected report created a zone: len=%d", f.store.Len())
	}
}

func TestCompleteAction_RestoresZoneAndCreditsLedger(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	report := submitReport(t, f, domain.ImpactVape, 37.7749, -122.4194)

	resp, err := f.svc.Actions.Complete(ctx, domain.CompleteActionRequest{
		ActionID: "outdoor_3",
		Points:   10,
		Type:     domain.ActionVape,
		ZoneID:   report.ZoneID,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if resp.TotalPoints != 10 || resp.ActionsCompleted != 1 {
		t.Fatalf("total=%d actions=%d, want 10/1", resp.TotalPoints, resp.ActionsCompleted)
	}
	if resp.Feedback == "" {
		t.Fatal("empty feedback")
	}
	if resp.Message != "Action completed successfully" {
		t.Fatalf("message=%q", resp.Message)
	}

	z, _ := f.store.Find(report.ZoneID)
	if z.VapeRestore != 10 {
		t.Fatalf("vape_restore=%v want 10", z.VapeRestore)
	}
	if z.SmokeRestore != 0 {
		t.Fatalf("vape action touched smoke_restore: %v", z.SmokeRestore)
	}
}

func TestCompleteAction_BothType(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	report := submitReport(t, f, domain.ImpactVape, 37.7749, -122.4194)

	if _, err := f.svc.Actions.Complete(ctx, domain.CompleteActionRequest{
		ActionID: "universal_2",
		Points:   10,
		Type:     domain.ActionBoth,
		ZoneID:   report.ZoneID,
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	z, _ := f.store.Find(report.ZoneID)
	if z.VapeRestore != 10 || z.SmokeRestore != 10 {
		t.Fatalf("both action must credit both tracks fully: vape=%v smoke=%v", z.VapeRestore, z.SmokeRestore)
	}

	points, err := f.svc.Points.Today(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if points.TotalPoints != 10 || points.VapePoints != 10 || points.SmokePoints != 10 {
		t.Fatalf("ledger: total=%d vape=%d smoke=%d, want 10/10/10", points.TotalPoints, points.VapePoints, points.SmokePoints)
	}
}

func TestCompleteAction_UnknownZoneIsCreated(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Actions.Complete(ctx, domain.CompleteActionRequest{
		ActionID: "indoor_1",
		Points:   10,
		Type:     domain.ActionSmoke,
		ZoneID:   "zone_5150_-13",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.ActionsCompleted != 1 {
		t.Fatalf("actions=%d want 1", resp.ActionsCompleted)
	}

	z, ok := f.store.Find("zone_5150_-13")
	if !ok {
		t.Fatal("acting on an unseen zone must create it")
	}
	if z.SmokeRestore != 10 || z.SmokeDebt != 0 {
		t.Fatalf("unexpected accumulators: %+v", z)
	}
}

func TestCompleteAction_RejectedRequestLeavesNoTrace(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	requests := []domain.CompleteActionRequest{
		{ActionID: "", Points: 15, Type: domain.ActionVape, ZoneID: "zone_3777_-12242"},
		{ActionID: "indoor_1", Points: 15, Type: "fog", ZoneID: "zone_3777_-12242"},
		{ActionID: "indoor_1", Points: -5, Type: domain.ActionVape, ZoneID: "zone_3777_-12242"},
	}
	for _, req := range requests {
		if _, err := f.svc.Actions.Complete(ctx, req); err == nil {
			t.Fatalf("invalid request accepted: %+v", req)
		}
	}

	// A failed completion must not fabricate the zone or touch any accumulator.
	if _, ok := f.store.Find("zone_3777_-12242"); ok {
		t.Fatal("rejected action created a zone")
	}
	if f.store.Len() != 0 {
		t.Fatalf("rejected actions left %d zones behind", f.store.Len())
	}

	points, err := f.svc.Points.Today(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if points.TotalPoints != 0 || points.ActionsCompleted != 0 {
		t.Fatalf("rejected action credited the ledger: %+v", points)
	}
}

func TestCompleteAction_MalformedZoneID(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := f.svc.Actions.Complete(context.Background(), domain.CompleteActionRequest{
		ActionID: "indoor_1",
		Points:   10,
		Type:     domain.ActionVape,
		ZoneID:   "zone_x_y",
	})
	if !errors.Is(err, e.ErrInvalidZoneID) {
		t.Fatalf("want ErrInvalidZoneID, got %v", err)
	}
}

func TestListZones_DerivedStates(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	report := submitReport(t, f, domain.ImpactVape, 37.7749, -122.4194)
	submitReport(t, f, domain.ImpactVape, 37.7749, -122.4194)
	submitReport(t, f, domain.ImpactVape, 37.7749, -122.4194)

	views, err := f.svc.Zones.ListZones(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("want 1 view, got %d", len(views))
	}

	v := views[0]
	if v.ID != report.ZoneID {
		t.Fatalf("id=%q want %q", v.ID, report.ZoneID)
	}
	// net vape = -30, net smoke = 0
	if v.VapeState != domain.StateNeedsRestoration {
		t.Fatalf("vape_state=%q want needs_restoration", v.VapeState)
	}
	if v.VapeColor != "#F4D03F" || v.VapeMessage != "This space needs care" {
		t.Fatalf("vape rendering fields: color=%q message=%q", v.VapeColor, v.VapeMessage)
	}
	if v.SmokeState != domain.StateHealing {
		t.Fatalf("smoke_state=%q want healing", v.SmokeState)
	}
	if v.SmokeColor != "#52BE80" || v.SmokeMessage != "This space is healing" {
		t.Fatalf("smoke rendering fields: color=%q message=%q", v.SmokeColor, v.SmokeMessage)
	}
}

func TestZoneActions_KnownZone(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	report := submitReport(t, f, domain.ImpactVape, 37.7749, -122.4194)

	resp, err := f.svc.Zones.ZoneActions(ctx, report.ZoneID, domain.ContextIndoor, domain.ImpactVape)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.ZoneID != report.ZoneID {
		t.Fatalf("zone_id=%q want %q", resp.ZoneID, report.ZoneID)
	}
	if resp.VapeState != domain.StateNeedsRestoration {
		t.Fatalf("vape_state=%q", resp.VapeState)
	}
	if resp.VapeColor != "#F4D03F" || resp.VapeMessage != "This space needs care" {
		t.Fatalf("vape rendering fields: color=%q message=%q", resp.VapeColor, resp.VapeMessage)
	}
	if resp.SmokeColor != "#52BE80" || resp.SmokeMessage != "This space is healing" {
		t.Fatalf("smoke rendering fields: color=%q message=%q", resp.SmokeColor, resp.SmokeMessage)
	}
	if len(resp.Suggestions) < 3 {
		t.Fatalf("got %d suggestions", len(resp.Suggestions))
	}
}

func TestZoneActions_UnknownZoneIsNotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := f.svc.Zones.ZoneActions(context.Background(), "zone_1_1", "", "")
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if f.store.Len() != 0 {
		t.Fatal("browsing actions must not create zones")
	}
}

func TestEvents_CreateAndListSorted(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	later := domain.CreateEventRequest{
		Name:      "Evening cleanup",
		Location:  "Mission District",
		DateTime:  time.Date(2026, 9, 2, 18, 0, 0, 0, time.UTC),
		Duration:  60,
		TypeFocus: domain.ActionBoth,
	}
	earlier := domain.CreateEventRequest{
		Name:        "Morning fresh air walk",
		Location:    "Golden Gate Park",
		DateTime:    time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		Duration:    45,
		TypeFocus:   domain.ActionVape,
		ContextHint: "outdoor",
		Description: "Bring a friend",
	}

	resp, err := f.svc.Events.Create(ctx, later)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.Event.ID == "" {
		t.Fatal("event id not assigned")
	}
	if resp.Event.Description == "" {
		t.Fatal("empty description must be replaced with the default")
	}
	if resp.Message != "Event created successfully! Looking forward to healing together." {
		t.Fatalf("message=%q", resp.Message)
	}

	if _, err := f.svc.Events.Create(ctx, earlier); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	events, err := f.svc.Events.List(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("want 2 events, got %d", len(events))
	}
	if events[0].Name != "Morning fresh air walk" {
		t.Fatalf("events not sorted by start time: first=%q", events[0].Name)
	}
	if events[1].Description == "" {
		t.Fatal("description missing")
	}
}

func TestEvents_InvalidRejected(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := f.svc.Events.Create(context.Background(), domain.CreateEventRequest{
		Name:      "No duration",
		Location:  "Anywhere",
		DateTime:  time.Now().UTC(),
		Duration:  0,
		TypeFocus: domain.ActionVape,
	})
	if err == nil {
		t.Fatal("zero-duration event accepted")
	}

	events, listErr := f.svc.Events.List(context.Background())
	if listErr != nil {
		t.Fatalf("unexpected err: %v", listErr)
	}
	if len(events) != 0 {
		t.Fatal("rejected event was stored")
	}
}

func TestSeedDemo_CoversAllThreeStates(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Admin.SeedDemo(ctx, domain.SeedDemoRequest{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.ZonesCreated != 10 {
		t.Fatalf("zones_created=%d want 10", resp.ZonesCreated)
	}
	if resp.Center.Latitude != 37.7749 || resp.Center.Longitude != -122.4194 {
		t.Fatalf("unexpected default center: %+v", resp.Center)
	}

	views, err := f.svc.Zones.ListZones(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(views) != 10 {
		t.Fatalf("want 10 views, got %d", len(views))
	}

	states := map[domain.RestorationState]int{}
	for _, v := range views {
		states[v.VapeState]++
	}
	for _, s := range []domain.RestorationState{domain.StateNeedsRestoration, domain.StateHealing, domain.StateRecovered} {
		if states[s] == 0 {
			t.Fatalf("demo data covers no %q zones: %v", s, states)
		}
	}
}

func TestSeedDemo_CustomCenter(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	lat, lng := 51.5072, -0.1276
	resp, err := f.svc.Admin.SeedDemo(context.Background(), domain.SeedDemoRequest{Latitude: &lat, Longitude: &lng})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.Center.Latitude != lat || resp.Center.Longitude != lng {
		t.Fatalf("center not honored: %+v", resp.Center)
	}
	if f.store.Len() != 10 {
		t.Fatalf("want 10 zones, got %d", f.store.Len())
	}
}

func TestResetAll_WipesEverything(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	report := submitReport(t, f, domain.ImpactVape, 37.7749, -122.4194)
	if _, err := f.svc.Actions.Complete(ctx, domain.CompleteActionRequest{
		ActionID: "indoor_1",
		Points:   10,
		Type:     domain.ActionVape,
		ZoneID:   report.ZoneID,
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := f.svc.Events.Create(ctx, domain.CreateEventRequest{
		Name:      "Cleanup",
		Location:  "Park",
		DateTime:  time.Now().UTC().Add(time.Hour),
		Duration:  30,
		TypeFocus: domain.ActionBoth,
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if err := f.svc.Admin.ResetAll(ctx); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if f.store.Len() != 0 {
		t.Fatalf("zones survived reset: %d", f.store.Len())
	}
	points, err := f.svc.Points.Today(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if points.TotalPoints != 0 || points.ActionsCompleted != 0 {
		t.Fatalf("points survived reset: %+v", points)
	}
	events, err := f.svc.Events.List(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("events survived reset: %d", len(events))
	}

	// The stored snapshots are gone too: a fresh stack starts empty.
	zones, err := f.st.LoadZones(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(zones) != 0 {
		t.Fatalf("zone snapshot survived reset: %d", len(zones))
	}
}
