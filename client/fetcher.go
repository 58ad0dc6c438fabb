package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
)

// ErrStaleFetch means a newer fetch cycle superseded this one before
// it completed; the response was discarded.
var ErrStaleFetch = errors.New("fetch superseded by a newer cycle")

// Optional carries the result of an optional fetch. Callers are forced
// to check Present instead of relying on a silently-zeroed value.
type Optional[T any] struct {
	Value   T
	Present bool
}

// Some wraps a present value.
func Some[T any](value T) Optional[T] {
	return Optional[T]{Value: value, Present: true}
}

// None is the absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// DashboardStats is the aggregate payload behind the dashboard view.
type DashboardStats struct {
	TotalStudents        int64     `json:"total_students"`
	MonthlyExpenses      []float64 `json:"monthly_expenses"`
	MonthlyIncome        []float64 `json:"monthly_income"`
	Months               []string  `json:"months"`
	CurrentMonthExpenses float64   `json:"current_month_expenses"`
	CurrentMonthIncome   float64   `json:"current_month_income"`
	ProfitLoss           float64   `json:"profit_loss"`
	TotalFeeCurrent      float64   `json:"total_fee_current"`
	ReceivedFeeCurrent   float64   `json:"received_fee_current"`
	PendingFeeCurrent    float64   `json:"pending_fee_current"`
	FullyPaid            int64     `json:"fully_paid"`
	PartiallyPaid        int64     `json:"partially_paid"`
	Unpaid               int64     `json:"unpaid"`
	TotalSalariesCurrent float64   `json:"total_salaries_current"`
	TotalSalariesPrev    float64   `json:"total_salaries_previous"`
}

// RoomTypeBreakdown is one per-capacity-type row of the availability
// aggregate.
type RoomTypeBreakdown struct {
	Type      string `json:"type"`
	Total     int    `json:"total"`
	Available int    `json:"available"`
	Occupied  int    `json:"occupied"`
}

// RoomAvailabilityPayload is the wire shape of the availability
// endpoint. Older deployments named the aggregate total_rooms, and
// some responses carry only the per-type breakdown, so every variant
// is captured here and reconciled by NormalizeRoomAvailability.
type RoomAvailabilityPayload struct {
	RoomsTotal     *int                `json:"rooms_total"`
	TotalRooms     *int                `json:"total_rooms"`
	RoomsAvailable *int                `json:"rooms_available"`
	RoomsOccupied  *int                `json:"rooms_occupied"`
	ByType         []RoomTypeBreakdown `json:"rooms_by_type"`
}

// RoomAvailability is the canonical availability shape handed to the
// rendering layer.
type RoomAvailability struct {
	RoomsTotal     int
	RoomsAvailable int
	RoomsOccupied  int
	ByType         []RoomTypeBreakdown
}

// Payload converts the canonical shape back to the wire shape. Useful
// for re-normalization checks: NormalizeRoomAvailability of the result
// yields the same canonical value.
func (a RoomAvailability) Payload() RoomAvailabilityPayload {
	total, available, occupied := a.RoomsTotal, a.RoomsAvailable, a.RoomsOccupied
	return RoomAvailabilityPayload{
		RoomsTotal:     &total,
		RoomsAvailable: &available,
		RoomsOccupied:  &occupied,
		ByType:         a.ByType,
	}
}

// NormalizeRoomAvailability reconciles the field-naming variants into
// one canonical shape. Priority per field, highest first:
//
//  1. the explicit field (rooms_total / rooms_available / rooms_occupied)
//  2. the legacy alias (total_rooms, aggregate total only)
//  3. the sum over the rooms_by_type breakdown
//  4. zero
//
// Occupied additionally falls back to total minus available. The
// function is idempotent: normalizing an already-normalized payload
// never double-sums the breakdown.
func NormalizeRoomAvailability(payload RoomAvailabilityPayload) RoomAvailability {
	var sumTotal, sumAvailable, sumOccupied int
	for _, row := range payload.ByType {
		sumTotal += row.Total
		sumAvailable += row.Available
		sumOccupied += row.Occupied
	}

	normalized := RoomAvailability{ByType: payload.ByType}

	switch {
	case payload.RoomsTotal != nil:
		normalized.RoomsTotal = *payload.RoomsTotal
	case payload.TotalRooms != nil:
		normalized.RoomsTotal = *payload.TotalRooms
	default:
		normalized.RoomsTotal = sumTotal
	}

	if payload.RoomsAvailable != nil {
		normalized.RoomsAvailable = *payload.RoomsAvailable
	} else {
		normalized.RoomsAvailable = sumAvailable
	}

	switch {
	case payload.RoomsOccupied != nil:
		normalized.RoomsOccupied = *payload.RoomsOccupied
	case sumOccupied > 0:
		normalized.RoomsOccupied = sumOccupied
	default:
		normalized.RoomsOccupied = normalized.RoomsTotal - normalized.RoomsAvailable
	}

	return normalized
}

// DashboardView is the combined dashboard view-model: the required
// stats plus the optional availability overlay.
type DashboardView struct {
	Stats DashboardStats
	Rooms Optional[RoomAvailability]
}

// Fetcher populates page view-models from the backend. Each load
// starts a new fetch cycle carrying a sequence number; a response from
// a superseded cycle is discarded, so "the most recent fetch wins"
// even when an earlier slow request resolves late.
type Fetcher struct {
	sessions *SessionStore
	logger   *slog.Logger

	mu        sync.Mutex
	seq       uint64
	committed uint64
	dashboard *DashboardView
}

func NewFetcher(sessions *SessionStore, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{sessions: sessions, logger: logger}
}

// Dashboard returns the last committed dashboard view, or nil before
// the first successful load.
func (f *Fetcher) Dashboard() *DashboardView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dashboard
}

// LoadDashboard runs one fetch cycle: the required stats fetch plus
// the optional availability fetch, issued concurrently. A required
// failure is returned to the caller; an optional failure degrades to
// an absent overlay. The result is committed only when no newer cycle
// has started meanwhile.
func (f *Fetcher) LoadDashboard(ctx context.Context) (*DashboardView, error) {
	cycle := f.beginCycle()

	type availabilityResult struct {
		value Optional[RoomAvailability]
	}
	availabilityCh := make(chan availabilityResult, 1)
	go func() {
		availabilityCh <- availabilityResult{value: f.fetchAvailability(ctx)}
	}()

	var stats DashboardStats
	if err := f.getJSON(ctx, "/api/dashboard", &stats); err != nil {
		<-availabilityCh
		return nil, fmt.Errorf("dashboard fetch failed: %w", err)
	}

	view := &DashboardView{
		Stats: stats,
		Rooms: (<-availabilityCh).value,
	}

	if !f.commit(cycle, view) {
		return nil, ErrStaleFetch
	}
	return view, nil
}

// Refetch re-runs the dashboard load. Mutation submitters call this
// after a successful write so the view reflects server state.
func (f *Fetcher) Refetch(ctx context.Context) error {
	_, err := f.LoadDashboard(ctx)
	return err
}

// fetchAvailability is the optional overlay fetch: failures are logged
// and degrade to None.
func (f *Fetcher) fetchAvailability(ctx context.Context) Optional[RoomAvailability] {
	var payload RoomAvailabilityPayload
	if err := f.getJSON(ctx, "/api/rooms/availability", &payload); err != nil {
		f.logger.Debug("availability fetch failed, degrading", "error", err)
		return None[RoomAvailability]()
	}
	return Some(NormalizeRoomAvailability(payload))
}

func (f *Fetcher) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.sessions.BaseURL()+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.sessions.HTTPClient().Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServerUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s for %s", resp.Status, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func (f *Fetcher) beginCycle() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return f.seq
}

// commit stores the view unless a newer cycle has already started or
// committed.
func (f *Fetcher) commit(cycle uint64, view *DashboardView) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cycle < f.seq || cycle <= f.committed {
		return false
	}
	f.committed = cycle
	f.dashboard = view
	return true
}
