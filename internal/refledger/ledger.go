// Package refledger tracks how much of a referenceable source document has
// been consumed by downstream documents. It is the only stateful part of the
// computation core: attaches against the same source line are serialized by a
// per-line lock so concurrent documents cannot oversell a source.
package refledger

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"opsuite/internal/domain"
)

type lineState struct {
	mu         sync.Mutex
	tenantID   uuid.UUID
	sourceType domain.VoucherType
	sourceID   uuid.UUID
	original   decimal.Decimal
	consumed   decimal.Decimal
	links      map[uuid.UUID]*domain.ReferenceLink
}

// Ledger is an in-memory consumption ledger keyed by source line ID.
type Ledger struct {
	mu    sync.RWMutex
	lines map[uuid.UUID]*lineState
	links map[uuid.UUID]*lineState // link ID → owning line, for release
}

// New creates an empty Ledger.
func New() *Ledger {
	return &Ledger{
		lines: make(map[uuid.UUID]*lineState),
		links: make(map[uuid.UUID]*lineState),
	}
}

// Register makes a source line available for consumption. Registering an
// already-known line is a no-op, so vouchers can be reloaded safely.
func (l *Ledger) Register(tenantID uuid.UUID, sourceType domain.VoucherType, sourceID, sourceLineID uuid.UUID, originalQty decimal.Decimal) error {
	if !originalQty.IsPositive() {
		return domain.ErrInvalidQuantity
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.lines[sourceLineID]; ok {
		return nil
	}
	l.lines[sourceLineID] = &lineState{
		tenantID:   tenantID,
		sourceType: sourceType,
		sourceID:   sourceID,
		original:   originalQty,
		consumed:   decimal.Zero,
		links:      make(map[uuid.UUID]*domain.ReferenceLink),
	}
	return nil
}

// Attach records a downstream voucher drawing requestedQty from a source
// line. It fails with ErrInsufficientQuantity when the request would exceed
// the remaining quantity; it never clamps, so the caller must re-prompt the
// user rather than silently truncate.
func (l *Ledger) Attach(sourceLineID, voucherID uuid.UUID, requestedQty decimal.Decimal) (*domain.ReferenceLink, error) {
	if !requestedQty.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}

	line := l.line(sourceLineID)
	if line == nil {
		return nil, domain.ErrInvalidReference
	}

	line.mu.Lock()
	if line.consumed.Add(requestedQty).GreaterThan(line.original) {
		line.mu.Unlock()
		return nil, domain.ErrInsufficientQuantity
	}
	link := &domain.ReferenceLink{
		ID:               uuid.New(),
		TenantID:         line.tenantID,
		SourceType:       line.sourceType,
		SourceID:         line.sourceID,
		SourceLineID:     sourceLineID,
		VoucherID:        voucherID,
		ConsumedQuantity: requestedQty,
		IsActive:         true,
		CreatedAt:        time.Now().UTC(),
	}
	line.consumed = line.consumed.Add(requestedQty)
	line.links[link.ID] = link
	line.mu.Unlock()

	l.mu.Lock()
	l.links[link.ID] = line
	l.mu.Unlock()

	out := *link
	return &out, nil
}

// Release deactivates a link when its downstream voucher is deleted or
// cancelled, returning the consumed quantity to the pool. The line may
// transition back from fully to partially consumed or to available.
func (l *Ledger) Release(linkID uuid.UUID) error {
	l.mu.RLock()
	line := l.links[linkID]
	l.mu.RUnlock()
	if line == nil {
		return domain.ErrInvalidReference
	}

	line.mu.Lock()
	defer line.mu.Unlock()
	link, ok := line.links[linkID]
	if !ok || !link.IsActive {
		return domain.ErrInvalidReference
	}
	link.IsActive = false
	line.consumed = line.consumed.Sub(link.ConsumedQuantity)
	if line.consumed.IsNegative() {
		line.consumed = decimal.Zero
	}
	return nil
}

// Remaining returns the quantity still available on a source line.
func (l *Ledger) Remaining(sourceLineID uuid.UUID) (decimal.Decimal, error) {
	line := l.line(sourceLineID)
	if line == nil {
		return decimal.Zero, domain.ErrInvalidReference
	}
	line.mu.Lock()
	defer line.mu.Unlock()
	remaining := line.original.Sub(line.consumed)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return remaining, nil
}

// Status reports the consumption state of a source line.
func (l *Ledger) Status(sourceLineID uuid.UUID) (domain.ConsumptionStatus, error) {
	line := l.line(sourceLineID)
	if line == nil {
		return "", domain.ErrInvalidReference
	}
	line.mu.Lock()
	defer line.mu.Unlock()
	switch {
	case line.consumed.IsZero():
		return domain.ConsumptionAvailable, nil
	case line.consumed.GreaterThanOrEqual(line.original):
		return domain.ConsumptionFullyConsumed, nil
	default:
		return domain.ConsumptionPartiallyConsumed, nil
	}
}

// ActiveLinks returns copies of the active links against a source line.
func (l *Ledger) ActiveLinks(sourceLineID uuid.UUID) ([]domain.ReferenceLink, error) {
	line := l.line(sourceLineID)
	if line == nil {
		return nil, domain.ErrInvalidReference
	}
	line.mu.Lock()
	defer line.mu.Unlock()
	var out []domain.ReferenceLink
	for _, link := range line.links {
		if link.IsActive {
			out = append(out, *link)
		}
	}
	return out, nil
}

func (l *Ledger) line(sourceLineID uuid.UUID) *lineState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lines[sourceLineID]
}
