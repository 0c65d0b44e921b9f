package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"opsuite/internal/domain"
	"opsuite/internal/port"
)

type partyRepo struct {
	db *sqlx.DB
}

// NewPartyRepo creates a new PostgreSQL-backed PartyRepository.
func NewPartyRepo(db *sqlx.DB) port.PartyRepository {
	return &partyRepo{db: db}
}

func (r *partyRepo) Create(ctx context.Context, party *domain.Party) error {
	party.ID = uuid.New()
	now := time.Now().UTC()
	party.CreatedAt = now
	party.UpdatedAt = now

	query := `INSERT INTO parties (id, tenant_id, kind, name, address, gstin, state_code, email, phone, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		party.ID, party.TenantID, party.Kind, party.Name, party.Address,
		party.GSTIN, party.StateCode, party.Email, party.Phone, party.IsActive,
		party.CreatedAt, party.UpdatedAt)
	if err != nil {
		return fmt.Errorf("partyRepo.Create: %w", err)
	}
	return nil
}

func (r *partyRepo) GetByID(ctx context.Context, tenantID, partyID uuid.UUID) (*domain.Party, error) {
	var party domain.Party
	err := r.db.GetContext(ctx, &party,
		"SELECT * FROM parties WHERE id = $1 AND tenant_id = $2", partyID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPartyNotFound
		}
		return nil, fmt.Errorf("partyRepo.GetByID: %w", err)
	}
	return &party, nil
}

func (r *partyRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, kind *domain.PartyKind, offset, limit int) ([]domain.Party, int, error) {
	countQuery := "SELECT COUNT(*) FROM parties WHERE tenant_id = $1"
	listQuery := "SELECT * FROM parties WHERE tenant_id = $1"
	args := []interface{}{tenantID}

	if kind != nil {
		countQuery += " AND kind = $2"
		listQuery += " AND kind = $2"
		args = append(args, *kind)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("partyRepo.ListByTenant count: %w", err)
	}

	listQuery += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var parties []domain.Party
	if err := r.db.SelectContext(ctx, &parties, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("partyRepo.ListByTenant: %w", err)
	}
	return parties, total, nil
}

func (r *partyRepo) Update(ctx context.Context, party *domain.Party) error {
	party.UpdatedAt = time.Now().UTC()
	query := `UPDATE parties SET kind = $1, name = $2, address = $3, gstin = $4,
		state_code = $5, email = $6, phone = $7, is_active = $8, updated_at = $9
		WHERE id = $10 AND tenant_id = $11`
	result, err := r.db.ExecContext(ctx, query,
		party.Kind, party.Name, party.Address, party.GSTIN, party.StateCode,
		party.Email, party.Phone, party.IsActive, party.UpdatedAt, party.ID, party.TenantID)
	if err != nil {
		return fmt.Errorf("partyRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrPartyNotFound
	}
	return nil
}

func (r *partyRepo) Delete(ctx context.Context, tenantID, partyID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM parties WHERE id = $1 AND tenant_id = $2", partyID, tenantID)
	if err != nil {
		return fmt.Errorf("partyRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrPartyNotFound
	}
	return nil
}
