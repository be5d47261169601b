package repository

import (
	"context"

	"desayuno/internal/infra"
	"desayuno/internal/infra/db"

	"github.com/google/uuid"
)

// AuditLogRepository is the audit sink: one entry per issuance batch,
// redemption, and cancellation.
type AuditLogRepository struct{}

func NewAuditLogRepository() *AuditLogRepository {
	return &AuditLogRepository{}
}

func (r *AuditLogRepository) Insert(ctx context.Context, dbtx db.DBTX, kind, actor string, payload []byte) error {
	_, err := dbtx.Exec(ctx, `
		INSERT INTO audit_logs (id, kind, actor, payload)
		VALUES ($1, $2, $3, $4)
	`, uuid.New(), kind, actor, payload)
	if err != nil {
		return infra.WrapRepoErr("failed to insert audit log", err)
	}
	return nil
}
