package usecase

import (
	"context"
	"time"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
	repo "github.com/gimhantharuke456/sachi-itpm/internal/repository"
)

type AuditLogUsecase struct {
	logs repo.AuditLogRepository
}

func NewAuditLogUsecase(logs repo.AuditLogRepository) *AuditLogUsecase {
	return &AuditLogUsecase{logs: logs}
}

// GET /admin/audit-logs のクエリ
type ListAuditLogsInput struct {
	ActorUserID  string
	Action       string
	ResourceType string
	ResourceID   string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

func (u *AuditLogUsecase) List(ctx context.Context, in ListAuditLogsInput) ([]model.AuditLog, error) {
	if in.Limit < 0 || in.Limit > 200 {
		return nil, errBadRequest("invalid limit")
	}
	if in.Offset < 0 {
		return nil, errBadRequest("invalid offset")
	}

	f := repo.AuditLogFilter{
		CreatedFrom: in.From,
		CreatedTo:   in.To,
		Limit:       in.Limit,
		Offset:      in.Offset,
	}
	if in.ActorUserID != "" {
		f.ActorUserID = &in.ActorUserID
	}
	if in.Action != "" {
		a := model.AuditAction(in.Action)
		switch a {
		case model.AuditActionUpdateOrder, model.AuditActionDeleteOrder, model.AuditActionSetPoints:
		default:
			return nil, errBadRequest("invalid action")
		}
		f.Action = &a
	}
	if in.ResourceType != "" {
		rt := model.AuditResourceType(in.ResourceType)
		if rt != model.AuditResourceOrder && rt != model.AuditResourcePoints {
			return nil, errBadRequest("invalid resource_type")
		}
		f.ResourceType = &rt
	}
	if in.ResourceID != "" {
		f.ResourceID = &in.ResourceID
	}

	logs, err := u.logs.List(ctx, f)
	if err != nil {
		return nil, errDB
	}
	return logs, nil
}
