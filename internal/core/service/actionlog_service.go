package service

import (
	"context"

	"github.com/skyops/airflow-gateway/internal/core/domain"
	"github.com/skyops/airflow-gateway/internal/core/ports"
)

// ActionLogService serves audit log queries. Admins see every record; all
// other roles only see the actions they performed themselves.
type ActionLogService struct {
	repo ports.ActionLogRepository
}

func NewActionLogService(repo ports.ActionLogRepository) *ActionLogService {
	return &ActionLogService{repo: repo}
}

// filterFor returns the username filter for the principal: "" (everything)
// for admins, the principal's own username otherwise.
func filterFor(p domain.Principal) string {
	if p.Role == domain.RoleAdmin {
		return ""
	}
	return p.Username
}

func (s *ActionLogService) ListAll(ctx context.Context, p domain.Principal, page, size int) (*domain.ActionLogPage, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return s.repo.FindPage(ctx, filterFor(p), page, size)
}

func (s *ActionLogService) ListByDag(ctx context.Context, p domain.Principal, dagID string) ([]domain.ActionLog, error) {
	if dagID == "" {
		return nil, &domain.BadRequestError{Detail: "dag id is required"}
	}
	return s.repo.FindByDag(ctx, dagID, filterFor(p))
}

func (s *ActionLogService) ListByType(ctx context.Context, p domain.Principal, actionType string) ([]domain.ActionLog, error) {
	if actionType == "" {
		return nil, &domain.BadRequestError{Detail: "action type is required"}
	}
	return s.repo.FindByType(ctx, actionType, filterFor(p))
}
