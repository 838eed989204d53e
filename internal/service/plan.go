package service

import (
	"context"

	"github.com/subcycle/subcycle/internal/api/dto"
	"github.com/subcycle/subcycle/internal/domain/plan"
	ierr "github.com/subcycle/subcycle/internal/errors"
	"github.com/samber/lo"
)

type PlanService interface {
	CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error)
	GetPlan(ctx context.Context, id string) (*dto.PlanResponse, error)
	ListPlans(ctx context.Context) (*dto.ListPlansResponse, error)
}

type planService struct {
	ServiceParams
}

func NewPlanService(params ServiceParams) PlanService {
	return &planService{ServiceParams: params}
}

func (s *planService) CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid plan payload").
			Mark(ierr.ErrValidation)
	}

	p := req.ToPlan()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.PlanRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("created subscription plan",
		"plan_id", p.ID,
		"billing_cycle", p.BillingCycle,
	)
	return &dto.PlanResponse{SubscriptionPlan: p}, nil
}

func (s *planService) GetPlan(ctx context.Context, id string) (*dto.PlanResponse, error) {
	p, err := s.PlanRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ierr.NewError("plan not found").
			WithHint("Subscription plan not found").
			WithReportableDetails(map[string]any{"plan_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return &dto.PlanResponse{SubscriptionPlan: p}, nil
}

func (s *planService) ListPlans(ctx context.Context) (*dto.ListPlansResponse, error) {
	plans, err := s.PlanRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := lo.Map(plans, func(p *plan.SubscriptionPlan, _ int) *dto.PlanResponse {
		return &dto.PlanResponse{SubscriptionPlan: p}
	})
	return &dto.ListPlansResponse{Items: items, Total: len(items)}, nil
}
