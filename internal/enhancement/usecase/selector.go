package usecase

import (
	"newsdesk-backend/pkg/apperrors"

	quotausecase "newsdesk-backend/internal/quota/usecase"
)

// QuotaGate is the slice of the quota ledger the selector needs.
type QuotaGate interface {
	Reserve(service string, count int) quotausecase.ReserveResult
	CurrentCount(service string) int
}

// ModelSelector picks AI models against a two-level budget: all models share
// one pooled quota service with a single cap, and each model additionally has
// a soft per-model cap reflecting the provider's per-model rate limit.
type ModelSelector struct {
	quota       QuotaGate
	poolService string
	chain       []string // primary first, then fallbacks in order
	softCaps    map[string]int
}

func NewModelSelector(quota QuotaGate, poolService, primary string, fallbacks []string, softCaps map[string]int) *ModelSelector {
	chain := append([]string{primary}, fallbacks...)
	return &ModelSelector{
		quota:       quota,
		poolService: poolService,
		chain:       chain,
		softCaps:    softCaps,
	}
}

// EligibleModels reserves count units of pooled quota, then returns the
// models still admitted by their individual soft caps, in fallback order.
// Pool quota available but every model full is exhaustion; the pooled
// reservation is not rolled back, since it is the billing-safety record.
func (s *ModelSelector) EligibleModels(count int) ([]string, error) {
	res := s.quota.Reserve(s.poolService, count)
	if !res.Allowed {
		return nil, &apperrors.QuotaExceededError{Service: s.poolService, Remaining: res.Remaining}
	}

	current := s.quota.CurrentCount(s.poolService)
	var eligible []string
	for _, model := range s.chain {
		cap, ok := s.softCaps[model]
		if !ok || current <= cap {
			eligible = append(eligible, model)
		}
	}
	if len(eligible) == 0 {
		return nil, &apperrors.UpstreamExhaustedError{Task: "model selection"}
	}
	return eligible, nil
}

// Select returns the first eligible model.
func (s *ModelSelector) Select(count int) (string, error) {
	models, err := s.EligibleModels(count)
	if err != nil {
		return "", err
	}
	return models[0], nil
}
