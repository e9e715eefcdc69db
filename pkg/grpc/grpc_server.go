package grpc

import (
	"golang.org/x/time/rate"

	"liyu1981.xyz/consumable-wear-service/pkg/grpc/wearpb"
	"liyu1981.xyz/consumable-wear-service/pkg/tracker"
)

type WearServer struct {
	Tracker          *tracker.Tracker
	RateLimiterStore *tracker.RateLimiterStore
	wearpb.UnimplementedWearServiceServer
}

func (s *WearServer) GetLimiter(company string) *rate.Limiter {
	if s.RateLimiterStore == nil {
		return nil
	} else {
		return s.RateLimiterStore.GetLimiter(company)
	}
}

func (s *WearServer) CheckCompanyLimiter(company string) bool {
	limiter := s.GetLimiter(company)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

// RateLimitedMethods are the calls charged against a company's limiter.
var RateLimitedMethods = []string{
	wearpb.WearService_ListEquipment_FullMethodName,
	wearpb.WearService_GetEquipmentStatus_FullMethodName,
	wearpb.WearService_GetPartStatus_FullMethodName,
	wearpb.WearService_RecordUsage_FullMethodName,
	wearpb.WearService_RecordShift_FullMethodName,
}
