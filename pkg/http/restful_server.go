package http

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"liyu1981.xyz/consumable-wear-service/pkg/notify"
	"liyu1981.xyz/consumable-wear-service/pkg/tracker"
)

const sessionHeader = "X-Session-ID"

type RestfulServer struct {
	Server           *gin.Engine
	Tracker          *tracker.Tracker
	RateLimiterStore *tracker.RateLimiterStore
	Hub              *notify.Hub
}

func (rs *RestfulServer) GetLimiter(company string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(company)
	}
}

func (rs *RestfulServer) CheckCompanyLimiter(company string) bool {
	limiter := rs.GetLimiter(company)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(company string, companyRate float64, companyBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(company, rate.Limit(companyRate), companyBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	rs.Server.GET("/companies", rs.GetCompanies)
	rs.Server.POST("/companies", rs.PostCompany)
	rs.Server.DELETE("/sessions/:session", rs.DeleteSession)
	rs.Server.GET("/ws/alerts", rs.StreamAlerts)

	companies := rs.Server.Group("/companies/:company", rs.limitCompany)
	{
		companies.GET("/status", rs.GetStatus)
		companies.GET("/equipment", rs.GetEquipment)
		companies.POST("/equipment", rs.PostEquipment)
		companies.GET("/equipment/:code/parts", rs.GetParts)
		companies.PUT("/equipment/:code/parts/:part/description", rs.PutPartDescription)
		companies.POST("/equipment/:code/usage", rs.PostUsage)
		companies.GET("/equipment/:code/usage", rs.GetUsage)
		companies.POST("/shifts", rs.PostShift)
		companies.GET("/notifications", rs.GetNotifications)
	}

	// the limiter of a company can always be changed
	rs.Server.GET("/companies/:company/limiter", rs.GetLimiterSetting)
	rs.Server.POST("/companies/:company/limiter", rs.PostLimiter)
	rs.Server.DELETE("/companies/:company/limiter", rs.DeleteLimiter)
}
