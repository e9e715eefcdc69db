package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"liyu1981.xyz/consumable-wear-service/pkg/common"
	"liyu1981.xyz/consumable-wear-service/pkg/tracker"
	"liyu1981.xyz/consumable-wear-service/pkg/wear"
)

// StatusOf maps a tracker error to the HTTP status reported for it.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, tracker.ErrCompanyNotFound),
		errors.Is(err, wear.ErrEquipmentNotFound),
		errors.Is(err, wear.ErrPartNotFound):
		return http.StatusNotFound
	case errors.Is(err, tracker.ErrEquipmentExists):
		return http.StatusConflict
	case errors.Is(err, tracker.ErrInvalidCompany),
		errors.Is(err, tracker.ErrInvalidEquipment),
		errors.Is(err, tracker.ErrInvalidShift),
		errors.Is(err, tracker.ErrInvalidHoursOfUse):
		return http.StatusBadRequest
	case errors.Is(err, tracker.ErrDataUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (rs *RestfulServer) fail(c *gin.Context, err error) {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		logger := common.GetLoggerWith(common.LoggerNameRestfulServer)
		logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
