package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"liyu1981.xyz/consumable-wear-service/pkg/common"
	"liyu1981.xyz/consumable-wear-service/pkg/models"
	"liyu1981.xyz/consumable-wear-service/pkg/wear"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

const dateLayout = "2006-01-02"

func (rs *RestfulServer) limitCompany(c *gin.Context) {
	if !rs.CheckCompanyLimiter(c.Param("company")) {
		c.AbortWithStatus(http.StatusTooManyRequests)
		return
	}
	c.Next()
}

// parseDate reads an optional yyyy-mm-dd date.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, true
	}
	d, err := time.Parse(dateLayout, s)
	return d, err == nil
}

func (rs *RestfulServer) GetCompanies(c *gin.Context) {
	companies, err := rs.Tracker.Equipment.ListCompanies(c.Request.Context())
	if err != nil {
		rs.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

type CompanyRequest struct {
	Name string `json:"name"`
}

var companyRequestSchema = z.Struct(z.Shape{
	"Name": z.String().Min(1).Required(),
})

func (rs *RestfulServer) PostCompany(c *gin.Context) {
	var req CompanyRequest
	if err := companyRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if err := rs.Tracker.Equipment.RegisterCompany(c.Request.Context(), req.Name); err != nil {
		rs.fail(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

func (rs *RestfulServer) GetStatus(c *gin.Context) {
	states, err := rs.Tracker.Alert.EquipmentStatus(c.Request.Context(), c.Param("company"))
	if err != nil {
		rs.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, states)
}

func (rs *RestfulServer) GetEquipment(c *gin.Context) {
	equipment, err := rs.Tracker.Equipment.ListEquipment(c.Request.Context(), c.Param("company"))
	if err != nil {
		rs.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, equipment)
}

type EquipmentRequest struct {
	Code             string `json:"code"`
	Description      string `json:"description"`
	Consumables      string `json:"consumables"`
	LifeLimits       string `json:"life_limits" zog:"life_limits"`
	PartDescriptions string `json:"part_descriptions" zog:"part_descriptions"`
}

var equipmentRequestSchema = z.Struct(z.Shape{
	"Code":             z.String().Min(1).Required(),
	"Description":      z.String().Optional(),
	"Consumables":      z.String().Min(1).Required(),
	"LifeLimits":       z.String().Optional(),
	"PartDescriptions": z.String().Optional(),
})

func (rs *RestfulServer) PostEquipment(c *gin.Context) {
	var req EquipmentRequest
	if err := equipmentRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	equipment := models.Equipment{
		Company:          c.Param("company"),
		Code:             req.Code,
		Description:      req.Description,
		Consumables:      req.Consumables,
		LifeLimits:       req.LifeLimits,
		PartDescriptions: req.PartDescriptions,
	}
	if err := rs.Tracker.Equipment.RegisterEquipment(c.Request.Context(), &equipment); err != nil {
		rs.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, equipment)
}

type DeliveryWarning struct {
	Part  string `json:"part"`
	Error string `json:"error"`
}

type PartStatusResponse struct {
	Equipment wear.EquipmentState `json:"equipment"`
	Alerts    []wear.Alert        `json:"alerts"`
	Issues    []wear.Issue        `json:"issues"`
	Warnings  []DeliveryWarning   `json:"warnings"`
}

func (rs *RestfulServer) GetParts(c *gin.Context) {
	session := c.GetHeader(sessionHeader)
	if session == "" {
		session = common.DefaultSessionID
	}

	report, err := rs.Tracker.Alert.PartStatus(c.Request.Context(), session, c.Param("company"), c.Param("code"))
	if err != nil {
		rs.fail(c, err)
		return
	}

	resp := PartStatusResponse{
		Equipment: report.Equipment,
		Alerts:    report.Alerts,
		Issues:    report.Issues,
		Warnings: common.Mapper(report.Warnings(), func(d wear.Delivery) DeliveryWarning {
			return DeliveryWarning{Part: d.Alert.Part, Error: d.Err.Error()}
		}),
	}
	if resp.Alerts == nil {
		resp.Alerts = []wear.Alert{}
	}
	if resp.Issues == nil {
		resp.Issues = []wear.Issue{}
	}
	if resp.Warnings == nil {
		resp.Warnings = []DeliveryWarning{}
	}

	c.JSON(http.StatusOK, resp)
}

type DescriptionRequest struct {
	Description string `json:"description"`
}

var descriptionRequestSchema = z.Struct(z.Shape{
	"Description": z.String().Optional(),
})

func (rs *RestfulServer) PutPartDescription(c *gin.Context) {
	var req DescriptionRequest
	if err := descriptionRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	err := rs.Tracker.Equipment.UpdatePartDescription(
		c.Request.Context(), c.Param("company"), c.Param("code"), c.Param("part"), req.Description,
	)
	if err != nil {
		rs.fail(c, err)
		return
	}

	c.Status(http.StatusOK)
}

type UsageRequest struct {
	WorkDate       string `json:"work_date" zog:"work_date"`
	OrderNumber    string `json:"order_number" zog:"order_number"`
	HoursOfUse     string `json:"hours_of_use" zog:"hours_of_use"`
	ReplacedParts  string `json:"replaced_parts" zog:"replaced_parts"`
	Notes          string `json:"notes"`
	TechnicalNotes string `json:"technical_notes" zog:"technical_notes"`
}

var usageRequestSchema = z.Struct(z.Shape{
	"WorkDate":       z.String().Optional(),
	"OrderNumber":    z.String().Optional(),
	"HoursOfUse":     z.String().Min(1).Required(),
	"ReplacedParts":  z.String().Optional(),
	"Notes":          z.String().Optional(),
	"TechnicalNotes": z.String().Optional(),
})

func (rs *RestfulServer) PostUsage(c *gin.Context) {
	var req UsageRequest
	if err := usageRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	workDate, ok := parseDate(req.WorkDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "work_date must be yyyy-mm-dd"})
		return
	}

	record := models.UsageRecord{
		Company:        c.Param("company"),
		Code:           c.Param("code"),
		WorkDate:       workDate,
		OrderNumber:    req.OrderNumber,
		HoursOfUse:     req.HoursOfUse,
		ReplacedParts:  req.ReplacedParts,
		Notes:          req.Notes,
		TechnicalNotes: req.TechnicalNotes,
	}
	if err := rs.Tracker.Usage.RecordUsage(c.Request.Context(), &record); err != nil {
		rs.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (rs *RestfulServer) GetUsage(c *gin.Context) {
	records, err := rs.Tracker.Usage.ListUsage(c.Request.Context(), c.Param("company"), c.Param("code"))
	if err != nil {
		rs.fail(c, err)
		return
	}
	if records == nil {
		records = []models.UsageRecord{}
	}
	c.JSON(http.StatusOK, records)
}

type ShiftRequest struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
	Notes string `json:"notes"`
}

var shiftRequestSchema = z.Struct(z.Shape{
	"Date":  z.String().Optional(),
	"Start": z.String().Min(1).Required(),
	"End":   z.String().Min(1).Required(),
	"Notes": z.String().Optional(),
})

func (rs *RestfulServer) PostShift(c *gin.Context) {
	var req ShiftRequest
	if err := shiftRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	date, ok := parseDate(req.Date)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be yyyy-mm-dd"})
		return
	}

	records, err := rs.Tracker.Usage.RecordShift(c.Request.Context(), c.Param("company"), &models.Shift{
		Date:  date,
		Start: req.Start,
		End:   req.End,
		Notes: req.Notes,
	})
	if err != nil {
		rs.fail(c, err)
		return
	}
	if records == nil {
		records = []models.UsageRecord{}
	}

	c.JSON(http.StatusCreated, records)
}

func (rs *RestfulServer) GetNotifications(c *gin.Context) {
	notifications, err := rs.Tracker.Alert.Notifications(c.Request.Context(), c.Param("company"))
	if err != nil {
		rs.fail(c, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	c.JSON(http.StatusOK, notifications)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	company := c.Param("company")

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(company, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

type LimiterResponse struct {
	Rate   float64 `json:"rate"`
	Burst  int     `json:"burst"`
	Custom bool    `json:"custom"`
}

func (rs *RestfulServer) GetLimiterSetting(c *gin.Context) {
	if rs.RateLimiterStore == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "rate limiting is disabled"})
		return
	}
	limit, custom := rs.RateLimiterStore.Limits(c.Param("company"))
	c.JSON(http.StatusOK, LimiterResponse{Rate: limit.Rate, Burst: limit.Burst, Custom: custom})
}

// DeleteLimiter puts the company back on the default limiter.
func (rs *RestfulServer) DeleteLimiter(c *gin.Context) {
	if rs.RateLimiterStore == nil || !rs.RateLimiterStore.Reset(c.Param("company")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no limiter override"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (rs *RestfulServer) DeleteSession(c *gin.Context) {
	if !rs.Tracker.Sessions.Drop(c.Param("session")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (rs *RestfulServer) StreamAlerts(c *gin.Context) {
	company := c.Query("company")
	if company == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company is required"})
		return
	}
	if rs.Hub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "alert streaming is disabled"})
		return
	}
	if !rs.CheckCompanyLimiter(company) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	rs.Hub.ServeWS(c.Writer, c.Request, company)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
