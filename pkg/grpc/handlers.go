package grpc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	z "github.com/Oudwins/zog"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
	"google.golang.org/protobuf/types/known/structpb"

	"liyu1981.xyz/consumable-wear-service/pkg/common"
	"liyu1981.xyz/consumable-wear-service/pkg/models"
	"liyu1981.xyz/consumable-wear-service/pkg/wear"
)

const dateLayout = "2006-01-02"

// respond builds a response document: status plus the JSON form of each
// payload entry.
func respond(success bool, message string, payload map[string]any) (*structpb.Struct, error) {
	doc := map[string]any{
		"status": map[string]any{"success": success, "message": message},
	}
	for k, v := range payload {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return nil, err
		}
		doc[k] = generic
	}
	return structpb.NewStruct(doc)
}

func ok(payload map[string]any) (*structpb.Struct, error) {
	return respond(true, "OK", payload)
}

func failed(err error) (*structpb.Struct, error) {
	return respond(false, err.Error(), nil)
}

func invalid(issues any) (*structpb.Struct, error) {
	return respond(false, fmt.Sprintf("validation error: %v", issues), nil)
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

type companyRequest struct {
	Company string `json:"company"`
}

var companyRequestSchema = z.Struct(z.Shape{
	"Company": z.String().Min(1).Required(),
})

func (s *WearServer) ListEquipment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in companyRequest
	if err := companyRequestSchema.Parse(req.AsMap(), &in); err != nil {
		return invalid(err)
	}

	equipment, err := s.Tracker.Equipment.ListEquipment(ctx, in.Company)
	if err != nil {
		return failed(err)
	}
	if equipment == nil {
		equipment = []wear.Equipment{}
	}

	return ok(map[string]any{"equipment": equipment})
}

func (s *WearServer) GetEquipmentStatus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in companyRequest
	if err := companyRequestSchema.Parse(req.AsMap(), &in); err != nil {
		return invalid(err)
	}

	states, err := s.Tracker.Alert.EquipmentStatus(ctx, in.Company)
	if err != nil {
		return failed(err)
	}

	return ok(map[string]any{"equipment": states})
}

type partStatusRequest struct {
	Company string `json:"company"`
	Code    string `json:"code"`
	Session string `json:"session"`
}

var partStatusRequestSchema = z.Struct(z.Shape{
	"Company": z.String().Min(1).Required(),
	"Code":    z.String().Min(1).Required(),
	"Session": z.String().Optional(),
})

func (s *WearServer) GetPartStatus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in partStatusRequest
	if err := partStatusRequestSchema.Parse(req.AsMap(), &in); err != nil {
		return invalid(err)
	}
	if in.Session == "" {
		in.Session = common.DefaultSessionID
	}

	report, err := s.Tracker.Alert.PartStatus(ctx, in.Session, in.Company, in.Code)
	if err != nil {
		return failed(err)
	}

	warnings := common.Mapper(report.Warnings(), func(d wear.Delivery) map[string]string {
		return map[string]string{"part": d.Alert.Part, "error": d.Err.Error()}
	})

	return ok(map[string]any{
		"equipment": report.Equipment,
		"alerts":    nonNil(report.Alerts),
		"issues":    nonNil(report.Issues),
		"warnings":  nonNil(warnings),
	})
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

type usageRequest struct {
	Company        string  `json:"company"`
	Code           string  `json:"code"`
	WorkDate       string  `json:"work_date" zog:"work_date"`
	OrderNumber    string  `json:"order_number" zog:"order_number"`
	HoursOfUse     float64 `json:"hours_of_use" zog:"hours_of_use"`
	ReplacedParts  string  `json:"replaced_parts" zog:"replaced_parts"`
	Notes          string  `json:"notes"`
	TechnicalNotes string  `json:"technical_notes" zog:"technical_notes"`
}

var usageRequestSchema = z.Struct(z.Shape{
	"Company":        z.String().Min(1).Required(),
	"Code":           z.String().Min(1).Required(),
	"WorkDate":       z.String().Optional(),
	"OrderNumber":    z.String().Optional(),
	"HoursOfUse":     z.Float64().GTE(0).Optional(),
	"ReplacedParts":  z.String().Optional(),
	"Notes":          z.String().Optional(),
	"TechnicalNotes": z.String().Optional(),
})

func (s *WearServer) RecordUsage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in usageRequest
	if err := usageRequestSchema.Parse(req.AsMap(), &in); err != nil {
		return invalid(err)
	}

	workDate, err := parseDate(in.WorkDate)
	if err != nil {
		return respond(false, "validation error: work_date must be yyyy-mm-dd", nil)
	}

	record := models.UsageRecord{
		Company:        in.Company,
		Code:           in.Code,
		WorkDate:       workDate,
		OrderNumber:    in.OrderNumber,
		HoursOfUse:     decimal.NewFromFloat(in.HoursOfUse).String(),
		ReplacedParts:  in.ReplacedParts,
		Notes:          in.Notes,
		TechnicalNotes: in.TechnicalNotes,
	}
	if err := s.Tracker.Usage.RecordUsage(ctx, &record); err != nil {
		return failed(err)
	}

	return ok(map[string]any{"usage": record})
}

type shiftRequest struct {
	Company string `json:"company"`
	Date    string `json:"date"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Notes   string `json:"notes"`
}

var shiftRequestSchema = z.Struct(z.Shape{
	"Company": z.String().Min(1).Required(),
	"Date":    z.String().Optional(),
	"Start":   z.String().Min(1).Required(),
	"End":     z.String().Min(1).Required(),
	"Notes":   z.String().Optional(),
})

func (s *WearServer) RecordShift(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in shiftRequest
	if err := shiftRequestSchema.Parse(req.AsMap(), &in); err != nil {
		return invalid(err)
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return respond(false, "validation error: date must be yyyy-mm-dd", nil)
	}

	records, err := s.Tracker.Usage.RecordShift(ctx, in.Company, &models.Shift{
		Date:  date,
		Start: in.Start,
		End:   in.End,
		Notes: in.Notes,
	})
	if err != nil {
		return failed(err)
	}

	return ok(map[string]any{"usage": nonNil(records)})
}

type limiterRequest struct {
	Company string  `json:"company"`
	Rate    float64 `json:"rate"`
	Burst   int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"Company": z.String().Min(1).Required(),
	"Rate":    z.Float64().Required(),
	"Burst":   z.Int().Required(),
})

func (s *WearServer) SetLimiter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in limiterRequest
	if err := limiterRequestSchema.Parse(req.AsMap(), &in); err != nil {
		return invalid(err)
	}

	if s.RateLimiterStore == nil {
		return respond(false, "RateLimiterStore is not used. No effect.", nil)
	}

	s.RateLimiterStore.SetLimiter(in.Company, rate.Limit(in.Rate), in.Burst)
	return ok(nil)
}
