package grpc

import (
	"context"
	"fmt"
	"net"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"liyu1981.xyz/consumable-wear-service/pkg/common"
	"liyu1981.xyz/consumable-wear-service/pkg/db"
	"liyu1981.xyz/consumable-wear-service/pkg/grpc/wearpb"
	"liyu1981.xyz/consumable-wear-service/pkg/models"
	_ "liyu1981.xyz/consumable-wear-service/pkg/testing"
	"liyu1981.xyz/consumable-wear-service/pkg/tracker"
	"liyu1981.xyz/consumable-wear-service/pkg/wear"

	"liyu1981.xyz/consumable-wear-service/pkg/tracker/mocks"
)

const bufSize = 1024 * 1024

func startTestServerWithInterceptor(t *testing.T, tr *tracker.Tracker, limiterStore *tracker.RateLimiterStore) wearpb.WearServiceClient {
	listener := bufconn.Listen(bufSize)

	wearServer := WearServer{Tracker: tr, RateLimiterStore: limiterStore}
	interceptor := wearServer.CreateRateLimitInterceptor(RateLimitedMethods)
	server := grpc.NewServer(grpc.UnaryInterceptor(interceptor))
	wearpb.RegisterWearServiceServer(server, &wearServer)

	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(ctx context.Context, s string) (net.Conn, error) {
			return listener.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return wearpb.NewWearServiceClient(conn)
}

func newTestTracker(notifier wear.Notifier) *tracker.Tracker {
	tr := tracker.NewTracker(*db.GetInstance(db.UseMemorySqliteDialector()), notifier)
	tr.Retry = tracker.RetryPolicy{Attempts: 1}
	return tr
}

func startTestServer(t *testing.T) (wearpb.WearServiceClient, *tracker.Tracker) {
	tr := newTestTracker(wear.NotifierFunc(func(ctx context.Context, a wear.Alert) error { return nil }))
	return startTestServerWithInterceptor(t, tr, nil), tr
}

func startTestServerWithMocks(t *testing.T, useMockIEquipment, useMockIUsage, useMockIAlert bool) (
	*gomock.Controller,
	wearpb.WearServiceClient,
	*mocks.MockIEquipment,
	*mocks.MockIUsage,
	*mocks.MockIAlert,
) {
	ctrl := gomock.NewController(t)

	iMockEquipment := mocks.NewMockIEquipment(ctrl)
	iMockUsage := mocks.NewMockIUsage(ctrl)
	iMockAlert := mocks.NewMockIAlert(ctrl)

	tr := newTestTracker(nil)
	opts := tracker.ServiceOpts{}
	if useMockIEquipment {
		opts.Equipment = iMockEquipment
	}
	if useMockIUsage {
		opts.Usage = iMockUsage
	}
	if useMockIAlert {
		opts.Alert = iMockAlert
	}
	tr.WithServices(opts)

	return ctrl, startTestServerWithInterceptor(t, tr, nil), iMockEquipment, iMockUsage, iMockAlert
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func requireSuccess(t *testing.T, r *structpb.Struct) map[string]any {
	t.Helper()
	doc := r.AsMap()
	st := doc["status"].(map[string]any)
	require.True(t, st["success"].(bool), "unexpected failure: %v", st["message"])
	return doc
}

func requireFailure(t *testing.T, r *structpb.Struct, contains string) {
	t.Helper()
	st := r.AsMap()["status"].(map[string]any)
	assert.False(t, st["success"].(bool))
	assert.True(t, strings.Contains(st["message"].(string), contains), "message %q should contain %q", st["message"], contains)
}

func seed(t *testing.T, tr *tracker.Tracker) string {
	t.Helper()
	company := uuid.NewString()
	require.NoError(t, tr.Equipment.RegisterEquipment(context.Background(), &models.Equipment{
		Company:          company,
		Code:             "RF-1",
		Consumables:      "Blade,Belt",
		LifeLimits:       "700,400",
		PartDescriptions: "carbide|rubber",
	}))
	return company
}

func TestRecordUsageAndGetPartStatus(t *testing.T) {
	common.SetTestLoggerNop()
	client, tr := startTestServer(t)
	ctx := context.Background()
	company := seed(t, tr)

	r, err := client.ListEquipment(ctx, mustStruct(t, map[string]any{"company": company}))
	require.NoError(t, err)
	doc := requireSuccess(t, r)
	equipment := doc["equipment"].([]any)
	require.Len(t, equipment, 1)
	assert.Equal(t, "RF-1", equipment[0].(map[string]any)["code"])

	r, err = client.RecordUsage(ctx, mustStruct(t, map[string]any{
		"company":      company,
		"code":         "RF-1",
		"hours_of_use": 380.5,
		"work_date":    "2026-03-01",
	}))
	require.NoError(t, err)
	doc = requireSuccess(t, r)
	assert.Equal(t, "380.5", doc["usage"].(map[string]any)["hours_of_use"])

	r, err = client.GetPartStatus(ctx, mustStruct(t, map[string]any{"company": company, "code": "RF-1", "session": "s1"}))
	require.NoError(t, err)
	doc = requireSuccess(t, r)
	assert.Equal(t, "imminent_failure", doc["equipment"].(map[string]any)["tier"])
	alerts := doc["alerts"].([]any)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Belt", alerts[0].(map[string]any)["part"])
	assert.Equal(t, 19.5, alerts[0].(map[string]any)["hours_remaining"])
	assert.Empty(t, doc["warnings"])

	r, err = client.GetPartStatus(ctx, mustStruct(t, map[string]any{"company": company, "code": "RF-1", "session": "s1"}))
	require.NoError(t, err)
	assert.Empty(t, requireSuccess(t, r)["alerts"])

	r, err = client.GetEquipmentStatus(ctx, mustStruct(t, map[string]any{"company": company}))
	require.NoError(t, err)
	states := requireSuccess(t, r)["equipment"].([]any)
	require.Len(t, states, 1)
	assert.Equal(t, "imminent_failure", states[0].(map[string]any)["tier"])
}

func TestRecordShift(t *testing.T) {
	common.SetTestLoggerNop()
	client, tr := startTestServer(t)
	ctx := context.Background()
	company := seed(t, tr)

	r, err := client.RecordShift(ctx, mustStruct(t, map[string]any{
		"company": company,
		"date":    "2026-03-01",
		"start":   "07:00",
		"end":     "15:45",
	}))
	require.NoError(t, err)
	usage := requireSuccess(t, r)["usage"].([]any)
	require.Len(t, usage, 1)
	assert.Equal(t, "8.75", usage[0].(map[string]any)["hours_of_use"])

	r, err = client.RecordShift(ctx, mustStruct(t, map[string]any{"company": company, "start": "7", "end": "15:45"}))
	require.NoError(t, err)
	requireFailure(t, r, tracker.ErrInvalidShift.Error())

	r, err = client.RecordShift(ctx, mustStruct(t, map[string]any{"company": company, "date": "March 1", "start": "07:00", "end": "15:45"}))
	require.NoError(t, err)
	requireFailure(t, r, "validation error")
}

func TestValidation_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()
	client, tr := startTestServer(t)
	ctx := context.Background()
	company := seed(t, tr)

	{
		// empty company will fail validation
		r, err := client.ListEquipment(ctx, mustStruct(t, map[string]any{}))
		assert.NoError(t, err)
		requireFailure(t, r, "validation error")
	}

	{
		r, err := client.GetPartStatus(ctx, mustStruct(t, map[string]any{"company": company}))
		assert.NoError(t, err)
		requireFailure(t, r, "validation error")
	}

	{
		r, err := client.RecordUsage(ctx, mustStruct(t, map[string]any{"company": company, "code": "RF-1", "hours_of_use": -1}))
		assert.NoError(t, err)
		requireFailure(t, r, "validation error")
	}

	{
		r, err := client.RecordShift(ctx, mustStruct(t, map[string]any{"company": company}))
		assert.NoError(t, err)
		requireFailure(t, r, "validation error")
	}

	{
		r, err := client.GetPartStatus(ctx, mustStruct(t, map[string]any{"company": company, "code": "RF-404"}))
		assert.NoError(t, err)
		requireFailure(t, r, wear.ErrEquipmentNotFound.Error())
	}

	{
		r, err := client.SetLimiter(ctx, mustStruct(t, map[string]any{"company": company, "rate": 1, "burst": 1}))
		assert.NoError(t, err)
		requireFailure(t, r, "No effect")
	}
}

func TestInternalErrors(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, client, mockIEquipment, mockIUsage, mockIAlert := startTestServerWithMocks(t, true, true, true)
	defer ctrl.Finish()

	ctx := context.Background()
	company := uuid.NewString()

	mockIEquipment.EXPECT().
		ListEquipment(gomock.Any(), gomock.Eq(company)).
		Return(nil, fmt.Errorf("test error")).
		Times(1)
	mockIUsage.EXPECT().
		RecordUsage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *models.UsageRecord) error {
			assert.Equal(t, "0", in.HoursOfUse)
			assert.Equal(t, "Blade", in.ReplacedParts)
			return fmt.Errorf("test error")
		}).
		Times(1)
	mockIAlert.EXPECT().
		PartStatus(gomock.Any(), gomock.Eq(common.DefaultSessionID), gomock.Eq(company), gomock.Eq("RF-1")).
		Return(nil, tracker.ErrDataUnavailable).
		Times(1)

	r, err := client.ListEquipment(ctx, mustStruct(t, map[string]any{"company": company}))
	require.NoError(t, err)
	requireFailure(t, r, "test error")

	r, err = client.RecordUsage(ctx, mustStruct(t, map[string]any{"company": company, "code": "RF-1", "replaced_parts": "Blade"}))
	require.NoError(t, err)
	requireFailure(t, r, "test error")

	r, err = client.GetPartStatus(ctx, mustStruct(t, map[string]any{"company": company, "code": "RF-1"}))
	require.NoError(t, err)
	requireFailure(t, r, tracker.ErrDataUnavailable.Error())
}

func TestRateLimitInterceptor(t *testing.T) {
	common.SetTestLoggerNop()

	tr := newTestTracker(nil)
	limiterStore := tracker.NewRateLimiterStore(2, 2) // Allow 2 req/sec per company
	client := startTestServerWithInterceptor(t, tr, limiterStore)

	ctx := context.Background()
	company := seed(t, tr)
	req := mustStruct(t, map[string]any{"company": company})

	// First 2 requests should pass
	for i := range 2 {
		_, err := client.ListEquipment(ctx, req)
		require.NoError(t, err, "expected request %d to pass", i+1)
	}

	// 3rd request should fail immediately
	_, err := client.ListEquipment(ctx, req)
	require.Error(t, err, "expected third request to be rate limited")

	st, ok := status.FromError(err)
	require.True(t, ok, "expected gRPC status error")
	require.Equal(t, codes.ResourceExhausted, st.Code(), "expected ResourceExhausted code")

	// other companies are unaffected
	_, err = client.ListEquipment(ctx, mustStruct(t, map[string]any{"company": uuid.NewString()}))
	require.NoError(t, err)

	// limiter changes are never limited
	r, err := client.SetLimiter(ctx, mustStruct(t, map[string]any{"company": company, "rate": 3, "burst": 2}))
	require.NoError(t, err)
	requireSuccess(t, r)

	// Should pass again
	_, err = client.ListEquipment(ctx, req)
	require.NoError(t, err, "expected request after limiter change to pass")
}
