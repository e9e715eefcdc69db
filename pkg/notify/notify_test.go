package notify

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"

	"liyu1981.xyz/consumable-wear-service/pkg/common"
	"liyu1981.xyz/consumable-wear-service/pkg/config"
	"liyu1981.xyz/consumable-wear-service/pkg/notify/mocks"
	"liyu1981.xyz/consumable-wear-service/pkg/wear"
)

func sampleAlert() wear.Alert {
	return wear.Alert{
		Company:        "Acme",
		Code:           "RF-1",
		Part:           "Blade",
		HoursRemaining: 12.5,
		Description:    "carbide blade",
		Tier:           wear.ImminentFailure,
		RaisedAt:       time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestLogNotifier(t *testing.T) {
	var buf = &bytes.Buffer{}
	common.SetTestCaptureLogger(buf, zapcore.InfoLevel)

	require.NoError(t, NewLogNotifier().Notify(context.Background(), sampleAlert()))

	found := false
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var lobj map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &lobj); err != nil {
			continue
		}
		if lobj["logger"] == "notifier" &&
			lobj["category"] == "notify" &&
			lobj["msg"] == "ALERT: critical consumable on RF-1 (Acme)" &&
			lobj["alert"].(map[string]any)["tier"] == "imminent_failure" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestMulti(t *testing.T) {
	ctx := context.Background()
	var calls []string

	ok := wear.NotifierFunc(func(ctx context.Context, a wear.Alert) error {
		calls = append(calls, "ok")
		return nil
	})
	bad := wear.NotifierFunc(func(ctx context.Context, a wear.Alert) error {
		calls = append(calls, "bad")
		return errors.New("offline")
	})

	assert.NoError(t, Multi{ok, ok}.Notify(ctx, sampleAlert()))

	calls = nil
	err := Multi{bad, ok}.Notify(ctx, sampleAlert())
	assert.ErrorContains(t, err, "offline")
	assert.Equal(t, []string{"bad", "ok"}, calls)

	assert.ErrorIs(t, Multi{}.Notify(ctx, sampleAlert()), wear.ErrNoNotifier)
}

func TestCombine(t *testing.T) {
	assert.Nil(t, Combine(nil, nil))

	log := NewLogNotifier()
	assert.Same(t, log, Combine(nil, log))

	combined := Combine(log, NewHub())
	assert.Len(t, combined, 2)
}

func TestSMTPNotifier(t *testing.T) {
	common.SetTestLoggerNop()

	_, err := NewSMTPNotifier(config.SMTP{Host: "smtp.example.com", Port: 465})
	assert.ErrorIs(t, err, ErrSMTPNotConfigured)

	n, err := NewSMTPNotifier(config.SMTP{
		Host:     "smtp.example.com",
		Port:     465,
		Username: "alerts@example.com",
		Password: "secret",
		From:     "alerts@example.com",
		To:       []string{"ops@example.com", "plant@example.com"},
	})
	require.NoError(t, err)

	var (
		gotAddr string
		gotAuth smtp.Auth
		gotTo   []string
		gotMsg  string
	)
	n.WithSendFunc(func(ctx context.Context, addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotTo, gotMsg = addr, auth, to, string(msg)
		return nil
	})

	require.NoError(t, n.Notify(context.Background(), sampleAlert()))
	assert.Equal(t, "smtp.example.com:465", gotAddr)
	assert.NotNil(t, gotAuth)
	assert.Equal(t, []string{"ops@example.com", "plant@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: ALERT: critical consumable on RF-1 (Acme)\r\n")
	assert.Contains(t, gotMsg, "To: ops@example.com, plant@example.com\r\n")
	assert.Contains(t, gotMsg, "12.5 hours of service life remain")
	assert.Contains(t, gotMsg, "carbide blade")

	parts := strings.SplitN(gotMsg, "\r\n\r\n", 2)
	require.Len(t, parts, 2)
	assert.NotContains(t, strings.ReplaceAll(parts[1], "\r\n", ""), "\n")

	n.WithSendFunc(func(ctx context.Context, addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		return errors.New("535 authentication failed")
	})
	err = n.Notify(context.Background(), sampleAlert())
	assert.ErrorContains(t, err, "535 authentication failed")
}

func TestRedisNotifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	publisher := mocks.NewMockPublisher(ctrl)
	n := NewRedisNotifierWithPublisher(publisher)

	publisher.EXPECT().
		Publish(gomock.Any(), "company:Acme:alerts", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, message any) *redis.IntCmd {
			var got map[string]any
			require.NoError(t, json.Unmarshal(message.([]byte), &got))
			assert.Equal(t, "Blade", got["part"])
			assert.Equal(t, "imminent_failure", got["tier"])
			assert.Equal(t, 12.5, got["hours_remaining"])
			return redis.NewIntResult(1, nil)
		})
	require.NoError(t, n.Notify(context.Background(), sampleAlert()))

	publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(redis.NewIntResult(0, errors.New("connection refused")))
	assert.ErrorContains(t, n.Notify(context.Background(), sampleAlert()), "connection refused")

	assert.NoError(t, n.Close())

	var unset *RedisNotifier
	assert.NoError(t, unset.Close())
}
