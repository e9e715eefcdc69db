package wear

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -source=notifier.go -destination=mocks/mock_notifier.go -package=mocks

// Alert is a rendered notification request for one part.
type Alert struct {
	Company        string    `json:"company"`
	Code           string    `json:"code"`
	Part           string    `json:"part"`
	HoursRemaining float64   `json:"hours_remaining"`
	Description    string    `json:"description"`
	Tier           Tier      `json:"tier"`
	RaisedAt       time.Time `json:"raised_at"`
}

func (a Alert) Key() PartKey {
	return PartKey{Company: a.Company, Code: a.Code, Part: a.Part}
}

func (a Alert) Subject() string {
	return fmt.Sprintf("ALERT: critical consumable on %s (%s)", a.Code, a.Company)
}

func (a Alert) Body() string {
	description := a.Description
	if description == "" {
		description = "no description available"
	}
	return fmt.Sprintf(
		"Consumable '%s' of equipment '%s' at company '%s' is in imminent failure. "+
			"%.1f hours of service life remain.\n\nDescription: %s\n",
		a.Part, a.Code, a.Company, a.HoursRemaining, description,
	)
}

// Notifier sends one alert. A nil error means the message was accepted.
type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
}

type NotifierFunc func(ctx context.Context, alert Alert) error

func (f NotifierFunc) Notify(ctx context.Context, alert Alert) error {
	return f(ctx, alert)
}

// Delivery is the outcome of sending one alert.
type Delivery struct {
	Alert Alert
	Err   error
}

func (d Delivery) Delivered() bool {
	return d.Err == nil
}

// Deliver sends every alert in order. Failures do not stop later sends and
// are never retried here.
func Deliver(ctx context.Context, n Notifier, alerts []Alert) []Delivery {
	deliveries := make([]Delivery, 0, len(alerts))
	for _, a := range alerts {
		var err error
		if n == nil {
			err = ErrNoNotifier
		} else {
			err = n.Notify(ctx, a)
		}
		deliveries = append(deliveries, Delivery{Alert: a, Err: err})
	}
	return deliveries
}
