// Package jobs holds the periodic job clients: heartbeat, low-stock
// replenishment, order reminders and report generation. Each job is one
// synchronous round trip against the CRM API followed by a timestamped
// append to its log sink. API failures are logged and swallowed, never
// fatal; only a sink write failure is returned.
package jobs

import (
	"context"
	"fmt"
	"time"
)

// Heartbeat logs liveness, including whether the API answered hello.
func Heartbeat(ctx context.Context, now time.Time, api *APIClient, sink Sink) error {
	hello, err := api.Hello(ctx)
	if err != nil {
		hello = "unavailable"
	}
	return sink.Append(fmt.Sprintf("%s CRM is alive (%s)", Timestamp(now), hello))
}

// LowStock triggers the replenishment mutation and logs its outcome.
func LowStock(ctx context.Context, now time.Time, api *APIClient, sink Sink, incrementBy, threshold int) error {
	result, err := api.UpdateLowStock(ctx, incrementBy, threshold)
	if err != nil {
		return sink.Append(fmt.Sprintf("%s error: %s", Timestamp(now), err))
	}

	if err := sink.Append(fmt.Sprintf("%s %s", Timestamp(now), result.Message)); err != nil {
		return err
	}
	for _, p := range result.UpdatedProducts {
		if err := sink.Append(fmt.Sprintf("%s   %s stock=%d", Timestamp(now), p.Name, p.Stock)); err != nil {
			return err
		}
	}
	return nil
}

// Reminders logs one line per pending order from the last week. Returns the
// number of reminders written so the caller can report progress.
func Reminders(ctx context.Context, now time.Time, api *APIClient, sink Sink) (int, error) {
	orders, err := api.PendingOrdersLastWeek(ctx)
	if err != nil {
		return 0, sink.Append(fmt.Sprintf("%s Error fetching orders: %s", Timestamp(now), err))
	}

	for _, o := range orders {
		line := fmt.Sprintf("%s Reminder -> order_id=%d, customer_email=%s", Timestamp(now), o.ID, o.Customer.Email)
		if err := sink.Append(line); err != nil {
			return 0, err
		}
	}
	return len(orders), nil
}

// Report logs the aggregate counters: customers, orders, total revenue.
func Report(ctx context.Context, now time.Time, api *APIClient, sink Sink) error {
	customers, err := api.CustomersCount(ctx)
	if err != nil {
		return sink.Append(fmt.Sprintf("%s Error generating report: %s", Timestamp(now), err))
	}
	orders, err := api.OrdersCount(ctx)
	if err != nil {
		return sink.Append(fmt.Sprintf("%s Error generating report: %s", Timestamp(now), err))
	}
	revenue, err := api.OrdersRevenue(ctx)
	if err != nil {
		return sink.Append(fmt.Sprintf("%s Error generating report: %s", Timestamp(now), err))
	}

	return sink.Append(fmt.Sprintf("%s - Report: %d customers, %d orders, %s revenue",
		Timestamp(now), customers, orders, revenue))
}
