package service

import (
	"context"

	"whoof-notifications/internal/domain/entity"
	"whoof-notifications/internal/domain/service"
)

// ChannelRouter picks the delivery channel per notification. Reactivation
// messages go out by email, since dormant users rarely keep push enabled;
// everything else goes to the push gateway.
type ChannelRouter struct {
	push  service.DeliveryChannel
	email service.DeliveryChannel
}

// NewChannelRouter creates the router. email may be nil, in which case
// everything routes to push.
func NewChannelRouter(push, email service.DeliveryChannel) *ChannelRouter {
	return &ChannelRouter{push: push, email: email}
}

func (r *ChannelRouter) Deliver(ctx context.Context, delivery *entity.Delivery) error {
	if r.email != nil && delivery.Data["category"] == string(entity.CategoryReactivation) {
		return r.email.Deliver(ctx, delivery)
	}
	return r.push.Deliver(ctx, delivery)
}
