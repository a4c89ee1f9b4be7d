package domain

// Subscription topic and delivery route for order events.
const (
	OrderProcessedTopic = "orderProcessed"
	OrderProcessedRoute = "/updatePopularProducts"
)

// Subscription declares interest in a pubsub topic to the sidecar.
type Subscription struct {
	PubsubName string `json:"pubsubname"`
	Topic      string `json:"topic"`
	Route      string `json:"route"`
}

// OrderProcessedSubscription returns the subscription for order events on
// the given pubsub component.
func OrderProcessedSubscription(pubsubName string) Subscription {
	return Subscription{
		PubsubName: pubsubName,
		Topic:      OrderProcessedTopic,
		Route:      OrderProcessedRoute,
	}
}
