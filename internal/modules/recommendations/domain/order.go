package domain

// OrderItem is a single line of a processed order.
type OrderItem struct {
	ID       ProductID `json:"id"`
	Quantity int       `json:"quantity"`
}

// OrderProcessedEvent is the payload published on the orderProcessed topic.
// Pubsub deliveries arrive wrapped in a CloudEvent envelope with the payload
// under Data; direct posts carry Items at the top level.
type OrderProcessedEvent struct {
	Items []OrderItem   `json:"items"`
	Data  *OrderPayload `json:"data,omitempty"`
}

// OrderPayload is the CloudEvent data section of an order event.
type OrderPayload struct {
	Items []OrderItem `json:"items"`
}

// LineItems returns the order lines from whichever shape was delivered.
// A payload without items yields none.
func (e OrderProcessedEvent) LineItems() []OrderItem {
	if e.Items != nil {
		return e.Items
	}
	if e.Data != nil {
		return e.Data.Items
	}
	return nil
}

// PopularityUpdate is the body sent to updateProductPopularity/{id}.
type PopularityUpdate struct {
	Quantity int `json:"quantity"`
}
