package domain

import "github.com/google/uuid"

// Stream names
const (
	StreamShopUpsert  = "stream:shop:upsert"
	StreamShopIndexed = "stream:shop:indexed"
)

// ShopUpsertEvent - событие бэкенда о создании или изменении магазина
type ShopUpsertEvent struct {
	EventID uuid.UUID     `json:"event_id"`
	Shop    RawShopRecord `json:"shop"`
}

// ShopIndexedEvent - результат индексации магазина
type ShopIndexedEvent struct {
	EventID uuid.UUID `json:"event_id"`
	ShopID  string    `json:"shop_id,omitempty"`
	Slug    string    `json:"slug,omitempty"`
	HasGeo  bool      `json:"has_geo"`
	Error   string    `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
