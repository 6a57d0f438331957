package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation states for a visitor session.
const (
	StateIdle       = "idle"
	StateOrdering   = "ordering"
	StateCheckout   = "checkout"
	StateScheduling = "scheduling"
)

// Session tracks where a visitor is in the conversation. Sessions are
// created lazily on first contact and are never deleted.
type Session struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	SessionID    string              `bson:"sessionId" json:"sessionId"`
	State        string              `bson:"state" json:"state"`
	CurrentOrder *primitive.ObjectID `bson:"currentOrder,omitempty" json:"currentOrder,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}
