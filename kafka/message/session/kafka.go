package session

import "github.com/google/uuid"

const (
	EnvEventTopicSessionStatus  = "EVENT_TOPIC_SESSION_STATUS"
	EventSessionStatusCreated   = "CREATED"
	EventSessionStatusDestroyed = "DESTROYED"
)

type StatusEvent struct {
	SessionId   uuid.UUID `json:"sessionId"`
	AccountId   uint32    `json:"accountId"`
	CharacterId uint32    `json:"characterId"`
	WorldId     byte      `json:"worldId"`
	ChannelId   byte      `json:"channelId"`
	Type        string    `json:"type"`
}
