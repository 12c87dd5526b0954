package inventory

import "github.com/google/uuid"

const (
	EnvEventTopicStatus      = "EVENT_TOPIC_INVENTORY_STATUS"
	StatusEventTypeAdded     = "ADDED"
	StatusEventTypeUpdated   = "UPDATED"
	StatusEventTypeRemoved   = "REMOVED"
	StatusEventTypeMoved     = "MOVED"
	StatusEventTypeMarkedNew = "MARKED_NEW"
	StatusEventTypeTabReset  = "TAB_RESET"
	StatusEventTypeTabLoaded = "TAB_LOADED"
)

type StatusEvent[E any] struct {
	TransactionId uuid.UUID `json:"transactionId"`
	CharacterId   uint32    `json:"characterId"`
	Type          string    `json:"type"`
	Body          E         `json:"body"`
}

type ItemBody struct {
	Id         uint64 `json:"id,string"`
	TemplateId uint32 `json:"templateId"`
	Tab        byte   `json:"tab"`
	Slot       int16  `json:"slot"`
	Amount     uint32 `json:"amount"`
	SlotMax    uint32 `json:"slotMax"`
	Data       []byte `json:"data,omitempty"`
}

type AddedStatusEventBody struct {
	Item ItemBody `json:"item"`
}

type UpdatedStatusEventBody struct {
	Id     uint64 `json:"id,string"`
	Amount uint32 `json:"amount"`
}

type RemovedStatusEventBody struct {
	Id uint64 `json:"id,string"`
}

// MovedStatusEventBody describes both halves of a swap. BumpedId is zero when
// the destination was empty.
type MovedStatusEventBody struct {
	BumpedId        uint64 `json:"bumpedId,string"`
	SourceSlot      int16  `json:"sourceSlot"`
	Id              uint64 `json:"id,string"`
	DestinationSlot int16  `json:"destinationSlot"`
}

type MarkedNewStatusEventBody struct {
	Id     uint64 `json:"id,string"`
	Amount uint32 `json:"amount"`
}

type TabResetStatusEventBody struct {
	Tab byte `json:"tab"`
}

type TabLoadedStatusEventBody struct {
	Tab   byte       `json:"tab"`
	Items []ItemBody `json:"items"`
}

const (
	EnvCommandTopic     = "COMMAND_TOPIC_INVENTORY"
	CommandAdd          = "ADD"
	CommandPickUp       = "PICK_UP"
	CommandRemove       = "REMOVE"
	CommandDrop         = "DROP"
	CommandMove         = "MOVE"
	CommandSort         = "SORT"
	CommandLoadTab      = "LOAD_TAB"
	CommandUpdateAmount = "UPDATE_AMOUNT"
)

type Command[E any] struct {
	TransactionId uuid.UUID `json:"transactionId"`
	CharacterId   uint32    `json:"characterId"`
	Type          string    `json:"type"`
	Body          E         `json:"body"`
}

type AddCommandBody struct {
	Item    ItemBody `json:"item"`
	MarkNew bool     `json:"markNew"`
}

type PickUpCommandBody struct {
	Item    ItemBody `json:"item"`
	MarkNew bool     `json:"markNew"`
}

type RemoveCommandBody struct {
	Id uint64 `json:"id,string"`
}

type DropCommandBody struct {
	Id     uint64 `json:"id,string"`
	Amount uint32 `json:"amount"`
	Bound  bool   `json:"bound"`
}

type MoveCommandBody struct {
	Id          uint64 `json:"id,string"`
	Destination int16  `json:"destination"`
}

type SortCommandBody struct {
	Tab byte `json:"tab"`
}

type LoadTabCommandBody struct {
	Tab byte `json:"tab"`
}

type UpdateAmountCommandBody struct {
	Id     uint64 `json:"id,string"`
	Amount uint32 `json:"amount"`
}
