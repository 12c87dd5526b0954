package inventory

import (
	"atlas-maple2/item"
	inventory2 "atlas-maple2/kafka/message/inventory"
	"atlas-maple2/tab"

	"github.com/Chronicle20/atlas-kafka/producer"
	"github.com/Chronicle20/atlas-model/model"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

func makeItemBody(m item.Model) inventory2.ItemBody {
	return inventory2.ItemBody{
		Id:         m.Id(),
		TemplateId: m.TemplateId(),
		Tab:        byte(m.Tab()),
		Slot:       m.Slot(),
		Amount:     m.Amount(),
		SlotMax:    m.SlotMax(),
		Data:       m.Data(),
	}
}

func addedEventStatusProvider(transactionId uuid.UUID, characterId uint32, m item.Model) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(characterId))
	value := &inventory2.StatusEvent[inventory2.AddedStatusEventBody]{
		TransactionId: transactionId,
		CharacterId:   characterId,
		Type:          inventory2.StatusEventTypeAdded,
		Body: inventory2.AddedStatusEventBody{
			Item: makeItemBody(m),
		},
	}
	return producer.SingleMessageProvider(key, value)
}

func updatedEventStatusProvider(transactionId uuid.UUID, characterId uint32, id uint64, amount uint32) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(characterId))
	value := &inventory2.StatusEvent[inventory2.UpdatedStatusEventBody]{
		TransactionId: transactionId,
		CharacterId:   characterId,
		Type:          inventory2.StatusEventTypeUpdated,
		Body: inventory2.UpdatedStatusEventBody{
			Id:     id,
			Amount: amount,
		},
	}
	return producer.SingleMessageProvider(key, value)
}

func removedEventStatusProvider(transactionId uuid.UUID, characterId uint32, id uint64) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(characterId))
	value := &inventory2.StatusEvent[inventory2.RemovedStatusEventBody]{
		TransactionId: transactionId,
		CharacterId:   characterId,
		Type:          inventory2.StatusEventTypeRemoved,
		Body: inventory2.RemovedStatusEventBody{
			Id: id,
		},
	}
	return producer.SingleMessageProvider(key, value)
}

func movedEventStatusProvider(transactionId uuid.UUID, characterId uint32, bumpedId uint64, sourceSlot int16, id uint64, destinationSlot int16) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(characterId))
	value := &inventory2.StatusEvent[inventory2.MovedStatusEventBody]{
		TransactionId: transactionId,
		CharacterId:   characterId,
		Type:          inventory2.StatusEventTypeMoved,
		Body: inventory2.MovedStatusEventBody{
			BumpedId:        bumpedId,
			SourceSlot:      sourceSlot,
			Id:              id,
			DestinationSlot: destinationSlot,
		},
	}
	return producer.SingleMessageProvider(key, value)
}

func markedNewEventStatusProvider(transactionId uuid.UUID, characterId uint32, id uint64, amount uint32) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(characterId))
	value := &inventory2.StatusEvent[inventory2.MarkedNewStatusEventBody]{
		TransactionId: transactionId,
		CharacterId:   characterId,
		Type:          inventory2.StatusEventTypeMarkedNew,
		Body: inventory2.MarkedNewStatusEventBody{
			Id:     id,
			Amount: amount,
		},
	}
	return producer.SingleMessageProvider(key, value)
}

func tabResetEventStatusProvider(transactionId uuid.UUID, characterId uint32, t tab.Type) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(characterId))
	value := &inventory2.StatusEvent[inventory2.TabResetStatusEventBody]{
		TransactionId: transactionId,
		CharacterId:   characterId,
		Type:          inventory2.StatusEventTypeTabReset,
		Body: inventory2.TabResetStatusEventBody{
			Tab: byte(t),
		},
	}
	return producer.SingleMessageProvider(key, value)
}

func tabLoadedEventStatusProvider(transactionId uuid.UUID, characterId uint32, t tab.Type, ms []item.Model) model.Provider[[]kafka.Message] {
	items := make([]inventory2.ItemBody, 0, len(ms))
	for _, m := range ms {
		items = append(items, makeItemBody(m))
	}
	key := producer.CreateKey(int(characterId))
	value := &inventory2.StatusEvent[inventory2.TabLoadedStatusEventBody]{
		TransactionId: transactionId,
		CharacterId:   characterId,
		Type:          inventory2.StatusEventTypeTabLoaded,
		Body: inventory2.TabLoadedStatusEventBody{
			Tab:   byte(t),
			Items: items,
		},
	}
	return producer.SingleMessageProvider(key, value)
}
