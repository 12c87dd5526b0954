package inventory

import (
	"atlas-maple2/inventory"
	"atlas-maple2/item"
	inventory2 "atlas-maple2/kafka/message/inventory"
	"atlas-maple2/kafka/producer"
	"atlas-maple2/session"
	"atlas-maple2/tab"
	"context"
	"sync"
	"testing"

	"github.com/Chronicle20/atlas-model/model"
	tenant "github.com/Chronicle20/atlas-tenant"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testLogger() logrus.FieldLogger {
	l, _ := test.NewNullLogger()
	return l
}

type counter struct {
	lock  sync.Mutex
	count int
}

func (c *counter) provider() producer.Provider {
	return func(token string) producer.MessageProducer {
		return func(p model.Provider[[]kafka.Message]) error {
			ms, err := p()
			if err != nil {
				return err
			}
			c.lock.Lock()
			defer c.lock.Unlock()
			c.count += len(ms)
			return nil
		}
	}
}

func testSession(t *testing.T, ctx context.Context, characterId uint32, c *counter) (*session.Processor, *session.Model) {
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	if err = item.Migration(db); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}
	sp := session.NewProcessor(testLogger(), ctx, db).WithProducer(c.provider())
	if err = sp.Create(uuid.New(), characterId, 0, 1); err != nil {
		t.Fatalf("Unable to create session: %v", err)
	}
	s, _ := sp.GetByCharacterId(characterId)
	return sp, s
}

func TestCommandsRouteToSession(t *testing.T) {
	l := testLogger()
	te, _ := tenant.Create(uuid.New(), "KMS", 2, 1)
	ctx := tenant.WithContext(context.Background(), te)
	c := &counter{}
	sp, s := testSession(t, ctx, 9, c)

	handleAddCommand(l, ctx, inventory2.Command[inventory2.AddCommandBody]{
		TransactionId: uuid.New(),
		CharacterId:   9,
		Type:          inventory2.CommandAdd,
		Body: inventory2.AddCommandBody{
			Item: inventory2.ItemBody{Id: 1, TemplateId: 100, Tab: byte(tab.TypeConsumable), Slot: -1, Amount: 5, SlotMax: 10},
		},
	})
	// Mismatched type is ignored.
	handleRemoveCommand(l, ctx, inventory2.Command[inventory2.RemoveCommandBody]{CharacterId: 9, Type: inventory2.CommandAdd, Body: inventory2.RemoveCommandBody{Id: 1}})
	handleUpdateAmountCommand(l, ctx, inventory2.Command[inventory2.UpdateAmountCommandBody]{CharacterId: 9, Type: inventory2.CommandUpdateAmount, Body: inventory2.UpdateAmountCommandBody{Id: 1, Amount: 3}})
	handleMoveCommand(l, ctx, inventory2.Command[inventory2.MoveCommandBody]{CharacterId: 9, Type: inventory2.CommandMove, Body: inventory2.MoveCommandBody{Id: 1, Destination: 4}})
	handleSortCommand(l, ctx, inventory2.Command[inventory2.SortCommandBody]{CharacterId: 9, Type: inventory2.CommandSort, Body: inventory2.SortCommandBody{Tab: byte(tab.TypeConsumable)}})
	handleLoadTabCommand(l, ctx, inventory2.Command[inventory2.LoadTabCommandBody]{CharacterId: 9, Type: inventory2.CommandLoadTab, Body: inventory2.LoadTabCommandBody{Tab: byte(tab.TypeConsumable)}})
	handlePickUpCommand(l, ctx, inventory2.Command[inventory2.PickUpCommandBody]{CharacterId: 9, Type: inventory2.CommandPickUp, Body: inventory2.PickUpCommandBody{Item: inventory2.ItemBody{Id: 2, TemplateId: 200, Tab: byte(tab.TypeGear), Slot: -1, Amount: 1, SlotMax: 1}}})
	handleDropCommand(l, ctx, inventory2.Command[inventory2.DropCommandBody]{CharacterId: 9, Type: inventory2.CommandDrop, Body: inventory2.DropCommandBody{Id: 2, Amount: 1, Bound: true}})
	// Characters without a session are ignored.
	handleRemoveCommand(l, ctx, inventory2.Command[inventory2.RemoveCommandBody]{CharacterId: 10, Type: inventory2.CommandRemove, Body: inventory2.RemoveCommandBody{Id: 1}})

	m, err := session.Query(s, func(p *inventory.Processor) item.Model {
		m, _ := p.Inventory().Get(1)
		return m
	})
	if err != nil {
		t.Fatalf("Unable to query session: %v", err)
	}
	if m.Amount() != 3 || m.Slot() != 0 {
		t.Fatalf("Expected amount [3] in slot [0] after sort, got [%d] in [%d].", m.Amount(), m.Slot())
	}
	size, _ := session.Query(s, func(p *inventory.Processor) int {
		return p.Inventory().Size()
	})
	if size != 1 {
		t.Fatalf("Expected dropped item to be gone, found [%d] items.", size)
	}

	_ = sp.Destroy(s.Id(), 9)
	// added, updated, moved, reset, loaded, reset, loaded, added, removed
	if c.count != 9 {
		t.Fatalf("Expected [9] notifications, got [%d].", c.count)
	}
}
