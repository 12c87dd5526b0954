package item

import (
	"atlas-maple2/tab"
	"fmt"
	"strconv"
)

type RestModel struct {
	Id         uint64 `json:"-"`
	TemplateId uint32 `json:"templateId"`
	Tab        string `json:"tab"`
	Slot       int16  `json:"slot"`
	Amount     uint32 `json:"amount"`
	SlotMax    uint32 `json:"slotMax"`
}

func (r RestModel) GetName() string {
	return "items"
}

func (r RestModel) GetID() string {
	return strconv.FormatUint(r.Id, 10)
}

func (r *RestModel) SetID(strId string) error {
	id, err := strconv.ParseUint(strId, 10, 64)
	if err != nil {
		return err
	}
	r.Id = id
	return nil
}

func Transform(m Model) (RestModel, error) {
	return RestModel{
		Id:         m.id,
		TemplateId: m.templateId,
		Tab:        m.tab.String(),
		Slot:       m.slot,
		Amount:     m.amount,
		SlotMax:    m.slotMax,
	}, nil
}

func Extract(rm RestModel) (Model, error) {
	t, ok := tab.FromName(rm.Tab)
	if !ok {
		return Model{}, fmt.Errorf("unknown tab [%s]", rm.Tab)
	}
	return Model{
		id:         rm.Id,
		templateId: rm.TemplateId,
		tab:        t,
		slot:       rm.Slot,
		amount:     rm.Amount,
		slotMax:    rm.SlotMax,
	}, nil
}
