package save

import "github.com/nathoo/sotftools/engine/record"

// PlayerInventory is the Data object of PlayerInventorySaveData.json.
type PlayerInventory struct {
	PlayerInventory record.Embedded[PlayerInventoryInner]
	Extra           record.Residual
}

func (p *PlayerInventory) fields() []record.Field {
	return []record.Field{
		record.F("PlayerInventory", &p.PlayerInventory),
	}
}

func (p PlayerInventory) MarshalJSON() ([]byte, error) {
	return record.Encode(p.fields(), p.Extra)
}

func (p *PlayerInventory) UnmarshalJSON(data []byte) error {
	*p = PlayerInventory{}
	return record.Decode(data, p.fields(), &p.Extra)
}

// PlayerInventoryInner is the embedded inventory document. Equipped items
// and quick-select slots stay in Extra.
type PlayerInventoryInner struct {
	ItemInstanceManagerData ItemInstanceManagerData
	Extra                   record.Residual
}

func (p *PlayerInventoryInner) fields() []record.Field {
	return []record.Field{
		record.F("ItemInstanceManagerData", &p.ItemInstanceManagerData),
	}
}

func (p PlayerInventoryInner) MarshalJSON() ([]byte, error) {
	return record.Encode(p.fields(), p.Extra)
}

func (p *PlayerInventoryInner) UnmarshalJSON(data []byte) error {
	*p = PlayerInventoryInner{}
	return record.Decode(data, p.fields(), &p.Extra)
}

type ItemInstanceManagerData struct {
	ItemBlocks []ItemBlock
	Extra      record.Residual
}

func (d *ItemInstanceManagerData) fields() []record.Field {
	return []record.Field{
		record.Opt("ItemBlocks", &d.ItemBlocks),
	}
}

func (d ItemInstanceManagerData) MarshalJSON() ([]byte, error) {
	return record.Encode(d.fields(), d.Extra)
}

func (d *ItemInstanceManagerData) UnmarshalJSON(data []byte) error {
	*d = ItemInstanceManagerData{ItemBlocks: []ItemBlock{}}
	return record.Decode(data, d.fields(), &d.Extra)
}

// ItemBlock is a stack of one item type in the player's inventory.
type ItemBlock struct {
	ItemID     ItemID
	TotalCount int32
	Extra      record.Residual
}

func (b *ItemBlock) fields() []record.Field {
	return []record.Field{
		record.F("ItemId", &b.ItemID),
		record.F("TotalCount", &b.TotalCount),
	}
}

func (b ItemBlock) MarshalJSON() ([]byte, error) {
	return record.Encode(b.fields(), b.Extra)
}

func (b *ItemBlock) UnmarshalJSON(data []byte) error {
	*b = ItemBlock{}
	return record.Decode(data, b.fields(), &b.Extra)
}
