package definition

import (
	"github.com/rg-atte/rs-cache/buffer"
)

// Item is the decoded form of one item definition archive entry.
type Item struct {
	ID                  uint32
	Name                string
	Stackable           bool
	Cost                int32
	MembersOnly         bool
	Tradable            bool
	Team                uint8
	Weight              uint16
	Category            uint16
	NotedID             int
	NotedTemplate       int
	PlaceholderID       int
	PlaceholderTemplate int
	BoughtLink          int
	BoughtTemplate      int
	ShiftClickDropIndex int

	GroundOptions    [5]string
	InterfaceOptions [5]string

	StackIDs    [10]uint16
	StackCounts [10]uint16

	Model  ItemModel
	Params map[uint32]interface{}
}

// ItemModel holds the inventory and character model fields of an item.
type ItemModel struct {
	InventoryModel uint16
	Zoom2D         uint16
	XAngle2D       uint16
	YAngle2D       uint16
	ZAngle2D       uint16
	XOffset2D      uint16
	YOffset2D      uint16
	ResizeX        uint16
	ResizeY        uint16
	ResizeZ        uint16
	Ambient        int8
	Contrast       int8

	ColorFind      []uint16
	ColorReplace   []uint16
	TextureFind    []uint16
	TextureReplace []uint16

	MaleModel0        int
	MaleModel1        int
	MaleModel2        int
	MaleModelOffset   uint8
	FemaleModel0      int
	FemaleModel1      int
	FemaleModel2      int
	FemaleModelOffset uint8
	MaleHeadModel0    int
	MaleHeadModel1    int
	FemaleHeadModel0  int
	FemaleHeadModel1  int
}

// DecodeItem decodes one item definition from its archive entry bytes.
func DecodeItem(id uint32, data []byte) (*Item, error) {
	def := &Item{
		ID:                  id,
		NotedID:             -1,
		NotedTemplate:       -1,
		PlaceholderID:       -1,
		PlaceholderTemplate: -1,
		BoughtLink:          -1,
		BoughtTemplate:      -1,
		ShiftClickDropIndex: -1,
		Model: ItemModel{
			Zoom2D:           2000,
			ResizeX:          128,
			ResizeY:          128,
			ResizeZ:          128,
			MaleModel0:       -1,
			MaleModel1:       -1,
			MaleModel2:       -1,
			FemaleModel0:     -1,
			FemaleModel1:     -1,
			FemaleModel2:     -1,
			MaleHeadModel0:   -1,
			MaleHeadModel1:   -1,
			FemaleHeadModel0: -1,
			FemaleHeadModel1: -1,
		},
	}
	def.GroundOptions[2] = "Take"
	def.InterfaceOptions[4] = "Drop"

	cur := buffer.New(data)
	for {
		opcode, err := cur.U8()
		if err != nil {
			return nil, err
		}
		if opcode == 0 {
			return def, nil
		}
		if err = decodeItemField(def, cur, opcode); err != nil {
			return nil, err
		}
	}
}

func decodeItemField(def *Item, cur *buffer.Cursor, opcode uint8) error {
	var err error
	switch {
	case opcode == 1:
		def.Model.InventoryModel, err = cur.U16()
	case opcode == 2:
		def.Name, err = cur.String()
	case opcode == 4:
		def.Model.Zoom2D, err = cur.U16()
	case opcode == 5:
		def.Model.XAngle2D, err = cur.U16()
	case opcode == 6:
		def.Model.YAngle2D, err = cur.U16()
	case opcode == 7:
		def.Model.XOffset2D, err = cur.U16()
	case opcode == 8:
		def.Model.YOffset2D, err = cur.U16()
	case opcode == 9:
		_, err = cur.String()
	case opcode == 11:
		def.Stackable = true
	case opcode == 12:
		def.Cost, err = cur.I32()
	case opcode == 13 || opcode == 14:
		_, err = cur.U8()
	case opcode == 16:
		def.MembersOnly = true
	case opcode == 23:
		def.Model.MaleModel0, err = readU16AsInt(cur)
		if err == nil {
			def.Model.MaleModelOffset, err = cur.U8()
		}
	case opcode == 24:
		def.Model.MaleModel1, err = readU16AsInt(cur)
	case opcode == 25:
		def.Model.FemaleModel0, err = readU16AsInt(cur)
		if err == nil {
			def.Model.FemaleModelOffset, err = cur.U8()
		}
	case opcode == 26:
		def.Model.FemaleModel1, err = readU16AsInt(cur)
	case opcode == 27:
		_, err = cur.U8()
	case opcode >= 30 && opcode <= 34:
		def.GroundOptions[opcode-30], err = cur.String()
	case opcode >= 35 && opcode <= 39:
		def.InterfaceOptions[opcode-35], err = cur.String()
	case opcode == 40:
		def.Model.ColorFind, def.Model.ColorReplace, err = readPairList(cur)
	case opcode == 41:
		def.Model.TextureFind, def.Model.TextureReplace, err = readPairList(cur)
	case opcode == 42:
		var v uint8
		if v, err = cur.U8(); err == nil {
			def.ShiftClickDropIndex = int(v)
		}
	case opcode == 65:
		def.Tradable = true
	case opcode == 75:
		def.Weight, err = cur.U16()
	case opcode == 78:
		def.Model.MaleModel2, err = readU16AsInt(cur)
	case opcode == 79:
		def.Model.FemaleModel2, err = readU16AsInt(cur)
	case opcode == 90:
		def.Model.MaleHeadModel0, err = readU16AsInt(cur)
	case opcode == 91:
		def.Model.FemaleHeadModel0, err = readU16AsInt(cur)
	case opcode == 92:
		def.Model.MaleHeadModel1, err = readU16AsInt(cur)
	case opcode == 93:
		def.Model.FemaleHeadModel1, err = readU16AsInt(cur)
	case opcode == 94:
		def.Category, err = cur.U16()
	case opcode == 95:
		def.Model.ZAngle2D, err = cur.U16()
	case opcode == 97:
		def.NotedID, err = readU16AsInt(cur)
	case opcode == 98:
		def.NotedTemplate, err = readU16AsInt(cur)
		def.Stackable = true
	case opcode >= 100 && opcode <= 109:
		def.StackIDs[opcode-100], err = cur.U16()
		if err == nil {
			def.StackCounts[opcode-100], err = cur.U16()
		}
	case opcode == 110:
		def.Model.ResizeX, err = cur.U16()
	case opcode == 111:
		def.Model.ResizeY, err = cur.U16()
	case opcode == 112:
		def.Model.ResizeZ, err = cur.U16()
	case opcode == 113:
		def.Model.Ambient, err = cur.I8()
	case opcode == 114:
		def.Model.Contrast, err = cur.I8()
	case opcode == 115:
		def.Team, err = cur.U8()
	case opcode == 139:
		def.BoughtLink, err = readU16AsInt(cur)
	case opcode == 140:
		def.BoughtTemplate, err = readU16AsInt(cur)
	case opcode == 148:
		def.PlaceholderID, err = readU16AsInt(cur)
	case opcode == 149:
		def.PlaceholderTemplate, err = readU16AsInt(cur)
	case opcode == 249:
		def.Params, err = cur.Params()
	default:
		return &UnknownOpcodeError{Kind: "item", Opcode: opcode}
	}
	return err
}

func readU16AsInt(cur *buffer.Cursor) (int, error) {
	v, err := cur.U16()
	return int(v), err
}

// readPairList reads a count byte followed by that many (find, replace)
// u16 pairs, the shared layout of recolor and retexture opcodes.
func readPairList(cur *buffer.Cursor) (find, replace []uint16, err error) {
	count, err := cur.U8()
	if err != nil {
		return nil, nil, err
	}
	find = make([]uint16, 0, count)
	replace = make([]uint16, 0, count)
	for i := 0; i < int(count); i++ {
		f, err := cur.U16()
		if err != nil {
			return nil, nil, err
		}
		r, err := cur.U16()
		if err != nil {
			return nil, nil, err
		}
		find = append(find, f)
		replace = append(replace, r)
	}
	return find, replace, nil
}
