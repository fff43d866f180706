package definition

import (
	"math"

	"github.com/rg-atte/rs-cache/buffer"
)

// Npc is the decoded form of one NPC definition archive entry.
type Npc struct {
	ID               uint32
	Name             string
	Size             int
	Category         uint16
	Actions          [5]string
	VisibleOnMinimap bool
	CombatLevel      int
	Interactable     bool
	Follower         bool
	VarbitID         int
	VarpIndex        int
	Configs          []uint16

	Model      NpcModel
	Animations NpcAnimations
	Params     map[uint32]interface{}
}

// NpcModel holds the rendering fields of an NPC.
type NpcModel struct {
	Models           []uint16
	ChatHeadModels   []uint16
	RecolorFind      []uint16
	RecolorReplace   []uint16
	RetextureFind    []uint16
	RetextureReplace []uint16
	WidthScale       uint16
	HeightScale      uint16
	RenderPriority   bool
	Ambient          uint8
	Contrast         uint8
	RotateSpeed      uint16
	RotateFlag       bool
}

// NpcAnimations holds the movement animation ids of an NPC. A value of
// -1 means the definition sets none.
type NpcAnimations struct {
	Standing            int
	Walking             int
	Rotate180           int
	Rotate90Left        int
	Rotate90Right       int
	RotateLeft          int
	RotateRight         int
	Running             int
	RunningRotate180    int
	RunningRotateLeft   int
	RunningRotateRight  int
	Crawling            int
	CrawlingRotate180   int
	CrawlingRotateLeft  int
	CrawlingRotateRight int
}

// DecodeNpc decodes one NPC definition from its archive entry bytes.
func DecodeNpc(id uint32, data []byte) (*Npc, error) {
	def := &Npc{
		ID:           id,
		Size:         1,
		CombatLevel:  -1,
		Interactable: true,
		VarbitID:     -1,
		VarpIndex:    -1,
		Model: NpcModel{
			WidthScale:  128,
			HeightScale: 128,
			RotateSpeed: 32,
			RotateFlag:  true,
		},
		Animations: NpcAnimations{
			Standing: -1, Walking: -1, Rotate180: -1,
			Rotate90Left: -1, Rotate90Right: -1,
			RotateLeft: -1, RotateRight: -1,
			Running: -1, RunningRotate180: -1,
			RunningRotateLeft: -1, RunningRotateRight: -1,
			Crawling: -1, CrawlingRotate180: -1,
			CrawlingRotateLeft: -1, CrawlingRotateRight: -1,
		},
	}

	cur := buffer.New(data)
	for {
		opcode, err := cur.U8()
		if err != nil {
			return nil, err
		}
		if opcode == 0 {
			return def, nil
		}
		if err = decodeNpcField(def, cur, opcode); err != nil {
			return nil, err
		}
	}
}

func decodeNpcField(def *Npc, cur *buffer.Cursor, opcode uint8) error {
	var err error
	switch {
	case opcode == 1:
		def.Model.Models, err = readU16List(cur)
	case opcode == 2:
		def.Name, err = cur.String()
	case opcode == 12:
		var v uint8
		if v, err = cur.U8(); err == nil {
			def.Size = int(v)
		}
	case opcode == 13:
		def.Animations.Standing, err = readU16AsInt(cur)
	case opcode == 14:
		def.Animations.Walking, err = readU16AsInt(cur)
	case opcode == 15:
		def.Animations.RotateLeft, err = readU16AsInt(cur)
	case opcode == 16:
		def.Animations.RotateRight, err = readU16AsInt(cur)
	case opcode == 17:
		err = readInts(cur,
			&def.Animations.Walking, &def.Animations.Rotate180,
			&def.Animations.Rotate90Right, &def.Animations.Rotate90Left)
	case opcode == 18:
		def.Category, err = cur.U16()
	case opcode >= 30 && opcode <= 34:
		def.Actions[opcode-30], err = cur.String()
	case opcode == 40:
		def.Model.RecolorFind, def.Model.RecolorReplace, err = readPairList(cur)
	case opcode == 41:
		def.Model.RetextureFind, def.Model.RetextureReplace, err = readPairList(cur)
	case opcode == 60:
		def.Model.ChatHeadModels, err = readU16List(cur)
	case opcode == 93:
		def.VisibleOnMinimap = true
	case opcode == 95:
		def.CombatLevel, err = readU16AsInt(cur)
	case opcode == 97:
		def.Model.WidthScale, err = cur.U16()
	case opcode == 98:
		def.Model.HeightScale, err = cur.U16()
	case opcode == 99:
		def.Model.RenderPriority = true
	case opcode == 100:
		def.Model.Ambient, err = cur.U8()
	case opcode == 101:
		def.Model.Contrast, err = cur.U8()
	case opcode == 102:
		err = skipHeadIconFields(cur)
	case opcode == 103:
		def.Model.RotateSpeed, err = cur.U16()
	case opcode == 106 || opcode == 118:
		err = decodeNpcConfigs(def, cur, opcode == 118)
	case opcode == 107:
		def.Interactable = false
	case opcode == 109:
		def.Model.RotateFlag = false
	case opcode == 111:
		def.Follower = true
	case opcode == 114:
		def.Animations.Running, err = readU16AsInt(cur)
	case opcode == 115:
		err = readInts(cur,
			&def.Animations.Running, &def.Animations.RunningRotate180,
			&def.Animations.RunningRotateLeft, &def.Animations.RunningRotateRight)
	case opcode == 116:
		def.Animations.Crawling, err = readU16AsInt(cur)
	case opcode == 117:
		err = readInts(cur,
			&def.Animations.Crawling, &def.Animations.CrawlingRotate180,
			&def.Animations.CrawlingRotateLeft, &def.Animations.CrawlingRotateRight)
	case opcode == 122:
		def.Follower = true
	case opcode == 123:
		// low priority follower ops, no field retained
	case opcode == 249:
		def.Params, err = cur.Params()
	default:
		return &UnknownOpcodeError{Kind: "npc", Opcode: opcode}
	}
	return err
}

// decodeNpcConfigs reads the varbit/varp transform block shared by
// opcodes 106 and 118; 118 carries one extra default config id.
func decodeNpcConfigs(def *Npc, cur *buffer.Cursor, extended bool) error {
	varbit, err := cur.U16()
	if err != nil {
		return err
	}
	if varbit != math.MaxUint16 {
		def.VarbitID = int(varbit)
	}

	varp, err := cur.U16()
	if err != nil {
		return err
	}
	if varp != math.MaxUint16 {
		def.VarpIndex = int(varp)
	}

	if extended {
		if _, err = cur.U16(); err != nil {
			return err
		}
	}

	count, err := cur.U8()
	if err != nil {
		return err
	}
	def.Configs = make([]uint16, 0, int(count)+1)
	for i := 0; i <= int(count); i++ {
		v, err := cur.U16()
		if err != nil {
			return err
		}
		def.Configs = append(def.Configs, v)
	}
	return nil
}

// skipHeadIconFields consumes the opcode 102 head icon bitfield without
// retaining it: one smart pair per set bit.
func skipHeadIconFields(cur *buffer.Cursor) error {
	bits, err := cur.U8()
	if err != nil {
		return err
	}
	for b := bits; b != 0; b >>= 1 {
		if b&1 == 0 {
			continue
		}
		if _, err = cur.Smart(); err != nil {
			return err
		}
		if _, err = cur.USmart(); err != nil {
			return err
		}
	}
	return nil
}

func readU16List(cur *buffer.Cursor) ([]uint16, error) {
	count, err := cur.U8()
	if err != nil {
		return nil, err
	}
	out := make([]uint16, 0, count)
	for i := 0; i < int(count); i++ {
		v, err := cur.U16()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func readInts(cur *buffer.Cursor, dst ...*int) error {
	for _, d := range dst {
		v, err := cur.U16()
		if err != nil {
			return err
		}
		*d = int(v)
	}
	return nil
}
