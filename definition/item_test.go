package definition

import (
	"errors"
	"testing"

	"github.com/rg-atte/rs-cache/buffer"
)

// itemStream encodes a small but representative opcode stream.
func itemStream() []byte {
	var b []byte
	b = append(b, 1, 0x03, 0xE8) // inventory model 1000
	b = append(b, 2)
	b = append(b, []byte("Abyssal whip")...)
	b = append(b, 0)
	b = append(b, 11)                      // stackable
	b = append(b, 12, 0x00, 0x01, 0x86, 0xA0) // cost 100000
	b = append(b, 16)                      // members only
	b = append(b, 30)                      // ground option 0
	b = append(b, []byte("Wield")...)
	b = append(b, 0)
	b = append(b, 40, 1, 0x00, 0x10, 0x00, 0x20) // recolor 16 -> 32
	b = append(b, 65)                            // tradable
	b = append(b, 115, 4)                        // team 4
	b = append(b, 249,                            // params
		1,
		0, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x07)
	b = append(b, 0) // terminator
	return b
}

func TestDecodeItem(t *testing.T) {
	def, err := DecodeItem(4151, itemStream())
	if err != nil {
		t.Fatal(err)
	}

	if def.Name != "Abyssal whip" {
		t.Errorf("name %q", def.Name)
	}
	if def.Model.InventoryModel != 1000 {
		t.Errorf("inventory model %d", def.Model.InventoryModel)
	}
	if !def.Stackable || !def.MembersOnly || !def.Tradable {
		t.Errorf("flags: stackable=%v members=%v tradable=%v",
			def.Stackable, def.MembersOnly, def.Tradable)
	}
	if def.Cost != 100000 {
		t.Errorf("cost %d", def.Cost)
	}
	if def.GroundOptions[0] != "Wield" {
		t.Errorf("ground option %q", def.GroundOptions[0])
	}
	// option 2 keeps its default when the stream doesn't set it
	if def.GroundOptions[2] != "Take" {
		t.Errorf("default ground option %q", def.GroundOptions[2])
	}
	if len(def.Model.ColorFind) != 1 || def.Model.ColorFind[0] != 16 || def.Model.ColorReplace[0] != 32 {
		t.Errorf("recolors %v -> %v", def.Model.ColorFind, def.Model.ColorReplace)
	}
	if def.Team != 4 {
		t.Errorf("team %d", def.Team)
	}
	if v, ok := def.Params[1].(int32); !ok || v != 7 {
		t.Errorf("param 1: %v", def.Params[1])
	}
}

func TestDecodeItemDefaults(t *testing.T) {
	def, err := DecodeItem(0, []byte{0})
	if err != nil {
		t.Fatal(err)
	}
	if def.Model.Zoom2D != 2000 || def.Model.ResizeX != 128 {
		t.Errorf("model defaults: zoom=%d resize=%d", def.Model.Zoom2D, def.Model.ResizeX)
	}
	if def.NotedID != -1 || def.Model.MaleModel0 != -1 {
		t.Error("unset optional ids must be -1")
	}
	if def.InterfaceOptions[4] != "Drop" {
		t.Errorf("default interface option %q", def.InterfaceOptions[4])
	}
}

func TestDecodeItemUnknownOpcode(t *testing.T) {
	var opErr *UnknownOpcodeError
	_, err := DecodeItem(0, []byte{200, 0})
	if !errors.As(err, &opErr) {
		t.Fatalf("expected unknown opcode error, got %v", err)
	}
	if opErr.Opcode != 200 || opErr.Kind != "item" {
		t.Errorf("error detail: %+v", opErr)
	}
}

func TestDecodeItemTruncated(t *testing.T) {
	// opcode 1 wants a u16 but only one byte follows
	if _, err := DecodeItem(0, []byte{1, 0xFF}); !errors.Is(err, buffer.ErrShort) {
		t.Errorf("expected ErrShort, got %v", err)
	}
	// missing terminator
	if _, err := DecodeItem(0, []byte{11}); !errors.Is(err, buffer.ErrShort) {
		t.Errorf("expected ErrShort, got %v", err)
	}
}
