// Package definition holds the opcode-driven decoders that turn a
// decompressed archive buffer into typed game records. Each decoder
// consumes a cursor over exactly one definition's bytes, reading
// opcodes until the terminating zero. The decoders rely on the storage
// and codec layers delivering a correctly bounded buffer: their only
// safety net is the cursor's truncation checks and the unknown-opcode
// error.
package definition

import "fmt"

// UnknownOpcodeError is returned when a decoder meets an opcode it has
// no field mapping for.
type UnknownOpcodeError struct {
	Kind   string
	Opcode uint8
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode %d in %s definition", e.Opcode, e.Kind)
}
