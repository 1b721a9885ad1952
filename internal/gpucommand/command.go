package gpucommand

import (
	"encoding/binary"
	"io"

	"RenderPipeline/internal/assert"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Type identifies what the GPU-side command processor does with a record.
type Type int

const (
	Invalid Type = iota
	StoreLight
	RemoveLight
	StoreSource
	RemoveSources
)

func (t Type) String() string {
	switch t {
	case StoreLight:
		return "store_light"
	case RemoveLight:
		return "remove_light"
	case StoreSource:
		return "store_source"
	case RemoveSources:
		return "remove_sources"
	default:
		return "invalid"
	}
}

// RecordSize is the number of float32 slots in an encoded command,
// including the leading type slot.
const RecordSize = 32

// MaxEntries is the payload capacity of a command.
const MaxEntries = RecordSize - 1

// Command is a fixed-size, append-only record of floats consumed by shader
// code. Field order is the contract with the GPU side.
type Command struct {
	Type    Type
	data    [MaxEntries]float32
	current int
}

func New(t Type) *Command {
	return &Command{Type: t}
}

// PushFloat appends a single value.
func (c *Command) PushFloat(v float32) {
	if !assert.That(c.current < MaxEntries, "gpu command overflow",
		zap.Stringer("type", c.Type), zap.Int("entries", c.current)) {
		return
	}
	c.data[c.current] = v
	c.current++
}

// PushInt appends an integer, stored as a float.
func (c *Command) PushInt(v int) {
	c.PushFloat(float32(v))
}

func (c *Command) PushVec3(v mgl32.Vec3) {
	c.PushFloat(v[0])
	c.PushFloat(v[1])
	c.PushFloat(v[2])
}

func (c *Command) PushVec4(v mgl32.Vec4) {
	for _, f := range v {
		c.PushFloat(f)
	}
}

// PushMat4 appends m in column-major order.
func (c *Command) PushMat4(m mgl32.Mat4) {
	for _, f := range m {
		c.PushFloat(f)
	}
}

// Len returns the number of payload entries pushed so far.
func (c *Command) Len() int {
	return c.current
}

// Payload returns a copy of the pushed entries.
func (c *Command) Payload() []float32 {
	out := make([]float32, c.current)
	copy(out, c.data[:c.current])
	return out
}

// Floats returns the full record: type, payload, zero padding.
func (c *Command) Floats() [RecordSize]float32 {
	var rec [RecordSize]float32
	rec[0] = float32(c.Type)
	copy(rec[1:], c.data[:])
	return rec
}

// WriteTo writes the record as little-endian float32 values.
func (c *Command) WriteTo(w io.Writer) (int64, error) {
	rec := c.Floats()
	if err := binary.Write(w, binary.LittleEndian, rec); err != nil {
		return 0, err
	}
	return RecordSize * 4, nil
}
