package lightmgr

import (
	"errors"
	"fmt"

	"RenderPipeline/internal/gpucommand"
	"RenderPipeline/internal/light"
	"RenderPipeline/internal/logger"
	"RenderPipeline/internal/shadow"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultMaxLights        = 65535
	DefaultMaxShadowSources = 2048
)

var (
	ErrAlreadyAttached = errors.New("light is already attached")
	ErrNotAttached     = errors.New("light is not attached")
	ErrNoLightSlot     = errors.New("no free light slot")
	ErrNoSourceSlots   = errors.New("no free shadow source slots")
)

// Manager owns the GPU slots of lights and their shadow sources and turns
// light changes into GPU commands. It is not safe for concurrent use.
type Manager struct {
	lights     map[uuid.UUID]*light.Light
	attached   []*light.Light // in attach order
	lightPool  *SlotPool
	sourcePool *SlotPool
	commands   *gpucommand.List
}

func NewManager() *Manager {
	return NewManagerWithCapacity(DefaultMaxLights, DefaultMaxShadowSources)
}

func NewManagerWithCapacity(maxLights, maxSources int) *Manager {
	return &Manager{
		lights:     make(map[uuid.UUID]*light.Light),
		attached:   make([]*light.Light, 0),
		lightPool:  NewSlotPool(maxLights),
		sourcePool: NewSlotPool(maxSources),
		commands:   gpucommand.NewList(),
	}
}

// Commands returns the queue the renderer drains each frame.
func (m *Manager) Commands() *gpucommand.List {
	return m.commands
}

func (m *Manager) NumLights() int {
	return m.lightPool.NumUsed()
}

func (m *Manager) NumShadowSources() int {
	return m.sourcePool.NumUsed()
}

// Light looks up an attached light by id.
func (m *Manager) Light(id uuid.UUID) (*light.Light, bool) {
	l, ok := m.lights[id]
	return l, ok
}

// ShadowSources returns the shadow sources of all attached lights, in attach
// order. The lights keep ownership.
func (m *Manager) ShadowSources() []*shadow.Source {
	sources := make([]*shadow.Source, 0, m.sourcePool.NumUsed())
	for _, l := range m.attached {
		for i := 0; i < l.NumShadowSources(); i++ {
			sources = append(sources, l.ShadowSource(i))
		}
	}
	return sources
}

// SourcesInView returns the shadow sources whose bounds reach into the view
// volume of viewProj. Shadow maps of the other sources cannot affect that view.
func (m *Manager) SourcesInView(viewProj mgl32.Mat4) []*shadow.Source {
	view := shadow.FrustumFromMatrix(viewProj)
	visible := make([]*shadow.Source, 0)
	for _, src := range m.ShadowSources() {
		if view.IntersectsSphere(src.Bounds()) {
			visible = append(visible, src)
		}
	}
	logger.Log.Debug("Shadow sources culled",
		zap.Int("visible", len(visible)),
		zap.Int("total", m.sourcePool.NumUsed()))
	return visible
}

// AddLight attaches l, allocating its shadow sources when it casts shadows,
// and queues its first upload.
func (m *Manager) AddLight(l *light.Light) error {
	if l.HasSlot() {
		return fmt.Errorf("add light %s: %w", l.ID(), ErrAlreadyAttached)
	}

	slot, ok := m.lightPool.FindSlot()
	if !ok {
		return fmt.Errorf("add light %s: %w", l.ID(), ErrNoLightSlot)
	}

	if l.CastsShadows() {
		if err := m.setupShadows(l); err != nil {
			m.lightPool.Free(slot)
			return fmt.Errorf("add light %s: %w", l.ID(), err)
		}
	}

	l.AssignSlot(slot)
	m.lights[l.ID()] = l
	m.attached = append(m.attached, l)
	m.storeLight(l)

	logger.Log.Debug("Light attached",
		zap.Stringer("id", l.ID()),
		zap.Stringer("type", l.Type()),
		zap.Int("slot", slot),
		zap.Int("shadowSources", l.NumShadowSources()))
	return nil
}

// setupShadows creates the light's sources on consecutive slots, so the
// shader can address them from the first slot.
func (m *Manager) setupShadows(l *light.Light) error {
	l.InitShadowSources()
	l.UpdateShadowSources()

	n := l.NumShadowSources()
	first, ok := m.sourcePool.FindConsecutiveSlots(n)
	if !ok {
		l.ClearShadowSources()
		return fmt.Errorf("%d sources: %w", n, ErrNoSourceSlots)
	}
	for i := 0; i < n; i++ {
		l.ShadowSource(i).SetSlot(first + i)
	}
	return nil
}

// RemoveLight detaches l, frees its slots and releases its shadow sources.
func (m *Manager) RemoveLight(l *light.Light) error {
	if !l.HasSlot() || m.lights[l.ID()] != l {
		return fmt.Errorf("remove light %s: %w", l.ID(), ErrNotAttached)
	}

	slot := l.Slot()
	cmd := gpucommand.New(gpucommand.RemoveLight)
	cmd.PushInt(slot)
	m.commands.Add(cmd)

	if n := l.NumShadowSources(); n > 0 {
		first := l.ShadowSource(0).Slot()
		cmd := gpucommand.New(gpucommand.RemoveSources)
		cmd.PushInt(first)
		cmd.PushInt(n)
		m.commands.Add(cmd)
		m.sourcePool.FreeConsecutive(first, n)
		l.ClearShadowSources()
	}

	m.lightPool.Free(slot)
	delete(m.lights, l.ID())
	for i, o := range m.attached {
		if o == l {
			m.attached = append(m.attached[:i], m.attached[i+1:]...)
			break
		}
	}
	l.RemoveSlot()

	logger.Log.Debug("Light detached",
		zap.Stringer("id", l.ID()),
		zap.Int("slot", slot))
	return nil
}

// Update re-uploads every changed light and every stale shadow source.
func (m *Manager) Update() {
	for _, l := range m.attached {
		if l.NeedsUpdate() {
			if l.NumShadowSources() > 0 {
				l.UpdateShadowSources()
			}
			m.storeLight(l)
		}
		for i := 0; i < l.NumShadowSources(); i++ {
			if src := l.ShadowSource(i); src.NeedsUpdate() {
				m.storeSource(src)
			}
		}
	}
}

func (m *Manager) storeLight(l *light.Light) {
	cmd := gpucommand.New(gpucommand.StoreLight)
	cmd.PushInt(l.Slot())
	l.WriteToCommand(cmd)
	m.commands.Add(cmd)
	l.SetNeedsUpdate(false)
}

func (m *Manager) storeSource(src *shadow.Source) {
	cmd := gpucommand.New(gpucommand.StoreSource)
	cmd.PushInt(src.Slot())
	src.WriteToCommand(cmd)
	m.commands.Add(cmd)
	src.SetNeedsUpdate(false)
}
