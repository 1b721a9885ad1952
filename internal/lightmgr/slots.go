package lightmgr

// SlotPool hands out integer slots in a fixed range, lowest first.
type SlotPool struct {
	used []bool
	num  int
}

func NewSlotPool(size int) *SlotPool {
	return &SlotPool{
		used: make([]bool, size),
	}
}

func (p *SlotPool) Size() int    { return len(p.used) }
func (p *SlotPool) NumUsed() int { return p.num }
func (p *SlotPool) IsUsed(slot int) bool {
	return slot >= 0 && slot < len(p.used) && p.used[slot]
}

// FindSlot reserves and returns the first free slot, or false when full.
func (p *SlotPool) FindSlot() (int, bool) {
	return p.FindConsecutiveSlots(1)
}

// FindConsecutiveSlots reserves n adjacent slots and returns the first one.
func (p *SlotPool) FindConsecutiveSlots(n int) (int, bool) {
	if n <= 0 {
		return -1, false
	}
	run := 0
	for i, used := range p.used {
		if used {
			run = 0
			continue
		}
		run++
		if run == n {
			first := i - n + 1
			for j := first; j <= i; j++ {
				p.used[j] = true
			}
			p.num += n
			return first, true
		}
	}
	return -1, false
}

// Free releases a single slot. Freeing an unused slot is a no-op.
func (p *SlotPool) Free(slot int) {
	p.FreeConsecutive(slot, 1)
}

func (p *SlotPool) FreeConsecutive(first, n int) {
	for i := first; i < first+n; i++ {
		if p.IsUsed(i) {
			p.used[i] = false
			p.num--
		}
	}
}
