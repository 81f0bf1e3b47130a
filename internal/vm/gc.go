package vm

// gc performs one moving, breadth-first compaction of the environment
// heap (§4.5). Roots are every Closure on the value stack and in every
// active environment; from there it is a plain forwarding copy — no
// binding's value ever changes, only a Closure's EnvIndex.
func (m *Machine) gc() {
	moved := make(map[int]int)
	var newHeap []Environment

	move := func(oldIx int) int {
		if newIx, ok := moved[oldIx]; ok {
			return newIx
		}
		newIx := len(newHeap)
		moved[oldIx] = newIx
		newHeap = append(newHeap, m.heap[oldIx])
		return newIx
	}

	forward := func(v Value) Value {
		c, ok := v.(Closure)
		if !ok {
			return v
		}
		c.EnvIndex = move(c.EnvIndex)
		return c
	}

	for i, v := range m.values {
		m.values[i] = forward(v)
	}
	for _, env := range m.envs {
		for name, v := range env {
			env[name] = forward(v)
		}
	}

	// newHeap grows as move() discovers more environments; re-reading
	// len(newHeap) each iteration walks the wavefront until it adds
	// nothing new, exactly the repeat-until-empty-wave rule.
	for i := 0; i < len(newHeap); i++ {
		env := newHeap[i]
		for name, v := range env {
			env[name] = forward(v)
		}
	}

	m.heap = newHeap
}
