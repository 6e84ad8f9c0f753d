package world

// Audio receives sonification cues from the simulation.
// Implementations must return quickly; the tick waits for them.
type Audio interface {
	// NotifyFrame is called every few ticks with the current agents.
	NotifyFrame(agents []AgentState, width, height float32, tick int32)
	// NotifyDeath is called once for every agent removed.
	NotifyDeath(x, y, width, height float32)
}

// recoverAudio swallows a panic from the audio collaborator so a faulty
// sonifier never stops the simulation.
func (w *World) recoverAudio(op string) {
	if r := recover(); r != nil {
		w.logger.Warn("audio collaborator failed", "op", op, "panic", r)
	}
}

func (w *World) notifyDeath(x, y float32) {
	if w.audio == nil {
		return
	}
	defer w.recoverAudio("notify_death")
	w.audio.NotifyDeath(x, y, w.bounds.Width, w.bounds.Height)
}

func (w *World) notifyFrame() {
	if w.audio == nil {
		return
	}
	defer w.recoverAudio("notify_frame")
	w.states = w.AppendAgents(w.states[:0])
	w.audio.NotifyFrame(w.states, w.bounds.Width, w.bounds.Height, w.tick)
}
