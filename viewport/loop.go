package viewport

import "github.com/pthm-cable/artboard/geom"

const resizeDebounce = 300 // ms

// Loop advances the viewport to currentTime (ms). At most one integrator
// runs per call: momentum, scale momentum, or the running animation. The
// returned snapshot is what should be rendered for this frame; it is also
// handed to every plugin implementing Looper.
func (v *Viewport) Loop(currentTime float64) Snapshot {
	s := &v.state
	if s.lastLoopTime == 0 {
		s.lastLoopTime = currentTime
	}
	v.applyPendingResize(currentTime)

	if s.interaction.isMomentum() && frameSeconds(s, currentTime) > stallSeconds {
		v.log.Warn("stalled frame, stopping momentum",
			"interaction", s.interaction,
			"gap_ms", currentTime-s.lastLoopTime,
		)
	}

	switch {
	case s.interaction == InteractionMomentum:
		if applyMomentum(s, currentTime, v.Boundaries(0)) {
			v.stopMomentum()
		}
	case s.interaction == InteractionMomentumScaling:
		if applyScaleMomentum(s, currentTime, v.opts.MaxScale) {
			v.stopMomentum()
		}
	case s.animation != nil:
		if applyAnimation(s, currentTime, s.animation) {
			v.log.Debug("animation finished", "key", s.animation.Key)
			s.animation = nil
		}
	}

	snap := v.snapshot(currentTime)
	for _, r := range v.plugins {
		if l, ok := r.Plugin.(Looper); ok {
			l.Loop(snap)
		}
	}

	s.lastLoopTime = currentTime
	return snap
}

func (v *Viewport) snapshot(currentTime float64) Snapshot {
	s := &v.state
	snap := Snapshot{
		ContainerSize: s.containerSize,
		Offset:        s.offset,
		Scale:         s.scale,
		Boundaries:    v.Boundaries(0),
		Interaction:   s.interaction,
		CurrentTime:   currentTime,
	}
	if s.artboardSize != nil {
		snap.ArtboardSize = *s.artboardSize
		snap.HasArtboardSize = true
	}
	return snap
}

// QueueResize reports a new container size. The first report is applied at
// once; later ones are coalesced and applied by Loop once no new report has
// arrived for 300 ms.
func (v *Viewport) QueueResize(size geom.Size) {
	if !v.resizeApplied {
		v.applyResize(size)
		return
	}
	v.pendingResize = &size
	v.pendingResizeAt = v.now()
}

func (v *Viewport) applyPendingResize(now float64) {
	if v.pendingResize == nil || now-v.pendingResizeAt < resizeDebounce {
		return
	}
	size := *v.pendingResize
	v.pendingResize = nil
	v.applyResize(size)
}

func (v *Viewport) applyResize(size geom.Size) {
	v.resizeApplied = true
	v.updateContainerRect(true)
	v.state.containerSize = size
	v.log.Debug("container resized", "width", size.Width, "height", size.Height)
}
