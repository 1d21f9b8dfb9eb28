package galaxy

// Synthetic pointer input for scripted and automated runs. Injected events
// queue as ordinary pointer samples; while any are pending, one is consumed
// per tick and real pointer input is ignored, so scripts observe the same
// one-sample-per-frame pacing as a human driving the mouse.

// InjectPress queues a pointer press at the given screen coordinates
// (primary button). The event is consumed on the next tick.
func (s *Stage) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, pointerSample{
		x: x, y: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectMove queues a pointer move with the primary button held down. Use
// between InjectPress and InjectRelease to simulate a drag.
func (s *Stage) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, pointerSample{
		x: x, y: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectHover queues a pointer move with no button held.
func (s *Stage) InjectHover(x, y float64) {
	s.injectQueue = append(s.injectQueue, pointerSample{x: x, y: y})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (s *Stage) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, pointerSample{x: x, y: y})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two ticks.
func (s *Stage) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectSecondaryClick queues a right-button press and release at the same
// screen coordinates. Consumes two ticks.
func (s *Stage) InjectSecondaryClick(x, y float64) {
	s.injectQueue = append(s.injectQueue, pointerSample{
		x: x, y: y,
		pressed: true,
		button:  MouseButtonRight,
	})
	s.injectQueue = append(s.injectQueue, pointerSample{
		x: x, y: y,
		button: MouseButtonRight,
	})
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate ticks, and release at
// (toX, toY). The whole sequence consumes `frames` ticks. Minimum is 2
// (press + release).
func (s *Stage) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		s.InjectMove(x, y)
	}
	s.InjectRelease(toX, toY)
}
