package controller

import m "github.com/mouse-blink/gorald/internal/model"

// Message types.
type eventMsg struct {
	event m.Event
}

// finishMsg tells the progress model that the run is over.
type finishMsg struct {
	dropped int
}
