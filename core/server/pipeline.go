package server

import "github.com/gofiber/fiber/v2"

// Stage is one step of request handling. Its handler either writes the
// response and returns, or calls c.Next() to hand the request to the next
// stage.
type Stage struct {
	Name    string
	Handler fiber.Handler
}

// Pipeline is an ordered list of stages.
type Pipeline []Stage

// Register mounts the stages on the router in order.
func (p Pipeline) Register(r fiber.Router) {
	for _, st := range p {
		r.Use(st.Handler)
	}
}

// Names lists the stage names in registration order.
func (p Pipeline) Names() []string {
	names := make([]string, len(p))
	for i, st := range p {
		names[i] = st.Name
	}
	return names
}
