// Package view implements the storefront's view state machine. Exactly one
// view is active at a time; entering certain views re-renders them from
// current store state through registered entry renderers.
package view

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// State identifies one of the storefront views.
type State string

const (
	Hero              State = "hero"
	Products          State = "products"
	ProductDetail     State = "productDetail"
	Cart              State = "cart"
	Checkout          State = "checkout"
	OrderConfirmation State = "orderConfirmation"
	Admin             State = "admin"
)

var ErrUnknownView = errors.New("unknown view")

var states = map[State]bool{
	Hero:              true,
	Products:          true,
	ProductDetail:     true,
	Cart:              true,
	Checkout:          true,
	OrderConfirmation: true,
	Admin:             true,
}

// Valid reports whether s names a known view.
func (s State) Valid() bool {
	return states[s]
}

// Renderer produces the data a view needs on entry.
type Renderer func() interface{}

// Controller tracks the active view and runs entry renderers on
// transitions. The initial view is hero.
type Controller struct {
	delay time.Duration

	mu        sync.RWMutex
	current   State
	renderers map[State]Renderer
}

// Option configures a Controller.
type Option func(*Controller)

// WithActivationDelay sets a cosmetic delay applied before a view
// activates. It defaults to zero and has no effect on correctness.
func WithActivationDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.delay = d
	}
}

// NewController creates a controller positioned on the hero view.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		current:   Hero,
		renderers: map[State]Renderer{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnEnter registers the renderer to run whenever the given view is entered.
func (c *Controller) OnEnter(state State, render Renderer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderers[state] = render
}

// Show transitions to the named view and returns the rendered entry data,
// if the view has a renderer. Unknown view names leave the current view
// unchanged.
func (c *Controller) Show(state State) (interface{}, error) {
	if !state.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownView, state)
	}

	if c.delay > 0 {
		time.Sleep(c.delay)
	}

	c.mu.Lock()
	c.current = state
	render := c.renderers[state]
	c.mu.Unlock()

	if render == nil {
		return nil, nil
	}
	return render(), nil
}

// Current returns the active view.
func (c *Controller) Current() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}
