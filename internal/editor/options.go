package editor

import (
	"github.com/dshills/richline/internal/logging"
	"github.com/dshills/richline/internal/transform"
)

// Option configures a Controller during creation.
type Option func(*Controller)

// WithInitialText sets the text rendered by Mount.
func WithInitialText(text string) Option {
	return func(c *Controller) {
		c.initialText = text
	}
}

// WithTransform sets the transform that renders the buffer. A nil transform
// keeps transform.Plain.
func WithTransform(t transform.Transform) Option {
	return func(c *Controller) {
		if t != nil {
			c.transform = t
		}
	}
}

// WithTextChange sets the callback fired after every completed render with
// the current text.
func WithTextChange(fn func(text string)) Option {
	return func(c *Controller) {
		c.onTextChange = fn
	}
}

// WithLogger sets the logger for diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}
