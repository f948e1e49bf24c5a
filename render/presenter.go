package render

import (
	"errors"
	"image"
)

// Presenter makes a framebuffer visible on a display device
// Present is called with the surface lock held; implementations must copy what they keep
type Presenter interface {
	Present(frame *image.RGBA) error
}

// PresenterFunc adapts a function to Presenter
type PresenterFunc func(frame *image.RGBA) error

// Present calls f(frame)
func (f PresenterFunc) Present(frame *image.RGBA) error {
	return f(frame)
}

// Discard is a Presenter for headless runs
var Discard Presenter = PresenterFunc(func(*image.RGBA) error { return nil })

// Tee presents every frame to each presenter in order and joins their errors
func Tee(presenters ...Presenter) Presenter {
	return PresenterFunc(func(frame *image.RGBA) error {
		var errs []error
		for _, p := range presenters {
			if err := p.Present(frame); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}
