/*
Package locate finds font files for font patterns.

Locators get a font pattern (see package xftname) and return a loaded
scalable font. Package locate offers

▪︎ a SystemLocator, which matches patterns against an index of the system's
fonts and of fonts registered by the client,

▪︎ a file locator, which searches font directories for file names resembling
the requested family,

▪︎ Chain, which tries a sequence of locators in turn.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package locate

import (
	"context"
	"errors"
	"fmt"

	"github.com/npillmayer/platfont/fontload"
	"github.com/npillmayer/platfont/xftname"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'platfont.locate'
func tracer() tracing.Trace {
	return tracing.Select("platfont.locate")
}

// ErrFontNotFound is returned by locators which cannot find a font for a pattern.
var ErrFontNotFound = errors.New("font not found")

// FontLocator finds a font for a pattern.
type FontLocator func(xftname.Pattern) (*fontload.ScalableFont, error)

// FontLocatorWithContext is a context-aware variant of FontLocator.
// Implementations should respect cancellation/deadlines of ctx if possible.
type FontLocatorWithContext func(context.Context, xftname.Pattern) (*fontload.ScalableFont, error)

// WithoutContext turns a context-aware locator into a FontLocator, using
// a background context.
func WithoutContext(loc FontLocatorWithContext) FontLocator {
	return func(p xftname.Pattern) (*fontload.ScalableFont, error) {
		return loc(context.Background(), p)
	}
}

// WithContext lifts a FontLocator to a context-aware one. The context is
// checked before the locator is called.
func WithContext(loc FontLocator) FontLocatorWithContext {
	return func(ctx context.Context, p xftname.Pattern) (*fontload.ScalableFont, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return loc(p)
	}
}

// Chain creates a locator which asks each of locators in turn and returns
// the first font found. If no locator finds a font, the errors of all
// locators are returned, joined. A cancelled context stops the chain.
func Chain(locators ...FontLocatorWithContext) FontLocatorWithContext {
	return func(ctx context.Context, p xftname.Pattern) (*fontload.ScalableFont, error) {
		var errs []error
		for i, loc := range locators {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			f, err := loc(ctx, p)
			if err == nil && f != nil {
				tracer().Debugf("locator #%d found font %q for %s", i, f.Fontname, p)
				return f, nil
			}
			if err == nil {
				err = fmt.Errorf("locator #%d: %w", i, ErrFontNotFound)
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			errs = append(errs, err)
		}
		if len(errs) == 0 {
			return nil, fmt.Errorf("%w: no locators for %s", ErrFontNotFound, p.Family)
		}
		return nil, errors.Join(errs...)
	}
}

// traceLogger routes messages of the font index to our tracer.
type traceLogger struct{}

func (traceLogger) Printf(format string, args ...interface{}) {
	tracer().Debugf(format, args...)
}
