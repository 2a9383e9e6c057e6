package dotosu

import "github.com/rs/zerolog"

type options struct {
	logger           zerolog.Logger
	strict           bool
	failFast         bool
	legacyWidescreen bool
	legacyHold       bool
}

// Option configures Parse, Decode and DecodeFile.
type Option func(*options)

func defaultOptions() options {
	return options{logger: zerolog.Nop()}
}

// WithLogger routes skipped-line warnings and trace output to l.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithStrictNumbers rejects lines holding malformed numbers instead of
// storing NaN (or 0 for integer fields). Extras subfields stay lenient.
func WithStrictNumbers() Option {
	return func(o *options) { o.strict = true }
}

// WithFailFast aborts the parse on the first rejected line.
func WithFailFast() Option {
	return func(o *options) { o.failFast = true }
}

// WithLegacyWidescreen stores WidescreenStoryboard into Mode, the way
// early decoders of the format did.
func WithLegacyWidescreen() Option {
	return func(o *options) { o.legacyWidescreen = true }
}

// WithLegacyHoldDispatch decodes type bit 7 as a Spinner rather than a Hold.
func WithLegacyHoldDispatch() Option {
	return func(o *options) { o.legacyHold = true }
}
