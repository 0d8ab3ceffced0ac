// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetchx

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to extend it with custom
// functionality.
//
// Events only fire for requests which pass option validation. A
// request rejected with a *ConfigError never reaches any handler.
type Event int

const (
	// BeforeExchange identifies the event that occurs after the HTTP
	// request is built and before it is sent.
	//
	// When Client fires BeforeExchange, the execution's plan and
	// request fields are set. Handlers may modify the request, for
	// example to sign it, but should clone its reference-typed fields
	// (URL and Header) before changing them, as these initially
	// reference the plan.
	BeforeExchange Event = iota
	// BeforeReadBody identifies the event that occurs after a response
	// is received and before its body is read and buffered.
	//
	// BeforeReadBody does not fire when the exchange ends without a
	// response, but fires for every received response regardless of
	// status code or content type.
	BeforeReadBody
	// AfterExchange identifies the event that occurs once the outcome
	// of the request is decided, whether it succeeded or not.
	//
	// When Client fires AfterExchange, the execution's end time is set,
	// and its Err, Aborted and TimedOut fields describe the outcome.
	AfterExchange
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExchange",
	"BeforeReadBody",
	"AfterExchange",
}

// Events returns a slice containing all events which can occur during
// a request execution by Client, in the order in which they would
// occur.
func Events() []Event {
	return []Event{
		BeforeExchange,
		BeforeReadBody,
		AfterExchange,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
