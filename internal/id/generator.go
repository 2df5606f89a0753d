// Package id issues short, time-ordered ids for requests and WebSocket clients.
package id

import (
	"time"

	fid "github.com/amterp/flexid"
)

var generator *fid.Generator

func init() {
	epoch := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	config := fid.NewConfig().
		WithEpoch(epoch).
		WithTickSize(10 * time.Millisecond).
		WithNumRandomChars(3)

	generator = fid.MustNewGenerator(config)
}

// Kind prefixes an id so its origin is obvious in logs.
type Kind string

const (
	Request Kind = "req"
	Client  Kind = "ws"
)

// Generate returns a new unique id of the given kind, e.g. "req_3kTMd92Xq".
func Generate(kind Kind) string {
	return string(kind) + "_" + generator.MustGenerate()
}
