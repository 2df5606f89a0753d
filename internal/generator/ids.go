package generator

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/nrednav/cuid2"
	"github.com/oklog/ulid/v2"
	"github.com/samber/lo"
	"github.com/segmentio/ksuid"

	"github.com/tools4freee/t4f/internal/entropy"
	t4ferr "github.com/tools4freee/t4f/internal/errors"
)

// IDKind names a unique-identifier scheme beyond UUIDv4.
type IDKind string

const (
	IDUUIDv7 IDKind = "uuidv7"
	IDULID   IDKind = "ulid"
	IDKSUID  IDKind = "ksuid"
	IDNanoID IDKind = "nanoid"
	IDCUID2  IDKind = "cuid2"
)

// IDKinds lists every supported scheme.
var IDKinds = []IDKind{IDUUIDv7, IDULID, IDKSUID, IDNanoID, IDCUID2}

const (
	nanoIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_-"
	nanoIDSize     = 21
	cuid2Length    = 24
)

var cuid2Gen = sync.OnceValues(func() (func() string, error) {
	return cuid2.Init(cuid2.WithLength(cuid2Length))
})

// UniqueID returns a fresh identifier of the given kind. All kinds need the
// secure source; time-ordered kinds embed the current time.
func UniqueID(src entropy.Source, kind IDKind) (string, error) {
	k := IDKind(strings.ToLower(string(kind)))
	if !lo.Contains(IDKinds, k) {
		return "", t4ferr.UnknownVariant("id kind", string(kind))
	}
	if err := entropy.RequireSecure(src); err != nil {
		return "", err
	}

	switch k {
	case IDUUIDv7:
		u, err := uuid.NewV7()
		if err != nil {
			return "", t4ferr.EntropyUnavailable(err)
		}
		return u.String(), nil
	case IDULID:
		id, err := ulid.New(ulid.Timestamp(time.Now()), entropy.Reader(src))
		if err != nil {
			return "", err
		}
		return id.String(), nil
	case IDKSUID:
		payload := make([]byte, 16)
		if err := src.Read(payload); err != nil {
			return "", err
		}
		id, err := ksuid.FromParts(time.Now(), payload)
		if err != nil {
			return "", err
		}
		return id.String(), nil
	case IDNanoID:
		return gonanoid.Generate(nanoIDAlphabet, nanoIDSize)
	default:
		gen, err := cuid2Gen()
		if err != nil {
			return "", err
		}
		return gen(), nil
	}
}

// ValidateID reports why s is not a well-formed id of kind, or "" if it is.
func ValidateID(kind IDKind, s string) string {
	switch IDKind(strings.ToLower(string(kind))) {
	case IDUUIDv7:
		u, err := uuid.Parse(s)
		if err != nil {
			return "invalid UUID format: " + err.Error()
		}
		if u.Version() != 7 {
			return "expected UUID v7"
		}
	case IDULID:
		if _, err := ulid.ParseStrict(s); err != nil {
			return "invalid ULID: " + err.Error()
		}
	case IDKSUID:
		if _, err := ksuid.Parse(s); err != nil {
			return "invalid KSUID: " + err.Error()
		}
	case IDNanoID:
		if len(s) != nanoIDSize || !lo.Every([]rune(nanoIDAlphabet), []rune(s)) {
			return "expected 21 URL-safe characters"
		}
	case IDCUID2:
		if !cuid2.IsCuid(s) {
			return "invalid CUID2"
		}
	default:
		return "unknown id kind " + string(kind)
	}
	return ""
}
