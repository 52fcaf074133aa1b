package repositories

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"flowsite/cmserrors"
)

// pageCursor is the decoded form of the opaque pagination token: the last
// document seen plus a fingerprint of the query shape that produced it.
type pageCursor struct {
	LastID   string    `json:"id"`
	LastSort time.Time `json:"sort"`
	Filter   uint64    `json:"filter"`
}

// EncodeCursor builds an opaque token pointing past the given document for
// the query shape identified by fingerprint.
func EncodeCursor(id primitive.ObjectID, sortVal time.Time, fingerprint uint64) string {
	raw, _ := json.Marshal(pageCursor{
		LastID:   id.Hex(),
		LastSort: sortVal.UTC(),
		Filter:   fingerprint,
	})
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor parses a token and verifies it was issued for the same query
// shape. A cursor replayed against a differently-filtered query is caller
// error and is rejected rather than silently returning wrong pages.
func DecodeCursor(token string, fingerprint uint64) (primitive.ObjectID, time.Time, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return primitive.NilObjectID, time.Time{}, eris.Wrap(cmserrors.ErrValidation, "malformed pagination cursor")
	}
	var c pageCursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return primitive.NilObjectID, time.Time{}, eris.Wrap(cmserrors.ErrValidation, "malformed pagination cursor")
	}
	if c.Filter != fingerprint {
		return primitive.NilObjectID, time.Time{}, eris.Wrap(cmserrors.ErrValidation, "pagination cursor does not match query filters")
	}
	id, err := primitive.ObjectIDFromHex(c.LastID)
	if err != nil {
		return primitive.NilObjectID, time.Time{}, eris.Wrap(cmserrors.ErrValidation, "malformed pagination cursor")
	}
	return id, c.LastSort, nil
}

// filterFingerprint hashes the query shape so a cursor cannot cross between
// differently-filtered listings.
func filterFingerprint(published *bool, tags []string) uint64 {
	sorted := make([]string, len(tags))
	copy(sorted, tags)
	sort.Strings(sorted)

	pub := "any"
	if published != nil {
		pub = fmt.Sprintf("%t", *published)
	}

	h := fnv.New64a()
	fmt.Fprintf(h, "published=%s|tags=%s", pub, strings.Join(sorted, ","))
	return h.Sum64()
}
