// Package bundle computes the content identity of a solve attempt: the
// canonical temporal state, the rules handed to the solver, and everything
// else the attempt's verdict depends on.
//
// Hash-included fields: every field of TimeState, ResourceSlot and
// SchedulingRule, the catalog digests, the goal (item and count) and the
// adapter policy (batch threshold, max wait). Hash-excluded: attempt IDs,
// timestamps and verdicts recorded alongside the digest. A new field on a
// slot or rule must be added here or listed as excluded.
package bundle

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"sort"

	"minebot.ai/internal/planning/temporal"
)

type hashWriter interface {
	Write(p []byte) (n int, err error)
}

// Input is what a digest covers. State must already be canonical.
type Input struct {
	State          temporal.TemporalState
	Rules          []temporal.SchedulingRule
	CatalogDigests map[string]string
	Goal           Goal
	Policy         Policy
}

// Goal is the batch request; Count is ignored when Item is empty.
type Goal struct {
	Item  string
	Count int
}

// Policy holds the adapter knobs that change deadlock and batch verdicts.
type Policy struct {
	BatchThreshold int
	MaxWaitBuckets int
}

func Digest(in Input) string {
	h := sha256.New()
	var tmp [8]byte

	digestTime(h, &tmp, in.State.Time)
	digestSlots(h, &tmp, in.State.Slots)
	digestRules(h, &tmp, in.Rules)
	digestCatalogs(h, &tmp, in.CatalogDigests)
	digestGoal(h, &tmp, in.Goal)
	writeI64(h, &tmp, int64(in.Policy.BatchThreshold))
	writeI64(h, &tmp, int64(in.Policy.MaxWaitBuckets))

	return hex.EncodeToString(h.Sum(nil))
}

func writeU64(h hashWriter, tmp *[8]byte, v uint64) {
	binary.LittleEndian.PutUint64(tmp[:], v)
	h.Write(tmp[:])
}

func writeI64(h hashWriter, tmp *[8]byte, v int64) {
	writeU64(h, tmp, uint64(v))
}

// writeStr is length-prefixed so adjacent strings cannot run together.
func writeStr(h hashWriter, tmp *[8]byte, s string) {
	writeU64(h, tmp, uint64(len(s)))
	h.Write([]byte(s))
}

func writeBool(h hashWriter, b bool) {
	if b {
		h.Write([]byte{1})
		return
	}
	h.Write([]byte{0})
}

func digestTime(h hashWriter, tmp *[8]byte, t temporal.TimeState) {
	writeI64(h, tmp, int64(t.CurrentBucket))
	writeI64(h, tmp, int64(t.HorizonBucket))
	writeI64(h, tmp, int64(t.BucketSizeTicks))
}

// Slots are hashed in the order given; the adapter's canonical order is what
// makes this stable.
func digestSlots(h hashWriter, tmp *[8]byte, slots []temporal.ResourceSlot) {
	writeU64(h, tmp, uint64(len(slots)))
	for _, s := range slots {
		writeStr(h, tmp, s.ID)
		writeStr(h, tmp, s.Type)
		writeI64(h, tmp, int64(s.ReadyAtBucket))
	}
}

func digestItems(h hashWriter, tmp *[8]byte, items []temporal.ItemCount) {
	writeU64(h, tmp, uint64(len(items)))
	for _, it := range items {
		writeStr(h, tmp, it.Name)
		writeI64(h, tmp, int64(it.Count))
	}
}

// Rule order matters to the solver, so it is part of the identity.
func digestRules(h hashWriter, tmp *[8]byte, rules []temporal.SchedulingRule) {
	writeU64(h, tmp, uint64(len(rules)))
	for _, r := range rules {
		writeStr(h, tmp, r.Action)
		writeStr(h, tmp, string(r.ActionType))
		writeStr(h, tmp, string(r.OperatorFamily))
		digestItems(h, tmp, r.Produces)
		digestItems(h, tmp, r.Consumes)
		digestItems(h, tmp, r.Requires)
		writeBool(h, r.NeedsTable)
		writeBool(h, r.NeedsFurnace)
		writeU64(h, tmp, math.Float64bits(r.BaseCost))
		writeI64(h, tmp, int64(r.DurationTicks))
		writeStr(h, tmp, r.RequiresSlotType)
	}
}

func digestCatalogs(h hashWriter, tmp *[8]byte, m map[string]string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	writeU64(h, tmp, uint64(len(keys)))
	for _, k := range keys {
		writeStr(h, tmp, k)
		writeStr(h, tmp, m[k])
	}
}

func digestGoal(h hashWriter, tmp *[8]byte, g Goal) {
	if g.Item == "" {
		g.Count = 0
	}
	writeStr(h, tmp, g.Item)
	writeI64(h, tmp, int64(g.Count))
}
