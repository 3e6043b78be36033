// Package sync implements a last-writer-wins two-way sync reconciler:
// pulling remote changes into the local recipe library, pushing local
// changes back out, and flagging genuine conflicts (both sides changed
// since the last successful sync) for the caller to resolve rather than
// silently picking a winner.
package sync

import (
	"log"
	"strings"
	"time"

	"github.com/mealplanner/core/internal/coreerr"
	"github.com/mealplanner/core/internal/model"
)

// Conflict is a recipe that changed on both sides since the last sync.
// The reconciler does not resolve these itself; the caller decides.
type Conflict struct {
	Local  model.Recipe
	Remote model.Recipe
}

// Resolution is the caller's decision for a Conflict.
type Resolution int

const (
	KeepLocal Resolution = iota
	KeepServer
)

// PullResult is the outcome of reconciling the remote recipe set into the
// local one.
type PullResult struct {
	Recipes   []model.Recipe
	Conflicts []Conflict
}

// Pull merges remote into local: a remote recipe with no
// matching local row (matched by ExternalRef, the server-assigned id
// stashed on the local copy at push time) is inserted; a matched pair
// where only the remote side changed since the last sync is overwritten;
// a matched pair where only the local side changed is left alone; a
// matched pair where both sides changed since the last sync is reported
// as a Conflict and left untouched pending caller resolution.
func Pull(locals []model.Recipe, remotes []model.Recipe) PullResult {
	byExternalRef := make(map[string]int, len(locals))
	for i, l := range locals {
		if l.ExternalRef != "" {
			byExternalRef[l.ExternalRef] = i
		}
	}

	merged := append([]model.Recipe(nil), locals...)
	var conflicts []Conflict

	for _, remote := range remotes {
		idx, found := byExternalRef[remote.ID]
		if !found {
			inserted := remote
			inserted.ExternalRef = remote.ID
			now := time.Now()
			inserted.SyncedAt = &now
			merged = append(merged, inserted)
			continue
		}

		local := merged[idx]
		localChanged := local.SyncedAt == nil || local.UpdatedAt.After(*local.SyncedAt)
		remoteChanged := local.SyncedAt == nil || remote.UpdatedAt.After(*local.SyncedAt)

		switch {
		case localChanged && remoteChanged:
			conflicts = append(conflicts, Conflict{Local: local, Remote: remote})
		case remoteChanged:
			updated := remote
			updated.ExternalRef = local.ExternalRef
			now := time.Now()
			updated.SyncedAt = &now
			merged[idx] = updated
		case !localChanged:
			// Neither side changed since the last sync: nothing to merge,
			// just advance the watermark.
			now := time.Now()
			local.SyncedAt = &now
			merged[idx] = local
		default:
			// localChanged && !remoteChanged: the local edit is still
			// unpushed. Leave SyncedAt untouched so UpdatedSince/Push
			// still pick it up instead of treating it as already synced.
		}
	}
	return PullResult{Recipes: merged, Conflicts: conflicts}
}

// ResolveConflict applies the caller's decision for one conflict, stamping
// SyncedAt on the winning side so it is not re-flagged next sync.
func ResolveConflict(c Conflict, r Resolution) model.Recipe {
	now := time.Now()
	switch r {
	case KeepServer:
		winner := c.Remote
		winner.ExternalRef = c.Local.ExternalRef
		winner.SyncedAt = &now
		return winner
	default:
		winner := c.Local
		winner.SyncedAt = &now
		return winner
	}
}

// RemoteClient is the abstract remote recipe store. The core never speaks
// HTTP directly; a caller supplies a concrete client.
type RemoteClient interface {
	Create(r model.Recipe) (externalID string, err error)
	Update(externalID string, r model.Recipe) error
}

// Push sends every local recipe that is new or changed since the last
// sync to the remote client, using the shape of ExternalRef to decide
// create vs. update: an all-numeric ExternalRef is a server-assigned id
// (update), anything else — empty, or a local dash-containing uuid
// placeholder — means the recipe has never reached the server (create).
func Push(client RemoteClient, locals []model.Recipe) ([]model.Recipe, error) {
	out := make([]model.Recipe, len(locals))
	for i, r := range locals {
		if r.SyncedAt != nil && !r.UpdatedAt.After(*r.SyncedAt) {
			out[i] = r
			continue
		}

		if isServerAssignedID(r.ExternalRef) {
			if err := client.Update(r.ExternalRef, r); err != nil {
				log.Printf("sync: push update failed for recipe %q: %v", r.ID, coreerr.TransientRemote("push_update", err))
				out[i] = r
				continue
			}
		} else {
			id, err := client.Create(r)
			if err != nil {
				log.Printf("sync: push create failed for recipe %q: %v", r.ID, coreerr.TransientRemote("push_create", err))
				out[i] = r
				continue
			}
			r.ExternalRef = id
		}
		now := time.Now()
		r.SyncedAt = &now
		out[i] = r
	}
	return out, nil
}

func isServerAssignedID(id string) bool {
	if id == "" || strings.Contains(id, "-") {
		return false
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// SyncPreferences applies last-writer-wins to the singleton preferences
// row. Preferences carries no per-field timestamp (there is only ever one
// row), so the caller — which tracks when each side last changed — tells
// SyncPreferences which side is authoritative.
func SyncPreferences(local, remote model.Preferences, localChangedSinceSync bool) model.Preferences {
	if localChangedSinceSync {
		return local
	}
	return remote
}
