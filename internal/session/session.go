// Package session orchestrates one entry-editing interaction: load the
// field registry and the entry, hand out a draft for editing, and drive
// submit, field creation and service sync through an explicit state
// machine. A Session is not safe for concurrent use; callers serialize
// access the way an event loop would.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/marait123/gnothi/internal/client"
	"github.com/marait123/gnothi/internal/draft"
	"github.com/marait123/gnothi/internal/editor"
	"github.com/marait123/gnothi/internal/registry"
	"github.com/marait123/gnothi/internal/types"
)

// State is the session's position in its lifecycle.
type State int

const (
	// StateLoading covers the initial fetch and every reload after a
	// sync. No edits are accepted.
	StateLoading State = iota
	// StateReady accepts edits, submit, field creation and sync.
	StateReady
	// StateSubmitting is the in-flight save. A second submit is refused
	// until the first resolves.
	StateSubmitting
	// StateSyncing is an in-flight service sync; it always resolves
	// through a reload.
	StateSyncing
	// StateDone is terminal: the entry was saved, or the user cancelled.
	StateDone
	// StateErrored is terminal: the initial load failed and there is
	// nothing to edit.
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateSyncing:
		return "syncing"
	case StateDone:
		return "done"
	case StateErrored:
		return "errored"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var (
	// ErrUnsavedEdits rejects a sync while the draft differs from what
	// the server has; syncing would reload over the user's edits.
	ErrUnsavedEdits = errors.New("session: entry has unsaved edits, save before syncing")
	// ErrNotPersisted rejects a sync for an entry that was never saved.
	ErrNotPersisted = errors.New("session: entry must be saved before a service can sync it")
)

// StateError reports an operation attempted outside the state that
// allows it.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("session: cannot %s while %s", e.Op, e.State)
}

// Session drives the editing of a single entry against the journal API.
type Session struct {
	api client.API

	state   State
	entryID string
	fields  []types.Field
	draft   *draft.Draft
	loadErr error
}

// New returns a session in StateLoading; call Load to make it usable.
func New(api client.API) *Session {
	return &Session{api: api, state: StateLoading}
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// EntryID returns the server identity of the entry, or "" before the
// first successful submit of a new entry.
func (s *Session) EntryID() string { return s.entryID }

// Persisted reports whether the entry exists on the server.
func (s *Session) Persisted() bool { return s.entryID != "" }

// Err returns the terminal load failure when the session is errored.
func (s *Session) Err() error { return s.loadErr }

// Fields returns the registry snapshot the session was loaded with.
func (s *Session) Fields() []types.Field { return s.fields }

// Draft returns the editable draft, or nil before a successful load.
func (s *Session) Draft() *draft.Draft { return s.draft }

// Load fetches the registry and, when entryID is non-empty, the stored
// entry, then builds the draft and moves to StateReady. A load failure
// is terminal: there is no entry to edit, so the session moves to
// StateErrored and stays there.
func (s *Session) Load(ctx context.Context, entryID string) error {
	if s.state != StateLoading {
		return &StateError{Op: "load", State: s.state}
	}
	if err := s.reload(ctx, entryID); err != nil {
		s.state = StateErrored
		s.loadErr = err
		return err
	}
	s.state = StateReady
	return nil
}

func (s *Session) reload(ctx context.Context, entryID string) error {
	fields, err := s.api.ListFields(ctx)
	if err != nil {
		return fmt.Errorf("loading fields: %w", err)
	}
	var stored *types.Entry
	if entryID != "" {
		e, err := s.api.GetEntry(ctx, entryID)
		if err != nil {
			return fmt.Errorf("loading entry %s: %w", entryID, err)
		}
		stored = &e
	}
	s.fields = fields
	s.entryID = entryID
	s.draft = draft.New(fields, stored)
	return nil
}

// Form builds the current edit surface from the registry and the draft.
func (s *Session) Form() editor.Form {
	return editor.BuildForm(s.fields, s.draft, s.Persisted())
}

// SetTitle records a title edit.
func (s *Session) SetTitle(title string) error {
	if s.state != StateReady {
		return &StateError{Op: "edit", State: s.state}
	}
	s.draft.SetTitle(title)
	return nil
}

// SetText records a body edit.
func (s *Session) SetText(text string) error {
	if s.state != StateReady {
		return &StateError{Op: "edit", State: s.state}
	}
	s.draft.SetText(text)
	return nil
}

// SetValue records a field-value edit by field ID.
func (s *Session) SetValue(fieldID string, v types.Value) error {
	if s.state != StateReady {
		return &StateError{Op: "edit", State: s.state}
	}
	s.draft.SetValue(fieldID, v)
	return nil
}

// CreateField validates locally, creates the field on the server, then
// refetches the registry and grows the draft with unset slots for
// whatever is new. Edits made so far are untouched. Validation failures
// never reach the network.
func (s *Session) CreateField(ctx context.Context, name string, ft types.FieldType) (types.Field, error) {
	if s.state != StateReady {
		return types.Field{}, &StateError{Op: "create field", State: s.state}
	}
	if err := registry.ValidateNew(name, ft); err != nil {
		return types.Field{}, err
	}
	created, err := s.api.CreateField(ctx, name, ft)
	if err != nil {
		return types.Field{}, fmt.Errorf("creating field: %w", err)
	}
	fields, err := s.api.ListFields(ctx)
	if err != nil {
		// The field exists server-side; keep editing with what we have
		// plus the one field we know about.
		fields = append(s.fields, created)
	}
	s.fields = fields
	s.draft.AddFields(fields)
	return created, nil
}

// Sync asks a service to refresh this entry, then reloads so the
// service's writes become visible. The reload happens whether or not
// the sync succeeded: the service may have written some fields before
// failing. Unsaved edits block the sync, since the reload would discard
// them.
func (s *Session) Sync(ctx context.Context, service string) error {
	if s.state != StateReady {
		return &StateError{Op: "sync", State: s.state}
	}
	if !s.Persisted() {
		return ErrNotPersisted
	}
	if s.draft.Dirty() {
		return ErrUnsavedEdits
	}

	s.state = StateSyncing
	syncErr := s.api.SyncService(ctx, service, s.entryID)

	s.state = StateLoading
	if err := s.reload(ctx, s.entryID); err != nil {
		s.state = StateErrored
		s.loadErr = err
		return err
	}
	s.state = StateReady
	if syncErr != nil {
		return fmt.Errorf("syncing %s: %w", service, syncErr)
	}
	return nil
}

// Submit saves the draft: create when the entry has no identity yet,
// update otherwise, with an identical payload either way. Success is
// terminal. Failure returns the session to StateReady with the draft
// intact so the user can retry or keep editing.
func (s *Session) Submit(ctx context.Context) (string, error) {
	if s.state != StateReady {
		return "", &StateError{Op: "submit", State: s.state}
	}
	s.state = StateSubmitting

	payload := s.draft.Payload()
	var (
		id  string
		err error
	)
	if s.Persisted() {
		payload.ID = s.entryID
		id, err = s.api.UpdateEntry(ctx, payload)
	} else {
		id, err = s.api.CreateEntry(ctx, payload)
	}
	if err != nil {
		s.state = StateReady
		return "", fmt.Errorf("saving entry: %w", err)
	}

	s.entryID = id
	s.state = StateDone
	return id, nil
}

// Cancel abandons the interaction without saving. Nothing is sent.
func (s *Session) Cancel() error {
	switch s.state {
	case StateReady, StateLoading:
		s.state = StateDone
		return nil
	default:
		return &StateError{Op: "cancel", State: s.state}
	}
}
