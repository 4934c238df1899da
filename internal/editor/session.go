package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/quickhire/profile-engine/internal/domain"
	"github.com/quickhire/profile-engine/internal/observability"
	"github.com/quickhire/profile-engine/internal/profile"
)

// State is the edit session state.
type State int

// Session states. Exactly one transition graph exists:
// Viewing -> Editing -> Saving -> Viewing (success) | Editing (failure),
// plus Editing -> Viewing via Cancel.
const (
	Viewing State = iota
	Editing
	Saving
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	default:
		return "viewing"
	}
}

// ErrNotEditing is returned when a mutation or save arrives outside an
// open edit session.
var ErrNotEditing = errors.New("no edit session open")

// Notifier receives non-field notifications (network, session expiry,
// opaque server failures). Consecutive duplicates are suppressed so
// redundant re-evaluation does not stack identical toasts.
type Notifier func(message string)

// Generic notices for failures without a usable server message.
const (
	noticeSaveFailed     = "Could not save your profile. Please try again."
	noticeSessionExpired = "Your session has expired. Please sign in again."
	noticeNetwork        = "Could not reach the profile service. Check your connection and try again."
)

// Session orchestrates the view/edit state machine. It owns the draft copy
// of the record, delegates collection and skill mutations to the bound
// editors, and commits through the sync client. The session is meant for a
// single event loop; it is not safe for concurrent use.
type Session struct {
	store  *profile.Store
	sync   domain.SyncClient
	notify Notifier

	state       State
	draft       *Draft
	collections *CollectionEditor
	skills      *SkillEditor
	fieldErrs   domain.FieldErrors
	lastNotice  string
}

// NewSession constructs a session over the given store and sync client.
func NewSession(store *profile.Store, sc domain.SyncClient) *Session {
	return &Session{store: store, sync: sc}
}

// OnNotice registers the receiver for non-field notifications.
func (s *Session) OnNotice(fn Notifier) { s.notify = fn }

// State returns the current session state.
func (s *Session) State() State { return s.state }

// Draft exposes the working copy; nil outside an edit session.
func (s *Session) Draft() *Draft { return s.draft }

// Skills returns the skill sub-editor; nil outside an edit session.
func (s *Session) Skills() *SkillEditor { return s.skills }

// Errors returns a copy of the current field-error map.
func (s *Session) Errors() domain.FieldErrors {
	out := domain.FieldErrors{}
	for k, v := range s.fieldErrs {
		out[k] = v
	}
	return out
}

// FieldError returns the message attached to a field, if any.
func (s *Session) FieldError(name string) string { return s.fieldErrs[name] }

// BeginEdit snapshots the stored record into a fresh draft and enters
// Editing. The field-error map is cleared and the sub-editors reset. It
// fails when no record is loaded or a session is already open.
func (s *Session) BeginEdit() error {
	if s.state != Viewing {
		return fmt.Errorf("op=session.begin_edit state=%s: %w", s.state, domain.ErrConflict)
	}
	rec, ok := s.store.Current()
	if !ok {
		return fmt.Errorf("op=session.begin_edit: %w", domain.ErrNotFound)
	}
	s.draft = newDraft(rec)
	s.fieldErrs = domain.FieldErrors{}
	s.collections = NewCollectionEditor(s.draft, s.clearFieldError)
	s.skills = NewSkillEditor(s.draft, func() { s.clearFieldError("skills") })
	s.state = Editing
	return nil
}

// SetField writes a scalar field on the draft. Editing a field clears any
// error attached to it; nothing is re-validated until the next save.
func (s *Session) SetField(name, value string) error {
	if s.state != Editing {
		return ErrNotEditing
	}
	if err := s.draft.setScalar(name, value); err != nil {
		return fmt.Errorf("op=session.set_field field=%s: %w", name, err)
	}
	s.clearFieldError(name)
	return nil
}

// SetToggle writes one of the demographic booleans on the draft.
func (s *Session) SetToggle(name string, value bool) error {
	if s.state != Editing {
		return ErrNotEditing
	}
	if err := s.draft.setToggle(name, value); err != nil {
		return fmt.Errorf("op=session.set_toggle field=%s: %w", name, err)
	}
	s.clearFieldError(name)
	return nil
}

// AddArrayItem adds a tag to one of the array fields via the collection
// editor.
func (s *Session) AddArrayItem(field, raw string) error {
	if s.state != Editing {
		return ErrNotEditing
	}
	return s.collections.Add(field, raw)
}

// RemoveArrayItem removes the tag at index from one of the array fields.
func (s *Session) RemoveArrayItem(field string, index int) error {
	if s.state != Editing {
		return ErrNotEditing
	}
	return s.collections.Remove(field, index)
}

// Cancel discards the draft and returns to Viewing. It leaves the stored
// record untouched and is a no-op when no session is open.
func (s *Session) Cancel() {
	if s.state != Editing {
		return
	}
	s.dropDraft()
	s.state = Viewing
}

// Save normalizes the draft and submits the full mutable field set. At most
// one save may be in flight; a second call returns domain.ErrSaveInFlight.
//
// On success the store is replaced wholesale with the server record and the
// session returns to Viewing. On a validation failure the draft is retained,
// the offending fields are marked, and the session stays in Editing so the
// user can correct and retry. Auth and transport failures also retain the
// draft and surface a single non-field notice. When ctx is cancelled before
// the response is applied, no session or store state changes.
func (s *Session) Save(ctx context.Context) error {
	switch s.state {
	case Saving:
		return domain.ErrSaveInFlight
	case Viewing:
		return ErrNotEditing
	}
	s.state = Saving
	req := s.draft.toUpdateRequest()

	rec, err := s.sync.Update(ctx, req)
	if ctx.Err() != nil {
		s.state = Editing
		return fmt.Errorf("op=session.save: %w", ctx.Err())
	}
	if err != nil {
		s.state = Editing
		s.applyFailure(ctx, err)
		return err
	}

	s.store.Replace(rec)
	s.dropDraft()
	s.lastNotice = ""
	s.state = Viewing
	slog.Info("profile saved", slog.String("candidate_code", rec.CandidateCode))
	return nil
}

// applyFailure maps a save failure into field errors or a single notice.
func (s *Session) applyFailure(ctx context.Context, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) && len(vErr.Fields) > 0 {
		fields := domain.FieldErrors{}
		for k, v := range vErr.Fields {
			fields[k] = v
		}
		s.fieldErrs = fields
		observability.LoggerFromContext(ctx).Warn("save rejected", slog.Int("fields", len(fields)))
		return
	}
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		s.emitNotice(noticeSessionExpired)
	case errors.Is(err, domain.ErrNetwork):
		s.emitNotice(noticeNetwork)
	case vErr != nil && vErr.Message != "":
		s.emitNotice(vErr.Message)
	default:
		s.emitNotice(noticeSaveFailed)
	}
	observability.LoggerFromContext(ctx).Warn("save failed", slog.Any("error", err))
}

// emitNotice forwards a notice unless it repeats the previous one.
func (s *Session) emitNotice(msg string) {
	if msg == s.lastNotice {
		return
	}
	s.lastNotice = msg
	if s.notify != nil {
		s.notify(msg)
	}
}

func (s *Session) clearFieldError(name string) {
	delete(s.fieldErrs, name)
}

func (s *Session) dropDraft() {
	s.draft = nil
	s.collections = nil
	s.skills = nil
	s.fieldErrs = nil
}
