// Package rollover carries unfinished todos from the previous daily note
// into a newly created one.
package rollover

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/starford/rollover/internal/apperr"
	"github.com/starford/rollover/internal/checksum"
	"github.com/starford/rollover/internal/locator"
	"github.com/starford/rollover/internal/merge"
	"github.com/starford/rollover/internal/models"
	"github.com/starford/rollover/internal/parser"
	"github.com/starford/rollover/internal/state"
	"github.com/starford/rollover/internal/storage"
)

// SettingTemplateHeading is the settings key of the target heading.
const SettingTemplateHeading = "template_heading"

// Options is the daily-notes configuration resolved once at startup.
type Options struct {
	Folder       string
	TemplatePath string
	FreshWithin  time.Duration
}

// Outcome describes how a created-note event was handled.
type Outcome string

const (
	OutcomeRolled        Outcome = "rolled"
	OutcomeUnchanged     Outcome = "unchanged"
	OutcomeNoPrevious    Outcome = "no_previous"
	OutcomeNotDaily      Outcome = "not_daily"
	OutcomeNotToday      Outcome = "not_today"
	OutcomeStale         Outcome = "stale"
	OutcomeAlreadyRolled Outcome = "already_rolled"
)

// Result reports one run of the pipeline.
type Result struct {
	RunID   string   `json:"run_id,omitempty"`
	Note    string   `json:"note"`
	Source  string   `json:"source,omitempty"`
	Todos   []string `json:"todos"`
	Outcome Outcome  `json:"outcome"`
}

// Preview is the dry-run output for a note.
type Preview struct {
	Note    string   `json:"note"`
	Source  string   `json:"source,omitempty"`
	Heading string   `json:"heading"`
	Todos   []string `json:"todos"`
	Content string   `json:"content"`
}

// Service runs the rollover pipeline and owns the template heading setting.
type Service struct {
	store  storage.Provider
	state  state.Store
	opts   Options
	logger *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	heading string
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates the service and loads the template heading setting,
// defaulting to merge.None when it has never been saved.
func NewService(store storage.Provider, st state.Store, opts Options, logger *slog.Logger, sopts ...ServiceOption) (*Service, error) {
	s := &Service{
		store:   store,
		state:   st,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
		heading: merge.None,
	}
	for _, o := range sopts {
		o(s)
	}

	v, ok, err := st.GetSetting(SettingTemplateHeading)
	if err != nil {
		return nil, fmt.Errorf("rollover: load settings: %w", err)
	}
	if ok && v != "" {
		s.heading = v
	}
	return s, nil
}

// TemplateHeading returns the current target heading or merge.None.
func (s *Service) TemplateHeading() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.heading
}

// SetTemplateHeading validates heading against the template candidates,
// persists it, and makes it current.
func (s *Service) SetTemplateHeading(ctx context.Context, heading string) error {
	candidates, err := s.HeadingCandidates(ctx)
	if err != nil {
		return err
	}
	valid := false
	for _, c := range candidates {
		if c == heading {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: %q", apperr.ErrInvalidHeading, heading)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.PutSetting(SettingTemplateHeading, heading); err != nil {
		return err
	}
	s.heading = heading
	s.logger.Info("template heading updated", slog.String("heading", heading))
	return nil
}

// HeadingCandidates returns every heading line in the daily-note template
// followed by merge.None. A missing template only offers merge.None.
func (s *Service) HeadingCandidates(_ context.Context) ([]string, error) {
	out := []string{}
	if s.opts.TemplatePath != "" {
		data, err := s.store.Read(s.opts.TemplatePath)
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			s.logger.Debug("template not found", slog.String("path", s.opts.TemplatePath))
		case err != nil:
			return nil, fmt.Errorf("rollover: read template: %w", err)
		default:
			seen := make(map[string]struct{})
			for _, h := range parser.Headings(string(data)) {
				if _, dup := seen[h]; dup {
					continue
				}
				seen[h] = struct{}{}
				out = append(out, h)
			}
		}
	}
	return append(out, merge.None), nil
}

// HandleCreated applies the trigger policy to a created note and, when it
// qualifies, runs the pipeline once for that event. Storage failures are returned; every
// other condition is reported through Result.Outcome.
func (s *Service) HandleCreated(ctx context.Context, path string) (Result, error) {
	res := Result{Note: path, Todos: []string{}}

	if !locator.InDir(path, s.opts.Folder) {
		res.Outcome = OutcomeNotDaily
		return res, nil
	}
	note, err := s.store.Stat(path)
	if err != nil {
		return res, err
	}

	now := s.now()
	if note.Basename != now.Format(models.DateLayout) {
		res.Outcome = OutcomeNotToday
		return res, nil
	}
	if now.Sub(note.CreatedAt) >= s.opts.FreshWithin {
		res.Outcome = OutcomeStale
		return res, nil
	}

	data, err := s.store.Read(path)
	if err != nil {
		return res, err
	}
	content := string(data)

	// Our own write fires another create event for the same note; a
	// recorded checksum equal to the current content means it is that echo.
	last, err := s.state.GetRollover(path)
	switch {
	case err == nil && last.Checksum == checksum.Of(content):
		res.Outcome = OutcomeAlreadyRolled
		return res, nil
	case err != nil && !errors.Is(err, apperr.ErrNotFound):
		return res, err
	}

	return s.run(ctx, note, content)
}

func (s *Service) run(_ context.Context, note models.Note, content string) (Result, error) {
	res := Result{RunID: uuid.NewString(), Note: note.Path, Todos: []string{}}
	logger := s.logger.With(slog.String("run_id", res.RunID), slog.String("path", note.Path))

	prev, todos, ok, err := s.plan(note)
	if err != nil {
		return res, err
	}
	if !ok {
		res.Outcome = OutcomeNoPrevious
		logger.Info("rollover: no previous note")
		return res, s.record(res, content)
	}
	res.Source = prev.Path
	res.Todos = todos

	merged := merge.Merge(content, todos, s.TemplateHeading())
	if merged == content {
		res.Outcome = OutcomeUnchanged
		logger.Info("rollover: nothing to insert",
			slog.String("source", prev.Path),
			slog.Int("todos", len(todos)))
		return res, s.record(res, content)
	}

	if err := s.store.Write(note.Path, []byte(merged)); err != nil {
		return res, err
	}
	res.Outcome = OutcomeRolled
	logger.Info("rollover: todos carried over",
		slog.String("source", prev.Path),
		slog.Int("todos", len(todos)))
	return res, s.record(res, merged)
}

// plan locates the previous note and extracts its todos. ok is false when
// there is no previous note.
func (s *Service) plan(note models.Note) (prev models.Note, todos []string, ok bool, err error) {
	notes, err := s.store.List(s.opts.Folder)
	if err != nil {
		return prev, nil, false, err
	}
	prev, ok = locator.FindPrevious(notes, note, s.opts.Folder)
	if !ok {
		return prev, []string{}, false, nil
	}

	data, err := s.store.Read(prev.Path)
	if err != nil {
		return prev, nil, false, err
	}
	return prev, parser.ExtractTodos(string(data)), true, nil
}

// record upserts the history entry; content is what the note holds after
// the run.
func (s *Service) record(res Result, content string) error {
	return s.state.RecordRollover(models.Rollover{
		NotePath:   res.Note,
		SourcePath: res.Source,
		TodoCount:  len(res.Todos),
		Checksum:   checksum.Of(content),
		RunID:      res.RunID,
		RolledAt:   s.now(),
	})
}

// Preview computes what a rollover into path would produce without writing
// anything or consulting the trigger policy.
func (s *Service) Preview(_ context.Context, path string) (Preview, error) {
	heading := s.TemplateHeading()
	p := Preview{Note: path, Heading: heading, Todos: []string{}}

	note, err := s.store.Stat(path)
	if err != nil {
		return p, err
	}
	data, err := s.store.Read(note.Path)
	if err != nil {
		return p, err
	}
	p.Content = string(data)

	prev, todos, ok, err := s.plan(note)
	if err != nil {
		return p, err
	}
	if !ok {
		return p, nil
	}
	p.Source = prev.Path
	p.Todos = todos
	p.Content = merge.Merge(p.Content, todos, heading)
	return p, nil
}
