package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/zhouzirui/moodmate/backend/internal/model/mood"
	"github.com/zhouzirui/moodmate/backend/internal/model/palette"
	"github.com/zhouzirui/moodmate/backend/internal/service/journal"
	"github.com/zhouzirui/moodmate/backend/internal/service/selection"
	"github.com/zhouzirui/moodmate/backend/internal/service/settings"
	"github.com/zhouzirui/moodmate/backend/internal/storage"
)

var (
	ErrEmptySelection = errors.New("select at least one emoji")
	ErrBusy           = errors.New("a submission is already in progress")
	ErrUnknownToken   = errors.New("emoji is not part of the palette")
	// ErrNotSaved accompanies a usable Entry whose record could not be persisted.
	ErrNotSaved       = errors.New("entry not saved")
)

// Suggester answers a selection with a displayable suggestion. It must not fail.
type Suggester interface {
	Suggest(ctx context.Context, tokens []string, lang mood.Language) mood.Suggestion
}

// Options tunes an App.
type Options struct {
	HistoryLimit int
	Logger       *zap.Logger
	Clock        func() time.Time
}

// Entry is the outcome of one submission.
type Entry struct {
	Tokens []string           `json:"tokens"`
	Record mood.EmotionRecord `json:"record"`
}

// Snapshot is everything a view needs to render.
type Snapshot struct {
	Tokens   []string             `json:"tokens"`
	Settings mood.Settings        `json:"settings"`
	Theme    string               `json:"theme"`
	History  []mood.EmotionRecord `json:"history"`
	Busy     bool                 `json:"busy"`
}

// App owns the selection, settings and history of the single user.
type App struct {
	palette   palette.Store
	suggester Suggester
	selection *selection.Selection
	settings  *settings.Service
	journal   *journal.Service
	logger    *zap.Logger
	busy      atomic.Bool
}

// New wires the state services to store. Call Load once before serving.
func New(store storage.Store, suggester Suggester, pal palette.Store, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var journalOpts []journal.Option
	if opts.Clock != nil {
		journalOpts = append(journalOpts, journal.WithClock(opts.Clock))
	}

	return &App{
		palette:   pal,
		suggester: suggester,
		selection: selection.New(),
		settings:  settings.NewService(store, logger),
		journal:   journal.NewService(store, opts.HistoryLimit, logger, journalOpts...),
		logger:    logger.Named("app"),
	}
}

// Load 启动时恢复历史与设置，两者互不影响。
func (a *App) Load(ctx context.Context) error {
	var errs []error
	if err := a.journal.Load(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := a.settings.Load(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	a.logger.Info("state restored",
		zap.Int("history", len(a.journal.List())),
		zap.String("language", string(a.settings.Get().Language)),
	)
	return nil
}

// Palette returns the selectable emoji.
func (a *App) Palette() []palette.Token {
	return a.palette.List()
}

// Toggle flips token in the selection and reports whether it is now selected.
func (a *App) Toggle(token string) (bool, error) {
	token = strings.TrimSpace(token)
	if !a.palette.Contains(token) {
		return false, fmt.Errorf("%q: %w", token, ErrUnknownToken)
	}
	return a.selection.Toggle(token), nil
}

func (a *App) Clear() {
	a.selection.Clear()
}

func (a *App) Selection() []string {
	return a.selection.Tokens()
}

// Busy reports whether a submission is pending.
func (a *App) Busy() bool {
	return a.busy.Load()
}

// Submit sends the current selection for a suggestion and records the result.
// The selection is left untouched so the user can resubmit or adjust it.
// 提交一旦开始就会执行到底，调用方取消 ctx 不会中断请求。
func (a *App) Submit(ctx context.Context) (Entry, error) {
	tokens := a.selection.Tokens()
	if len(tokens) == 0 {
		return Entry{}, ErrEmptySelection
	}
	if !a.busy.CompareAndSwap(false, true) {
		return Entry{}, ErrBusy
	}
	defer a.busy.Store(false)

	work := context.WithoutCancel(ctx)
	lang := a.settings.Get().Language
	result := a.suggester.Suggest(work, tokens, lang)

	record, err := a.journal.Append(work, tokens, result)
	entry := Entry{Tokens: tokens, Record: record}
	if err != nil {
		return entry, fmt.Errorf("%w: %w", ErrNotSaved, err)
	}

	a.logger.Info("entry recorded",
		zap.String("id", record.ID),
		zap.String("emoji", record.Emoji),
		zap.String("language", string(lang)),
	)
	return entry, nil
}

func (a *App) Settings() mood.Settings {
	return a.settings.Get()
}

// UpdateSetting changes one preference by key.
func (a *App) UpdateSetting(ctx context.Context, key string, value any) (mood.Settings, error) {
	return a.settings.Update(ctx, key, value)
}

// History returns the log newest first.
func (a *App) History() []mood.EmotionRecord {
	return a.journal.List()
}

// Entry looks up a history record by id.
func (a *App) Entry(id string) (mood.EmotionRecord, error) {
	return a.journal.Get(id)
}

func (a *App) Summary() []journal.LabelCount {
	return a.journal.Summary()
}

// Snapshot captures the current state for views.
func (a *App) Snapshot() Snapshot {
	current := a.settings.Get()
	return Snapshot{
		Tokens:   a.selection.Tokens(),
		Settings: current,
		Theme:    current.Theme(),
		History:  a.journal.List(),
		Busy:     a.busy.Load(),
	}
}
