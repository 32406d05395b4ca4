// Package capture drives a camera through acquire, scan and release, and
// hands successful identifications to the detail view.
package capture

import (
	"context"
	"strconv"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/agenthands/labscan/internal/apperr"
	"github.com/agenthands/labscan/internal/catalog"
	"github.com/agenthands/labscan/internal/core/model"
	"github.com/agenthands/labscan/internal/handoff"
	"github.com/agenthands/labscan/internal/media"
)

var (
	ErrBusy     = errors.New("a scan is already in progress")
	ErrClosed   = errors.New("scanner is closed")
	ErrNotReady = errors.New("camera is not ready")
)

type State string

const (
	StateIdle        State = "idle"
	StateReady       State = "ready"
	StateScanning    State = "scanning"
	StateUnavailable State = "unavailable"
	StateClosed      State = "closed"
)

type Identifier interface {
	IdentifyImage(ctx context.Context, img media.Image) (model.Identification, error)
}

// Result of one scan. Session and Link are set only when the item was
// accepted as lab equipment and handed off.
type Result struct {
	Identification model.Identification `json:"identification"`
	Accepted       bool                 `json:"accepted"`
	Session        string               `json:"session,omitempty"`
	Link           string               `json:"link,omitempty"`
}

type Scanner struct {
	id    Identifier
	store handoff.Store
	log   *zap.Logger

	mu      sync.Mutex
	state   State
	source  FrameSource
	lastErr error
}

func NewScanner(id Identifier, store handoff.Store, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{id: id, store: store, log: log, state: StateIdle}
}

// Open acquires the camera. On failure the scanner stays unavailable and
// Scan is refused until a later Open succeeds.
func (s *Scanner) Open(ctx context.Context, open Opener) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateClosed:
		return ErrClosed
	case StateScanning:
		return ErrBusy
	}

	src, err := open(ctx)
	if err != nil {
		if !errors.Is(err, apperr.ErrCameraUnavailable) && !errors.Is(err, apperr.ErrValidation) {
			err = apperr.Camera(err, "open camera")
		}
		s.state = StateUnavailable
		s.lastErr = err
		s.log.Warn("camera unavailable", zap.Error(err))
		return err
	}

	if s.source != nil {
		_ = s.source.Close()
	}
	s.source = src
	s.state = StateReady
	s.lastErr = nil
	return nil
}

func (s *Scanner) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Message is the inline error shown beside the capture control, or "".
func (s *Scanner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastErr == nil {
		return ""
	}
	return apperr.ScanHint(s.lastErr)
}

// Scan captures one frame, identifies it and, for lab equipment, stores
// the frame and the auto-play flag for the detail view.
func (s *Scanner) Scan(ctx context.Context) (Result, error) {
	src, err := s.begin()
	if err != nil {
		return Result{}, err
	}

	res, err := s.scan(ctx, src)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateScanning {
		s.state = StateReady
	}
	s.lastErr = err
	return res, err
}

func (s *Scanner) begin() (FrameSource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateReady:
		s.state = StateScanning
		s.lastErr = nil
		return s.source, nil
	case StateScanning:
		return nil, ErrBusy
	case StateClosed:
		return nil, ErrClosed
	case StateUnavailable:
		return nil, errors.Mark(errors.Wrap(s.lastErr, "capture disabled"), apperr.ErrCameraUnavailable)
	default:
		return nil, apperr.Camera(ErrNotReady, "capture disabled")
	}
}

func (s *Scanner) scan(ctx context.Context, src FrameSource) (Result, error) {
	frame, err := src.Capture(ctx)
	if err != nil {
		return Result{}, err
	}

	ident, err := s.id.IdentifyImage(ctx, frame)
	if err != nil {
		s.log.Error("identification failed", zap.Error(err))
		return Result{}, err
	}
	if ident.EquipmentName == "" {
		return Result{}, apperr.Model(errors.New("no equipment name found in result"), "identify")
	}

	res := Result{Identification: ident}
	if ident.Rejected() {
		s.log.Info("item rejected", zap.String("reason", ident.Reason()))
		return res, nil
	}

	session := handoff.NewSession()
	if err := s.store.Put(ctx, session, handoff.KeyCapturedImage, frame.DataURI()); err != nil {
		return Result{}, errors.Wrap(err, "hand off captured image")
	}
	if err := s.store.Put(ctx, session, handoff.KeyAutoPlayAudio, strconv.FormatBool(true)); err != nil {
		return Result{}, errors.Wrap(err, "hand off auto-play flag")
	}

	res.Accepted = true
	res.Session = session
	res.Link = catalog.Link(catalog.Ref{
		Name:        ident.EquipmentName,
		Description: ident.Description,
		Category:    ident.Category,
	})
	s.log.Info("equipment identified",
		zap.String("equipment", ident.EquipmentName),
		zap.String("category", ident.Category),
		zap.String("session", session),
	)
	return res, nil
}

// Close releases the camera. The scanner cannot be reused.
func (s *Scanner) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateClosed
	if s.source == nil {
		return nil
	}
	err := s.source.Close()
	s.source = nil
	return err
}
