// Package chat runs one conversational turn end to end: slot capture,
// routing, enrichment and transcript.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/medic/supportbot/internal/engine"
	"github.com/medic/supportbot/internal/enrich"
	"github.com/medic/supportbot/internal/lookup"
	"github.com/medic/supportbot/internal/metrics"
	"github.com/medic/supportbot/internal/models"
	"github.com/medic/supportbot/internal/profile"
	"github.com/medic/supportbot/internal/slot"
)

var ErrEmptyMessage = errors.New("empty message")

const (
	msgIDStored    = `Perfecto, guardé tu DNI: %s. Podés preguntarme "mi plan" o "mi estado".`
	msgIDUpdated   = "Actualicé tu DNI a %s."
	msgIDUnchanged = "Ya tenía registrado tu DNI: %s."
)

type Reply struct {
	SessionID string        `json:"session_id"`
	Messages  []string      `json:"messages"`
	Action    engine.Action `json:"action"`
}

type Service struct {
	Router     *engine.Router
	Profiles   profile.Store
	Transcript Transcript
	Lookup     lookup.Client
	Logger     zerolog.Logger
	Now        func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// session serializes profile read/modify/write. seq grows with every turn
// so a lookup that outlives its turn can tell it is stale. refs counts the
// calls holding the entry; an entry nobody holds is dropped.
type session struct {
	mu   sync.Mutex
	seq  uint64
	refs int
}

func (s *Service) acquire(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions == nil {
		s.sessions = map[string]*session{}
	}
	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{}
		s.sessions[id] = sess
	}
	sess.refs++
	return sess
}

func (s *Service) release(id string, sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.refs--
	if sess.refs == 0 && s.sessions[id] == sess {
		delete(s.sessions, id)
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Handle processes one user message. Only failures to load or update the
// profile before routing are returned as errors; lookup problems become part
// of the reply and a failed save of the enriched profile is only logged.
func (s *Service) Handle(ctx context.Context, sessionID, text string) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, ErrEmptyMessage
	}
	now := s.now()
	sess := s.acquire(sessionID)
	defer s.release(sessionID, sess)

	sess.mu.Lock()
	sess.seq++
	seq := sess.seq

	p, err := s.Profiles.Get(ctx, sessionID)
	if err != nil {
		sess.mu.Unlock()
		return Reply{}, fmt.Errorf("load profile: %w", err)
	}

	reply := Reply{SessionID: sessionID}
	if msg, changed := captureNationalID(&p, text); msg != "" {
		if changed {
			if err := s.Profiles.Set(ctx, sessionID, p); err != nil {
				sess.mu.Unlock()
				return Reply{}, fmt.Errorf("save profile: %w", err)
			}
		}
		reply.Messages = append(reply.Messages, msg)
	}

	action := s.Router.Respond(text, now)
	reply.Action = action
	reply.Messages = append(reply.Messages, action.Message)
	metrics.TurnsTotal.WithLabelValues(string(action.Intent)).Inc()
	sess.mu.Unlock()

	if feature, ok := action.LookupFeature(); ok {
		start := time.Now()
		res := enrich.Enrich(ctx, feature, p, s.Lookup)
		metrics.EnrichmentDuration.WithLabelValues(string(feature)).Observe(time.Since(start).Seconds())
		metrics.Enrichments.WithLabelValues(string(feature), string(res.Status)).Inc()

		if res.Err != nil {
			s.Logger.Warn().Err(res.Err).
				Str("session_id", sessionID).
				Str("feature", string(feature)).
				Str("status", string(res.Status)).
				Msg("profile lookup failed")
		}
		if res.Persist() {
			if err := s.persist(ctx, sess, seq, sessionID, res.Profile); err != nil {
				s.Logger.Error().Err(err).Str("session_id", sessionID).Msg("saving enriched profile failed")
			}
		}
		reply.Messages = append(reply.Messages, res.Message)
	}

	s.record(ctx, sessionID, seq, now, text, action, reply.Messages)
	return reply, nil
}

func (s *Service) persist(ctx context.Context, sess *session, seq uint64, sessionID string, p models.Profile) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.seq != seq {
		metrics.StaleEnrichments.Inc()
		s.Logger.Debug().
			Str("session_id", sessionID).
			Uint64("seq", seq).
			Uint64("current_seq", sess.seq).
			Msg("discarding stale lookup result")
		return nil
	}
	if err := s.Profiles.Set(ctx, sessionID, p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *Service) record(ctx context.Context, sessionID string, seq uint64, at time.Time, text string, action engine.Action, messages []string) {
	if s.Transcript == nil {
		return
	}
	turns := make([]models.Turn, 0, len(messages)+1)
	turns = append(turns, models.Turn{SessionID: sessionID, Seq: seq, Role: models.RoleUser, Text: text, Intent: string(action.Intent), CreatedAt: at})
	for _, m := range messages {
		turns = append(turns, models.Turn{SessionID: sessionID, Seq: seq, Role: models.RoleBot, Text: m, CreatedAt: at})
	}
	if err := s.Transcript.Append(ctx, turns...); err != nil {
		s.Logger.Warn().Err(err).Str("session_id", sessionID).Msg("transcript append failed")
	}
}

// captureNationalID applies "last ID wins": a newly extracted ID replaces a
// different cached one and every other cached field stays as is.
func captureNationalID(p *models.Profile, text string) (msg string, changed bool) {
	found, ok := slot.ExtractNationalID(text)
	if !ok {
		return "", false
	}
	formatted := slot.FormatNationalID(found)
	switch p.NationalID {
	case "":
		p.NationalID = found
		metrics.SlotCaptures.WithLabelValues("stored").Inc()
		return fmt.Sprintf(msgIDStored, formatted), true
	case found:
		metrics.SlotCaptures.WithLabelValues("unchanged").Inc()
		return fmt.Sprintf(msgIDUnchanged, formatted), false
	default:
		p.NationalID = found
		metrics.SlotCaptures.WithLabelValues("updated").Inc()
		return fmt.Sprintf(msgIDUpdated, formatted), true
	}
}

func (s *Service) Profile(ctx context.Context, sessionID string) (models.Profile, error) {
	return s.Profiles.Get(ctx, sessionID)
}

// Logout drops the cached profile and bumps the session sequence so an
// in-flight lookup cannot bring it back.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	sess := s.acquire(sessionID)
	defer s.release(sessionID, sess)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.seq++
	return s.Profiles.Delete(ctx, sessionID)
}

func (s *Service) History(ctx context.Context, sessionID string) ([]models.Turn, error) {
	if s.Transcript == nil {
		return nil, nil
	}
	return s.Transcript.List(ctx, sessionID)
}
