package main

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"strings"

	"quizshow"

	"github.com/gorilla/sessions"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

const qrSize = 320

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) cookie(r *http.Request) *sessions.Session {
	// Get only fails on a bad signature; it still returns a fresh session.
	session, err := s.store.Get(r, cookieName)
	if err != nil {
		quizshow.VerboseLog("Discarding unreadable session cookie: %v", err)
	}
	return session
}

// currentPlay finds the play session named by the request cookie
func (s *Server) currentPlay(r *http.Request) (*PlaySession, bool) {
	id, _ := s.cookie(r).Values["play"].(string)
	if id == "" {
		return nil, false
	}
	return s.sessions.get(id)
}

func cookieProfile(session *sessions.Session) *quizshow.Profile {
	p, ok := session.Values["profile"].(quizshow.Profile)
	if !ok {
		return nil
	}
	return &p
}

func (s *Server) startGame(ps *PlaySession) {
	gamesStarted.Inc()
	// a restart on the same slot must not inherit the old clock
	ps.countdown.Stop()
	ps.game.Start()
}

func (s *Server) useLifeline(ps *PlaySession, kind quizshow.LifelineKind) (quizshow.Aid, bool) {
	aid, ok := ps.game.UseLifeline(kind)
	if ok {
		lifelinesUsed.WithLabelValues(string(kind)).Inc()
	}
	return aid, ok
}

func (s *Server) handleLadder(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	ladder := s.catalog.Sanitized().Ladder
	writeJSON(w, http.StatusOK, map[string]any{
		"ladder":      ladder,
		"checkpoints": ladder.Checkpoints(),
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ps, ok := s.currentPlay(r)
	if !ok {
		writeError(w, http.StatusNotFound, "no game in progress")
		return
	}
	writeJSON(w, http.StatusOK, ps.game.Snapshot().Masked())
}

// handleStart begins a new game, reusing the caller's play session when it
// still exists.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	session := s.cookie(r)

	ps, ok := s.currentPlay(r)
	status := http.StatusOK
	if !ok {
		ps = newPlaySession(s.catalog, s.game)
		s.sessions.add(ps)
		session.Values["play"] = ps.ID
		if err := session.Save(r, w); err != nil {
			log.Printf("Session save error: %v", err)
		}
		status = http.StatusCreated
	}
	ps.SetProfile(cookieProfile(session))

	s.startGame(ps)
	writeJSON(w, status, ps.game.Snapshot().Masked())
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ps, ok := s.currentPlay(r)
	if !ok {
		writeError(w, http.StatusNotFound, "no game in progress")
		return
	}

	var body struct {
		Index *int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Index == nil {
		writeError(w, http.StatusBadRequest, "body must be {\"index\": n}")
		return
	}

	ps.game.SelectAnswer(*body.Index)
	writeJSON(w, http.StatusAccepted, ps.game.Snapshot().Masked())
}

func (s *Server) handleLifeline(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	ps, ok := s.currentPlay(r)
	if !ok {
		writeError(w, http.StatusNotFound, "no game in progress")
		return
	}

	kind, ok := quizshow.ParseLifeline(p.ByName("kind"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown lifeline "+p.ByName("kind"))
		return
	}

	aid, applied := s.useLifeline(ps, kind)
	resp := map[string]any{
		"applied": applied,
		"state":   ps.game.Snapshot().Masked(),
	}
	if applied {
		resp["aid"] = aid
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWalkAway(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ps, ok := s.currentPlay(r)
	if !ok {
		writeError(w, http.StatusNotFound, "no game in progress")
		return
	}
	ps.game.WalkAway()
	writeJSON(w, http.StatusAccepted, ps.game.Snapshot().Masked())
}

// summary returns the end-of-game summary, or the status and message of
// why there is none yet
func (s *Server) summary(r *http.Request) (quizshow.Summary, int, string) {
	ps, ok := s.currentPlay(r)
	if !ok {
		return quizshow.Summary{}, http.StatusNotFound, "no game in progress"
	}
	snap := ps.game.Snapshot()
	if !snap.Status.Terminal() {
		return quizshow.Summary{}, http.StatusConflict, "game is not over"
	}
	return quizshow.Summarize(snap.Status, snap.Winnings, ps.game.Answered(), ps.Profile(), s.cfg.shareRepo), http.StatusOK, ""
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	summary, status, msg := s.summary(r)
	if status != http.StatusOK {
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleShareQR renders the share link as a QR code for phones
func (s *Server) handleShareQR(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	summary, status, msg := s.summary(r)
	if status != http.StatusOK {
		writeError(w, status, msg)
		return
	}
	if summary.ShareURL == "" {
		writeError(w, http.StatusNotFound, "sharing needs a profile")
		return
	}

	png, err := qrcode.Encode(summary.ShareURL, qrcode.Low, qrSize)
	if err != nil {
		log.Printf("QR generation failed: %v", err)
		writeError(w, http.StatusUnprocessableEntity, "share link too long for a QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

var summaryPage = template.Must(template.New("summary").Funcs(template.FuncMap{
	"number": quizshow.FormatNumber,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Summary.Title}}</title></head>
<body>
<h1>{{.Summary.Title}}</h1>
<img src="{{.Summary.Image}}" alt="Octocat" width="160">
<p>{{.Summary.Message}}</p>
<h2>{{number .Summary.Winnings}} GitHub Stickers</h2>
{{if .Summary.Answered}}<ol>
{{range .Summary.Answered}}<li>{{if .Correct}}&#10003;{{else}}&#10007;{{end}} Question {{.Slot}}: {{.Question}}</li>
{{end}}</ol>{{end}}
{{if .Summary.ShareURL}}<p><a href="{{.Summary.ShareURL}}" target="_blank" rel="noopener noreferrer">Share Your Score!</a></p>
<img src="{{.Prefix}}/api/game/share.png" alt="Share QR code" width="{{.QRSize}}">{{end}}
</body>
</html>
`))

func (s *Server) handleSummaryPage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	summary, status, msg := s.summary(r)
	if status != http.StatusOK {
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := summaryPage.Execute(w, map[string]any{
		"Summary": summary,
		"Prefix":  s.cfg.prefix,
		"QRSize":  qrSize,
	})
	if err != nil {
		log.Printf("Template error in summary: %v", err)
	}
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	p := cookieProfile(s.cookie(r))
	if p == nil {
		writeError(w, http.StatusNotFound, "no profile")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Handle string `json:"handle"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Handle) == "" {
		writeError(w, http.StatusBadRequest, "body must be {\"handle\": \"...\"}")
		return
	}

	p := quizshow.ResolveProfile(r.Context(), s.resolver, body.Handle)
	if p == nil {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}

	session := s.cookie(r)
	session.Values["profile"] = *p
	if err := session.Save(r, w); err != nil {
		log.Printf("Session save error: %v", err)
	}
	if ps, ok := s.currentPlay(r); ok {
		ps.SetProfile(p)
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleClearProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	session := s.cookie(r)
	delete(session.Values, "profile")
	if err := session.Save(r, w); err != nil {
		log.Printf("Session save error: %v", err)
	}
	if ps, ok := s.currentPlay(r); ok {
		ps.SetProfile(nil)
	}
	w.WriteHeader(http.StatusNoContent)
}
