// Package api exposes the diary over HTTP. Handlers stay thin: decode,
// authorize against the session, call the store, encode. Anything the
// client cannot fix is logged server-side and answered generically.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"

	"github.com/selfdiary/selfdiary/diary"
	"github.com/selfdiary/selfdiary/diary/auth"
	"github.com/selfdiary/selfdiary/diary/session"
	"github.com/selfdiary/selfdiary/internal/logutil"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "selfdiary_session"

type (
	handler struct {
		store          *diary.Store
		sessions       *session.Registry
		log            zerolog.Logger
		insecureCookie bool
	}

	credentialsPayload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	entryPayload struct {
		Content       string `json:"content"`
		RecordingsMap string `json:"recordings_map"`
	}

	deleteBatchPayload struct {
		EntryIDs []int64 `json:"entry_ids"`
	}
)

// AsHandler wires every diary route on top of the given store and session
// registry. Set insecureCookie when serving plain HTTP (local dev only).
func AsHandler(ctx context.Context, store *diary.Store, sessions *session.Registry, insecureCookie bool) http.Handler {
	h := &handler{
		store:          store,
		sessions:       sessions,
		log:            logutil.GetOrDefault(ctx),
		insecureCookie: insecureCookie,
	}
	router := httprouter.New()
	router.HandlerFunc("POST", "/api/register", h.register)
	router.HandlerFunc("POST", "/api/login", h.login)
	router.HandlerFunc("POST", "/api/logout", h.logout)
	router.HandlerFunc("GET", "/api/session", h.currentSession)
	router.Handle("GET", "/api/entries/:user_id", h.listEntries)
	router.Handle("POST", "/api/entries/:user_id", h.addEntry)
	router.Handle("POST", "/api/entries/:user_id/delete_multiple", h.deleteEntries)
	router.Handle("PUT", "/api/entries/:user_id/:entry_id", h.editEntry)
	router.Handle("DELETE", "/api/entries/:user_id/:entry_id", h.deleteEntry)
	return router
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var creds credentialsPayload
	if !decodeBody(w, r, &creds) {
		return
	}
	err := auth.Register(r.Context(), h.store, creds.Username, creds.Password)
	var invalid auth.ValidationError
	var taken diary.UsernameTaken
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, "User registered successfully")
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusBadRequest, invalid.Message)
	case errors.As(err, &taken):
		writeJSON(w, http.StatusBadRequest, "Username is already taken")
	default:
		h.serverError(w, r, err)
	}
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var creds credentialsPayload
	if !decodeBody(w, r, &creds) {
		return
	}
	userID, username, err := auth.Login(r.Context(), h.store, creds.Username, creds.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeJSON(w, http.StatusUnauthorized, "Invalid username or password")
		return
	} else if err != nil {
		h.serverError(w, r, err)
		return
	}
	token, err := session.NewToken()
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	err = h.sessions.Bind(r.Context(), token, session.Identity{UserID: userID, Username: username})
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   !h.insecureCookie,
		SameSite: http.SameSiteNoneMode,
	})
	writeJSON(w, http.StatusOK, "Login successful")
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Purge(r.Context(), sessionToken(r))
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, "Logged out successfully")
}

// currentSession reports the bound identity, or an explicit null pair for
// anonymous callers. Both fields are always null together.
func (h *handler) currentSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessions.Identity(r.Context(), sessionToken(r))
	if !ok {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"user_id":  nil,
			"username": nil,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":  id.UserID,
		"username": id.Username,
	})
}

func (h *handler) listEntries(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	userID, ok := h.authorizeOwner(w, r, params)
	if !ok {
		return
	}
	filter, err := dateFilterFromQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, "Invalid date parameter")
		return
	}
	entries, err := h.store.ListEntries(r.Context(), userID, filter)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if entries == nil {
		entries = []diary.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *handler) addEntry(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	userID, ok := h.authorizeOwner(w, r, params)
	if !ok {
		return
	}
	var entry entryPayload
	if !decodeBody(w, r, &entry) {
		return
	}
	err := h.store.AddEntry(r.Context(), userID, entry.Content, entry.RecordingsMap,
		time.Now().Format(diary.TimestampLayout))
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "Entry added successfully")
}

func (h *handler) editEntry(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	userID, ok := h.authorizeOwner(w, r, params)
	if !ok {
		return
	}
	entryID, err := strconv.ParseInt(params.ByName("entry_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, "Invalid entry id")
		return
	}
	var entry entryPayload
	if !decodeBody(w, r, &entry) {
		return
	}
	// a zero-row update (wrong owner or unknown id) still reads as success
	_, err = h.store.EditEntry(r.Context(), userID, entryID, entry.Content, entry.RecordingsMap)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "Entry updated successfully")
}

func (h *handler) deleteEntry(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	userID, ok := h.authorizeOwner(w, r, params)
	if !ok {
		return
	}
	entryID, err := strconv.ParseInt(params.ByName("entry_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, "Invalid entry id")
		return
	}
	_, err = h.store.DeleteEntry(r.Context(), userID, entryID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "Entry deleted successfully")
}

func (h *handler) deleteEntries(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	userID, ok := h.authorizeOwner(w, r, params)
	if !ok {
		return
	}
	var batch deleteBatchPayload
	if !decodeBody(w, r, &batch) {
		return
	}
	err := h.store.DeleteEntries(r.Context(), userID, batch.EntryIDs)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "Selected entries deleted successfully")
}

// authorizeOwner parses the path user id and checks it against the
// session identity, answering 403 itself when the check fails. Every
// entry handler must go through here before touching the store.
func (h *handler) authorizeOwner(w http.ResponseWriter, r *http.Request, params httprouter.Params) (int64, bool) {
	userID, err := strconv.ParseInt(params.ByName("user_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, "Invalid user id")
		return 0, false
	}
	err = h.sessions.Authorize(r.Context(), sessionToken(r), userID)
	if err != nil {
		writeJSON(w, http.StatusForbidden, "Unauthorized access")
		return 0, false
	}
	return userID, true
}

// dateFilterFromQuery maps the optional date_from/date_to parameters to a
// filter: both set means a range, date_from alone means a single date and
// anything else means no filter. Note that date_to without date_from is
// ignored; the frontend always sends date_from first, and the behavior is
// kept for compatibility.
func dateFilterFromQuery(r *http.Request) (diary.DateFilter, error) {
	q := r.URL.Query()
	var from, to time.Time
	var err error
	if v := q.Get("date_from"); v != "" {
		from, err = time.Parse(diary.DateLayout, v)
		if err != nil {
			return diary.NoFilter(), err
		}
		if v := q.Get("date_to"); v != "" {
			to, err = time.Parse(diary.DateLayout, v)
			if err != nil {
				return diary.NoFilter(), err
			}
			return diary.DateRange(from, to), nil
		}
		return diary.SingleDate(from), nil
	}
	return diary.NoFilter(), nil
}

func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func decodeBody(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeJSON(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func (h *handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, "Internal server error")
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	buf, err := json.Marshal(body)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(buf)))
	w.WriteHeader(status)
	w.Write(buf)
}
