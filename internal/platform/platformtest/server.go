// Package platformtest runs an in-process fake of the OMS backend for tests.
package platformtest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/felixgeelhaar/omsctl/internal/domain"
)

// User is an account known to the fake backend
type User struct {
	ID        int
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.Role
	PTO       string
}

// Request is one recorded inbound request
type Request struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
	Body          string
}

type failure struct {
	status int
	body   string
}

type timeOff struct {
	ID     int    `json:"id"`
	User   string `json:"user"`
	Start  string `json:"start_date"`
	End    string `json:"end_date"`
	Days   string `json:"request_days"`
	Reason string `json:"reason"`
	Status string `json:"status"`
}

type auditEntry struct {
	ID             int       `json:"id"`
	ChangeTime     time.Time `json:"change_time"`
	UserEmail      string    `json:"user_email"`
	ChangedByEmail string    `json:"changed_by_email"`
	OldStatus      string    `json:"old_status"`
	NewStatus      string    `json:"new_status"`
	StatusReason   string    `json:"status_reason"`
}

// Server is a fake OMS backend speaking the DRF/SimpleJWT wire format
type Server struct {
	srv *httptest.Server

	mu        sync.Mutex
	nextID    int
	nextToken int
	users     map[string]*User
	access    map[string]string
	refresh   map[string]string
	clockedIn map[string]bool
	timeOff   []*timeOff
	audit     []auditEntry
	failures  map[string][]failure
	requests  []Request
	delay     time.Duration
	envelope  bool
}

// New starts a fake backend that is closed when the test ends
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		nextID:    100,
		users:     make(map[string]*User),
		access:    make(map[string]string),
		refresh:   make(map[string]string),
		clockedIn: make(map[string]bool),
		failures:  make(map[string][]failure),
	}
	s.srv = httptest.NewServer(s.router())
	t.Cleanup(s.srv.Close)
	return s
}

// URL is the API base, ending in /api/
func (s *Server) URL() string {
	return s.srv.URL + "/api/"
}

// AddUser registers an account and returns it with its id filled in
func (s *Server) AddUser(u User) User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.addUserLocked(u)
}

func (s *Server) addUserLocked(u User) *User {
	if u.ID == 0 {
		s.nextID++
		u.ID = s.nextID
	}
	if u.PTO == "" {
		u.PTO = "10.0"
	}
	stored := u
	s.users[strings.ToLower(u.Email)] = &stored
	return &stored
}

// ExpireAccessTokens invalidates every issued access token
func (s *Server) ExpireAccessTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = make(map[string]string)
}

// RevokeRefreshTokens invalidates every issued refresh token
func (s *Server) RevokeRefreshTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh = make(map[string]string)
}

// Fail makes the next request to method+path answer with status and body
func (s *Server) Fail(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + path
	s.failures[key] = append(s.failures[key], failure{status: status, body: body})
}

// SetEnvelopeEmployees serves users/employee-list/ as {"results": [...]}
// instead of a bare array
func (s *Server) SetEnvelopeEmployees(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.envelope = on
}

// SetDelay delays every response, for timeout tests
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// SetClockedIn seeds the attendance state of a user
func (s *Server) SetClockedIn(email string, in bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clockedIn[strings.ToLower(email)] = in
}

// AddTimeOff seeds a pending request and returns its id
func (s *Server) AddTimeOff(userEmail, start, end, days, reason string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.timeOff = append(s.timeOff, &timeOff{
		ID: s.nextID, User: userEmail, Start: start, End: end,
		Days: days, Reason: reason, Status: "Pending",
	})
	return s.nextID
}

// TimeOffStatus returns the status of a request, or "" when unknown
func (s *Server) TimeOffStatus(id int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.timeOff {
		if r.ID == id {
			return r.Status
		}
	}
	return ""
}

// AuditLen returns the number of status audit entries
func (s *Server) AuditLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.audit)
}

// Requests returns every request received so far
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestsTo filters recorded requests by path suffix
func (s *Server) RequestsTo(path string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if strings.HasSuffix(r.Path, path) {
			out = append(out, r)
		}
	}
	return out
}

func (s *Server) router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.record)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/token/", s.handleObtain).Methods(http.MethodPost)
	api.HandleFunc("/token/refresh/", s.handleRefresh).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(s.authenticate)
	authed.HandleFunc("/users/register/", s.managers(s.handleRegister, domain.RoleHighLevelManager, domain.RoleMiddleLevelManager)).Methods(http.MethodPost)
	authed.HandleFunc("/users/employee-list/", s.handleEmployees).Methods(http.MethodGet)
	authed.HandleFunc("/attendance/", s.handleAttendance).Methods(http.MethodGet, http.MethodPost, http.MethodPut)
	authed.HandleFunc("/hr/time-off/", s.handleTimeOff).Methods(http.MethodGet, http.MethodPost)
	authed.HandleFunc("/hr/time-off/{id}/approve/", s.managers(s.handleDecide, domain.RoleMiddleLevelManager, domain.RoleEmployeeManager)).Methods(http.MethodPatch)
	authed.HandleFunc("/managers/status/override/", s.managers(s.handleOverride, domain.ManagerRoles()...)).Methods(http.MethodPost)
	authed.HandleFunc("/analytics/kpis/", s.managers(s.handleKPIs, domain.ManagerRoles()...)).Methods(http.MethodGet)
	authed.HandleFunc("/audit/status/", s.managers(s.handleAudit, domain.ManagerRoles()...)).Methods(http.MethodGet)
	authed.HandleFunc("/audit/gps/", s.managers(s.handleGPS, domain.ManagerRoles()...)).Methods(http.MethodGet)

	return r
}

type userKey struct{}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = readAll(r)
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
			Body:          string(body),
		})
		delay := s.delay
		key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api/")
		var injected *failure
		if queue := s.failures[key]; len(queue) > 0 {
			injected = &queue[0]
			s.failures[key] = queue[1:]
		}
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		if injected != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(injected.status)
			_, _ = w.Write([]byte(injected.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Authentication credentials were not provided."})
			return
		}

		s.mu.Lock()
		email, ok := s.access[strings.TrimPrefix(header, "Bearer ")]
		user := s.users[email]
		s.mu.Unlock()

		if !ok || user == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"detail": "Given token not valid for any token type",
				"code":   "token_not_valid",
			})
			return
		}
		next.ServeHTTP(w, withUser(r, user))
	})
}

func (s *Server) managers(h http.HandlerFunc, roles ...domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !currentUser(r).Role.In(roles...) {
			writeJSON(w, http.StatusForbidden, map[string]any{"detail": "You do not have permission to perform this action."})
			return
		}
		h(w, r)
	}
}

func (s *Server) handleObtain(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r, &creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Malformed request."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.users[strings.ToLower(creds.Email)]
	if user == nil || user.Password != creds.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "No active account found with the given credentials"})
		return
	}

	s.nextToken++
	access := fmt.Sprintf("access-%d", s.nextToken)
	refresh := fmt.Sprintf("refresh-%d", s.nextToken)
	s.access[access] = strings.ToLower(user.Email)
	s.refresh[refresh] = strings.ToLower(user.Email)

	writeJSON(w, http.StatusOK, map[string]any{
		"access":           access,
		"refresh":          refresh,
		"id":               user.ID,
		"email":            user.Email,
		"first_name":       user.FirstName,
		"last_name":        user.LastName,
		"role":             user.Role,
		"pto_balance_days": user.PTO,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Refresh string `json:"refresh"`
	}
	_ = decode(r, &body)

	s.mu.Lock()
	defer s.mu.Unlock()

	email, ok := s.refresh[body.Refresh]
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Token is invalid or expired", "code": "token_not_valid"})
		return
	}

	s.nextToken++
	access := fmt.Sprintf("access-%d", s.nextToken)
	s.access[access] = email
	writeJSON(w, http.StatusOK, map[string]any{"access": access})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email            string      `json:"email"`
		Password         string      `json:"password"`
		FirstName        string      `json:"first_name"`
		LastName         string      `json:"last_name"`
		RoleKey          domain.Role `json:"role_key"`
		ReportingManager domain.ID   `json:"reporting_manager"`
	}
	if err := decode(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Malformed request."})
		return
	}

	fields := map[string]any{}
	if body.Email == "" {
		fields["email"] = []string{"This field may not be blank."}
	}
	if err := body.RoleKey.Validate(); err != nil {
		fields["role_key"] = []string{fmt.Sprintf("%q is not a valid choice.", string(body.RoleKey))}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[strings.ToLower(body.Email)]; exists && body.Email != "" {
		fields["email"] = []string{"user with this email already exists."}
	}
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, fields)
		return
	}

	u := s.addUserLocked(User{
		Email: body.Email, Password: body.Password,
		FirstName: body.FirstName, LastName: body.LastName, Role: body.RoleKey,
	})
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":                u.ID,
		"email":             u.Email,
		"first_name":        u.FirstName,
		"last_name":         u.LastName,
		"role_key":          u.Role,
		"reporting_manager": body.ReportingManager,
	})
}

func (s *Server) handleEmployees(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := make([]map[string]any, 0, len(s.users))
	for _, u := range s.sortedUsersLocked() {
		list = append(list, map[string]any{
			"id":         u.ID,
			"email":      u.Email,
			"first_name": u.FirstName,
			"last_name":  u.LastName,
			"role_key":   u.Role,
		})
	}
	envelope := s.envelope
	s.mu.Unlock()

	if envelope {
		writeJSON(w, http.StatusOK, map[string]any{"count": len(list), "results": list})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) sortedUsersLocked() []*User {
	out := make([]*User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Server) handleAttendance(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(currentUser(r).Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"is_clocked_in": s.clockedIn[email]})
	case http.MethodPost:
		if s.clockedIn[email] {
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Already clocked in."})
			return
		}
		s.clockedIn[email] = true
		writeJSON(w, http.StatusCreated, map[string]any{"is_clocked_in": true})
	case http.MethodPut:
		if !s.clockedIn[email] {
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "No active clock-in record found."})
			return
		}
		s.clockedIn[email] = false
		writeJSON(w, http.StatusOK, map[string]any{"is_clocked_in": false})
	}
}

func (s *Server) handleTimeOff(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	if r.Method == http.MethodGet {
		if !user.Role.IsManager() {
			writeJSON(w, http.StatusForbidden, map[string]any{"detail": "You do not have permission to perform this action."})
			return
		}
		s.mu.Lock()
		pending := make([]timeOff, 0, len(s.timeOff))
		for _, req := range s.timeOff {
			if req.Status == "Pending" {
				pending = append(pending, *req)
			}
		}
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, pending)
		return
	}

	var body struct {
		StartDate   string      `json:"start_date"`
		EndDate     string      `json:"end_date"`
		RequestDays domain.Days `json:"request_days"`
		Reason      string      `json:"reason"`
	}
	if err := decode(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Malformed request."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	balance, _ := domain.ParseDays(user.PTO)
	if body.RequestDays > balance {
		writeJSON(w, http.StatusBadRequest, map[string]any{"request_days": []string{"Insufficient PTO balance."}})
		return
	}

	s.nextID++
	req := &timeOff{
		ID: s.nextID, User: user.Email, Start: body.StartDate, End: body.EndDate,
		Days: body.RequestDays.String(), Reason: body.Reason, Status: "Pending",
	}
	s.timeOff = append(s.timeOff, req)
	writeJSON(w, http.StatusCreated, req)
}

func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Not found."})
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	_ = decode(r, &body)
	if body.Status != "Approved" && body.Status != "Rejected" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": []string{"Invalid status."}})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, req := range s.timeOff {
		if req.ID == id {
			req.Status = body.Status
			writeJSON(w, http.StatusOK, req)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Not found."})
}

func (s *Server) handleOverride(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID       domain.ID `json:"user_id"`
		NewStatus    string    `json:"new_status"`
		StatusReason string    `json:"status_reason"`
	}
	if err := decode(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Malformed request."})
		return
	}
	if strings.TrimSpace(body.StatusReason) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status_reason": []string{"A reason is mandatory for a status override."}})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var target *User
	for _, u := range s.users {
		if strconv.Itoa(u.ID) == body.UserID.String() {
			target = u
		}
	}
	if target == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Employee not found."})
		return
	}

	s.nextID++
	s.audit = append(s.audit, auditEntry{
		ID:             s.nextID,
		ChangeTime:     time.Now().UTC(),
		UserEmail:      target.Email,
		ChangedByEmail: currentUser(r).Email,
		OldStatus:      "Available",
		NewStatus:      body.NewStatus,
		StatusReason:   body.StatusReason,
	})
	writeJSON(w, http.StatusCreated, map[string]any{"detail": "Status updated."})
}

func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"average_cycle_time_minutes":    42.5,
		"protocol_adherence_percent":    97,
		"sales_planning_adherence_rate": 88.2,
	})
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	entries := make([]auditEntry, len(s.audit))
	copy(entries, s.audit)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGPS(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"count": 1,
		"results": []map[string]any{{
			"id":          1,
			"user_email":  "driver@oms.test",
			"latitude":    52.52,
			"longitude":   13.405,
			"recorded_at": "2025-01-15T09:30:00Z",
		}},
	})
}
