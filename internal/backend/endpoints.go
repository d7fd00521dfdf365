package backend

import (
	"context"
	"errors"
	"net/http"
)

// Backend paths consumed by the portal, relative to the client's base URL.
const (
	PathLogin            = "/auth/login"
	PathSignup           = "/auth/register"
	PathEvents           = "/events/getEvents"
	PathRegisterEvent    = "/events/register"
	PathRegisteredEvents = "/events/registered"
	PathByteStatus       = "/byte/my-registration"
	PathByteRegister     = "/byte/register-byte"
	PathProfile          = "/users/profile"
	PathDashboardStats   = "/dashboard/stats"
	PathDashboardEvents  = "/dashboard/events/upcoming"
	PathDashboardAttend  = "/dashboard/attendance/recent"
	PathDashboardMembers = "/dashboard/members/new"
	PathAdminLogin       = "/admin/login"
)

// Login signs the identity in. On success the backend sets its session
// cookie, which the client's credential captures.
func (c *Client) Login(ctx context.Context, req LoginRequest) (MessageResponse, error) {
	return c.postMessage(ctx, PathLogin, req)
}

// Signup creates an account.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (MessageResponse, error) {
	return c.postMessage(ctx, PathSignup, req)
}

// AdminLogin signs an administrator in. The client must be built on the admin base URL.
func (c *Client) AdminLogin(ctx context.Context, req LoginRequest) (MessageResponse, error) {
	return c.postMessage(ctx, PathAdminLogin, req)
}

// Events fetches the events catalog.
func (c *Client) Events(ctx context.Context) ([]EventSummary, error) {
	var out []EventSummary
	if err := c.Get(ctx, PathEvents, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RegisteredEvents fetches the events the identity registered for.
func (c *Client) RegisteredEvents(ctx context.Context) ([]EventSummary, error) {
	var out RegisteredEventsResponse
	if err := c.Get(ctx, PathRegisteredEvents, &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

// RegisterForEvent registers the identity for an event.
func (c *Client) RegisterForEvent(ctx context.Context, eventID string) (MessageResponse, error) {
	return c.postMessage(ctx, PathRegisterEvent, RegisterEventRequest{EventID: eventID})
}

// ByteRegistration fetches the identity's BYTE class registration.
func (c *Client) ByteRegistration(ctx context.Context) (ByteRegistration, error) {
	var out ByteRegistration
	err := c.Get(ctx, PathByteStatus, &out)
	return out, err
}

// RegisterByte registers the identity for a BYTE domain.
func (c *Client) RegisterByte(ctx context.Context, domain string) (MessageResponse, error) {
	return c.postMessage(ctx, PathByteRegister, RegisterByteRequest{Domain: domain})
}

// Profile fetches the signed-in user's profile.
func (c *Client) Profile(ctx context.Context) (UserProfile, error) {
	var out UserProfile
	err := c.Get(ctx, PathProfile, &out)
	return out, err
}

// DashboardStats fetches the admin aggregate counters.
func (c *Client) DashboardStats(ctx context.Context) (DashboardStats, error) {
	var out DashboardStats
	err := c.Get(ctx, PathDashboardStats, &out)
	return out, err
}

// UpcomingEvents fetches the admin list of upcoming events.
func (c *Client) UpcomingEvents(ctx context.Context) ([]UpcomingEvent, error) {
	var out upcomingEventsResponse
	if err := c.Get(ctx, PathDashboardEvents, &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

// RecentAttendance fetches the admin list of recent attendance records.
func (c *Client) RecentAttendance(ctx context.Context) ([]AttendanceRecord, error) {
	var out attendanceResponse
	if err := c.Get(ctx, PathDashboardAttend, &out); err != nil {
		return nil, err
	}
	return out.Attendance, nil
}

// NewMembers fetches the admin list of newly joined members.
func (c *Client) NewMembers(ctx context.Context) ([]Member, error) {
	var out membersResponse
	if err := c.Get(ctx, PathDashboardMembers, &out); err != nil {
		return nil, err
	}
	return out.Members, nil
}

// postMessage posts to a {message} endpoint. A 2xx answer whose body is not
// {message} still counts as success, with an empty message.
func (c *Client) postMessage(ctx context.Context, path string, body any) (MessageResponse, error) {
	var out MessageResponse
	err := c.Post(ctx, path, body, &out)
	if errors.Is(err, ErrDecode) {
		c.logger.Warn("backend accepted request with an unreadable body", "path", path, "error", err)
		return MessageResponse{}, nil
	}
	return out, err
}

// Factory builds per-identity clients that share one http.Client.
type Factory struct {
	BaseURL  string
	AdminURL string
	HTTP     *http.Client
}

// NewFactory creates a Factory.
func NewFactory(baseURL, adminURL string, httpClient *http.Client) *Factory {
	return &Factory{BaseURL: baseURL, AdminURL: adminURL, HTTP: httpClient}
}

// For returns an API client carrying cred.
func (f *Factory) For(cred Credential) *Client {
	return New(f.BaseURL, f.HTTP, cred)
}

// Admin returns a client on the admin base URL carrying cred.
func (f *Factory) Admin(cred Credential) *Client {
	return New(f.AdminURL, f.HTTP, cred)
}
