package backend

// MessageResponse is the {message} body most backend endpoints return,
// both on success and on failure.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginRequest is the body of POST /auth/login and POST /admin/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the body of POST /auth/register.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Gender   string `json:"gender"`
	Semester string `json:"semester"`
	Class    string `json:"class"`
}

// EventSummary is one entry of the events catalog.
type EventSummary struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Attendees   int    `json:"attendees"`
	Capacity    int    `json:"capacity"`
}

// RegisterEventRequest is the body of POST /events/register.
type RegisterEventRequest struct {
	EventID string `json:"eventId"`
}

// RegisteredEventsResponse is the body of GET /events/registered.
type RegisteredEventsResponse struct {
	Events []EventSummary `json:"events"`
}

// ByteRegistration is the body of GET /byte/my-registration.
type ByteRegistration struct {
	Registered      bool   `json:"registered"`
	Domain          string `json:"domain"`
	PaymentVerified bool   `json:"paymentVerified,omitempty"`
}

// RegisterByteRequest is the body of POST /byte/register-byte.
type RegisterByteRequest struct {
	Domain string `json:"domain"`
}

// UserProfile is the read-only projection of the signed-in user.
type UserProfile struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Role           string   `json:"role"`
	ProfilePic     string   `json:"profilePic,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	Gender         string   `json:"gender,omitempty"`
	Semester       string   `json:"semester,omitempty"`
	Class          string   `json:"class,omitempty"`
	MembershipID   string   `json:"membershipId,omitempty"`
	EventsAttended []string `json:"eventsAttended,omitempty"`
}

// DashboardStats is the body of GET /dashboard/stats.
type DashboardStats struct {
	TotalUsers            int `json:"totalUsers"`
	TotalEvents           int `json:"totalEvents"`
	TotalBYTEParticipants int `json:"totalBYTEParticipants"`
}

// UpcomingEvent is an entry of GET /dashboard/events/upcoming.
type UpcomingEvent struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
}

// AttendanceRecord is an entry of GET /dashboard/attendance/recent.
type AttendanceRecord struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Date   string `json:"date"`
	Domain string `json:"domain"`
}

// Member is an entry of GET /dashboard/members/new.
type Member struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	ProfilePic string `json:"profilePic"`
}

type upcomingEventsResponse struct {
	Events []UpcomingEvent `json:"events"`
}

type attendanceResponse struct {
	Attendance []AttendanceRecord `json:"attendance"`
}

type membersResponse struct {
	Members []Member `json:"members"`
}
