package pages

import (
	"context"

	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/clubportal/internal/backend"
	"github.com/nfrund/clubportal/internal/events"
	"github.com/nfrund/clubportal/internal/view"
	"github.com/nfrund/clubportal/internal/view/dto"
	"github.com/nfrund/clubportal/web/src/templates/components"
)

// AdminDashboard renders the dashboard bundle. An unloaded bundle renders the
// empty states of every section.
func AdminDashboard(ctx context.Context, d dto.Dashboard) cmp.Node {
	return g.Section(
		g.Class("container"),
		g.H1(cmp.Text("Admin Dashboard")),
		cmp.If(d.Loaded, g.Div(
			g.Class("grid three"),
			view.AdaptTemplToGomponent(ctx, components.StatCard("Total Users", d.Stats.TotalUsers, "blue")),
			view.AdaptTemplToGomponent(ctx, components.StatCard("Total Events", d.Stats.TotalEvents, "green")),
			view.AdaptTemplToGomponent(ctx, components.StatCard("BYTE Participants", d.Stats.TotalBYTEParticipants, "purple")),
		)),
		adminSection("Upcoming Events", len(d.Upcoming) == 0, "No upcoming events",
			g.Ul(
				g.Class("list-group"),
				cmp.Map(d.Upcoming, func(ev backend.UpcomingEvent) cmp.Node {
					return g.Li(
						g.Class("list-group-item"),
						g.H4(cmp.Text(ev.Title)),
						g.P(cmp.Text(events.DisplayDate(ev.Date)+" @ "+ev.Time)),
						g.P(g.Class("muted small"), cmp.Text("Location: "+ev.Location)),
					)
				}),
			),
		),
		adminSection("Recent BYTE Attendance", len(d.Attendance) == 0, "No recent attendance records",
			g.Table(
				g.Class("table"),
				g.THead(g.Tr(g.Th(cmp.Text("Name")), g.Th(cmp.Text("Domain")), g.Th(cmp.Text("Date")))),
				g.TBody(cmp.Map(d.Attendance, func(r backend.AttendanceRecord) cmp.Node {
					return g.Tr(
						g.Td(cmp.Text(r.Name)),
						g.Td(cmp.Text(r.Domain)),
						g.Td(cmp.Text(events.DisplayDate(r.Date))),
					)
				})),
			),
		),
		adminSection("New Members", len(d.Members) == 0, "No new members yet",
			g.Ul(
				g.Class("grid four"),
				cmp.Map(d.Members, func(m backend.Member) cmp.Node {
					return g.Li(
						g.Class("card member"),
						cmp.If(m.ProfilePic != "", g.Img(g.Class("avatar small"), g.Src(m.ProfilePic), g.Alt(m.Name))),
						g.H4(cmp.Text(m.Name)),
						g.P(g.Class("muted small"), cmp.Text(m.Email)),
					)
				}),
			),
		),
	)
}

func adminSection(title string, empty bool, emptyText string, content cmp.Node) cmp.Node {
	return g.Section(
		g.Class("admin-section"),
		g.H2(cmp.Text(title)),
		cmp.If(empty, g.P(g.Class("muted"), cmp.Text(emptyText))),
		cmp.If(!empty, content),
	)
}
