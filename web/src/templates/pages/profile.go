package pages

import (
	"strings"

	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/clubportal/internal/view/dto"
)

// Profile shows the signed-in user's profile, or a not-found notice when the
// backend did not return one.
func Profile(page dto.ProfilePage) cmp.Node {
	if !page.Found {
		return g.Section(
			g.Class("container center"),
			g.H4(cmp.Text("User not found")),
			g.P(g.Class("muted"), cmp.Text("The requested profile could not be found.")),
		)
	}
	p := page.Profile
	return g.Section(
		g.Class("container narrow"),
		g.Div(
			g.Class("card profile"),
			g.Div(
				g.Class("center"),
				avatar(p.ProfilePic, page.Initials),
				g.H3(cmp.Text(p.Name)),
				g.P(g.Class("muted"), cmp.Text(p.Email)),
				g.Span(g.Class("badge"), cmp.Text(p.Role)),
			),
			g.Div(
				g.Class("grid two"),
				infoBlock("Personal Information",
					infoRow("Phone", p.Phone),
					infoRow("Gender", p.Gender),
				),
				infoBlock("Academic Information",
					infoRow("Semester", p.Semester),
					infoRow("Class", p.Class),
				),
			),
			infoBlock("Membership",
				infoRow("Membership ID", p.MembershipID),
				infoRow("Events Attended", strings.Join(p.EventsAttended, ", ")),
			),
		),
	)
}

func avatar(pic, initials string) cmp.Node {
	if pic != "" {
		return g.Img(g.Class("avatar"), g.Src(pic), g.Alt("Profile"))
	}
	return g.Div(g.Class("avatar initials"), cmp.Text(initials))
}

func infoBlock(title string, rows ...cmp.Node) cmp.Node {
	return g.Div(g.Class("info"), g.H5(cmp.Text(title)), cmp.Group(rows))
}

func infoRow(label, value string) cmp.Node {
	if value == "" {
		value = "Not provided"
	}
	return g.Div(
		g.Class("info-row"),
		g.Div(g.Class("muted small"), cmp.Text(label)),
		g.Div(cmp.Text(value)),
	)
}
