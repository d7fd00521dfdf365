package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/clubportal/internal/view/dto"
	"github.com/nfrund/clubportal/web/src/templates/partials"
)

// Login is the member sign-in form.
func Login(csrfToken string, form dto.LoginForm) cmp.Node {
	return authCard("Login",
		partials.Alert("danger", form.Error),
		cmp.El("form",
			g.Method("post"),
			g.Action("/login"),
			partials.CSRFField(csrfToken),
			partials.Field("email", "Email", "email", form.Email),
			partials.Field("password", "Password", "password", ""),
			g.Button(g.Type("submit"), g.Class("btn btn-primary"), cmp.Text("Login")),
		),
		g.P(cmp.Text("No account yet? "), g.A(g.Href("/signup"), cmp.Text("Sign up"))),
	)
}

// Signup is the account creation form.
func Signup(csrfToken string, form dto.SignupForm) cmp.Node {
	return authCard("Sign up",
		partials.Alert("danger", form.Error),
		cmp.El("form",
			g.Method("post"),
			g.Action("/signup"),
			partials.CSRFField(csrfToken),
			partials.Field("name", "Name", "text", form.Name),
			partials.Field("email", "Email", "email", form.Email),
			partials.Field("phone", "Phone", "tel", form.Phone),
			partials.Field("password", "Password", "password", ""),
			g.Div(
				g.Class("field"),
				cmp.El("label", cmp.Attr("for", "gender"), cmp.Text("Gender")),
				g.Select(
					g.ID("gender"),
					g.Name("gender"),
					g.Required(),
					option("", "Select gender", form.Gender),
					option("male", "Male", form.Gender),
					option("female", "Female", form.Gender),
					option("other", "Other", form.Gender),
				),
			),
			partials.Field("semester", "Semester", "text", form.Semester),
			partials.Field("class", "Class", "text", form.Class),
			g.Button(g.Type("submit"), g.Class("btn btn-primary"), cmp.Text("Sign up")),
		),
		g.P(cmp.Text("Already registered? "), g.A(g.Href("/login"), cmp.Text("Login"))),
	)
}

// AdminLogin is the administrator sign-in form.
func AdminLogin(csrfToken string, form dto.AdminLoginForm) cmp.Node {
	return authCard("Admin Login",
		partials.Alert("danger", form.Error),
		cmp.El("form",
			g.Method("post"),
			g.Action("/admin/login"),
			partials.CSRFField(csrfToken),
			partials.Field("email", "Email", "email", form.Email),
			partials.Field("password", "Password", "password", ""),
			g.Button(g.Type("submit"), g.Class("btn btn-dark"), cmp.Text("Login as Admin")),
		),
	)
}

func authCard(title string, children ...cmp.Node) cmp.Node {
	return g.Section(
		g.Class("container narrow"),
		g.Div(
			g.Class("card"),
			g.H3(cmp.Text(title)),
			cmp.Group(children),
		),
	)
}

func option(value, label, selected string) cmp.Node {
	return g.Option(g.Value(value), cmp.If(value == selected, g.Selected()), cmp.Text(label))
}
