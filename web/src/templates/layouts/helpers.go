package layouts

// siteName trails every page title.
const siteName = "Club Portal"

// PageTitle is the document title for a page called title.
func PageTitle(title string) string {
	if title == "" {
		return siteName
	}
	return title + " | " + siteName
}
