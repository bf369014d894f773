package templates

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/message"
)

// ActivityCard holds display data for one activity.
type ActivityCard struct {
	Name         string
	Description  string
	Schedule     string
	SpotsLeft    int
	Participants []string
}

// ActivitiesPage composes the activity list and the signup form.
func ActivitiesPage(cards []ActivityCard, names []string, loc *message.Printer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ActivityList(cards, loc).Render(ctx, w); err != nil {
			return err
		}
		return SignupForm(names, loc).Render(ctx, w)
	})
}

// ActivityList renders one card per activity in the given order. The whole
// list is rebuilt on every render; nothing is diffed.
func ActivityList(cards []ActivityCard, loc *message.Printer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<section id=\"activities-container\"><h3>")
		b.WriteString(templ.EscapeString(loc.Sprintf("Available Activities")))
		b.WriteString("</h3><div id=\"activities-list\">")
		for _, card := range cards {
			writeActivityCard(&b, card, loc)
		}
		b.WriteString("</div></section>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeActivityCard(b *strings.Builder, card ActivityCard, loc *message.Printer) {
	b.WriteString("<div class=\"activity-card\"><h4>")
	b.WriteString(templ.EscapeString(card.Name))
	b.WriteString("</h4><p>")
	b.WriteString(templ.EscapeString(card.Description))
	b.WriteString("</p><p><strong>")
	b.WriteString(templ.EscapeString(loc.Sprintf("Schedule:")))
	b.WriteString("</strong> ")
	b.WriteString(templ.EscapeString(card.Schedule))
	b.WriteString("</p><p><strong>")
	b.WriteString(templ.EscapeString(loc.Sprintf("Availability:")))
	b.WriteString("</strong> ")
	b.WriteString(templ.EscapeString(loc.Sprintf("%d spots left", card.SpotsLeft)))
	b.WriteString("</p><div class=\"participants-section\"><h5>")
	b.WriteString(templ.EscapeString(loc.Sprintf("Participants")))
	b.WriteString("</h5>")
	if len(card.Participants) == 0 {
		b.WriteString("<p class=\"no-participants\">")
		b.WriteString(templ.EscapeString(loc.Sprintf("No participants yet")))
		b.WriteString("</p>")
	} else {
		b.WriteString("<ul class=\"participants-list\">")
		for _, email := range card.Participants {
			writeParticipantRow(b, card.Name, email, loc)
		}
		b.WriteString("</ul>")
	}
	b.WriteString("</div></div>")
}

// writeParticipantRow binds the row's remove form to this render's exact
// (activity, email) pair.
func writeParticipantRow(b *strings.Builder, activity string, email string, loc *message.Printer) {
	b.WriteString("<li><span class=\"participant-email\">")
	b.WriteString(templ.EscapeString(email))
	b.WriteString("</span><form method=\"post\" action=\"")
	b.WriteString(templ.EscapeString(UnregisterPath(activity)))
	b.WriteString("\" class=\"delete-form\"><input type=\"hidden\" name=\"email\" value=\"")
	b.WriteString(templ.EscapeString(email))
	b.WriteString("\"><button type=\"submit\" class=\"delete-btn\" title=\"")
	b.WriteString(templ.EscapeString(loc.Sprintf("Unregister")))
	b.WriteString("\">&#10006;</button></form></li>")
}

// SignupForm renders the registration form with one option per activity, the
// option value and label both the activity name.
func SignupForm(names []string, loc *message.Printer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<section id=\"signup-container\"><h3>")
		b.WriteString(templ.EscapeString(loc.Sprintf("Sign Up for an Activity")))
		b.WriteString("</h3><form id=\"signup-form\" method=\"post\" action=\"/signup\"><div class=\"form-group\"><label for=\"email\">")
		b.WriteString(templ.EscapeString(loc.Sprintf("Email:")))
		b.WriteString("</label><input type=\"email\" id=\"email\" name=\"email\" required placeholder=\"your-email@mergington.edu\"></div>")
		b.WriteString("<div class=\"form-group\"><label for=\"activity\">")
		b.WriteString(templ.EscapeString(loc.Sprintf("Select Activity:")))
		b.WriteString("</label><select id=\"activity\" name=\"activity\" required><option value=\"\">")
		b.WriteString(templ.EscapeString(loc.Sprintf("-- Select an activity --")))
		b.WriteString("</option>")
		for _, name := range names {
			b.WriteString("<option value=\"")
			b.WriteString(templ.EscapeString(name))
			b.WriteString("\">")
			b.WriteString(templ.EscapeString(name))
			b.WriteString("</option>")
		}
		b.WriteString("</select></div><button type=\"submit\">")
		b.WriteString(templ.EscapeString(loc.Sprintf("Sign Up")))
		b.WriteString("</button></form></section>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// FetchFailure replaces the activity list area when the catalog cannot be
// loaded. The failure is terminal for this render; the next page load retries.
func FetchFailure(loc *message.Printer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			"<section id=\"activities-container\"><div id=\"activities-list\"><p>"+
				templ.EscapeString(loc.Sprintf("Failed to load activities. Please try again later."))+
				"</p></div></section>")
		return err
	})
}

// BackLink points a failed action back at the activity list.
func BackLink(loc *message.Printer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			"<section><p><a href=\"/\">"+
				templ.EscapeString(loc.Sprintf("Back to activities"))+
				"</a></p></section>")
		return err
	})
}

// UnregisterPath builds the remove-control target for an activity, with the
// name percent-encoded as a single path segment.
func UnregisterPath(activity string) string {
	return "/activities/" + url.PathEscape(activity) + "/unregister"
}
