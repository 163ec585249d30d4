package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/spec-kit/helpdesk-bot/internal/domain"
	"github.com/spec-kit/helpdesk-bot/internal/messaging"
	"github.com/spec-kit/helpdesk-bot/internal/session"
)

// Callback payload prefixes and fixed payloads shared between the bot
// handlers and the admin broadcast keyboards.
const (
	CBPrefixCategory = "cat"
	CBPrefixPriority = "prio"
	CBPrefixList     = "list"

	CBPriorityBack  = "prio_back"
	CBWizardCancel  = "wiz_cancel"
	CBConfirmAccept = "confirm_yes"
	CBConfirmCancel = "confirm_no"

	CBVerbTicket   = "ticket"
	CBVerbSolution = "solution"

	CBAdminMenu     = "admin_menu"
	CBMenuNewTicket = "menu_new"
	CBMenuMyTickets = "menu_my"
	CBMenuMain      = "menu_main"
)

// TicketCard renders the full ticket view shown to administrators.
func TicketCard(t *domain.Ticket) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Ticket #%d</b> — %s\n", t.ID, StatusLabel(t.Status))
	fmt.Fprintf(&b, "<b>Title:</b> %s\n", html.EscapeString(t.Title))
	fmt.Fprintf(&b, "<b>Category:</b> %s\n", CategoryLabel(t.Category))
	fmt.Fprintf(&b, "<b>Priority:</b> %s\n", PriorityLabel(t.Priority))
	fmt.Fprintf(&b, "<b>Requester:</b> %s", html.EscapeString(t.RequesterName))
	if t.RequesterUsername != nil && *t.RequesterUsername != "" {
		fmt.Fprintf(&b, " (@%s)", html.EscapeString(*t.RequesterUsername))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "<b>Phone:</b> %s\n", html.EscapeString(t.Phone))
	if t.Location != nil && *t.Location != "" {
		fmt.Fprintf(&b, "<b>Location:</b> %s\n", html.EscapeString(*t.Location))
	}
	fmt.Fprintf(&b, "<b>Description:</b> %s\n", html.EscapeString(t.Description))
	if t.Assignee != nil && *t.Assignee != "" {
		fmt.Fprintf(&b, "<b>Assignee:</b> %s\n", html.EscapeString(*t.Assignee))
	}
	if t.Solution != nil && *t.Solution != "" {
		fmt.Fprintf(&b, "<b>Solution:</b> %s\n", html.EscapeString(*t.Solution))
	}
	fmt.Fprintf(&b, "<i>Created %s, updated %s</i>", t.CreatedAt.Format("2006-01-02 15:04"), t.UpdatedAt.Format("2006-01-02 15:04"))
	return b.String()
}

// DraftPreview renders the confirmation-step summary of collected answers.
func DraftPreview(d *session.Draft) string {
	var b strings.Builder
	b.WriteString("<b>Please confirm your request:</b>\n")
	fmt.Fprintf(&b, "<b>Category:</b> %s\n", CategoryLabel(d.Category))
	fmt.Fprintf(&b, "<b>Priority:</b> %s\n", PriorityLabel(d.Priority))
	fmt.Fprintf(&b, "<b>Title:</b> %s\n", html.EscapeString(d.Title))
	fmt.Fprintf(&b, "<b>Description:</b> %s\n", html.EscapeString(d.Description))
	if strings.TrimSpace(d.Location) != "" {
		fmt.Fprintf(&b, "<b>Location:</b> %s\n", html.EscapeString(d.Location))
	}
	fmt.Fprintf(&b, "<b>Phone:</b> %s", html.EscapeString(d.Phone))
	return b.String()
}

// TicketSummaryLine renders one line of a listing.
func TicketSummaryLine(t *domain.Ticket) string {
	return fmt.Sprintf("#%d [%s] %s", t.ID, StatusLabel(t.Status), truncate(t.Title, 40))
}

// CreatedNotice is sent to the requester after creation.
func CreatedNotice(t *domain.Ticket) string {
	return fmt.Sprintf("Your request has been registered as ticket <b>#%d</b>. We will notify you when its status changes.", t.ID)
}

// StatusNotice is sent to the requester after a transition.
func StatusNotice(t *domain.Ticket) string {
	notice := fmt.Sprintf("Ticket <b>#%d</b> is now <b>%s</b>.", t.ID, StatusLabel(t.Status))
	if t.Assignee != nil && *t.Assignee != "" {
		notice += fmt.Sprintf(" Handled by %s.", html.EscapeString(*t.Assignee))
	}
	return notice
}

// SolutionNotice is sent to the requester after a solution is attached.
func SolutionNotice(t *domain.Ticket) string {
	solution := ""
	if t.Solution != nil {
		solution = *t.Solution
	}
	return fmt.Sprintf("Ticket <b>#%d</b> got a solution:\n%s", t.ID, html.EscapeString(solution))
}

// AdminBroadcast renders the new-ticket card pushed to every administrator.
func AdminBroadcast(t *domain.Ticket) string {
	return "<b>New ticket</b>\n" + TicketCard(t)
}

// CategoryKeyboard is the wizard's first step.
func CategoryKeyboard() messaging.Keyboard {
	kb := messaging.Keyboard{}
	for _, c := range domain.Categories() {
		kb = append(kb, []messaging.Button{{Text: CategoryLabel(c), Data: EncodeKey(CBPrefixCategory, string(c))}})
	}
	kb = append(kb, []messaging.Button{{Text: "Cancel", Data: CBWizardCancel}})
	return kb
}

// PriorityKeyboard is the wizard's second step, with back navigation.
func PriorityKeyboard() messaging.Keyboard {
	kb := messaging.Keyboard{}
	for _, p := range domain.Priorities() {
		kb = append(kb, []messaging.Button{{Text: PriorityLabel(p), Data: EncodeKey(CBPrefixPriority, string(p))}})
	}
	kb = append(kb, []messaging.Button{
		{Text: "Back", Data: CBPriorityBack},
		{Text: "Cancel", Data: CBWizardCancel},
	})
	return kb
}

// ConfirmKeyboard is the wizard's final step.
func ConfirmKeyboard() messaging.Keyboard {
	return messaging.Keyboard{{
		{Text: "Submit", Data: CBConfirmAccept},
		{Text: "Cancel", Data: CBConfirmCancel},
	}}
}

// MainMenuKeyboard is the end-user entry menu.
func MainMenuKeyboard() messaging.Keyboard {
	return messaging.Keyboard{
		{{Text: "New ticket", Data: CBMenuNewTicket}},
		{{Text: "My tickets", Data: CBMenuMyTickets}},
	}
}

// AdminMenuKeyboard lists status filters with ticket counts.
func AdminMenuKeyboard(counts map[domain.TicketStatus]int64) messaging.Keyboard {
	kb := messaging.Keyboard{}
	for _, status := range domain.Statuses() {
		label := fmt.Sprintf("%s (%d)", StatusLabel(status), counts[status])
		kb = append(kb, []messaging.Button{{Text: label, Data: EncodeKey(CBPrefixList, string(status))}})
	}
	return kb
}

// TicketListKeyboard turns a listing into open-ticket buttons.
func TicketListKeyboard(tickets []domain.Ticket) messaging.Keyboard {
	kb := messaging.Keyboard{}
	for i := range tickets {
		t := &tickets[i]
		kb = append(kb, []messaging.Button{{Text: TicketSummaryLine(t), Data: EncodeAction(CBVerbTicket, t.ID)}})
	}
	kb = append(kb, []messaging.Button{{Text: "Back", Data: CBAdminMenu}})
	return kb
}

// AdminTicketKeyboard offers the actions valid from the ticket's current
// status plus solution attachment.
func AdminTicketKeyboard(t *domain.Ticket) messaging.Keyboard {
	kb := messaging.Keyboard{}
	row := []messaging.Button{}
	for _, action := range domain.ActionsFor(t.Status) {
		row = append(row, messaging.Button{Text: ActionLabel(action), Data: EncodeAction(string(action), t.ID)})
	}
	if len(row) > 0 {
		kb = append(kb, row)
	}
	kb = append(kb, []messaging.Button{{Text: "Attach solution", Data: EncodeAction(CBVerbSolution, t.ID)}})
	kb = append(kb, []messaging.Button{{Text: "Back", Data: EncodeKey(CBPrefixList, string(t.Status))}})
	return kb
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
