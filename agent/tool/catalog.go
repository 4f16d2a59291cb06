package tool

import (
	"strings"

	statex "github.com/pattarav/supportline/agent/state"
)

// Action is one simulated backend operation a specialist can invoke. Run has no
// real side effects; every action returns a canned, deterministic string.
type Action struct {
	Name        string
	Description string

	// Enabled gates availability against the turn snapshot. nil means always
	// available.
	Enabled func(snap statex.Snapshot) bool

	Run func(query string) string
}

func (a Action) EnabledFor(snap statex.Snapshot) bool {
	return a.Enabled == nil || a.Enabled(snap)
}

const (
	refundResult       = "Your refund has been processed successfully. It will reflect in your account within 5-7 business days."
	chargesResult      = "Your recent charge of $49.99 is for your monthly subscription. This includes access to all premium features."
	subscriptionResult = "Your subscription has been updated successfully. Your new plan will take effect in the next billing cycle."
	restartResult      = "The service has been restarted successfully. Please allow a few minutes for it to become fully operational."
	passwordResult     = "A password reset link has been sent to your email. Please check your inbox and follow the instructions."
	statusResult       = "All systems are operational. No outages reported at this time."
	infoResult         = "Our company provides a range of services designed to meet your needs. For more specific information, please visit our website or contact our support team."
	escalateResult     = "Your issue has been escalated to a human representative. They will contact you within 24 hours."
)

func canned(result string) func(string) string {
	return func(string) string { return result }
}

// Catalog returns the static action registry for a category. Registries are
// built fresh per call but their contents never vary.
func Catalog(c statex.Category) []Action {
	switch c {
	case statex.CategoryBilling:
		return []Action{
			{
				Name:        "process_refund",
				Description: "Process a refund for the user",
				Enabled: func(snap statex.Snapshot) bool {
					return snap.Premium
				},
				Run: canned(refundResult),
			},
			{
				Name:        "explain_charges",
				Description: "Explain recent charges on the user's account",
				Run:         canned(chargesResult),
			},
			{
				Name:        "update_subscription",
				Description: "Update the user's subscription plan",
				Run:         canned(subscriptionResult),
			},
		}
	case statex.CategoryTechnical:
		return []Action{
			{
				Name:        "restart_service",
				Description: "Restart a service for the user",
				Enabled: func(snap statex.Snapshot) bool {
					return snap.Category == statex.CategoryTechnical
				},
				Run: canned(restartResult),
			},
			{
				Name:        "reset_password",
				Description: "Reset the user's password",
				Run:         canned(passwordResult),
			},
			{
				Name:        "check_status",
				Description: "Check the status of services",
				Run:         canned(statusResult),
			},
		}
	case statex.CategoryGeneral:
		return []Action{
			{
				Name:        "provide_info",
				Description: "Provide general information about services",
				Run:         canned(infoResult),
			},
			{
				Name:        "escalate_issue",
				Description: "Escalate the issue to a human representative",
				Run:         canned(escalateResult),
			},
		}
	default:
		return nil
	}
}

// Available filters a registry down to the actions whose gate passes for this
// turn's snapshot.
func Available(actions []Action, snap statex.Snapshot) []Action {
	out := make([]Action, 0, len(actions))
	for _, a := range actions {
		if a.EnabledFor(snap) {
			out = append(out, a)
		}
	}
	return out
}

// Find looks an action up by name in a registry.
func Find(actions []Action, name string) (Action, bool) {
	name = strings.TrimSpace(name)
	for _, a := range actions {
		if a.Name == name {
			return a, true
		}
	}
	return Action{}, false
}

// Names lists action names in registry order.
func Names(actions []Action) []string {
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		out = append(out, a.Name)
	}
	return out
}
