package models

// InvitationEmail is the template data handed to the notification sender
// when a client is invited to the portal.
type InvitationEmail struct {
	Recipient       string `json:"recipient"`
	ContactName     string `json:"contact_name"`
	CompanyName     string `json:"company_name,omitempty"`
	TempPassword    string `json:"-"`
	PersonalMessage string `json:"personal_message,omitempty"`
	PortalURL       string `json:"portal_url"`
}
