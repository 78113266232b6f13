package contact

// ContactRequest is the contact form as posted by the site. The site names
// its honeypot field "_gotcha"; "honeypot" is accepted as well.
type ContactRequest struct {
	Name           string `form:"name" json:"name"`
	Email          string `form:"email" json:"email"`
	Type           string `form:"type" json:"type"`
	Message        string `form:"message" json:"message"`
	Gotcha         string `form:"_gotcha" json:"_gotcha"`
	Honeypot       string `form:"honeypot" json:"honeypot"`
	Locale         string `form:"locale" json:"locale"`
	RecaptchaToken string `form:"recaptcha_token" json:"recaptcha_token"`
}

// HoneypotValue returns whichever honeypot field the client filled in.
func (r *ContactRequest) HoneypotValue() string {
	if r.Gotcha != "" {
		return r.Gotcha
	}
	return r.Honeypot
}

// ContactResponse is the JSON body returned for every submission
type ContactResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error,omitempty"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}
