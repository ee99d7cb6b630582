package requests

type EmailPayload struct {
	Subject      string                 `json:"subject"`
	From         string                 `json:"from"`
	To           []string               `json:"to"`
	Cc           []string               `json:"cc,omitempty"`
	Bcc          []string               `json:"bcc,omitempty"`
	TemplateName string                 `json:"template_name"`
	TemplateData map[string]interface{} `json:"template_data,omitempty"`
}
