package types

type CreateTicketRequest struct {
	Subject     string `json:"subject"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type UpdateTicketRequest struct {
	Status     string `json:"status,omitempty"`
	AdminReply string `json:"adminReply,omitempty"`
}
