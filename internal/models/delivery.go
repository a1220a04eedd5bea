package models

type DeliveryReceipt struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	DownloadURL string `json:"download_url,omitempty"`
}

type SendRequest struct {
	Email string `json:"email"`
}
