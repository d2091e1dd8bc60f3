package domain

import "time"

// File is an accepted upload attached to a cart line.
type File struct {
	ID          string    `json:"id"`
	ItemID      string    `json:"itemId"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType"`
	Path        string    `json:"path"`
	UploadedAt  time.Time `json:"uploadedAt"`
}
