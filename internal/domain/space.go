package domain

import "time"

type Space struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SpaceLanguage struct {
	ID        int64     `json:"id"`
	SpaceID   int64     `json:"space_id"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}
