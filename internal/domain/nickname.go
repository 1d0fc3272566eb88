package domain

import "time"

// Nickname - косметический псевдоним игрока, ключ user_id
type Nickname struct {
	UserID      string
	Nickname    string
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
