package domain

import "time"

type Notification struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	FromUser  int64     `json:"from_user"`
	ToUser    int64     `json:"to_user"`
}

// NotificationView is a notification with sender and recipient names resolved.
type NotificationView struct {
	Notification
	FromName string `json:"from_name"`
	ToName   string `json:"to_name"`
}
