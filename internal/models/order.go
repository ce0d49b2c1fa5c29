package models

import (
	"strings"
	"time"
)

// Order - заявка клиента, созданная ботом. Админка читает её и меняет
// только status и internal_note.
type Order struct {
	ID             int64      `json:"id" db:"id"`
	UserID         int64      `json:"user_id" db:"user_id"`
	Username       NullString `json:"username" db:"username"`
	FullName       NullString `json:"full_name" db:"full_name"`
	OrderType      string     `json:"order_type" db:"order_type"`
	Status         string     `json:"status" db:"status"`
	PhotoFileID    NullString `json:"photo_file_id" db:"photo_file_id"`
	WorkType       NullString `json:"work_type" db:"work_type"`
	DimensionsInfo NullString `json:"dimensions_info" db:"dimensions_info"`
	Conditions     NullString `json:"conditions" db:"conditions"`
	Urgency        NullString `json:"urgency" db:"urgency"`
	Comment        NullString `json:"comment" db:"comment"`
	InternalNote   NullString `json:"internal_note" db:"internal_note"`
	CarBrand       NullString `json:"car_brand" db:"car_brand"`
	CarYear        NullString `json:"car_year" db:"car_year"`
	EngineIssue    NullString `json:"engine_issue" db:"engine_issue"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// PhotoIDs разбирает photo_file_id: бот хранит file_id через запятую.
func (o *Order) PhotoIDs() []string {
	if !o.PhotoFileID.Valid {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(o.PhotoFileID.String, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// StatusChange - результат смены статуса, нужен для уведомления клиента.
type StatusChange struct {
	OrderID   int64  `json:"order_id"`
	UserID    int64  `json:"user_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// Changed сообщает, изменился ли статус на самом деле.
func (c StatusChange) Changed() bool {
	return c.OldStatus != c.NewStatus
}
