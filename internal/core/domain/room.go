package domain

// Room is an apartment unit. TenantID is nil for vacant rooms.
type Room struct {
	RoomNumber int    `json:"room_number"`
	TenantID   *int64 `json:"tenant_id,omitempty"`
}

// RoomDetail is a room joined with its tenant's contact data.
type RoomDetail struct {
	Room
	TenantName  *string `json:"tenant_name,omitempty"`
	TenantEmail *string `json:"tenant_email,omitempty"`
	TenantPhone *string `json:"tenant_phone,omitempty"`
}
